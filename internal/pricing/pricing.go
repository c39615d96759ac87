// Package pricing computes ticket prices and bar discounts. It holds no state
// and reads nothing; callers pass the current counts and configuration on
// every call so a price is never stale.
package pricing

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/pyramide/event-api/internal/domain"
)

var hundred = decimal.NewFromInt(100)

// Config is the slice of the event configuration that drives pricing.
type Config struct {
	MinPrice           decimal.NullDecimal
	MaxPrice           decimal.NullDecimal
	MaxInvitesPerUser  int
	MaxDiscountPercent decimal.Decimal
}

func FromEvent(c domain.EventConfig) Config {
	return Config{
		MinPrice:           c.MinTicketPrice,
		MaxPrice:           c.MaxTicketPrice,
		MaxInvitesPerUser:  c.MaxInvitesPerUser,
		MaxDiscountPercent: c.MaxDiscountPercent,
	}
}

// Fraction is the share of the full discount earned with accepted invites.
func Fraction(accepted, maxInvites int) decimal.Decimal {
	if maxInvites <= 0 || accepted <= 0 {
		return decimal.Zero
	}
	if accepted >= maxInvites {
		return decimal.NewFromInt(1)
	}

	return decimal.NewFromInt(int64(accepted)).Div(decimal.NewFromInt(int64(maxInvites)))
}

// Price returns the effective ticket price for an account with the given
// number of accepted invitations. ok is false when no pricing is configured.
func Price(accepted int, c Config) (price decimal.Decimal, ok bool) {
	f := Fraction(accepted, c.MaxInvitesPerUser)

	switch {
	case c.MinPrice.Valid && c.MaxPrice.Valid:
		span := c.MaxPrice.Decimal.Sub(c.MinPrice.Decimal)
		price = c.MaxPrice.Decimal.Sub(span.Mul(f))
	case c.MaxPrice.Valid:
		off := c.MaxDiscountPercent.Mul(f).Div(hundred)
		price = c.MaxPrice.Decimal.Mul(decimal.NewFromInt(1).Sub(off))
	default:
		return decimal.Zero, false
	}

	return price.Round(2), true
}

// Bounds returns the lowest and highest price the configuration can produce.
func Bounds(c Config) (low, high decimal.Decimal, ok bool) {
	high, ok = Price(0, c)
	if !ok {
		return decimal.Zero, decimal.Zero, false
	}
	if c.MaxInvitesPerUser <= 0 {
		return high, high, true
	}
	low, _ = Price(c.MaxInvitesPerUser, c)

	return low, high, true
}

// ApplyDiscount returns amount reduced by percent, rounded to cents.
func ApplyDiscount(amount, percent decimal.Decimal) decimal.Decimal {
	return amount.Mul(hundred.Sub(percent)).Div(hundred).Round(2)
}

// BarDiscount picks the bar discount for an account. A preset discount always
// wins. Otherwise the tier with the highest threshold not above accepted
// applies.
func BarDiscount(accepted int, tiers []domain.InviteDiscount, preset *decimal.Decimal) decimal.Decimal {
	if preset != nil {
		return *preset
	}

	sorted := make([]domain.InviteDiscount, len(tiers))
	copy(sorted, tiers)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].InviteCount > sorted[j].InviteCount
	})

	for _, t := range sorted {
		if accepted >= t.InviteCount {
			return t.Percent
		}
	}

	return decimal.Zero
}
