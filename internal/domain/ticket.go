package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentStatus string

const (
	PaymentFree   PaymentStatus = "free"
	PaymentUnpaid PaymentStatus = "unpaid"
	PaymentPaid   PaymentStatus = "paid"
)

const (
	TierGuest = "guest"
	TierStaff = "staff"
)

type Ticket struct {
	ID            uint            `json:"id"`
	AccountID     uint            `json:"account_id"`
	Code          string          `json:"code"`
	Price         decimal.Decimal `json:"price"`
	Currency      string          `json:"currency"`
	Tier          string          `json:"tier"`
	PaymentStatus PaymentStatus   `json:"payment_status"`
	IssuedAt      time.Time       `json:"issued_at"`
	VerifiedAt    *time.Time      `json:"verified_at,omitempty"`
	PaidAt        *time.Time      `json:"paid_at,omitempty"`
}

func (t Ticket) Verified() bool {
	return t.VerifiedAt != nil
}

// ScanStatus is the outcome of presenting a credential.
type ScanStatus string

const (
	ScanVerified        ScanStatus = "verified"
	ScanAlreadyVerified ScanStatus = "already_verified"
	ScanInvalid         ScanStatus = "invalid"
)

type Color string

const (
	ColorGreen Color = "green"
	ColorBlue  Color = "blue"
	ColorRed   Color = "red"
	ColorGold  Color = "gold"
)

// Classify maps a scan to the colour shown on the inspector device.
func Classify(status ScanStatus, role Role, payment PaymentStatus) Color {
	if status == ScanInvalid {
		return ColorRed
	}
	if role == RoleAdmin || role == RoleStaff {
		return ColorGold
	}
	if payment == PaymentUnpaid {
		return ColorBlue
	}

	return ColorGreen
}

// Admission is what an inspector sees after a scan.
type Admission struct {
	Status        ScanStatus      `json:"status"`
	AccountID     uint            `json:"user_id"`
	Username      string          `json:"username"`
	Role          Role            `json:"role"`
	IsSpecial     bool            `json:"is_special"`
	VerifiedAt    *time.Time      `json:"verified_at,omitempty"`
	TicketPrice   decimal.Decimal `json:"ticket_price"`
	PaymentStatus PaymentStatus   `json:"payment_status"`
	Color         Color           `json:"color"`
	Invites       InviteStats     `json:"invites"`
	BarDiscount   decimal.Decimal `json:"bar_discount"`
}

// PriceQuote is the live ticket price for an account before a ticket exists.
type PriceQuote struct {
	Price      decimal.NullDecimal `json:"price"`
	Currency   string              `json:"currency"`
	Accepted   int                 `json:"accepted_invites"`
	Used       int                 `json:"used_invites"`
	Quota      int                 `json:"max_invites"`
	Unlimited  bool                `json:"unlimited_invites"`
	Configured bool                `json:"pricing_configured"`
}
