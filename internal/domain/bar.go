package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type BarItem struct {
	ID          uint            `json:"id"`
	Name        string          `json:"name"`
	Category    string          `json:"category"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	IsAvailable bool            `json:"is_available"`
	Quantity    int             `json:"quantity"`
}

type SaleLine struct {
	ItemID    uint            `json:"item_id"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// Sale is a committed bar transaction.
type Sale struct {
	ID              uint            `json:"id"`
	BartenderID     uint            `json:"bartender_id"`
	CustomerID      *uint           `json:"customer_id,omitempty"`
	Lines           []SaleLine      `json:"items"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	Actual          decimal.Decimal `json:"actual_amount"`
	CreatedAt       time.Time       `json:"created_at"`
}

type Payout struct {
	ID          uint            `json:"id"`
	BartenderID uint            `json:"bartender_id"`
	Amount      decimal.Decimal `json:"amount"`
	PaidBy      uint            `json:"paid_by"`
	Notes       string          `json:"notes,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

type BartenderBalance struct {
	BartenderID  uint            `json:"bartender_id"`
	Username     string          `json:"username,omitempty"`
	TotalSales   decimal.Decimal `json:"total_sales"`
	TotalPayouts decimal.Decimal `json:"total_payouts"`
}

func (b BartenderBalance) Outstanding() decimal.Decimal {
	return b.TotalSales.Sub(b.TotalPayouts)
}

// InviteDiscount grants Percent off bar sales once an account has at least
// InviteCount accepted invitations.
type InviteDiscount struct {
	ID          uint            `json:"id"`
	InviteCount int             `json:"invite_count"`
	Percent     decimal.Decimal `json:"discount_percent"`
}

// PresetDiscount is a fixed bar discount for one account. It overrides tiers.
type PresetDiscount struct {
	AccountID uint            `json:"user_id"`
	Percent   decimal.Decimal `json:"discount_percent"`
}
