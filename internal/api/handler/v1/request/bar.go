package request

import (
	"errors"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

func checkPercent(field string, p decimal.Decimal) error {
	if p.IsNegative() || p.GreaterThan(hundred) {
		return fmt.Errorf("%s: must be between 0 and 100", field)
	}

	return nil
}

type SaleLine struct {
	ItemID   uint `json:"item_id"`
	Quantity int  `json:"quantity"`
}

type SaleRequest struct {
	Items           []SaleLine       `json:"items"`
	CustomerID      *uint            `json:"customer_id"`
	DiscountPercent *decimal.Decimal `json:"discount_percent"`
}

func (req *SaleRequest) Validate() error {
	if len(req.Items) == 0 {
		return errors.New("items: cannot be blank")
	}
	for i, line := range req.Items {
		if line.ItemID == 0 {
			return fmt.Errorf("items[%d].item_id: cannot be blank", i)
		}
		if line.Quantity <= 0 {
			return fmt.Errorf("items[%d].quantity: must be positive", i)
		}
	}
	if req.DiscountPercent != nil {
		return checkPercent("discount_percent", *req.DiscountPercent)
	}

	return nil
}

// Quantities merges repeated lines for the same item.
func (req *SaleRequest) Quantities() map[uint]int {
	items := make(map[uint]int, len(req.Items))
	for _, line := range req.Items {
		items[line.ItemID] += line.Quantity
	}

	return items
}

type BarItemRequest struct {
	Name        string          `json:"name"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	IsAvailable *bool           `json:"is_available"`
}

func (req *BarItemRequest) Validate() error {
	err := validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(1, 100)),
		validation.Field(&req.Category, validation.Length(0, 50)),
		validation.Field(&req.Description, validation.Length(0, 500)),
		validation.Field(&req.Quantity, validation.Min(0)),
	)
	if err != nil {
		return err
	}
	if req.Price.IsNegative() {
		return errors.New("price: cannot be negative")
	}

	return nil
}

type InventoryRequest struct {
	Quantity *int `json:"quantity"`
}

func (req *InventoryRequest) Validate() error {
	if req.Quantity == nil {
		return errors.New("quantity: cannot be blank")
	}
	if *req.Quantity < 0 {
		return errors.New("quantity: cannot be negative")
	}

	return nil
}

type PayoutRequest struct {
	BartenderID uint            `json:"bartender_id"`
	Amount      decimal.Decimal `json:"amount"`
	Notes       string          `json:"notes"`
}

func (req *PayoutRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.BartenderID, validation.Required),
		validation.Field(&req.Notes, validation.Length(0, 500)),
	)
}

type InviteDiscountRequest struct {
	InviteCount int             `json:"invite_count"`
	Percent     decimal.Decimal `json:"discount_percent"`
}

func (req *InviteDiscountRequest) Validate() error {
	if err := validation.ValidateStruct(req, validation.Field(&req.InviteCount, validation.Min(0))); err != nil {
		return err
	}

	return checkPercent("discount_percent", req.Percent)
}

type PresetDiscountRequest struct {
	UserID  uint            `json:"user_id"`
	Percent decimal.Decimal `json:"discount_percent"`
}

func (req *PresetDiscountRequest) Validate() error {
	if err := validation.ValidateStruct(req, validation.Field(&req.UserID, validation.Required)); err != nil {
		return err
	}

	return checkPercent("discount_percent", req.Percent)
}
