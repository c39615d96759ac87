package dao

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pyramide/event-api/internal/domain"
)

var ErrBarItemNotFound = domain.NewError(domain.KindNotFound, "bar item not found")

type BarItem struct {
	ID uint `gorm:"primaryKey"`

	Name        string          `gorm:"not null"`
	Category    string          `gorm:"not null;index"`
	Description string
	Price       decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	IsAvailable bool            `gorm:"not null;default:true"`
	Inventory   *BarInventory   `gorm:"foreignKey:ItemID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type BarInventory struct {
	ItemID    uint      `gorm:"primaryKey;autoIncrement:false"`
	Quantity  int       `gorm:"not null;default:0;check:chk_bar_inventories_quantity,quantity >= 0"`
	UpdatedAt time.Time `gorm:"not null"`
}

type BarTransaction struct {
	ID uint `gorm:"primaryKey"`

	BartenderID     uint                 `gorm:"not null;index"`
	Bartender       *Account             `gorm:"foreignKey:BartenderID;constraint:OnDelete:RESTRICT"`
	CustomerID      *uint                `gorm:"index"`
	Customer        *Account             `gorm:"foreignKey:CustomerID;constraint:OnDelete:SET NULL"`
	Lines           []BarTransactionLine `gorm:"foreignKey:TransactionID;constraint:OnDelete:CASCADE"`
	Subtotal        decimal.Decimal      `gorm:"type:numeric(10,2);not null"`
	DiscountPercent decimal.Decimal      `gorm:"type:numeric(5,2);not null;default:0"`
	ActualAmount    decimal.Decimal      `gorm:"type:numeric(10,2);not null"`

	CreatedAt time.Time `gorm:"not null;index"`
}

type BarTransactionLine struct {
	ID uint `gorm:"primaryKey"`

	TransactionID uint            `gorm:"not null;index"`
	ItemID        uint            `gorm:"not null"`
	Name          string          `gorm:"not null"`
	Quantity      int             `gorm:"not null"`
	UnitPrice     decimal.Decimal `gorm:"type:numeric(10,2);not null"`
}

// BartenderBalance keeps running totals updated in the same transaction as
// every sale and payout.
type BartenderBalance struct {
	BartenderID  uint            `gorm:"primaryKey;autoIncrement:false"`
	TotalSales   decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	TotalPayouts decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	UpdatedAt    time.Time       `gorm:"not null"`
}

type BarPayout struct {
	ID uint `gorm:"primaryKey"`

	BartenderID uint            `gorm:"not null;index"`
	Amount      decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	PaidBy      uint            `gorm:"not null"`
	Notes       string

	CreatedAt time.Time `gorm:"not null"`
}

type InviteDiscount struct {
	ID uint `gorm:"primaryKey"`

	InviteCount     int             `gorm:"uniqueIndex:idx_invite_discounts_count;not null"`
	DiscountPercent decimal.Decimal `gorm:"type:numeric(5,2);not null"`
}

type PresetDiscount struct {
	AccountID       uint            `gorm:"primaryKey;autoIncrement:false"`
	DiscountPercent decimal.Decimal `gorm:"type:numeric(5,2);not null"`
}

type BarDAO struct {
	db *gorm.DB
}

func NewBarDAO(db *gorm.DB) *BarDAO {
	return &BarDAO{
		db: db,
	}
}

func (d *BarDAO) ListItems(ctx context.Context, includeUnavailable bool) ([]BarItem, error) {
	query := d.db.WithContext(ctx).Preload("Inventory").Order("category, name")
	if !includeUnavailable {
		query = query.Where("is_available = ?", true)
	}

	var items []BarItem
	if err := query.Find(&items).Error; err != nil {
		return nil, err
	}

	return items, nil
}

func (d *BarDAO) FindItemsByIDs(ctx context.Context, ids []uint) ([]BarItem, error) {
	var items []BarItem
	if err := d.db.WithContext(ctx).Preload("Inventory").Where("id IN ?", ids).Find(&items).Error; err != nil {
		return nil, err
	}

	return items, nil
}

func (d *BarDAO) InsertItem(ctx context.Context, item BarItem, quantity int) (BarItem, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		item.Inventory = nil
		if err := tx.Create(&item).Error; err != nil {
			return err
		}

		inv := BarInventory{ItemID: item.ID, Quantity: quantity}
		if err := tx.Create(&inv).Error; err != nil {
			return err
		}
		item.Inventory = &inv

		return nil
	})
	if err != nil {
		return BarItem{}, err
	}

	return item, nil
}

func (d *BarDAO) UpdateItem(ctx context.Context, item BarItem) (BarItem, error) {
	result := d.db.WithContext(ctx).Model(&BarItem{ID: item.ID}).
		Select("name", "category", "description", "price", "is_available").
		Updates(&item)
	if result.Error != nil {
		return BarItem{}, result.Error
	}
	if result.RowsAffected == 0 {
		return BarItem{}, ErrBarItemNotFound
	}

	items, err := d.FindItemsByIDs(ctx, []uint{item.ID})
	if err != nil {
		return BarItem{}, err
	}
	if len(items) == 0 {
		return BarItem{}, ErrBarItemNotFound
	}

	return items[0], nil
}

func (d *BarDAO) SetAvailability(ctx context.Context, id uint, available bool) error {
	result := d.db.WithContext(ctx).Model(&BarItem{}).Where("id = ?", id).Update("is_available", available)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrBarItemNotFound
	}

	return nil
}

func (d *BarDAO) SetInventory(ctx context.Context, itemID uint, quantity int) error {
	var n int64
	if err := d.db.WithContext(ctx).Model(&BarItem{}).Where("id = ?", itemID).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return ErrBarItemNotFound
	}

	inv := BarInventory{ItemID: itemID, Quantity: quantity}
	return d.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "item_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"quantity", "updated_at"}),
	}).Create(&inv).Error
}

// CommitSale decrements stock, inserts the sale and accrues it to the
// bartender in one transaction. Stock is checked by the decrement itself so
// two sales racing for the last unit cannot both succeed.
func (d *BarDAO) CommitSale(ctx context.Context, sale BarTransaction) (BarTransaction, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, line := range sale.Lines {
			result := tx.Model(&BarInventory{}).
				Where("item_id = ? AND quantity >= ?", line.ItemID, line.Quantity).
				Updates(map[string]any{
					"quantity":   gorm.Expr("quantity - ?", line.Quantity),
					"updated_at": time.Now(),
				})
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return domain.InsufficientStock(line.ItemID, line.Quantity)
			}
		}

		if err := tx.Create(&sale).Error; err != nil {
			return err
		}

		balance := BartenderBalance{BartenderID: sale.BartenderID, TotalSales: sale.ActualAmount}
		return tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "bartender_id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"total_sales": gorm.Expr("bartender_balances.total_sales + EXCLUDED.total_sales"),
				"updated_at":  gorm.Expr("EXCLUDED.updated_at"),
			}),
		}).Create(&balance).Error
	})
	if err != nil {
		return BarTransaction{}, err
	}

	return sale, nil
}

// InsertPayout appends a payout if it does not exceed the outstanding balance.
// The bound is checked by the same UPDATE that records it.
func (d *BarDAO) InsertPayout(ctx context.Context, payout BarPayout) (BarPayout, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&BartenderBalance{}).
			Where("bartender_id = ? AND total_sales - total_payouts >= ?", payout.BartenderID, payout.Amount).
			Updates(map[string]any{
				"total_payouts": gorm.Expr("total_payouts + ?", payout.Amount),
				"updated_at":    time.Now(),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domain.ErrExceedsOutstanding
		}

		return tx.Create(&payout).Error
	})
	if err != nil {
		return BarPayout{}, err
	}

	return payout, nil
}

// FindBalance returns a zero balance for bartenders without sales.
func (d *BarDAO) FindBalance(ctx context.Context, bartenderID uint) (BartenderBalance, error) {
	var balance BartenderBalance
	result := d.db.WithContext(ctx).Where("bartender_id = ?", bartenderID).First(&balance)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return BartenderBalance{BartenderID: bartenderID}, nil
		}

		return BartenderBalance{}, result.Error
	}

	return balance, nil
}

func (d *BarDAO) ListBalances(ctx context.Context) ([]BartenderBalance, error) {
	var balances []BartenderBalance
	if err := d.db.WithContext(ctx).Order("bartender_id").Find(&balances).Error; err != nil {
		return nil, err
	}

	return balances, nil
}

// ListTransactions returns the latest sales, optionally for one bartender.
func (d *BarDAO) ListTransactions(ctx context.Context, bartenderID *uint, limit int) ([]BarTransaction, error) {
	query := d.db.WithContext(ctx).Preload("Lines").Order("created_at DESC").Limit(limit)
	if bartenderID != nil {
		query = query.Where("bartender_id = ?", *bartenderID)
	}

	var sales []BarTransaction
	if err := query.Find(&sales).Error; err != nil {
		return nil, err
	}

	return sales, nil
}

func (d *BarDAO) ListPayouts(ctx context.Context, bartenderID *uint) ([]BarPayout, error) {
	query := d.db.WithContext(ctx).Order("created_at DESC")
	if bartenderID != nil {
		query = query.Where("bartender_id = ?", *bartenderID)
	}

	var payouts []BarPayout
	if err := query.Find(&payouts).Error; err != nil {
		return nil, err
	}

	return payouts, nil
}

func (d *BarDAO) ListInviteDiscounts(ctx context.Context) ([]InviteDiscount, error) {
	var tiers []InviteDiscount
	if err := d.db.WithContext(ctx).Order("invite_count").Find(&tiers).Error; err != nil {
		return nil, err
	}

	return tiers, nil
}

func (d *BarDAO) UpsertInviteDiscount(ctx context.Context, tier InviteDiscount) (InviteDiscount, error) {
	err := d.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "invite_count"}},
		DoUpdates: clause.AssignmentColumns([]string{"discount_percent"}),
	}).Create(&tier).Error
	if err != nil {
		return InviteDiscount{}, err
	}

	return tier, nil
}

func (d *BarDAO) DeleteInviteDiscount(ctx context.Context, id uint) error {
	return d.db.WithContext(ctx).Delete(&InviteDiscount{}, id).Error
}

// FindPresetDiscount returns nil when the account has no preset.
func (d *BarDAO) FindPresetDiscount(ctx context.Context, accountID uint) (*PresetDiscount, error) {
	var preset PresetDiscount
	result := d.db.WithContext(ctx).Where("account_id = ?", accountID).First(&preset)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, result.Error
	}

	return &preset, nil
}

func (d *BarDAO) ListPresetDiscounts(ctx context.Context) ([]PresetDiscount, error) {
	var presets []PresetDiscount
	if err := d.db.WithContext(ctx).Order("account_id").Find(&presets).Error; err != nil {
		return nil, err
	}

	return presets, nil
}

func (d *BarDAO) SetPresetDiscount(ctx context.Context, preset PresetDiscount) error {
	return d.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "account_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"discount_percent"}),
	}).Create(&preset).Error
}

func (d *BarDAO) DeletePresetDiscount(ctx context.Context, accountID uint) error {
	return d.db.WithContext(ctx).Where("account_id = ?", accountID).Delete(&PresetDiscount{}).Error
}
