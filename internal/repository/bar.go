package repository

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/pyramide/event-api/internal/domain"
	"github.com/pyramide/event-api/internal/repository/dao"
)

var ErrBarItemNotFound = dao.ErrBarItemNotFound

type BarDAO interface {
	ListItems(ctx context.Context, includeUnavailable bool) ([]dao.BarItem, error)
	FindItemsByIDs(ctx context.Context, ids []uint) ([]dao.BarItem, error)
	InsertItem(ctx context.Context, item dao.BarItem, quantity int) (dao.BarItem, error)
	UpdateItem(ctx context.Context, item dao.BarItem) (dao.BarItem, error)
	SetAvailability(ctx context.Context, id uint, available bool) error
	SetInventory(ctx context.Context, itemID uint, quantity int) error
	CommitSale(ctx context.Context, sale dao.BarTransaction) (dao.BarTransaction, error)
	InsertPayout(ctx context.Context, payout dao.BarPayout) (dao.BarPayout, error)
	FindBalance(ctx context.Context, bartenderID uint) (dao.BartenderBalance, error)
	ListBalances(ctx context.Context) ([]dao.BartenderBalance, error)
	ListTransactions(ctx context.Context, bartenderID *uint, limit int) ([]dao.BarTransaction, error)
	ListPayouts(ctx context.Context, bartenderID *uint) ([]dao.BarPayout, error)
	ListInviteDiscounts(ctx context.Context) ([]dao.InviteDiscount, error)
	UpsertInviteDiscount(ctx context.Context, tier dao.InviteDiscount) (dao.InviteDiscount, error)
	DeleteInviteDiscount(ctx context.Context, id uint) error
	FindPresetDiscount(ctx context.Context, accountID uint) (*dao.PresetDiscount, error)
	ListPresetDiscounts(ctx context.Context) ([]dao.PresetDiscount, error)
	SetPresetDiscount(ctx context.Context, preset dao.PresetDiscount) error
	DeletePresetDiscount(ctx context.Context, accountID uint) error
}

type BarRepository struct {
	dao BarDAO
}

func NewBarRepository(dao BarDAO) *BarRepository {
	return &BarRepository{
		dao: dao,
	}
}

func (r *BarRepository) ListItems(ctx context.Context, includeUnavailable bool) ([]domain.BarItem, error) {
	items, err := r.dao.ListItems(ctx, includeUnavailable)
	if err != nil {
		return nil, fmt.Errorf("r.dao.ListItems -> %w", err)
	}

	return barItemsToDomain(items), nil
}

func (r *BarRepository) FindItems(ctx context.Context, ids []uint) ([]domain.BarItem, error) {
	items, err := r.dao.FindItemsByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindItemsByIDs -> %w", err)
	}

	return barItemsToDomain(items), nil
}

func (r *BarRepository) CreateItem(ctx context.Context, item domain.BarItem) (domain.BarItem, error) {
	created, err := r.dao.InsertItem(ctx, barItemToDAO(item), item.Quantity)
	if err != nil {
		return domain.BarItem{}, fmt.Errorf("r.dao.InsertItem -> %w", err)
	}

	return barItemToDomain(created), nil
}

func (r *BarRepository) UpdateItem(ctx context.Context, item domain.BarItem) (domain.BarItem, error) {
	updated, err := r.dao.UpdateItem(ctx, barItemToDAO(item))
	if err != nil {
		return domain.BarItem{}, fmt.Errorf("r.dao.UpdateItem -> %w", err)
	}

	return barItemToDomain(updated), nil
}

func (r *BarRepository) SetAvailability(ctx context.Context, id uint, available bool) error {
	if err := r.dao.SetAvailability(ctx, id, available); err != nil {
		return fmt.Errorf("r.dao.SetAvailability -> %w", err)
	}

	return nil
}

func (r *BarRepository) SetInventory(ctx context.Context, itemID uint, quantity int) error {
	if err := r.dao.SetInventory(ctx, itemID, quantity); err != nil {
		return fmt.Errorf("r.dao.SetInventory -> %w", err)
	}

	return nil
}

func (r *BarRepository) CommitSale(ctx context.Context, sale domain.Sale) (domain.Sale, error) {
	lines := make([]dao.BarTransactionLine, 0, len(sale.Lines))
	for _, l := range sale.Lines {
		lines = append(lines, dao.BarTransactionLine{
			ItemID:    l.ItemID,
			Name:      l.Name,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
		})
	}

	committed, err := r.dao.CommitSale(ctx, dao.BarTransaction{
		BartenderID:     sale.BartenderID,
		CustomerID:      sale.CustomerID,
		Lines:           lines,
		Subtotal:        sale.Subtotal,
		DiscountPercent: sale.DiscountPercent,
		ActualAmount:    sale.Actual,
	})
	if err != nil {
		return domain.Sale{}, fmt.Errorf("r.dao.CommitSale -> %w", err)
	}

	return saleToDomain(committed), nil
}

func (r *BarRepository) RecordPayout(ctx context.Context, payout domain.Payout) (domain.Payout, error) {
	created, err := r.dao.InsertPayout(ctx, dao.BarPayout{
		BartenderID: payout.BartenderID,
		Amount:      payout.Amount,
		PaidBy:      payout.PaidBy,
		Notes:       payout.Notes,
	})
	if err != nil {
		return domain.Payout{}, fmt.Errorf("r.dao.InsertPayout -> %w", err)
	}

	return payoutToDomain(created), nil
}

func (r *BarRepository) Balance(ctx context.Context, bartenderID uint) (domain.BartenderBalance, error) {
	b, err := r.dao.FindBalance(ctx, bartenderID)
	if err != nil {
		return domain.BartenderBalance{}, fmt.Errorf("r.dao.FindBalance -> %w", err)
	}

	return balanceToDomain(b), nil
}

func (r *BarRepository) ListBalances(ctx context.Context) ([]domain.BartenderBalance, error) {
	found, err := r.dao.ListBalances(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.ListBalances -> %w", err)
	}

	balances := make([]domain.BartenderBalance, 0, len(found))
	for _, b := range found {
		balances = append(balances, balanceToDomain(b))
	}

	return balances, nil
}

func (r *BarRepository) ListSales(ctx context.Context, bartenderID *uint, limit int) ([]domain.Sale, error) {
	found, err := r.dao.ListTransactions(ctx, bartenderID, limit)
	if err != nil {
		return nil, fmt.Errorf("r.dao.ListTransactions -> %w", err)
	}

	sales := make([]domain.Sale, 0, len(found))
	for _, s := range found {
		sales = append(sales, saleToDomain(s))
	}

	return sales, nil
}

func (r *BarRepository) ListPayouts(ctx context.Context, bartenderID *uint) ([]domain.Payout, error) {
	found, err := r.dao.ListPayouts(ctx, bartenderID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.ListPayouts -> %w", err)
	}

	payouts := make([]domain.Payout, 0, len(found))
	for _, p := range found {
		payouts = append(payouts, payoutToDomain(p))
	}

	return payouts, nil
}

func (r *BarRepository) ListInviteDiscounts(ctx context.Context) ([]domain.InviteDiscount, error) {
	found, err := r.dao.ListInviteDiscounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.ListInviteDiscounts -> %w", err)
	}

	tiers := make([]domain.InviteDiscount, 0, len(found))
	for _, t := range found {
		tiers = append(tiers, domain.InviteDiscount{ID: t.ID, InviteCount: t.InviteCount, Percent: t.DiscountPercent})
	}

	return tiers, nil
}

func (r *BarRepository) UpsertInviteDiscount(ctx context.Context, tier domain.InviteDiscount) (domain.InviteDiscount, error) {
	saved, err := r.dao.UpsertInviteDiscount(ctx, dao.InviteDiscount{
		InviteCount:     tier.InviteCount,
		DiscountPercent: tier.Percent,
	})
	if err != nil {
		return domain.InviteDiscount{}, fmt.Errorf("r.dao.UpsertInviteDiscount -> %w", err)
	}

	return domain.InviteDiscount{ID: saved.ID, InviteCount: saved.InviteCount, Percent: saved.DiscountPercent}, nil
}

func (r *BarRepository) DeleteInviteDiscount(ctx context.Context, id uint) error {
	if err := r.dao.DeleteInviteDiscount(ctx, id); err != nil {
		return fmt.Errorf("r.dao.DeleteInviteDiscount -> %w", err)
	}

	return nil
}

// PresetDiscount returns nil when the account has no preset discount.
func (r *BarRepository) PresetDiscount(ctx context.Context, accountID uint) (*decimal.Decimal, error) {
	preset, err := r.dao.FindPresetDiscount(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindPresetDiscount -> %w", err)
	}
	if preset == nil {
		return nil, nil
	}

	return &preset.DiscountPercent, nil
}

func (r *BarRepository) ListPresetDiscounts(ctx context.Context) ([]domain.PresetDiscount, error) {
	found, err := r.dao.ListPresetDiscounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.ListPresetDiscounts -> %w", err)
	}

	presets := make([]domain.PresetDiscount, 0, len(found))
	for _, p := range found {
		presets = append(presets, domain.PresetDiscount{AccountID: p.AccountID, Percent: p.DiscountPercent})
	}

	return presets, nil
}

func (r *BarRepository) SetPresetDiscount(ctx context.Context, preset domain.PresetDiscount) error {
	err := r.dao.SetPresetDiscount(ctx, dao.PresetDiscount{AccountID: preset.AccountID, DiscountPercent: preset.Percent})
	if err != nil {
		return fmt.Errorf("r.dao.SetPresetDiscount -> %w", err)
	}

	return nil
}

func (r *BarRepository) DeletePresetDiscount(ctx context.Context, accountID uint) error {
	if err := r.dao.DeletePresetDiscount(ctx, accountID); err != nil {
		return fmt.Errorf("r.dao.DeletePresetDiscount -> %w", err)
	}

	return nil
}

func barItemToDAO(i domain.BarItem) dao.BarItem {
	return dao.BarItem{
		ID:          i.ID,
		Name:        i.Name,
		Category:    i.Category,
		Description: i.Description,
		Price:       i.Price,
		IsAvailable: i.IsAvailable,
	}
}

func barItemToDomain(i dao.BarItem) domain.BarItem {
	item := domain.BarItem{
		ID:          i.ID,
		Name:        i.Name,
		Category:    i.Category,
		Description: i.Description,
		Price:       i.Price,
		IsAvailable: i.IsAvailable,
	}
	if i.Inventory != nil {
		item.Quantity = i.Inventory.Quantity
	}

	return item
}

func barItemsToDomain(items []dao.BarItem) []domain.BarItem {
	out := make([]domain.BarItem, 0, len(items))
	for _, i := range items {
		out = append(out, barItemToDomain(i))
	}

	return out
}

func saleToDomain(t dao.BarTransaction) domain.Sale {
	lines := make([]domain.SaleLine, 0, len(t.Lines))
	for _, l := range t.Lines {
		lines = append(lines, domain.SaleLine{
			ItemID:    l.ItemID,
			Name:      l.Name,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
		})
	}

	return domain.Sale{
		ID:              t.ID,
		BartenderID:     t.BartenderID,
		CustomerID:      t.CustomerID,
		Lines:           lines,
		Subtotal:        t.Subtotal,
		DiscountPercent: t.DiscountPercent,
		Actual:          t.ActualAmount,
		CreatedAt:       t.CreatedAt,
	}
}

func payoutToDomain(p dao.BarPayout) domain.Payout {
	return domain.Payout{
		ID:          p.ID,
		BartenderID: p.BartenderID,
		Amount:      p.Amount,
		PaidBy:      p.PaidBy,
		Notes:       p.Notes,
		CreatedAt:   p.CreatedAt,
	}
}

func balanceToDomain(b dao.BartenderBalance) domain.BartenderBalance {
	return domain.BartenderBalance{
		BartenderID:  b.BartenderID,
		TotalSales:   b.TotalSales,
		TotalPayouts: b.TotalPayouts,
	}
}
