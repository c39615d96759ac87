package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/pyramide/event-api/internal/domain"
	"github.com/pyramide/event-api/internal/events"
	"github.com/pyramide/event-api/internal/pkg/clock"
	"github.com/pyramide/event-api/internal/pricing"
	"github.com/pyramide/event-api/internal/repository"
)

//go:generate mockgen -source=bar.go -destination=mocks/mock_bar.go -package=mocks

var (
	ErrBarItemNotFound = repository.ErrBarItemNotFound

	hundred = decimal.NewFromInt(100)
)

type BarRepository interface {
	ListItems(ctx context.Context, includeUnavailable bool) ([]domain.BarItem, error)
	FindItems(ctx context.Context, ids []uint) ([]domain.BarItem, error)
	CreateItem(ctx context.Context, item domain.BarItem) (domain.BarItem, error)
	UpdateItem(ctx context.Context, item domain.BarItem) (domain.BarItem, error)
	SetAvailability(ctx context.Context, id uint, available bool) error
	SetInventory(ctx context.Context, itemID uint, quantity int) error
	CommitSale(ctx context.Context, sale domain.Sale) (domain.Sale, error)
	RecordPayout(ctx context.Context, payout domain.Payout) (domain.Payout, error)
	Balance(ctx context.Context, bartenderID uint) (domain.BartenderBalance, error)
	ListBalances(ctx context.Context) ([]domain.BartenderBalance, error)
	ListSales(ctx context.Context, bartenderID *uint, limit int) ([]domain.Sale, error)
	ListPayouts(ctx context.Context, bartenderID *uint) ([]domain.Payout, error)
	ListInviteDiscounts(ctx context.Context) ([]domain.InviteDiscount, error)
	UpsertInviteDiscount(ctx context.Context, tier domain.InviteDiscount) (domain.InviteDiscount, error)
	DeleteInviteDiscount(ctx context.Context, id uint) error
	PresetDiscount(ctx context.Context, accountID uint) (*decimal.Decimal, error)
	ListPresetDiscounts(ctx context.Context) ([]domain.PresetDiscount, error)
	SetPresetDiscount(ctx context.Context, preset domain.PresetDiscount) error
	DeletePresetDiscount(ctx context.Context, accountID uint) error
}

type InviteStatsReader interface {
	Stats(ctx context.Context, inviterID uint) (domain.InviteStats, error)
}

type AccountReader interface {
	FindByID(ctx context.Context, id uint) (domain.Account, error)
}

// SaleRequest is a bartender's cart. A nil DiscountPercent means the
// customer's own bar discount applies, or none without a customer.
type SaleRequest struct {
	BartenderID     uint
	CustomerID      *uint
	Items           map[uint]int
	DiscountPercent *decimal.Decimal
}

type BarService struct {
	bar      BarRepository
	invites  InviteStatsReader
	accounts AccountReader
	emitter  EventEmitter
	clock    clock.Clock
}

func NewBarService(
	bar BarRepository,
	invites InviteStatsReader,
	accounts AccountReader,
	emitter EventEmitter,
	clk clock.Clock,
) *BarService {
	return &BarService{
		bar:      bar,
		invites:  invites,
		accounts: accounts,
		emitter:  emitter,
		clock:    clk,
	}
}

// RecordSale validates the cart against the catalog, prices it and commits
// it. Stock is checked by the store inside the commit, not here.
func (s *BarService) RecordSale(ctx context.Context, req SaleRequest) (domain.Sale, error) {
	if len(req.Items) == 0 {
		return domain.Sale{}, domain.NewError(domain.KindInvalid, "sale has no items")
	}

	ids := make([]uint, 0, len(req.Items))
	for id, qty := range req.Items {
		if qty <= 0 {
			return domain.Sale{}, domain.NewError(domain.KindInvalid, "quantity must be positive").WithDetail("item_id", id)
		}
		ids = append(ids, id)
	}
	// Stable order keeps row locks in the same sequence across concurrent sales.
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	discount, err := s.saleDiscount(ctx, req)
	if err != nil {
		return domain.Sale{}, err
	}

	found, err := s.bar.FindItems(ctx, ids)
	if err != nil {
		return domain.Sale{}, fmt.Errorf("s.bar.FindItems -> %w", err)
	}
	catalog := make(map[uint]domain.BarItem, len(found))
	for _, item := range found {
		catalog[item.ID] = item
	}

	sale := domain.Sale{
		BartenderID:     req.BartenderID,
		CustomerID:      req.CustomerID,
		Lines:           make([]domain.SaleLine, 0, len(ids)),
		Subtotal:        decimal.Zero,
		DiscountPercent: discount,
	}
	for _, id := range ids {
		item, ok := catalog[id]
		if !ok {
			return domain.Sale{}, ErrBarItemNotFound.WithDetail("item_id", id)
		}
		if !item.IsAvailable {
			return domain.Sale{}, domain.ErrItemUnavailable.WithDetail("item_id", id)
		}

		qty := req.Items[id]
		sale.Lines = append(sale.Lines, domain.SaleLine{
			ItemID:    id,
			Name:      item.Name,
			Quantity:  qty,
			UnitPrice: item.Price,
		})
		sale.Subtotal = sale.Subtotal.Add(item.Price.Mul(decimal.NewFromInt(int64(qty))))
	}
	sale.Actual = pricing.ApplyDiscount(sale.Subtotal, discount)

	committed, err := s.bar.CommitSale(ctx, sale)
	if err != nil {
		return domain.Sale{}, fmt.Errorf("s.bar.CommitSale -> %w", err)
	}

	events.Emit(ctx, s.emitter, events.Event{
		Type:       events.SaleRecorded,
		Key:        accountKey(committed.BartenderID),
		OccurredAt: s.clock.Now(),
		Payload:    committed,
	})

	return committed, nil
}

func (s *BarService) saleDiscount(ctx context.Context, req SaleRequest) (decimal.Decimal, error) {
	if req.CustomerID != nil {
		if _, err := s.accounts.FindByID(ctx, *req.CustomerID); err != nil {
			return decimal.Zero, fmt.Errorf("s.accounts.FindByID -> %w", err)
		}
	}

	if req.DiscountPercent != nil {
		if err := validatePercent(*req.DiscountPercent); err != nil {
			return decimal.Zero, err
		}
		return *req.DiscountPercent, nil
	}

	if req.CustomerID == nil {
		return decimal.Zero, nil
	}

	return s.DiscountFor(ctx, *req.CustomerID)
}

// DiscountFor returns the bar discount percent an account is entitled to.
func (s *BarService) DiscountFor(ctx context.Context, accountID uint) (decimal.Decimal, error) {
	preset, err := s.bar.PresetDiscount(ctx, accountID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("s.bar.PresetDiscount -> %w", err)
	}
	if preset != nil {
		return *preset, nil
	}

	stats, err := s.invites.Stats(ctx, accountID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("s.invites.Stats -> %w", err)
	}

	tiers, err := s.bar.ListInviteDiscounts(ctx)
	if err != nil {
		return decimal.Zero, fmt.Errorf("s.bar.ListInviteDiscounts -> %w", err)
	}

	return pricing.BarDiscount(stats.Accepted, tiers, nil), nil
}

// RecordPayout pays amount out of a bartender's outstanding balance. The
// store rejects a payout above the balance atomically.
func (s *BarService) RecordPayout(ctx context.Context, payout domain.Payout) (domain.Payout, error) {
	if !payout.Amount.IsPositive() {
		return domain.Payout{}, domain.ErrInvalidAmount
	}
	payout.Amount = payout.Amount.Round(2)

	created, err := s.bar.RecordPayout(ctx, payout)
	if err != nil {
		return domain.Payout{}, fmt.Errorf("s.bar.RecordPayout -> %w", err)
	}

	events.Emit(ctx, s.emitter, events.Event{
		Type:       events.PayoutRecorded,
		Key:        accountKey(created.BartenderID),
		OccurredAt: s.clock.Now(),
		Payload:    created,
	})

	return created, nil
}

func (s *BarService) Balance(ctx context.Context, bartenderID uint) (domain.BartenderBalance, error) {
	balance, err := s.bar.Balance(ctx, bartenderID)
	if err != nil {
		return domain.BartenderBalance{}, fmt.Errorf("s.bar.Balance -> %w", err)
	}

	return balance, nil
}

func (s *BarService) Balances(ctx context.Context) ([]domain.BartenderBalance, error) {
	balances, err := s.bar.ListBalances(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.bar.ListBalances -> %w", err)
	}

	for i := range balances {
		account, err := s.accounts.FindByID(ctx, balances[i].BartenderID)
		if err != nil {
			return nil, fmt.Errorf("s.accounts.FindByID -> %w", err)
		}
		balances[i].Username = account.Username
	}

	return balances, nil
}

func (s *BarService) Sales(ctx context.Context, bartenderID *uint, limit int) ([]domain.Sale, error) {
	sales, err := s.bar.ListSales(ctx, bartenderID, limit)
	if err != nil {
		return nil, fmt.Errorf("s.bar.ListSales -> %w", err)
	}

	return sales, nil
}

func (s *BarService) Payouts(ctx context.Context, bartenderID *uint) ([]domain.Payout, error) {
	payouts, err := s.bar.ListPayouts(ctx, bartenderID)
	if err != nil {
		return nil, fmt.Errorf("s.bar.ListPayouts -> %w", err)
	}

	return payouts, nil
}

func (s *BarService) Items(ctx context.Context, includeUnavailable bool) ([]domain.BarItem, error) {
	items, err := s.bar.ListItems(ctx, includeUnavailable)
	if err != nil {
		return nil, fmt.Errorf("s.bar.ListItems -> %w", err)
	}

	return items, nil
}

func (s *BarService) CreateItem(ctx context.Context, item domain.BarItem) (domain.BarItem, error) {
	if err := validateItem(item); err != nil {
		return domain.BarItem{}, err
	}
	if item.Quantity < 0 {
		return domain.BarItem{}, domain.NewError(domain.KindInvalid, "quantity cannot be negative")
	}
	item.IsAvailable = true

	created, err := s.bar.CreateItem(ctx, item)
	if err != nil {
		return domain.BarItem{}, fmt.Errorf("s.bar.CreateItem -> %w", err)
	}

	return created, nil
}

func (s *BarService) UpdateItem(ctx context.Context, item domain.BarItem) (domain.BarItem, error) {
	if err := validateItem(item); err != nil {
		return domain.BarItem{}, err
	}

	updated, err := s.bar.UpdateItem(ctx, item)
	if err != nil {
		return domain.BarItem{}, fmt.Errorf("s.bar.UpdateItem -> %w", err)
	}

	return updated, nil
}

// RemoveItem hides an item from the catalog. Sold lines keep referring to it.
func (s *BarService) RemoveItem(ctx context.Context, id uint) error {
	if err := s.bar.SetAvailability(ctx, id, false); err != nil {
		return fmt.Errorf("s.bar.SetAvailability -> %w", err)
	}

	return nil
}

func (s *BarService) SetInventory(ctx context.Context, itemID uint, quantity int) error {
	if quantity < 0 {
		return domain.NewError(domain.KindInvalid, "quantity cannot be negative")
	}

	if err := s.bar.SetInventory(ctx, itemID, quantity); err != nil {
		return fmt.Errorf("s.bar.SetInventory -> %w", err)
	}

	return nil
}

func (s *BarService) InviteDiscounts(ctx context.Context) ([]domain.InviteDiscount, error) {
	tiers, err := s.bar.ListInviteDiscounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.bar.ListInviteDiscounts -> %w", err)
	}

	return tiers, nil
}

func (s *BarService) SaveInviteDiscount(ctx context.Context, tier domain.InviteDiscount) (domain.InviteDiscount, error) {
	if tier.InviteCount < 0 {
		return domain.InviteDiscount{}, domain.NewError(domain.KindInvalid, "invite count cannot be negative")
	}
	if err := validatePercent(tier.Percent); err != nil {
		return domain.InviteDiscount{}, err
	}

	saved, err := s.bar.UpsertInviteDiscount(ctx, tier)
	if err != nil {
		return domain.InviteDiscount{}, fmt.Errorf("s.bar.UpsertInviteDiscount -> %w", err)
	}

	return saved, nil
}

func (s *BarService) DeleteInviteDiscount(ctx context.Context, id uint) error {
	if err := s.bar.DeleteInviteDiscount(ctx, id); err != nil {
		return fmt.Errorf("s.bar.DeleteInviteDiscount -> %w", err)
	}

	return nil
}

func (s *BarService) PresetDiscounts(ctx context.Context) ([]domain.PresetDiscount, error) {
	presets, err := s.bar.ListPresetDiscounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.bar.ListPresetDiscounts -> %w", err)
	}

	return presets, nil
}

func (s *BarService) SetPresetDiscount(ctx context.Context, preset domain.PresetDiscount) error {
	if err := validatePercent(preset.Percent); err != nil {
		return err
	}
	if _, err := s.accounts.FindByID(ctx, preset.AccountID); err != nil {
		return fmt.Errorf("s.accounts.FindByID -> %w", err)
	}

	if err := s.bar.SetPresetDiscount(ctx, preset); err != nil {
		return fmt.Errorf("s.bar.SetPresetDiscount -> %w", err)
	}

	return nil
}

func (s *BarService) DeletePresetDiscount(ctx context.Context, accountID uint) error {
	if err := s.bar.DeletePresetDiscount(ctx, accountID); err != nil {
		return fmt.Errorf("s.bar.DeletePresetDiscount -> %w", err)
	}

	return nil
}

func validateItem(item domain.BarItem) error {
	if strings.TrimSpace(item.Name) == "" {
		return domain.NewError(domain.KindInvalid, "item name is required")
	}
	if item.Price.IsNegative() {
		return domain.NewError(domain.KindInvalid, "price cannot be negative")
	}

	return nil
}

func validatePercent(p decimal.Decimal) error {
	if p.IsNegative() || p.GreaterThan(hundred) {
		return domain.NewError(domain.KindInvalid, "discount percent must be between 0 and 100")
	}

	return nil
}
