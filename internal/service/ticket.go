package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pyramide/event-api/internal/domain"
	"github.com/pyramide/event-api/internal/events"
	"github.com/pyramide/event-api/internal/pkg/clock"
	"github.com/pyramide/event-api/internal/pricing"
	"github.com/pyramide/event-api/internal/repository"
)

//go:generate mockgen -source=ticket.go -destination=mocks/mock_ticket.go -package=mocks

var ErrTicketNotFound = repository.ErrTicketNotFound

// ErrInvalidTicket is what an inspector gets for an unknown credential.
var ErrInvalidTicket = ErrTicketNotFound.
	WithDetail("status", string(domain.ScanInvalid)).
	WithDetail("color", string(domain.ColorRed))

type TicketRepository interface {
	Create(ctx context.Context, ticket domain.Ticket) (domain.Ticket, error)
	FindByCode(ctx context.Context, code string) (domain.Ticket, error)
	FindByAccountID(ctx context.Context, accountID uint) (domain.Ticket, error)
	List(ctx context.Context) ([]domain.Ticket, error)
	MarkVerified(ctx context.Context, code string, by uint, at time.Time) (bool, error)
	SetPaymentStatus(ctx context.Context, code string, status domain.PaymentStatus, paidAt *time.Time) (bool, error)
}

type BarDiscounter interface {
	DiscountFor(ctx context.Context, accountID uint) (decimal.Decimal, error)
}

type TicketService struct {
	tickets   TicketRepository
	accounts  AccountReader
	invites   InviteStatsReader
	event     EventConfigReader
	discounts BarDiscounter
	emitter   EventEmitter
	clock     clock.Clock
}

func NewTicketService(
	tickets TicketRepository,
	accounts AccountReader,
	invites InviteStatsReader,
	event EventConfigReader,
	discounts BarDiscounter,
	emitter EventEmitter,
	clk clock.Clock,
) *TicketService {
	return &TicketService{
		tickets:   tickets,
		accounts:  accounts,
		invites:   invites,
		event:     event,
		discounts: discounts,
		emitter:   emitter,
		clock:     clk,
	}
}

// Quote returns the live price for accountID. It is recomputed on every
// call from the current accepted count and configuration.
func (s *TicketService) Quote(ctx context.Context, accountID uint) (domain.PriceQuote, error) {
	account, err := s.accounts.FindByID(ctx, accountID)
	if err != nil {
		return domain.PriceQuote{}, fmt.Errorf("s.accounts.FindByID -> %w", err)
	}

	return s.quote(ctx, account)
}

func (s *TicketService) quote(ctx context.Context, account domain.Account) (domain.PriceQuote, error) {
	conf, err := s.event.Get(ctx)
	if err != nil {
		return domain.PriceQuote{}, fmt.Errorf("s.event.Get -> %w", err)
	}

	stats, err := s.invites.Stats(ctx, account.ID)
	if err != nil {
		return domain.PriceQuote{}, fmt.Errorf("s.invites.Stats -> %w", err)
	}

	quote := domain.PriceQuote{
		Currency:  conf.Currency,
		Accepted:  stats.Accepted,
		Used:      stats.Used(),
		Quota:     conf.MaxInvitesPerUser,
		Unlimited: account.Role.Can(domain.CapUnlimitedInvites),
	}

	if account.Role != domain.RoleGuest {
		quote.Price = decimal.NewNullDecimal(decimal.Zero)
		quote.Configured = true
		return quote, nil
	}

	if price, ok := pricing.Price(stats.Accepted, pricing.FromEvent(conf)); ok {
		quote.Price = decimal.NewNullDecimal(price)
		quote.Configured = true
	}

	return quote, nil
}

// Generate issues the account's ticket. The price is frozen at this moment;
// staff roles and unpriced events get a free ticket.
func (s *TicketService) Generate(ctx context.Context, accountID uint) (domain.Ticket, error) {
	account, err := s.accounts.FindByID(ctx, accountID)
	if err != nil {
		return domain.Ticket{}, fmt.Errorf("s.accounts.FindByID -> %w", err)
	}

	quote, err := s.quote(ctx, account)
	if err != nil {
		return domain.Ticket{}, err
	}

	ticket := domain.Ticket{
		AccountID:     accountID,
		Code:          uuid.NewString(),
		Price:         decimal.Zero,
		Currency:      quote.Currency,
		Tier:          domain.TierGuest,
		PaymentStatus: domain.PaymentFree,
		IssuedAt:      s.clock.Now(),
	}
	if account.Role != domain.RoleGuest {
		ticket.Tier = domain.TierStaff
	} else if quote.Price.Valid && quote.Price.Decimal.IsPositive() {
		ticket.Price = quote.Price.Decimal
		ticket.PaymentStatus = domain.PaymentUnpaid
	}

	created, err := s.tickets.Create(ctx, ticket)
	if err != nil {
		return domain.Ticket{}, fmt.Errorf("s.tickets.Create -> %w", err)
	}

	events.Emit(ctx, s.emitter, events.Event{
		Type:       events.TicketGenerated,
		Key:        accountKey(accountID),
		OccurredAt: created.IssuedAt,
		Payload:    created,
	})

	return created, nil
}

func (s *TicketService) Mine(ctx context.Context, accountID uint) (domain.Ticket, error) {
	ticket, err := s.tickets.FindByAccountID(ctx, accountID)
	if err != nil {
		return domain.Ticket{}, fmt.Errorf("s.tickets.FindByAccountID -> %w", err)
	}

	return ticket, nil
}

func (s *TicketService) List(ctx context.Context) ([]domain.Ticket, error) {
	tickets, err := s.tickets.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.tickets.List -> %w", err)
	}

	return tickets, nil
}

// Verify records the first presentation of code. Later scans report
// already_verified with the same holder details and change nothing.
func (s *TicketService) Verify(ctx context.Context, inspectorID uint, code string) (domain.Admission, error) {
	ticket, err := s.tickets.FindByCode(ctx, code)
	if err != nil {
		if errors.Is(err, ErrTicketNotFound) {
			return domain.Admission{}, ErrInvalidTicket
		}
		return domain.Admission{}, fmt.Errorf("s.tickets.FindByCode -> %w", err)
	}

	status := domain.ScanAlreadyVerified
	if !ticket.Verified() {
		now := s.clock.Now()
		changed, err := s.tickets.MarkVerified(ctx, code, inspectorID, now)
		if err != nil {
			return domain.Admission{}, fmt.Errorf("s.tickets.MarkVerified -> %w", err)
		}
		if changed {
			status = domain.ScanVerified
			ticket.VerifiedAt = &now
		} else if ticket, err = s.tickets.FindByCode(ctx, code); err != nil {
			// Another inspector won the race; report their timestamp.
			return domain.Admission{}, fmt.Errorf("s.tickets.FindByCode -> %w", err)
		}
	}

	admission, err := s.admission(ctx, ticket, status)
	if err != nil {
		return domain.Admission{}, err
	}

	if status == domain.ScanVerified {
		events.Emit(ctx, s.emitter, events.Event{
			Type:       events.TicketVerified,
			Key:        accountKey(ticket.AccountID),
			OccurredAt: *ticket.VerifiedAt,
			Payload:    map[string]any{"ticket_id": ticket.ID, "verified_by": inspectorID},
		})
	}

	return admission, nil
}

func (s *TicketService) admission(ctx context.Context, ticket domain.Ticket, status domain.ScanStatus) (domain.Admission, error) {
	holder, err := s.accounts.FindByID(ctx, ticket.AccountID)
	if err != nil {
		return domain.Admission{}, fmt.Errorf("s.accounts.FindByID -> %w", err)
	}

	stats, err := s.invites.Stats(ctx, holder.ID)
	if err != nil {
		return domain.Admission{}, fmt.Errorf("s.invites.Stats -> %w", err)
	}

	discount, err := s.discounts.DiscountFor(ctx, holder.ID)
	if err != nil {
		return domain.Admission{}, fmt.Errorf("s.discounts.DiscountFor -> %w", err)
	}

	return domain.Admission{
		Status:        status,
		AccountID:     holder.ID,
		Username:      holder.Username,
		Role:          holder.Role,
		IsSpecial:     holder.Role.Can(domain.CapSpecialAdmission),
		VerifiedAt:    ticket.VerifiedAt,
		TicketPrice:   ticket.Price,
		PaymentStatus: ticket.PaymentStatus,
		Color:         domain.Classify(status, holder.Role, ticket.PaymentStatus),
		Invites:       stats,
		BarDiscount:   discount,
	}, nil
}

// ConfirmPayment sets the cash payment state of a verified, priced ticket.
// Confirming the same state twice is harmless.
func (s *TicketService) ConfirmPayment(ctx context.Context, code string, paid bool) (domain.Ticket, error) {
	ticket, err := s.tickets.FindByCode(ctx, code)
	if err != nil {
		return domain.Ticket{}, fmt.Errorf("s.tickets.FindByCode -> %w", err)
	}
	if !ticket.Verified() {
		return domain.Ticket{}, domain.ErrTicketNotVerified
	}
	if ticket.PaymentStatus == domain.PaymentFree {
		return domain.Ticket{}, domain.ErrNoPaymentDue
	}

	status := domain.PaymentUnpaid
	var paidAt *time.Time
	if paid {
		now := s.clock.Now()
		status = domain.PaymentPaid
		paidAt = &now
	}

	changed, err := s.tickets.SetPaymentStatus(ctx, code, status, paidAt)
	if err != nil {
		return domain.Ticket{}, fmt.Errorf("s.tickets.SetPaymentStatus -> %w", err)
	}
	if !changed {
		return domain.Ticket{}, domain.ErrTicketNotVerified
	}

	ticket.PaymentStatus = status
	ticket.PaidAt = paidAt

	if paid {
		events.Emit(ctx, s.emitter, events.Event{
			Type:       events.TicketPaid,
			Key:        accountKey(ticket.AccountID),
			OccurredAt: *paidAt,
			Payload:    map[string]any{"ticket_id": ticket.ID, "amount": ticket.Price, "currency": ticket.Currency},
		})
	}

	return ticket, nil
}
