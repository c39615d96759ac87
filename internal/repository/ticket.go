package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/pyramide/event-api/internal/domain"
	"github.com/pyramide/event-api/internal/repository/dao"
)

var ErrTicketNotFound = dao.ErrTicketNotFound

type TicketDAO interface {
	Insert(ctx context.Context, ticket dao.Ticket) (dao.Ticket, error)
	FindByCode(ctx context.Context, code string) (dao.Ticket, error)
	FindByAccountID(ctx context.Context, accountID uint) (dao.Ticket, error)
	List(ctx context.Context) ([]dao.Ticket, error)
	MarkVerified(ctx context.Context, code string, by uint, at time.Time) (bool, error)
	SetPaymentStatus(ctx context.Context, code, status string, paidAt *time.Time) (bool, error)
}

type TicketRepository struct {
	dao TicketDAO
}

func NewTicketRepository(dao TicketDAO) *TicketRepository {
	return &TicketRepository{
		dao: dao,
	}
}

func (r *TicketRepository) Create(ctx context.Context, ticket domain.Ticket) (domain.Ticket, error) {
	created, err := r.dao.Insert(ctx, dao.Ticket{
		AccountID:     ticket.AccountID,
		Code:          ticket.Code,
		Price:         ticket.Price,
		Currency:      ticket.Currency,
		Tier:          ticket.Tier,
		PaymentStatus: string(ticket.PaymentStatus),
		IssuedAt:      ticket.IssuedAt,
	})
	if err != nil {
		return domain.Ticket{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return ticketToDomain(created), nil
}

func (r *TicketRepository) FindByCode(ctx context.Context, code string) (domain.Ticket, error) {
	found, err := r.dao.FindByCode(ctx, code)
	if err != nil {
		return domain.Ticket{}, fmt.Errorf("r.dao.FindByCode -> %w", err)
	}

	return ticketToDomain(found), nil
}

func (r *TicketRepository) FindByAccountID(ctx context.Context, accountID uint) (domain.Ticket, error) {
	found, err := r.dao.FindByAccountID(ctx, accountID)
	if err != nil {
		return domain.Ticket{}, fmt.Errorf("r.dao.FindByAccountID -> %w", err)
	}

	return ticketToDomain(found), nil
}

func (r *TicketRepository) List(ctx context.Context) ([]domain.Ticket, error) {
	found, err := r.dao.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.List -> %w", err)
	}

	tickets := make([]domain.Ticket, 0, len(found))
	for _, t := range found {
		tickets = append(tickets, ticketToDomain(t))
	}

	return tickets, nil
}

func (r *TicketRepository) MarkVerified(ctx context.Context, code string, by uint, at time.Time) (bool, error) {
	changed, err := r.dao.MarkVerified(ctx, code, by, at)
	if err != nil {
		return false, fmt.Errorf("r.dao.MarkVerified -> %w", err)
	}

	return changed, nil
}

func (r *TicketRepository) SetPaymentStatus(ctx context.Context, code string, status domain.PaymentStatus, paidAt *time.Time) (bool, error) {
	changed, err := r.dao.SetPaymentStatus(ctx, code, string(status), paidAt)
	if err != nil {
		return false, fmt.Errorf("r.dao.SetPaymentStatus -> %w", err)
	}

	return changed, nil
}

func ticketToDomain(t dao.Ticket) domain.Ticket {
	return domain.Ticket{
		ID:            t.ID,
		AccountID:     t.AccountID,
		Code:          t.Code,
		Price:         t.Price,
		Currency:      t.Currency,
		Tier:          t.Tier,
		PaymentStatus: domain.PaymentStatus(t.PaymentStatus),
		IssuedAt:      t.IssuedAt,
		VerifiedAt:    t.VerifiedAt,
		PaidAt:        t.PaidAt,
	}
}
