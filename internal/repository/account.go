package repository

import (
	"context"
	"fmt"

	"github.com/pyramide/event-api/internal/domain"
	"github.com/pyramide/event-api/internal/repository/dao"
)

var (
	ErrAccountExists   = dao.ErrAccountExists
	ErrAccountNotFound = dao.ErrAccountNotFound
)

type AccountDAO interface {
	Insert(ctx context.Context, account dao.Account) (dao.Account, error)
	FindByID(ctx context.Context, id uint) (dao.Account, error)
	FindByUsername(ctx context.Context, username string) (dao.Account, error)
	List(ctx context.Context) ([]dao.Account, error)
	ListReachable(ctx context.Context) ([]dao.Account, error)
	SetBanned(ctx context.Context, id uint, banned bool) error
	SetRole(ctx context.Context, id uint, role string) error
	SetAttendance(ctx context.Context, id uint, attending *bool) error
}

type AccountRepository struct {
	dao AccountDAO
}

func NewAccountRepository(dao AccountDAO) *AccountRepository {
	return &AccountRepository{
		dao: dao,
	}
}

func (r *AccountRepository) Create(ctx context.Context, account domain.Account) (domain.Account, error) {
	created, err := r.dao.Insert(ctx, accountToDAO(account))
	if err != nil {
		return domain.Account{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return accountToDomain(created), nil
}

func (r *AccountRepository) FindByID(ctx context.Context, id uint) (domain.Account, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Account{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return accountToDomain(found), nil
}

func (r *AccountRepository) FindByUsername(ctx context.Context, username string) (domain.Account, error) {
	found, err := r.dao.FindByUsername(ctx, username)
	if err != nil {
		return domain.Account{}, fmt.Errorf("r.dao.FindByUsername -> %w", err)
	}

	return accountToDomain(found), nil
}

func (r *AccountRepository) List(ctx context.Context) ([]domain.Account, error) {
	found, err := r.dao.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.List -> %w", err)
	}

	return accountsToDomain(found), nil
}

func (r *AccountRepository) ListReachable(ctx context.Context) ([]domain.Account, error) {
	found, err := r.dao.ListReachable(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.ListReachable -> %w", err)
	}

	return accountsToDomain(found), nil
}

func (r *AccountRepository) SetBanned(ctx context.Context, id uint, banned bool) error {
	if err := r.dao.SetBanned(ctx, id, banned); err != nil {
		return fmt.Errorf("r.dao.SetBanned -> %w", err)
	}

	return nil
}

func (r *AccountRepository) SetRole(ctx context.Context, id uint, role domain.Role) error {
	if err := r.dao.SetRole(ctx, id, string(role)); err != nil {
		return fmt.Errorf("r.dao.SetRole -> %w", err)
	}

	return nil
}

func (r *AccountRepository) SetAttendance(ctx context.Context, id uint, attending *bool) error {
	if err := r.dao.SetAttendance(ctx, id, attending); err != nil {
		return fmt.Errorf("r.dao.SetAttendance -> %w", err)
	}

	return nil
}

func accountToDAO(a domain.Account) dao.Account {
	return dao.Account{
		ID:         a.ID,
		ExternalID: a.ExternalID,
		Username:   a.Username,
		FullName:   a.FullName,
		Role:       string(a.Role),
		IsBanned:   a.IsBanned,
		Attending:  a.Attending,
		Admitted:   a.Admitted,
		InvitedBy:  a.InvitedBy,
	}
}

func accountToDomain(a dao.Account) domain.Account {
	return domain.Account{
		ID:         a.ID,
		ExternalID: a.ExternalID,
		Username:   a.Username,
		FullName:   a.FullName,
		Role:       domain.Role(a.Role),
		IsBanned:   a.IsBanned,
		Attending:  a.Attending,
		Admitted:   a.Admitted,
		InvitedBy:  a.InvitedBy,
		CreatedAt:  a.CreatedAt,
		UpdatedAt:  a.UpdatedAt,
	}
}

func accountsToDomain(accounts []dao.Account) []domain.Account {
	out := make([]domain.Account, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, accountToDomain(a))
	}

	return out
}
