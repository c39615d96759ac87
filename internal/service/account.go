package service

import (
	"context"
	"fmt"

	"github.com/pyramide/event-api/internal/domain"
	"github.com/pyramide/event-api/internal/repository"
)

//go:generate mockgen -source=account.go -destination=mocks/mock_account.go -package=mocks

var ErrAccountNotFound = repository.ErrAccountNotFound

type AccountRepository interface {
	FindByID(ctx context.Context, id uint) (domain.Account, error)
	List(ctx context.Context) ([]domain.Account, error)
	SetBanned(ctx context.Context, id uint, banned bool) error
	SetRole(ctx context.Context, id uint, role domain.Role) error
	SetAttendance(ctx context.Context, id uint, attending *bool) error
}

type AccountService struct {
	repo AccountRepository
}

func NewAccountService(repo AccountRepository) *AccountService {
	return &AccountService{
		repo: repo,
	}
}

func (s *AccountService) Get(ctx context.Context, id uint) (domain.Account, error) {
	account, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Account{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return account, nil
}

func (s *AccountService) List(ctx context.Context) ([]domain.Account, error) {
	accounts, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.List -> %w", err)
	}

	return accounts, nil
}

func (s *AccountService) SetAttendance(ctx context.Context, id uint, attending bool) (domain.Account, error) {
	if err := s.repo.SetAttendance(ctx, id, &attending); err != nil {
		return domain.Account{}, fmt.Errorf("s.repo.SetAttendance -> %w", err)
	}

	return s.Get(ctx, id)
}

// SetBanned bans or unbans target. An admin cannot ban itself.
func (s *AccountService) SetBanned(ctx context.Context, actorID, targetID uint, banned bool) (domain.Account, error) {
	if banned && actorID == targetID {
		return domain.Account{}, domain.NewError(domain.KindConflict, "you cannot ban yourself")
	}
	if _, err := s.Get(ctx, targetID); err != nil {
		return domain.Account{}, err
	}

	if err := s.repo.SetBanned(ctx, targetID, banned); err != nil {
		return domain.Account{}, fmt.Errorf("s.repo.SetBanned -> %w", err)
	}

	return s.Get(ctx, targetID)
}

// SetRole changes target's role. An admin cannot demote itself so at least
// one admin always remains reachable.
func (s *AccountService) SetRole(ctx context.Context, actorID, targetID uint, role string) (domain.Account, error) {
	parsed, err := domain.ParseRole(role)
	if err != nil {
		return domain.Account{}, err
	}
	if actorID == targetID && !parsed.Can(domain.CapAdmin) {
		return domain.Account{}, domain.NewError(domain.KindConflict, "you cannot remove your own admin role")
	}
	if _, err = s.Get(ctx, targetID); err != nil {
		return domain.Account{}, err
	}

	if err = s.repo.SetRole(ctx, targetID, parsed); err != nil {
		return domain.Account{}, fmt.Errorf("s.repo.SetRole -> %w", err)
	}

	return s.Get(ctx, targetID)
}
