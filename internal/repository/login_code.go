package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/pyramide/event-api/internal/domain"
	"github.com/pyramide/event-api/internal/repository/dao"
)

var ErrLoginCodeNotFound = dao.ErrLoginCodeNotFound

type LoginCodeDAO interface {
	Upsert(ctx context.Context, code dao.LoginCode) error
	Find(ctx context.Context, username string) (dao.LoginCode, error)
	Delete(ctx context.Context, username string) error
	IncrementAttempts(ctx context.Context, username string) (int, error)
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

type LoginCodeRepository struct {
	dao LoginCodeDAO
}

func NewLoginCodeRepository(dao LoginCodeDAO) *LoginCodeRepository {
	return &LoginCodeRepository{
		dao: dao,
	}
}

func (r *LoginCodeRepository) Save(ctx context.Context, code domain.LoginCode) error {
	err := r.dao.Upsert(ctx, dao.LoginCode{
		Username:  code.Username,
		CodeHash:  code.CodeHash,
		Attempts:  code.Attempts,
		ExpiresAt: code.ExpiresAt,
	})
	if err != nil {
		return fmt.Errorf("r.dao.Upsert -> %w", err)
	}

	return nil
}

func (r *LoginCodeRepository) Find(ctx context.Context, username string) (domain.LoginCode, error) {
	found, err := r.dao.Find(ctx, username)
	if err != nil {
		return domain.LoginCode{}, fmt.Errorf("r.dao.Find -> %w", err)
	}

	return domain.LoginCode{
		Username:  found.Username,
		CodeHash:  found.CodeHash,
		Attempts:  found.Attempts,
		ExpiresAt: found.ExpiresAt,
	}, nil
}

func (r *LoginCodeRepository) Delete(ctx context.Context, username string) error {
	if err := r.dao.Delete(ctx, username); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func (r *LoginCodeRepository) IncrementAttempts(ctx context.Context, username string) (int, error) {
	n, err := r.dao.IncrementAttempts(ctx, username)
	if err != nil {
		return 0, fmt.Errorf("r.dao.IncrementAttempts -> %w", err)
	}

	return n, nil
}

func (r *LoginCodeRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	n, err := r.dao.DeleteExpired(ctx, now)
	if err != nil {
		return 0, fmt.Errorf("r.dao.DeleteExpired -> %w", err)
	}

	return n, nil
}
