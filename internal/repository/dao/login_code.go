package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pyramide/event-api/internal/domain"
)

var ErrLoginCodeNotFound = domain.NewError(domain.KindInvalidCredential, "no pending code for this user")

type LoginCode struct {
	Username  string    `gorm:"primaryKey"`
	CodeHash  string    `gorm:"not null"`
	Attempts  int       `gorm:"not null;default:0"`
	ExpiresAt time.Time `gorm:"not null;index"`
	CreatedAt time.Time `gorm:"not null"`
}

type LoginCodeDAO struct {
	db *gorm.DB
}

func NewLoginCodeDAO(db *gorm.DB) *LoginCodeDAO {
	return &LoginCodeDAO{
		db: db,
	}
}

// Upsert replaces any previous code for the same username.
func (d *LoginCodeDAO) Upsert(ctx context.Context, code LoginCode) error {
	return d.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "username"}},
		DoUpdates: clause.AssignmentColumns([]string{"code_hash", "attempts", "expires_at", "created_at"}),
	}).Create(&code).Error
}

func (d *LoginCodeDAO) Find(ctx context.Context, username string) (LoginCode, error) {
	var code LoginCode
	result := d.db.WithContext(ctx).Where("username = ?", username).First(&code)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return LoginCode{}, ErrLoginCodeNotFound
		}

		return LoginCode{}, result.Error
	}

	return code, nil
}

func (d *LoginCodeDAO) Delete(ctx context.Context, username string) error {
	return d.db.WithContext(ctx).Where("username = ?", username).Delete(&LoginCode{}).Error
}

// IncrementAttempts returns the attempt count after the increment.
func (d *LoginCodeDAO) IncrementAttempts(ctx context.Context, username string) (int, error) {
	var attempts int
	err := d.db.WithContext(ctx).
		Raw("UPDATE login_codes SET attempts = attempts + 1 WHERE username = ? RETURNING attempts", username).
		Scan(&attempts).Error
	if err != nil {
		return 0, err
	}

	return attempts, nil
}

// DeleteExpired removes every code that expired before now.
func (d *LoginCodeDAO) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	result := d.db.WithContext(ctx).Where("expires_at <= ?", now).Delete(&LoginCode{})
	return result.RowsAffected, result.Error
}
