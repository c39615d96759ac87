package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/pyramide/event-api/internal/domain"
)

var (
	ErrAccountExists   = domain.NewError(domain.KindConflict, "account already exists")
	ErrAccountNotFound = domain.NewError(domain.KindNotFound, "account not found")
)

type Account struct {
	ID uint `gorm:"primaryKey"`

	ExternalID string `gorm:"uniqueIndex:idx_accounts_external_id;not null"`
	Username   string `gorm:"uniqueIndex:idx_accounts_username;not null"`
	FullName   string
	Role       string `gorm:"not null;default:guest"`
	IsBanned   bool   `gorm:"not null;default:false"`
	Attending  *bool
	Admitted   bool  `gorm:"not null;default:false"`
	InvitedBy  *uint `gorm:"index"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type AccountDAO struct {
	db *gorm.DB
}

func NewAccountDAO(db *gorm.DB) *AccountDAO {
	return &AccountDAO{
		db: db,
	}
}

func (d *AccountDAO) Insert(ctx context.Context, account Account) (Account, error) {
	result := d.db.WithContext(ctx).Create(&account)
	if result.Error != nil {
		if isUniqueViolation(result.Error, "idx_accounts_username") ||
			isUniqueViolation(result.Error, "idx_accounts_external_id") {
			return Account{}, ErrAccountExists
		}

		return Account{}, result.Error
	}

	return account, nil
}

func (d *AccountDAO) FindByID(ctx context.Context, id uint) (Account, error) {
	var account Account
	result := d.db.WithContext(ctx).First(&account, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Account{}, ErrAccountNotFound
		}

		return Account{}, result.Error
	}

	return account, nil
}

func (d *AccountDAO) FindByUsername(ctx context.Context, username string) (Account, error) {
	var account Account
	result := d.db.WithContext(ctx).Where("username = ?", username).First(&account)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Account{}, ErrAccountNotFound
		}

		return Account{}, result.Error
	}

	return account, nil
}

func (d *AccountDAO) List(ctx context.Context) ([]Account, error) {
	var accounts []Account
	if err := d.db.WithContext(ctx).Order("id").Find(&accounts).Error; err != nil {
		return nil, err
	}

	return accounts, nil
}

// ListReachable returns every account that is not banned.
func (d *AccountDAO) ListReachable(ctx context.Context) ([]Account, error) {
	var accounts []Account
	if err := d.db.WithContext(ctx).Where("is_banned = ?", false).Order("id").Find(&accounts).Error; err != nil {
		return nil, err
	}

	return accounts, nil
}

func (d *AccountDAO) update(ctx context.Context, id uint, column string, value any) error {
	result := d.db.WithContext(ctx).Model(&Account{}).Where("id = ?", id).Update(column, value)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrAccountNotFound
	}

	return nil
}

func (d *AccountDAO) SetBanned(ctx context.Context, id uint, banned bool) error {
	return d.update(ctx, id, "is_banned", banned)
}

func (d *AccountDAO) SetRole(ctx context.Context, id uint, role string) error {
	return d.update(ctx, id, "role", role)
}

func (d *AccountDAO) SetAttendance(ctx context.Context, id uint, attending *bool) error {
	return d.update(ctx, id, "attending", attending)
}
