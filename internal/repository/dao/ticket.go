package dao

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/pyramide/event-api/internal/domain"
)

var ErrTicketNotFound = domain.NewError(domain.KindNotFound, "ticket not found")

type Ticket struct {
	ID uint `gorm:"primaryKey"`

	AccountID     uint            `gorm:"uniqueIndex:idx_tickets_account;not null"`
	Account       *Account        `gorm:"foreignKey:AccountID;constraint:OnDelete:RESTRICT"`
	Code          string          `gorm:"uniqueIndex:idx_tickets_code;not null"`
	Price         decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	Currency      string          `gorm:"type:varchar(10);not null"`
	Tier          string          `gorm:"not null"`
	PaymentStatus string          `gorm:"not null"`
	IssuedAt      time.Time       `gorm:"not null"`
	VerifiedAt    *time.Time
	VerifiedBy    *uint
	PaidAt        *time.Time
}

type TicketDAO struct {
	db *gorm.DB
}

func NewTicketDAO(db *gorm.DB) *TicketDAO {
	return &TicketDAO{
		db: db,
	}
}

func (d *TicketDAO) Insert(ctx context.Context, ticket Ticket) (Ticket, error) {
	result := d.db.WithContext(ctx).Create(&ticket)
	if result.Error != nil {
		if isUniqueViolation(result.Error, "idx_tickets_account") {
			return Ticket{}, domain.ErrTicketExists
		}

		return Ticket{}, result.Error
	}

	return ticket, nil
}

func (d *TicketDAO) find(ctx context.Context, query string, arg any) (Ticket, error) {
	var ticket Ticket
	result := d.db.WithContext(ctx).Where(query, arg).First(&ticket)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Ticket{}, ErrTicketNotFound
		}

		return Ticket{}, result.Error
	}

	return ticket, nil
}

func (d *TicketDAO) FindByCode(ctx context.Context, code string) (Ticket, error) {
	return d.find(ctx, "code = ?", code)
}

func (d *TicketDAO) FindByAccountID(ctx context.Context, accountID uint) (Ticket, error) {
	return d.find(ctx, "account_id = ?", accountID)
}

func (d *TicketDAO) List(ctx context.Context) ([]Ticket, error) {
	var tickets []Ticket
	if err := d.db.WithContext(ctx).Order("issued_at DESC").Find(&tickets).Error; err != nil {
		return nil, err
	}

	return tickets, nil
}

// MarkVerified stamps the first verification. It reports false when the
// ticket had already been verified.
func (d *TicketDAO) MarkVerified(ctx context.Context, code string, by uint, at time.Time) (bool, error) {
	result := d.db.WithContext(ctx).Model(&Ticket{}).
		Where("code = ? AND verified_at IS NULL", code).
		Updates(map[string]any{"verified_at": at, "verified_by": by})
	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected == 1, nil
}

// SetPaymentStatus changes the payment state of a verified, non-free ticket.
func (d *TicketDAO) SetPaymentStatus(ctx context.Context, code, status string, paidAt *time.Time) (bool, error) {
	result := d.db.WithContext(ctx).Model(&Ticket{}).
		Where("code = ? AND verified_at IS NOT NULL AND payment_status <> ?", code, string(domain.PaymentFree)).
		Updates(map[string]any{"payment_status": status, "paid_at": paidAt})
	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected == 1, nil
}
