package dao

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/pyramide/event-api/internal/domain"
)

var ErrEventConfigNotFound = domain.NewError(domain.KindNotFound, "event is not configured")

// EventConfig is a singleton row.
type EventConfig struct {
	ID uint `gorm:"primaryKey"`

	EventDate           time.Time `gorm:"not null"`
	EventPlace          string
	Latitude            *float64
	Longitude           *float64
	InfoPublic          bool                `gorm:"not null;default:false"`
	MaxParticipants     int                 `gorm:"not null;default:0"`
	CurrentParticipants int                 `gorm:"not null;default:0"`
	MinTicketPrice      decimal.NullDecimal `gorm:"type:numeric(10,2)"`
	MaxTicketPrice      decimal.NullDecimal `gorm:"type:numeric(10,2)"`
	Currency            string              `gorm:"type:varchar(10);not null;default:USD"`
	MaxInvitesPerUser   int                 `gorm:"not null;default:5"`
	MaxDiscountPercent  decimal.Decimal     `gorm:"type:numeric(5,2);not null;default:0"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type EventDAO struct {
	db *gorm.DB
}

func NewEventDAO(db *gorm.DB) *EventDAO {
	return &EventDAO{
		db: db,
	}
}

// EnsureSingleton inserts defaults when no configuration row exists yet.
func (d *EventDAO) EnsureSingleton(ctx context.Context, defaults EventConfig) error {
	var n int64
	if err := d.db.WithContext(ctx).Model(&EventConfig{}).Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	return d.db.WithContext(ctx).Create(&defaults).Error
}

func (d *EventDAO) Get(ctx context.Context) (EventConfig, error) {
	var conf EventConfig
	result := d.db.WithContext(ctx).Order("id").First(&conf)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return EventConfig{}, ErrEventConfigNotFound
		}

		return EventConfig{}, result.Error
	}

	return conf, nil
}

// Update writes every editable column. The participant counter is owned by
// Admit and is never written here.
func (d *EventDAO) Update(ctx context.Context, conf EventConfig) (EventConfig, error) {
	current, err := d.Get(ctx)
	if err != nil {
		return EventConfig{}, err
	}

	conf.ID = current.ID
	conf.CreatedAt = current.CreatedAt
	result := d.db.WithContext(ctx).Model(&conf).
		Select("*").
		Omit("id", "current_participants", "created_at").
		Updates(&conf)
	if result.Error != nil {
		return EventConfig{}, result.Error
	}

	return d.Get(ctx)
}

// Admit marks the account as counted and takes one seat, in one transaction.
// It reports false when the account was already counted. The seat is taken by
// a single conditional UPDATE so concurrent admissions cannot oversell.
// A max_participants of zero means no cap.
func (d *EventDAO) Admit(ctx context.Context, accountID uint) (bool, error) {
	admitted := false
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&Account{}).
			Where("id = ? AND admitted = ?", accountID, false).
			Update("admitted", true)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return nil
		}

		result = tx.Model(&EventConfig{}).
			Where("max_participants <= 0 OR current_participants < max_participants").
			Update("current_participants", gorm.Expr("current_participants + 1"))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domain.ErrEventFull
		}

		admitted = true
		return nil
	})
	if err != nil {
		return false, err
	}

	return admitted, nil
}
