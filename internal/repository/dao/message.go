package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/pyramide/event-api/internal/domain"
)

var ErrMessageNotFound = domain.NewError(domain.KindNotFound, "message not found")

type BotMessage struct {
	ID uint `gorm:"primaryKey"`

	BatchID      string `gorm:"index"`
	MessageType  string `gorm:"not null"`
	Content      string `gorm:"type:text;not null"`
	SentToUserID uint   `gorm:"not null;index"`
	Recipient    string `gorm:"not null"`
	Status       string `gorm:"not null;default:pending"`

	SentAt time.Time `gorm:"not null"`
}

type MessageDAO struct {
	db *gorm.DB
}

func NewMessageDAO(db *gorm.DB) *MessageDAO {
	return &MessageDAO{
		db: db,
	}
}

func (d *MessageDAO) InsertBatch(ctx context.Context, messages []BotMessage) ([]BotMessage, error) {
	if len(messages) == 0 {
		return messages, nil
	}
	if err := d.db.WithContext(ctx).CreateInBatches(&messages, 500).Error; err != nil {
		return nil, err
	}

	return messages, nil
}

func (d *MessageDAO) FindByID(ctx context.Context, id uint) (BotMessage, error) {
	var message BotMessage
	result := d.db.WithContext(ctx).First(&message, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return BotMessage{}, ErrMessageNotFound
		}

		return BotMessage{}, result.Error
	}

	return message, nil
}

func (d *MessageDAO) UpdateStatus(ctx context.Context, id uint, status string, at time.Time) error {
	return d.db.WithContext(ctx).Model(&BotMessage{}).Where("id = ?", id).
		Updates(map[string]any{"status": status, "sent_at": at}).Error
}

func (d *MessageDAO) List(ctx context.Context, limit int) ([]BotMessage, error) {
	var messages []BotMessage
	if err := d.db.WithContext(ctx).Order("id DESC").Limit(limit).Find(&messages).Error; err != nil {
		return nil, err
	}

	return messages, nil
}
