package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/pyramide/event-api/internal/domain"
	"github.com/pyramide/event-api/internal/repository/dao"
)

type MessageDAO interface {
	InsertBatch(ctx context.Context, messages []dao.BotMessage) ([]dao.BotMessage, error)
	FindByID(ctx context.Context, id uint) (dao.BotMessage, error)
	UpdateStatus(ctx context.Context, id uint, status string, at time.Time) error
	List(ctx context.Context, limit int) ([]dao.BotMessage, error)
}

type MessageRepository struct {
	dao MessageDAO
}

func NewMessageRepository(dao MessageDAO) *MessageRepository {
	return &MessageRepository{
		dao: dao,
	}
}

func (r *MessageRepository) CreateBatch(ctx context.Context, messages []domain.BotMessage) ([]domain.BotMessage, error) {
	rows := make([]dao.BotMessage, 0, len(messages))
	for _, m := range messages {
		rows = append(rows, dao.BotMessage{
			BatchID:      m.BatchID,
			MessageType:  m.Type,
			Content:      m.Content,
			SentToUserID: m.RecipientID,
			Recipient:    m.Recipient,
			Status:       string(m.Status),
			SentAt:       m.SentAt,
		})
	}

	created, err := r.dao.InsertBatch(ctx, rows)
	if err != nil {
		return nil, fmt.Errorf("r.dao.InsertBatch -> %w", err)
	}

	return messagesToDomain(created), nil
}

func (r *MessageRepository) FindByID(ctx context.Context, id uint) (domain.BotMessage, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.BotMessage{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return messageToDomain(found), nil
}

func (r *MessageRepository) UpdateStatus(ctx context.Context, id uint, status domain.MessageStatus, at time.Time) error {
	if err := r.dao.UpdateStatus(ctx, id, string(status), at); err != nil {
		return fmt.Errorf("r.dao.UpdateStatus -> %w", err)
	}

	return nil
}

func (r *MessageRepository) List(ctx context.Context, limit int) ([]domain.BotMessage, error) {
	found, err := r.dao.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("r.dao.List -> %w", err)
	}

	return messagesToDomain(found), nil
}

func messageToDomain(m dao.BotMessage) domain.BotMessage {
	return domain.BotMessage{
		ID:          m.ID,
		BatchID:     m.BatchID,
		Type:        m.MessageType,
		Content:     m.Content,
		RecipientID: m.SentToUserID,
		Recipient:   m.Recipient,
		Status:      domain.MessageStatus(m.Status),
		SentAt:      m.SentAt,
	}
}

func messagesToDomain(messages []dao.BotMessage) []domain.BotMessage {
	out := make([]domain.BotMessage, 0, len(messages))
	for _, m := range messages {
		out = append(out, messageToDomain(m))
	}

	return out
}
