package repository

import (
	"context"
	"fmt"

	"github.com/pyramide/event-api/internal/domain"
	"github.com/pyramide/event-api/internal/repository/dao"
)

type EventDAO interface {
	EnsureSingleton(ctx context.Context, defaults dao.EventConfig) error
	Get(ctx context.Context) (dao.EventConfig, error)
	Update(ctx context.Context, conf dao.EventConfig) (dao.EventConfig, error)
	Admit(ctx context.Context, accountID uint) (bool, error)
}

type EventRepository struct {
	dao EventDAO
}

func NewEventRepository(dao EventDAO) *EventRepository {
	return &EventRepository{
		dao: dao,
	}
}

func (r *EventRepository) EnsureSingleton(ctx context.Context, defaults domain.EventConfig) error {
	if err := r.dao.EnsureSingleton(ctx, eventToDAO(defaults)); err != nil {
		return fmt.Errorf("r.dao.EnsureSingleton -> %w", err)
	}

	return nil
}

func (r *EventRepository) Get(ctx context.Context) (domain.EventConfig, error) {
	conf, err := r.dao.Get(ctx)
	if err != nil {
		return domain.EventConfig{}, fmt.Errorf("r.dao.Get -> %w", err)
	}

	return eventToDomain(conf), nil
}

func (r *EventRepository) Update(ctx context.Context, conf domain.EventConfig) (domain.EventConfig, error) {
	updated, err := r.dao.Update(ctx, eventToDAO(conf))
	if err != nil {
		return domain.EventConfig{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return eventToDomain(updated), nil
}

func (r *EventRepository) Admit(ctx context.Context, accountID uint) (bool, error) {
	admitted, err := r.dao.Admit(ctx, accountID)
	if err != nil {
		return false, fmt.Errorf("r.dao.Admit -> %w", err)
	}

	return admitted, nil
}

func eventToDAO(c domain.EventConfig) dao.EventConfig {
	return dao.EventConfig{
		ID:                  c.ID,
		EventDate:           c.EventDate,
		EventPlace:          c.EventPlace,
		Latitude:            c.Latitude,
		Longitude:           c.Longitude,
		InfoPublic:          c.InfoPublic,
		MaxParticipants:     c.MaxParticipants,
		CurrentParticipants: c.CurrentParticipants,
		MinTicketPrice:      c.MinTicketPrice,
		MaxTicketPrice:      c.MaxTicketPrice,
		Currency:            c.Currency,
		MaxInvitesPerUser:   c.MaxInvitesPerUser,
		MaxDiscountPercent:  c.MaxDiscountPercent,
	}
}

func eventToDomain(c dao.EventConfig) domain.EventConfig {
	return domain.EventConfig{
		ID:                  c.ID,
		EventDate:           c.EventDate,
		EventPlace:          c.EventPlace,
		Latitude:            c.Latitude,
		Longitude:           c.Longitude,
		InfoPublic:          c.InfoPublic,
		MaxParticipants:     c.MaxParticipants,
		CurrentParticipants: c.CurrentParticipants,
		MinTicketPrice:      c.MinTicketPrice,
		MaxTicketPrice:      c.MaxTicketPrice,
		Currency:            c.Currency,
		MaxInvitesPerUser:   c.MaxInvitesPerUser,
		MaxDiscountPercent:  c.MaxDiscountPercent,
		UpdatedAt:           c.UpdatedAt,
	}
}
