package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/biter777/countries"
	"github.com/shopspring/decimal"

	"github.com/pyramide/event-api/internal/domain"
)

//go:generate mockgen -source=event.go -destination=mocks/mock_event.go -package=mocks

type EventRepository interface {
	Get(ctx context.Context) (domain.EventConfig, error)
	Update(ctx context.Context, conf domain.EventConfig) (domain.EventConfig, error)
}

type EventService struct {
	repo EventRepository
}

func NewEventService(repo EventRepository) *EventService {
	return &EventService{
		repo: repo,
	}
}

func (s *EventService) Config(ctx context.Context) (domain.EventConfig, error) {
	conf, err := s.repo.Get(ctx)
	if err != nil {
		return domain.EventConfig{}, fmt.Errorf("s.repo.Get -> %w", err)
	}

	return conf, nil
}

// Info returns what guests may see. Place and coordinates stay hidden until
// the organisers make them public.
func (s *EventService) Info(ctx context.Context) (domain.EventInfo, error) {
	conf, err := s.Config(ctx)
	if err != nil {
		return domain.EventInfo{}, err
	}

	return conf.Info(), nil
}

// Update replaces the editable configuration. The participant counter is
// owned by admissions and is never written from here.
func (s *EventService) Update(ctx context.Context, conf domain.EventConfig) (domain.EventConfig, error) {
	conf.Currency = strings.ToUpper(strings.TrimSpace(conf.Currency))
	conf.MinTicketPrice = roundPrice(conf.MinTicketPrice)
	conf.MaxTicketPrice = roundPrice(conf.MaxTicketPrice)
	if err := validateEventConfig(conf); err != nil {
		return domain.EventConfig{}, err
	}

	updated, err := s.repo.Update(ctx, conf)
	if err != nil {
		return domain.EventConfig{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

func validateEventConfig(c domain.EventConfig) error {
	if countries.CurrencyCodeByName(c.Currency) == countries.CurrencyUnknown {
		return domain.ErrInvalid.WithDetail("currency", "unknown ISO 4217 code "+c.Currency)
	}
	if c.MaxInvitesPerUser < 0 {
		return domain.ErrInvalid.WithDetail("max_invites_per_user", "cannot be negative")
	}
	if c.MaxDiscountPercent.IsNegative() || c.MaxDiscountPercent.GreaterThan(hundred) {
		return domain.ErrInvalid.WithDetail("max_discount_percent", "must be between 0 and 100")
	}
	if c.MinTicketPrice.Valid && c.MinTicketPrice.Decimal.IsNegative() {
		return domain.ErrInvalid.WithDetail("min_ticket_price", "cannot be negative")
	}
	if c.MaxTicketPrice.Valid && c.MaxTicketPrice.Decimal.IsNegative() {
		return domain.ErrInvalid.WithDetail("max_ticket_price", "cannot be negative")
	}
	if c.MinTicketPrice.Valid && !c.MaxTicketPrice.Valid {
		return domain.ErrInvalid.WithDetail("max_ticket_price", "required when a minimum price is set")
	}
	if c.MinTicketPrice.Valid && c.MinTicketPrice.Decimal.GreaterThan(c.MaxTicketPrice.Decimal) {
		return domain.ErrInvalid.WithDetail("min_ticket_price", "cannot exceed the maximum price")
	}
	if (c.Latitude == nil) != (c.Longitude == nil) {
		return domain.ErrInvalid.WithDetail("latitude", "latitude and longitude go together")
	}

	return nil
}

// roundPrice is applied to configured prices so they match the numeric(10,2)
// columns they are stored in.
func roundPrice(p decimal.NullDecimal) decimal.NullDecimal {
	if !p.Valid {
		return p
	}

	return decimal.NewNullDecimal(p.Decimal.Round(2))
}
