package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pyramide/event-api/internal/domain"
	"github.com/pyramide/event-api/internal/pkg/clock"
	"github.com/pyramide/event-api/internal/repository"
)

//go:generate mockgen -source=incident.go -destination=mocks/mock_incident.go -package=mocks

const defaultIncidentLimit = 50

var (
	ErrIncidentNotFound = repository.ErrIncidentNotFound
	ErrIncidentNotOpen  = domain.NewError(domain.KindConflict, "incident is not open")
)

type IncidentRepository interface {
	Create(ctx context.Context, incident domain.Incident) (domain.Incident, error)
	FindByID(ctx context.Context, id uint) (domain.Incident, error)
	List(ctx context.Context, status domain.IncidentStatus, limit int) ([]domain.Incident, error)
	Assign(ctx context.Context, incidentID, accountID uint) error
	Unassign(ctx context.Context, incidentID, accountID uint) error
	SetPeopleNeeded(ctx context.Context, id uint, n int) error
	Resolve(ctx context.Context, id uint, at time.Time) (bool, error)
	Close(ctx context.Context, id uint) error
}

type IncidentService struct {
	repo  IncidentRepository
	clock clock.Clock
}

func NewIncidentService(repo IncidentRepository, clk clock.Clock) *IncidentService {
	return &IncidentService{
		repo:  repo,
		clock: clk,
	}
}

func (s *IncidentService) Report(ctx context.Context, incident domain.Incident) (domain.Incident, error) {
	if strings.TrimSpace(incident.Type) == "" || strings.TrimSpace(incident.Description) == "" {
		return domain.Incident{}, domain.NewError(domain.KindInvalid, "type and description are required")
	}
	if incident.PeopleNeeded == 0 {
		incident.PeopleNeeded = 1
	}
	if incident.PeopleNeeded < 1 {
		return domain.Incident{}, domain.NewError(domain.KindInvalid, "people needed must be at least 1")
	}

	created, err := s.repo.Create(ctx, incident)
	if err != nil {
		return domain.Incident{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *IncidentService) List(ctx context.Context, status domain.IncidentStatus, limit int) ([]domain.Incident, error) {
	if limit <= 0 {
		limit = defaultIncidentLimit
	}

	incidents, err := s.repo.List(ctx, status, limit)
	if err != nil {
		return nil, fmt.Errorf("s.repo.List -> %w", err)
	}

	return incidents, nil
}

func (s *IncidentService) Get(ctx context.Context, id uint) (domain.Incident, error) {
	incident, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Incident{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return incident, nil
}

// Assign adds accountID to the people handling an open incident. Assigning
// twice is a no-op.
func (s *IncidentService) Assign(ctx context.Context, id, accountID uint) (domain.Incident, error) {
	if _, err := s.open(ctx, id); err != nil {
		return domain.Incident{}, err
	}

	if err := s.repo.Assign(ctx, id, accountID); err != nil {
		return domain.Incident{}, fmt.Errorf("s.repo.Assign -> %w", err)
	}

	return s.Get(ctx, id)
}

func (s *IncidentService) Unassign(ctx context.Context, id, accountID uint) (domain.Incident, error) {
	if _, err := s.open(ctx, id); err != nil {
		return domain.Incident{}, err
	}

	if err := s.repo.Unassign(ctx, id, accountID); err != nil {
		return domain.Incident{}, fmt.Errorf("s.repo.Unassign -> %w", err)
	}

	return s.Get(ctx, id)
}

func (s *IncidentService) SetPeopleNeeded(ctx context.Context, id uint, n int) (domain.Incident, error) {
	if n < 1 {
		return domain.Incident{}, domain.NewError(domain.KindInvalid, "people needed must be at least 1")
	}
	if _, err := s.open(ctx, id); err != nil {
		return domain.Incident{}, err
	}

	if err := s.repo.SetPeopleNeeded(ctx, id, n); err != nil {
		return domain.Incident{}, fmt.Errorf("s.repo.SetPeopleNeeded -> %w", err)
	}

	return s.Get(ctx, id)
}

// Resolve closes out an open incident once enough people are assigned. The
// store repeats the headcount check in the update itself.
func (s *IncidentService) Resolve(ctx context.Context, id uint) (domain.Incident, error) {
	incident, err := s.open(ctx, id)
	if err != nil {
		return domain.Incident{}, err
	}
	if !incident.Resolvable() {
		return domain.Incident{}, domain.ErrIncidentUnderstaffed.
			WithDetail("people_needed", incident.PeopleNeeded).
			WithDetail("assigned", len(incident.AssignedIDs))
	}

	ok, err := s.repo.Resolve(ctx, id, s.clock.Now())
	if err != nil {
		return domain.Incident{}, fmt.Errorf("s.repo.Resolve -> %w", err)
	}
	if !ok {
		return domain.Incident{}, domain.ErrIncidentUnderstaffed
	}

	return s.Get(ctx, id)
}

func (s *IncidentService) Close(ctx context.Context, id uint) (domain.Incident, error) {
	incident, err := s.Get(ctx, id)
	if err != nil {
		return domain.Incident{}, err
	}
	if incident.Status == domain.IncidentClosed {
		return incident, nil
	}

	if err = s.repo.Close(ctx, id); err != nil {
		return domain.Incident{}, fmt.Errorf("s.repo.Close -> %w", err)
	}

	return s.Get(ctx, id)
}

func (s *IncidentService) open(ctx context.Context, id uint) (domain.Incident, error) {
	incident, err := s.Get(ctx, id)
	if err != nil {
		return domain.Incident{}, err
	}
	if incident.Status != domain.IncidentOpen {
		return domain.Incident{}, ErrIncidentNotOpen
	}

	return incident, nil
}
