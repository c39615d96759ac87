package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/pyramide/event-api/internal/domain"
	"github.com/pyramide/event-api/internal/repository/dao"
)

var ErrIncidentNotFound = dao.ErrIncidentNotFound

type IncidentDAO interface {
	Insert(ctx context.Context, incident dao.SecurityIncident) (dao.SecurityIncident, error)
	FindByID(ctx context.Context, id uint) (dao.SecurityIncident, error)
	List(ctx context.Context, status string, limit int) ([]dao.SecurityIncident, error)
	Assign(ctx context.Context, incidentID, accountID uint) error
	Unassign(ctx context.Context, incidentID, accountID uint) error
	SetPeopleNeeded(ctx context.Context, id uint, n int) error
	Resolve(ctx context.Context, id uint, at time.Time) (bool, error)
	Close(ctx context.Context, id uint) error
}

type IncidentRepository struct {
	dao IncidentDAO
}

func NewIncidentRepository(dao IncidentDAO) *IncidentRepository {
	return &IncidentRepository{
		dao: dao,
	}
}

func (r *IncidentRepository) Create(ctx context.Context, incident domain.Incident) (domain.Incident, error) {
	created, err := r.dao.Insert(ctx, dao.SecurityIncident{
		Type:         incident.Type,
		Description:  incident.Description,
		Location:     incident.Location,
		ReportedBy:   incident.ReportedBy,
		PeopleNeeded: incident.PeopleNeeded,
		Status:       string(domain.IncidentOpen),
	})
	if err != nil {
		return domain.Incident{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return incidentToDomain(created), nil
}

func (r *IncidentRepository) FindByID(ctx context.Context, id uint) (domain.Incident, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Incident{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return incidentToDomain(found), nil
}

func (r *IncidentRepository) List(ctx context.Context, status domain.IncidentStatus, limit int) ([]domain.Incident, error) {
	found, err := r.dao.List(ctx, string(status), limit)
	if err != nil {
		return nil, fmt.Errorf("r.dao.List -> %w", err)
	}

	incidents := make([]domain.Incident, 0, len(found))
	for _, i := range found {
		incidents = append(incidents, incidentToDomain(i))
	}

	return incidents, nil
}

func (r *IncidentRepository) Assign(ctx context.Context, incidentID, accountID uint) error {
	if err := r.dao.Assign(ctx, incidentID, accountID); err != nil {
		return fmt.Errorf("r.dao.Assign -> %w", err)
	}

	return nil
}

func (r *IncidentRepository) Unassign(ctx context.Context, incidentID, accountID uint) error {
	if err := r.dao.Unassign(ctx, incidentID, accountID); err != nil {
		return fmt.Errorf("r.dao.Unassign -> %w", err)
	}

	return nil
}

func (r *IncidentRepository) SetPeopleNeeded(ctx context.Context, id uint, n int) error {
	if err := r.dao.SetPeopleNeeded(ctx, id, n); err != nil {
		return fmt.Errorf("r.dao.SetPeopleNeeded -> %w", err)
	}

	return nil
}

func (r *IncidentRepository) Resolve(ctx context.Context, id uint, at time.Time) (bool, error) {
	ok, err := r.dao.Resolve(ctx, id, at)
	if err != nil {
		return false, fmt.Errorf("r.dao.Resolve -> %w", err)
	}

	return ok, nil
}

func (r *IncidentRepository) Close(ctx context.Context, id uint) error {
	if err := r.dao.Close(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Close -> %w", err)
	}

	return nil
}

func incidentToDomain(i dao.SecurityIncident) domain.Incident {
	assigned := make([]uint, 0, len(i.Assignments))
	for _, a := range i.Assignments {
		assigned = append(assigned, a.AccountID)
	}

	return domain.Incident{
		ID:           i.ID,
		Type:         i.Type,
		Description:  i.Description,
		Location:     i.Location,
		ReportedBy:   i.ReportedBy,
		PeopleNeeded: i.PeopleNeeded,
		AssignedIDs:  assigned,
		Status:       domain.IncidentStatus(i.Status),
		CreatedAt:    i.CreatedAt,
		ResolvedAt:   i.ResolvedAt,
	}
}
