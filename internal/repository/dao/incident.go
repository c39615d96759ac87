package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pyramide/event-api/internal/domain"
)

var ErrIncidentNotFound = domain.NewError(domain.KindNotFound, "incident not found")

type SecurityIncident struct {
	ID uint `gorm:"primaryKey"`

	Type         string `gorm:"not null"`
	Description  string `gorm:"not null"`
	Location     string
	ReportedBy   uint                 `gorm:"not null"`
	PeopleNeeded int                  `gorm:"not null;default:1"`
	Status       string               `gorm:"not null;default:open;index"`
	Assignments  []IncidentAssignment `gorm:"foreignKey:IncidentID;constraint:OnDelete:CASCADE"`
	ResolvedAt   *time.Time

	CreatedAt time.Time `gorm:"not null"`
}

type IncidentAssignment struct {
	IncidentID uint      `gorm:"primaryKey;autoIncrement:false"`
	AccountID  uint      `gorm:"primaryKey;autoIncrement:false"`
	CreatedAt  time.Time `gorm:"not null"`
}

type IncidentDAO struct {
	db *gorm.DB
}

func NewIncidentDAO(db *gorm.DB) *IncidentDAO {
	return &IncidentDAO{
		db: db,
	}
}

func (d *IncidentDAO) Insert(ctx context.Context, incident SecurityIncident) (SecurityIncident, error) {
	if err := d.db.WithContext(ctx).Create(&incident).Error; err != nil {
		return SecurityIncident{}, err
	}

	return incident, nil
}

func (d *IncidentDAO) FindByID(ctx context.Context, id uint) (SecurityIncident, error) {
	var incident SecurityIncident
	result := d.db.WithContext(ctx).Preload("Assignments").First(&incident, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return SecurityIncident{}, ErrIncidentNotFound
		}

		return SecurityIncident{}, result.Error
	}

	return incident, nil
}

// List returns the newest incidents first. An empty status lists all.
func (d *IncidentDAO) List(ctx context.Context, status string, limit int) ([]SecurityIncident, error) {
	query := d.db.WithContext(ctx).Preload("Assignments").Order("created_at DESC").Limit(limit)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var incidents []SecurityIncident
	if err := query.Find(&incidents).Error; err != nil {
		return nil, err
	}

	return incidents, nil
}

// Assign is idempotent.
func (d *IncidentDAO) Assign(ctx context.Context, incidentID, accountID uint) error {
	return d.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).
		Create(&IncidentAssignment{IncidentID: incidentID, AccountID: accountID}).Error
}

func (d *IncidentDAO) Unassign(ctx context.Context, incidentID, accountID uint) error {
	return d.db.WithContext(ctx).
		Where("incident_id = ? AND account_id = ?", incidentID, accountID).
		Delete(&IncidentAssignment{}).Error
}

func (d *IncidentDAO) SetPeopleNeeded(ctx context.Context, id uint, n int) error {
	result := d.db.WithContext(ctx).Model(&SecurityIncident{}).Where("id = ?", id).Update("people_needed", n)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrIncidentNotFound
	}

	return nil
}

// Resolve closes an open incident only when enough people are assigned,
// checked in the same statement.
func (d *IncidentDAO) Resolve(ctx context.Context, id uint, at time.Time) (bool, error) {
	result := d.db.WithContext(ctx).Model(&SecurityIncident{}).
		Where("id = ? AND status = ?", id, string(domain.IncidentOpen)).
		Where("people_needed <= (SELECT count(*) FROM incident_assignments WHERE incident_id = ?)", id).
		Updates(map[string]any{"status": string(domain.IncidentResolved), "resolved_at": at})
	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected == 1, nil
}

func (d *IncidentDAO) Close(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Model(&SecurityIncident{}).Where("id = ?", id).
		Update("status", string(domain.IncidentClosed))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrIncidentNotFound
	}

	return nil
}
