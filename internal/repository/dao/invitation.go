package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pyramide/event-api/internal/domain"
)

var ErrInvitationNotFound = domain.NewError(domain.KindNotFound, "invitation not found")

const (
	statusPending   = "pending"
	statusAccepted  = "accepted"
	statusCancelled = "cancelled"
)

type Invitation struct {
	ID uint `gorm:"primaryKey"`

	InviterID       uint     `gorm:"not null;index"`
	Inviter         *Account `gorm:"foreignKey:InviterID;constraint:OnDelete:RESTRICT"`
	InviteeIdentity string   `gorm:"uniqueIndex:idx_invitations_invitee;not null"`
	InviteeName     string   `gorm:"not null"`
	Status          string   `gorm:"not null;default:pending;index"`
	AcceptedAt      *time.Time

	CreatedAt time.Time `gorm:"not null"`
}

type StatusCount struct {
	Status string
	Count  int
}

type InvitationDAO struct {
	db *gorm.DB
}

func NewInvitationDAO(db *gorm.DB) *InvitationDAO {
	return &InvitationDAO{
		db: db,
	}
}

// Issue records an invitation and the invitee's placeholder account in one
// transaction. The inviter row is locked so concurrent issues from the same
// account see each other's count. A negative quota means unlimited.
func (d *InvitationDAO) Issue(ctx context.Context, invitation Invitation, placeholder Account, quota int) (Invitation, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var inviter Account
		result := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&inviter, invitation.InviterID)
		if result.Error != nil {
			if errors.Is(result.Error, gorm.ErrRecordNotFound) {
				return ErrAccountNotFound
			}
			return result.Error
		}
		if inviter.IsBanned {
			return domain.ErrBanned
		}

		if quota >= 0 {
			var used int64
			err := tx.Model(&Invitation{}).
				Where("inviter_id = ? AND status IN ?", inviter.ID, []string{statusPending, statusAccepted}).
				Count(&used).Error
			if err != nil {
				return err
			}
			if used >= int64(quota) {
				return domain.ErrQuotaExceeded
			}
		}

		err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "username"}},
			DoNothing: true,
		}).Create(&placeholder).Error
		if err != nil {
			return err
		}

		if err = tx.Create(&invitation).Error; err != nil {
			if isUniqueViolation(err, "idx_invitations_invitee") {
				return domain.ErrDuplicateInvitee
			}
			return err
		}

		return nil
	})
	if err != nil {
		return Invitation{}, err
	}

	return invitation, nil
}

func (d *InvitationDAO) FindByID(ctx context.Context, id uint) (Invitation, error) {
	var invitation Invitation
	result := d.db.WithContext(ctx).First(&invitation, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Invitation{}, ErrInvitationNotFound
		}

		return Invitation{}, result.Error
	}

	return invitation, nil
}

func (d *InvitationDAO) FindByIdentity(ctx context.Context, identity string) (Invitation, error) {
	var invitation Invitation
	result := d.db.WithContext(ctx).Where("invitee_identity = ?", identity).First(&invitation)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Invitation{}, ErrInvitationNotFound
		}

		return Invitation{}, result.Error
	}

	return invitation, nil
}

func (d *InvitationDAO) ListByInviter(ctx context.Context, inviterID uint) ([]Invitation, error) {
	var invitations []Invitation
	err := d.db.WithContext(ctx).
		Where("inviter_id = ?", inviterID).
		Order("created_at DESC").
		Find(&invitations).Error
	if err != nil {
		return nil, err
	}

	return invitations, nil
}

func (d *InvitationDAO) ListAll(ctx context.Context) ([]Invitation, error) {
	var invitations []Invitation
	if err := d.db.WithContext(ctx).Order("created_at DESC").Find(&invitations).Error; err != nil {
		return nil, err
	}

	return invitations, nil
}

func (d *InvitationDAO) CountByStatus(ctx context.Context, inviterID uint) ([]StatusCount, error) {
	var counts []StatusCount
	err := d.db.WithContext(ctx).Model(&Invitation{}).
		Select("status, count(*) AS count").
		Where("inviter_id = ?", inviterID).
		Group("status").
		Scan(&counts).Error
	if err != nil {
		return nil, err
	}

	return counts, nil
}

// Accept moves the pending invitation for identity to accepted. It reports
// false when there was nothing pending to accept.
func (d *InvitationDAO) Accept(ctx context.Context, identity string, at time.Time) (bool, error) {
	result := d.db.WithContext(ctx).Model(&Invitation{}).
		Where("invitee_identity = ? AND status = ?", identity, statusPending).
		Updates(map[string]any{"status": statusAccepted, "accepted_at": at})
	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected == 1, nil
}

// Cancel cancels the invitation only while it is pending and owned by inviterID.
func (d *InvitationDAO) Cancel(ctx context.Context, id, inviterID uint) (bool, error) {
	result := d.db.WithContext(ctx).Model(&Invitation{}).
		Where("id = ? AND inviter_id = ? AND status = ?", id, inviterID, statusPending).
		Update("status", statusCancelled)
	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected == 1, nil
}
