package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/pyramide/event-api/internal/domain"
	"github.com/pyramide/event-api/internal/repository/dao"
)

var ErrInvitationNotFound = dao.ErrInvitationNotFound

type InvitationDAO interface {
	Issue(ctx context.Context, invitation dao.Invitation, placeholder dao.Account, quota int) (dao.Invitation, error)
	FindByID(ctx context.Context, id uint) (dao.Invitation, error)
	FindByIdentity(ctx context.Context, identity string) (dao.Invitation, error)
	ListByInviter(ctx context.Context, inviterID uint) ([]dao.Invitation, error)
	ListAll(ctx context.Context) ([]dao.Invitation, error)
	CountByStatus(ctx context.Context, inviterID uint) ([]dao.StatusCount, error)
	Accept(ctx context.Context, identity string, at time.Time) (bool, error)
	Cancel(ctx context.Context, id, inviterID uint) (bool, error)
}

type InvitationRepository struct {
	dao InvitationDAO
}

func NewInvitationRepository(dao InvitationDAO) *InvitationRepository {
	return &InvitationRepository{
		dao: dao,
	}
}

// Issue stores a pending invitation and, when the invitee has no account yet,
// a guest placeholder whose inviter is set once here. quota < 0 is unlimited.
func (r *InvitationRepository) Issue(ctx context.Context, invitation domain.Invitation, quota int) (domain.Invitation, error) {
	inviterID := invitation.InviterID
	placeholder := dao.Account{
		ExternalID: invitation.InviteeIdentity,
		Username:   invitation.InviteeIdentity,
		FullName:   invitation.InviteeName,
		Role:       string(domain.RoleGuest),
		InvitedBy:  &inviterID,
	}

	created, err := r.dao.Issue(ctx, invitationToDAO(invitation), placeholder, quota)
	if err != nil {
		return domain.Invitation{}, fmt.Errorf("r.dao.Issue -> %w", err)
	}

	return invitationToDomain(created), nil
}

func (r *InvitationRepository) FindByID(ctx context.Context, id uint) (domain.Invitation, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Invitation{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return invitationToDomain(found), nil
}

func (r *InvitationRepository) FindByIdentity(ctx context.Context, identity string) (domain.Invitation, error) {
	found, err := r.dao.FindByIdentity(ctx, identity)
	if err != nil {
		return domain.Invitation{}, fmt.Errorf("r.dao.FindByIdentity -> %w", err)
	}

	return invitationToDomain(found), nil
}

func (r *InvitationRepository) ListByInviter(ctx context.Context, inviterID uint) ([]domain.Invitation, error) {
	found, err := r.dao.ListByInviter(ctx, inviterID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.ListByInviter -> %w", err)
	}

	return invitationsToDomain(found), nil
}

func (r *InvitationRepository) ListAll(ctx context.Context) ([]domain.Invitation, error) {
	found, err := r.dao.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.ListAll -> %w", err)
	}

	return invitationsToDomain(found), nil
}

func (r *InvitationRepository) Stats(ctx context.Context, inviterID uint) (domain.InviteStats, error) {
	counts, err := r.dao.CountByStatus(ctx, inviterID)
	if err != nil {
		return domain.InviteStats{}, fmt.Errorf("r.dao.CountByStatus -> %w", err)
	}

	var stats domain.InviteStats
	for _, c := range counts {
		switch domain.InvitationStatus(c.Status) {
		case domain.InvitationPending:
			stats.Pending = c.Count
		case domain.InvitationAccepted:
			stats.Accepted = c.Count
		case domain.InvitationCancelled:
			stats.Cancelled = c.Count
		}
	}

	return stats, nil
}

func (r *InvitationRepository) Accept(ctx context.Context, identity string, at time.Time) (bool, error) {
	changed, err := r.dao.Accept(ctx, identity, at)
	if err != nil {
		return false, fmt.Errorf("r.dao.Accept -> %w", err)
	}

	return changed, nil
}

func (r *InvitationRepository) Cancel(ctx context.Context, id, inviterID uint) (bool, error) {
	changed, err := r.dao.Cancel(ctx, id, inviterID)
	if err != nil {
		return false, fmt.Errorf("r.dao.Cancel -> %w", err)
	}

	return changed, nil
}

func invitationToDAO(i domain.Invitation) dao.Invitation {
	status := string(i.Status)
	if status == "" {
		status = string(domain.InvitationPending)
	}

	return dao.Invitation{
		ID:              i.ID,
		InviterID:       i.InviterID,
		InviteeIdentity: i.InviteeIdentity,
		InviteeName:     i.InviteeName,
		Status:          status,
		AcceptedAt:      i.AcceptedAt,
	}
}

func invitationToDomain(i dao.Invitation) domain.Invitation {
	return domain.Invitation{
		ID:              i.ID,
		InviterID:       i.InviterID,
		InviteeIdentity: i.InviteeIdentity,
		InviteeName:     i.InviteeName,
		Status:          domain.InvitationStatus(i.Status),
		CreatedAt:       i.CreatedAt,
		AcceptedAt:      i.AcceptedAt,
	}
}

func invitationsToDomain(invitations []dao.Invitation) []domain.Invitation {
	out := make([]domain.Invitation, 0, len(invitations))
	for _, i := range invitations {
		out = append(out, invitationToDomain(i))
	}

	return out
}
