package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pyramide/event-api/internal/domain"
	"github.com/pyramide/event-api/internal/events"
	"github.com/pyramide/event-api/internal/pkg/clock"
	"github.com/pyramide/event-api/internal/repository"
)

//go:generate mockgen -source=invitation.go -destination=mocks/mock_invitation.go -package=mocks

// maxInviteDepth bounds the ancestor walk of the cycle check.
const maxInviteDepth = 64

var ErrInvitationNotFound = repository.ErrInvitationNotFound

type InvitationRepository interface {
	Issue(ctx context.Context, invitation domain.Invitation, quota int) (domain.Invitation, error)
	FindByID(ctx context.Context, id uint) (domain.Invitation, error)
	FindByIdentity(ctx context.Context, identity string) (domain.Invitation, error)
	ListByInviter(ctx context.Context, inviterID uint) ([]domain.Invitation, error)
	ListAll(ctx context.Context) ([]domain.Invitation, error)
	Stats(ctx context.Context, inviterID uint) (domain.InviteStats, error)
	Accept(ctx context.Context, identity string, at time.Time) (bool, error)
	Cancel(ctx context.Context, id, inviterID uint) (bool, error)
}

type InvitationAccountRepository interface {
	FindByID(ctx context.Context, id uint) (domain.Account, error)
}

type EventConfigReader interface {
	Get(ctx context.Context) (domain.EventConfig, error)
}

type InvitationService struct {
	invitations InvitationRepository
	accounts    InvitationAccountRepository
	event       EventConfigReader
	emitter     EventEmitter
	clock       clock.Clock
}

func NewInvitationService(
	invitations InvitationRepository,
	accounts InvitationAccountRepository,
	event EventConfigReader,
	emitter EventEmitter,
	clk clock.Clock,
) *InvitationService {
	return &InvitationService{
		invitations: invitations,
		accounts:    accounts,
		event:       event,
		emitter:     emitter,
		clock:       clk,
	}
}

// Issue invites identity on behalf of inviterID. The quota counts pending and
// accepted invitations; admins have none. The store re-checks the quota with
// the inviter row locked, so the count read here is only a fast path.
func (s *InvitationService) Issue(ctx context.Context, inviterID uint, identity, name string) (domain.Invitation, error) {
	identity = domain.NormalizeHandle(identity)

	inviter, err := s.accounts.FindByID(ctx, inviterID)
	if err != nil {
		return domain.Invitation{}, fmt.Errorf("s.accounts.FindByID -> %w", err)
	}
	if inviter.IsBanned {
		return domain.Invitation{}, domain.ErrBanned
	}

	if err = s.checkCycle(ctx, inviter, identity); err != nil {
		return domain.Invitation{}, err
	}

	quota, err := s.quota(ctx, inviter)
	if err != nil {
		return domain.Invitation{}, err
	}
	if quota >= 0 {
		stats, err := s.invitations.Stats(ctx, inviter.ID)
		if err != nil {
			return domain.Invitation{}, fmt.Errorf("s.invitations.Stats -> %w", err)
		}
		if stats.Used() >= quota {
			return domain.Invitation{}, domain.ErrQuotaExceeded
		}
	}

	issued, err := s.invitations.Issue(ctx, domain.Invitation{
		InviterID:       inviter.ID,
		InviteeIdentity: identity,
		InviteeName:     name,
		Status:          domain.InvitationPending,
	}, quota)
	if err != nil {
		return domain.Invitation{}, fmt.Errorf("s.invitations.Issue -> %w", err)
	}

	events.Emit(ctx, s.emitter, events.Event{
		Type:       events.InvitationIssued,
		Key:        accountKey(inviter.ID),
		OccurredAt: s.clock.Now(),
		Payload:    issued,
	})

	return issued, nil
}

// checkCycle rejects an invitation for the inviter itself or for any account
// up its invite chain.
func (s *InvitationService) checkCycle(ctx context.Context, inviter domain.Account, identity string) error {
	current := inviter
	for depth := 0; depth < maxInviteDepth; depth++ {
		if current.Username == identity || current.ExternalID == identity {
			return domain.ErrInviteCycle
		}
		if current.InvitedBy == nil {
			return nil
		}

		parent, err := s.accounts.FindByID(ctx, *current.InvitedBy)
		if err != nil {
			if errors.Is(err, repository.ErrAccountNotFound) {
				return nil
			}
			return fmt.Errorf("s.accounts.FindByID -> %w", err)
		}
		current = parent
	}

	return nil
}

func (s *InvitationService) quota(ctx context.Context, inviter domain.Account) (int, error) {
	if inviter.Role.Can(domain.CapUnlimitedInvites) {
		return -1, nil
	}

	conf, err := s.event.Get(ctx)
	if err != nil {
		return 0, fmt.Errorf("s.event.Get -> %w", err)
	}
	if conf.MaxInvitesPerUser < 0 {
		return 0, nil
	}

	return conf.MaxInvitesPerUser, nil
}

// Accept marks the pending invitation for identity as accepted. It reports
// whether anything changed; accepting twice is a no-op.
func (s *InvitationService) Accept(ctx context.Context, identity string) (bool, error) {
	identity = domain.NormalizeHandle(identity)
	now := s.clock.Now()
	changed, err := s.invitations.Accept(ctx, identity, now)
	if err != nil {
		return false, fmt.Errorf("s.invitations.Accept -> %w", err)
	}

	if changed {
		events.Emit(ctx, s.emitter, events.Event{
			Type:       events.InvitationAccepted,
			Key:        "identity:" + identity,
			OccurredAt: now,
			Payload:    map[string]any{"invitee_identity": identity},
		})
	}

	return changed, nil
}

func (s *InvitationService) FindByIdentity(ctx context.Context, identity string) (domain.Invitation, error) {
	inv, err := s.invitations.FindByIdentity(ctx, domain.NormalizeHandle(identity))
	if err != nil {
		return domain.Invitation{}, fmt.Errorf("s.invitations.FindByIdentity -> %w", err)
	}

	return inv, nil
}

// Cancel withdraws a pending invitation. Only its inviter may do so.
func (s *InvitationService) Cancel(ctx context.Context, id, requesterID uint) error {
	inv, err := s.invitations.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("s.invitations.FindByID -> %w", err)
	}
	if inv.InviterID != requesterID || inv.Status != domain.InvitationPending {
		return domain.ErrNotCancellable
	}

	changed, err := s.invitations.Cancel(ctx, id, requesterID)
	if err != nil {
		return fmt.Errorf("s.invitations.Cancel -> %w", err)
	}
	if !changed {
		// Accepted or cancelled between the read and the update.
		return domain.ErrNotCancellable
	}

	events.Emit(ctx, s.emitter, events.Event{
		Type:       events.InvitationCancelled,
		Key:        accountKey(requesterID),
		OccurredAt: s.clock.Now(),
		Payload:    map[string]any{"invitation_id": id},
	})

	return nil
}

// Mine lists the invitations sent by inviterID with their counts.
func (s *InvitationService) Mine(ctx context.Context, inviterID uint) ([]domain.Invitation, domain.InviteStats, error) {
	list, err := s.invitations.ListByInviter(ctx, inviterID)
	if err != nil {
		return nil, domain.InviteStats{}, fmt.Errorf("s.invitations.ListByInviter -> %w", err)
	}

	stats, err := s.invitations.Stats(ctx, inviterID)
	if err != nil {
		return nil, domain.InviteStats{}, fmt.Errorf("s.invitations.Stats -> %w", err)
	}

	return list, stats, nil
}

func (s *InvitationService) ListAll(ctx context.Context) ([]domain.Invitation, error) {
	list, err := s.invitations.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.invitations.ListAll -> %w", err)
	}

	return list, nil
}
