package service

import (
	"context"
	"fmt"
	"strconv"

	"github.com/pyramide/event-api/internal/domain"
	"github.com/pyramide/event-api/internal/events"
	"github.com/pyramide/event-api/internal/pkg/clock"
)

//go:generate mockgen -source=capacity.go -destination=mocks/mock_capacity.go -package=mocks

type CapacityRepository interface {
	Admit(ctx context.Context, accountID uint) (bool, error)
}

type EventEmitter interface {
	Publish(ctx context.Context, e events.Event) error
}

type CapacityService struct {
	repo    CapacityRepository
	emitter EventEmitter
	clock   clock.Clock
}

func NewCapacityService(repo CapacityRepository, emitter EventEmitter, clk clock.Clock) *CapacityService {
	return &CapacityService{
		repo:    repo,
		emitter: emitter,
		clock:   clk,
	}
}

// Register counts account against the participant cap the first time it is
// admitted. Roles that bypass the cap are never counted. The compare and the
// increment happen in one conditional update in the store.
func (s *CapacityService) Register(ctx context.Context, account domain.Account) error {
	if account.Role.Can(domain.CapBypassCapacity) || account.Admitted {
		return nil
	}

	admitted, err := s.repo.Admit(ctx, account.ID)
	if err != nil {
		return fmt.Errorf("s.repo.Admit -> %w", err)
	}

	if admitted {
		events.Emit(ctx, s.emitter, events.Event{
			Type:       events.ParticipantAdmitted,
			Key:        accountKey(account.ID),
			OccurredAt: s.clock.Now(),
			Payload:    map[string]any{"user_id": account.ID},
		})
	}

	return nil
}

func accountKey(id uint) string {
	return "account:" + strconv.FormatUint(uint64(id), 10)
}
