// Package events publishes ledger events after the store has committed them.
// Publishing is best-effort: consumers are downstream analytics, not part of
// the ledger.
package events

import (
	"context"
	"time"

	"go.uber.org/zap"
)

type Type string

const (
	InvitationIssued    Type = "invitation.issued"
	InvitationAccepted  Type = "invitation.accepted"
	InvitationCancelled Type = "invitation.cancelled"
	ParticipantAdmitted Type = "participant.admitted"
	TicketGenerated     Type = "ticket.generated"
	TicketVerified      Type = "ticket.verified"
	TicketPaid          Type = "ticket.paid"
	SaleRecorded        Type = "bar.sale_recorded"
	PayoutRecorded      Type = "bar.payout_recorded"
)

type Event struct {
	Type       Type      `json:"type"`
	Key        string    `json:"key"`
	OccurredAt time.Time `json:"occurred_at"`
	Payload    any       `json:"payload"`
}

type Emitter interface {
	Publish(ctx context.Context, e Event) error
}

type Publisher interface {
	Emitter
	Close() error
}

// Emit publishes e and logs a failure instead of returning it.
func Emit(ctx context.Context, p Emitter, e Event) {
	if err := p.Publish(ctx, e); err != nil {
		zap.L().Warn("event publish failed",
			zap.String("type", string(e.Type)),
			zap.String("key", e.Key),
			zap.Error(err),
		)
	}
}

// Nop drops every event. It is used when Kafka is disabled or unreachable.
type Nop struct{}

func (Nop) Publish(_ context.Context, e Event) error {
	zap.L().Debug("event dropped", zap.String("type", string(e.Type)), zap.String("key", e.Key))
	return nil
}

func (Nop) Close() error { return nil }

// Fanout publishes every event to each of its emitters. One failing emitter
// does not stop the others; the first error is returned.
type Fanout []Emitter

func (f Fanout) Publish(ctx context.Context, e Event) error {
	var first error
	for _, em := range f {
		if err := em.Publish(ctx, e); err != nil && first == nil {
			first = err
		}
	}

	return first
}
