package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/pyramide/event-api/internal/broadcast"
	"github.com/pyramide/event-api/internal/domain"
	clockMocks "github.com/pyramide/event-api/internal/pkg/clock/mocks"
	"github.com/pyramide/event-api/internal/service/mocks"
)

type broadcastFixture struct {
	messages   *mocks.MockMessageRepository
	recipients *mocks.MockRecipientRepository
	queue      *mocks.MockJobQueue
	sender     *mocks.MockMessageSender
	alerter    *mocks.MockAlerter
	svc        *BroadcastService
	now        time.Time
}

func newBroadcastFixture(t *testing.T) *broadcastFixture {
	ctrl := gomock.NewController(t)
	f := &broadcastFixture{
		messages:   mocks.NewMockMessageRepository(ctrl),
		recipients: mocks.NewMockRecipientRepository(ctrl),
		queue:      mocks.NewMockJobQueue(ctrl),
		sender:     mocks.NewMockMessageSender(ctrl),
		alerter:    mocks.NewMockAlerter(ctrl),
		now:        time.Date(2026, 6, 19, 10, 0, 0, 0, time.UTC),
	}
	clk := clockMocks.NewMockClock(ctrl)
	clk.EXPECT().Now().Return(f.now).AnyTimes()

	f.svc = NewBroadcastService(f.messages, f.recipients, f.queue, f.sender, f.alerter, clk, time.Second)

	return f
}

func TestBroadcastService_Broadcast(t *testing.T) {
	ctx := context.Background()
	f := newBroadcastFixture(t)

	f.recipients.EXPECT().ListReachable(ctx).Return([]domain.Account{
		{ID: 1, Username: "alice"},
		{ID: 2, Username: "bob"},
	}, nil)
	f.messages.EXPECT().CreateBatch(ctx, gomock.Len(2)).
		DoAndReturn(func(_ context.Context, msgs []domain.BotMessage) ([]domain.BotMessage, error) {
			for i := range msgs {
				assert.Equal(t, domain.MessagePending, msgs[i].Status)
				assert.Equal(t, "doors open at 9", msgs[i].Content)
				msgs[i].ID = uint(i + 10)
			}
			assert.Equal(t, msgs[0].BatchID, msgs[1].BatchID)
			return msgs, nil
		})
	f.queue.EXPECT().Publish(ctx, []broadcast.Job{
		{MessageID: 10, Recipient: "alice", Content: "doors open at 9"},
		{MessageID: 11, Recipient: "bob", Content: "doors open at 9"},
	}).Return(nil)
	f.alerter.EXPECT().Alert(ctx, gomock.Any()).Return(errors.New("telegram down"))

	summary, err := f.svc.Broadcast(ctx, "  doors open at 9 ")
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Queued)
	assert.Len(t, summary.BatchID, 36)
}

func TestBroadcastService_BlankContent(t *testing.T) {
	f := newBroadcastFixture(t)

	_, err := f.svc.Broadcast(context.Background(), "   ")
	assert.Equal(t, domain.KindInvalid, domain.KindOf(err))
}

func TestBroadcastService_DirectMessageToBannedAccount(t *testing.T) {
	ctx := context.Background()
	f := newBroadcastFixture(t)
	f.recipients.EXPECT().FindByID(ctx, uint(3)).Return(domain.Account{ID: 3, IsBanned: true}, nil)

	_, err := f.svc.DirectMessage(ctx, 3, "hello")
	assert.ErrorIs(t, err, domain.ErrBanned)
}

func TestBroadcastService_Deliver(t *testing.T) {
	ctx := context.Background()
	job := broadcast.Job{MessageID: 10, Recipient: "alice", Content: "hi"}

	t.Run("sent", func(t *testing.T) {
		f := newBroadcastFixture(t)
		f.sender.EXPECT().Send(gomock.Any(), "alice", "hi").Return(nil)
		f.messages.EXPECT().UpdateStatus(ctx, uint(10), domain.MessageSent, f.now).Return(nil)

		require.NoError(t, f.svc.Deliver(ctx, job))
	})

	t.Run("delivery failure is recorded, not retried", func(t *testing.T) {
		f := newBroadcastFixture(t)
		f.sender.EXPECT().Send(gomock.Any(), "alice", "hi").Return(errors.New("timeout"))
		f.messages.EXPECT().UpdateStatus(ctx, uint(10), domain.MessageFailed, f.now).Return(nil)

		require.NoError(t, f.svc.Deliver(ctx, job))
	})

	t.Run("store failure asks for a retry", func(t *testing.T) {
		f := newBroadcastFixture(t)
		f.sender.EXPECT().Send(gomock.Any(), "alice", "hi").Return(nil)
		f.messages.EXPECT().UpdateStatus(ctx, uint(10), domain.MessageSent, f.now).Return(errors.New("db down"))

		require.Error(t, f.svc.Deliver(ctx, job))
	})
}
