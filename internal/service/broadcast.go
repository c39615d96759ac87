package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pyramide/event-api/internal/broadcast"
	"github.com/pyramide/event-api/internal/domain"
	"github.com/pyramide/event-api/internal/pkg/clock"
)

//go:generate mockgen -source=broadcast.go -destination=mocks/mock_broadcast.go -package=mocks

const (
	messageTypeBroadcast = "broadcast"
	messageTypeDirect    = "direct"

	defaultHistoryLimit = 100
)

type MessageRepository interface {
	CreateBatch(ctx context.Context, messages []domain.BotMessage) ([]domain.BotMessage, error)
	UpdateStatus(ctx context.Context, id uint, status domain.MessageStatus, at time.Time) error
	List(ctx context.Context, limit int) ([]domain.BotMessage, error)
}

type RecipientRepository interface {
	FindByID(ctx context.Context, id uint) (domain.Account, error)
	ListReachable(ctx context.Context) ([]domain.Account, error)
}

type JobQueue interface {
	Publish(ctx context.Context, jobs []broadcast.Job) error
}

// BroadcastSummary is returned to the admin once messages are queued.
type BroadcastSummary struct {
	BatchID string `json:"batch_id"`
	Queued  int    `json:"queued"`
}

type BroadcastService struct {
	messages    MessageRepository
	recipients  RecipientRepository
	queue       JobQueue
	sender      MessageSender
	alerter     Alerter
	clock       clock.Clock
	sendTimeout time.Duration
}

func NewBroadcastService(
	messages MessageRepository,
	recipients RecipientRepository,
	queue JobQueue,
	sender MessageSender,
	alerter Alerter,
	clk clock.Clock,
	sendTimeout time.Duration,
) *BroadcastService {
	return &BroadcastService{
		messages:    messages,
		recipients:  recipients,
		queue:       queue,
		sender:      sender,
		alerter:     alerter,
		clock:       clk,
		sendTimeout: sendTimeout,
	}
}

// Broadcast records one pending message per reachable account and queues them
// for delivery. It returns once the jobs are queued.
func (s *BroadcastService) Broadcast(ctx context.Context, content string) (BroadcastSummary, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return BroadcastSummary{}, domain.ErrInvalid.WithDetail("content", "cannot be blank")
	}

	accounts, err := s.recipients.ListReachable(ctx)
	if err != nil {
		return BroadcastSummary{}, fmt.Errorf("s.recipients.ListReachable -> %w", err)
	}

	batchID := uuid.NewString()
	queued, err := s.enqueue(ctx, batchID, messageTypeBroadcast, content, accounts)
	if err != nil {
		return BroadcastSummary{}, err
	}

	summary := fmt.Sprintf("Broadcast %s queued for %d guests:\n\n%s", batchID, queued, content)
	if err = s.alerter.Alert(ctx, summary); err != nil {
		zap.L().Warn("failed to post broadcast summary", zap.String("batch_id", batchID), zap.Error(err))
	}

	return BroadcastSummary{BatchID: batchID, Queued: queued}, nil
}

// DirectMessage queues a single message for one account.
func (s *BroadcastService) DirectMessage(ctx context.Context, accountID uint, content string) (BroadcastSummary, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return BroadcastSummary{}, domain.ErrInvalid.WithDetail("content", "cannot be blank")
	}

	account, err := s.recipients.FindByID(ctx, accountID)
	if err != nil {
		return BroadcastSummary{}, fmt.Errorf("s.recipients.FindByID -> %w", err)
	}
	if account.IsBanned {
		return BroadcastSummary{}, domain.ErrBanned
	}

	batchID := uuid.NewString()
	queued, err := s.enqueue(ctx, batchID, messageTypeDirect, content, []domain.Account{account})
	if err != nil {
		return BroadcastSummary{}, err
	}

	return BroadcastSummary{BatchID: batchID, Queued: queued}, nil
}

func (s *BroadcastService) enqueue(ctx context.Context, batchID, kind, content string, accounts []domain.Account) (int, error) {
	if len(accounts) == 0 {
		return 0, nil
	}

	now := s.clock.Now()
	pending := make([]domain.BotMessage, 0, len(accounts))
	for _, a := range accounts {
		pending = append(pending, domain.BotMessage{
			BatchID:     batchID,
			Type:        kind,
			Content:     content,
			RecipientID: a.ID,
			Recipient:   a.Username,
			Status:      domain.MessagePending,
			SentAt:      now,
		})
	}

	stored, err := s.messages.CreateBatch(ctx, pending)
	if err != nil {
		return 0, fmt.Errorf("s.messages.CreateBatch -> %w", err)
	}

	jobs := make([]broadcast.Job, 0, len(stored))
	for i, m := range stored {
		jobs = append(jobs, broadcast.Job{
			MessageID: m.ID,
			Recipient: pending[i].Recipient,
			Content:   content,
		})
	}

	if err = s.queue.Publish(ctx, jobs); err != nil {
		return 0, fmt.Errorf("s.queue.Publish -> %w", err)
	}

	return len(jobs), nil
}

// Deliver sends one queued job and records the outcome. A delivery failure is
// final and recorded as failed; only a failure to record is returned, which
// makes the queue retry the job.
func (s *BroadcastService) Deliver(ctx context.Context, job broadcast.Job) error {
	sendCtx, cancel := context.WithTimeout(ctx, s.sendTimeout)
	defer cancel()

	status := domain.MessageSent
	if err := s.sender.Send(sendCtx, job.Recipient, job.Content); err != nil {
		zap.L().Warn("failed to deliver message",
			zap.Uint("message_id", job.MessageID),
			zap.String("recipient", job.Recipient),
			zap.Error(err),
		)
		status = domain.MessageFailed
	}

	if err := s.messages.UpdateStatus(ctx, job.MessageID, status, s.clock.Now()); err != nil {
		return fmt.Errorf("s.messages.UpdateStatus -> %w", err)
	}

	return nil
}

func (s *BroadcastService) History(ctx context.Context, limit int) ([]domain.BotMessage, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}

	messages, err := s.messages.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("s.messages.List -> %w", err)
	}

	return messages, nil
}
