package domain

import "time"

type MessageStatus string

const (
	MessagePending MessageStatus = "pending"
	MessageSent    MessageStatus = "sent"
	MessageFailed  MessageStatus = "failed"
)

// BotMessage records one outbound message over the identity channel.
type BotMessage struct {
	ID          uint          `json:"id"`
	BatchID     string        `json:"batch_id,omitempty"`
	Type        string        `json:"message_type"`
	Content     string        `json:"content"`
	RecipientID uint          `json:"sent_to_user_id"`
	Recipient   string        `json:"recipient,omitempty"`
	Status      MessageStatus `json:"status"`
	SentAt      time.Time     `json:"sent_at"`
}

// LoginCode is a pending one-time code. Only its hash is stored.
type LoginCode struct {
	Username  string
	CodeHash  string
	Attempts  int
	ExpiresAt time.Time
}

func (c LoginCode) Expired(now time.Time) bool {
	return !now.Before(c.ExpiresAt)
}
