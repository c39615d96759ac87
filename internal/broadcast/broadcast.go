// Package broadcast queues outbound guest messages so an admin broadcast
// returns before every recipient has been contacted.
package broadcast

import (
	"context"
	"errors"
)

// Job is one message waiting for delivery. MessageID refers to the stored
// bot message row that tracks its status.
type Job struct {
	MessageID uint   `json:"message_id"`
	Recipient string `json:"recipient"`
	Content   string `json:"content"`
}

// Handler delivers a job. Returning an error asks the queue to retry it.
type Handler func(ctx context.Context, job Job) error

type Queue interface {
	Publish(ctx context.Context, jobs []Job) error
	Consume(ctx context.Context, handler Handler) error
	Close() error
}

var ErrClosed = errors.New("queue closed")
