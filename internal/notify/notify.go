// Package notify delivers messages to guests over the identity channel and
// alerts to the operations chat.
package notify

import (
	"context"
	"errors"

	"go.uber.org/zap"
)

// ErrNotConfigured is returned by a channel that has no credentials.
var ErrNotConfigured = errors.New("channel not configured")

// Nop refuses every delivery. Callers treat it like an unreachable channel.
type Nop struct{}

func (Nop) Send(context.Context, string, string) error {
	return ErrNotConfigured
}

// LogAlerter writes alerts to the log. It stands in for Telegram when the
// ops bot is disabled.
type LogAlerter struct{}

func (LogAlerter) Alert(_ context.Context, text string) error {
	zap.L().Warn("ops alert", zap.String("text", text))
	return nil
}
