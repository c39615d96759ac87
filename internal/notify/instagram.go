package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/pyramide/event-api/internal/config"
)

// Instagram sends direct messages through the messaging gateway addressed by
// handle.
type Instagram struct {
	hc          *http.Client
	apiURL      string
	accessToken string
}

func NewInstagram(conf *config.InstagramConfig, timeout time.Duration) *Instagram {
	return &Instagram{
		hc:          &http.Client{Timeout: timeout},
		apiURL:      strings.TrimRight(conf.APIURL, "/"),
		accessToken: conf.AccessToken,
	}
}

type igRecipient struct {
	Username string `json:"username"`
}

type igMessage struct {
	Text string `json:"text"`
}

type igPayload struct {
	Recipient   igRecipient `json:"recipient"`
	Message     igMessage   `json:"message"`
	AccessToken string      `json:"access_token"`
}

func (c *Instagram) Send(ctx context.Context, username, text string) error {
	if c.apiURL == "" || c.accessToken == "" {
		return ErrNotConfigured
	}

	data, err := json.Marshal(igPayload{
		Recipient:   igRecipient{Username: username},
		Message:     igMessage{Text: text},
		AccessToken: c.accessToken,
	})
	if err != nil {
		return fmt.Errorf("json.Marshal -> %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL+"/messages", bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("http.NewRequestWithContext -> %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	t1 := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("c.hc.Do -> %w", err)
	}
	defer resp.Body.Close()

	zap.L().Debug("instagram message sent",
		zap.String("recipient", username),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(t1)),
	)

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("instagram %s: %s", resp.Status, body)
	}

	return nil
}
