package response

import (
	"time"

	"github.com/pyramide/event-api/internal/domain"
)

type RequestCodeResponse struct {
	Message string `json:"message"`
	// DevCode is only set outside production when the code could not be delivered.
	DevCode string `json:"dev_code,omitempty"`
}

type LoginResponse struct {
	Token     string         `json:"token"`
	ExpiresAt time.Time      `json:"expires_at"`
	User      domain.Account `json:"user"`
}

type StatusResponse struct {
	Authenticated bool           `json:"authenticated"`
	User          domain.Account `json:"user"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type MyInvitationsResponse struct {
	Invitations []domain.Invitation `json:"invitations"`
	Stats       domain.InviteStats  `json:"stats"`
}

type BartenderSummary struct {
	Balance domain.BartenderBalance `json:"balance"`
	Sales   []domain.Sale           `json:"sales"`
}

type HealthResponse struct {
	Status string `json:"status"`
	Cache  string `json:"cache"`
}
