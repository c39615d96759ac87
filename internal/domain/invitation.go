package domain

import "time"

type InvitationStatus string

const (
	InvitationPending   InvitationStatus = "pending"
	InvitationAccepted  InvitationStatus = "accepted"
	InvitationCancelled InvitationStatus = "cancelled"
)

type Invitation struct {
	ID              uint             `json:"id"`
	InviterID       uint             `json:"inviter_id"`
	InviteeIdentity string           `json:"invitee_identity"`
	InviteeName     string           `json:"invitee_name"`
	Status          InvitationStatus `json:"status"`
	CreatedAt       time.Time        `json:"created_at"`
	AcceptedAt      *time.Time       `json:"accepted_at,omitempty"`
}

// InviteStats counts an inviter's invitations by status.
type InviteStats struct {
	Pending   int `json:"pending"`
	Accepted  int `json:"accepted"`
	Cancelled int `json:"cancelled"`
}

// Used is the number of invitations that count against the quota.
func (s InviteStats) Used() int {
	return s.Pending + s.Accepted
}
