package domain

import "time"

type IncidentStatus string

const (
	IncidentOpen     IncidentStatus = "open"
	IncidentResolved IncidentStatus = "resolved"
	IncidentClosed   IncidentStatus = "closed"
)

type Incident struct {
	ID           uint           `json:"id"`
	Type         string         `json:"type"`
	Description  string         `json:"description"`
	Location     string         `json:"location,omitempty"`
	ReportedBy   uint           `json:"reported_by"`
	PeopleNeeded int            `json:"people_needed"`
	AssignedIDs  []uint         `json:"assigned"`
	Status       IncidentStatus `json:"status"`
	CreatedAt    time.Time      `json:"created_at"`
	ResolvedAt   *time.Time     `json:"resolved_at,omitempty"`
}

func (i Incident) Resolvable() bool {
	return len(i.AssignedIDs) >= i.PeopleNeeded
}
