package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type EventConfig struct {
	ID                  uint                `json:"id"`
	EventDate           time.Time           `json:"event_date"`
	EventPlace          string              `json:"event_place"`
	Latitude            *float64            `json:"latitude,omitempty"`
	Longitude           *float64            `json:"longitude,omitempty"`
	InfoPublic          bool                `json:"info_public"`
	MaxParticipants     int                 `json:"max_participants"`
	CurrentParticipants int                 `json:"current_participants"`
	MinTicketPrice      decimal.NullDecimal `json:"min_ticket_price"`
	MaxTicketPrice      decimal.NullDecimal `json:"max_ticket_price"`
	Currency            string              `json:"currency"`
	MaxInvitesPerUser   int                 `json:"max_invites_per_user"`
	MaxDiscountPercent  decimal.Decimal     `json:"max_discount_percent"`
	UpdatedAt           time.Time           `json:"updated_at"`
}

// EventInfo is the subset of the configuration guests may see.
type EventInfo struct {
	EventDate  time.Time `json:"event_date"`
	EventPlace string    `json:"event_place"`
	Latitude   *float64  `json:"latitude,omitempty"`
	Longitude  *float64  `json:"longitude,omitempty"`
	Public     bool      `json:"info_public"`
}

func (c EventConfig) Info() EventInfo {
	info := EventInfo{EventDate: c.EventDate, Public: c.InfoPublic}
	if c.InfoPublic {
		info.EventPlace = c.EventPlace
		info.Latitude = c.Latitude
		info.Longitude = c.Longitude
	}

	return info
}
