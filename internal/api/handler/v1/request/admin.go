package request

import (
	"errors"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/shopspring/decimal"

	"github.com/pyramide/event-api/internal/domain"
)

type BanRequest struct {
	Banned *bool `json:"is_banned"`
}

func (req *BanRequest) Validate() error {
	if req.Banned == nil {
		return errors.New("is_banned: cannot be blank")
	}

	return nil
}

type RoleRequest struct {
	Role string `json:"role"`
}

func (req *RoleRequest) Validate() error {
	roles := make([]interface{}, 0, len(domain.Roles))
	for _, r := range domain.Roles {
		roles = append(roles, string(r))
	}

	return validation.ValidateStruct(
		req,
		validation.Field(&req.Role, validation.Required, validation.In(roles...)),
	)
}

type EventConfigRequest struct {
	EventDate          time.Time           `json:"event_date"`
	EventPlace         string              `json:"event_place"`
	Latitude           *float64            `json:"latitude"`
	Longitude          *float64            `json:"longitude"`
	InfoPublic         bool                `json:"info_public"`
	MaxParticipants    int                 `json:"max_participants"`
	MinTicketPrice     decimal.NullDecimal `json:"min_ticket_price"`
	MaxTicketPrice     decimal.NullDecimal `json:"max_ticket_price"`
	Currency           string              `json:"currency"`
	MaxInvitesPerUser  int                 `json:"max_invites_per_user"`
	MaxDiscountPercent decimal.Decimal     `json:"max_discount_percent"`
}

func (req *EventConfigRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.EventPlace, validation.Length(0, 200)),
		validation.Field(&req.Latitude, validation.Min(-90.0), validation.Max(90.0)),
		validation.Field(&req.Longitude, validation.Min(-180.0), validation.Max(180.0)),
		validation.Field(&req.MaxParticipants, validation.Min(0)),
		validation.Field(&req.Currency, validation.Required, validation.Length(3, 3)),
		validation.Field(&req.MaxInvitesPerUser, validation.Min(0)),
	)
}

func (req *EventConfigRequest) ToDomain() domain.EventConfig {
	return domain.EventConfig{
		EventDate:          req.EventDate,
		EventPlace:         req.EventPlace,
		Latitude:           req.Latitude,
		Longitude:          req.Longitude,
		InfoPublic:         req.InfoPublic,
		MaxParticipants:    req.MaxParticipants,
		MinTicketPrice:     req.MinTicketPrice,
		MaxTicketPrice:     req.MaxTicketPrice,
		Currency:           req.Currency,
		MaxInvitesPerUser:  req.MaxInvitesPerUser,
		MaxDiscountPercent: req.MaxDiscountPercent,
	}
}

type BroadcastRequest struct {
	Content string `json:"content"`
}

func (req *BroadcastRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Content, validation.Required, validation.Length(1, 1000)),
	)
}

type DirectMessageRequest struct {
	UserID  uint   `json:"user_id"`
	Content string `json:"content"`
}

func (req *DirectMessageRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.UserID, validation.Required),
		validation.Field(&req.Content, validation.Required, validation.Length(1, 1000)),
	)
}
