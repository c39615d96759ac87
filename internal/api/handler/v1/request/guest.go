package request

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/pyramide/event-api/internal/domain"
)

type AttendanceRequest struct {
	Attending *bool `json:"attending"`
}

func (req *AttendanceRequest) Validate() error {
	if req.Attending == nil {
		return errors.New("attending: cannot be blank")
	}

	return nil
}

type CreateInvitationRequest struct {
	InviteeUsername string `json:"invitee_username"`
	InviteeName     string `json:"invitee_name"`
}

func (req *CreateInvitationRequest) Validate() error {
	req.InviteeUsername = domain.NormalizeHandle(req.InviteeUsername)

	return validation.ValidateStruct(
		req,
		validation.Field(&req.InviteeUsername, validation.Required, Handle),
		validation.Field(&req.InviteeName, validation.Required, validation.Length(1, 100)),
	)
}

type TicketCodeRequest struct {
	Code string `json:"code"`
}

func (req *TicketCodeRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Code, validation.Required, validation.Length(1, 64)),
	)
}

type ConfirmPaymentRequest struct {
	Code string `json:"code"`
	Paid *bool  `json:"paid"`
}

func (req *ConfirmPaymentRequest) Validate() error {
	if req.Paid == nil {
		t := true
		req.Paid = &t
	}

	return validation.ValidateStruct(
		req,
		validation.Field(&req.Code, validation.Required, validation.Length(1, 64)),
	)
}

type ReportIncidentRequest struct {
	Type         string `json:"incident_type"`
	Description  string `json:"description"`
	Location     string `json:"location"`
	PeopleNeeded int    `json:"people_needed"`
}

func (req *ReportIncidentRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Type, validation.Required, validation.Length(1, 50)),
		validation.Field(&req.Description, validation.Required, validation.Length(1, 1000)),
		validation.Field(&req.Location, validation.Length(0, 200)),
		validation.Field(&req.PeopleNeeded, validation.Min(0), validation.Max(50)),
	)
}

type PeopleNeededRequest struct {
	PeopleNeeded int `json:"people_needed"`
}

func (req *PeopleNeededRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.PeopleNeeded, validation.Required, validation.Min(1), validation.Max(50)),
	)
}
