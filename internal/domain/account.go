package domain

import (
	"fmt"
	"strings"
	"time"
)

type Role string

const (
	RoleGuest           Role = "guest"
	RoleAdmin           Role = "admin"
	RoleStaff           Role = "staff"
	RoleTicketInspector Role = "ticket-inspector"
	RoleSecurity        Role = "security"
	RoleBartender       Role = "bartender"
)

// Roles lists every role the system knows about.
var Roles = []Role{RoleGuest, RoleAdmin, RoleStaff, RoleTicketInspector, RoleSecurity, RoleBartender}

func ParseRole(s string) (Role, error) {
	for _, r := range Roles {
		if string(r) == s {
			return r, nil
		}
	}

	return "", NewError(KindInvalid, "unknown role %q", s)
}

type Capability int

const (
	CapUnlimitedInvites Capability = iota
	CapBypassCapacity
	CapAdmin
	CapVerifyTickets
	CapConfirmPayment
	CapSellBar
	CapHandleIncidents
	CapAssignIncidents
	CapSpecialAdmission
)

func (c Capability) String() string {
	switch c {
	case CapUnlimitedInvites:
		return "unlimited_invites"
	case CapBypassCapacity:
		return "bypass_capacity"
	case CapAdmin:
		return "admin"
	case CapVerifyTickets:
		return "verify_tickets"
	case CapConfirmPayment:
		return "confirm_payment"
	case CapSellBar:
		return "sell_bar"
	case CapHandleIncidents:
		return "handle_incidents"
	case CapAssignIncidents:
		return "assign_incidents"
	case CapSpecialAdmission:
		return "special_admission"
	default:
		return fmt.Sprintf("capability(%d)", int(c))
	}
}

var capabilities = map[Role][]Capability{
	RoleGuest: nil,
	RoleAdmin: {
		CapUnlimitedInvites, CapBypassCapacity, CapAdmin, CapVerifyTickets, CapConfirmPayment,
		CapSellBar, CapHandleIncidents, CapSpecialAdmission,
	},
	RoleStaff:           {CapBypassCapacity, CapSpecialAdmission},
	RoleTicketInspector: {CapVerifyTickets, CapConfirmPayment},
	RoleSecurity:        {CapHandleIncidents, CapAssignIncidents, CapSpecialAdmission},
	RoleBartender:       {CapSellBar},
}

// Can reports whether the role grants c. Unknown roles grant nothing.
func (r Role) Can(c Capability) bool {
	for _, granted := range capabilities[r] {
		if granted == c {
			return true
		}
	}

	return false
}

// Account is a participant. Attending is nil until the account answers.
type Account struct {
	ID         uint      `json:"id"`
	ExternalID string    `json:"external_id"`
	Username   string    `json:"username"`
	FullName   string    `json:"full_name"`
	Role       Role      `json:"role"`
	IsBanned   bool      `json:"is_banned"`
	Attending  *bool     `json:"attending"`
	Admitted   bool      `json:"admitted"`
	InvitedBy  *uint     `json:"invited_by,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (a Account) IsAdmin() bool {
	return a.Role.Can(CapAdmin)
}

// NormalizeHandle turns user input such as " @Alice " into the stored form.
func NormalizeHandle(s string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), "@"))
}
