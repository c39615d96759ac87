package domain

import (
	"errors"
	"fmt"
)

// Kind is the stable machine-readable category of a failure.
type Kind string

const (
	KindUnauthorized        Kind = "unauthorized"
	KindForbidden           Kind = "forbidden"
	KindNotFound            Kind = "not_found"
	KindConflict            Kind = "conflict"
	KindInvalid             Kind = "invalid"
	KindQuotaExceeded       Kind = "quota_exceeded"
	KindEventFull           Kind = "event_full"
	KindInsufficientStock   Kind = "insufficient_stock"
	KindInvalidAmount       Kind = "invalid_amount"
	KindExceedsOutstanding  Kind = "exceeds_outstanding"
	KindExpired             Kind = "expired"
	KindInvalidCredential   Kind = "invalid_credential"
	KindAlreadyVerified     Kind = "already_verified"
	KindUpstreamUnavailable Kind = "upstream_unavailable"
	KindInternal            Kind = "internal"
)

// Error is an expected business failure. Two errors are equal under errors.Is
// when their kinds match, so callers can compare against the sentinels below
// while still receiving a specific message and details.
type Error struct {
	Kind    Kind
	Message string
	Details map[string]any
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

// NewError builds an Error of the given kind.
func NewError(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// WithDetail returns a copy of e carrying an extra detail.
func (e *Error) WithDetail(key string, value any) *Error {
	details := make(map[string]any, len(e.Details)+1)
	for k, v := range e.Details {
		details[k] = v
	}
	details[key] = value

	return &Error{Kind: e.Kind, Message: e.Message, Details: details, Err: e.Err}
}

// KindOf reports the kind of err, or KindInternal for anything that is not a
// business failure.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

var (
	ErrUnauthorized        = &Error{Kind: KindUnauthorized, Message: "authentication required"}
	ErrForbidden           = &Error{Kind: KindForbidden, Message: "operation not permitted for this account"}
	ErrNotFound            = &Error{Kind: KindNotFound, Message: "resource not found"}
	ErrConflict            = &Error{Kind: KindConflict, Message: "resource already exists"}
	ErrInvalid             = &Error{Kind: KindInvalid, Message: "invalid request"}
	ErrQuotaExceeded       = &Error{Kind: KindQuotaExceeded, Message: "maximum invitation limit reached"}
	ErrEventFull           = &Error{Kind: KindEventFull, Message: "the event has reached its capacity"}
	ErrInsufficientStock   = &Error{Kind: KindInsufficientStock, Message: "not enough stock available"}
	ErrInvalidAmount       = &Error{Kind: KindInvalidAmount, Message: "amount must be positive"}
	ErrExceedsOutstanding  = &Error{Kind: KindExceedsOutstanding, Message: "amount exceeds outstanding balance"}
	ErrExpired             = &Error{Kind: KindExpired, Message: "code expired"}
	ErrInvalidCredential   = &Error{Kind: KindInvalidCredential, Message: "invalid code"}
	ErrAlreadyVerified     = &Error{Kind: KindAlreadyVerified, Message: "ticket already verified"}
	ErrUpstreamUnavailable = &Error{Kind: KindUpstreamUnavailable, Message: "failed to deliver message"}
)

// Specific failures named by the ledgers. They share a kind with a generic
// sentinel so HTTP mapping stays one table.
var (
	ErrBanned               = &Error{Kind: KindForbidden, Message: "your account is banned"}
	ErrNotInvited           = &Error{Kind: KindForbidden, Message: "no invitation found, access denied"}
	ErrDuplicateInvitee     = &Error{Kind: KindConflict, Message: "user already invited"}
	ErrInviteCycle          = &Error{Kind: KindConflict, Message: "cannot invite yourself or the account that invited you"}
	ErrNotCancellable       = &Error{Kind: KindConflict, Message: "invitation cannot be cancelled"}
	ErrTicketExists         = &Error{Kind: KindConflict, Message: "ticket already generated"}
	ErrTicketNotVerified    = &Error{Kind: KindConflict, Message: "ticket must be verified before confirming payment"}
	ErrNoPaymentDue         = &Error{Kind: KindConflict, Message: "no payment due for this ticket"}
	ErrItemUnavailable      = &Error{Kind: KindConflict, Message: "item is not available"}
	ErrIncidentUnderstaffed = &Error{Kind: KindConflict, Message: "not enough people assigned to resolve the incident"}
	ErrNoPricing            = &Error{Kind: KindNotFound, Message: "no ticket pricing configured"}
)

// InsufficientStock reports which item could not be served.
func InsufficientStock(itemID uint, requested int) *Error {
	return ErrInsufficientStock.
		WithDetail("item_id", itemID).
		WithDetail("requested", requested)
}
