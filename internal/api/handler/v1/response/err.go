package response

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pyramide/event-api/internal/domain"
)

// Err is the body of every failed request.
type Err struct {
	Err            error `json:"-"`
	HTTPStatusCode int   `json:"-"`

	StatusText string         `json:"status"`
	Kind       domain.Kind    `json:"kind"`
	ErrorText  string         `json:"error,omitempty"`
	Details    map[string]any `json:"details,omitempty"`
}

var statusByKind = map[domain.Kind]int{
	domain.KindUnauthorized:        http.StatusUnauthorized,
	domain.KindInvalidCredential:   http.StatusUnauthorized,
	domain.KindForbidden:           http.StatusForbidden,
	domain.KindNotFound:            http.StatusNotFound,
	domain.KindConflict:            http.StatusConflict,
	domain.KindAlreadyVerified:     http.StatusConflict,
	domain.KindInvalid:             http.StatusBadRequest,
	domain.KindInvalidAmount:       http.StatusBadRequest,
	domain.KindQuotaExceeded:       http.StatusUnprocessableEntity,
	domain.KindEventFull:           http.StatusUnprocessableEntity,
	domain.KindInsufficientStock:   http.StatusUnprocessableEntity,
	domain.KindExceedsOutstanding:  http.StatusUnprocessableEntity,
	domain.KindExpired:             http.StatusGone,
	domain.KindUpstreamUnavailable: http.StatusBadGateway,
}

// RenderErr writes e and aborts the chain. Server errors are logged with the
// full wrapped chain; the client only sees the generic text.
func RenderErr(ctx *gin.Context, e *Err) {
	if e.HTTPStatusCode >= http.StatusInternalServerError {
		zap.L().Error("request failed",
			zap.String("request_id", requestid.Get(ctx)),
			zap.String("method", ctx.Request.Method),
			zap.String("path", ctx.FullPath()),
			zap.Error(e.Err),
		)
	}

	ctx.AbortWithStatusJSON(e.HTTPStatusCode, e)
}

// FromError converts any error returned by a service. Business failures keep
// their kind, message and details; anything else becomes a 500.
func FromError(err error) *Err {
	var derr *domain.Error
	if !errors.As(err, &derr) {
		return ErrInternalServerError(err)
	}

	status, ok := statusByKind[derr.Kind]
	if !ok {
		return ErrInternalServerError(err)
	}

	return &Err{
		Err:            err,
		HTTPStatusCode: status,
		StatusText:     http.StatusText(status),
		Kind:           derr.Kind,
		ErrorText:      derr.Message,
		Details:        derr.Details,
	}
}

func ErrBadRequest(err error) *Err {
	return &Err{
		Err:            err,
		HTTPStatusCode: http.StatusBadRequest,
		StatusText:     http.StatusText(http.StatusBadRequest),
		Kind:           domain.KindInvalid,
		ErrorText:      err.Error(),
	}
}

func ErrUnauthorized(err error) *Err {
	return &Err{
		Err:            err,
		HTTPStatusCode: http.StatusUnauthorized,
		StatusText:     http.StatusText(http.StatusUnauthorized),
		Kind:           domain.KindUnauthorized,
		ErrorText:      domain.ErrUnauthorized.Message,
	}
}

func ErrPermissionDenied(err error) *Err {
	return &Err{
		Err:            err,
		HTTPStatusCode: http.StatusForbidden,
		StatusText:     http.StatusText(http.StatusForbidden),
		Kind:           domain.KindForbidden,
		ErrorText:      err.Error(),
	}
}

func ErrNotFound(resource, key string, value any) *Err {
	return &Err{
		Err:            fmt.Errorf("%s with %s %v not found", resource, key, value),
		HTTPStatusCode: http.StatusNotFound,
		StatusText:     http.StatusText(http.StatusNotFound),
		Kind:           domain.KindNotFound,
		ErrorText:      fmt.Sprintf("%s not found", resource),
		Details:        map[string]any{key: value},
	}
}

func ErrInternalServerError(err error) *Err {
	return &Err{
		Err:            err,
		HTTPStatusCode: http.StatusInternalServerError,
		StatusText:     http.StatusText(http.StatusInternalServerError),
		Kind:           domain.KindInternal,
		ErrorText:      "something went wrong",
	}
}
