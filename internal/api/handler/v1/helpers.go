package v1

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/pyramide/event-api/internal/api/handler/v1/response"
	"github.com/pyramide/event-api/internal/api/middleware"
	"github.com/pyramide/event-api/internal/domain"
)

type validatable interface {
	Validate() error
}

// bindJSON decodes and validates the body into req. It renders the error
// itself and reports whether the handler may continue.
func bindJSON(ctx *gin.Context, req validatable) bool {
	if err := ctx.ShouldBindJSON(req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return false
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return false
	}

	return true
}

func currentAccount(ctx *gin.Context) (domain.Account, bool) {
	account, ok := middleware.AccountFrom(ctx)
	if !ok {
		response.RenderErr(ctx, response.ErrUnauthorized(errors.New("no account in context")))
		return domain.Account{}, false
	}

	return account, true
}

func paramID(ctx *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param(name), 10, 32)
	if err != nil || id == 0 {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("%s: must be a positive integer", name)))
		return 0, false
	}

	return uint(id), true
}

func queryLimit(ctx *gin.Context, def int) (int, bool) {
	raw := ctx.Query("limit")
	if raw == "" {
		return def, true
	}

	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 {
		response.RenderErr(ctx, response.ErrBadRequest(errors.New("limit: must be a positive integer")))
		return 0, false
	}

	return limit, true
}

// queryUint parses an optional numeric filter such as ?bartender_id=3.
func queryUint(ctx *gin.Context, name string) (*uint, bool) {
	raw := ctx.Query(name)
	if raw == "" {
		return nil, true
	}

	v, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("%s: must be a positive integer", name)))
		return nil, false
	}
	id := uint(v)

	return &id, true
}

func renderServiceErr(ctx *gin.Context, where string, err error) {
	response.RenderErr(ctx, response.FromError(fmt.Errorf("%s -> %w", where, err)))
}
