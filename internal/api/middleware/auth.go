package middleware

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/pyramide/event-api/internal/api/handler/v1/response"
	"github.com/pyramide/event-api/internal/domain"
	"github.com/pyramide/event-api/internal/pkg/jwthelper"
)

const accountKey = "account"

type AccountLoader interface {
	FindByID(ctx context.Context, id uint) (domain.Account, error)
}

type Authenticator struct {
	signingKey []byte
	accounts   AccountLoader
}

func NewAuthenticator(signingKey string, accounts AccountLoader) *Authenticator {
	return &Authenticator{
		signingKey: []byte(signingKey),
		accounts:   accounts,
	}
}

// VerifyJWT loads the account named by the bearer token. Banned accounts are
// rejected on every request, not only at login.
func (a *Authenticator) VerifyJWT() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		header := ctx.GetHeader("Authorization")
		tokenString, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || tokenString == "" {
			response.RenderErr(ctx, response.ErrUnauthorized(errors.New("missing bearer token")))
			return
		}

		claims, err := jwthelper.ParseToken(a.signingKey, tokenString)
		if err != nil {
			response.RenderErr(ctx, response.ErrUnauthorized(err))
			return
		}

		id, err := claims.UserID()
		if err != nil {
			response.RenderErr(ctx, response.ErrUnauthorized(err))
			return
		}

		account, err := a.accounts.FindByID(ctx.Request.Context(), id)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				response.RenderErr(ctx, response.ErrUnauthorized(err))
				return
			}
			response.RenderErr(ctx, response.ErrInternalServerError(fmt.Errorf("VerifyJWT -> a.accounts.FindByID -> %w", err)))
			return
		}
		if account.IsBanned {
			response.RenderErr(ctx, response.FromError(domain.ErrBanned))
			return
		}

		ctx.Set(accountKey, account)
		ctx.Next()
	}
}

// RequireCapability lets the request through only when the authenticated
// account's role grants c. It must run after VerifyJWT.
func RequireCapability(c domain.Capability) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		account, ok := AccountFrom(ctx)
		if !ok {
			response.RenderErr(ctx, response.ErrUnauthorized(errors.New("no account in context")))
			return
		}
		if !account.Role.Can(c) {
			response.RenderErr(ctx, response.FromError(domain.ErrForbidden.WithDetail("required", c.String())))
			return
		}

		ctx.Next()
	}
}

func AccountFrom(ctx *gin.Context) (domain.Account, bool) {
	v, ok := ctx.Get(accountKey)
	if !ok {
		return domain.Account{}, false
	}
	account, ok := v.(domain.Account)

	return account, ok
}

// SetAccount is used by tests that mount handlers without VerifyJWT.
func SetAccount(account domain.Account) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ctx.Set(accountKey, account)
		ctx.Next()
	}
}
