package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pyramide/event-api/internal/domain"
	"github.com/pyramide/event-api/internal/pkg/jwthelper"
)

const signingKey = "middleware-test-key"

type accountsStub map[uint]domain.Account

func (s accountsStub) FindByID(_ context.Context, id uint) (domain.Account, error) {
	a, ok := s[id]
	if !ok {
		return domain.Account{}, domain.ErrNotFound
	}

	return a, nil
}

func newAuthRouter(t *testing.T, accounts AccountLoader, caps ...domain.Capability) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	handlers := []gin.HandlerFunc{NewAuthenticator(signingKey, accounts).VerifyJWT()}
	for _, c := range caps {
		handlers = append(handlers, RequireCapability(c))
	}
	handlers = append(handlers, func(ctx *gin.Context) {
		account, _ := AccountFrom(ctx)
		ctx.JSON(http.StatusOK, gin.H{"username": account.Username})
	})

	r := gin.New()
	r.GET("/protected", handlers...)

	return r
}

func get(t *testing.T, r http.Handler, bearer string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	return w
}

func token(t *testing.T, id uint) string {
	t.Helper()

	s, err := jwthelper.GenerateToken([]byte(signingKey), id, "test", time.Hour)
	require.NoError(t, err)

	return s
}

func TestVerifyJWT(t *testing.T) {
	accounts := accountsStub{
		1: {ID: 1, Username: "alice", Role: domain.RoleGuest},
		2: {ID: 2, Username: "mallory", Role: domain.RoleGuest, IsBanned: true},
	}
	r := newAuthRouter(t, accounts)

	t.Run("valid token", func(t *testing.T) {
		w := get(t, r, token(t, 1))
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "alice")
	})

	t.Run("missing token", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, get(t, r, "").Code)
	})

	t.Run("token signed with another key", func(t *testing.T) {
		other, err := jwthelper.GenerateToken([]byte("other"), 1, "test", time.Hour)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, get(t, r, other).Code)
	})

	t.Run("deleted account", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, get(t, r, token(t, 99)).Code)
	})

	t.Run("banned account", func(t *testing.T) {
		w := get(t, r, token(t, 2))
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), domain.ErrBanned.Message)
	})
}

func TestRequireCapability(t *testing.T) {
	accounts := accountsStub{
		1: {ID: 1, Role: domain.RoleGuest},
		2: {ID: 2, Role: domain.RoleBartender},
		3: {ID: 3, Role: domain.RoleAdmin},
	}
	r := newAuthRouter(t, accounts, domain.CapSellBar)

	assert.Equal(t, http.StatusForbidden, get(t, r, token(t, 1)).Code)
	assert.Equal(t, http.StatusOK, get(t, r, token(t, 2)).Code)
	assert.Equal(t, http.StatusOK, get(t, r, token(t, 3)).Code)
}
