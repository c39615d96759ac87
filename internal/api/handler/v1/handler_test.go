package v1

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pyramide/event-api/internal/api/handler/v1/response"
	"github.com/pyramide/event-api/internal/api/middleware"
	"github.com/pyramide/event-api/internal/config"
	"github.com/pyramide/event-api/internal/domain"
	"github.com/pyramide/event-api/internal/pkg/jwthelper"
	"github.com/pyramide/event-api/internal/service"
)

const testSigningKey = "test-signing-key"

var (
	guest     = domain.Account{ID: 7, Username: "alice", Role: domain.RoleGuest}
	bartender = domain.Account{ID: 9, Username: "barry", Role: domain.RoleBartender}
	fixedNow  = time.Date(2026, 6, 20, 21, 0, 0, 0, time.UTC)
)

type fixedClock struct{}

func (fixedClock) Now() time.Time { return fixedNow }

func init() {
	gin.SetMode(gin.TestMode)
}

func newRouter(as *domain.Account) *gin.Engine {
	r := gin.New()
	if as != nil {
		r.Use(middleware.SetAccount(*as))
	}

	return r
}

func doJSON(t *testing.T, r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	return w
}

func decodeErr(t *testing.T, w *httptest.ResponseRecorder) response.Err {
	t.Helper()

	var e response.Err
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &e))

	return e
}

type fakeAuthService struct {
	requestCode func(ctx context.Context, username string) (string, error)
	verifyCode  func(ctx context.Context, username, code string) (domain.Account, error)
}

func (f *fakeAuthService) RequestCode(ctx context.Context, username string) (string, error) {
	return f.requestCode(ctx, username)
}

func (f *fakeAuthService) VerifyCode(ctx context.Context, username, code string) (domain.Account, error) {
	return f.verifyCode(ctx, username, code)
}

func newAuthRouter(svc AuthService) *gin.Engine {
	h := NewAuthHandler(&config.APIConfig{JWTSigningKey: testSigningKey, TokenTTL: time.Hour}, svc, fixedClock{})
	r := newRouter(nil)
	r.POST("/auth/request-code", h.HandleRequestCode)
	r.POST("/auth/verify-code", h.HandleVerifyCode)

	return r
}

func TestHandleRequestCode(t *testing.T) {
	t.Run("normalises the handle and returns the development code", func(t *testing.T) {
		var got string
		r := newAuthRouter(&fakeAuthService{requestCode: func(_ context.Context, username string) (string, error) {
			got = username
			return "123456", nil
		}})

		w := doJSON(t, r, http.MethodPost, "/auth/request-code", map[string]string{"username": " @Alice.Smith "})

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "alice.smith", got)
		var resp response.RequestCodeResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "123456", resp.DevCode)
	})

	t.Run("delivered code is not echoed", func(t *testing.T) {
		r := newAuthRouter(&fakeAuthService{requestCode: func(context.Context, string) (string, error) {
			return "", nil
		}})

		w := doJSON(t, r, http.MethodPost, "/auth/request-code", map[string]string{"username": "alice"})

		require.Equal(t, http.StatusOK, w.Code)
		assert.NotContains(t, w.Body.String(), "dev_code")
	})

	t.Run("rejects handles Instagram would not allow", func(t *testing.T) {
		r := newAuthRouter(&fakeAuthService{})

		for _, username := range []string{"", ".alice", "alice.", "al..ice", "alice!", "a23456789012345678901234567890x"} {
			w := doJSON(t, r, http.MethodPost, "/auth/request-code", map[string]string{"username": username})
			assert.Equal(t, http.StatusBadRequest, w.Code, username)
		}
	})

	t.Run("delivery failure in production is a bad gateway", func(t *testing.T) {
		r := newAuthRouter(&fakeAuthService{requestCode: func(context.Context, string) (string, error) {
			return "", domain.ErrUpstreamUnavailable
		}})

		w := doJSON(t, r, http.MethodPost, "/auth/request-code", map[string]string{"username": "alice"})

		require.Equal(t, http.StatusBadGateway, w.Code)
		assert.Equal(t, domain.KindUpstreamUnavailable, decodeErr(t, w).Kind)
	})
}

func TestHandleVerifyCode(t *testing.T) {
	t.Run("issues a token for the resolved account", func(t *testing.T) {
		r := newAuthRouter(&fakeAuthService{verifyCode: func(_ context.Context, username, code string) (domain.Account, error) {
			assert.Equal(t, "alice", username)
			assert.Equal(t, "123456", code)
			return guest, nil
		}})

		w := doJSON(t, r, http.MethodPost, "/auth/verify-code", map[string]string{"username": "Alice", "code": "123456"})

		require.Equal(t, http.StatusOK, w.Code)
		var resp response.LoginResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, guest.ID, resp.User.ID)
		assert.True(t, fixedNow.Add(time.Hour).Equal(resp.ExpiresAt))

		claims, err := jwthelper.ParseToken([]byte(testSigningKey), resp.Token)
		require.NoError(t, err)
		id, err := claims.UserID()
		require.NoError(t, err)
		assert.Equal(t, guest.ID, id)
	})

	t.Run("maps service failures to their kinds", func(t *testing.T) {
		cases := []struct {
			err    error
			status int
			kind   domain.Kind
		}{
			{domain.ErrInvalidCredential, http.StatusUnauthorized, domain.KindInvalidCredential},
			{domain.ErrExpired, http.StatusGone, domain.KindExpired},
			{domain.ErrNotInvited, http.StatusForbidden, domain.KindForbidden},
			{domain.ErrEventFull, http.StatusUnprocessableEntity, domain.KindEventFull},
		}

		for _, tc := range cases {
			err := tc.err
			r := newAuthRouter(&fakeAuthService{verifyCode: func(context.Context, string, string) (domain.Account, error) {
				return domain.Account{}, err
			}})

			w := doJSON(t, r, http.MethodPost, "/auth/verify-code", map[string]string{"username": "alice", "code": "123456"})

			assert.Equal(t, tc.status, w.Code, string(tc.kind))
			assert.Equal(t, tc.kind, decodeErr(t, w).Kind)
		}
	})

	t.Run("non-numeric code is rejected before the service", func(t *testing.T) {
		r := newAuthRouter(&fakeAuthService{})

		w := doJSON(t, r, http.MethodPost, "/auth/verify-code", map[string]string{"username": "alice", "code": "12ab56"})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

type fakeInvitationService struct {
	InvitationService
	issue func(ctx context.Context, inviterID uint, identity, name string) (domain.Invitation, error)
}

func (f *fakeInvitationService) Issue(ctx context.Context, inviterID uint, identity, name string) (domain.Invitation, error) {
	return f.issue(ctx, inviterID, identity, name)
}

func TestHandleCreateInvitation(t *testing.T) {
	newInvitationRouter := func(svc InvitationService) *gin.Engine {
		r := newRouter(&guest)
		r.POST("/invitations", NewInvitationHandler(svc).HandleCreateInvitation)
		return r
	}

	t.Run("created", func(t *testing.T) {
		r := newInvitationRouter(&fakeInvitationService{issue: func(_ context.Context, inviterID uint, identity, name string) (domain.Invitation, error) {
			assert.Equal(t, guest.ID, inviterID)
			assert.Equal(t, "bob", identity)
			return domain.Invitation{ID: 1, InviterID: inviterID, InviteeIdentity: identity, InviteeName: name, Status: domain.InvitationPending}, nil
		}})

		w := doJSON(t, r, http.MethodPost, "/invitations", map[string]string{"invitee_username": "@Bob", "invitee_name": "Bob"})

		require.Equal(t, http.StatusCreated, w.Code)
		var inv domain.Invitation
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &inv))
		assert.Equal(t, domain.InvitationPending, inv.Status)
	})

	t.Run("quota exceeded", func(t *testing.T) {
		r := newInvitationRouter(&fakeInvitationService{issue: func(context.Context, uint, string, string) (domain.Invitation, error) {
			return domain.Invitation{}, domain.ErrQuotaExceeded.WithDetail("max_invites", 5)
		}})

		w := doJSON(t, r, http.MethodPost, "/invitations", map[string]string{"invitee_username": "bob", "invitee_name": "Bob"})

		require.Equal(t, http.StatusUnprocessableEntity, w.Code)
		e := decodeErr(t, w)
		assert.Equal(t, domain.KindQuotaExceeded, e.Kind)
		assert.EqualValues(t, 5, e.Details["max_invites"])
	})

	t.Run("duplicate invitee", func(t *testing.T) {
		r := newInvitationRouter(&fakeInvitationService{issue: func(context.Context, uint, string, string) (domain.Invitation, error) {
			return domain.Invitation{}, domain.ErrDuplicateInvitee
		}})

		w := doJSON(t, r, http.MethodPost, "/invitations", map[string]string{"invitee_username": "bob", "invitee_name": "Bob"})

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

type fakeTicketService struct {
	TicketService
	verify func(ctx context.Context, inspectorID uint, code string) (domain.Admission, error)
}

func (f *fakeTicketService) Verify(ctx context.Context, inspectorID uint, code string) (domain.Admission, error) {
	return f.verify(ctx, inspectorID, code)
}

func TestHandleVerifyTicket(t *testing.T) {
	inspector := domain.Account{ID: 3, Role: domain.RoleTicketInspector}
	newTicketRouter := func(svc TicketService) *gin.Engine {
		r := newRouter(&inspector)
		r.POST("/tickets/verify", NewTicketHandler(svc).HandleVerifyTicket)
		return r
	}

	t.Run("already verified is a normal answer", func(t *testing.T) {
		r := newTicketRouter(&fakeTicketService{verify: func(_ context.Context, inspectorID uint, code string) (domain.Admission, error) {
			assert.Equal(t, inspector.ID, inspectorID)
			return domain.Admission{Status: domain.ScanAlreadyVerified, Color: domain.ColorGreen}, nil
		}})

		w := doJSON(t, r, http.MethodPost, "/tickets/verify", map[string]string{"code": "abc"})

		require.Equal(t, http.StatusOK, w.Code)
		var adm domain.Admission
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &adm))
		assert.Equal(t, domain.ScanAlreadyVerified, adm.Status)
	})

	t.Run("unknown code shows red", func(t *testing.T) {
		r := newTicketRouter(&fakeTicketService{verify: func(context.Context, uint, string) (domain.Admission, error) {
			return domain.Admission{}, service.ErrInvalidTicket
		}})

		w := doJSON(t, r, http.MethodPost, "/tickets/verify", map[string]string{"code": "nope"})

		require.Equal(t, http.StatusNotFound, w.Code)
		e := decodeErr(t, w)
		assert.Equal(t, "red", e.Details["color"])
		assert.Equal(t, "invalid", e.Details["status"])
	})
}

type fakeBarService struct {
	BarService
	recordSale func(ctx context.Context, req service.SaleRequest) (domain.Sale, error)
}

func (f *fakeBarService) RecordSale(ctx context.Context, req service.SaleRequest) (domain.Sale, error) {
	return f.recordSale(ctx, req)
}

func TestHandleRecordSale(t *testing.T) {
	newBarRouter := func(svc BarService) *gin.Engine {
		r := newRouter(&bartender)
		r.POST("/bar/sales", NewBarHandler(svc).HandleRecordSale)
		return r
	}

	t.Run("merges repeated lines and records the bartender", func(t *testing.T) {
		r := newBarRouter(&fakeBarService{recordSale: func(_ context.Context, req service.SaleRequest) (domain.Sale, error) {
			assert.Equal(t, bartender.ID, req.BartenderID)
			assert.Equal(t, map[uint]int{1: 3, 2: 1}, req.Items)
			require.NotNil(t, req.DiscountPercent)
			assert.True(t, decimal.NewFromInt(15).Equal(*req.DiscountPercent))
			return domain.Sale{ID: 11, Actual: decimal.RequireFromString("8.33")}, nil
		}})

		w := doJSON(t, r, http.MethodPost, "/bar/sales", map[string]any{
			"items": []map[string]int{
				{"item_id": 1, "quantity": 2},
				{"item_id": 2, "quantity": 1},
				{"item_id": 1, "quantity": 1},
			},
			"discount_percent": "15",
		})

		require.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), `"actual_amount":"8.33"`)
	})

	t.Run("insufficient stock", func(t *testing.T) {
		r := newBarRouter(&fakeBarService{recordSale: func(context.Context, service.SaleRequest) (domain.Sale, error) {
			return domain.Sale{}, domain.InsufficientStock(1, 4)
		}})

		w := doJSON(t, r, http.MethodPost, "/bar/sales", map[string]any{
			"items": []map[string]int{{"item_id": 1, "quantity": 4}},
		})

		require.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Equal(t, domain.KindInsufficientStock, decodeErr(t, w).Kind)
	})

	t.Run("discount above 100 is rejected", func(t *testing.T) {
		r := newBarRouter(&fakeBarService{})

		w := doJSON(t, r, http.MethodPost, "/bar/sales", map[string]any{
			"items":            []map[string]int{{"item_id": 1, "quantity": 1}},
			"discount_percent": "120",
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("empty cart is rejected", func(t *testing.T) {
		r := newBarRouter(&fakeBarService{})

		w := doJSON(t, r, http.MethodPost, "/bar/sales", map[string]any{"items": []any{}})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

type fakeIncidentService struct {
	IncidentService
	list func(ctx context.Context, status domain.IncidentStatus, limit int) ([]domain.Incident, error)
}

func (f *fakeIncidentService) List(ctx context.Context, status domain.IncidentStatus, limit int) ([]domain.Incident, error) {
	return f.list(ctx, status, limit)
}

func TestHandleListIncidents(t *testing.T) {
	security := domain.Account{ID: 4, Role: domain.RoleSecurity}
	var gotStatus domain.IncidentStatus
	var gotLimit int
	svc := &fakeIncidentService{list: func(_ context.Context, status domain.IncidentStatus, limit int) ([]domain.Incident, error) {
		gotStatus, gotLimit = status, limit
		return []domain.Incident{{ID: 1, Status: domain.IncidentOpen}}, nil
	}}
	r := newRouter(&security)
	r.GET("/incidents", NewIncidentHandler(svc).HandleListIncidents)

	w := doJSON(t, r, http.MethodGet, "/incidents?status=open&limit=10", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, domain.IncidentOpen, gotStatus)
	assert.Equal(t, 10, gotLimit)

	w = doJSON(t, r, http.MethodGet, "/incidents?status=burning", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodGet, "/incidents?limit=-1", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

type pinger struct{ err error }

func (p pinger) Ping(context.Context) error { return p.err }

func TestHandleHealthcheck(t *testing.T) {
	r := newRouter(nil)
	r.GET("/", NewHealthHandler(pinger{err: assert.AnError}).HandleHealthcheck)

	w := doJSON(t, r, http.MethodGet, "/", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var resp response.HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "unavailable", resp.Cache)
}

func TestHandlerRequiresAccount(t *testing.T) {
	r := newRouter(nil)
	r.GET("/me", NewMeHandler(nil, nil, nil).HandleGetMe)

	w := doJSON(t, r, http.MethodGet, "/me", nil)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
