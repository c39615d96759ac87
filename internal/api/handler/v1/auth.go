package v1

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pyramide/event-api/internal/api/handler/v1/request"
	"github.com/pyramide/event-api/internal/api/handler/v1/response"
	"github.com/pyramide/event-api/internal/config"
	"github.com/pyramide/event-api/internal/domain"
	"github.com/pyramide/event-api/internal/pkg/clock"
	"github.com/pyramide/event-api/internal/pkg/jwthelper"
)

type AuthService interface {
	RequestCode(ctx context.Context, username string) (string, error)
	VerifyCode(ctx context.Context, username, code string) (domain.Account, error)
}

type AuthHandler struct {
	conf  *config.APIConfig
	svc   AuthService
	clock clock.Clock
}

func NewAuthHandler(conf *config.APIConfig, svc AuthService, clk clock.Clock) *AuthHandler {
	return &AuthHandler{
		conf:  conf,
		svc:   svc,
		clock: clk,
	}
}

// HandleRequestCode godoc
// @Summary      Send a one-time login code
// @Description  Delivers a code over Instagram. Outside production the code is returned when delivery fails.
// @Tags         auth
// @Produce      json
// @Param        request   body      request.RequestCodeRequest true "request body"
// @Success      200      {object}   response.RequestCodeResponse
// @Failure      400      {object}   response.Err
// @Failure      502      {object}   response.Err
// @Router       /auth/request-code [post]
func (h *AuthHandler) HandleRequestCode(ctx *gin.Context) {
	var req request.RequestCodeRequest
	if !bindJSON(ctx, &req) {
		return
	}

	devCode, err := h.svc.RequestCode(ctx.Request.Context(), req.Username)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleRequestCode -> h.svc.RequestCode", err)
		return
	}

	resp := response.RequestCodeResponse{Message: "verification code sent"}
	if devCode != "" {
		resp.Message = "delivery failed, use the development code"
		resp.DevCode = devCode
	}

	ctx.JSON(http.StatusOK, resp)
}

// HandleVerifyCode godoc
// @Summary      Exchange a login code for a session token
// @Tags         auth
// @Produce      json
// @Param        request   body      request.VerifyCodeRequest true "request body"
// @Success      200      {object}   response.LoginResponse
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      410      {object}   response.Err
// @Failure      422      {object}   response.Err
// @Router       /auth/verify-code [post]
func (h *AuthHandler) HandleVerifyCode(ctx *gin.Context) {
	var req request.VerifyCodeRequest
	if !bindJSON(ctx, &req) {
		return
	}

	account, err := h.svc.VerifyCode(ctx.Request.Context(), req.Username, req.Code)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleVerifyCode -> h.svc.VerifyCode", err)
		return
	}

	token, err := jwthelper.GenerateToken([]byte(h.conf.JWTSigningKey), account.ID, ctx.Request.UserAgent(), h.conf.TokenTTL)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleVerifyCode -> jwthelper.GenerateToken", err)
		return
	}

	ctx.JSON(http.StatusOK, response.LoginResponse{
		Token:     token,
		ExpiresAt: h.clock.Now().Add(h.conf.TokenTTL),
		User:      account,
	})
}

// HandleStatus godoc
// @Summary      Current session
// @Tags         auth
// @Produce      json
// @Success      200      {object}   response.StatusResponse
// @Failure      401      {object}   response.Err
// @Router       /auth/status [get]
// @Security BearerAuth
func (h *AuthHandler) HandleStatus(ctx *gin.Context) {
	account, ok := currentAccount(ctx)
	if !ok {
		return
	}

	ctx.JSON(http.StatusOK, response.StatusResponse{
		Authenticated: true,
		User:          account,
	})
}

// HandleLogout godoc
// @Summary      Log out
// @Description  Sessions are stateless; the client discards its token.
// @Tags         auth
// @Produce      json
// @Success      200      {object}   response.MessageResponse
// @Router       /auth/logout [post]
// @Security BearerAuth
func (h *AuthHandler) HandleLogout(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, response.MessageResponse{Message: "logged out"})
}
