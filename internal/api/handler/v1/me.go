package v1

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pyramide/event-api/internal/api/handler/v1/request"
	"github.com/pyramide/event-api/internal/domain"
)

type MeService interface {
	Get(ctx context.Context, id uint) (domain.Account, error)
	SetAttendance(ctx context.Context, id uint, attending bool) (domain.Account, error)
}

type PriceQuoter interface {
	Quote(ctx context.Context, accountID uint) (domain.PriceQuote, error)
}

type EventInfoService interface {
	Info(ctx context.Context) (domain.EventInfo, error)
}

type MeHandler struct {
	accounts MeService
	prices   PriceQuoter
	event    EventInfoService
}

func NewMeHandler(accounts MeService, prices PriceQuoter, event EventInfoService) *MeHandler {
	return &MeHandler{
		accounts: accounts,
		prices:   prices,
		event:    event,
	}
}

// HandleGetMe godoc
// @Summary      Current account
// @Tags         me
// @Produce      json
// @Success      200  {object}  domain.Account
// @Failure      401  {object}  response.Err
// @Router       /me [get]
// @Security BearerAuth
func (h *MeHandler) HandleGetMe(ctx *gin.Context) {
	account, ok := currentAccount(ctx)
	if !ok {
		return
	}

	ctx.JSON(http.StatusOK, account)
}

// HandleSetAttendance godoc
// @Summary      Answer whether you are coming
// @Tags         me
// @Produce      json
// @Param        request  body      request.AttendanceRequest true "request body"
// @Success      200      {object}  domain.Account
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Router       /me/attendance [post]
// @Security BearerAuth
func (h *MeHandler) HandleSetAttendance(ctx *gin.Context) {
	account, ok := currentAccount(ctx)
	if !ok {
		return
	}

	var req request.AttendanceRequest
	if !bindJSON(ctx, &req) {
		return
	}

	updated, err := h.accounts.SetAttendance(ctx.Request.Context(), account.ID, *req.Attending)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleSetAttendance -> h.accounts.SetAttendance", err)
		return
	}

	ctx.JSON(http.StatusOK, updated)
}

// HandleGetPrice godoc
// @Summary      Live ticket price
// @Description  The price drops as more of your invitations are accepted. It is frozen once a ticket is generated.
// @Tags         me
// @Produce      json
// @Success      200  {object}  domain.PriceQuote
// @Failure      401  {object}  response.Err
// @Router       /me/price [get]
// @Security BearerAuth
func (h *MeHandler) HandleGetPrice(ctx *gin.Context) {
	account, ok := currentAccount(ctx)
	if !ok {
		return
	}

	quote, err := h.prices.Quote(ctx.Request.Context(), account.ID)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleGetPrice -> h.prices.Quote", err)
		return
	}

	ctx.JSON(http.StatusOK, quote)
}

// HandleGetEventInfo godoc
// @Summary      Event details
// @Description  Place and coordinates stay hidden until the organisers publish them.
// @Tags         me
// @Produce      json
// @Success      200  {object}  domain.EventInfo
// @Failure      401  {object}  response.Err
// @Router       /event [get]
// @Security BearerAuth
func (h *MeHandler) HandleGetEventInfo(ctx *gin.Context) {
	info, err := h.event.Info(ctx.Request.Context())
	if err != nil {
		renderServiceErr(ctx, "v1.HandleGetEventInfo -> h.event.Info", err)
		return
	}

	ctx.JSON(http.StatusOK, info)
}
