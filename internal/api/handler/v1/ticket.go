package v1

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pyramide/event-api/internal/api/handler/v1/request"
	"github.com/pyramide/event-api/internal/domain"
)

type TicketService interface {
	Generate(ctx context.Context, accountID uint) (domain.Ticket, error)
	Mine(ctx context.Context, accountID uint) (domain.Ticket, error)
	List(ctx context.Context) ([]domain.Ticket, error)
	Verify(ctx context.Context, inspectorID uint, code string) (domain.Admission, error)
	ConfirmPayment(ctx context.Context, code string, paid bool) (domain.Ticket, error)
}

type TicketHandler struct {
	svc TicketService
}

func NewTicketHandler(svc TicketService) *TicketHandler {
	return &TicketHandler{
		svc: svc,
	}
}

// HandleGenerateTicket godoc
// @Summary      Generate my ticket
// @Description  The current price is frozen into the ticket.
// @Tags         tickets
// @Produce      json
// @Success      201  {object}  domain.Ticket
// @Failure      404  {object}  response.Err
// @Failure      409  {object}  response.Err
// @Router       /tickets [post]
// @Security BearerAuth
func (h *TicketHandler) HandleGenerateTicket(ctx *gin.Context) {
	account, ok := currentAccount(ctx)
	if !ok {
		return
	}

	ticket, err := h.svc.Generate(ctx.Request.Context(), account.ID)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleGenerateTicket -> h.svc.Generate", err)
		return
	}

	ctx.JSON(http.StatusCreated, ticket)
}

// HandleGetMyTicket godoc
// @Summary      My ticket
// @Tags         tickets
// @Produce      json
// @Success      200  {object}  domain.Ticket
// @Failure      404  {object}  response.Err
// @Router       /tickets/mine [get]
// @Security BearerAuth
func (h *TicketHandler) HandleGetMyTicket(ctx *gin.Context) {
	account, ok := currentAccount(ctx)
	if !ok {
		return
	}

	ticket, err := h.svc.Mine(ctx.Request.Context(), account.ID)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleGetMyTicket -> h.svc.Mine", err)
		return
	}

	ctx.JSON(http.StatusOK, ticket)
}

// HandleVerifyTicket godoc
// @Summary      Scan a ticket at the door
// @Tags         tickets
// @Produce      json
// @Param        request  body      request.TicketCodeRequest true "request body"
// @Success      200      {object}  domain.Admission
// @Failure      403      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Router       /tickets/verify [post]
// @Security BearerAuth
func (h *TicketHandler) HandleVerifyTicket(ctx *gin.Context) {
	account, ok := currentAccount(ctx)
	if !ok {
		return
	}

	var req request.TicketCodeRequest
	if !bindJSON(ctx, &req) {
		return
	}

	admission, err := h.svc.Verify(ctx.Request.Context(), account.ID, req.Code)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleVerifyTicket -> h.svc.Verify", err)
		return
	}

	ctx.JSON(http.StatusOK, admission)
}

// HandleConfirmPayment godoc
// @Summary      Record cash payment for a scanned ticket
// @Tags         tickets
// @Produce      json
// @Param        request  body      request.ConfirmPaymentRequest true "request body"
// @Success      200      {object}  domain.Ticket
// @Failure      404      {object}  response.Err
// @Failure      409      {object}  response.Err
// @Router       /tickets/confirm-payment [post]
// @Security BearerAuth
func (h *TicketHandler) HandleConfirmPayment(ctx *gin.Context) {
	var req request.ConfirmPaymentRequest
	if !bindJSON(ctx, &req) {
		return
	}

	ticket, err := h.svc.ConfirmPayment(ctx.Request.Context(), req.Code, *req.Paid)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleConfirmPayment -> h.svc.ConfirmPayment", err)
		return
	}

	ctx.JSON(http.StatusOK, ticket)
}

// HandleListTickets godoc
// @Summary      Every ticket
// @Tags         admin
// @Produce      json
// @Success      200  {array}   domain.Ticket
// @Failure      403  {object}  response.Err
// @Router       /admin/tickets [get]
// @Security BearerAuth
func (h *TicketHandler) HandleListTickets(ctx *gin.Context) {
	tickets, err := h.svc.List(ctx.Request.Context())
	if err != nil {
		renderServiceErr(ctx, "v1.HandleListTickets -> h.svc.List", err)
		return
	}

	ctx.JSON(http.StatusOK, tickets)
}
