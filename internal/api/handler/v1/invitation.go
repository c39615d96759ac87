package v1

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pyramide/event-api/internal/api/handler/v1/request"
	"github.com/pyramide/event-api/internal/api/handler/v1/response"
	"github.com/pyramide/event-api/internal/domain"
)

type InvitationService interface {
	Issue(ctx context.Context, inviterID uint, identity, name string) (domain.Invitation, error)
	Cancel(ctx context.Context, id, requesterID uint) error
	Mine(ctx context.Context, inviterID uint) ([]domain.Invitation, domain.InviteStats, error)
	ListAll(ctx context.Context) ([]domain.Invitation, error)
}

type InvitationHandler struct {
	svc InvitationService
}

func NewInvitationHandler(svc InvitationService) *InvitationHandler {
	return &InvitationHandler{
		svc: svc,
	}
}

// HandleCreateInvitation godoc
// @Summary      Invite someone
// @Tags         invitations
// @Produce      json
// @Param        request  body      request.CreateInvitationRequest true "request body"
// @Success      201      {object}  domain.Invitation
// @Failure      400      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      409      {object}  response.Err
// @Failure      422      {object}  response.Err
// @Router       /invitations [post]
// @Security BearerAuth
func (h *InvitationHandler) HandleCreateInvitation(ctx *gin.Context) {
	account, ok := currentAccount(ctx)
	if !ok {
		return
	}

	var req request.CreateInvitationRequest
	if !bindJSON(ctx, &req) {
		return
	}

	inv, err := h.svc.Issue(ctx.Request.Context(), account.ID, req.InviteeUsername, req.InviteeName)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleCreateInvitation -> h.svc.Issue", err)
		return
	}

	ctx.JSON(http.StatusCreated, inv)
}

// HandleGetMyInvitations godoc
// @Summary      Invitations I sent
// @Tags         invitations
// @Produce      json
// @Success      200  {object}  response.MyInvitationsResponse
// @Failure      401  {object}  response.Err
// @Router       /invitations [get]
// @Security BearerAuth
func (h *InvitationHandler) HandleGetMyInvitations(ctx *gin.Context) {
	account, ok := currentAccount(ctx)
	if !ok {
		return
	}

	list, stats, err := h.svc.Mine(ctx.Request.Context(), account.ID)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleGetMyInvitations -> h.svc.Mine", err)
		return
	}

	ctx.JSON(http.StatusOK, response.MyInvitationsResponse{
		Invitations: list,
		Stats:       stats,
	})
}

// HandleCancelInvitation godoc
// @Summary      Cancel a pending invitation
// @Tags         invitations
// @Produce      json
// @Param        invitationID  path  int  true  "Invitation ID"
// @Success      204
// @Failure      404  {object}  response.Err
// @Failure      409  {object}  response.Err
// @Router       /invitations/{invitationID} [delete]
// @Security BearerAuth
func (h *InvitationHandler) HandleCancelInvitation(ctx *gin.Context) {
	account, ok := currentAccount(ctx)
	if !ok {
		return
	}

	id, ok := paramID(ctx, "invitationID")
	if !ok {
		return
	}

	if err := h.svc.Cancel(ctx.Request.Context(), id, account.ID); err != nil {
		renderServiceErr(ctx, "v1.HandleCancelInvitation -> h.svc.Cancel", err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleListInvitations godoc
// @Summary      Every invitation
// @Tags         admin
// @Produce      json
// @Success      200  {array}   domain.Invitation
// @Failure      403  {object}  response.Err
// @Router       /admin/invitations [get]
// @Security BearerAuth
func (h *InvitationHandler) HandleListInvitations(ctx *gin.Context) {
	list, err := h.svc.ListAll(ctx.Request.Context())
	if err != nil {
		renderServiceErr(ctx, "v1.HandleListInvitations -> h.svc.ListAll", err)
		return
	}

	ctx.JSON(http.StatusOK, list)
}
