package v1

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pyramide/event-api/internal/api/handler/v1/request"
	"github.com/pyramide/event-api/internal/domain"
	"github.com/pyramide/event-api/internal/service"
)

const defaultHistoryLimit = 100

type AccountAdminService interface {
	Get(ctx context.Context, id uint) (domain.Account, error)
	List(ctx context.Context) ([]domain.Account, error)
	SetBanned(ctx context.Context, actorID, targetID uint, banned bool) (domain.Account, error)
	SetRole(ctx context.Context, actorID, targetID uint, role string) (domain.Account, error)
}

type EventAdminService interface {
	Config(ctx context.Context) (domain.EventConfig, error)
	Update(ctx context.Context, conf domain.EventConfig) (domain.EventConfig, error)
}

type BroadcastService interface {
	Broadcast(ctx context.Context, content string) (service.BroadcastSummary, error)
	DirectMessage(ctx context.Context, accountID uint, content string) (service.BroadcastSummary, error)
	History(ctx context.Context, limit int) ([]domain.BotMessage, error)
}

type AdminHandler struct {
	accounts  AccountAdminService
	event     EventAdminService
	broadcast BroadcastService
}

func NewAdminHandler(accounts AccountAdminService, event EventAdminService, broadcast BroadcastService) *AdminHandler {
	return &AdminHandler{
		accounts:  accounts,
		event:     event,
		broadcast: broadcast,
	}
}

// HandleListUsers godoc
// @Summary      Every account
// @Tags         admin
// @Produce      json
// @Success      200  {array}   domain.Account
// @Failure      403  {object}  response.Err
// @Router       /admin/users [get]
// @Security BearerAuth
func (h *AdminHandler) HandleListUsers(ctx *gin.Context) {
	accounts, err := h.accounts.List(ctx.Request.Context())
	if err != nil {
		renderServiceErr(ctx, "v1.HandleListUsers -> h.accounts.List", err)
		return
	}

	ctx.JSON(http.StatusOK, accounts)
}

// HandleGetUser godoc
// @Summary      One account
// @Tags         admin
// @Produce      json
// @Param        userID  path  int  true  "User ID"
// @Success      200  {object}  domain.Account
// @Failure      404  {object}  response.Err
// @Router       /admin/users/{userID} [get]
// @Security BearerAuth
func (h *AdminHandler) HandleGetUser(ctx *gin.Context) {
	id, ok := paramID(ctx, "userID")
	if !ok {
		return
	}

	account, err := h.accounts.Get(ctx.Request.Context(), id)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleGetUser -> h.accounts.Get", err)
		return
	}

	ctx.JSON(http.StatusOK, account)
}

// HandleSetBanned godoc
// @Summary      Ban or unban a user
// @Tags         admin
// @Produce      json
// @Param        userID   path      int  true  "User ID"
// @Param        request  body      request.BanRequest true "request body"
// @Success      200      {object}  domain.Account
// @Failure      404      {object}  response.Err
// @Failure      409      {object}  response.Err
// @Router       /admin/users/{userID}/ban [post]
// @Security BearerAuth
func (h *AdminHandler) HandleSetBanned(ctx *gin.Context) {
	actor, ok := currentAccount(ctx)
	if !ok {
		return
	}
	id, ok := paramID(ctx, "userID")
	if !ok {
		return
	}

	var req request.BanRequest
	if !bindJSON(ctx, &req) {
		return
	}

	account, err := h.accounts.SetBanned(ctx.Request.Context(), actor.ID, id, *req.Banned)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleSetBanned -> h.accounts.SetBanned", err)
		return
	}

	ctx.JSON(http.StatusOK, account)
}

// HandleSetRole godoc
// @Summary      Change the role of a user
// @Tags         admin
// @Produce      json
// @Param        userID   path      int  true  "User ID"
// @Param        request  body      request.RoleRequest true "request body"
// @Success      200      {object}  domain.Account
// @Failure      400      {object}  response.Err
// @Failure      409      {object}  response.Err
// @Router       /admin/users/{userID}/role [put]
// @Security BearerAuth
func (h *AdminHandler) HandleSetRole(ctx *gin.Context) {
	actor, ok := currentAccount(ctx)
	if !ok {
		return
	}
	id, ok := paramID(ctx, "userID")
	if !ok {
		return
	}

	var req request.RoleRequest
	if !bindJSON(ctx, &req) {
		return
	}

	account, err := h.accounts.SetRole(ctx.Request.Context(), actor.ID, id, req.Role)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleSetRole -> h.accounts.SetRole", err)
		return
	}

	ctx.JSON(http.StatusOK, account)
}

// HandleGetEventConfig godoc
// @Summary      Event settings
// @Tags         admin
// @Produce      json
// @Success      200  {object}  domain.EventConfig
// @Router       /admin/event [get]
// @Security BearerAuth
func (h *AdminHandler) HandleGetEventConfig(ctx *gin.Context) {
	conf, err := h.event.Config(ctx.Request.Context())
	if err != nil {
		renderServiceErr(ctx, "v1.HandleGetEventConfig -> h.event.Config", err)
		return
	}

	ctx.JSON(http.StatusOK, conf)
}

// HandleUpdateEventConfig godoc
// @Summary      Replace the event settings
// @Tags         admin
// @Produce      json
// @Param        request  body      request.EventConfigRequest true "request body"
// @Success      200      {object}  domain.EventConfig
// @Failure      400      {object}  response.Err
// @Router       /admin/event [put]
// @Security BearerAuth
func (h *AdminHandler) HandleUpdateEventConfig(ctx *gin.Context) {
	var req request.EventConfigRequest
	if !bindJSON(ctx, &req) {
		return
	}

	conf, err := h.event.Update(ctx.Request.Context(), req.ToDomain())
	if err != nil {
		renderServiceErr(ctx, "v1.HandleUpdateEventConfig -> h.event.Update", err)
		return
	}

	ctx.JSON(http.StatusOK, conf)
}

// HandleBroadcast godoc
// @Summary      Message every guest
// @Description  Messages are queued and delivered in the background.
// @Tags         admin
// @Produce      json
// @Param        request  body      request.BroadcastRequest true "request body"
// @Success      202      {object}  service.BroadcastSummary
// @Failure      400      {object}  response.Err
// @Router       /admin/broadcast [post]
// @Security BearerAuth
func (h *AdminHandler) HandleBroadcast(ctx *gin.Context) {
	var req request.BroadcastRequest
	if !bindJSON(ctx, &req) {
		return
	}

	summary, err := h.broadcast.Broadcast(ctx.Request.Context(), req.Content)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleBroadcast -> h.broadcast.Broadcast", err)
		return
	}

	ctx.JSON(http.StatusAccepted, summary)
}

// HandleDirectMessage godoc
// @Summary      Message one guest
// @Tags         admin
// @Produce      json
// @Param        request  body      request.DirectMessageRequest true "request body"
// @Success      202      {object}  service.BroadcastSummary
// @Failure      403      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Router       /admin/messages [post]
// @Security BearerAuth
func (h *AdminHandler) HandleDirectMessage(ctx *gin.Context) {
	var req request.DirectMessageRequest
	if !bindJSON(ctx, &req) {
		return
	}

	summary, err := h.broadcast.DirectMessage(ctx.Request.Context(), req.UserID, req.Content)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleDirectMessage -> h.broadcast.DirectMessage", err)
		return
	}

	ctx.JSON(http.StatusAccepted, summary)
}

// HandleMessageHistory godoc
// @Summary      Sent bot messages with delivery status
// @Tags         admin
// @Produce      json
// @Param        limit  query  int  false  "Maximum rows (default 100)"
// @Success      200  {array}   domain.BotMessage
// @Router       /admin/messages [get]
// @Security BearerAuth
func (h *AdminHandler) HandleMessageHistory(ctx *gin.Context) {
	limit, ok := queryLimit(ctx, defaultHistoryLimit)
	if !ok {
		return
	}

	messages, err := h.broadcast.History(ctx.Request.Context(), limit)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleMessageHistory -> h.broadcast.History", err)
		return
	}

	ctx.JSON(http.StatusOK, messages)
}
