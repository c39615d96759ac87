package v1

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/pyramide/event-api/internal/api/handler/v1/request"
	"github.com/pyramide/event-api/internal/api/handler/v1/response"
	"github.com/pyramide/event-api/internal/domain"
	"github.com/pyramide/event-api/internal/service"
)

const defaultSalesLimit = 100

type BarService interface {
	RecordSale(ctx context.Context, req service.SaleRequest) (domain.Sale, error)
	RecordPayout(ctx context.Context, payout domain.Payout) (domain.Payout, error)
	DiscountFor(ctx context.Context, accountID uint) (decimal.Decimal, error)
	Balance(ctx context.Context, bartenderID uint) (domain.BartenderBalance, error)
	Balances(ctx context.Context) ([]domain.BartenderBalance, error)
	Sales(ctx context.Context, bartenderID *uint, limit int) ([]domain.Sale, error)
	Payouts(ctx context.Context, bartenderID *uint) ([]domain.Payout, error)
	Items(ctx context.Context, includeUnavailable bool) ([]domain.BarItem, error)
	CreateItem(ctx context.Context, item domain.BarItem) (domain.BarItem, error)
	UpdateItem(ctx context.Context, item domain.BarItem) (domain.BarItem, error)
	RemoveItem(ctx context.Context, id uint) error
	SetInventory(ctx context.Context, itemID uint, quantity int) error
	InviteDiscounts(ctx context.Context) ([]domain.InviteDiscount, error)
	SaveInviteDiscount(ctx context.Context, tier domain.InviteDiscount) (domain.InviteDiscount, error)
	DeleteInviteDiscount(ctx context.Context, id uint) error
	PresetDiscounts(ctx context.Context) ([]domain.PresetDiscount, error)
	SetPresetDiscount(ctx context.Context, preset domain.PresetDiscount) error
	DeletePresetDiscount(ctx context.Context, accountID uint) error
}

type BarHandler struct {
	svc BarService
}

func NewBarHandler(svc BarService) *BarHandler {
	return &BarHandler{
		svc: svc,
	}
}

// HandleGetItems godoc
// @Summary      Bar catalog
// @Tags         bar
// @Produce      json
// @Success      200  {array}   domain.BarItem
// @Router       /bar/items [get]
// @Security BearerAuth
func (h *BarHandler) HandleGetItems(ctx *gin.Context) {
	items, err := h.svc.Items(ctx.Request.Context(), false)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleGetItems -> h.svc.Items", err)
		return
	}

	ctx.JSON(http.StatusOK, items)
}

// HandleGetCustomerDiscount godoc
// @Summary      Bar discount of a customer
// @Tags         bar
// @Produce      json
// @Param        userID  path  int  true  "Customer ID"
// @Success      200  {object}  map[string]string
// @Router       /bar/customers/{userID}/discount [get]
// @Security BearerAuth
func (h *BarHandler) HandleGetCustomerDiscount(ctx *gin.Context) {
	id, ok := paramID(ctx, "userID")
	if !ok {
		return
	}

	discount, err := h.svc.DiscountFor(ctx.Request.Context(), id)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleGetCustomerDiscount -> h.svc.DiscountFor", err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"user_id": id, "discount_percent": discount})
}

// HandleRecordSale godoc
// @Summary      Record a bar sale
// @Description  Without discount_percent the customer's own bar discount applies.
// @Tags         bar
// @Produce      json
// @Param        request  body      request.SaleRequest true "request body"
// @Success      201      {object}  domain.Sale
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      422      {object}  response.Err
// @Router       /bar/sales [post]
// @Security BearerAuth
func (h *BarHandler) HandleRecordSale(ctx *gin.Context) {
	account, ok := currentAccount(ctx)
	if !ok {
		return
	}

	var req request.SaleRequest
	if !bindJSON(ctx, &req) {
		return
	}

	sale, err := h.svc.RecordSale(ctx.Request.Context(), service.SaleRequest{
		BartenderID:     account.ID,
		CustomerID:      req.CustomerID,
		Items:           req.Quantities(),
		DiscountPercent: req.DiscountPercent,
	})
	if err != nil {
		renderServiceErr(ctx, "v1.HandleRecordSale -> h.svc.RecordSale", err)
		return
	}

	ctx.JSON(http.StatusCreated, sale)
}

// HandleGetMyBalance godoc
// @Summary      My takings and recent sales
// @Tags         bar
// @Produce      json
// @Success      200  {object}  response.BartenderSummary
// @Router       /bar/balance [get]
// @Security BearerAuth
func (h *BarHandler) HandleGetMyBalance(ctx *gin.Context) {
	account, ok := currentAccount(ctx)
	if !ok {
		return
	}

	balance, err := h.svc.Balance(ctx.Request.Context(), account.ID)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleGetMyBalance -> h.svc.Balance", err)
		return
	}

	sales, err := h.svc.Sales(ctx.Request.Context(), &account.ID, defaultSalesLimit)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleGetMyBalance -> h.svc.Sales", err)
		return
	}

	ctx.JSON(http.StatusOK, response.BartenderSummary{
		Balance: balance,
		Sales:   sales,
	})
}

// HandleListAllItems godoc
// @Summary      Bar catalog including withdrawn items
// @Tags         admin
// @Produce      json
// @Success      200  {array}   domain.BarItem
// @Router       /admin/bar/items [get]
// @Security BearerAuth
func (h *BarHandler) HandleListAllItems(ctx *gin.Context) {
	items, err := h.svc.Items(ctx.Request.Context(), true)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleListAllItems -> h.svc.Items", err)
		return
	}

	ctx.JSON(http.StatusOK, items)
}

// HandleCreateItem godoc
// @Summary      Add a bar item
// @Tags         admin
// @Produce      json
// @Param        request  body      request.BarItemRequest true "request body"
// @Success      201      {object}  domain.BarItem
// @Failure      400      {object}  response.Err
// @Router       /admin/bar/items [post]
// @Security BearerAuth
func (h *BarHandler) HandleCreateItem(ctx *gin.Context) {
	var req request.BarItemRequest
	if !bindJSON(ctx, &req) {
		return
	}

	item, err := h.svc.CreateItem(ctx.Request.Context(), domain.BarItem{
		Name:        req.Name,
		Category:    req.Category,
		Description: req.Description,
		Price:       req.Price,
		Quantity:    req.Quantity,
	})
	if err != nil {
		renderServiceErr(ctx, "v1.HandleCreateItem -> h.svc.CreateItem", err)
		return
	}

	ctx.JSON(http.StatusCreated, item)
}

// HandleUpdateItem godoc
// @Summary      Edit a bar item
// @Tags         admin
// @Produce      json
// @Param        itemID   path      int  true  "Item ID"
// @Param        request  body      request.BarItemRequest true "request body"
// @Success      200      {object}  domain.BarItem
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Router       /admin/bar/items/{itemID} [put]
// @Security BearerAuth
func (h *BarHandler) HandleUpdateItem(ctx *gin.Context) {
	id, ok := paramID(ctx, "itemID")
	if !ok {
		return
	}

	var req request.BarItemRequest
	if !bindJSON(ctx, &req) {
		return
	}

	available := true
	if req.IsAvailable != nil {
		available = *req.IsAvailable
	}

	item, err := h.svc.UpdateItem(ctx.Request.Context(), domain.BarItem{
		ID:          id,
		Name:        req.Name,
		Category:    req.Category,
		Description: req.Description,
		Price:       req.Price,
		IsAvailable: available,
	})
	if err != nil {
		renderServiceErr(ctx, "v1.HandleUpdateItem -> h.svc.UpdateItem", err)
		return
	}

	ctx.JSON(http.StatusOK, item)
}

// HandleRemoveItem godoc
// @Summary      Withdraw a bar item
// @Tags         admin
// @Param        itemID  path  int  true  "Item ID"
// @Success      204
// @Failure      404  {object}  response.Err
// @Router       /admin/bar/items/{itemID} [delete]
// @Security BearerAuth
func (h *BarHandler) HandleRemoveItem(ctx *gin.Context) {
	id, ok := paramID(ctx, "itemID")
	if !ok {
		return
	}

	if err := h.svc.RemoveItem(ctx.Request.Context(), id); err != nil {
		renderServiceErr(ctx, "v1.HandleRemoveItem -> h.svc.RemoveItem", err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleSetInventory godoc
// @Summary      Set the stock count of an item
// @Tags         admin
// @Param        itemID   path  int  true  "Item ID"
// @Param        request  body  request.InventoryRequest true "request body"
// @Success      204
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Router       /admin/bar/items/{itemID}/inventory [put]
// @Security BearerAuth
func (h *BarHandler) HandleSetInventory(ctx *gin.Context) {
	id, ok := paramID(ctx, "itemID")
	if !ok {
		return
	}

	var req request.InventoryRequest
	if !bindJSON(ctx, &req) {
		return
	}

	if err := h.svc.SetInventory(ctx.Request.Context(), id, *req.Quantity); err != nil {
		renderServiceErr(ctx, "v1.HandleSetInventory -> h.svc.SetInventory", err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleListSales godoc
// @Summary      Bar transactions
// @Tags         admin
// @Produce      json
// @Param        bartender_id  query  int  false  "Only this bartender"
// @Param        limit         query  int  false  "Maximum rows (default 100)"
// @Success      200  {array}   domain.Sale
// @Router       /admin/bar/transactions [get]
// @Security BearerAuth
func (h *BarHandler) HandleListSales(ctx *gin.Context) {
	bartenderID, ok := queryUint(ctx, "bartender_id")
	if !ok {
		return
	}
	limit, ok := queryLimit(ctx, defaultSalesLimit)
	if !ok {
		return
	}

	sales, err := h.svc.Sales(ctx.Request.Context(), bartenderID, limit)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleListSales -> h.svc.Sales", err)
		return
	}

	ctx.JSON(http.StatusOK, sales)
}

// HandleListBalances godoc
// @Summary      Outstanding takings per bartender
// @Tags         admin
// @Produce      json
// @Success      200  {array}   domain.BartenderBalance
// @Router       /admin/bar/balances [get]
// @Security BearerAuth
func (h *BarHandler) HandleListBalances(ctx *gin.Context) {
	balances, err := h.svc.Balances(ctx.Request.Context())
	if err != nil {
		renderServiceErr(ctx, "v1.HandleListBalances -> h.svc.Balances", err)
		return
	}

	ctx.JSON(http.StatusOK, balances)
}

// HandleRecordPayout godoc
// @Summary      Pay a bartender out
// @Tags         admin
// @Produce      json
// @Param        request  body      request.PayoutRequest true "request body"
// @Success      201      {object}  domain.Payout
// @Failure      400      {object}  response.Err
// @Failure      422      {object}  response.Err
// @Router       /admin/bar/payouts [post]
// @Security BearerAuth
func (h *BarHandler) HandleRecordPayout(ctx *gin.Context) {
	account, ok := currentAccount(ctx)
	if !ok {
		return
	}

	var req request.PayoutRequest
	if !bindJSON(ctx, &req) {
		return
	}

	payout, err := h.svc.RecordPayout(ctx.Request.Context(), domain.Payout{
		BartenderID: req.BartenderID,
		Amount:      req.Amount,
		PaidBy:      account.ID,
		Notes:       req.Notes,
	})
	if err != nil {
		renderServiceErr(ctx, "v1.HandleRecordPayout -> h.svc.RecordPayout", err)
		return
	}

	ctx.JSON(http.StatusCreated, payout)
}

// HandleListPayouts godoc
// @Summary      Payout history
// @Tags         admin
// @Produce      json
// @Param        bartender_id  query  int  false  "Only this bartender"
// @Success      200  {array}   domain.Payout
// @Router       /admin/bar/payouts [get]
// @Security BearerAuth
func (h *BarHandler) HandleListPayouts(ctx *gin.Context) {
	bartenderID, ok := queryUint(ctx, "bartender_id")
	if !ok {
		return
	}

	payouts, err := h.svc.Payouts(ctx.Request.Context(), bartenderID)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleListPayouts -> h.svc.Payouts", err)
		return
	}

	ctx.JSON(http.StatusOK, payouts)
}

// HandleListInviteDiscounts godoc
// @Summary      Invite-count discount tiers
// @Tags         admin
// @Produce      json
// @Success      200  {array}   domain.InviteDiscount
// @Router       /admin/bar/discounts [get]
// @Security BearerAuth
func (h *BarHandler) HandleListInviteDiscounts(ctx *gin.Context) {
	tiers, err := h.svc.InviteDiscounts(ctx.Request.Context())
	if err != nil {
		renderServiceErr(ctx, "v1.HandleListInviteDiscounts -> h.svc.InviteDiscounts", err)
		return
	}

	ctx.JSON(http.StatusOK, tiers)
}

// HandleSaveInviteDiscount godoc
// @Summary      Create or replace the tier for an invite count
// @Tags         admin
// @Produce      json
// @Param        request  body      request.InviteDiscountRequest true "request body"
// @Success      200      {object}  domain.InviteDiscount
// @Failure      400      {object}  response.Err
// @Router       /admin/bar/discounts [post]
// @Security BearerAuth
func (h *BarHandler) HandleSaveInviteDiscount(ctx *gin.Context) {
	var req request.InviteDiscountRequest
	if !bindJSON(ctx, &req) {
		return
	}

	tier, err := h.svc.SaveInviteDiscount(ctx.Request.Context(), domain.InviteDiscount{
		InviteCount: req.InviteCount,
		Percent:     req.Percent,
	})
	if err != nil {
		renderServiceErr(ctx, "v1.HandleSaveInviteDiscount -> h.svc.SaveInviteDiscount", err)
		return
	}

	ctx.JSON(http.StatusOK, tier)
}

// HandleDeleteInviteDiscount godoc
// @Summary      Remove a discount tier
// @Tags         admin
// @Param        discountID  path  int  true  "Tier ID"
// @Success      204
// @Router       /admin/bar/discounts/{discountID} [delete]
// @Security BearerAuth
func (h *BarHandler) HandleDeleteInviteDiscount(ctx *gin.Context) {
	id, ok := paramID(ctx, "discountID")
	if !ok {
		return
	}

	if err := h.svc.DeleteInviteDiscount(ctx.Request.Context(), id); err != nil {
		renderServiceErr(ctx, "v1.HandleDeleteInviteDiscount -> h.svc.DeleteInviteDiscount", err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleListPresetDiscounts godoc
// @Summary      Per-user bar discounts
// @Tags         admin
// @Produce      json
// @Success      200  {array}   domain.PresetDiscount
// @Router       /admin/bar/presets [get]
// @Security BearerAuth
func (h *BarHandler) HandleListPresetDiscounts(ctx *gin.Context) {
	presets, err := h.svc.PresetDiscounts(ctx.Request.Context())
	if err != nil {
		renderServiceErr(ctx, "v1.HandleListPresetDiscounts -> h.svc.PresetDiscounts", err)
		return
	}

	ctx.JSON(http.StatusOK, presets)
}

// HandleSetPresetDiscount godoc
// @Summary      Fix the bar discount of one user
// @Tags         admin
// @Param        request  body  request.PresetDiscountRequest true "request body"
// @Success      204
// @Failure      400  {object}  response.Err
// @Router       /admin/bar/presets [post]
// @Security BearerAuth
func (h *BarHandler) HandleSetPresetDiscount(ctx *gin.Context) {
	var req request.PresetDiscountRequest
	if !bindJSON(ctx, &req) {
		return
	}

	err := h.svc.SetPresetDiscount(ctx.Request.Context(), domain.PresetDiscount{
		AccountID: req.UserID,
		Percent:   req.Percent,
	})
	if err != nil {
		renderServiceErr(ctx, "v1.HandleSetPresetDiscount -> h.svc.SetPresetDiscount", err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleDeletePresetDiscount godoc
// @Summary      Drop the fixed discount of one user
// @Tags         admin
// @Param        userID  path  int  true  "User ID"
// @Success      204
// @Router       /admin/bar/presets/{userID} [delete]
// @Security BearerAuth
func (h *BarHandler) HandleDeletePresetDiscount(ctx *gin.Context) {
	id, ok := paramID(ctx, "userID")
	if !ok {
		return
	}

	if err := h.svc.DeletePresetDiscount(ctx.Request.Context(), id); err != nil {
		renderServiceErr(ctx, "v1.HandleDeletePresetDiscount -> h.svc.DeletePresetDiscount", err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
