package v1

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pyramide/event-api/internal/api/handler/v1/request"
	"github.com/pyramide/event-api/internal/api/handler/v1/response"
	"github.com/pyramide/event-api/internal/domain"
)

type IncidentService interface {
	Report(ctx context.Context, incident domain.Incident) (domain.Incident, error)
	List(ctx context.Context, status domain.IncidentStatus, limit int) ([]domain.Incident, error)
	Get(ctx context.Context, id uint) (domain.Incident, error)
	Assign(ctx context.Context, id, accountID uint) (domain.Incident, error)
	Unassign(ctx context.Context, id, accountID uint) (domain.Incident, error)
	SetPeopleNeeded(ctx context.Context, id uint, n int) (domain.Incident, error)
	Resolve(ctx context.Context, id uint) (domain.Incident, error)
	Close(ctx context.Context, id uint) (domain.Incident, error)
}

type IncidentHandler struct {
	svc IncidentService
}

func NewIncidentHandler(svc IncidentService) *IncidentHandler {
	return &IncidentHandler{
		svc: svc,
	}
}

// HandleReportIncident godoc
// @Summary      Report a security incident
// @Tags         incidents
// @Produce      json
// @Param        request  body      request.ReportIncidentRequest true "request body"
// @Success      201      {object}  domain.Incident
// @Failure      400      {object}  response.Err
// @Router       /incidents [post]
// @Security BearerAuth
func (h *IncidentHandler) HandleReportIncident(ctx *gin.Context) {
	account, ok := currentAccount(ctx)
	if !ok {
		return
	}

	var req request.ReportIncidentRequest
	if !bindJSON(ctx, &req) {
		return
	}

	incident, err := h.svc.Report(ctx.Request.Context(), domain.Incident{
		Type:         req.Type,
		Description:  req.Description,
		Location:     req.Location,
		ReportedBy:   account.ID,
		PeopleNeeded: req.PeopleNeeded,
	})
	if err != nil {
		renderServiceErr(ctx, "v1.HandleReportIncident -> h.svc.Report", err)
		return
	}

	ctx.JSON(http.StatusCreated, incident)
}

// HandleListIncidents godoc
// @Summary      Incidents, newest first
// @Tags         incidents
// @Produce      json
// @Param        status  query  string  false  "open, resolved or closed"
// @Param        limit   query  int     false  "Maximum rows"
// @Success      200  {array}   domain.Incident
// @Failure      400  {object}  response.Err
// @Router       /incidents [get]
// @Security BearerAuth
func (h *IncidentHandler) HandleListIncidents(ctx *gin.Context) {
	status := domain.IncidentStatus(ctx.Query("status"))
	switch status {
	case "", domain.IncidentOpen, domain.IncidentResolved, domain.IncidentClosed:
	default:
		response.RenderErr(ctx, response.FromError(domain.ErrInvalid.WithDetail("status", string(status))))
		return
	}

	limit, ok := queryLimit(ctx, 0)
	if !ok {
		return
	}

	incidents, err := h.svc.List(ctx.Request.Context(), status, limit)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleListIncidents -> h.svc.List", err)
		return
	}

	ctx.JSON(http.StatusOK, incidents)
}

// HandleGetIncident godoc
// @Summary      One incident
// @Tags         incidents
// @Produce      json
// @Param        incidentID  path  int  true  "Incident ID"
// @Success      200  {object}  domain.Incident
// @Failure      404  {object}  response.Err
// @Router       /incidents/{incidentID} [get]
// @Security BearerAuth
func (h *IncidentHandler) HandleGetIncident(ctx *gin.Context) {
	id, ok := paramID(ctx, "incidentID")
	if !ok {
		return
	}

	incident, err := h.svc.Get(ctx.Request.Context(), id)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleGetIncident -> h.svc.Get", err)
		return
	}

	ctx.JSON(http.StatusOK, incident)
}

// HandleAssignIncident godoc
// @Summary      Take an incident
// @Tags         incidents
// @Produce      json
// @Param        incidentID  path  int  true  "Incident ID"
// @Success      200  {object}  domain.Incident
// @Failure      409  {object}  response.Err
// @Router       /incidents/{incidentID}/assign [post]
// @Security BearerAuth
func (h *IncidentHandler) HandleAssignIncident(ctx *gin.Context) {
	h.withMember(ctx, "v1.HandleAssignIncident -> h.svc.Assign", h.svc.Assign)
}

// HandleUnassignIncident godoc
// @Summary      Leave an incident
// @Tags         incidents
// @Produce      json
// @Param        incidentID  path  int  true  "Incident ID"
// @Success      200  {object}  domain.Incident
// @Failure      409  {object}  response.Err
// @Router       /incidents/{incidentID}/unassign [post]
// @Security BearerAuth
func (h *IncidentHandler) HandleUnassignIncident(ctx *gin.Context) {
	h.withMember(ctx, "v1.HandleUnassignIncident -> h.svc.Unassign", h.svc.Unassign)
}

func (h *IncidentHandler) withMember(ctx *gin.Context, where string, op func(context.Context, uint, uint) (domain.Incident, error)) {
	account, ok := currentAccount(ctx)
	if !ok {
		return
	}
	id, ok := paramID(ctx, "incidentID")
	if !ok {
		return
	}

	incident, err := op(ctx.Request.Context(), id, account.ID)
	if err != nil {
		renderServiceErr(ctx, where, err)
		return
	}

	ctx.JSON(http.StatusOK, incident)
}

// HandleSetPeopleNeeded godoc
// @Summary      Change how many people an incident needs
// @Tags         incidents
// @Produce      json
// @Param        incidentID  path      int  true  "Incident ID"
// @Param        request     body      request.PeopleNeededRequest true "request body"
// @Success      200         {object}  domain.Incident
// @Failure      400         {object}  response.Err
// @Router       /incidents/{incidentID}/people-needed [put]
// @Security BearerAuth
func (h *IncidentHandler) HandleSetPeopleNeeded(ctx *gin.Context) {
	id, ok := paramID(ctx, "incidentID")
	if !ok {
		return
	}

	var req request.PeopleNeededRequest
	if !bindJSON(ctx, &req) {
		return
	}

	incident, err := h.svc.SetPeopleNeeded(ctx.Request.Context(), id, req.PeopleNeeded)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleSetPeopleNeeded -> h.svc.SetPeopleNeeded", err)
		return
	}

	ctx.JSON(http.StatusOK, incident)
}

// HandleResolveIncident godoc
// @Summary      Resolve an incident
// @Description  Only allowed once enough people are assigned.
// @Tags         incidents
// @Produce      json
// @Param        incidentID  path  int  true  "Incident ID"
// @Success      200  {object}  domain.Incident
// @Failure      409  {object}  response.Err
// @Router       /incidents/{incidentID}/resolve [post]
// @Security BearerAuth
func (h *IncidentHandler) HandleResolveIncident(ctx *gin.Context) {
	id, ok := paramID(ctx, "incidentID")
	if !ok {
		return
	}

	incident, err := h.svc.Resolve(ctx.Request.Context(), id)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleResolveIncident -> h.svc.Resolve", err)
		return
	}

	ctx.JSON(http.StatusOK, incident)
}

// HandleCloseIncident godoc
// @Summary      Close an incident
// @Tags         incidents
// @Produce      json
// @Param        incidentID  path  int  true  "Incident ID"
// @Success      200  {object}  domain.Incident
// @Router       /incidents/{incidentID}/close [post]
// @Security BearerAuth
func (h *IncidentHandler) HandleCloseIncident(ctx *gin.Context) {
	id, ok := paramID(ctx, "incidentID")
	if !ok {
		return
	}

	incident, err := h.svc.Close(ctx.Request.Context(), id)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleCloseIncident -> h.svc.Close", err)
		return
	}

	ctx.JSON(http.StatusOK, incident)
}
