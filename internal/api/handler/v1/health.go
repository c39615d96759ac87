package v1

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pyramide/event-api/internal/api/handler/v1/response"
)

const pingTimeout = 2 * time.Second

type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	cache Pinger
}

func NewHealthHandler(cache Pinger) *HealthHandler {
	return &HealthHandler{
		cache: cache,
	}
}

// HandleHealthcheck godoc
// @Summary      Healthcheck
// @Description  The cache is optional; a failed ping is reported, not fatal.
// @Tags         health
// @Produce      json
// @Success      200  {object}  response.HealthResponse
// @Router       / [get]
func (h *HealthHandler) HandleHealthcheck(ctx *gin.Context) {
	pingCtx, cancel := context.WithTimeout(ctx.Request.Context(), pingTimeout)
	defer cancel()

	cacheStatus := "ok"
	if err := h.cache.Ping(pingCtx); err != nil {
		cacheStatus = "unavailable"
	}

	ctx.JSON(http.StatusOK, response.HealthResponse{
		Status: "ok",
		Cache:  cacheStatus,
	})
}
