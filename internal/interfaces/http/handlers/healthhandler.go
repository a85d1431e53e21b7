package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/estatery/estatery/internal/shared/biztime"
	"github.com/estatery/estatery/internal/shared/logger"
	"github.com/estatery/estatery/internal/shared/utils"
)

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type HealthHandler struct {
	db      Pinger
	version string
	logger  logger.Interface
}

func NewHealthHandler(db Pinger, version string, logger logger.Interface) *HealthHandler {
	return &HealthHandler{db: db, version: version, logger: logger}
}

type HealthResponse struct {
	Status   string    `json:"status" example:"ok"`
	Database string    `json:"database" example:"ok"`
	Version  string    `json:"version"`
	Time     time.Time `json:"time"`
}

// HealthCheck godoc
//
//	@Summary	Liveness and database reachability
//	@Tags		health
//	@Produce	json
//	@Success	200	{object}	utils.APIResponse{data=HealthResponse}
//	@Failure	503	{object}	utils.APIResponse{data=HealthResponse}
//	@Router		/health [get]
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	resp := HealthResponse{Status: "ok", Database: "ok", Version: h.version, Time: biztime.NowUTC()}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := h.db.PingContext(ctx); err != nil {
		h.logger.Errorw("database health check failed", "error", err)
		resp.Status = "degraded"
		resp.Database = "unreachable"
		c.JSON(http.StatusServiceUnavailable, utils.APIResponse{Success: false, Data: resp})
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", resp)
}
