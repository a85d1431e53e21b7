// Package admin provides HTTP handlers for administrative operations.
package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/estatery/estatery/internal/shared/logger"
	"github.com/estatery/estatery/internal/shared/utils"
)

// DashboardHandler handles the admin dashboard endpoint.
type DashboardHandler struct {
	dashboardUC dashboardUseCase
	logger      logger.Interface
}

func NewDashboardHandler(dashboardUC dashboardUseCase, log logger.Interface) *DashboardHandler {
	return &DashboardHandler{
		dashboardUC: dashboardUC,
		logger:      log,
	}
}

// GetDashboard godoc
//
//	@Summary	Platform totals
//	@Tags		admin
//	@Produce	json
//	@Security	Bearer
//	@Success	200	{object}	utils.APIResponse{data=dto.AdminDashboardResponse}
//	@Failure	403	{object}	utils.APIResponse	"Not an admin"
//	@Router		/admin/dashboard [get]
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	resp, err := h.dashboardUC.Execute(c.Request.Context())
	if err != nil {
		h.logger.Errorw("failed to get admin dashboard", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Admin dashboard retrieved successfully", resp)
}
