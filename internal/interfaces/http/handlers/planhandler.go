package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/estatery/estatery/internal/application/subscription/dto"
	"github.com/estatery/estatery/internal/shared/utils"
)

type listPlansUseCase interface {
	Execute() []dto.PlanDTO
}

type PlanHandler struct {
	listUseCase listPlansUseCase
}

func NewPlanHandler(listUC listPlansUseCase) *PlanHandler {
	return &PlanHandler{listUseCase: listUC}
}

// ListPlans godoc
//
//	@Summary	Plan catalogue
//	@Tags		plans
//	@Produce	json
//	@Success	200	{object}	utils.APIResponse{data=[]dto.PlanDTO}
//	@Router		/plans [get]
func (h *PlanHandler) ListPlans(c *gin.Context) {
	utils.SuccessResponse(c, http.StatusOK, "", h.listUseCase.Execute())
}
