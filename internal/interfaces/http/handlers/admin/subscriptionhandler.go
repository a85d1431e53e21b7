package admin

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	subusecases "github.com/estatery/estatery/internal/application/subscription/usecases"
	"github.com/estatery/estatery/internal/shared/logger"
	"github.com/estatery/estatery/internal/shared/utils"
)

type SubscriptionHandler struct {
	listUC   listSubscriptionsUseCase
	assignUC assignSubscriptionUseCase
	logger   logger.Interface
}

func NewSubscriptionHandler(listUC listSubscriptionsUseCase, assignUC assignSubscriptionUseCase, log logger.Interface) *SubscriptionHandler {
	return &SubscriptionHandler{
		listUC:   listUC,
		assignUC: assignUC,
		logger:   log,
	}
}

// AssignSubscriptionRequest targets an agent by profile id or user id.
// expires_at and duration_days are mutually exclusive; neither leaves the
// plan open-ended.
type AssignSubscriptionRequest struct {
	AgentID      uint       `json:"agent_id" example:"4"`
	UserID       uint       `json:"user_id"`
	Plan         string     `json:"plan" binding:"required" example:"PREMIUM"`
	ExpiresAt    *time.Time `json:"expires_at"`
	DurationDays *int       `json:"duration_days" binding:"omitempty,gt=0" example:"30"`
}

// ListSubscriptions godoc
//
//	@Summary	List agent subscriptions
//	@Tags		admin
//	@Produce	json
//	@Security	Bearer
//	@Param		page		query		int	false	"Page number"	default(1)
//	@Param		page_size	query		int	false	"Page size"		default(20)
//	@Success	200			{object}	utils.APIResponse{data=utils.ListResponse{items=[]dto.SubscriptionDTO}}
//	@Router		/admin/subscriptions [get]
func (h *SubscriptionHandler) ListSubscriptions(c *gin.Context) {
	p := utils.ParsePagination(c)
	page, err := h.listUC.Execute(c.Request.Context(), p.Page, p.PageSize)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, page.Items, page.Total, page.Page, page.PageSize)
}

// AssignSubscription godoc
//
//	@Summary	Set the plan of an agent
//	@Tags		admin
//	@Accept		json
//	@Produce	json
//	@Security	Bearer
//	@Param		request	body		AssignSubscriptionRequest	true	"Assignment"
//	@Success	200		{object}	utils.APIResponse{data=dto.SubscriptionDTO}
//	@Failure	400		{object}	utils.APIResponse	"Invalid plan or expiry"
//	@Failure	404		{object}	utils.APIResponse	"Agent not found"
//	@Router		/admin/subscriptions [post]
func (h *SubscriptionHandler) AssignSubscription(c *gin.Context) {
	var req AssignSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	sub, err := h.assignUC.Execute(c.Request.Context(), subusecases.AssignSubscriptionCommand{
		AgentID:      req.AgentID,
		UserID:       req.UserID,
		Plan:         req.Plan,
		ExpiresAt:    req.ExpiresAt,
		DurationDays: req.DurationDays,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "subscription assigned", sub)
}
