// Package agent serves the /agent routes. Every handler expects the agent
// profile resolved by the profile middleware.
package agent

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	agentusecases "github.com/estatery/estatery/internal/application/agent/usecases"
	propertyusecases "github.com/estatery/estatery/internal/application/property/usecases"
	vo "github.com/estatery/estatery/internal/domain/property/valueobjects"
	"github.com/estatery/estatery/internal/interfaces/http/handlers/common"
	"github.com/estatery/estatery/internal/interfaces/http/middleware"
	"github.com/estatery/estatery/internal/shared/errors"
	"github.com/estatery/estatery/internal/shared/logger"
	"github.com/estatery/estatery/internal/shared/utils"
)

type Handler struct {
	dashboardUC      dashboardUseCase
	getProfileUC     getProfileUseCase
	updateProfileUC  updateProfileUseCase
	listPropertiesUC listPropertiesUseCase
	createUC         createPropertyUseCase
	updateUC         updatePropertyUseCase
	deleteUC         deletePropertyUseCase
	markSoldUC       markSoldUseCase
	logger           logger.Interface
}

func NewHandler(
	dashboardUC dashboardUseCase,
	getProfileUC getProfileUseCase,
	updateProfileUC updateProfileUseCase,
	listPropertiesUC listPropertiesUseCase,
	createUC createPropertyUseCase,
	updateUC updatePropertyUseCase,
	deleteUC deletePropertyUseCase,
	markSoldUC markSoldUseCase,
	logger logger.Interface,
) *Handler {
	return &Handler{
		dashboardUC:      dashboardUC,
		getProfileUC:     getProfileUC,
		updateProfileUC:  updateProfileUC,
		listPropertiesUC: listPropertiesUC,
		createUC:         createUC,
		updateUC:         updateUC,
		deleteUC:         deleteUC,
		markSoldUC:       markSoldUC,
		logger:           logger,
	}
}

type UpdateProfileRequest struct {
	AgencyName *string `json:"agency_name" binding:"omitempty,max=200"`
	Bio        *string `json:"bio" binding:"omitempty,max=5000"`
	Phone      *string `json:"phone" binding:"omitempty,max=32"`
	Whatsapp   *string `json:"whatsapp" binding:"omitempty,max=32"`
}

// Dashboard godoc
//
//	@Summary	Agent dashboard
//	@Tags		agent
//	@Produce	json
//	@Security	Bearer
//	@Success	200	{object}	utils.APIResponse{data=dto.DashboardDTO}
//	@Failure	403	{object}	utils.APIResponse	"Not an agent"
//	@Router		/agent/dashboard [get]
func (h *Handler) Dashboard(c *gin.Context) {
	a, ok := middleware.Agent(c)
	if !ok {
		utils.ErrorResponseWithError(c, errors.NewForbiddenError("agent profile required"))
		return
	}

	resp, err := h.dashboardUC.Execute(c.Request.Context(), a)
	if err != nil {
		h.logger.Errorw("failed to get agent dashboard", "agent_id", a.ID(), "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", resp)
}

// ListProperties godoc
//
//	@Summary	Own listings
//	@Tags		agent
//	@Produce	json
//	@Security	Bearer
//	@Param		status		query		string	false	"Status filter"
//	@Param		page		query		int		false	"Page number"	default(1)
//	@Param		page_size	query		int		false	"Page size"		default(20)
//	@Success	200			{object}	utils.APIResponse{data=utils.ListResponse{items=[]dto.PropertyDTO}}
//	@Router		/agent/properties [get]
func (h *Handler) ListProperties(c *gin.Context) {
	var status *string
	if s := strings.TrimSpace(c.Query("status")); s != "" {
		status = &s
	}
	h.listOwn(c, status)
}

// ListDrafts godoc
//
//	@Summary	Own draft listings
//	@Tags		agent
//	@Produce	json
//	@Security	Bearer
//	@Success	200	{object}	utils.APIResponse{data=utils.ListResponse{items=[]dto.PropertyDTO}}
//	@Router		/agent/properties/drafts [get]
func (h *Handler) ListDrafts(c *gin.Context) {
	draft := vo.StatusDraft.String()
	h.listOwn(c, &draft)
}

func (h *Handler) listOwn(c *gin.Context, status *string) {
	a, ok := middleware.Agent(c)
	if !ok {
		utils.ErrorResponseWithError(c, errors.NewForbiddenError("agent profile required"))
		return
	}

	agentID := a.ID()
	p := utils.ParsePagination(c)
	page, err := h.listPropertiesUC.Execute(c.Request.Context(), propertyusecases.ListPropertiesQuery{
		AgentID:  &agentID,
		Status:   status,
		Location: c.Query("location"),
		Page:     p.Page,
		PageSize: p.PageSize,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, page.Items, page.Total, page.Page, page.PageSize)
}

// CreateProperty godoc
//
//	@Summary		Create a listing
//	@Description	Accepts JSON or multipart/form-data with repeated "images" files. Created as PENDING unless draft is set.
//	@Tags			agent
//	@Accept			json,mpfd
//	@Produce		json
//	@Security		Bearer
//	@Param			request	body		common.PropertyForm						true	"Listing"
//	@Success		201		{object}	utils.APIResponse{data=dto.PropertyDTO}	"Created"
//	@Failure		400		{object}	utils.APIResponse						"Validation error"
//	@Failure		402		{object}	utils.APIResponse						"Subscription required"
//	@Failure		403		{object}	utils.APIResponse						"Suspended"
//	@Router			/agent/properties [post]
func (h *Handler) CreateProperty(c *gin.Context) {
	a, ok := middleware.Agent(c)
	if !ok {
		utils.ErrorResponseWithError(c, errors.NewForbiddenError("agent profile required"))
		return
	}

	form, err := common.BindPropertyForm(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	images, err := common.Uploads(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	draft := form.Draft
	if form.Status != nil && strings.EqualFold(*form.Status, vo.StatusDraft.String()) {
		draft = true
	}

	result, err := h.createUC.Execute(c.Request.Context(), propertyusecases.CreateAgentPropertyCommand{
		AgentID: a.ID(),
		Details: form.Details(),
		Draft:   draft,
		Images:  images,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "property created")
}

// UpdateProperty godoc
//
//	@Summary		Edit an own listing
//	@Description	Partial update. status=PENDING submits a draft or rejected listing for review. Sold listings cannot be edited.
//	@Tags			agent
//	@Accept			json,mpfd
//	@Produce		json
//	@Security		Bearer
//	@Param			id		path		int										true	"Property ID"
//	@Param			request	body		common.PropertyForm						true	"Changes"
//	@Success		200		{object}	utils.APIResponse{data=dto.PropertyDTO}
//	@Failure		404		{object}	utils.APIResponse	"Not found"
//	@Failure		409		{object}	utils.APIResponse	"Listing is sold"
//	@Router			/agent/properties/{id} [patch]
func (h *Handler) UpdateProperty(c *gin.Context) {
	a, ok := middleware.Agent(c)
	if !ok {
		utils.ErrorResponseWithError(c, errors.NewForbiddenError("agent profile required"))
		return
	}

	propertyID, err := utils.ParseUintParam(c, "id", "property")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	form, err := common.BindPropertyForm(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	images, err := common.Uploads(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.updateUC.Execute(c.Request.Context(), propertyusecases.UpdateAgentPropertyCommand{
		AgentID:    a.ID(),
		PropertyID: propertyID,
		Patch:      form.Patch(),
		Status:     form.Status,
		Images:     images,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "property updated", result)
}

// DeleteProperty godoc
//
//	@Summary	Delete an own listing
//	@Tags		agent
//	@Security	Bearer
//	@Param		id	path	int	true	"Property ID"
//	@Success	204
//	@Failure	404	{object}	utils.APIResponse	"Not found"
//	@Router		/agent/properties/{id} [delete]
func (h *Handler) DeleteProperty(c *gin.Context) {
	a, ok := middleware.Agent(c)
	if !ok {
		utils.ErrorResponseWithError(c, errors.NewForbiddenError("agent profile required"))
		return
	}

	propertyID, err := utils.ParseUintParam(c, "id", "property")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	agentID := a.ID()
	if err := h.deleteUC.Execute(c.Request.Context(), propertyusecases.DeletePropertyCommand{
		PropertyID: propertyID,
		AgentID:    &agentID,
	}); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}

// MarkSold godoc
//
//	@Summary	Mark an own approved listing as sold
//	@Tags		agent
//	@Produce	json
//	@Security	Bearer
//	@Param		id	path		int	true	"Property ID"
//	@Success	200	{object}	utils.APIResponse{data=dto.PropertyDTO}
//	@Failure	409	{object}	utils.APIResponse	"Not approved or already sold"
//	@Router		/agent/properties/{id}/sold [patch]
func (h *Handler) MarkSold(c *gin.Context) {
	a, ok := middleware.Agent(c)
	if !ok {
		utils.ErrorResponseWithError(c, errors.NewForbiddenError("agent profile required"))
		return
	}

	propertyID, err := utils.ParseUintParam(c, "id", "property")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.markSoldUC.Execute(c.Request.Context(), propertyusecases.MarkSoldCommand{
		AgentID:    a.ID(),
		PropertyID: propertyID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "property marked as sold", result)
}

// GetProfile godoc
//
//	@Summary	Own agent profile
//	@Tags		agent
//	@Produce	json
//	@Security	Bearer
//	@Success	200	{object}	utils.APIResponse{data=dto.AgentProfileDTO}
//	@Router		/agent/profile [get]
func (h *Handler) GetProfile(c *gin.Context) {
	a, ok := middleware.Agent(c)
	if !ok {
		utils.ErrorResponseWithError(c, errors.NewForbiddenError("agent profile required"))
		return
	}

	profile, err := h.getProfileUC.Execute(c.Request.Context(), a.ID())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", profile)
}

// UpdateProfile godoc
//
//	@Summary	Edit own agent profile
//	@Tags		agent
//	@Accept		json
//	@Produce	json
//	@Security	Bearer
//	@Param		request	body		UpdateProfileRequest	true	"Changes"
//	@Success	200		{object}	utils.APIResponse{data=dto.AgentProfileDTO}
//	@Router		/agent/profile [patch]
func (h *Handler) UpdateProfile(c *gin.Context) {
	a, ok := middleware.Agent(c)
	if !ok {
		utils.ErrorResponseWithError(c, errors.NewForbiddenError("agent profile required"))
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	profile, err := h.updateProfileUC.Execute(c.Request.Context(), agentusecases.UpdateProfileCommand{
		AgentID:    a.ID(),
		AgencyName: req.AgencyName,
		Bio:        req.Bio,
		Phone:      req.Phone,
		Whatsapp:   req.Whatsapp,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "profile updated", profile)
}
