package admin

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	propertyusecases "github.com/estatery/estatery/internal/application/property/usecases"
	"github.com/estatery/estatery/internal/interfaces/http/handlers/common"
	"github.com/estatery/estatery/internal/shared/errors"
	"github.com/estatery/estatery/internal/shared/logger"
	"github.com/estatery/estatery/internal/shared/utils"
)

type PropertyHandler struct {
	listUC   listPropertiesUseCase
	createUC createPropertyUseCase
	updateUC updatePropertyUseCase
	deleteUC deletePropertyUseCase
	reviewUC reviewPropertyUseCase
	logger   logger.Interface
}

func NewPropertyHandler(
	listUC listPropertiesUseCase,
	createUC createPropertyUseCase,
	updateUC updatePropertyUseCase,
	deleteUC deletePropertyUseCase,
	reviewUC reviewPropertyUseCase,
	log logger.Interface,
) *PropertyHandler {
	return &PropertyHandler{
		listUC:   listUC,
		createUC: createUC,
		updateUC: updateUC,
		deleteUC: deleteUC,
		reviewUC: reviewUC,
		logger:   log,
	}
}

type ReviewRequest struct {
	Action string `json:"action" binding:"required" example:"REJECT"`
	Reason string `json:"reason" binding:"omitempty,max=2000" example:"Photos are missing"`
}

// ListProperties godoc
//
//	@Summary	All listings in any status
//	@Tags		admin
//	@Produce	json
//	@Security	Bearer
//	@Param		status		query		string	false	"Status filter"
//	@Param		agent_id	query		int		false	"Agent profile filter"
//	@Param		location	query		string	false	"Substring match on location"
//	@Param		page		query		int		false	"Page number"	default(1)
//	@Param		page_size	query		int		false	"Page size"		default(20)
//	@Success	200			{object}	utils.APIResponse{data=utils.ListResponse{items=[]dto.PropertyDTO}}
//	@Router		/admin/properties [get]
func (h *PropertyHandler) ListProperties(c *gin.Context) {
	q := propertyusecases.ListPropertiesQuery{Location: c.Query("location")}

	if s := strings.TrimSpace(c.Query("status")); s != "" {
		q.Status = &s
	}
	if raw := c.Query("agent_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || id == 0 {
			utils.ErrorResponseWithError(c, errors.NewValidationError("invalid agent ID"))
			return
		}
		agentID := uint(id)
		q.AgentID = &agentID
	}

	p := utils.ParsePagination(c)
	q.Page, q.PageSize = p.Page, p.PageSize

	page, err := h.listUC.Execute(c.Request.Context(), q)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, page.Items, page.Total, page.Page, page.PageSize)
}

// CreateProperty godoc
//
//	@Summary		Create a listing as admin
//	@Description	Status defaults to APPROVED. REJECTED requires rejection_reason. Accepts JSON or multipart/form-data.
//	@Tags			admin
//	@Accept			json,mpfd
//	@Produce		json
//	@Security		Bearer
//	@Param			request	body		common.PropertyForm						true	"Listing"
//	@Success		201		{object}	utils.APIResponse{data=dto.PropertyDTO}	"Created"
//	@Failure		400		{object}	utils.APIResponse						"Validation error"
//	@Router			/admin/properties [post]
func (h *PropertyHandler) CreateProperty(c *gin.Context) {
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

	result, err := h.createUC.Execute(c.Request.Context(), propertyusecases.CreateAdminPropertyCommand{
		AgentID:         form.AgentID,
		Details:         form.Details(),
		Status:          form.Status,
		RejectionReason: form.RejectionReason,
		Images:          images,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "property created")
}

// UpdateProperty godoc
//
//	@Summary		Edit any listing
//	@Description	Any status may be assigned directly. REJECTED requires rejection_reason; other statuses clear it.
//	@Tags			admin
//	@Accept			json,mpfd
//	@Produce		json
//	@Security		Bearer
//	@Param			id		path		int					true	"Property ID"
//	@Param			request	body		common.PropertyForm	true	"Changes"
//	@Success		200		{object}	utils.APIResponse{data=dto.PropertyDTO}
//	@Failure		404		{object}	utils.APIResponse	"Not found"
//	@Router			/admin/properties/{id} [patch]
func (h *PropertyHandler) UpdateProperty(c *gin.Context) {
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

	result, err := h.updateUC.Execute(c.Request.Context(), propertyusecases.UpdateAdminPropertyCommand{
		PropertyID:      propertyID,
		Patch:           form.Patch(),
		Status:          form.Status,
		RejectionReason: form.RejectionReason,
		Images:          images,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "property updated", result)
}

// DeleteProperty godoc
//
//	@Summary	Delete any listing
//	@Tags		admin
//	@Security	Bearer
//	@Param		id	path	int	true	"Property ID"
//	@Success	204
//	@Failure	404	{object}	utils.APIResponse	"Not found"
//	@Router		/admin/properties/{id} [delete]
func (h *PropertyHandler) DeleteProperty(c *gin.Context) {
	propertyID, err := utils.ParseUintParam(c, "id", "property")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.deleteUC.Execute(c.Request.Context(), propertyusecases.DeletePropertyCommand{PropertyID: propertyID}); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}

// ReviewProperty godoc
//
//	@Summary		Approve or reject a pending listing
//	@Description	action is APPROVE or REJECT. REJECT requires a non-empty reason and leaves the status unchanged otherwise.
//	@Tags			admin
//	@Accept			json
//	@Produce		json
//	@Security		Bearer
//	@Param			id		path		int				true	"Property ID"
//	@Param			request	body		ReviewRequest	true	"Decision"
//	@Success		200		{object}	utils.APIResponse{data=dto.PropertyDTO}
//	@Failure		400		{object}	utils.APIResponse	"Reason missing"
//	@Failure		409		{object}	utils.APIResponse	"Not pending"
//	@Router			/admin/properties/{id}/review [patch]
func (h *PropertyHandler) ReviewProperty(c *gin.Context) {
	propertyID, err := utils.ParseUintParam(c, "id", "property")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	result, err := h.reviewUC.Execute(c.Request.Context(), propertyusecases.ReviewPropertyCommand{
		PropertyID: propertyID,
		Action:     req.Action,
		Reason:     req.Reason,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "property reviewed", result)
}
