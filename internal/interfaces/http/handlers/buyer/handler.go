// Package buyer serves the /buyer routes.
package buyer

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/estatery/estatery/internal/application/buyer/usecases"
	buyerdomain "github.com/estatery/estatery/internal/domain/buyer"
	"github.com/estatery/estatery/internal/interfaces/http/middleware"
	"github.com/estatery/estatery/internal/shared/errors"
	"github.com/estatery/estatery/internal/shared/logger"
	"github.com/estatery/estatery/internal/shared/utils"
)

type Handler struct {
	getProfileUC    getProfileUseCase
	updateProfileUC updateProfileUseCase
	saveUC          savePropertyUseCase
	unsaveUC        unsavePropertyUseCase
	listSavedUC     listSavedUseCase
	purchaseUC      purchaseUseCase
	listPurchasesUC listPurchasesUseCase
	contactUC       contactAgentUseCase
	logger          logger.Interface
}

func NewHandler(
	getProfileUC getProfileUseCase,
	updateProfileUC updateProfileUseCase,
	saveUC savePropertyUseCase,
	unsaveUC unsavePropertyUseCase,
	listSavedUC listSavedUseCase,
	purchaseUC purchaseUseCase,
	listPurchasesUC listPurchasesUseCase,
	contactUC contactAgentUseCase,
	logger logger.Interface,
) *Handler {
	return &Handler{
		getProfileUC:    getProfileUC,
		updateProfileUC: updateProfileUC,
		saveUC:          saveUC,
		unsaveUC:        unsaveUC,
		listSavedUC:     listSavedUC,
		purchaseUC:      purchaseUC,
		listPurchasesUC: listPurchasesUC,
		contactUC:       contactUC,
		logger:          logger,
	}
}

type UpdateProfileRequest struct {
	Phone             *string `json:"phone" binding:"omitempty,max=32"`
	PreferredLocation *string `json:"preferred_location" binding:"omitempty,max=200"`
	BudgetMin         *int64  `json:"budget_min" binding:"omitempty,gte=0"`
	BudgetMax         *int64  `json:"budget_max" binding:"omitempty,gte=0"`
}

type PropertyRequest struct {
	PropertyID uint `json:"property_id" binding:"required,gt=0" example:"12"`
}

type ContactAgentRequest struct {
	PropertyID uint   `json:"property_id" binding:"required,gt=0" example:"12"`
	Message    string `json:"message" binding:"omitempty,max=2000" example:"Is it still available?"`
	Channel    string `json:"channel" example:"WHATSAPP"`
}

func (h *Handler) currentBuyer(c *gin.Context) (*buyerdomain.Profile, bool) {
	b, ok := middleware.Buyer(c)
	if !ok {
		utils.ErrorResponseWithError(c, errors.NewForbiddenError("buyer profile required"))
		return nil, false
	}
	return b, true
}

// GetProfile godoc
//
//	@Summary	Own buyer profile
//	@Tags		buyer
//	@Produce	json
//	@Security	Bearer
//	@Success	200	{object}	utils.APIResponse{data=dto.BuyerProfileDTO}
//	@Router		/buyer/profile [get]
func (h *Handler) GetProfile(c *gin.Context) {
	b, ok := h.currentBuyer(c)
	if !ok {
		return
	}

	profile, err := h.getProfileUC.Execute(c.Request.Context(), b)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", profile)
}

// UpdateProfile godoc
//
//	@Summary	Edit own buyer profile
//	@Tags		buyer
//	@Accept		json
//	@Produce	json
//	@Security	Bearer
//	@Param		request	body		UpdateProfileRequest	true	"Changes"
//	@Success	200		{object}	utils.APIResponse{data=dto.BuyerProfileDTO}
//	@Failure	400		{object}	utils.APIResponse	"Budget range is invalid"
//	@Router		/buyer/profile [patch]
func (h *Handler) UpdateProfile(c *gin.Context) {
	b, ok := h.currentBuyer(c)
	if !ok {
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	profile, err := h.updateProfileUC.Execute(c.Request.Context(), usecases.UpdateProfileCommand{
		Profile:           b,
		Phone:             req.Phone,
		PreferredLocation: req.PreferredLocation,
		BudgetMin:         req.BudgetMin,
		BudgetMax:         req.BudgetMax,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "profile updated", profile)
}

// SaveProperty godoc
//
//	@Summary	Bookmark an approved listing
//	@Tags		buyer
//	@Accept		json
//	@Produce	json
//	@Security	Bearer
//	@Param		request	body		PropertyRequest	true	"Listing"
//	@Success	200		{object}	utils.APIResponse{data=dto.SavedPropertyDTO}
//	@Failure	404		{object}	utils.APIResponse	"Not found"
//	@Router		/buyer/save [post]
func (h *Handler) SaveProperty(c *gin.Context) {
	b, ok := h.currentBuyer(c)
	if !ok {
		return
	}

	var req PropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	saved, err := h.saveUC.Execute(c.Request.Context(), usecases.SavePropertyCommand{BuyerID: b.ID(), PropertyID: req.PropertyID})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "property saved", saved)
}

// UnsaveProperty godoc
//
//	@Summary	Remove a bookmark
//	@Tags		buyer
//	@Security	Bearer
//	@Param		propertyId	path	int	true	"Property ID"
//	@Success	204
//	@Failure	404	{object}	utils.APIResponse	"Not saved"
//	@Router		/buyer/save/{propertyId} [delete]
func (h *Handler) UnsaveProperty(c *gin.Context) {
	b, ok := h.currentBuyer(c)
	if !ok {
		return
	}

	propertyID, err := utils.ParseUintParam(c, "propertyId", "property")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.unsaveUC.Execute(c.Request.Context(), usecases.SavePropertyCommand{BuyerID: b.ID(), PropertyID: propertyID}); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}

// ListSaved godoc
//
//	@Summary	Bookmarked listings
//	@Tags		buyer
//	@Produce	json
//	@Security	Bearer
//	@Success	200	{object}	utils.APIResponse{data=[]dto.SavedPropertyDTO}
//	@Router		/buyer/saved [get]
func (h *Handler) ListSaved(c *gin.Context) {
	b, ok := h.currentBuyer(c)
	if !ok {
		return
	}

	saved, err := h.listSavedUC.Execute(c.Request.Context(), b.ID())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", saved)
}

// Buy godoc
//
//	@Summary		Purchase an approved listing
//	@Description	Marks the listing SOLD and records the purchase atomically. Concurrent buyers get exactly one winner.
//	@Tags			buyer
//	@Accept			json
//	@Produce		json
//	@Security		Bearer
//	@Param			request	body		PropertyRequest	true	"Listing"
//	@Success		201		{object}	utils.APIResponse{data=dto.PurchaseDTO}
//	@Failure		404		{object}	utils.APIResponse	"Not found"
//	@Failure		409		{object}	utils.APIResponse	"Not available for purchase"
//	@Router			/buyer/buy [post]
func (h *Handler) Buy(c *gin.Context) {
	b, ok := h.currentBuyer(c)
	if !ok {
		return
	}

	var req PropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	purchase, err := h.purchaseUC.Execute(c.Request.Context(), usecases.PurchasePropertyCommand{Buyer: b, PropertyID: req.PropertyID})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, purchase, "purchase completed")
}

// ListPurchases godoc
//
//	@Summary	Own purchases
//	@Tags		buyer
//	@Produce	json
//	@Security	Bearer
//	@Success	200	{object}	utils.APIResponse{data=[]dto.PurchaseDTO}
//	@Router		/buyer/purchases [get]
func (h *Handler) ListPurchases(c *gin.Context) {
	b, ok := h.currentBuyer(c)
	if !ok {
		return
	}

	purchases, err := h.listPurchasesUC.Execute(c.Request.Context(), b.ID())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", purchases)
}

// ContactAgent godoc
//
//	@Summary		Contact the agent of a listing
//	@Description	Repeated contact inside the dedup window returns the existing lead with created=false.
//	@Tags			buyer
//	@Accept			json
//	@Produce		json
//	@Security		Bearer
//	@Param			request	body		ContactAgentRequest	true	"Message"
//	@Success		201		{object}	utils.APIResponse{data=dto.ContactResultDTO}	"New lead"
//	@Success		200		{object}	utils.APIResponse{data=dto.ContactResultDTO}	"Existing lead"
//	@Failure		404		{object}	utils.APIResponse							"Not found"
//	@Router			/buyer/contact-agent [post]
func (h *Handler) ContactAgent(c *gin.Context) {
	b, ok := h.currentBuyer(c)
	if !ok {
		return
	}

	var req ContactAgentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	result, err := h.contactUC.Execute(c.Request.Context(), usecases.ContactAgentCommand{
		BuyerID:     b.ID(),
		BuyerUserID: b.UserID(),
		PropertyID:  req.PropertyID,
		Message:     req.Message,
		Channel:     req.Channel,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if result.Created {
		utils.CreatedResponse(c, result, "agent contacted")
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "agent already contacted recently", result)
}
