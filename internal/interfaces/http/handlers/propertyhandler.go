package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/estatery/estatery/internal/application/property/usecases"
	"github.com/estatery/estatery/internal/shared/errors"
	"github.com/estatery/estatery/internal/shared/logger"
	"github.com/estatery/estatery/internal/shared/utils"
)

// PropertyHandler serves the public catalogue.
type PropertyHandler struct {
	listUseCase listPublicPropertiesUseCase
	getUseCase  getPublicPropertyUseCase
	logger      logger.Interface
}

func NewPropertyHandler(listUC listPublicPropertiesUseCase, getUC getPublicPropertyUseCase, logger logger.Interface) *PropertyHandler {
	return &PropertyHandler{
		listUseCase: listUC,
		getUseCase:  getUC,
		logger:      logger,
	}
}

// ListProperties godoc
//
//	@Summary		Browse approved listings
//	@Description	Approved listings of non-suspended agents, ordered by the owner's plan priority then newest first.
//	@Tags			properties
//	@Produce		json
//	@Param			location			query		string	false	"Substring match on location"
//	@Param			category			query		string	false	"Category"
//	@Param			transaction_type	query		string	false	"SALE, RENT or LEASE"
//	@Param			furnishing			query		string	false	"FURNISHED, SEMI_FURNISHED or UNFURNISHED"
//	@Param			min_price			query		int		false	"Minimum price in kobo"
//	@Param			max_price			query		int		false	"Maximum price in kobo"
//	@Param			min_bedrooms		query		int		false	"Minimum bedrooms"
//	@Param			page				query		int		false	"Page number"	default(1)
//	@Param			page_size			query		int		false	"Page size"		default(20)
//	@Success		200					{object}	utils.APIResponse{data=utils.ListResponse{items=[]dto.PublicPropertyDTO}}
//	@Failure		400					{object}	utils.APIResponse	"Invalid filter"
//	@Router			/properties [get]
func (h *PropertyHandler) ListProperties(c *gin.Context) {
	p := utils.ParsePagination(c)

	q := usecases.ListPublicPropertiesQuery{
		Location:        c.Query("location"),
		Category:        c.Query("category"),
		TransactionType: c.Query("transaction_type"),
		Furnishing:      c.Query("furnishing"),
		MinPrice:        utils.QueryInt64(c, "min_price"),
		MaxPrice:        utils.QueryInt64(c, "max_price"),
		Page:            p.Page,
		PageSize:        p.PageSize,
	}
	if raw := c.Query("min_bedrooms"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			utils.ErrorResponseWithError(c, errors.NewValidationError("min_bedrooms must be a non-negative integer"))
			return
		}
		q.MinBedrooms = &n
	}

	page, err := h.listUseCase.Execute(c.Request.Context(), q)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, page.Items, page.Total, page.Page, page.PageSize)
}

// GetProperty godoc
//
//	@Summary		Listing detail
//	@Description	Only approved listings are visible. The description is rendered as sanitized HTML.
//	@Tags			properties
//	@Produce		json
//	@Param			id	path		int	true	"Property ID"
//	@Success		200	{object}	utils.APIResponse{data=dto.PropertyDetailDTO}
//	@Failure		404	{object}	utils.APIResponse	"Not found"
//	@Router			/properties/{id} [get]
func (h *PropertyHandler) GetProperty(c *gin.Context) {
	id, err := utils.ParseUintParam(c, "id", "property")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	detail, err := h.getUseCase.Execute(c.Request.Context(), id)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", detail)
}
