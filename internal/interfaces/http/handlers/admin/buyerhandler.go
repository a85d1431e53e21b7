package admin

import (
	"github.com/gin-gonic/gin"

	"github.com/estatery/estatery/internal/shared/logger"
	"github.com/estatery/estatery/internal/shared/utils"
)

type BuyerHandler struct {
	listUC listBuyersUseCase
	logger logger.Interface
}

func NewBuyerHandler(listUC listBuyersUseCase, log logger.Interface) *BuyerHandler {
	return &BuyerHandler{listUC: listUC, logger: log}
}

// ListBuyers godoc
//
//	@Summary	List buyer profiles
//	@Tags		admin
//	@Produce	json
//	@Security	Bearer
//	@Param		page		query		int	false	"Page number"	default(1)
//	@Param		page_size	query		int	false	"Page size"		default(20)
//	@Success	200			{object}	utils.APIResponse{data=utils.ListResponse{items=[]dto.BuyerProfileDTO}}
//	@Router		/admin/buyers [get]
func (h *BuyerHandler) ListBuyers(c *gin.Context) {
	p := utils.ParsePagination(c)
	page, err := h.listUC.Execute(c.Request.Context(), p.Page, p.PageSize)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, page.Items, page.Total, page.Page, page.PageSize)
}
