package admin

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	agentusecases "github.com/estatery/estatery/internal/application/agent/usecases"
	"github.com/estatery/estatery/internal/shared/errors"
	"github.com/estatery/estatery/internal/shared/logger"
	"github.com/estatery/estatery/internal/shared/utils"
)

type AgentHandler struct {
	listUC     listAgentsUseCase
	moderateUC moderateAgentUseCase
	logger     logger.Interface
}

func NewAgentHandler(listUC listAgentsUseCase, moderateUC moderateAgentUseCase, log logger.Interface) *AgentHandler {
	return &AgentHandler{
		listUC:     listUC,
		moderateUC: moderateUC,
		logger:     log,
	}
}

// SuspendRequest defaults to suspending when the body is empty.
type SuspendRequest struct {
	Suspended *bool `json:"suspended" example:"true"`
}

// VerifyRequest defaults to verifying when the body is empty.
type VerifyRequest struct {
	Verified *bool `json:"verified" example:"true"`
}

// ListAgents godoc
//
//	@Summary	List agent profiles
//	@Tags		admin
//	@Produce	json
//	@Security	Bearer
//	@Param		suspended	query		bool	false	"Filter by suspension"
//	@Param		verified	query		bool	false	"Filter by verification"
//	@Param		page		query		int		false	"Page number"	default(1)
//	@Param		page_size	query		int		false	"Page size"		default(20)
//	@Success	200			{object}	utils.APIResponse{data=utils.ListResponse{items=[]dto.AgentProfileDTO}}
//	@Router		/admin/agents [get]
func (h *AgentHandler) ListAgents(c *gin.Context) {
	suspended, err := queryBool(c, "suspended")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	verified, err := queryBool(c, "verified")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	p := utils.ParsePagination(c)
	page, err := h.listUC.Execute(c.Request.Context(), agentusecases.ListAgentsQuery{
		Suspended: suspended,
		Verified:  verified,
		Page:      p.Page,
		PageSize:  p.PageSize,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, page.Items, page.Total, page.Page, page.PageSize)
}

// Suspend godoc
//
//	@Summary		Suspend or reinstate an agent
//	@Description	Suspended agents cannot write and their listings leave the public catalogue.
//	@Tags			admin
//	@Accept			json
//	@Produce		json
//	@Security		Bearer
//	@Param			id		path		int				true	"Agent profile ID"
//	@Param			request	body		SuspendRequest	false	"Suspension flag"
//	@Success		200		{object}	utils.APIResponse{data=dto.AgentProfileDTO}
//	@Failure		404		{object}	utils.APIResponse	"Not found"
//	@Router			/admin/agents/{id}/suspend [patch]
func (h *AgentHandler) Suspend(c *gin.Context) {
	agentID, err := utils.ParseUintParam(c, "id", "agent")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req SuspendRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	suspended := true
	if req.Suspended != nil {
		suspended = *req.Suspended
	}

	h.moderate(c, agentusecases.ModerateAgentCommand{AgentID: agentID, Suspended: &suspended})
}

// Verify godoc
//
//	@Summary	Verify or unverify an agent
//	@Tags		admin
//	@Accept		json
//	@Produce	json
//	@Security	Bearer
//	@Param		id		path		int				true	"Agent profile ID"
//	@Param		request	body		VerifyRequest	false	"Verification flag"
//	@Success	200		{object}	utils.APIResponse{data=dto.AgentProfileDTO}
//	@Failure	404		{object}	utils.APIResponse	"Not found"
//	@Router		/admin/agents/{id}/verify [patch]
func (h *AgentHandler) Verify(c *gin.Context) {
	agentID, err := utils.ParseUintParam(c, "id", "agent")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req VerifyRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	verified := true
	if req.Verified != nil {
		verified = *req.Verified
	}

	h.moderate(c, agentusecases.ModerateAgentCommand{AgentID: agentID, Verified: &verified})
}

func (h *AgentHandler) moderate(c *gin.Context, cmd agentusecases.ModerateAgentCommand) {
	profile, err := h.moderateUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "agent updated", profile)
}

func bindOptionalJSON(c *gin.Context, target any) error {
	if c.Request.ContentLength == 0 {
		return nil
	}
	if err := c.ShouldBindJSON(target); err != nil {
		return utils.BindingError(err)
	}
	return nil
}

func queryBool(c *gin.Context, key string) (*bool, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, errors.NewValidationError(key + " must be a boolean")
	}
	return &v, nil
}
