package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/estatery/estatery/internal/application/payment/usecases"
	"github.com/estatery/estatery/internal/interfaces/http/middleware"
	"github.com/estatery/estatery/internal/shared/constants"
	"github.com/estatery/estatery/internal/shared/errors"
	"github.com/estatery/estatery/internal/shared/logger"
	"github.com/estatery/estatery/internal/shared/utils"
)

// maxWebhookBody bounds the webhook payload read into memory.
const maxWebhookBody = 1 << 20

type PaymentHandler struct {
	initializeUseCase initializePaymentUseCase
	verifyUseCase     verifyPaymentUseCase
	webhookUseCase    handleWebhookUseCase
	logger            logger.Interface
}

func NewPaymentHandler(
	initializeUC initializePaymentUseCase,
	verifyUC verifyPaymentUseCase,
	webhookUC handleWebhookUseCase,
	logger logger.Interface,
) *PaymentHandler {
	return &PaymentHandler{
		initializeUseCase: initializeUC,
		verifyUseCase:     verifyUC,
		webhookUseCase:    webhookUC,
		logger:            logger,
	}
}

type InitializePaymentRequest struct {
	Plan string `json:"plan" binding:"required" example:"BASIC"`
}

// Initialize godoc
//
//	@Summary		Start a Paystack checkout for a plan
//	@Description	Creates a pending payment and returns the Paystack authorization URL.
//	@Tags			payments
//	@Accept			json
//	@Produce		json
//	@Security		Bearer
//	@Param			request	body		InitializePaymentRequest						true	"Plan"
//	@Success		201		{object}	utils.APIResponse{data=dto.InitializeResultDTO}	"Checkout created"
//	@Failure		400		{object}	utils.APIResponse								"Unknown or free plan"
//	@Failure		403		{object}	utils.APIResponse								"Not an agent"
//	@Failure		500		{object}	utils.APIResponse								"Gateway unavailable"
//	@Router			/payments/paystack/initialize [post]
func (h *PaymentHandler) Initialize(c *gin.Context) {
	a, ok := middleware.Agent(c)
	if !ok {
		utils.ErrorResponseWithError(c, errors.NewForbiddenError("agent profile required"))
		return
	}

	var req InitializePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	result, err := h.initializeUseCase.Execute(c.Request.Context(), usecases.InitializePaymentCommand{
		AgentID: a.ID(),
		UserID:  a.UserID(),
		Plan:    req.Plan,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "payment initialized")
}

// Verify godoc
//
//	@Summary		Verify a Paystack payment
//	@Description	Confirms the charge with Paystack and activates the plan once. Repeated calls are idempotent.
//	@Tags			payments
//	@Produce		json
//	@Security		Bearer
//	@Param			reference	path		string									true	"Payment reference"
//	@Success		200			{object}	utils.APIResponse{data=dto.VerifyResultDTO}
//	@Failure		404			{object}	utils.APIResponse	"Unknown reference"
//	@Router			/payments/paystack/verify/{reference} [get]
func (h *PaymentHandler) Verify(c *gin.Context) {
	a, ok := middleware.Agent(c)
	if !ok {
		utils.ErrorResponseWithError(c, errors.NewForbiddenError("agent profile required"))
		return
	}

	reference := c.Param("reference")
	if reference == "" {
		utils.ErrorResponseWithError(c, errors.NewValidationError("payment reference is required"))
		return
	}

	result, err := h.verifyUseCase.Execute(c.Request.Context(), usecases.VerifyPaymentCommand{
		AgentID:   a.ID(),
		Reference: reference,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// Webhook godoc
//
//	@Summary		Paystack webhook
//	@Description	Signed with HMAC-SHA512 of the raw body in the x-paystack-signature header.
//	@Tags			payments
//	@Accept			json
//	@Produce		json
//	@Param			x-paystack-signature	header		string				true	"Hex HMAC-SHA512 signature"
//	@Success		200						{object}	utils.APIResponse	"Acknowledged"
//	@Failure		401						{object}	utils.APIResponse	"Bad signature"
//	@Router			/payments/paystack/webhook [post]
func (h *PaymentHandler) Webhook(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBody))
	if err != nil {
		h.logger.Warnw("failed to read webhook body", "error", err)
		utils.ErrorResponseWithError(c, errors.NewBadRequestError("unreadable request body"))
		return
	}

	if err := h.webhookUseCase.Execute(c.Request.Context(), usecases.HandleWebhookCommand{
		Body:      body,
		Signature: c.GetHeader(constants.HeaderPaystackSignature),
	}); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "webhook received", nil)
}
