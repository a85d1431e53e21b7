package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/estatery/estatery/internal/application/user/usecases"
	"github.com/estatery/estatery/internal/interfaces/http/middleware"
	"github.com/estatery/estatery/internal/shared/errors"
	"github.com/estatery/estatery/internal/shared/logger"
	"github.com/estatery/estatery/internal/shared/utils"
)

type AuthHandler struct {
	registerUseCase       registerUseCase
	loginUseCase          loginUseCase
	googleLoginUseCase    googleLoginUseCase
	requestResetUseCase   requestPasswordResetUseCase
	resetPasswordUseCase  resetPasswordUseCase
	changePasswordUseCase changePasswordUseCase
	currentUserUseCase    getCurrentUserUseCase
	logger                logger.Interface
}

func NewAuthHandler(
	registerUC registerUseCase,
	loginUC loginUseCase,
	googleLoginUC googleLoginUseCase,
	requestResetUC requestPasswordResetUseCase,
	resetPasswordUC resetPasswordUseCase,
	changePasswordUC changePasswordUseCase,
	currentUserUC getCurrentUserUseCase,
	logger logger.Interface,
) *AuthHandler {
	return &AuthHandler{
		registerUseCase:       registerUC,
		loginUseCase:          loginUC,
		googleLoginUseCase:    googleLoginUC,
		requestResetUseCase:   requestResetUC,
		resetPasswordUseCase:  resetPasswordUC,
		changePasswordUseCase: changePasswordUC,
		currentUserUseCase:    currentUserUC,
		logger:                logger,
	}
}

type SignupRequest struct {
	Email    string `json:"email" binding:"required,email" example:"ada@example.com"`
	Name     string `json:"name" binding:"required,min=2,max=100" example:"Ada Obi"`
	Password string `json:"password" binding:"required,min=8,max=72"`
	Phone    string `json:"phone" binding:"omitempty,max=32" example:"+2348012345678"`
	Role     string `json:"role" binding:"omitempty,oneof=BUYER AGENT buyer agent" example:"AGENT"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role" example:"BUYER"`
}

// GoogleLoginRequest carries either the authorization code or an access token.
type GoogleLoginRequest struct {
	Code        string `json:"code"`
	AccessToken string `json:"access_token"`
	Role        string `json:"role" example:"BUYER"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type ResetPasswordRequest struct {
	Password string `json:"password" binding:"required,min=8,max=72"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password" binding:"required,min=8,max=72"`
}

// Signup godoc
//
//	@Summary		Create an account
//	@Description	Register with email and password. Role defaults to BUYER.
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		SignupRequest								true	"Signup data"
//	@Success		201		{object}	utils.APIResponse{data=dto.AuthResultDTO}	"Account created"
//	@Failure		400		{object}	utils.APIResponse							"Validation error"
//	@Failure		409		{object}	utils.APIResponse							"Email already registered"
//	@Router			/auth/signup [post]
func (h *AuthHandler) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	result, err := h.registerUseCase.Execute(c.Request.Context(), usecases.RegisterWithPasswordCommand{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		Phone:    req.Phone,
		Role:     req.Role,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "registration successful")
}

// Login godoc
//
//	@Summary		Sign in with a password
//	@Description	A role the user does not hold yet is attached on login. ADMIN is never self-assigned.
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		LoginRequest								true	"Credentials"
//	@Success		200		{object}	utils.APIResponse{data=dto.AuthResultDTO}	"Signed in"
//	@Failure		401		{object}	utils.APIResponse							"Invalid credentials"
//	@Failure		403		{object}	utils.APIResponse							"Role not allowed"
//	@Router			/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	result, err := h.loginUseCase.Execute(c.Request.Context(), usecases.LoginWithPasswordCommand{
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "login successful", result)
}

// GoogleLogin godoc
//
//	@Summary	Sign in with Google
//	@Tags		auth
//	@Accept		json
//	@Produce	json
//	@Param		request	body		GoogleLoginRequest							true	"Google credentials"
//	@Success	200		{object}	utils.APIResponse{data=dto.AuthResultDTO}	"Signed in"
//	@Failure	400		{object}	utils.APIResponse							"Missing code"
//	@Failure	401		{object}	utils.APIResponse							"Google rejected the credentials"
//	@Router		/auth/google [post]
func (h *AuthHandler) GoogleLogin(c *gin.Context) {
	var req GoogleLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}
	if req.Code == "" && req.AccessToken == "" {
		utils.ErrorResponseWithError(c, errors.NewValidationError("code or access_token is required"))
		return
	}

	result, err := h.googleLoginUseCase.Execute(c.Request.Context(), usecases.GoogleLoginCommand{
		Code:        req.Code,
		AccessToken: req.AccessToken,
		Role:        req.Role,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "login successful", result)
}

// ForgotPassword godoc
//
//	@Summary	Request a password reset email
//	@Tags		auth
//	@Accept		json
//	@Produce	json
//	@Param		request	body		ForgotPasswordRequest	true	"Account email"
//	@Success	200		{object}	utils.APIResponse		"Accepted"
//	@Router		/auth/forgot-password [post]
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	if err := h.requestResetUseCase.Execute(c.Request.Context(), usecases.RequestPasswordResetCommand{Email: req.Email}); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "if the email exists, a password reset link has been sent", nil)
}

// ResetPassword godoc
//
//	@Summary	Set a new password with a reset token
//	@Tags		auth
//	@Accept		json
//	@Produce	json
//	@Param		token	path		string					true	"Reset token"
//	@Param		request	body		ResetPasswordRequest	true	"New password"
//	@Success	200		{object}	utils.APIResponse		"Password reset"
//	@Failure	400		{object}	utils.APIResponse		"Invalid or expired token"
//	@Router		/auth/reset-password/{token} [post]
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	token := c.Param("token")
	if token == "" {
		utils.ErrorResponseWithError(c, errors.NewValidationError("reset token is required"))
		return
	}

	if err := h.resetPasswordUseCase.Execute(c.Request.Context(), usecases.ResetPasswordCommand{
		Token:       token,
		NewPassword: req.Password,
	}); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "password reset successfully", nil)
}

// ChangePassword godoc
//
//	@Summary	Change the password of the current user
//	@Tags		auth
//	@Accept		json
//	@Produce	json
//	@Security	Bearer
//	@Param		request	body		ChangePasswordRequest	true	"Passwords"
//	@Success	200		{object}	utils.APIResponse		"Password changed"
//	@Failure	400		{object}	utils.APIResponse		"Current password is wrong"
//	@Router		/auth/change-password [post]
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		utils.ErrorResponseWithError(c, errors.NewUnauthorizedError("user not authenticated"))
		return
	}

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	if err := h.changePasswordUseCase.Execute(c.Request.Context(), usecases.ChangePasswordCommand{
		UserID:          userID,
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
	}); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "password changed successfully", nil)
}

// Me godoc
//
//	@Summary	Current user with role profiles
//	@Tags		auth
//	@Produce	json
//	@Security	Bearer
//	@Success	200	{object}	utils.APIResponse{data=dto.MeDTO}	"Current user"
//	@Failure	401	{object}	utils.APIResponse					"Unauthorized"
//	@Router		/auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		utils.ErrorResponseWithError(c, errors.NewUnauthorizedError("user not authenticated"))
		return
	}

	me, err := h.currentUserUseCase.Execute(c.Request.Context(), userID)
	if err != nil {
		h.logger.Warnw("failed to load current user", "user_id", userID, "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", me)
}
