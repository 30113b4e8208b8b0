// internal/handlers/auth.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bazarco/backend/internal/i18n"
	"github.com/bazarco/backend/internal/models"
	"github.com/bazarco/backend/internal/services"
	"github.com/bazarco/backend/internal/utils"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// bindJSON decodes and validates a request body, writing the 400 itself.
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		utils.BadRequestResponse(c, utils.T(c, i18n.KeyValidationInvalid, "input"))
		return false
	}
	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return false
	}
	return true
}

// POST /auth/signup
func (h *AuthHandler) Signup(c *gin.Context) {
	var req services.SignupRequest
	if !bindJSON(c, &req) {
		return
	}

	authResponse, err := h.authService.Signup(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.CreatedResponse(c, utils.T(c, i18n.KeyAuthSignupSuccess), gin.H{
		"token": authResponse.Token,
		"user":  authResponse.User,
	})
}

// POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req services.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	authResponse, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.OKResponse(c, utils.T(c, i18n.KeyAuthLoginSuccess), gin.H{
		"token": authResponse.Token,
		"user":  authResponse.User,
	})
}

// POST /auth/dev-login
func (h *AuthHandler) DevLogin(c *gin.Context) {
	var req services.DevLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Secret == "" {
		utils.BadRequestResponse(c, utils.T(c, i18n.KeyValidationInvalid, "secret"))
		return
	}

	authResponse, err := h.authService.DevLogin(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			utils.ErrorResponse(c, http.StatusNotFound, utils.T(c, i18n.KeyAuthDevUserMissing))
			return
		}
		respondError(c, err)
		return
	}

	utils.OKResponse(c, utils.T(c, i18n.KeyAuthLoginSuccess), gin.H{
		"token": authResponse.Token,
		"user":  authResponse.User,
	})
}

// POST /auth/forgot-password
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req services.ForgotPasswordRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.authService.ForgotPassword(c.Request.Context(), &req); err != nil {
		respondError(c, err)
		return
	}

	utils.OKResponse(c, utils.T(c, i18n.KeyAuthResetRequested), nil)
}

// POST /auth/reset-password
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req services.ResetPasswordRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.authService.ResetPassword(c.Request.Context(), &req); err != nil {
		respondError(c, err)
		return
	}

	utils.OKResponse(c, utils.T(c, i18n.KeyAuthResetSuccess), nil)
}

// GET /auth/me
func (h *AuthHandler) GetProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	user, err := h.authService.Profile(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.OKResponse(c, utils.T(c, i18n.KeyAuthProfile), gin.H{"user": user})
}

// PATCH /auth/profile
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req services.UpdateProfileRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.authService.UpdateProfile(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.OKResponse(c, utils.T(c, i18n.KeyAuthProfileUpdated), gin.H{"user": user})
}
