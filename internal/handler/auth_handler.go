package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/billmind/go-bill-reminder/internal/domain"
	"github.com/billmind/go-bill-reminder/internal/middleware"
	"github.com/billmind/go-bill-reminder/internal/service"
	"github.com/billmind/go-bill-reminder/internal/shared/errors"
	"github.com/billmind/go-bill-reminder/internal/shared/logger"
)

// AuthHandler handles registration, login and profile requests
type AuthHandler struct {
	auth *service.AuthService
	log  *logger.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(auth *service.AuthService, log *logger.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, log: log}
}

// Register creates a new account
func (h *AuthHandler) Register(c *gin.Context) {
	var req domain.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errors.NewValidationError("invalid request", err))
		return
	}

	user, token, err := h.auth.Register(c.Request.Context(), &req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"token": token,
		"user":  publicUser(user),
	})
}

// Login authenticates an existing account
func (h *AuthHandler) Login(c *gin.Context) {
	var req domain.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errors.NewValidationError("invalid request", err))
		return
	}

	user, token, err := h.auth.Login(c.Request.Context(), &req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  publicUser(user),
	})
}

// UpdateProfile updates the caller's name or phone number
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	userID := middleware.MustGetUserID(c)

	var req domain.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errors.NewValidationError("invalid request", err))
		return
	}

	user, err := h.auth.UpdateProfile(c.Request.Context(), userID, &req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, publicUser(user))
}

// Logout acknowledges logout; tokens are stateless so nothing is revoked
func (h *AuthHandler) Logout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "logged out successfully"})
}

func (h *AuthHandler) respondError(c *gin.Context, err error) {
	c.JSON(statusForError(err), err)
}

func publicUser(user *domain.User) gin.H {
	return gin.H{
		"id":           user.ID,
		"email":        user.Email,
		"name":         user.Name,
		"phone_number": user.PhoneNumber,
	}
}

// statusForError maps application error codes to HTTP statuses
func statusForError(err error) int {
	appErr, ok := err.(*errors.AppError)
	if !ok {
		return http.StatusInternalServerError
	}
	switch appErr.Code {
	case "VALIDATION_ERROR":
		return http.StatusBadRequest
	case "UNAUTHORIZED":
		return http.StatusUnauthorized
	case "NOT_FOUND":
		return http.StatusNotFound
	case "CONFLICT":
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
