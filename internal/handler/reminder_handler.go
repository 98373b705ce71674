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

// ReminderHandler handles reminder settings and on-demand reminder requests
type ReminderHandler struct {
	reminders *service.ReminderService
	log       *logger.Logger
}

// NewReminderHandler creates a new reminder handler
func NewReminderHandler(reminders *service.ReminderService, log *logger.Logger) *ReminderHandler {
	return &ReminderHandler{reminders: reminders, log: log}
}

// GetSettings returns the caller's reminder settings, creating defaults on
// first access
func (h *ReminderHandler) GetSettings(c *gin.Context) {
	userID := middleware.MustGetUserID(c)

	settings, err := h.reminders.GetSettings(c.Request.Context(), userID)
	if err != nil {
		c.JSON(statusForError(err), err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

// UpdateSettings applies a partial settings update
func (h *ReminderHandler) UpdateSettings(c *gin.Context) {
	userID := middleware.MustGetUserID(c)

	var req domain.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errors.NewValidationError("invalid request", err))
		return
	}

	settings, err := h.reminders.UpdateSettings(c.Request.Context(), userID, &req)
	if err != nil {
		c.JSON(statusForError(err), err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "settings updated successfully",
		"data":    settings,
	})
}

// Test sends a sample reminder through a single channel
func (h *ReminderHandler) Test(c *gin.Context) {
	userID := middleware.MustGetUserID(c)

	var req domain.TestReminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errors.NewValidationError("invalid request", err))
		return
	}

	result, err := h.reminders.SendTest(c.Request.Context(), userID, req.Type)
	if err != nil {
		c.JSON(statusForError(err), err)
		return
	}
	h.respondResult(c, result)
}

// Send dispatches a reminder for one bill through one channel
func (h *ReminderHandler) Send(c *gin.Context) {
	userID := middleware.MustGetUserID(c)

	var req domain.SendReminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errors.NewValidationError("invalid request", err))
		return
	}

	result, err := h.reminders.SendForBill(c.Request.Context(), userID, &req)
	if err != nil {
		c.JSON(statusForError(err), err)
		return
	}
	h.respondResult(c, result)
}

func (h *ReminderHandler) respondResult(c *gin.Context, result *service.TestResult) {
	if !result.Result.Success {
		c.JSON(http.StatusBadGateway, gin.H{
			"status":  "error",
			"message": "failed to send reminder via " + string(result.Channel),
			"details": result,
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "reminder sent via " + string(result.Channel),
		"details": result,
	})
}
