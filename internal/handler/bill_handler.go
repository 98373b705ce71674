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

// BillHandler handles bill CRUD requests
type BillHandler struct {
	bills *service.BillService
	log   *logger.Logger
}

// NewBillHandler creates a new bill handler
func NewBillHandler(bills *service.BillService, log *logger.Logger) *BillHandler {
	return &BillHandler{bills: bills, log: log}
}

// List returns all of the caller's bills
func (h *BillHandler) List(c *gin.Context) {
	userID := middleware.MustGetUserID(c)

	bills, err := h.bills.List(c.Request.Context(), userID)
	if err != nil {
		c.JSON(statusForError(err), err)
		return
	}
	if bills == nil {
		bills = []*domain.Bill{}
	}
	c.JSON(http.StatusOK, bills)
}

// Create adds a new bill
func (h *BillHandler) Create(c *gin.Context) {
	userID := middleware.MustGetUserID(c)

	var req domain.CreateBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errors.NewValidationError("invalid request", err))
		return
	}

	bill, err := h.bills.Create(c.Request.Context(), userID, &req)
	if err != nil {
		c.JSON(statusForError(err), err)
		return
	}
	c.JSON(http.StatusCreated, bill)
}

// Update edits an existing bill
func (h *BillHandler) Update(c *gin.Context) {
	userID := middleware.MustGetUserID(c)
	billID := c.Param("id")

	var req domain.UpdateBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errors.NewValidationError("invalid request", err))
		return
	}

	bill, err := h.bills.Update(c.Request.Context(), billID, userID, &req)
	if err != nil {
		c.JSON(statusForError(err), err)
		return
	}
	c.JSON(http.StatusOK, bill)
}

// Delete removes a bill
func (h *BillHandler) Delete(c *gin.Context) {
	userID := middleware.MustGetUserID(c)
	billID := c.Param("id")

	if err := h.bills.Delete(c.Request.Context(), billID, userID); err != nil {
		c.JSON(statusForError(err), err)
		return
	}
	c.Status(http.StatusNoContent)
}

// MarkPaid flips a bill to paid and records the payment
func (h *BillHandler) MarkPaid(c *gin.Context) {
	userID := middleware.MustGetUserID(c)
	billID := c.Param("id")

	if err := h.bills.MarkPaid(c.Request.Context(), billID, userID); err != nil {
		c.JSON(statusForError(err), err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "bill marked as paid"})
}
