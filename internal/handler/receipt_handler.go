package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/billmind/go-bill-reminder/internal/middleware"
	"github.com/billmind/go-bill-reminder/internal/service"
	"github.com/billmind/go-bill-reminder/internal/shared/errors"
	"github.com/billmind/go-bill-reminder/internal/shared/logger"
	"github.com/billmind/go-bill-reminder/internal/storage"
)

// ReceiptHandler handles receipt upload and retrieval
type ReceiptHandler struct {
	bills    *service.BillService
	receipts *storage.ReceiptStore
	log      *logger.Logger
}

// NewReceiptHandler creates a new receipt handler
func NewReceiptHandler(bills *service.BillService, receipts *storage.ReceiptStore, log *logger.Logger) *ReceiptHandler {
	return &ReceiptHandler{
		bills:    bills,
		receipts: receipts,
		log:      log,
	}
}

// Upload stores a receipt file and attaches it to a bill
func (h *ReceiptHandler) Upload(c *gin.Context) {
	userID := middleware.MustGetUserID(c)
	billID := c.Param("id")

	fileHeader, err := c.FormFile("receipt")
	if err != nil {
		c.JSON(http.StatusBadRequest, errors.NewValidationError("no receipt file provided", err))
		return
	}

	if !storage.AllowedFile(fileHeader.Filename) {
		c.JSON(http.StatusBadRequest, errors.NewValidationError("file type not allowed", nil))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, errors.NewInternalError("could not read upload", err))
		return
	}
	defer file.Close()

	filename, err := h.receipts.Save(userID, fileHeader.Filename, file)
	if err != nil {
		h.log.Error("receipt upload failed", "user_id", userID, "bill_id", billID, "error", err)
		c.JSON(http.StatusInternalServerError, errors.NewInternalError("could not store receipt", err))
		return
	}

	if err := h.bills.AttachReceipt(c.Request.Context(), billID, userID, filename); err != nil {
		if delErr := h.receipts.Delete(filename); delErr != nil {
			h.log.Warn("could not remove orphaned receipt", "filename", filename, "error", delErr)
		}
		c.JSON(statusForError(err), err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"filename": filename,
		"url":      "/api/receipts/view/" + filename,
	})
}

// Scan stores a standalone receipt file and returns an unsaved draft bill
// for the client to complete. Extraction of name, amount and due date from
// the image is stubbed out; the draft carries placeholder values.
func (h *ReceiptHandler) Scan(c *gin.Context) {
	userID := middleware.MustGetUserID(c)

	fileHeader, err := c.FormFile("receipt")
	if err != nil {
		c.JSON(http.StatusBadRequest, errors.NewValidationError("no receipt file provided", err))
		return
	}

	if !storage.AllowedFile(fileHeader.Filename) {
		c.JSON(http.StatusBadRequest, errors.NewValidationError("file type not allowed", nil))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, errors.NewInternalError("could not read upload", err))
		return
	}
	defer file.Close()

	filename, err := h.receipts.Save(userID, fileHeader.Filename, file)
	if err != nil {
		h.log.Error("receipt scan upload failed", "user_id", userID, "error", err)
		c.JSON(http.StatusInternalServerError, errors.NewInternalError("could not store receipt", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":               nil,
		"name":             "Scanned Bill",
		"amount":           0.0,
		"due_date":         nil,
		"category":         "other",
		"frequency":        "once",
		"is_paid":          false,
		"notes":            "Receipt uploaded: " + filename,
		"receipt_filename": filename,
		"receipt_url":      "/api/receipts/view/" + filename,
	})
}

// View streams a stored receipt. Callers may only read their own files.
func (h *ReceiptHandler) View(c *gin.Context) {
	userID := middleware.MustGetUserID(c)
	owner := c.Param("user_id")
	if owner != userID {
		c.JSON(http.StatusForbidden, errors.NewUnauthorizedError("not your receipt", nil))
		return
	}

	path, err := h.receipts.Path(owner + "/" + c.Param("filename"))
	if err != nil {
		c.JSON(http.StatusNotFound, errors.NewNotFoundError("receipt not found", err))
		return
	}
	c.File(path)
}
