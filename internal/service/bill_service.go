package service

import (
	"context"
	"time"

	"github.com/billmind/go-bill-reminder/internal/domain"
	"github.com/billmind/go-bill-reminder/internal/repository"
	"github.com/billmind/go-bill-reminder/internal/shared/errors"
	"github.com/billmind/go-bill-reminder/internal/shared/logger"
	"github.com/billmind/go-bill-reminder/internal/storage"
)

// BillService handles bill CRUD and the mark-paid transition
type BillService struct {
	bills    *repository.BillRepository
	payments *repository.PaymentRepository
	receipts *storage.ReceiptStore
	log      *logger.Logger
}

// NewBillService creates a new bill service
func NewBillService(bills *repository.BillRepository, payments *repository.PaymentRepository, receipts *storage.ReceiptStore, log *logger.Logger) *BillService {
	return &BillService{
		bills:    bills,
		payments: payments,
		receipts: receipts,
		log:      log,
	}
}

// List returns all bills for a user
func (s *BillService) List(ctx context.Context, userID string) ([]*domain.Bill, error) {
	bills, err := s.bills.FindByUserID(ctx, userID)
	if err != nil {
		return nil, errors.NewInternalError("could not load bills", err)
	}
	return bills, nil
}

// Get returns one bill owned by the user
func (s *BillService) Get(ctx context.Context, billID, userID string) (*domain.Bill, error) {
	bill, err := s.bills.FindByID(ctx, billID, userID)
	if err != nil {
		return nil, errors.NewInternalError("could not load bill", err)
	}
	if bill == nil {
		return nil, errors.NewNotFoundError("bill not found", nil)
	}
	return bill, nil
}

// Create validates and stores a new bill
func (s *BillService) Create(ctx context.Context, userID string, req *domain.CreateBillRequest) (*domain.Bill, error) {
	dueDate, err := parseDueDate(req.DueDate)
	if err != nil {
		return nil, errors.NewValidationError("invalid due_date", err)
	}

	bill := &domain.Bill{
		UserID:    userID,
		Name:      req.Name,
		Amount:    req.Amount,
		DueDate:   dueDate,
		Category:  req.Category,
		Frequency: req.Frequency,
		Notes:     req.Notes,

		EnableWhatsApp:          true,
		EnableCall:              false,
		EnableSMS:               false,
		EnableLocalNotification: true,
	}
	applyPreferences(bill, req.ReminderPreferences)

	if err := s.bills.Create(ctx, bill); err != nil {
		return nil, errors.NewInternalError("could not create bill", err)
	}
	return bill, nil
}

// Update applies a partial edit to a bill
func (s *BillService) Update(ctx context.Context, billID, userID string, req *domain.UpdateBillRequest) (*domain.Bill, error) {
	bill, err := s.Get(ctx, billID, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		bill.Name = *req.Name
	}
	if req.Amount != nil {
		bill.Amount = *req.Amount
	}
	if req.DueDate != nil {
		dueDate, err := parseDueDate(*req.DueDate)
		if err != nil {
			return nil, errors.NewValidationError("invalid due_date", err)
		}
		bill.DueDate = dueDate
	}
	if req.Category != nil {
		bill.Category = *req.Category
	}
	if req.Frequency != nil {
		bill.Frequency = *req.Frequency
	}
	if req.Notes != nil {
		bill.Notes = *req.Notes
	}
	applyPreferences(bill, req.ReminderPreferences)

	if err := s.bills.Update(ctx, bill); err != nil {
		return nil, errors.NewInternalError("could not update bill", err)
	}
	return bill, nil
}

// Delete removes a bill and its stored receipt, if any
func (s *BillService) Delete(ctx context.Context, billID, userID string) error {
	bill, err := s.Get(ctx, billID, userID)
	if err != nil {
		return err
	}

	deleted, err := s.bills.Delete(ctx, billID, userID)
	if err != nil {
		return errors.NewInternalError("could not delete bill", err)
	}
	if !deleted {
		return errors.NewNotFoundError("bill not found", nil)
	}

	if bill.ReceiptFilename != "" {
		if err := s.receipts.Delete(bill.ReceiptFilename); err != nil {
			s.log.Warn("could not delete receipt file", "bill_id", billID, "error", err)
		}
	}
	return nil
}

// MarkPaid flips is_paid and records the payment. A paid bill is
// permanently excluded from reminder consideration.
func (s *BillService) MarkPaid(ctx context.Context, billID, userID string) error {
	bill, err := s.Get(ctx, billID, userID)
	if err != nil {
		return err
	}

	matched, err := s.bills.MarkPaid(ctx, billID, userID)
	if err != nil {
		return errors.NewInternalError("could not mark bill paid", err)
	}
	if !matched {
		return errors.NewNotFoundError("bill not found", nil)
	}

	payment := &domain.Payment{
		BillID:        bill.ID,
		Amount:        bill.Amount,
		PaymentDate:   time.Now(),
		PaymentMethod: "manual",
	}
	if err := s.payments.Create(ctx, payment); err != nil {
		return errors.NewInternalError("could not record payment", err)
	}
	return nil
}

// AttachReceipt links an uploaded receipt file to a bill
func (s *BillService) AttachReceipt(ctx context.Context, billID, userID, filename string) error {
	bill, err := s.Get(ctx, billID, userID)
	if err != nil {
		return err
	}

	if bill.ReceiptFilename != "" {
		if err := s.receipts.Delete(bill.ReceiptFilename); err != nil {
			s.log.Warn("could not delete previous receipt", "bill_id", billID, "error", err)
		}
	}

	if err := s.bills.SetReceiptFilename(ctx, billID, userID, filename); err != nil {
		return errors.NewInternalError("could not attach receipt", err)
	}
	return nil
}

func applyPreferences(bill *domain.Bill, prefs *domain.BillReminderPreferences) {
	if prefs == nil {
		return
	}
	if prefs.EnableWhatsApp != nil {
		bill.EnableWhatsApp = *prefs.EnableWhatsApp
	}
	if prefs.EnableCall != nil {
		bill.EnableCall = *prefs.EnableCall
	}
	if prefs.EnableSMS != nil {
		bill.EnableSMS = *prefs.EnableSMS
	}
	if prefs.EnableLocalNotification != nil {
		bill.EnableLocalNotification = *prefs.EnableLocalNotification
	}
}

// parseDueDate accepts RFC 3339 timestamps or bare dates
func parseDueDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.ParseInLocation("2006-01-02", value, time.Local)
}
