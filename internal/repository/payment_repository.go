package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/billmind/go-bill-reminder/internal/domain"
	"github.com/billmind/go-bill-reminder/internal/shared/mongodb"
)

const paymentsCollection = "payments"

// PaymentRepository handles payment data operations
type PaymentRepository struct {
	client *mongodb.MongoClient
}

// NewPaymentRepository creates a new payment repository
func NewPaymentRepository(client *mongodb.MongoClient) *PaymentRepository {
	return &PaymentRepository{client: client}
}

// Create inserts a payment record
func (r *PaymentRepository) Create(ctx context.Context, payment *domain.Payment) error {
	if payment.ID == "" {
		payment.ID = uuid.New().String()
	}
	if payment.PaymentDate.IsZero() {
		payment.PaymentDate = time.Now()
	}
	payment.CreatedAt = time.Now()

	_, err := r.client.Collection(paymentsCollection).InsertOne(ctx, payment)
	return err
}

// FindByBillID returns payments for a bill, newest first
func (r *PaymentRepository) FindByBillID(ctx context.Context, billID string) ([]*domain.Payment, error) {
	opts := options.Find().SetSort(bson.M{"payment_date": -1})
	cursor, err := r.client.Collection(paymentsCollection).Find(ctx, bson.M{"bill_id": billID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var payments []*domain.Payment
	if err = cursor.All(ctx, &payments); err != nil {
		return nil, err
	}
	return payments, nil
}
