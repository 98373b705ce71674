package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/billmind/go-bill-reminder/internal/domain"
	"github.com/billmind/go-bill-reminder/internal/shared/mongodb"
)

const billsCollection = "bills"

// BillRepository handles bill data operations
type BillRepository struct {
	client *mongodb.MongoClient
}

// NewBillRepository creates a new bill repository
func NewBillRepository(client *mongodb.MongoClient) *BillRepository {
	return &BillRepository{client: client}
}

// Create inserts a new bill
func (r *BillRepository) Create(ctx context.Context, bill *domain.Bill) error {
	if bill.ID == "" {
		bill.ID = uuid.New().String()
	}
	bill.CreatedAt = time.Now()

	_, err := r.client.Collection(billsCollection).InsertOne(ctx, bill)
	return err
}

// FindByID finds a bill owned by the given user. Returns nil when no such
// bill exists.
func (r *BillRepository) FindByID(ctx context.Context, id, userID string) (*domain.Bill, error) {
	var bill domain.Bill
	filter := bson.M{"_id": id, "user_id": userID}
	err := r.client.Collection(billsCollection).FindOne(ctx, filter).Decode(&bill)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &bill, nil
}

// FindByUserID returns all bills for a user, newest due date first
func (r *BillRepository) FindByUserID(ctx context.Context, userID string) ([]*domain.Bill, error) {
	opts := options.Find().SetSort(bson.M{"due_date": 1})
	cursor, err := r.client.Collection(billsCollection).Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var bills []*domain.Bill
	if err = cursor.All(ctx, &bills); err != nil {
		return nil, err
	}
	return bills, nil
}

// FindUnpaidByUserID returns all unpaid bills for a user
func (r *BillRepository) FindUnpaidByUserID(ctx context.Context, userID string) ([]*domain.Bill, error) {
	filter := bson.M{"user_id": userID, "is_paid": false}
	cursor, err := r.client.Collection(billsCollection).Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var bills []*domain.Bill
	if err = cursor.All(ctx, &bills); err != nil {
		return nil, err
	}
	return bills, nil
}

// FindUnpaidOverdue returns all unpaid bills whose due date-time is strictly
// before asOf
func (r *BillRepository) FindUnpaidOverdue(ctx context.Context, asOf time.Time) ([]*domain.Bill, error) {
	filter := bson.M{"is_paid": false, "due_date": bson.M{"$lt": asOf}}
	cursor, err := r.client.Collection(billsCollection).Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var bills []*domain.Bill
	if err = cursor.All(ctx, &bills); err != nil {
		return nil, err
	}
	return bills, nil
}

// Update replaces the stored bill document
func (r *BillRepository) Update(ctx context.Context, bill *domain.Bill) error {
	filter := bson.M{"_id": bill.ID, "user_id": bill.UserID}
	_, err := r.client.Collection(billsCollection).ReplaceOne(ctx, filter, bill)
	return err
}

// MarkPaid flips is_paid on a bill owned by the given user. Reports whether
// a bill was matched.
func (r *BillRepository) MarkPaid(ctx context.Context, id, userID string) (bool, error) {
	filter := bson.M{"_id": id, "user_id": userID}
	update := bson.M{"$set": bson.M{"is_paid": true}}

	res, err := r.client.Collection(billsCollection).UpdateOne(ctx, filter, update)
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}

// SetReceiptFilename attaches an uploaded receipt to a bill
func (r *BillRepository) SetReceiptFilename(ctx context.Context, id, userID, filename string) error {
	filter := bson.M{"_id": id, "user_id": userID}
	update := bson.M{"$set": bson.M{"receipt_filename": filename}}

	_, err := r.client.Collection(billsCollection).UpdateOne(ctx, filter, update)
	return err
}

// Delete removes a bill owned by the given user. Reports whether a bill was
// deleted.
func (r *BillRepository) Delete(ctx context.Context, id, userID string) (bool, error) {
	res, err := r.client.Collection(billsCollection).DeleteOne(ctx, bson.M{"_id": id, "user_id": userID})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}
