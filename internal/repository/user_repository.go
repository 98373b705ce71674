package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/billmind/go-bill-reminder/internal/domain"
	"github.com/billmind/go-bill-reminder/internal/shared/mongodb"
)

const usersCollection = "users"

// UserRepository handles user data operations
type UserRepository struct {
	client *mongodb.MongoClient
}

// NewUserRepository creates a new user repository
func NewUserRepository(client *mongodb.MongoClient) *UserRepository {
	return &UserRepository{client: client}
}

// Create inserts a new user
func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	user.CreatedAt = time.Now()

	_, err := r.client.Collection(usersCollection).InsertOne(ctx, user)
	return err
}

// FindByID finds a user by ID. Returns nil when no user exists.
func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	var user domain.User
	err := r.client.Collection(usersCollection).FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail finds a user by email. Returns nil when no user exists.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	err := r.client.Collection(usersCollection).FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindWithPhoneNumber returns all users that have a phone number on file
func (r *UserRepository) FindWithPhoneNumber(ctx context.Context) ([]*domain.User, error) {
	filter := bson.M{"phone_number": bson.M{"$exists": true, "$ne": ""}}

	cursor, err := r.client.Collection(usersCollection).Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var users []*domain.User
	if err = cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// UpdateProfile updates the mutable profile fields of a user
func (r *UserRepository) UpdateProfile(ctx context.Context, id string, name, phoneNumber *string) (*domain.User, error) {
	set := bson.M{}
	if name != nil {
		set["name"] = *name
	}
	if phoneNumber != nil {
		set["phone_number"] = *phoneNumber
	}

	if len(set) > 0 {
		_, err := r.client.Collection(usersCollection).UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
		if err != nil {
			return nil, err
		}
	}
	return r.FindByID(ctx, id)
}
