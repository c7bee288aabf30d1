package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/echallan/enforcement-platform/internal/core/domain"
)

const (
	usersCollection  = "users"
	adminsCollection = "admins"
)

// MongoAuthRepository stores citizens and admins in separate collections,
// matching the original split between public signups and officer accounts.
type MongoAuthRepository struct {
	users  *mongo.Collection
	admins *mongo.Collection
}

func NewAuthRepository(db *mongo.Database) *MongoAuthRepository {
	return &MongoAuthRepository{
		users:  db.Collection(usersCollection),
		admins: db.Collection(adminsCollection),
	}
}

type mongoUser struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	FirstName     string             `bson:"first_name"`
	LastName      string             `bson:"last_name"`
	Email         string             `bson:"email"`
	PasswordHash  string             `bson:"password_hash"`
	PhoneNumber   string             `bson:"phone_number"`
	VehicleNumber string             `bson:"vehicle_number"`
	Role          string             `bson:"role"`
	CreatedAt     int64              `bson:"created_at"`
	UpdatedAt     int64              `bson:"updated_at"`
}

type mongoAdmin struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	FullName     string             `bson:"full_name"`
	Username     string             `bson:"username"`
	Email        string             `bson:"email"`
	PasswordHash string             `bson:"password_hash"`
	Role         string             `bson:"role"`
	CreatedAt    int64              `bson:"created_at"`
}

func (r *MongoAuthRepository) CreateUser(ctx context.Context, user *domain.User) (*domain.User, error) {
	doc := mongoUser{
		FirstName:     user.FirstName,
		LastName:      user.LastName,
		Email:         user.Email,
		PasswordHash:  user.PasswordHash,
		PhoneNumber:   user.PhoneNumber,
		VehicleNumber: user.VehicleNumber,
		Role:          user.Role,
		CreatedAt:     user.CreatedAt.Unix(),
		UpdatedAt:     user.UpdatedAt.Unix(),
	}

	if _, err := r.users.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	// fetch back to get the assigned ID
	return r.FindUserByEmail(ctx, user.Email)
}

func (r *MongoAuthRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	var mu mongoUser
	if err := r.users.FindOne(ctx, bson.M{"email": email}).Decode(&mu); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return userFromDoc(mu), nil
}

func (r *MongoAuthRepository) FindUserByID(ctx context.Context, id string) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	var mu mongoUser
	if err := r.users.FindOne(ctx, bson.M{"_id": oid}).Decode(&mu); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return userFromDoc(mu), nil
}

func (r *MongoAuthRepository) UpdateUserContact(ctx context.Context, id, email, phoneNumber string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrUserNotFound
	}

	update := bson.M{"$set": bson.M{
		"email":        email,
		"phone_number": phoneNumber,
		"updated_at":   time.Now().UTC().Unix(),
	}}
	res, err := r.users.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return fmt.Errorf("update user contact: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *MongoAuthRepository) CountUsers(ctx context.Context) (int64, error) {
	n, err := r.users.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return n, nil
}

func (r *MongoAuthRepository) CreateAdmin(ctx context.Context, admin *domain.Admin) (*domain.Admin, error) {
	doc := mongoAdmin{
		FullName:     admin.FullName,
		Username:     admin.Username,
		Email:        admin.Email,
		PasswordHash: admin.PasswordHash,
		Role:         admin.Role,
		CreatedAt:    admin.CreatedAt.Unix(),
	}

	if _, err := r.admins.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrAdminExists
		}
		return nil, fmt.Errorf("insert admin: %w", err)
	}

	return r.FindAdminByIdentifier(ctx, admin.Username)
}

func (r *MongoAuthRepository) FindAdminByIdentifier(ctx context.Context, identifier string) (*domain.Admin, error) {
	filter := bson.M{"$or": []bson.M{
		{"username": identifier},
		{"email": identifier},
	}}

	var ma mongoAdmin
	if err := r.admins.FindOne(ctx, filter).Decode(&ma); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find admin: %w", err)
	}

	return &domain.Admin{
		ID:           ma.ID.Hex(),
		FullName:     ma.FullName,
		Username:     ma.Username,
		Email:        ma.Email,
		PasswordHash: ma.PasswordHash,
		Role:         ma.Role,
		CreatedAt:    unixToTime(ma.CreatedAt),
	}, nil
}

func userIndexModels() []mongo.IndexModel {
	return []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
	}
}

func adminIndexModels() []mongo.IndexModel {
	return []mongo.IndexModel{
		{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true)},
		// login resolves admins by username OR email
		{Keys: bson.D{{Key: "email", Value: 1}}},
	}
}

// EnsureIndexes creates the unique indexes the duplicate-key checks in
// CreateUser and CreateAdmin depend on. Without them InsertOne happily writes
// a second account for the same email or username.
func (r *MongoAuthRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	if _, err := r.users.Indexes().CreateMany(ctx, userIndexModels()); err != nil {
		return fmt.Errorf("users indexes: %w", err)
	}
	if _, err := r.admins.Indexes().CreateMany(ctx, adminIndexModels()); err != nil {
		return fmt.Errorf("admins indexes: %w", err)
	}
	return nil
}

func userFromDoc(mu mongoUser) *domain.User {
	return &domain.User{
		ID:            mu.ID.Hex(),
		FirstName:     mu.FirstName,
		LastName:      mu.LastName,
		Email:         mu.Email,
		PasswordHash:  mu.PasswordHash,
		PhoneNumber:   mu.PhoneNumber,
		VehicleNumber: mu.VehicleNumber,
		Role:          mu.Role,
		CreatedAt:     unixToTime(mu.CreatedAt),
		UpdatedAt:     unixToTime(mu.UpdatedAt),
	}
}

func unixToTime(ts int64) time.Time {
	if ts == 0 {
		return time.Time{}
	}
	return time.Unix(ts, 0).UTC()
}
