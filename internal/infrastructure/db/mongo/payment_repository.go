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

const paymentsCollection = "payments"

type MongoPaymentRepository struct {
	coll *mongo.Collection
}

func NewPaymentRepository(db *mongo.Database) *MongoPaymentRepository {
	return &MongoPaymentRepository{coll: db.Collection(paymentsCollection)}
}

type mongoPayment struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	UserID         string             `bson:"user_id"`
	ViolationID    string             `bson:"violation_id"`
	Amount         float64            `bson:"amount"`
	TransactionRef string             `bson:"transaction_ref"`
	PaymentDate    time.Time          `bson:"payment_date"`
	Status         string             `bson:"status"`
}

func (r *MongoPaymentRepository) Create(ctx context.Context, p *domain.Payment) (*domain.Payment, error) {
	doc := mongoPayment{
		UserID:         p.UserID,
		ViolationID:    p.ViolationID,
		Amount:         p.Amount,
		TransactionRef: p.TransactionRef,
		PaymentDate:    p.PaymentDate,
		Status:         p.Status,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert payment: %w", err)
	}

	created := *p
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func paymentIndexModels() []mongo.IndexModel {
	return []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "payment_date", Value: -1}}},
		// transaction refs cross-reference violations and must never collide
		{Keys: bson.D{{Key: "transaction_ref", Value: 1}}, Options: options.Index().SetUnique(true)},
	}
}

func (r *MongoPaymentRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	if _, err := r.coll.Indexes().CreateMany(ctx, paymentIndexModels()); err != nil {
		return fmt.Errorf("payments indexes: %w", err)
	}
	return nil
}

func (r *MongoPaymentRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Payment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "payment_date", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer cursor.Close(ctx)

	var out []*domain.Payment
	for cursor.Next(ctx) {
		var mp mongoPayment
		if err := cursor.Decode(&mp); err != nil {
			return nil, fmt.Errorf("decode payment: %w", err)
		}
		out = append(out, &domain.Payment{
			ID:             mp.ID.Hex(),
			UserID:         mp.UserID,
			ViolationID:    mp.ViolationID,
			Amount:         mp.Amount,
			TransactionRef: mp.TransactionRef,
			PaymentDate:    mp.PaymentDate,
			Status:         mp.Status,
		})
	}
	return out, cursor.Err()
}
