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

const ticketsCollection = "support_tickets"

type MongoSupportRepository struct {
	coll *mongo.Collection
}

func NewSupportRepository(db *mongo.Database) *MongoSupportRepository {
	return &MongoSupportRepository{coll: db.Collection(ticketsCollection)}
}

type mongoTicket struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	UserID      string             `bson:"user_id"`
	Subject     string             `bson:"subject"`
	Description string             `bson:"description"`
	ViolationID string             `bson:"violation_id,omitempty"`
	Status      string             `bson:"status"`
	CreatedAt   time.Time          `bson:"created_at"`
}

func (r *MongoSupportRepository) Create(ctx context.Context, t *domain.SupportTicket) (*domain.SupportTicket, error) {
	doc := mongoTicket{
		UserID:      t.UserID,
		Subject:     t.Subject,
		Description: t.Description,
		ViolationID: t.ViolationID,
		Status:      string(t.Status),
		CreatedAt:   t.CreatedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert ticket: %w", err)
	}

	created := *t
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *MongoSupportRepository) ListByUser(ctx context.Context, userID string) ([]*domain.SupportTicket, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list tickets: %w", err)
	}
	defer cursor.Close(ctx)

	var out []*domain.SupportTicket
	for cursor.Next(ctx) {
		var mt mongoTicket
		if err := cursor.Decode(&mt); err != nil {
			return nil, fmt.Errorf("decode ticket: %w", err)
		}
		out = append(out, &domain.SupportTicket{
			ID:          mt.ID.Hex(),
			UserID:      mt.UserID,
			Subject:     mt.Subject,
			Description: mt.Description,
			ViolationID: mt.ViolationID,
			Status:      domain.TicketStatus(mt.Status),
			CreatedAt:   mt.CreatedAt,
		})
	}
	return out, cursor.Err()
}
