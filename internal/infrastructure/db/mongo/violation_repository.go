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
	"github.com/echallan/enforcement-platform/internal/core/ports"
)

const violationsCollection = "violations"

type MongoViolationRepository struct {
	coll *mongo.Collection
}

func NewViolationRepository(db *mongo.Database) *MongoViolationRepository {
	return &MongoViolationRepository{coll: db.Collection(violationsCollection)}
}

type mongoViolation struct {
	ID               primitive.ObjectID `bson:"_id,omitempty"`
	VehicleNumber    string             `bson:"vehicle_number,omitempty"`
	ViolationType    string             `bson:"violation_type"`
	Location         string             `bson:"location"`
	CameraID         string             `bson:"camera_id,omitempty"`
	Timestamp        time.Time          `bson:"timestamp"`
	Status           string             `bson:"status"`
	FineAmount       float64            `bson:"fine_amount"`
	ImagePath        string             `bson:"image_path"`
	VideoPath        string             `bson:"video_path,omitempty"`
	CroppedPlatePath string             `bson:"cropped_plate_path,omitempty"`
	ConfidenceScore  float64            `bson:"confidence_score"`
	PaymentDate      *time.Time         `bson:"payment_date,omitempty"`
	TransactionID    string             `bson:"transaction_id,omitempty"`
}

func (r *MongoViolationRepository) Create(ctx context.Context, v *domain.Violation) (*domain.Violation, error) {
	doc := mongoViolation{
		VehicleNumber:    v.VehicleNumber,
		ViolationType:    v.ViolationType,
		Location:         v.Location,
		CameraID:         v.CameraID,
		Timestamp:        v.Timestamp,
		Status:           string(v.Status),
		FineAmount:       v.FineAmount,
		ImagePath:        v.ImagePath,
		VideoPath:        v.VideoPath,
		CroppedPlatePath: v.CroppedPlatePath,
		ConfidenceScore:  v.ConfidenceScore,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert violation: %w", err)
	}

	created := *v
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *MongoViolationRepository) FindByID(ctx context.Context, id string) (*domain.Violation, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrViolationNotFound
	}

	var mv mongoViolation
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mv); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrViolationNotFound
		}
		return nil, fmt.Errorf("find violation: %w", err)
	}
	return violationFromDoc(mv), nil
}

func (r *MongoViolationRepository) List(ctx context.Context, filter ports.ListViolationsFilter) ([]*domain.Violation, error) {
	query := bson.M{}
	if filter.VehicleNumber != "" {
		query["vehicle_number"] = filter.VehicleNumber
	}
	if len(filter.Statuses) > 0 {
		statuses := make([]string, 0, len(filter.Statuses))
		for _, s := range filter.Statuses {
			statuses = append(statuses, string(s))
		}
		query["status"] = bson.M{"$in": statuses}
	}

	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})
	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("list violations: %w", err)
	}
	defer cursor.Close(ctx)

	var out []*domain.Violation
	for cursor.Next(ctx) {
		var mv mongoViolation
		if err := cursor.Decode(&mv); err != nil {
			return nil, fmt.Errorf("decode violation: %w", err)
		}
		out = append(out, violationFromDoc(mv))
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate violations: %w", err)
	}
	return out, nil
}

// MarkProcessed transitions pending → processed in a single conditional
// update: the status filter makes the transition atomic, so a concurrent
// worker cannot process the same record twice.
func (r *MongoViolationRepository) MarkProcessed(ctx context.Context, id string, update ports.ProcessedUpdate) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrViolationNotFound
	}

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": oid, "status": string(domain.StatusPending)},
		bson.M{"$set": bson.M{
			"status":             string(domain.StatusProcessed),
			"vehicle_number":     update.VehicleNumber,
			"violation_type":     update.ViolationType,
			"fine_amount":        update.FineAmount,
			"confidence_score":   update.ConfidenceScore,
			"cropped_plate_path": update.CroppedPlatePath,
		}},
	)
	if err != nil {
		return fmt.Errorf("mark processed: %w", err)
	}
	if res.MatchedCount == 0 {
		return r.transitionFailure(ctx, oid)
	}
	return nil
}

// MarkPaid transitions processed → paid, stamping the settlement details.
func (r *MongoViolationRepository) MarkPaid(ctx context.Context, id string, paymentDate time.Time, transactionRef string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrViolationNotFound
	}

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": oid, "status": string(domain.StatusProcessed)},
		bson.M{"$set": bson.M{
			"status":         string(domain.StatusPaid),
			"payment_date":   paymentDate,
			"transaction_id": transactionRef,
		}},
	)
	if err != nil {
		return fmt.Errorf("mark paid: %w", err)
	}
	if res.MatchedCount == 0 {
		return r.transitionFailure(ctx, oid)
	}
	return nil
}

// transitionFailure distinguishes "no such violation" from "wrong state".
func (r *MongoViolationRepository) transitionFailure(ctx context.Context, oid primitive.ObjectID) error {
	n, err := r.coll.CountDocuments(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("check violation: %w", err)
	}
	if n == 0 {
		return domain.ErrViolationNotFound
	}
	return domain.ErrInvalidTransition
}

func (r *MongoViolationRepository) CountByStatus(ctx context.Context) (map[domain.ViolationStatus]int64, error) {
	cursor, err := r.coll.Aggregate(ctx, mongo.Pipeline{
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$status"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	})
	if err != nil {
		return nil, fmt.Errorf("count by status: %w", err)
	}
	defer cursor.Close(ctx)

	counts := make(map[domain.ViolationStatus]int64)
	for cursor.Next(ctx) {
		var row struct {
			ID    string `bson:"_id"`
			Count int64  `bson:"count"`
		}
		if err := cursor.Decode(&row); err != nil {
			return nil, fmt.Errorf("decode count: %w", err)
		}
		counts[domain.ViolationStatus(row.ID)] = row.Count
	}
	return counts, cursor.Err()
}

func (r *MongoViolationRepository) PaidTotal(ctx context.Context) (float64, error) {
	cursor, err := r.coll.Aggregate(ctx, mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.D{{Key: "status", Value: string(domain.StatusPaid)}}}},
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "total", Value: bson.D{{Key: "$sum", Value: "$fine_amount"}}},
		}}},
	})
	if err != nil {
		return 0, fmt.Errorf("sum paid fines: %w", err)
	}
	defer cursor.Close(ctx)

	if cursor.Next(ctx) {
		var row struct {
			Total float64 `bson:"total"`
		}
		if err := cursor.Decode(&row); err != nil {
			return 0, fmt.Errorf("decode total: %w", err)
		}
		return row.Total, nil
	}
	return 0, cursor.Err()
}

func violationIndexModels() []mongo.IndexModel {
	return []mongo.IndexModel{
		// owner-scoped challan listing filters by plate and status
		{Keys: bson.D{{Key: "vehicle_number", Value: 1}, {Key: "status", Value: 1}}},
		// every listing sorts newest first
		{Keys: bson.D{{Key: "timestamp", Value: -1}}},
	}
}

func (r *MongoViolationRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	if _, err := r.coll.Indexes().CreateMany(ctx, violationIndexModels()); err != nil {
		return fmt.Errorf("violations indexes: %w", err)
	}
	return nil
}

func violationFromDoc(mv mongoViolation) *domain.Violation {
	return &domain.Violation{
		ID:               mv.ID.Hex(),
		VehicleNumber:    mv.VehicleNumber,
		ViolationType:    mv.ViolationType,
		Location:         mv.Location,
		CameraID:         mv.CameraID,
		Timestamp:        mv.Timestamp,
		Status:           domain.ViolationStatus(mv.Status),
		FineAmount:       mv.FineAmount,
		ImagePath:        mv.ImagePath,
		VideoPath:        mv.VideoPath,
		CroppedPlatePath: mv.CroppedPlatePath,
		ConfidenceScore:  mv.ConfidenceScore,
		PaymentDate:      mv.PaymentDate,
		TransactionID:    mv.TransactionID,
	}
}
