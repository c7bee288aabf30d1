package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/echallan/enforcement-platform/internal/core/domain"
)

const camerasCollection = "cameras"

// MongoCameraRepository stores the camera fleet. Cameras are keyed by their
// operator-assigned identifier (e.g. "CAM-03"), not by an ObjectID.
type MongoCameraRepository struct {
	coll *mongo.Collection
}

func NewCameraRepository(db *mongo.Database) *MongoCameraRepository {
	return &MongoCameraRepository{coll: db.Collection(camerasCollection)}
}

type mongoCamera struct {
	ID         string    `bson:"_id"`
	Location   string    `bson:"location"`
	IPAddress  string    `bson:"ip_address,omitempty"`
	StreamURL  string    `bson:"stream_url,omitempty"`
	Status     string    `bson:"status"`
	LastActive time.Time `bson:"last_active"`
}

func (r *MongoCameraRepository) List(ctx context.Context) ([]*domain.Camera, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list cameras: %w", err)
	}
	defer cursor.Close(ctx)

	var out []*domain.Camera
	for cursor.Next(ctx) {
		var mc mongoCamera
		if err := cursor.Decode(&mc); err != nil {
			return nil, fmt.Errorf("decode camera: %w", err)
		}
		out = append(out, cameraFromDoc(mc))
	}
	return out, cursor.Err()
}

func (r *MongoCameraRepository) FindByID(ctx context.Context, id string) (*domain.Camera, error) {
	var mc mongoCamera
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&mc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrCameraNotFound
		}
		return nil, fmt.Errorf("find camera: %w", err)
	}
	return cameraFromDoc(mc), nil
}

func (r *MongoCameraRepository) Touch(ctx context.Context, id string) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{
			"status":      domain.CameraActive,
			"last_active": time.Now().UTC(),
		}},
	)
	if err != nil {
		return fmt.Errorf("touch camera: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrCameraNotFound
	}
	return nil
}

func cameraFromDoc(mc mongoCamera) *domain.Camera {
	return &domain.Camera{
		ID:         mc.ID,
		Location:   mc.Location,
		IPAddress:  mc.IPAddress,
		StreamURL:  mc.StreamURL,
		Status:     mc.Status,
		LastActive: mc.LastActive,
	}
}
