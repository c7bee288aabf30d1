package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/echallan/enforcement-platform/internal/core/domain"
)

const vehiclesCollection = "vehicles"

// MongoVehicleRepository reads the RTO registry. The registry is seeded by
// the transport authority; the platform only ever looks plates up.
type MongoVehicleRepository struct {
	coll *mongo.Collection
}

func NewVehicleRepository(db *mongo.Database) *MongoVehicleRepository {
	return &MongoVehicleRepository{coll: db.Collection(vehiclesCollection)}
}

type mongoVehicle struct {
	VehicleNumber    string    `bson:"vehicle_number"`
	OwnerName        string    `bson:"owner_name"`
	VehicleModel     string    `bson:"vehicle_model"`
	VehicleType      string    `bson:"vehicle_type"`
	ContactNumber    string    `bson:"contact_number"`
	RegistrationDate time.Time `bson:"registration_date"`
}

func (r *MongoVehicleRepository) FindByNumber(ctx context.Context, vehicleNumber string) (*domain.Vehicle, error) {
	var mv mongoVehicle
	if err := r.coll.FindOne(ctx, bson.M{"vehicle_number": vehicleNumber}).Decode(&mv); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrVehicleNotFound
		}
		return nil, fmt.Errorf("find vehicle: %w", err)
	}

	return &domain.Vehicle{
		VehicleNumber:    mv.VehicleNumber,
		OwnerName:        mv.OwnerName,
		VehicleModel:     mv.VehicleModel,
		VehicleType:      mv.VehicleType,
		ContactNumber:    mv.ContactNumber,
		RegistrationDate: mv.RegistrationDate,
	}, nil
}
