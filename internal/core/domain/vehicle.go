package domain

import "time"

// Vehicle is an entry in the RTO registry. The registry is the source of
// truth for plate-to-owner resolution: citizen signup and detection
// processing both look plates up here.
type Vehicle struct {
	VehicleNumber    string    `json:"vehicle_number"`
	OwnerName        string    `json:"owner_name"`
	VehicleModel     string    `json:"vehicle_model"`
	VehicleType      string    `json:"vehicle_type"` // Car, Bike, Truck
	ContactNumber    string    `json:"contact_number"`
	RegistrationDate time.Time `json:"registration_date"`
}
