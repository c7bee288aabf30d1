package domain

import (
	"errors"
	"time"
)

// ViolationStatus represents the lifecycle state of a violation.
type ViolationStatus string

const (
	// StatusPending: evidence captured, plate not yet resolved to a challan.
	StatusPending ViolationStatus = "pending"
	// StatusProcessed: plate resolved and fine assessed — this is a challan.
	StatusProcessed ViolationStatus = "processed"
	// StatusPaid: the challan has been settled by the vehicle owner.
	StatusPaid ViolationStatus = "paid"
)

// validTransitions defines the allowed state machine transitions.
var validTransitions = map[ViolationStatus][]ViolationStatus{
	StatusPending:   {StatusProcessed},
	StatusProcessed: {StatusPaid},
}

var ErrInvalidTransition = errors.New("invalid status transition")
var ErrViolationNotFound = errors.New("violation not found")
var ErrChallanAlreadyPaid = errors.New("challan already paid")
var ErrChallanNotPayable = errors.New("challan is not payable yet")
var ErrForbidden = errors.New("access forbidden")

// CanTransitionTo reports whether a transition from the current status to next is valid.
func (s ViolationStatus) CanTransitionTo(next ViolationStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// fineSchedule maps violation types to their fine amounts in rupees.
// Unknown types fall back to DefaultFine.
var fineSchedule = map[string]float64{
	"No Helmet":          500,
	"Red Light Jump":     1000,
	"Overspeeding":       2000,
	"Wrong Side Driving": 1500,
	"No Seatbelt":        1000,
	"Wrong Parking":      500,
}

// DefaultFine applies to violation types missing from the schedule.
const DefaultFine float64 = 500

// FineFor returns the fine amount for a violation type.
func FineFor(violationType string) float64 {
	if amount, ok := fineSchedule[violationType]; ok {
		return amount
	}
	return DefaultFine
}

// Violation is the core aggregate. A violation enters as a pending evidence
// record, becomes a challan once the plate is resolved and the fine assessed,
// and is closed when the owner pays.
type Violation struct {
	ID               string          `json:"id" bson:"_id,omitempty"`
	VehicleNumber    string          `json:"vehicle_number,omitempty" bson:"vehicle_number,omitempty"`
	ViolationType    string          `json:"violation_type" bson:"violation_type"`
	Location         string          `json:"location" bson:"location"`
	CameraID         string          `json:"camera_id,omitempty" bson:"camera_id,omitempty"`
	Timestamp        time.Time       `json:"timestamp" bson:"timestamp"`
	Status           ViolationStatus `json:"status" bson:"status"`
	FineAmount       float64         `json:"fine_amount" bson:"fine_amount"`
	ImagePath        string          `json:"image_path" bson:"image_path"`
	VideoPath        string          `json:"video_path,omitempty" bson:"video_path,omitempty"`
	CroppedPlatePath string          `json:"cropped_plate_path,omitempty" bson:"cropped_plate_path,omitempty"`
	ConfidenceScore  float64         `json:"confidence_score" bson:"confidence_score"`
	PaymentDate      *time.Time      `json:"payment_date,omitempty" bson:"payment_date,omitempty"`
	TransactionID    string          `json:"transaction_id,omitempty" bson:"transaction_id,omitempty"`
}
