package ports

import (
	"context"
	"time"

	"github.com/echallan/enforcement-platform/internal/core/domain"
)

// ListViolationsFilter carries query parameters for listing violations.
type ListViolationsFilter struct {
	VehicleNumber string                   // empty = no filter (admin view)
	Statuses      []domain.ViolationStatus // empty = all statuses
}

// ViolationRepository defines persistence operations for violations.
type ViolationRepository interface {
	Create(ctx context.Context, v *domain.Violation) (*domain.Violation, error)
	FindByID(ctx context.Context, id string) (*domain.Violation, error)
	// List returns violations matching filter, newest first.
	List(ctx context.Context, filter ListViolationsFilter) ([]*domain.Violation, error)
	// MarkProcessed atomically transitions pending → processed, attaching the
	// resolved plate, type and fine. Fails with ErrInvalidTransition when the
	// violation is no longer pending.
	MarkProcessed(ctx context.Context, id string, update ProcessedUpdate) error
	// MarkPaid atomically transitions processed → paid.
	MarkPaid(ctx context.Context, id string, paymentDate time.Time, transactionRef string) error
	CountByStatus(ctx context.Context) (map[domain.ViolationStatus]int64, error)
	// PaidTotal returns the sum of fines across paid violations.
	PaidTotal(ctx context.Context) (float64, error)
}

// ProcessedUpdate is the data attached when a pending violation is resolved.
type ProcessedUpdate struct {
	VehicleNumber    string
	ViolationType    string
	FineAmount       float64
	ConfidenceScore  float64
	CroppedPlatePath string
}

// EvidenceUploadInput carries a raw evidence upload from an edge device.
type EvidenceUploadInput struct {
	ImagePath string
	CameraID  string
	Location  string
}

// ViolationService defines use-case operations on violations.
type ViolationService interface {
	// RecordUpload creates a pending violation for a freshly stored evidence image.
	RecordUpload(ctx context.Context, input EvidenceUploadInput) (*domain.Violation, error)
	// ListAll returns every violation for the admin dashboard, newest first.
	ListAll(ctx context.Context) ([]*domain.Violation, error)
}

// DetectionService consumes recognized-plate events from the dispatcher.
type DetectionService interface {
	Process(ctx context.Context, d domain.Detection) error
}
