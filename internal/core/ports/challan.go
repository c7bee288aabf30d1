package ports

import (
	"context"

	"github.com/echallan/enforcement-platform/internal/core/domain"
)

// ChallanDetail is a processed violation joined with registry owner data,
// shown on the admin challans screen.
type ChallanDetail struct {
	Violation *domain.Violation
	OwnerName string
}

// ChallanService covers everything the dashboard calls a "challan": a
// violation that has been processed into a fine.
type ChallanService interface {
	// ListForUser returns the challans against the user's registered vehicle.
	ListForUser(ctx context.Context, userID string) ([]*domain.Violation, error)
	// ListAll returns all challans with owner info for the admin view.
	ListAll(ctx context.Context) ([]ChallanDetail, error)
	// Pay settles a challan: ownership and state are checked, a payment
	// record is written, and the violation transitions to paid.
	Pay(ctx context.Context, userID, violationID string) (*domain.Payment, error)
	// Payments returns the user's payment history, newest first.
	Payments(ctx context.Context, userID string) ([]*domain.Payment, error)
}

// PaymentRepository defines persistence for payments.
type PaymentRepository interface {
	Create(ctx context.Context, p *domain.Payment) (*domain.Payment, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.Payment, error)
}
