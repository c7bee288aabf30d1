package ports

import (
	"context"

	"github.com/echallan/enforcement-platform/internal/core/domain"
)

// CreateTicketInput carries a citizen support request. ViolationID is
// optional; when set it must reference a challan on the user's vehicle.
type CreateTicketInput struct {
	UserID      string
	Subject     string
	Description string
	ViolationID string
}

type SupportService interface {
	Create(ctx context.Context, input CreateTicketInput) (*domain.SupportTicket, error)
	ListForUser(ctx context.Context, userID string) ([]*domain.SupportTicket, error)
}

type SupportRepository interface {
	Create(ctx context.Context, t *domain.SupportTicket) (*domain.SupportTicket, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.SupportTicket, error)
}
