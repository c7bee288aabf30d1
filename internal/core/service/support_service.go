package service

import (
	"context"
	"time"

	"github.com/echallan/enforcement-platform/internal/core/domain"
	"github.com/echallan/enforcement-platform/internal/core/ports"
)

// SupportService implements citizen support tickets.
type SupportService struct {
	repo       ports.SupportRepository
	violations ports.ViolationRepository
	users      ports.AuthRepository
}

func NewSupportService(repo ports.SupportRepository, violations ports.ViolationRepository, users ports.AuthRepository) *SupportService {
	return &SupportService{repo: repo, violations: violations, users: users}
}

func (s *SupportService) Create(ctx context.Context, input ports.CreateTicketInput) (*domain.SupportTicket, error) {
	if input.Subject == "" || input.Description == "" {
		return nil, domain.ErrTicketInvalid
	}

	// A referenced challan must exist and belong to the requesting user.
	if input.ViolationID != "" {
		user, err := s.users.FindUserByID(ctx, input.UserID)
		if err != nil {
			return nil, err
		}
		violation, err := s.violations.FindByID(ctx, input.ViolationID)
		if err != nil {
			return nil, err
		}
		if violation.VehicleNumber != user.VehicleNumber {
			return nil, domain.ErrForbidden
		}
	}

	ticket := &domain.SupportTicket{
		UserID:      input.UserID,
		Subject:     input.Subject,
		Description: input.Description,
		ViolationID: input.ViolationID,
		Status:      domain.TicketOpen,
		CreatedAt:   time.Now().UTC(),
	}
	return s.repo.Create(ctx, ticket)
}

func (s *SupportService) ListForUser(ctx context.Context, userID string) ([]*domain.SupportTicket, error) {
	return s.repo.ListByUser(ctx, userID)
}
