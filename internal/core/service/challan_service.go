package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/echallan/enforcement-platform/internal/api/metrics"
	"github.com/echallan/enforcement-platform/internal/core/domain"
	"github.com/echallan/enforcement-platform/internal/core/ports"
)

// ChallanService implements challan listing and settlement.
type ChallanService struct {
	violations ports.ViolationRepository
	payments   ports.PaymentRepository
	users      ports.AuthRepository
	vehicles   ports.VehicleRepository
	logger     zerolog.Logger
}

func NewChallanService(
	violations ports.ViolationRepository,
	payments ports.PaymentRepository,
	users ports.AuthRepository,
	vehicles ports.VehicleRepository,
	logger zerolog.Logger,
) *ChallanService {
	return &ChallanService{
		violations: violations,
		payments:   payments,
		users:      users,
		vehicles:   vehicles,
		logger:     logger,
	}
}

// challanStatuses: only processed and paid violations are challans; pending
// evidence records are not shown to citizens.
var challanStatuses = []domain.ViolationStatus{domain.StatusProcessed, domain.StatusPaid}

func (s *ChallanService) ListForUser(ctx context.Context, userID string) ([]*domain.Violation, error) {
	user, err := s.users.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.violations.List(ctx, ports.ListViolationsFilter{
		VehicleNumber: user.VehicleNumber,
		Statuses:      challanStatuses,
	})
}

func (s *ChallanService) ListAll(ctx context.Context) ([]ports.ChallanDetail, error) {
	violations, err := s.violations.List(ctx, ports.ListViolationsFilter{Statuses: challanStatuses})
	if err != nil {
		return nil, err
	}

	details := make([]ports.ChallanDetail, 0, len(violations))
	for _, v := range violations {
		detail := ports.ChallanDetail{Violation: v}
		if v.VehicleNumber != "" {
			if vehicle, err := s.vehicles.FindByNumber(ctx, v.VehicleNumber); err == nil {
				detail.OwnerName = vehicle.OwnerName
			}
		}
		details = append(details, detail)
	}
	return details, nil
}

// Pay settles a challan. The violation must belong to the paying user's
// vehicle and must be in the processed state. The payment record is written
// first; the status flip carries the same transaction reference.
func (s *ChallanService) Pay(ctx context.Context, userID, violationID string) (*domain.Payment, error) {
	user, err := s.users.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	violation, err := s.violations.FindByID(ctx, violationID)
	if err != nil {
		return nil, err
	}
	if violation.VehicleNumber != user.VehicleNumber {
		return nil, domain.ErrForbidden
	}
	switch violation.Status {
	case domain.StatusPaid:
		return nil, domain.ErrChallanAlreadyPaid
	case domain.StatusProcessed:
		// payable
	default:
		return nil, domain.ErrChallanNotPayable
	}

	now := time.Now().UTC()
	payment := &domain.Payment{
		UserID:         userID,
		ViolationID:    violationID,
		Amount:         violation.FineAmount,
		TransactionRef: "TXN-" + uuid.NewString(),
		PaymentDate:    now,
		Status:         domain.PaymentSuccess,
	}

	created, err := s.payments.Create(ctx, payment)
	if err != nil {
		return nil, fmt.Errorf("create payment: %w", err)
	}

	if err := s.violations.MarkPaid(ctx, violationID, now, created.TransactionRef); err != nil {
		// The payment exists but the challan still reads processed; surface
		// the error so the citizen retries and support can reconcile by ref.
		s.logger.Error().Err(err).
			Str("violation_id", violationID).
			Str("transaction_ref", created.TransactionRef).
			Msg("payment recorded but status flip failed")
		return nil, fmt.Errorf("mark paid: %w", err)
	}

	metrics.ChallansPaidTotal.WithLabelValues(violation.ViolationType).Inc()
	metrics.RevenueCollected.Add(violation.FineAmount)

	s.logger.Info().
		Str("violation_id", violationID).
		Str("user_id", userID).
		Float64("amount", violation.FineAmount).
		Str("transaction_ref", created.TransactionRef).
		Msg("challan paid")

	return created, nil
}

func (s *ChallanService) Payments(ctx context.Context, userID string) ([]*domain.Payment, error) {
	return s.payments.ListByUser(ctx, userID)
}
