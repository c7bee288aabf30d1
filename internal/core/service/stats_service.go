package service

import (
	"context"
	"fmt"

	"github.com/echallan/enforcement-platform/internal/core/domain"
	"github.com/echallan/enforcement-platform/internal/core/ports"
)

// StatsService aggregates the numbers behind the admin statistics screen.
type StatsService struct {
	violations ports.ViolationRepository
	cameras    ports.CameraRepository
	users      ports.AuthRepository
}

func NewStatsService(violations ports.ViolationRepository, cameras ports.CameraRepository, users ports.AuthRepository) *StatsService {
	return &StatsService{violations: violations, cameras: cameras, users: users}
}

func (s *StatsService) Snapshot(ctx context.Context) (*ports.Statistics, error) {
	counts, err := s.violations.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("count violations: %w", err)
	}

	revenue, err := s.violations.PaidTotal(ctx)
	if err != nil {
		return nil, fmt.Errorf("sum revenue: %w", err)
	}

	cameras, err := s.cameras.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list cameras: %w", err)
	}
	var active int64
	for _, c := range cameras {
		if c.Status == domain.CameraActive {
			active++
		}
	}

	users, err := s.users.CountUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}

	stats := &ports.Statistics{
		Pending:          counts[domain.StatusPending],
		Processed:        counts[domain.StatusProcessed],
		Paid:             counts[domain.StatusPaid],
		RevenueCollected: revenue,
		TotalCameras:     int64(len(cameras)),
		ActiveCameras:    active,
		RegisteredUsers:  users,
	}
	stats.TotalViolations = stats.Pending + stats.Processed + stats.Paid
	return stats, nil
}
