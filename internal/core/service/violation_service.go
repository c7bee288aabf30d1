package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/echallan/enforcement-platform/internal/core/domain"
	"github.com/echallan/enforcement-platform/internal/core/ports"
)

// ViolationService implements the admin violations feed and raw evidence
// ingestion. Uploaded evidence enters as a pending record; the detection
// pipeline or a reviewing officer promotes it later.
type ViolationService struct {
	repo   ports.ViolationRepository
	logger zerolog.Logger
}

func NewViolationService(repo ports.ViolationRepository, logger zerolog.Logger) *ViolationService {
	return &ViolationService{repo: repo, logger: logger}
}

func (s *ViolationService) RecordUpload(ctx context.Context, input ports.EvidenceUploadInput) (*domain.Violation, error) {
	location := input.Location
	if location == "" {
		location = "Unknown location"
	}

	violation := &domain.Violation{
		ViolationType: "Processing...",
		Location:      location,
		CameraID:      input.CameraID,
		Timestamp:     time.Now().UTC(),
		Status:        domain.StatusPending,
		ImagePath:     input.ImagePath,
	}

	created, err := s.repo.Create(ctx, violation)
	if err != nil {
		s.logger.Error().Err(err).Str("image_path", input.ImagePath).Msg("failed to record evidence upload")
		return nil, err
	}

	s.logger.Info().Str("violation_id", created.ID).Str("image_path", input.ImagePath).Msg("evidence uploaded")
	return created, nil
}

func (s *ViolationService) ListAll(ctx context.Context) ([]*domain.Violation, error) {
	return s.repo.List(ctx, ports.ListViolationsFilter{})
}
