package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/echallan/enforcement-platform/internal/api/metrics"
	"github.com/echallan/enforcement-platform/internal/core/domain"
	"github.com/echallan/enforcement-platform/internal/core/ports"
)

// DedupChecker abstracts the idempotency store (Redis). Edge devices retry
// aggressively on flaky links, so the same detection can arrive many times.
type DedupChecker interface {
	IsDuplicate(ctx context.Context, cameraID, plate, violationType string, ts time.Time) (bool, error)
	Mark(ctx context.Context, cameraID, plate, violationType string, ts time.Time) error
}

type detectionService struct {
	violations ports.ViolationRepository
	vehicles   ports.VehicleRepository
	cameras    ports.CameraRepository
	dedup      DedupChecker
	log        zerolog.Logger
}

// NewDetectionService returns a DetectionService implementation.
func NewDetectionService(
	violations ports.ViolationRepository,
	vehicles ports.VehicleRepository,
	cameras ports.CameraRepository,
	dedup DedupChecker,
	log zerolog.Logger,
) ports.DetectionService {
	return &detectionService{
		violations: violations,
		vehicles:   vehicles,
		cameras:    cameras,
		dedup:      dedup,
		log:        log,
	}
}

// Process validates, deduplicates, and persists a single detection: the
// plate is looked up in the registry, the fine assessed from the schedule,
// and a processed violation (a challan) is recorded.
func (s *detectionService) Process(ctx context.Context, d domain.Detection) error {
	start := time.Now()
	plate := strings.ToUpper(strings.TrimSpace(d.PlateNumber))

	// 1. Idempotency check — silently skip duplicates.
	isDup, err := s.dedup.IsDuplicate(ctx, d.CameraID, plate, d.ViolationType, d.Timestamp)
	if err != nil {
		s.log.Warn().Err(err).Str("plate", plate).Msg("dedup check failed, processing anyway")
		metrics.DetectionsDedupTotal.WithLabelValues("error").Inc()
	} else if isDup {
		s.log.Debug().Str("plate", plate).Str("camera_id", d.CameraID).Msg("duplicate detection skipped")
		metrics.DetectionsDedupTotal.WithLabelValues("hit").Inc()
		return nil
	} else {
		metrics.DetectionsDedupTotal.WithLabelValues("miss").Inc()
	}

	// 2. Resolve the plate in the RTO registry. Unknown plates still produce
	// a pending record so an officer can review the evidence manually.
	vehicle, err := s.vehicles.FindByNumber(ctx, plate)
	if err != nil && !errors.Is(err, domain.ErrVehicleNotFound) {
		metrics.DetectionsErrorsTotal.WithLabelValues("registry_lookup").Inc()
		return fmt.Errorf("process detection: %w", err)
	}

	// 3. Mark as seen before writing (prevents duplicate challans on retry).
	if markErr := s.dedup.Mark(ctx, d.CameraID, plate, d.ViolationType, d.Timestamp); markErr != nil {
		s.log.Warn().Err(markErr).Str("plate", plate).Msg("failed to set dedup key")
	}

	// 4. Record the violation.
	violation := &domain.Violation{
		ViolationType:   d.ViolationType,
		Location:        d.Location,
		CameraID:        d.CameraID,
		Timestamp:       d.Timestamp,
		Status:          domain.StatusPending,
		ImagePath:       d.ImagePath,
		VideoPath:       d.VideoPath,
		ConfidenceScore: d.ConfidenceScore,
	}
	created, err := s.violations.Create(ctx, violation)
	if err != nil {
		metrics.DetectionsErrorsTotal.WithLabelValues("insert_failed").Inc()
		return fmt.Errorf("process detection: %w", err)
	}

	// 5. Known vehicle: assess the fine and promote to a challan.
	if vehicle != nil {
		update := ports.ProcessedUpdate{
			VehicleNumber:   vehicle.VehicleNumber,
			ViolationType:   d.ViolationType,
			FineAmount:      domain.FineFor(d.ViolationType),
			ConfidenceScore: d.ConfidenceScore,
		}
		if err := s.violations.MarkProcessed(ctx, created.ID, update); err != nil {
			metrics.DetectionsErrorsTotal.WithLabelValues("update_failed").Inc()
			return fmt.Errorf("process detection: mark processed: %w", err)
		}
	}

	// 6. Camera heartbeat (non-fatal on failure).
	if d.CameraID != "" {
		if err := s.cameras.Touch(ctx, d.CameraID); err != nil {
			s.log.Warn().Err(err).Str("camera_id", d.CameraID).Msg("failed to update camera heartbeat")
		}
	}

	metrics.DetectionsProcessedTotal.WithLabelValues(d.ViolationType, d.CameraID).Inc()
	metrics.DetectionProcessingDuration.WithLabelValues(d.ViolationType).Observe(time.Since(start).Seconds())

	s.log.Info().
		Str("plate", plate).
		Str("violation_type", d.ViolationType).
		Str("camera_id", d.CameraID).
		Bool("registered", vehicle != nil).
		Msg("detection processed")

	return nil
}
