package service

import (
	"context"
	"fmt"

	"github.com/echallan/enforcement-platform/internal/core/domain"
	"github.com/echallan/enforcement-platform/internal/core/ports"
)

// CameraService implements the camera list and per-camera stream metadata.
type CameraService struct {
	repo ports.CameraRepository
}

func NewCameraService(repo ports.CameraRepository) *CameraService {
	return &CameraService{repo: repo}
}

func (s *CameraService) List(ctx context.Context) ([]*domain.Camera, error) {
	return s.repo.List(ctx)
}

func (s *CameraService) Stream(ctx context.Context, cameraID string) (*ports.StreamInfo, error) {
	camera, err := s.repo.FindByID(ctx, cameraID)
	if err != nil {
		return nil, err
	}

	streamURL := camera.StreamURL
	if streamURL == "" && camera.IPAddress != "" {
		// Edge devices expose an MJPEG endpoint on their IP by convention.
		streamURL = fmt.Sprintf("http://%s/video", camera.IPAddress)
	}

	return &ports.StreamInfo{
		CameraID:  camera.ID,
		Location:  camera.Location,
		StreamURL: streamURL,
		Status:    camera.Status,
	}, nil
}
