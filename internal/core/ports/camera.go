package ports

import (
	"context"

	"github.com/echallan/enforcement-platform/internal/core/domain"
)

// StreamInfo is the live-stream metadata handed to the dashboard player.
// The platform never proxies video; the dashboard connects directly.
type StreamInfo struct {
	CameraID  string
	Location  string
	StreamURL string
	Status    string
}

type CameraService interface {
	List(ctx context.Context) ([]*domain.Camera, error)
	Stream(ctx context.Context, cameraID string) (*StreamInfo, error)
}

type CameraRepository interface {
	List(ctx context.Context) ([]*domain.Camera, error)
	FindByID(ctx context.Context, id string) (*domain.Camera, error)
	// Touch records a heartbeat: the camera reported activity just now.
	Touch(ctx context.Context, id string) error
}
