package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/echallan/enforcement-platform/internal/core/ports"
)

type CameraHandler struct {
	service ports.CameraService
}

func NewCameraHandler(service ports.CameraService) *CameraHandler {
	return &CameraHandler{service: service}
}

type cameraItem struct {
	ID         string `json:"id"`
	Location   string `json:"location"`
	Status     string `json:"status"`
	LastActive string `json:"last_active"`
}

type streamResponse struct {
	CameraID  string `json:"camera_id"`
	Location  string `json:"location"`
	StreamURL string `json:"stream_url"`
	Status    string `json:"status"`
}

// List handles GET /api/admin/cameras.
func (h *CameraHandler) List(c echo.Context) error {
	cameras, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}

	items := make([]cameraItem, 0, len(cameras))
	for _, cam := range cameras {
		items = append(items, cameraItem{
			ID:         cam.ID,
			Location:   cam.Location,
			Status:     cam.Status,
			LastActive: cam.LastActive.Format(time.RFC3339),
		})
	}
	return c.JSON(http.StatusOK, items)
}

// Stream handles GET /api/admin/camera/:id/stream — the dashboard player
// connects to the returned URL directly.
func (h *CameraHandler) Stream(c echo.Context) error {
	info, err := h.service.Stream(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, streamResponse{
		CameraID:  info.CameraID,
		Location:  info.Location,
		StreamURL: info.StreamURL,
		Status:    info.Status,
	})
}
