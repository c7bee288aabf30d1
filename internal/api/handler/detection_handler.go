package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/echallan/enforcement-platform/internal/core/domain"
)

// DetectionDispatcher is the interface the handler uses to enqueue detections.
type DetectionDispatcher interface {
	Enqueue(event domain.Detection)
	EnqueueBatch(events []domain.Detection)
}

// DetectionHandler ingests recognized-plate events from edge cameras.
type DetectionHandler struct {
	dispatcher DetectionDispatcher
}

func NewDetectionHandler(dispatcher DetectionDispatcher) *DetectionHandler {
	return &DetectionHandler{dispatcher: dispatcher}
}

type detectionRequest struct {
	CameraID        string    `json:"camera_id"        validate:"required"`
	PlateNumber     string    `json:"plate_number"     validate:"required"`
	ViolationType   string    `json:"violation_type"   validate:"required"`
	Location        string    `json:"location"`
	Timestamp       time.Time `json:"timestamp"        validate:"required"`
	ConfidenceScore float64   `json:"confidence_score"`
	ImagePath       string    `json:"image_path"`
	VideoPath       string    `json:"video_path"`
}

type acceptedResponse struct {
	Message string `json:"message"`
	Count   int    `json:"count,omitempty"`
}

// Receive handles POST /api/detections — enqueues a single detection, returns 202.
func (h *DetectionHandler) Receive(c echo.Context) error {
	var req detectionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	h.dispatcher.Enqueue(toDetection(req))
	return c.JSON(http.StatusAccepted, acceptedResponse{Message: "detection accepted"})
}

// ReceiveBatch handles POST /api/detections/batch — enqueues a batch, returns 202.
func (h *DetectionHandler) ReceiveBatch(c echo.Context) error {
	var reqs []detectionRequest
	if err := c.Bind(&reqs); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if len(reqs) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "batch cannot be empty")
	}

	events := make([]domain.Detection, 0, len(reqs))
	for i, req := range reqs {
		if err := c.Validate(&req); err != nil {
			return echo.NewHTTPError(http.StatusUnprocessableEntity,
				fmt.Sprintf("detection[%d]: %s", i, err.Error()))
		}
		events = append(events, toDetection(req))
	}

	h.dispatcher.EnqueueBatch(events)
	return c.JSON(http.StatusAccepted, acceptedResponse{
		Message: "detections accepted",
		Count:   len(events),
	})
}

func toDetection(r detectionRequest) domain.Detection {
	return domain.Detection{
		CameraID:        r.CameraID,
		PlateNumber:     r.PlateNumber,
		ViolationType:   r.ViolationType,
		Location:        r.Location,
		Timestamp:       r.Timestamp,
		ConfidenceScore: r.ConfidenceScore,
		ImagePath:       r.ImagePath,
		VideoPath:       r.VideoPath,
	}
}
