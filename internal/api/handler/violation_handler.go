package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/echallan/enforcement-platform/internal/core/domain"
	"github.com/echallan/enforcement-platform/internal/core/ports"
)

// ViolationHandler serves the live detection feed on the admin dashboard.
type ViolationHandler struct {
	service ports.ViolationService
}

func NewViolationHandler(service ports.ViolationService) *ViolationHandler {
	return &ViolationHandler{service: service}
}

type violationItem struct {
	ID        string  `json:"id"`
	Type      string  `json:"type"`
	Plate     string  `json:"plate"`
	Status    string  `json:"status"`
	Timestamp string  `json:"timestamp"`
	Location  string  `json:"location"`
	Fine      float64 `json:"fine"`
	ImagePath string  `json:"image_path,omitempty"`
}

// toViolationItem maps a violation to its dashboard row. Records whose plate
// has not been resolved yet show "Scanning...".
func toViolationItem(v *domain.Violation) violationItem {
	plate := v.VehicleNumber
	if plate == "" {
		plate = "Scanning..."
	}
	return violationItem{
		ID:        v.ID,
		Type:      v.ViolationType,
		Plate:     plate,
		Status:    string(v.Status),
		Timestamp: v.Timestamp.Format("2006-01-02 15:04"),
		Location:  v.Location,
		Fine:      v.FineAmount,
		ImagePath: v.ImagePath,
	}
}

// List handles GET /api/violations — all violations, newest first.
func (h *ViolationHandler) List(c echo.Context) error {
	violations, err := h.service.ListAll(c.Request().Context())
	if err != nil {
		return err
	}

	items := make([]violationItem, 0, len(violations))
	for _, v := range violations {
		items = append(items, toViolationItem(v))
	}
	return c.JSON(http.StatusOK, items)
}
