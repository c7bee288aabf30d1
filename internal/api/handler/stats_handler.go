package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/echallan/enforcement-platform/internal/core/ports"
)

type StatsHandler struct {
	service ports.StatsService
}

func NewStatsHandler(service ports.StatsService) *StatsHandler {
	return &StatsHandler{service: service}
}

type statisticsResponse struct {
	TotalViolations  int64   `json:"total_violations"`
	Pending          int64   `json:"pending"`
	Processed        int64   `json:"processed"`
	Paid             int64   `json:"paid"`
	RevenueCollected float64 `json:"revenue_collected"`
	TotalCameras     int64   `json:"total_cameras"`
	ActiveCameras    int64   `json:"active_cameras"`
	RegisteredUsers  int64   `json:"registered_users"`
}

// Get handles GET /api/admin/statistics.
func (h *StatsHandler) Get(c echo.Context) error {
	stats, err := h.service.Snapshot(c.Request().Context())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, statisticsResponse{
		TotalViolations:  stats.TotalViolations,
		Pending:          stats.Pending,
		Processed:        stats.Processed,
		Paid:             stats.Paid,
		RevenueCollected: stats.RevenueCollected,
		TotalCameras:     stats.TotalCameras,
		ActiveCameras:    stats.ActiveCameras,
		RegisteredUsers:  stats.RegisteredUsers,
	})
}
