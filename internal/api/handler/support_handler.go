package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/echallan/enforcement-platform/internal/core/domain"
	"github.com/echallan/enforcement-platform/internal/core/ports"
)

type SupportHandler struct {
	service ports.SupportService
}

func NewSupportHandler(service ports.SupportService) *SupportHandler {
	return &SupportHandler{service: service}
}

type createTicketRequest struct {
	Subject     string `json:"subject"     validate:"required"`
	Description string `json:"description" validate:"required"`
	ViolationID string `json:"violation_id"`
}

type ticketItem struct {
	ID          string `json:"id"`
	Subject     string `json:"subject"`
	Description string `json:"description"`
	ViolationID string `json:"violation_id,omitempty"`
	Status      string `json:"status"`
	CreatedAt   string `json:"created_at"`
}

func toTicketItem(t *domain.SupportTicket) ticketItem {
	return ticketItem{
		ID:          t.ID,
		Subject:     t.Subject,
		Description: t.Description,
		ViolationID: t.ViolationID,
		Status:      string(t.Status),
		CreatedAt:   t.CreatedAt.Format(time.RFC3339),
	}
}

// Create handles POST /api/user/support. A referenced challan must belong to
// the caller's vehicle.
func (h *SupportHandler) Create(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req createTicketRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ticket, err := h.service.Create(c.Request().Context(), ports.CreateTicketInput{
		UserID:      userID,
		Subject:     req.Subject,
		Description: req.Description,
		ViolationID: req.ViolationID,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, toTicketItem(ticket))
}

// List handles GET /api/user/support — the caller's tickets, newest first.
func (h *SupportHandler) List(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	tickets, err := h.service.ListForUser(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	items := make([]ticketItem, 0, len(tickets))
	for _, t := range tickets {
		items = append(items, toTicketItem(t))
	}
	return c.JSON(http.StatusOK, items)
}
