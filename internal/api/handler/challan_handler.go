package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/echallan/enforcement-platform/internal/core/domain"
	"github.com/echallan/enforcement-platform/internal/core/ports"
)

// ChallanHandler serves challan listing and settlement for both dashboards.
type ChallanHandler struct {
	service ports.ChallanService
}

func NewChallanHandler(service ports.ChallanService) *ChallanHandler {
	return &ChallanHandler{service: service}
}

type adminChallanItem struct {
	violationItem
	OwnerName string `json:"owner_name"`
}

type payChallanRequest struct {
	ChallanID string `json:"challan_id" validate:"required"`
}

type paymentItem struct {
	ID             string  `json:"id"`
	ViolationID    string  `json:"violation_id"`
	Amount         float64 `json:"amount"`
	TransactionRef string  `json:"transaction_ref"`
	PaymentDate    string  `json:"payment_date"`
	Status         string  `json:"status"`
}

type payChallanResponse struct {
	Message string      `json:"message"`
	Payment paymentItem `json:"payment"`
}

// ListAll handles GET /api/admin/challans — processed and paid violations
// joined with registry owner info.
func (h *ChallanHandler) ListAll(c echo.Context) error {
	details, err := h.service.ListAll(c.Request().Context())
	if err != nil {
		return err
	}

	items := make([]adminChallanItem, 0, len(details))
	for _, d := range details {
		items = append(items, adminChallanItem{
			violationItem: toViolationItem(d.Violation),
			OwnerName:     d.OwnerName,
		})
	}
	return c.JSON(http.StatusOK, items)
}

// ListForUser handles GET /api/user/challans — challans against the caller's
// registered vehicle.
func (h *ChallanHandler) ListForUser(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	challans, err := h.service.ListForUser(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	items := make([]violationItem, 0, len(challans))
	for _, v := range challans {
		items = append(items, toViolationItem(v))
	}
	return c.JSON(http.StatusOK, items)
}

// Pay handles POST /api/user/pay-challan.
func (h *ChallanHandler) Pay(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req payChallanRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	payment, err := h.service.Pay(c.Request().Context(), userID, req.ChallanID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, payChallanResponse{
		Message: "Payment successful",
		Payment: toPaymentItem(payment),
	})
}

// Payments handles GET /api/user/payments — payment history, newest first.
func (h *ChallanHandler) Payments(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	payments, err := h.service.Payments(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	items := make([]paymentItem, 0, len(payments))
	for _, p := range payments {
		items = append(items, toPaymentItem(p))
	}
	return c.JSON(http.StatusOK, items)
}

func toPaymentItem(p *domain.Payment) paymentItem {
	return paymentItem{
		ID:             p.ID,
		ViolationID:    p.ViolationID,
		Amount:         p.Amount,
		TransactionRef: p.TransactionRef,
		PaymentDate:    p.PaymentDate.Format(time.RFC3339),
		Status:         p.Status,
	}
}
