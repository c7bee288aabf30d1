package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/echallan/enforcement-platform/internal/core/domain"
	"github.com/echallan/enforcement-platform/internal/core/ports"
)

type stubChallanService struct {
	listForUserFn func(ctx context.Context, userID string) ([]*domain.Violation, error)
	listAllFn     func(ctx context.Context) ([]ports.ChallanDetail, error)
	payFn         func(ctx context.Context, userID, violationID string) (*domain.Payment, error)
	paymentsFn    func(ctx context.Context, userID string) ([]*domain.Payment, error)
}

func (s *stubChallanService) ListForUser(ctx context.Context, userID string) ([]*domain.Violation, error) {
	return s.listForUserFn(ctx, userID)
}

func (s *stubChallanService) ListAll(ctx context.Context) ([]ports.ChallanDetail, error) {
	return s.listAllFn(ctx)
}

func (s *stubChallanService) Pay(ctx context.Context, userID, violationID string) (*domain.Payment, error) {
	return s.payFn(ctx, userID, violationID)
}

func (s *stubChallanService) Payments(ctx context.Context, userID string) ([]*domain.Payment, error) {
	return s.paymentsFn(ctx, userID)
}

func authedContext(t *testing.T, method, path, body, userID string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", userID)
	return c, rec
}

func TestChallanHandler_ListForUser(t *testing.T) {
	ts := time.Date(2026, 8, 20, 14, 30, 0, 0, time.UTC)
	stub := &stubChallanService{
		listForUserFn: func(ctx context.Context, userID string) ([]*domain.Violation, error) {
			if userID != "u1" {
				t.Fatalf("unexpected userID: %s", userID)
			}
			return []*domain.Violation{{
				ID:            "v1",
				VehicleNumber: "MH12AB1234",
				ViolationType: "No Helmet",
				Timestamp:     ts,
				Status:        domain.StatusProcessed,
				FineAmount:    500,
			}}, nil
		},
	}
	handler := NewChallanHandler(stub)

	c, rec := authedContext(t, http.MethodGet, "/api/user/challans", "", "u1")
	if err := handler.ListForUser(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var items []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &items); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	if items[0]["plate"] != "MH12AB1234" || items[0]["timestamp"] != "2026-08-20 14:30" {
		t.Fatalf("unexpected item: %+v", items[0])
	}
}

func TestChallanHandler_ListForUser_MissingClaims(t *testing.T) {
	handler := NewChallanHandler(&stubChallanService{})

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/user/challans", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := handler.ListForUser(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}

func TestChallanHandler_ListAll_ScanningPlaceholder(t *testing.T) {
	stub := &stubChallanService{
		listAllFn: func(ctx context.Context) ([]ports.ChallanDetail, error) {
			return []ports.ChallanDetail{{
				Violation: &domain.Violation{ID: "v1", Status: domain.StatusProcessed},
				OwnerName: "Ravi Sharma",
			}}, nil
		},
	}
	handler := NewChallanHandler(stub)

	c, rec := authedContext(t, http.MethodGet, "/api/admin/challans", "", "a1")
	if err := handler.ListAll(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var items []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &items); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if items[0]["plate"] != "Scanning..." {
		t.Fatalf("unresolved plate should render as Scanning..., got %v", items[0]["plate"])
	}
	if items[0]["owner_name"] != "Ravi Sharma" {
		t.Fatalf("expected owner name, got %+v", items[0])
	}
}

func TestChallanHandler_Pay_Success(t *testing.T) {
	stub := &stubChallanService{
		payFn: func(ctx context.Context, userID, violationID string) (*domain.Payment, error) {
			if userID != "u1" || violationID != "v1" {
				t.Fatalf("unexpected args: %s %s", userID, violationID)
			}
			return &domain.Payment{
				ID:             "p1",
				UserID:         userID,
				ViolationID:    violationID,
				Amount:         500,
				TransactionRef: "TXN-abc",
				PaymentDate:    time.Now().UTC(),
				Status:         domain.PaymentSuccess,
			}, nil
		},
	}
	handler := NewChallanHandler(stub)

	c, rec := authedContext(t, http.MethodPost, "/api/user/pay-challan", `{"challan_id":"v1"}`, "u1")
	if err := handler.Pay(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	payment, ok := resp["payment"].(map[string]any)
	if !ok || payment["transaction_ref"] != "TXN-abc" {
		t.Fatalf("unexpected payment payload: %+v", resp)
	}
}

func TestChallanHandler_Pay_WrongOwner(t *testing.T) {
	stub := &stubChallanService{
		payFn: func(ctx context.Context, userID, violationID string) (*domain.Payment, error) {
			return nil, domain.ErrForbidden
		},
	}
	handler := NewChallanHandler(stub)

	c, _ := authedContext(t, http.MethodPost, "/api/user/pay-challan", `{"challan_id":"v9"}`, "u1")
	if err := handler.Pay(c); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden passthrough, got %v", err)
	}
}
