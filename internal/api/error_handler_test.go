package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/echallan/enforcement-platform/internal/core/domain"
)

func renderError(t *testing.T, err error) (int, string) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := NewHTTPErrorHandler(zerolog.New(io.Discard))
	handler(err, c)

	var resp struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json body: %v", err)
	}
	return rec.Code, resp.Error
}

func TestErrorHandler_DomainErrorMapping(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{"invalid credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid credentials"},
		{"unknown vehicle", domain.ErrVehicleNotFound, http.StatusBadRequest, "Vehicle number not found in RTO database. Cannot verify ownership."},
		{"duplicate email", domain.ErrUserExists, http.StatusConflict, "Email already registered"},
		{"duplicate username", domain.ErrAdminExists, http.StatusConflict, "Username already taken"},
		{"missing challan", domain.ErrViolationNotFound, http.StatusNotFound, "challan not found"},
		{"wrong owner", domain.ErrForbidden, http.StatusForbidden, "access forbidden"},
		{"already paid", domain.ErrChallanAlreadyPaid, http.StatusConflict, "Challan already paid"},
		{"not payable", domain.ErrChallanNotPayable, http.StatusUnprocessableEntity, "Challan is not payable yet"},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError, "internal server error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, msg := renderError(t, tc.err)
			if code != tc.wantCode {
				t.Fatalf("expected %d, got %d", tc.wantCode, code)
			}
			if msg != tc.wantMsg {
				t.Fatalf("expected %q, got %q", tc.wantMsg, msg)
			}
		})
	}
}

func TestErrorHandler_EchoHTTPError(t *testing.T) {
	code, msg := renderError(t, echo.NewHTTPError(http.StatusBadRequest, "invalid payload"))
	if code != http.StatusBadRequest || msg != "invalid payload" {
		t.Fatalf("unexpected: %d %q", code, msg)
	}
}
