package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestAPIClient_NoHeaderWhenSignedOut(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	api := NewAPIClient(srv.URL, NewSessionStore(t.TempDir()))
	if err := api.Get(context.Background(), "/api/violations", nil); err != nil {
		t.Fatalf("get: %v", err)
	}
	if gotAuth != "" {
		t.Fatalf("expected no Authorization header, got %q", gotAuth)
	}
}

func TestAPIClient_BearerInjection(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	store := NewSessionStore(t.TempDir())
	if err := store.Save(Identity{ID: "u1", Name: "Ravi", Role: RoleUser, Token: "tok-abc"}); err != nil {
		t.Fatalf("save: %v", err)
	}

	api := NewAPIClient(srv.URL, store)
	if err := api.Get(context.Background(), "/api/user/challans", nil); err != nil {
		t.Fatalf("get: %v", err)
	}
	if gotAuth != "Bearer tok-abc" {
		t.Fatalf("expected bearer header, got %q", gotAuth)
	}
}

func TestAPIClient_APIErrorFromEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"Invalid credentials"}`))
	}))
	defer srv.Close()

	api := NewAPIClient(srv.URL, NewSessionStore(t.TempDir()))
	err := api.Post(context.Background(), "/api/auth/login", map[string]string{}, nil)

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", apiErr.StatusCode)
	}
	if apiErr.Message != "Invalid credentials" {
		t.Fatalf("expected backend message, got %q", apiErr.Message)
	}
}

func TestAPIClient_APIErrorWithoutEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer srv.Close()

	api := NewAPIClient(srv.URL, NewSessionStore(t.TempDir()))
	err := api.Get(context.Background(), "/health", nil)

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %v", err)
	}
	if apiErr.Message != http.StatusText(http.StatusBadGateway) {
		t.Fatalf("expected status text fallback, got %q", apiErr.Message)
	}
}

func TestAPIClient_TransportErrorIsNotAPIError(t *testing.T) {
	// Point at a closed server to force a connection error.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	api := NewAPIClient(srv.URL, NewSessionStore(t.TempDir()))
	err := api.Get(context.Background(), "/health", nil)
	if err == nil {
		t.Fatalf("expected transport error")
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		t.Fatalf("transport failure must not be an APIError: %v", err)
	}
}

func TestAPIClient_DecodesResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"message":"eChallan API is running","status":"active"}`))
	}))
	defer srv.Close()

	api := NewAPIClient(srv.URL, NewSessionStore(t.TempDir()))
	var out struct {
		Message string `json:"message"`
		Status  string `json:"status"`
	}
	if err := api.Get(context.Background(), "/health", &out); err != nil {
		t.Fatalf("get: %v", err)
	}
	if out.Status != "active" {
		t.Fatalf("decode failed: %+v", out)
	}
}
