package client

import (
	"context"
	"errors"
	"sync"
)

// loginFailedMessage is shown when the backend gives no usable reason
// (network down, malformed response).
const loginFailedMessage = "Login failed"

// LoginResult is the outcome of a login attempt. Login never returns an
// error: transport failures, rejections, and local validation all land here.
type LoginResult struct {
	Success bool
	Role    string
	Message string
}

// AuthService owns the in-memory session and keeps it in sync with the
// store. It is safe for concurrent use; concurrent logins race and the last
// write wins.
type AuthService struct {
	api   *APIClient
	store *SessionStore

	mu       sync.RWMutex
	identity *Identity
	loading  bool

	initOnce sync.Once
}

func NewAuthService(api *APIClient, store *SessionStore) *AuthService {
	return &AuthService{
		api:   api,
		store: store,
		// loading stays true until Initialize completes, so guards report
		// Pending instead of bouncing a restored session to the login screen.
		loading: true,
	}
}

// Initialize rehydrates the session from the store. It runs once; later
// calls are no-ops. It completes (and drops the loading flag) even when
// nothing is stored.
func (a *AuthService) Initialize() {
	a.initOnce.Do(func() {
		id := a.store.Load()

		a.mu.Lock()
		a.identity = id
		a.loading = false
		a.mu.Unlock()
	})
}

// Loading reports whether Initialize has completed yet.
func (a *AuthService) Loading() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.loading
}

// Identity returns a copy of the current identity, or nil when signed out.
func (a *AuthService) Identity() *Identity {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.identity == nil {
		return nil
	}
	id := *a.identity
	return &id
}

type loginRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

type loginResponse struct {
	Message string `json:"message"`
	User    struct {
		ID      string `json:"id"`
		Name    string `json:"name"`
		Role    string `json:"role"`
		Email   string `json:"email"`
		Vehicle string `json:"vehicle"`
	} `json:"user"`
	Token string `json:"token"`
}

// Login exchanges credentials for a session. Empty credentials fail locally
// without a network call. On success the identity is persisted and held in
// memory; on failure both are left exactly as they were.
func (a *AuthService) Login(ctx context.Context, identifier, password string) LoginResult {
	if identifier == "" || password == "" {
		return LoginResult{Message: "Please enter both fields"}
	}

	var resp loginResponse
	err := a.api.Post(ctx, "/api/auth/login", loginRequest{
		Identifier: identifier,
		Password:   password,
	}, &resp)
	if err != nil {
		msg := loginFailedMessage
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.Message != "" {
			msg = apiErr.Message
		}
		return LoginResult{Message: msg}
	}

	id := Identity{
		ID:    resp.User.ID,
		Name:  resp.User.Name,
		Role:  resp.User.Role,
		Token: resp.Token,
	}
	if !id.complete() {
		return LoginResult{Message: loginFailedMessage}
	}

	// Persist before exposing the identity. Requests read the bearer token
	// back from the store, so an identity that never reached disk would sign
	// nothing; treat a persist failure as a failed login and change no state.
	if err := a.store.Save(id); err != nil {
		return LoginResult{Message: loginFailedMessage}
	}

	a.mu.Lock()
	a.identity = &id
	a.mu.Unlock()

	return LoginResult{Success: true, Role: id.Role}
}

// Logout discards the in-memory identity and the stored record. Logging out
// while signed out is a no-op.
func (a *AuthService) Logout() {
	a.mu.Lock()
	a.identity = nil
	a.mu.Unlock()

	_ = a.store.Clear()
}
