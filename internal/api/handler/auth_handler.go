package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/echallan/enforcement-platform/internal/core/domain"
	"github.com/echallan/enforcement-platform/internal/core/ports"
)

// AuthHandler handles signup for both roles, login, and the citizen profile.
type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type registerUserRequest struct {
	FirstName     string `json:"firstName"     validate:"required"`
	LastName      string `json:"lastName"      validate:"required"`
	Email         string `json:"email"         validate:"required,email"`
	Password      string `json:"password"      validate:"required,min=6"`
	PhoneNumber   string `json:"phoneNumber"   validate:"required"`
	VehicleNumber string `json:"vehicleNumber" validate:"required"`
}

type registerAdminRequest struct {
	FullName string `json:"fullName" validate:"required"`
	Username string `json:"username" validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type loginRequest struct {
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password"   validate:"required"`
}

// loginUser is the user object the dashboard merges into its session.
type loginUser struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Role    string `json:"role"`
	Email   string `json:"email"`
	Vehicle string `json:"vehicle,omitempty"`
}

type loginResponse struct {
	Message string    `json:"message"`
	User    loginUser `json:"user"`
	Token   string    `json:"token"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// RegisterUser handles POST /api/auth/register-user. The vehicle number must
// exist in the RTO registry; a duplicate email is a conflict.
func (h *AuthHandler) RegisterUser(c echo.Context) error {
	var req registerUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	err := h.authService.RegisterUser(c.Request().Context(), ports.RegisterUserInput{
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Email:         req.Email,
		Password:      req.Password,
		PhoneNumber:   req.PhoneNumber,
		VehicleNumber: req.VehicleNumber,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, messageResponse{Message: "User registered successfully"})
}

// RegisterAdmin handles POST /api/auth/register-admin.
func (h *AuthHandler) RegisterAdmin(c echo.Context) error {
	var req registerAdminRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	err := h.authService.RegisterAdmin(c.Request().Context(), ports.RegisterAdminInput{
		FullName: req.FullName,
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, messageResponse{Message: "Admin registered successfully"})
}

// Login handles POST /api/auth/login. The identifier matches an admin's
// username or email first, then a citizen's email.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if req.Identifier == "" || req.Password == "" {
		return domain.ErrInvalidCredentials
	}

	result, err := h.authService.Login(c.Request().Context(), req.Identifier, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, loginResponse{
		Message: "Login successful",
		User: loginUser{
			ID:      result.ID,
			Name:    result.Name,
			Role:    result.Role,
			Email:   result.Email,
			Vehicle: result.Vehicle,
		},
		Token: result.Token,
	})
}
