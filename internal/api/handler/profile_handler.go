package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/echallan/enforcement-platform/internal/core/ports"
)

type ProfileHandler struct {
	authService ports.AuthService
}

func NewProfileHandler(authService ports.AuthService) *ProfileHandler {
	return &ProfileHandler{authService: authService}
}

type profileResponse struct {
	ID            string `json:"id"`
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	Email         string `json:"email"`
	PhoneNumber   string `json:"phone_number"`
	VehicleNumber string `json:"vehicle_number"`
	MemberSince   string `json:"member_since"`
}

type updateProfileRequest struct {
	Email       string `json:"email"        validate:"required,email"`
	PhoneNumber string `json:"phone_number" validate:"required"`
}

// Get handles GET /api/user/profile.
func (h *ProfileHandler) Get(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	p, err := h.authService.GetProfile(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, profileResponse{
		ID:            p.ID,
		FirstName:     p.FirstName,
		LastName:      p.LastName,
		Email:         p.Email,
		PhoneNumber:   p.PhoneNumber,
		VehicleNumber: p.VehicleNumber,
		MemberSince:   p.MemberSince,
	})
}

// Update handles PUT /api/user/profile. Email and phone number are the only
// editable fields.
func (h *ProfileHandler) Update(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.authService.UpdateProfile(c.Request().Context(), userID, req.Email, req.PhoneNumber); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, messageResponse{Message: "Profile updated successfully"})
}
