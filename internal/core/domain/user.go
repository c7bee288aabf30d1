package domain

import (
	"errors"
	"time"
)

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("email already registered")
	ErrAdminExists        = errors.New("username already taken")
	ErrVehicleNotFound    = errors.New("vehicle number not found in RTO database")
)

// User is a registered citizen. A user account is always bound to a vehicle
// from the RTO registry; registration fails when the vehicle is unknown.
type User struct {
	ID            string    `json:"id"`
	FirstName     string    `json:"first_name"`
	LastName      string    `json:"last_name"`
	Email         string    `json:"email"`
	PasswordHash  string    `json:"-"`
	PhoneNumber   string    `json:"phone_number"`
	VehicleNumber string    `json:"vehicle_number"`
	Role          string    `json:"role"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// FullName returns the display name shown in the dashboard header.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// Admin is an enforcement officer account. Admins log in with either their
// email or their username.
type Admin struct {
	ID           string    `json:"id"`
	FullName     string    `json:"full_name"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}
