package ports

import "context"

// RegisterUserInput carries a citizen signup request.
type RegisterUserInput struct {
	FirstName     string
	LastName      string
	Email         string
	Password      string
	PhoneNumber   string
	VehicleNumber string
}

// RegisterAdminInput carries an officer signup request.
type RegisterAdminInput struct {
	FullName string
	Username string
	Email    string
	Password string
}

// LoginResult is the payload returned to the dashboard on successful login.
// Vehicle is empty for admin sessions.
type LoginResult struct {
	Token   string
	ID      string
	Name    string
	Role    string
	Email   string
	Vehicle string
}

// Profile is the citizen profile view; Email and PhoneNumber are the only
// fields the citizen may change.
type Profile struct {
	ID            string
	FirstName     string
	LastName      string
	Email         string
	PhoneNumber   string
	VehicleNumber string
	MemberSince   string
}

// AuthService owns account lifecycle: signup for both roles, login against
// both collections, and citizen profile reads/updates.
type AuthService interface {
	RegisterUser(ctx context.Context, input RegisterUserInput) error
	RegisterAdmin(ctx context.Context, input RegisterAdminInput) error
	Login(ctx context.Context, identifier, password string) (*LoginResult, error)
	GetProfile(ctx context.Context, userID string) (*Profile, error)
	UpdateProfile(ctx context.Context, userID, email, phoneNumber string) error
}
