package ports

import (
	"context"

	"github.com/echallan/enforcement-platform/internal/core/domain"
)

// AuthRepository defines persistence for citizen and admin accounts.
// Citizens and admins live in separate collections; login probes both.
type AuthRepository interface {
	CreateUser(ctx context.Context, user *domain.User) (*domain.User, error)
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)
	FindUserByID(ctx context.Context, id string) (*domain.User, error)
	// UpdateUserContact changes the two fields a citizen may edit themselves.
	UpdateUserContact(ctx context.Context, id, email, phoneNumber string) error
	CountUsers(ctx context.Context) (int64, error)

	CreateAdmin(ctx context.Context, admin *domain.Admin) (*domain.Admin, error)
	// FindAdminByIdentifier matches on email or username.
	FindAdminByIdentifier(ctx context.Context, identifier string) (*domain.Admin, error)
}

// VehicleRepository reads the RTO vehicle registry.
type VehicleRepository interface {
	FindByNumber(ctx context.Context, vehicleNumber string) (*domain.Vehicle, error)
}
