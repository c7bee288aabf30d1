package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/echallan/enforcement-platform/internal/core/domain"
	"github.com/echallan/enforcement-platform/internal/core/ports"
)

// AuthService implements signup, login and citizen profile management.
type AuthService struct {
	repo      ports.AuthRepository
	vehicles  ports.VehicleRepository
	jwtSecret string
	tokenTTL  time.Duration
}

func NewAuthService(repo ports.AuthRepository, vehicles ports.VehicleRepository, jwtSecret string, tokenTTL time.Duration) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{repo: repo, vehicles: vehicles, jwtSecret: jwtSecret, tokenTTL: tokenTTL}
}

func (s *AuthService) RegisterUser(ctx context.Context, input ports.RegisterUserInput) error {
	if input.FirstName == "" || input.LastName == "" || input.Email == "" ||
		input.Password == "" || input.PhoneNumber == "" || input.VehicleNumber == "" {
		return domain.ErrInvalidCredentials
	}

	// Plates are stored uppercase; signup input is normalised the same way.
	vehicleNumber := strings.ToUpper(strings.TrimSpace(input.VehicleNumber))
	if _, err := s.vehicles.FindByNumber(ctx, vehicleNumber); err != nil {
		if errors.Is(err, domain.ErrVehicleNotFound) {
			return domain.ErrVehicleNotFound
		}
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	user := &domain.User{
		FirstName:     input.FirstName,
		LastName:      input.LastName,
		Email:         input.Email,
		PasswordHash:  string(hash),
		PhoneNumber:   input.PhoneNumber,
		VehicleNumber: vehicleNumber,
		Role:          domain.RoleUser,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	_, err = s.repo.CreateUser(ctx, user)
	return err
}

func (s *AuthService) RegisterAdmin(ctx context.Context, input ports.RegisterAdminInput) error {
	if input.FullName == "" || input.Username == "" || input.Email == "" || input.Password == "" {
		return domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := &domain.Admin{
		FullName:     input.FullName,
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: string(hash),
		Role:         domain.RoleAdmin,
		CreatedAt:    time.Now().UTC(),
	}

	_, err = s.repo.CreateAdmin(ctx, admin)
	return err
}

// Login authenticates against the admin collection first, then the user
// collection. Admins may present their email or username as identifier;
// citizens always use their email.
func (s *AuthService) Login(ctx context.Context, identifier, password string) (*ports.LoginResult, error) {
	if identifier == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	admin, err := s.repo.FindAdminByIdentifier(ctx, identifier)
	if err == nil {
		if bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)) != nil {
			return nil, domain.ErrInvalidCredentials
		}
		token, err := s.generateToken(admin.ID, admin.FullName, domain.RoleAdmin)
		if err != nil {
			return nil, err
		}
		return &ports.LoginResult{
			Token: token,
			ID:    admin.ID,
			Name:  admin.FullName,
			Role:  domain.RoleAdmin,
			Email: admin.Email,
		}, nil
	}

	user, err := s.repo.FindUserByEmail(ctx, identifier)
	if err != nil {
		// Neither collection matched: same answer as a wrong password so the
		// login form cannot be used to enumerate accounts.
		return nil, domain.ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.generateToken(user.ID, user.FullName(), domain.RoleUser)
	if err != nil {
		return nil, err
	}
	return &ports.LoginResult{
		Token:   token,
		ID:      user.ID,
		Name:    user.FullName(),
		Role:    domain.RoleUser,
		Email:   user.Email,
		Vehicle: user.VehicleNumber,
	}, nil
}

func (s *AuthService) GetProfile(ctx context.Context, userID string) (*ports.Profile, error) {
	user, err := s.repo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &ports.Profile{
		ID:            user.ID,
		FirstName:     user.FirstName,
		LastName:      user.LastName,
		Email:         user.Email,
		PhoneNumber:   user.PhoneNumber,
		VehicleNumber: user.VehicleNumber,
		MemberSince:   user.CreatedAt.Format("January 2006"),
	}, nil
}

func (s *AuthService) UpdateProfile(ctx context.Context, userID, email, phoneNumber string) error {
	if email == "" || phoneNumber == "" {
		return domain.ErrInvalidCredentials
	}
	return s.repo.UpdateUserContact(ctx, userID, email, phoneNumber)
}

func (s *AuthService) generateToken(id, name, role string) (string, error) {
	claims := jwt.MapClaims{
		"sub":  id,
		"name": name,
		"role": role,
		"exp":  time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
