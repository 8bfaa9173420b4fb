package services

import (
	"context"
	"errors"
	"time"

	"github.com/giftwheel/giveaway-backend/internal/config"
	"github.com/giftwheel/giveaway-backend/internal/models"
	"github.com/giftwheel/giveaway-backend/internal/repositories"
	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/exp/slog"
)

// ErrInvalidCredentials is returned for any login failure. The cause
// (unknown email vs. wrong password) is deliberately not distinguished.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Compile-time check to ensure authService implements AuthService
var _ AuthService = (*authService)(nil)

type authService struct {
	adminRepo repositories.AdminUserRepository
	jwtSecret string
	expiresIn time.Duration
}

// NewAuthService creates a new AuthService implementation
func NewAuthService(adminRepo repositories.AdminUserRepository, cfg *config.Config) AuthService {
	return &authService{
		adminRepo: adminRepo,
		jwtSecret: cfg.JWT.Secret,
		expiresIn: time.Duration(cfg.JWT.ExpiresIn) * time.Second,
	}
}

// Register creates a new admin account with a bcrypt-hashed password
func (s *authService) Register(ctx context.Context, req *models.RegisterRequest) (*models.AdminUser, error) {
	_, err := s.adminRepo.FindByEmail(ctx, req.Email)
	if err == nil {
		return nil, errors.New("an account with this email already exists")
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		slog.Error("Failed to check for existing admin account", "error", err, "email", req.Email)
		return nil, errors.New("failed to check for existing account")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.New("failed to hash password")
	}

	role := req.Role
	if role == "" {
		role = models.RoleOperator
	}

	user := &models.AdminUser{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  string(hashedPassword),
		Role:      role,
	}
	if err := s.adminRepo.Create(ctx, user); err != nil {
		slog.Error("Failed to create admin account", "error", err, "email", req.Email)
		return nil, errors.New("failed to create account")
	}

	slog.Info("Admin account registered", "email", user.Email, "role", user.Role)
	user.Password = ""
	return user, nil
}

// Login verifies credentials and issues a signed JWT carrying the role claim
func (s *authService) Login(ctx context.Context, req *models.LoginRequest) (string, error) {
	user, err := s.adminRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		return "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return "", ErrInvalidCredentials
	}

	claims := jwt.MapClaims{
		"sub":   user.ID.Hex(),
		"email": user.Email,
		"role":  user.Role,
		"exp":   time.Now().Add(s.expiresIn).Unix(),
		"iat":   time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		slog.Error("Failed to sign JWT", "error", err, "email", user.Email)
		return "", errors.New("failed to generate token")
	}
	return tokenString, nil
}
