package service

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/billmind/go-bill-reminder/internal/domain"
	"github.com/billmind/go-bill-reminder/internal/repository"
	"github.com/billmind/go-bill-reminder/internal/shared/errors"
	"github.com/billmind/go-bill-reminder/internal/shared/logger"
)

// AuthService handles registration, login and token issuance
type AuthService struct {
	users     *repository.UserRepository
	settings  *repository.SettingsRepository
	jwtSecret []byte
	tokenTTL  time.Duration
	log       *logger.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(users *repository.UserRepository, settings *repository.SettingsRepository, jwtSecret string, tokenTTL time.Duration, log *logger.Logger) *AuthService {
	return &AuthService{
		users:     users,
		settings:  settings,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  tokenTTL,
		log:       log,
	}
}

// Register creates a user with default reminder settings and returns the
// user plus a signed token
func (s *AuthService) Register(ctx context.Context, req *domain.RegisterRequest) (*domain.User, string, error) {
	existing, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, "", errors.NewInternalError("could not check existing account", err)
	}
	if existing != nil {
		return nil, "", errors.NewConflictError("email already registered", nil)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", errors.NewInternalError("could not hash password", err)
	}

	user := &domain.User{
		Email:        req.Email,
		PasswordHash: string(hash),
		Name:         req.Name,
		PhoneNumber:  req.PhoneNumber,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", errors.NewInternalError("could not create user", err)
	}

	if err := s.settings.Create(ctx, repository.DefaultSettings(user.ID)); err != nil {
		// The settings GET endpoint lazily recreates defaults, so a failure
		// here only costs reminders until the user opens settings.
		s.log.Error("could not create default reminder settings", "user_id", user.ID, "error", err)
	}

	token, err := s.issueToken(user.ID)
	if err != nil {
		return nil, "", errors.NewInternalError("could not issue token", err)
	}
	return user, token, nil
}

// Login verifies credentials and returns the user plus a signed token
func (s *AuthService) Login(ctx context.Context, req *domain.LoginRequest) (*domain.User, string, error) {
	user, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, "", errors.NewInternalError("could not load user", err)
	}
	if user == nil {
		return nil, "", errors.NewUnauthorizedError("invalid credentials", nil)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, "", errors.NewUnauthorizedError("invalid credentials", nil)
	}

	token, err := s.issueToken(user.ID)
	if err != nil {
		return nil, "", errors.NewInternalError("could not issue token", err)
	}
	return user, token, nil
}

// UpdateProfile updates mutable user fields
func (s *AuthService) UpdateProfile(ctx context.Context, userID string, req *domain.UpdateProfileRequest) (*domain.User, error) {
	user, err := s.users.UpdateProfile(ctx, userID, req.Name, req.PhoneNumber)
	if err != nil {
		return nil, errors.NewInternalError("could not update profile", err)
	}
	if user == nil {
		return nil, errors.NewNotFoundError("user not found", nil)
	}
	return user, nil
}

// ParseToken validates a bearer token and returns the user id it carries
func (s *AuthService) ParseToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return "", errors.NewUnauthorizedError("invalid token", err)
	}

	subject, err := token.Claims.GetSubject()
	if err != nil || subject == "" {
		return "", errors.NewUnauthorizedError("invalid token subject", err)
	}
	return subject, nil
}

func (s *AuthService) issueToken(userID string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}
