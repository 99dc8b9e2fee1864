package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/pkordes/travelbook/internal/domain"
	"github.com/pkordes/travelbook/internal/repo"
)

// Password length bounds in bytes. bcrypt uses at most 72 bytes of input.
const (
	MinPasswordLength = 6
	MaxPasswordLength = 72
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// AuthService registers accounts and checks credentials. It never issues
// sessions; that is the caller's concern.
type AuthService struct {
	users repo.UserRepo
	cost  int
}

// NewAuthService constructs an AuthService. cost is the bcrypt work factor;
// values outside bcrypt's range fall back to bcrypt.DefaultCost.
func NewAuthService(users repo.UserRepo, cost int) *AuthService {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &AuthService{users: users, cost: cost}
}

// HashPassword returns the bcrypt hash of password.
// Returns domain.ErrValidation for a password longer than MaxPasswordLength.
func (s *AuthService) HashPassword(password string) (string, error) {
	if len(password) > MaxPasswordLength {
		return "", fmt.Errorf("%w: password must be at most %d bytes", domain.ErrValidation, MaxPasswordLength)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", fmt.Errorf("service.AuthService.HashPassword: %w", err)
	}
	return string(hash), nil
}

// Register creates a regular user.
// Returns domain.ErrValidation for a missing name, a malformed email or a
// password outside the length bounds, and domain.ErrDuplicateEmail if the email is taken.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (domain.User, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	password = strings.TrimSpace(password)

	if name == "" {
		return domain.User{}, fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if !emailPattern.MatchString(email) {
		return domain.User{}, fmt.Errorf("%w: invalid email address", domain.ErrValidation)
	}
	if len(password) < MinPasswordLength {
		return domain.User{}, fmt.Errorf("%w: password must be at least %d characters", domain.ErrValidation, MinPasswordLength)
	}
	if len(password) > MaxPasswordLength {
		return domain.User{}, fmt.Errorf("%w: password must be at most %d bytes", domain.ErrValidation, MaxPasswordLength)
	}

	hash, err := s.HashPassword(password)
	if err != nil {
		return domain.User{}, err
	}
	u, err := s.users.Create(ctx, domain.User{Name: name, Email: email, PasswordHash: hash})
	if err != nil {
		return domain.User{}, wrap("service.AuthService.Register", err)
	}
	return u, nil
}

// Login returns the user whose email and password match.
// Returns domain.ErrInvalidCredentials for an unknown email or a wrong
// password without saying which.
func (s *AuthService) Login(ctx context.Context, email, password string) (domain.User, error) {
	email = strings.TrimSpace(email)
	password = strings.TrimSpace(password)
	if email == "" || password == "" {
		return domain.User{}, fmt.Errorf("%w: email and password are required", domain.ErrValidation)
	}

	u, err := s.users.GetByEmail(ctx, email)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.User{}, domain.ErrInvalidCredentials
	}
	if err != nil {
		return domain.User{}, wrap("service.AuthService.Login", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return domain.User{}, domain.ErrInvalidCredentials
	}
	return u, nil
}
