package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/marcodesign21/chaset-tracker/internal/models"
	"github.com/marcodesign21/chaset-tracker/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

// LoginResult is the outcome of a login-or-register call. Created is the
// welcome signal: true only when this call registered the user.
type LoginResult struct {
	User    models.SessionUser
	Created bool
}

// AuthService implements the login-or-register upsert.
type AuthService struct {
	authRepo repository.Authorization
	cost     int
}

func NewAuthService(repo repository.Authorization, cost int) *AuthService {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &AuthService{authRepo: repo, cost: cost}
}

// Login authenticates an existing username or registers an unseen one.
// A wrong password yields ErrInvalidCredentials; losing a concurrent
// registration race for the same username yields ErrConflict.
func (s *AuthService) Login(ctx context.Context, username, password string) (LoginResult, error) {
	username = strings.TrimSpace(username)
	if username == "" || strings.TrimSpace(password) == "" {
		return LoginResult{}, invalid("username and password are required")
	}

	u, err := s.authRepo.GetByUsername(ctx, username)
	if err != nil {
		return LoginResult{}, fmt.Errorf("lookup user: %w", err)
	}
	if u == nil {
		return s.register(ctx, username, password)
	}

	if err := verifyPassword(u.PasswordHash, password); err != nil {
		return LoginResult{}, ErrInvalidCredentials
	}
	return LoginResult{User: u.Session()}, nil
}

func (s *AuthService) register(ctx context.Context, username, password string) (LoginResult, error) {
	hash, err := s.hashPassword(password)
	if err != nil {
		return LoginResult{}, err
	}
	id, err := s.authRepo.Create(ctx, username, hash)
	if err != nil {
		if errors.Is(err, repository.ErrUniqueViolation) {
			return LoginResult{}, fmt.Errorf("%w: username %q was registered concurrently", ErrConflict, username)
		}
		return LoginResult{}, fmt.Errorf("create user: %w", err)
	}
	return LoginResult{
		User:    models.SessionUser{ID: id, Username: username},
		Created: true,
	}, nil
}

// helper: hash password safely
func (s *AuthService) hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", invalid("password is too long")
		}
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// helper: verify password against hash
func verifyPassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
