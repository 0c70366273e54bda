package services

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/billyziiii/docker-fullstack/internal/config"
	"github.com/billyziiii/docker-fullstack/internal/models"
	"github.com/billyziiii/docker-fullstack/internal/repository"
)

// UserStore is the slice of the user repository the services need.
type UserStore interface {
	Create(ctx context.Context, username, passwordHash string, initialBalance int64) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

// AuthService handles registration and login. Password hashing and token
// issuance are collaborators of the settlement core, not part of it.
type AuthService struct {
	users           UserStore
	bcryptCost      int
	startingBalance int64
}

func NewAuthService(users UserStore, cfg *config.Config) *AuthService {
	return &AuthService{
		users:           users,
		bcryptCost:      cfg.BcryptCost,
		startingBalance: cfg.StartingBalance,
	}
}

// Register creates a new user with the configured starting balance.
// Duplicate usernames fail deterministically with ErrDuplicateUsername,
// enforced by the unique constraint rather than a racy pre-check.
func (s *AuthService) Register(ctx context.Context, username, password string) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.users.Create(ctx, username, string(hash), s.startingBalance)
	if errors.Is(err, repository.ErrDuplicate) {
		return nil, ErrDuplicateUsername
	}
	if err != nil {
		return nil, err
	}

	return user, nil
}

// Login verifies the credentials. Unknown usernames and wrong passwords are
// indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}
