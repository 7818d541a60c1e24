package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"legalassist-backend/internal/shared/auth"
)

// TokenSigner issues bearer tokens for authenticated users.
type TokenSigner interface {
	Sign(userID, email string) (string, error)
}

// Service implements registration and login.
type Service struct {
	Repo   Repo
	Tokens TokenSigner
	now    func() time.Time
}

func NewService(repo Repo, tokens TokenSigner) *Service {
	return &Service{Repo: repo, Tokens: tokens, now: time.Now}
}

// Register creates an account and returns a token for it.
func (s *Service) Register(ctx context.Context, email, password, name string) (AuthResult, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return AuthResult{}, fmt.Errorf("%w: email and password are required", ErrInvalidInput)
	}
	if len(password) > auth.MaxPasswordBytes {
		return AuthResult{}, ErrPasswordTooLong
	}

	// Cheap pre-check so a duplicate does not pay for bcrypt; Create enforces it.
	if _, err := s.Repo.GetByEmail(ctx, email); err == nil {
		return AuthResult{}, ErrEmailTaken
	} else if !errors.Is(err, ErrNotFound) {
		return AuthResult{}, err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return AuthResult{}, fmt.Errorf("hash password: %w", err)
	}

	user := User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		Name:         strings.TrimSpace(name),
		CreatedAt:    s.now().UTC(),
	}
	if err := s.Repo.Create(ctx, user); err != nil {
		return AuthResult{}, err
	}
	return s.issue(user)
}

// Login verifies credentials and returns a token.
func (s *Service) Login(ctx context.Context, email, password string) (AuthResult, error) {
	user, err := s.Repo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return AuthResult{}, ErrInvalidCredentials
		}
		return AuthResult{}, err
	}
	if err := auth.CheckPassword(user.PasswordHash, password); err != nil {
		return AuthResult{}, ErrInvalidCredentials
	}
	return s.issue(user)
}

func (s *Service) GetByID(ctx context.Context, userID string) (User, error) {
	if strings.TrimSpace(userID) == "" {
		return User{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	return s.Repo.GetByID(ctx, userID)
}

// Exists reports whether an account with userID is still stored.
func (s *Service) Exists(ctx context.Context, userID string) (bool, error) {
	if _, err := s.GetByID(ctx, userID); err != nil {
		if errors.Is(err, ErrNotFound) || errors.Is(err, ErrInvalidInput) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *Service) issue(user User) (AuthResult, error) {
	token, err := s.Tokens.Sign(user.ID, user.Email)
	if err != nil {
		return AuthResult{}, err
	}
	return AuthResult{Token: token, User: user.Public()}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
