package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Shivanand-hulikatti/petu/internal/model"
	"github.com/Shivanand-hulikatti/petu/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

// Password constraints.
const (
	minPasswordLength = 6
	// bcrypt ignores input past 72 bytes.
	maxPasswordLength = 72
)

// AuthService registers users and verifies their credentials.
type AuthService struct {
	store  repository.Store
	tokens *TokenIssuer
	cost   int
}

// NewAuthService constructs an AuthService hashing with the given bcrypt cost.
func NewAuthService(store repository.Store, tokens *TokenIssuer, cost int) *AuthService {
	return &AuthService{store: store, tokens: tokens, cost: cost}
}

// Register creates an account with a bcrypt-hashed password.
func (s *AuthService) Register(ctx context.Context, req model.RegisterRequest) (*model.User, error) {
	email := strings.TrimSpace(strings.ToLower(req.Email))
	name := strings.TrimSpace(req.FullName)
	if email == "" || req.Password == "" || name == "" {
		return nil, invalid("credentials", "email, password and full_name are required")
	}
	if !isValidEmail(email) {
		return nil, invalid("email", "email is not a valid email address")
	}
	if len(req.Password) < minPasswordLength {
		return nil, invalid("password", "password must be at least %d characters", minPasswordLength)
	}
	if len(req.Password) > maxPasswordLength {
		return nil, invalid("password", "password must be at most %d bytes", maxPasswordLength)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.store.CreateUser(ctx, model.User{
		Email:      email,
		FullName:   name,
		Hash:       string(hash),
		Lives:      model.DefaultLives,
		Reputation: model.DefaultReputation,
		Level:      model.LevelBeginner,
	})
	if err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			return nil, err
		}
		return nil, fmt.Errorf("register user: %w", err)
	}
	slog.InfoContext(ctx, "user registered", slog.String("user_id", user.ID))
	return user, nil
}

// Login checks email and password and issues an access token.
func (s *AuthService) Login(ctx context.Context, req model.LoginRequest) (*model.User, string, error) {
	email := strings.TrimSpace(strings.ToLower(req.Email))
	if email == "" || req.Password == "" {
		return nil, "", invalid("credentials", "email and password are required")
	}

	user, err := s.store.UserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("login: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Hash), []byte(req.Password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(*user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Authenticate resolves a bearer token to the caller's identity.
func (s *AuthService) Authenticate(token string) (*Identity, error) {
	return s.tokens.Verify(token)
}

// CurrentUser loads the account behind an identity.
func (s *AuthService) CurrentUser(ctx context.Context, id *Identity) (*model.User, error) {
	if id == nil {
		return nil, ErrInvalidToken
	}
	user, err := s.store.UserByEmail(ctx, id.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, fmt.Errorf("current user: %w", err)
	}
	if user.ID != id.UserID {
		return nil, ErrInvalidToken
	}
	return user, nil
}

// isValidEmail does a basic structural check.
func isValidEmail(email string) bool {
	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return false
	}
	return len(parts[0]) > 0 && strings.Contains(parts[1], ".")
}
