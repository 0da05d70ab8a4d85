package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/todoapp/todo-api/internal/crypto"
	"github.com/todoapp/todo-api/internal/model"
	"github.com/todoapp/todo-api/internal/repository"
	"github.com/todoapp/todo-api/internal/validate"
)

var (
	// ErrInvalidCredentials covers both an unknown username and a wrong
	// password.
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrEmailTaken         = errors.New("user with this email already exists")
	ErrUsernameTaken      = errors.New("user with this username already exists")
)

// TokenType is the token_type reported alongside every access token.
const TokenType = "bearer"

// UserStore is the subset of the credential store the services need.
type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
}

// AuthService handles registration, credential checks and token issuance.
type AuthService struct {
	users     UserStore
	hasher    *crypto.Hasher
	tokens    *crypto.TokenManager
	validator *validate.Validator
	tokenTTL  time.Duration
}

// NewAuthService creates a new AuthService.
func NewAuthService(users UserStore, hasher *crypto.Hasher, tokens *crypto.TokenManager, v *validate.Validator, ttl time.Duration) *AuthService {
	return &AuthService{
		users:     users,
		hasher:    hasher,
		tokens:    tokens,
		validator: v,
		tokenTTL:  ttl,
	}
}

// Register validates req, hashes the password and stores a new active user.
// The role is stored as given.
func (s *AuthService) Register(ctx context.Context, req model.CreateUserRequest) (*model.User, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}
	if err := s.validator.Password(req.Password); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		if errors.Is(err, crypto.ErrPasswordTooLong) {
			return nil, validate.Errors{{Field: "password", Message: err.Error()}}
		}
		return nil, err
	}

	user := &model.User{
		Username:       req.Username,
		Email:          req.Email,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		HashedPassword: hash,
		Role:           req.Role,
		IsActive:       true,
	}

	if err := s.users.Create(ctx, user); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateEmail):
			return nil, ErrEmailTaken
		case errors.Is(err, repository.ErrDuplicateUsername):
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("creating user: %w", err)
	}

	slog.Info("user registered", "user_id", user.ID, "role", user.Role)
	return user, nil
}

// Authenticate returns the user whose username and password match.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (*model.User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			s.hasher.Burn(password)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("looking up user: %w", err)
	}

	if !s.hasher.Verify(password, user.HashedPassword) {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// Login authenticates the pair and issues an access token for the user.
func (s *AuthService) Login(ctx context.Context, req model.LoginRequest) (model.TokenResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return model.TokenResponse{}, err
	}

	user, err := s.Authenticate(ctx, req.Username, req.Password)
	if err != nil {
		return model.TokenResponse{}, err
	}

	token, err := s.tokens.Issue(user.Username, user.ID, user.Role, s.tokenTTL)
	if err != nil {
		return model.TokenResponse{}, fmt.Errorf("issuing token: %w", err)
	}

	return model.TokenResponse{AccessToken: token, TokenType: TokenType}, nil
}
