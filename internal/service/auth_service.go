package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"devblog-api/internal/model"
	"devblog-api/internal/password"
	"devblog-api/internal/token"
	"devblog-api/pkg/apierror"
)

type AuthService struct {
	store  CredentialStore
	issuer *token.Issuer
	hasher *password.Hasher
}

func NewAuthService(store CredentialStore, issuer *token.Issuer, hasher *password.Hasher) *AuthService {
	return &AuthService{store: store, issuer: issuer, hasher: hasher}
}

func (s *AuthService) Register(ctx context.Context, req model.RegisterRequest) (model.AuthResponse, error) {
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)

	if err := req.Validate(); err != nil {
		return model.AuthResponse{}, apierror.New("BAD_REQUEST", "validation failed", err.Error(), http.StatusBadRequest)
	}

	hash, err := s.hasher.Hash(ctx, req.Password)
	if err != nil {
		return model.AuthResponse{}, err
	}

	now := time.Now().UTC()
	user := model.User{
		ID:           uuid.NewString(),
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         model.SelfSelectableRole(req.Role),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.store.Create(ctx, user); err != nil {
		return model.AuthResponse{}, err
	}

	signed, err := s.issuer.Mint(user.ID)
	if err != nil {
		return model.AuthResponse{}, fmt.Errorf("mint token after registration: %w", err)
	}

	return model.AuthResponse{Token: signed, User: user.Public()}, nil
}

// Login verifies the credentials and mints a bearer token. Both
// failure paths (unknown email, wrong password) return the same error
// and burn one bcrypt comparison, so a caller cannot tell accounts
// apart by message or timing.
func (s *AuthService) Login(ctx context.Context, req model.LoginRequest) (model.AuthResponse, error) {
	if err := req.Validate(); err != nil {
		return model.AuthResponse{}, apierror.New("BAD_REQUEST", "validation failed", err.Error(), http.StatusBadRequest)
	}

	user, err := s.store.FindByEmail(ctx, req.Email)
	if errors.Is(err, model.ErrUserNotFound) {
		s.hasher.DummyCompare(ctx)
		return model.AuthResponse{}, model.ErrInvalidCredentials
	}
	if err != nil {
		return model.AuthResponse{}, err
	}

	match, err := s.hasher.Compare(ctx, user.PasswordHash, req.Password)
	if err != nil {
		return model.AuthResponse{}, err
	}
	if !match {
		return model.AuthResponse{}, model.ErrInvalidCredentials
	}

	signed, err := s.issuer.Mint(user.ID)
	if err != nil {
		return model.AuthResponse{}, fmt.Errorf("mint token on login: %w", err)
	}

	return model.AuthResponse{Token: signed, User: user.Public()}, nil
}
