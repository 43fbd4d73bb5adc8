package service

import (
	"context"
	"time"

	"devblog-api/internal/model"
)

// CredentialStore is the slice of the user repository the auth
// services depend on. Defined here so tests can substitute a mock the
// same way the middleware package declares its own userLoader.
type CredentialStore interface {
	Create(ctx context.Context, u model.User) error
	FindByID(ctx context.Context, id string) (model.User, error)
	FindByEmail(ctx context.Context, email string) (model.User, error)
	UpdateRole(ctx context.Context, userID string, role model.Role) error
	UpdatePassword(ctx context.Context, userID string, passwordHash string) error
	UpdateProfile(ctx context.Context, userID string, bio *string, avatar *string) error
	SetResetToken(ctx context.Context, userID string, tokenHash string, expires time.Time) error
	ClearResetToken(ctx context.Context, userID string) error
	ConsumeResetToken(ctx context.Context, tokenHash string) (string, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]model.User, error)
}
