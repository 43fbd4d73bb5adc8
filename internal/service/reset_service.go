package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"devblog-api/internal/mailer"
	"devblog-api/internal/model"
	"devblog-api/internal/password"
	"devblog-api/pkg/apierror"
)

// PasswordResetService drives the reset-token lifecycle. A token
// exists in exactly one of three states per user, tracked by the
// (reset_token_hash, reset_token_expires) pair in the credential
// store: absent, issued, or gone again (consumed, superseded, or
// lazily expired). The raw token is handed to the user exactly once,
// inside the emailed URL; only its SHA-256 digest is ever stored.
type PasswordResetService struct {
	store       CredentialStore
	hasher      *password.Hasher
	sender      mailer.Sender
	ttl         time.Duration
	frontendURL string
}

func NewPasswordResetService(store CredentialStore, hasher *password.Hasher, sender mailer.Sender, ttl time.Duration, frontendURL string) *PasswordResetService {
	return &PasswordResetService{
		store:       store,
		hasher:      hasher,
		sender:      sender,
		ttl:         ttl,
		frontendURL: strings.TrimRight(frontendURL, "/"),
	}
}

// RequestReset issues a reset token for the account behind email, if
// one exists. The caller-visible outcome is identical either way;
// only a delivery failure after a token was written is surfaced,
// because that state has to be rolled back and reported.
func (s *PasswordResetService) RequestReset(ctx context.Context, email string) error {
	user, err := s.store.FindByEmail(ctx, email)
	if errors.Is(err, model.ErrUserNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	raw, err := newRawToken()
	if err != nil {
		return fmt.Errorf("generate reset token: %w", err)
	}

	expires := time.Now().UTC().Add(s.ttl)
	if err := s.store.SetResetToken(ctx, user.ID, hashToken(raw), expires); err != nil {
		return err
	}

	resetURL := fmt.Sprintf("%s/reset-password/%s", s.frontendURL, raw)
	if err := s.sender.SendPasswordReset(ctx, user.Email, resetURL); err != nil {
		// A token the user can never receive must not stay valid.
		if clearErr := s.store.ClearResetToken(ctx, user.ID); clearErr != nil {
			slog.Error("failed to roll back reset token after delivery failure",
				"user_id", user.ID, "error", clearErr)
		}
		slog.Error("reset email delivery failed", "user_id", user.ID, "error", err)
		return fmt.Errorf("%w: %v", model.ErrEmailDelivery, err)
	}

	return nil
}

// ConsumeReset redeems a raw token and sets a new password. The store
// consume is a single conditional update, so with concurrent calls on
// the same token exactly one caller reaches UpdatePassword; every
// other caller, and any expired or never-issued token, gets
// ErrResetTokenInvalid.
func (s *PasswordResetService) ConsumeReset(ctx context.Context, rawToken string, newPassword string) error {
	rawToken = strings.TrimSpace(rawToken)
	if rawToken == "" {
		return model.ErrResetTokenInvalid
	}

	req := model.ResetPasswordRequest{Password: newPassword}
	if err := req.Validate(); err != nil {
		return apierror.New("BAD_REQUEST", "validation failed", err.Error(), http.StatusBadRequest)
	}

	userID, err := s.store.ConsumeResetToken(ctx, hashToken(rawToken))
	if err != nil {
		return err
	}

	hash, err := s.hasher.Hash(ctx, newPassword)
	if err != nil {
		return err
	}

	return s.store.UpdatePassword(ctx, userID, hash)
}

func newRawToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

func hashToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
