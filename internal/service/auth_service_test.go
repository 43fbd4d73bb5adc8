package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"devblog-api/internal/model"
	"devblog-api/internal/password"
	"devblog-api/internal/token"
)

func newTestAuthService(t *testing.T, store CredentialStore) *AuthService {
	t.Helper()

	issuer, err := token.NewIssuer("test-secret", 7*24*time.Hour)
	require.NoError(t, err)

	hasher, err := password.NewHasher(bcrypt.MinCost, 4)
	require.NoError(t, err)

	return NewAuthService(store, issuer, hasher)
}

func TestAuthService_Register(t *testing.T) {
	t.Run("creates reader by default and returns a token", func(t *testing.T) {
		store := newFakeCredentialStore()
		svc := newTestAuthService(t, store)

		resp, err := svc.Register(context.Background(), model.RegisterRequest{
			Username: "alice",
			Email:    "alice@example.com",
			Password: "password1",
		})

		require.NoError(t, err)
		assert.NotEmpty(t, resp.Token)
		assert.Equal(t, model.RoleReader, resp.User.Role)

		stored, err := store.FindByEmail(context.Background(), "alice@example.com")
		require.NoError(t, err)
		assert.NotEqual(t, "password1", stored.PasswordHash)
	})

	t.Run("honors author role but never admin", func(t *testing.T) {
		store := newFakeCredentialStore()
		svc := newTestAuthService(t, store)

		resp, err := svc.Register(context.Background(), model.RegisterRequest{
			Username: "bob", Email: "bob@example.com", Password: "password1", Role: "author",
		})
		require.NoError(t, err)
		assert.Equal(t, model.RoleAuthor, resp.User.Role)

		resp, err = svc.Register(context.Background(), model.RegisterRequest{
			Username: "mallory", Email: "mallory@example.com", Password: "password1", Role: "admin",
		})
		require.NoError(t, err)
		assert.Equal(t, model.RoleReader, resp.User.Role)
	})

	t.Run("rejects duplicate email", func(t *testing.T) {
		store := newFakeCredentialStore()
		svc := newTestAuthService(t, store)

		_, err := svc.Register(context.Background(), model.RegisterRequest{
			Username: "carol", Email: "carol@example.com", Password: "password1",
		})
		require.NoError(t, err)

		_, err = svc.Register(context.Background(), model.RegisterRequest{
			Username: "carol2", Email: "carol@example.com", Password: "password1",
		})
		assert.ErrorIs(t, err, model.ErrDuplicateCredential)
	})

	t.Run("rejects duplicate username", func(t *testing.T) {
		store := newFakeCredentialStore()
		svc := newTestAuthService(t, store)

		_, err := svc.Register(context.Background(), model.RegisterRequest{
			Username: "dave", Email: "dave@example.com", Password: "password1",
		})
		require.NoError(t, err)

		_, err = svc.Register(context.Background(), model.RegisterRequest{
			Username: "dave", Email: "dave2@example.com", Password: "password1",
		})
		assert.ErrorIs(t, err, model.ErrDuplicateCredential)
	})

	t.Run("rejects short password", func(t *testing.T) {
		store := newFakeCredentialStore()
		svc := newTestAuthService(t, store)

		_, err := svc.Register(context.Background(), model.RegisterRequest{
			Username: "eve", Email: "eve@example.com", Password: "short",
		})
		assert.Error(t, err)
	})
}

func TestAuthService_Login(t *testing.T) {
	store := newFakeCredentialStore()
	svc := newTestAuthService(t, store)

	_, err := svc.Register(context.Background(), model.RegisterRequest{
		Username: "alice", Email: "alice@example.com", Password: "password1",
	})
	require.NoError(t, err)

	t.Run("succeeds with correct credentials", func(t *testing.T) {
		resp, err := svc.Login(context.Background(), model.LoginRequest{
			Email: "alice@example.com", Password: "password1",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.Token)
		assert.Equal(t, "alice", resp.User.Username)
	})

	t.Run("wrong password and unknown email fail identically", func(t *testing.T) {
		_, wrongPassErr := svc.Login(context.Background(), model.LoginRequest{
			Email: "alice@example.com", Password: "wrong-password",
		})
		_, unknownEmailErr := svc.Login(context.Background(), model.LoginRequest{
			Email: "nobody@example.com", Password: "password1",
		})

		assert.ErrorIs(t, wrongPassErr, model.ErrInvalidCredentials)
		assert.ErrorIs(t, unknownEmailErr, model.ErrInvalidCredentials)
		assert.Equal(t, wrongPassErr.Error(), unknownEmailErr.Error())
	})
}
