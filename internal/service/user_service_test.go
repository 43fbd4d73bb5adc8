package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"devblog-api/internal/model"
)

func TestUserService_SetRole(t *testing.T) {
	admin := model.PublicUser{ID: "admin-1", Username: "root", Role: model.RoleAdmin}

	t.Run("promotes a user", func(t *testing.T) {
		store := new(mockCredentialStore)
		svc := NewUserService(store)

		store.On("UpdateRole", mock.Anything, "user-1", model.RoleAuthor).Return(nil)
		store.On("FindByID", mock.Anything, "user-1").
			Return(model.User{ID: "user-1", Username: "alice", Role: model.RoleAuthor}, nil)

		updated, err := svc.SetRole(context.Background(), admin, "user-1", "author")
		require.NoError(t, err)
		assert.Equal(t, model.RoleAuthor, updated.Role)
		store.AssertExpectations(t)
	})

	t.Run("rejects unknown role names", func(t *testing.T) {
		store := new(mockCredentialStore)
		svc := NewUserService(store)

		_, err := svc.SetRole(context.Background(), admin, "user-1", "superuser")
		assert.ErrorIs(t, err, model.ErrInvalidInput)
		store.AssertNotCalled(t, "UpdateRole", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("rejects changing own role", func(t *testing.T) {
		store := new(mockCredentialStore)
		svc := NewUserService(store)

		_, err := svc.SetRole(context.Background(), admin, admin.ID, "reader")
		assert.ErrorIs(t, err, model.ErrForbidden)
		store.AssertNotCalled(t, "UpdateRole", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("missing target surfaces not found", func(t *testing.T) {
		store := new(mockCredentialStore)
		svc := NewUserService(store)

		store.On("UpdateRole", mock.Anything, "ghost", model.RoleAuthor).Return(model.ErrUserNotFound)

		_, err := svc.SetRole(context.Background(), admin, "ghost", "author")
		assert.ErrorIs(t, err, model.ErrUserNotFound)
	})
}

func TestUserService_UpdateProfile(t *testing.T) {
	bio := "new bio"

	t.Run("self update allowed", func(t *testing.T) {
		store := new(mockCredentialStore)
		svc := NewUserService(store)
		actor := model.PublicUser{ID: "user-1", Role: model.RoleReader}

		store.On("UpdateProfile", mock.Anything, "user-1", &bio, (*string)(nil)).Return(nil)
		store.On("FindByID", mock.Anything, "user-1").
			Return(model.User{ID: "user-1", Bio: bio, Role: model.RoleReader}, nil)

		updated, err := svc.UpdateProfile(context.Background(), actor, "user-1", model.UpdateProfileRequest{Bio: &bio})
		require.NoError(t, err)
		assert.Equal(t, bio, updated.Bio)
	})

	t.Run("updating someone else requires admin", func(t *testing.T) {
		store := new(mockCredentialStore)
		svc := NewUserService(store)
		actor := model.PublicUser{ID: "user-1", Role: model.RoleAuthor}

		_, err := svc.UpdateProfile(context.Background(), actor, "user-2", model.UpdateProfileRequest{Bio: &bio})
		assert.ErrorIs(t, err, model.ErrForbidden)
		store.AssertNotCalled(t, "UpdateProfile", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestUserService_Delete(t *testing.T) {
	admin := model.PublicUser{ID: "admin-1", Role: model.RoleAdmin}

	t.Run("cannot delete self", func(t *testing.T) {
		store := new(mockCredentialStore)
		svc := NewUserService(store)

		err := svc.Delete(context.Background(), admin, admin.ID)
		assert.ErrorIs(t, err, model.ErrForbidden)
	})

	t.Run("deletes another user", func(t *testing.T) {
		store := new(mockCredentialStore)
		svc := NewUserService(store)

		store.On("Delete", mock.Anything, "user-1").Return(nil)

		err := svc.Delete(context.Background(), admin, "user-1")
		assert.NoError(t, err)
		store.AssertExpectations(t)
	})
}
