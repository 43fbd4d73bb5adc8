package service

import (
	"context"

	"devblog-api/internal/model"
)

type UserService struct {
	store CredentialStore
}

func NewUserService(store CredentialStore) *UserService {
	return &UserService{store: store}
}

func (s *UserService) Get(ctx context.Context, userID string) (model.PublicUser, error) {
	user, err := s.store.FindByID(ctx, userID)
	if err != nil {
		return model.PublicUser{}, err
	}
	return user.Public(), nil
}

func (s *UserService) List(ctx context.Context) ([]model.PublicUser, error) {
	users, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]model.PublicUser, 0, len(users))
	for _, u := range users {
		out = append(out, u.Public())
	}
	return out, nil
}

// SetRole replaces a user's role. The route is admin-gated; on top of
// that an admin can never touch their own role, which closes the
// self-elevation (and accidental self-demotion) path.
func (s *UserService) SetRole(ctx context.Context, actor model.PublicUser, targetID string, rawRole string) (model.PublicUser, error) {
	role, err := model.ParseRole(rawRole)
	if err != nil {
		return model.PublicUser{}, err
	}

	if actor.ID == targetID {
		return model.PublicUser{}, model.ErrForbidden
	}

	if err := s.store.UpdateRole(ctx, targetID, role); err != nil {
		return model.PublicUser{}, err
	}

	return s.Get(ctx, targetID)
}

// UpdateProfile changes bio/avatar for self or, for admins, anyone.
// Role and credentials are not reachable through this path.
func (s *UserService) UpdateProfile(ctx context.Context, actor model.PublicUser, targetID string, req model.UpdateProfileRequest) (model.PublicUser, error) {
	if actor.ID != targetID && !actor.Role.AtLeast(model.RoleAdmin) {
		return model.PublicUser{}, model.ErrForbidden
	}

	if err := s.store.UpdateProfile(ctx, targetID, req.Bio, req.Avatar); err != nil {
		return model.PublicUser{}, err
	}

	return s.Get(ctx, targetID)
}

func (s *UserService) Delete(ctx context.Context, actor model.PublicUser, targetID string) error {
	if actor.ID == targetID {
		return model.ErrForbidden
	}
	return s.store.Delete(ctx, targetID)
}
