package service

import (
	"context"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"devblog-api/internal/model"
)

type mockCredentialStore struct {
	mock.Mock
}

func (m *mockCredentialStore) Create(ctx context.Context, u model.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *mockCredentialStore) FindByID(ctx context.Context, id string) (model.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *mockCredentialStore) FindByEmail(ctx context.Context, email string) (model.User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *mockCredentialStore) UpdateRole(ctx context.Context, userID string, role model.Role) error {
	args := m.Called(ctx, userID, role)
	return args.Error(0)
}

func (m *mockCredentialStore) UpdatePassword(ctx context.Context, userID string, passwordHash string) error {
	args := m.Called(ctx, userID, passwordHash)
	return args.Error(0)
}

func (m *mockCredentialStore) UpdateProfile(ctx context.Context, userID string, bio *string, avatar *string) error {
	args := m.Called(ctx, userID, bio, avatar)
	return args.Error(0)
}

func (m *mockCredentialStore) SetResetToken(ctx context.Context, userID string, tokenHash string, expires time.Time) error {
	args := m.Called(ctx, userID, tokenHash, expires)
	return args.Error(0)
}

func (m *mockCredentialStore) ClearResetToken(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *mockCredentialStore) ConsumeResetToken(ctx context.Context, tokenHash string) (string, error) {
	args := m.Called(ctx, tokenHash)
	return args.String(0), args.Error(1)
}

func (m *mockCredentialStore) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockCredentialStore) List(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.User), args.Error(1)
}

type mockSender struct {
	mock.Mock
}

func (m *mockSender) SendPasswordReset(ctx context.Context, address string, resetURL string) error {
	args := m.Called(ctx, address, resetURL)
	return args.Error(0)
}

// fakeCredentialStore is an in-memory store with the same atomicity
// guarantees as the SQL statements in the real repository. Used where
// tests need real state transitions (double consume, concurrent
// consume) instead of canned mock returns.
type fakeCredentialStore struct {
	mu    sync.Mutex
	users map[string]*model.User
}

func newFakeCredentialStore(users ...model.User) *fakeCredentialStore {
	s := &fakeCredentialStore{users: map[string]*model.User{}}
	for i := range users {
		u := users[i]
		s.users[u.ID] = &u
	}
	return s
}

func (s *fakeCredentialStore) Create(_ context.Context, u model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if existing.Username == u.Username || existing.Email == u.Email {
			return model.ErrDuplicateCredential
		}
	}
	s.users[u.ID] = &u
	return nil
}

func (s *fakeCredentialStore) FindByID(_ context.Context, id string) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return model.User{}, model.ErrUserNotFound
	}
	return *u, nil
}

func (s *fakeCredentialStore) FindByEmail(_ context.Context, email string) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == email {
			return *u, nil
		}
	}
	return model.User{}, model.ErrUserNotFound
}

func (s *fakeCredentialStore) UpdateRole(_ context.Context, userID string, role model.Role) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[userID]
	if !ok {
		return model.ErrUserNotFound
	}
	u.Role = role
	return nil
}

func (s *fakeCredentialStore) UpdatePassword(_ context.Context, userID string, passwordHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[userID]
	if !ok {
		return model.ErrUserNotFound
	}
	u.PasswordHash = passwordHash
	u.ResetTokenHash = nil
	u.ResetTokenExpires = nil
	return nil
}

func (s *fakeCredentialStore) UpdateProfile(_ context.Context, userID string, bio *string, avatar *string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[userID]
	if !ok {
		return model.ErrUserNotFound
	}
	if bio != nil {
		u.Bio = *bio
	}
	if avatar != nil {
		u.Avatar = *avatar
	}
	return nil
}

func (s *fakeCredentialStore) SetResetToken(_ context.Context, userID string, tokenHash string, expires time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[userID]
	if !ok {
		return model.ErrUserNotFound
	}
	u.ResetTokenHash = &tokenHash
	u.ResetTokenExpires = &expires
	return nil
}

func (s *fakeCredentialStore) ClearResetToken(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if u, ok := s.users[userID]; ok {
		u.ResetTokenHash = nil
		u.ResetTokenExpires = nil
	}
	return nil
}

func (s *fakeCredentialStore) ConsumeResetToken(_ context.Context, tokenHash string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	for _, u := range s.users {
		if u.ResetTokenHash != nil && *u.ResetTokenHash == tokenHash &&
			u.ResetTokenExpires != nil && u.ResetTokenExpires.After(now) {
			u.ResetTokenHash = nil
			u.ResetTokenExpires = nil
			return u.ID, nil
		}
	}
	return "", model.ErrResetTokenInvalid
}

func (s *fakeCredentialStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[id]; !ok {
		return model.ErrUserNotFound
	}
	delete(s.users, id)
	return nil
}

func (s *fakeCredentialStore) List(_ context.Context) ([]model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, *u)
	}
	return out, nil
}

// recordingSender captures reset URLs instead of sending mail.
type recordingSender struct {
	mu   sync.Mutex
	sent []string
	fail error
}

func (s *recordingSender) SendPasswordReset(_ context.Context, _ string, resetURL string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.fail != nil {
		return s.fail
	}
	s.sent = append(s.sent, resetURL)
	return nil
}
