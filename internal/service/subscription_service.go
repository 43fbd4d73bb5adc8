package service

import (
	"context"

	"devblog-api/internal/model"
	"devblog-api/internal/repository"
)

type SubscriptionService struct {
	subscriptions *repository.SubscriptionRepository
	store         CredentialStore
}

func NewSubscriptionService(subscriptions *repository.SubscriptionRepository, store CredentialStore) *SubscriptionService {
	return &SubscriptionService{subscriptions: subscriptions, store: store}
}

// Subscribe follows an author. Only users who actually publish can be
// followed, and following yourself is rejected.
func (s *SubscriptionService) Subscribe(ctx context.Context, actor model.PublicUser, authorID string) error {
	if actor.ID == authorID {
		return model.ErrForbidden
	}

	author, err := s.store.FindByID(ctx, authorID)
	if err != nil {
		return err
	}
	if !author.Role.AtLeast(model.RoleAuthor) {
		return model.ErrUserNotFound
	}

	return s.subscriptions.Subscribe(ctx, authorID, actor.ID)
}

func (s *SubscriptionService) Unsubscribe(ctx context.Context, actor model.PublicUser, authorID string) error {
	return s.subscriptions.Unsubscribe(ctx, authorID, actor.ID)
}

func (s *SubscriptionService) ListAuthors(ctx context.Context, actor model.PublicUser) ([]model.PublicUser, error) {
	return s.subscriptions.ListAuthors(ctx, actor.ID)
}

// SubscriberCount reports how many users follow the given author.
func (s *SubscriptionService) SubscriberCount(ctx context.Context, authorID string) (int, error) {
	if _, err := s.store.FindByID(ctx, authorID); err != nil {
		return 0, err
	}
	return s.subscriptions.CountSubscribers(ctx, authorID)
}
