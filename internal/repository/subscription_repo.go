package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"devblog-api/internal/model"
)

type SubscriptionRepository struct {
	pool *pgxpool.Pool
}

func NewSubscriptionRepository(pool *pgxpool.Pool) *SubscriptionRepository {
	return &SubscriptionRepository{pool: pool}
}

func (r *SubscriptionRepository) Subscribe(ctx context.Context, authorID string, subscriberID string) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO subscriptions (author_id, subscriber_id, created_at) VALUES ($1, $2, $3)`,
		authorID, subscriberID, time.Now().UTC())

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		// Subscribing twice is a no-op.
		return nil
	}
	if err != nil {
		return fmt.Errorf("subscribe: %w", err)
	}
	return nil
}

func (r *SubscriptionRepository) Unsubscribe(ctx context.Context, authorID string, subscriberID string) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM subscriptions WHERE author_id = $1 AND subscriber_id = $2`,
		authorID, subscriberID)
	if err != nil {
		return fmt.Errorf("unsubscribe: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrSubscriptionNotFound
	}
	return nil
}

func (r *SubscriptionRepository) ListAuthors(ctx context.Context, subscriberID string) ([]model.PublicUser, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT u.id, u.username, u.email, u.role, u.bio, u.avatar, u.created_at
		 FROM subscriptions s JOIN users u ON u.id = s.author_id
		 WHERE s.subscriber_id = $1
		 ORDER BY u.username`, subscriberID)
	if err != nil {
		return nil, fmt.Errorf("list subscriptions: %w", err)
	}
	defer rows.Close()

	authors := make([]model.PublicUser, 0)
	for rows.Next() {
		var u model.PublicUser
		var role string
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &role, &u.Bio, &u.Avatar, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan subscription: %w", err)
		}
		if u.Role, err = model.ParseRole(role); err != nil {
			return nil, err
		}
		authors = append(authors, u)
	}
	return authors, rows.Err()
}

func (r *SubscriptionRepository) CountSubscribers(ctx context.Context, authorID string) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM subscriptions WHERE author_id = $1`, authorID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count subscribers: %w", err)
	}
	return count, nil
}
