package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"devblog-api/internal/model"
)

type CommentRepository struct {
	pool *pgxpool.Pool
}

func NewCommentRepository(pool *pgxpool.Pool) *CommentRepository {
	return &CommentRepository{pool: pool}
}

const commentColumns = `c.id, c.content, c.article_id, c.user_id, c.parent_id, c.created_at,
	u.id, u.username, u.email, u.role, u.bio, u.avatar, u.created_at`

func (r *CommentRepository) Create(ctx context.Context, c model.Comment) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO comments (id, content, article_id, user_id, parent_id, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		c.ID, c.Content, c.ArticleID, c.UserID, c.ParentID, c.CreatedAt)
	if err != nil {
		return fmt.Errorf("create comment: %w", err)
	}
	return nil
}

func (r *CommentRepository) FindByID(ctx context.Context, id string) (model.Comment, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+commentColumns+`
		 FROM comments c JOIN users u ON u.id = c.user_id
		 WHERE c.id = $1`, id)

	c, err := scanComment(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Comment{}, model.ErrCommentNotFound
	}
	if err != nil {
		return model.Comment{}, fmt.Errorf("find comment by id: %w", err)
	}
	return c, nil
}

func (r *CommentRepository) ListByArticle(ctx context.Context, articleID string) ([]model.Comment, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+commentColumns+`
		 FROM comments c JOIN users u ON u.id = c.user_id
		 WHERE c.article_id = $1
		 ORDER BY c.created_at`, articleID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer rows.Close()

	comments := make([]model.Comment, 0)
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

func (r *CommentRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrCommentNotFound
	}
	return nil
}

func scanComment(row pgx.Row) (model.Comment, error) {
	var c model.Comment
	var role string
	err := row.Scan(&c.ID, &c.Content, &c.ArticleID, &c.UserID, &c.ParentID, &c.CreatedAt,
		&c.User.ID, &c.User.Username, &c.User.Email, &role, &c.User.Bio, &c.User.Avatar, &c.User.CreatedAt)
	if err != nil {
		return model.Comment{}, err
	}

	c.User.Role, err = model.ParseRole(role)
	if err != nil {
		return model.Comment{}, err
	}
	return c, nil
}
