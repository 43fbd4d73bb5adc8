package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"devblog-api/internal/model"
)

type ArticleRepository struct {
	pool *pgxpool.Pool
}

func NewArticleRepository(pool *pgxpool.Pool) *ArticleRepository {
	return &ArticleRepository{pool: pool}
}

const articleColumns = `a.id, a.title, a.content, a.excerpt, a.author_id, a.category_id,
	a.published, a.views, a.created_at, a.updated_at,
	u.id, u.username, u.email, u.role, u.bio, u.avatar, u.created_at`

func (r *ArticleRepository) Create(ctx context.Context, a model.Article) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO articles (id, title, content, excerpt, author_id, category_id, published, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		a.ID, a.Title, a.Content, a.Excerpt, a.AuthorID, a.CategoryID, a.Published, a.CreatedAt, a.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create article: %w", err)
	}
	return nil
}

func (r *ArticleRepository) FindByID(ctx context.Context, id string) (model.Article, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+articleColumns+`
		 FROM articles a JOIN users u ON u.id = a.author_id
		 WHERE a.id = $1`, id)

	a, err := scanArticle(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Article{}, model.ErrArticleNotFound
	}
	if err != nil {
		return model.Article{}, fmt.Errorf("find article by id: %w", err)
	}
	return a, nil
}

func (r *ArticleRepository) List(ctx context.Context, publishedOnly bool, limit int, offset int) ([]model.Article, error) {
	query := `SELECT ` + articleColumns + `
		 FROM articles a JOIN users u ON u.id = a.author_id`
	if publishedOnly {
		query += ` WHERE a.published`
	}
	query += ` ORDER BY a.created_at DESC LIMIT $1 OFFSET $2`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	defer rows.Close()

	articles := make([]model.Article, 0)
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, fmt.Errorf("scan article: %w", err)
		}
		articles = append(articles, a)
	}
	return articles, rows.Err()
}

func (r *ArticleRepository) Update(ctx context.Context, a model.Article) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE articles
		 SET title = $2, content = $3, excerpt = $4, category_id = $5, published = $6, updated_at = $7
		 WHERE id = $1`,
		a.ID, a.Title, a.Content, a.Excerpt, a.CategoryID, a.Published, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("update article: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrArticleNotFound
	}
	return nil
}

func (r *ArticleRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM articles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete article: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrArticleNotFound
	}
	return nil
}

func (r *ArticleRepository) IncrementViews(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `UPDATE articles SET views = views + 1 WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("increment views: %w", err)
	}
	return nil
}

func scanArticle(row pgx.Row) (model.Article, error) {
	var a model.Article
	var role string
	err := row.Scan(&a.ID, &a.Title, &a.Content, &a.Excerpt, &a.AuthorID, &a.CategoryID,
		&a.Published, &a.Views, &a.CreatedAt, &a.UpdatedAt,
		&a.Author.ID, &a.Author.Username, &a.Author.Email, &role, &a.Author.Bio, &a.Author.Avatar, &a.Author.CreatedAt)
	if err != nil {
		return model.Article{}, err
	}

	a.Author.Role, err = model.ParseRole(role)
	if err != nil {
		return model.Article{}, err
	}
	return a, nil
}
