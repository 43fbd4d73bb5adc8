package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"devblog-api/internal/model"
)

type ArticleStore interface {
	Create(ctx context.Context, a model.Article) error
	FindByID(ctx context.Context, id string) (model.Article, error)
	List(ctx context.Context, publishedOnly bool, limit int, offset int) ([]model.Article, error)
	Update(ctx context.Context, a model.Article) error
	Delete(ctx context.Context, id string) error
	IncrementViews(ctx context.Context, id string) error
}

type ArticleService struct {
	store ArticleStore
}

func NewArticleService(store ArticleStore) *ArticleService {
	return &ArticleService{store: store}
}

func (s *ArticleService) Create(ctx context.Context, actor model.PublicUser, req model.CreateArticleRequest) (model.Article, error) {
	if err := req.Validate(); err != nil {
		return model.Article{}, err
	}

	now := time.Now().UTC()
	article := model.Article{
		ID:         uuid.NewString(),
		Title:      req.Title,
		Content:    req.Content,
		Excerpt:    req.Excerpt,
		AuthorID:   actor.ID,
		Author:     actor,
		CategoryID: req.CategoryID,
		Published:  req.Published,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.store.Create(ctx, article); err != nil {
		return model.Article{}, err
	}
	return article, nil
}

func (s *ArticleService) Get(ctx context.Context, id string) (model.Article, error) {
	article, err := s.store.FindByID(ctx, id)
	if err != nil {
		return model.Article{}, err
	}

	_ = s.store.IncrementViews(ctx, id)
	article.Views++
	return article, nil
}

func (s *ArticleService) List(ctx context.Context, limit int, offset int) ([]model.Article, model.Meta, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	articles, err := s.store.List(ctx, true, limit, offset)
	if err != nil {
		return nil, model.Meta{}, err
	}
	return articles, model.Meta{Limit: limit, Offset: offset, Count: len(articles)}, nil
}

// Update lets the owning author, or an admin, modify an article.
func (s *ArticleService) Update(ctx context.Context, actor model.PublicUser, id string, req model.UpdateArticleRequest) (model.Article, error) {
	article, err := s.store.FindByID(ctx, id)
	if err != nil {
		return model.Article{}, err
	}

	if article.AuthorID != actor.ID && !actor.Role.AtLeast(model.RoleAdmin) {
		return model.Article{}, model.ErrForbidden
	}

	if req.Title != nil {
		article.Title = *req.Title
	}
	if req.Content != nil {
		article.Content = *req.Content
	}
	if req.Excerpt != nil {
		article.Excerpt = *req.Excerpt
	}
	if req.CategoryID != nil {
		article.CategoryID = req.CategoryID
	}
	if req.Published != nil {
		article.Published = *req.Published
	}
	article.UpdatedAt = time.Now().UTC()

	if err := s.store.Update(ctx, article); err != nil {
		return model.Article{}, err
	}
	return article, nil
}

func (s *ArticleService) Delete(ctx context.Context, actor model.PublicUser, id string) error {
	article, err := s.store.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if article.AuthorID != actor.ID && !actor.Role.AtLeast(model.RoleAdmin) {
		return model.ErrForbidden
	}

	return s.store.Delete(ctx, id)
}
