package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"devblog-api/internal/model"
)

type CommentStore interface {
	Create(ctx context.Context, c model.Comment) error
	FindByID(ctx context.Context, id string) (model.Comment, error)
	ListByArticle(ctx context.Context, articleID string) ([]model.Comment, error)
	Delete(ctx context.Context, id string) error
}

type CommentService struct {
	comments CommentStore
	articles ArticleStore
}

func NewCommentService(comments CommentStore, articles ArticleStore) *CommentService {
	return &CommentService{comments: comments, articles: articles}
}

func (s *CommentService) Create(ctx context.Context, actor model.PublicUser, articleID string, req model.CreateCommentRequest) (model.Comment, error) {
	if err := req.Validate(); err != nil {
		return model.Comment{}, err
	}

	if _, err := s.articles.FindByID(ctx, articleID); err != nil {
		return model.Comment{}, err
	}

	comment := model.Comment{
		ID:        uuid.NewString(),
		Content:   req.Content,
		ArticleID: articleID,
		UserID:    actor.ID,
		User:      actor,
		ParentID:  req.ParentID,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.comments.Create(ctx, comment); err != nil {
		return model.Comment{}, err
	}
	return comment, nil
}

func (s *CommentService) ListByArticle(ctx context.Context, articleID string) ([]model.Comment, error) {
	return s.comments.ListByArticle(ctx, articleID)
}

// Delete is allowed for the comment owner and for admins.
func (s *CommentService) Delete(ctx context.Context, actor model.PublicUser, id string) error {
	comment, err := s.comments.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if comment.UserID != actor.ID && !actor.Role.AtLeast(model.RoleAdmin) {
		return model.ErrForbidden
	}

	return s.comments.Delete(ctx, id)
}
