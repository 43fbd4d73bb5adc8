package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"devblog-api/internal/model"
)

type mockArticleStore struct {
	mock.Mock
}

func (m *mockArticleStore) Create(ctx context.Context, a model.Article) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *mockArticleStore) FindByID(ctx context.Context, id string) (model.Article, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Article), args.Error(1)
}

func (m *mockArticleStore) List(ctx context.Context, publishedOnly bool, limit int, offset int) ([]model.Article, error) {
	args := m.Called(ctx, publishedOnly, limit, offset)
	return args.Get(0).([]model.Article), args.Error(1)
}

func (m *mockArticleStore) Update(ctx context.Context, a model.Article) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *mockArticleStore) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockArticleStore) IncrementViews(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestArticleService_Ownership(t *testing.T) {
	owner := model.PublicUser{ID: "author-1", Role: model.RoleAuthor}
	otherAuthor := model.PublicUser{ID: "author-2", Role: model.RoleAuthor}
	admin := model.PublicUser{ID: "admin-1", Role: model.RoleAdmin}

	existing := model.Article{ID: "article-1", Title: "t", Content: "c", AuthorID: owner.ID}
	newTitle := "updated"

	t.Run("owner can update", func(t *testing.T) {
		store := new(mockArticleStore)
		svc := NewArticleService(store)

		store.On("FindByID", mock.Anything, "article-1").Return(existing, nil)
		store.On("Update", mock.Anything, mock.Anything).Return(nil)

		updated, err := svc.Update(context.Background(), owner, "article-1", model.UpdateArticleRequest{Title: &newTitle})
		require.NoError(t, err)
		assert.Equal(t, newTitle, updated.Title)
	})

	t.Run("another author cannot update", func(t *testing.T) {
		store := new(mockArticleStore)
		svc := NewArticleService(store)

		store.On("FindByID", mock.Anything, "article-1").Return(existing, nil)

		_, err := svc.Update(context.Background(), otherAuthor, "article-1", model.UpdateArticleRequest{Title: &newTitle})
		assert.ErrorIs(t, err, model.ErrForbidden)
		store.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("admin can delete any article", func(t *testing.T) {
		store := new(mockArticleStore)
		svc := NewArticleService(store)

		store.On("FindByID", mock.Anything, "article-1").Return(existing, nil)
		store.On("Delete", mock.Anything, "article-1").Return(nil)

		err := svc.Delete(context.Background(), admin, "article-1")
		assert.NoError(t, err)
		store.AssertExpectations(t)
	})

	t.Run("non-owner cannot delete", func(t *testing.T) {
		store := new(mockArticleStore)
		svc := NewArticleService(store)

		store.On("FindByID", mock.Anything, "article-1").Return(existing, nil)

		err := svc.Delete(context.Background(), otherAuthor, "article-1")
		assert.ErrorIs(t, err, model.ErrForbidden)
		store.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}

func TestArticleService_Create(t *testing.T) {
	author := model.PublicUser{ID: "author-1", Role: model.RoleAuthor}

	t.Run("stamps author and id", func(t *testing.T) {
		store := new(mockArticleStore)
		svc := NewArticleService(store)

		store.On("Create", mock.Anything, mock.MatchedBy(func(a model.Article) bool {
			return a.AuthorID == author.ID && a.ID != "" && a.Title == "hello"
		})).Return(nil)

		article, err := svc.Create(context.Background(), author, model.CreateArticleRequest{
			Title: "hello", Content: "world",
		})
		require.NoError(t, err)
		assert.Equal(t, author.ID, article.AuthorID)
		store.AssertExpectations(t)
	})

	t.Run("rejects empty title", func(t *testing.T) {
		store := new(mockArticleStore)
		svc := NewArticleService(store)

		_, err := svc.Create(context.Background(), author, model.CreateArticleRequest{Content: "world"})
		assert.Error(t, err)
		store.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}
