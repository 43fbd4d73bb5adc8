package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"devblog-api/internal/model"
	"devblog-api/internal/repository"
)

type CategoryService struct {
	categories *repository.CategoryRepository
}

func NewCategoryService(categories *repository.CategoryRepository) *CategoryService {
	return &CategoryService{categories: categories}
}

func (s *CategoryService) Create(ctx context.Context, req model.CategoryRequest) (model.Category, error) {
	if err := req.Validate(); err != nil {
		return model.Category{}, err
	}

	category := model.Category{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Description: req.Description,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.categories.Create(ctx, category); err != nil {
		return model.Category{}, err
	}
	return category, nil
}

func (s *CategoryService) List(ctx context.Context) ([]model.Category, error) {
	return s.categories.List(ctx)
}

func (s *CategoryService) Update(ctx context.Context, id string, req model.CategoryRequest) (model.Category, error) {
	if err := req.Validate(); err != nil {
		return model.Category{}, err
	}

	category, err := s.categories.FindByID(ctx, id)
	if err != nil {
		return model.Category{}, err
	}

	category.Name = req.Name
	category.Description = req.Description
	if err := s.categories.Update(ctx, category); err != nil {
		return model.Category{}, err
	}
	return category, nil
}

func (s *CategoryService) Delete(ctx context.Context, id string) error {
	return s.categories.Delete(ctx, id)
}
