package application

import (
	"context"
	"strings"

	"github.com/sebuszqo/SeasonLedger/internal/finance/domain"
)

type CategoryService struct {
	repo domain.CategoryRepository
}

func NewCategoryService(repo domain.CategoryRepository) *CategoryService {
	return &CategoryService{repo: repo}
}

func (s *CategoryService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return s.repo.ListLive(ctx)
}

func (s *CategoryService) GetCategory(ctx context.Context, id string) (*domain.Category, error) {
	return s.repo.FindLive(ctx, id)
}

func (s *CategoryService) CreateCategory(ctx context.Context, name string) (*domain.Category, error) {
	category := &domain.Category{Name: strings.TrimSpace(name)}
	if err := s.repo.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// UpdateCategory renames the category when name is set. A nil name still
// checks that the category is live.
func (s *CategoryService) UpdateCategory(ctx context.Context, id string, name *string) (*domain.Category, error) {
	return s.repo.Update(ctx, id, func(category *domain.Category) error {
		if name != nil {
			category.Name = strings.TrimSpace(*name)
		}
		return nil
	})
}

func (s *CategoryService) DeleteCategory(ctx context.Context, id string) error {
	return s.repo.SoftDelete(ctx, id)
}
