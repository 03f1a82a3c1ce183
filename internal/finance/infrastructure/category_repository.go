package infrastructure

import (
	"context"
	"database/sql"

	"github.com/sebuszqo/SeasonLedger/internal/finance/domain"
)

var categorySchema = Schema[domain.Category]{
	Table:   "categories",
	Columns: []string{"name"},
	OrderBy: "name, created_at",
	Fields: func(c *domain.Category) []any {
		return []any{&c.Name}
	},
	Values: func(c *domain.Category) []any {
		return []any{c.Name}
	},
}

type CategoryRepository struct {
	store *RecordStore[domain.Category, *domain.Category]
}

func NewCategoryRepository(db *sql.DB) *CategoryRepository {
	return &CategoryRepository{store: NewRecordStore[domain.Category, *domain.Category](db, categorySchema)}
}

func (r *CategoryRepository) Create(ctx context.Context, category *domain.Category) error {
	return r.store.Create(ctx, category)
}

func (r *CategoryRepository) FindLive(ctx context.Context, id string) (*domain.Category, error) {
	return r.store.GetLive(ctx, id)
}

func (r *CategoryRepository) ListLive(ctx context.Context) ([]domain.Category, error) {
	return r.store.ListLive(ctx)
}

func (r *CategoryRepository) Update(ctx context.Context, id string, mutate func(*domain.Category) error) (*domain.Category, error) {
	return r.store.Update(ctx, id, mutate)
}

func (r *CategoryRepository) SoftDelete(ctx context.Context, id string) error {
	return r.store.SoftDelete(ctx, id)
}
