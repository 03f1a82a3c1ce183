package domain

import (
	"context"
	"strings"

	"github.com/sebuszqo/SeasonLedger/internal/finance/errors"
)

type Category struct {
	Record
	Name string `json:"name"`
}

func (c *Category) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return errors.ErrEmptyName
	}
	if containsNul(c.Name) {
		return errors.ErrNulCharacter
	}
	return nil
}

type CategoryRepository interface {
	Create(ctx context.Context, category *Category) error
	FindLive(ctx context.Context, id string) (*Category, error)
	ListLive(ctx context.Context) ([]Category, error)
	Update(ctx context.Context, id string, mutate func(*Category) error) (*Category, error)
	SoftDelete(ctx context.Context, id string) error
}
