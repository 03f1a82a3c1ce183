package domain

import (
	"context"
	"strings"

	"github.com/sebuszqo/SeasonLedger/internal/finance/errors"
)

type Season struct {
	Record
	Name   string `json:"name"`
	Active bool   `json:"active"`
}

func (s *Season) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return errors.ErrEmptyName
	}
	if containsNul(s.Name) {
		return errors.ErrNulCharacter
	}
	return nil
}

// SeasonPatch carries the fields of a partial season update. Nil means "keep".
type SeasonPatch struct {
	Name   *string
	Active *bool
}

func (p SeasonPatch) Activates() bool {
	return p.Active != nil && *p.Active
}

// SeasonRepository persists seasons. Create of an active season and Activate
// run as a single database transaction that first demotes every live active
// season, so at most one live season is ever active.
type SeasonRepository interface {
	Create(ctx context.Context, season *Season) error
	FindLive(ctx context.Context, id string) (*Season, error)
	ListLive(ctx context.Context) ([]Season, error)
	Update(ctx context.Context, id string, mutate func(*Season) error) (*Season, error)
	Activate(ctx context.Context, id string, mutate func(*Season) error) (*Season, error)
	SoftDelete(ctx context.Context, id string) error
}
