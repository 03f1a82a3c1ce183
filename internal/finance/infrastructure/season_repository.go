package infrastructure

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sebuszqo/SeasonLedger/internal/finance/domain"
)

// seasonActivationLock is the advisory lock key serializing every transaction
// that ends with an active season.
const seasonActivationLock int64 = 7_305_001

var seasonSchema = Schema[domain.Season]{
	Table:   "seasons",
	Columns: []string{"name", "active"},
	OrderBy: "created_at, id",
	Fields: func(s *domain.Season) []any {
		return []any{&s.Name, &s.Active}
	},
	Values: func(s *domain.Season) []any {
		return []any{s.Name, s.Active}
	},
}

type SeasonRepository struct {
	store *RecordStore[domain.Season, *domain.Season]
}

func NewSeasonRepository(db *sql.DB) *SeasonRepository {
	return &SeasonRepository{store: NewRecordStore[domain.Season, *domain.Season](db, seasonSchema)}
}

// Create inserts the season. An active season is inserted in the same
// transaction that demotes every other live active season.
func (r *SeasonRepository) Create(ctx context.Context, season *domain.Season) error {
	if !season.Active {
		return r.store.Create(ctx, season)
	}
	return r.store.WithTx(ctx, func(tx *sql.Tx) error {
		if err := lockSeasonActivation(ctx, tx); err != nil {
			return err
		}
		if err := demoteActiveSeasons(ctx, tx); err != nil {
			return err
		}
		return r.store.insert(ctx, tx, season)
	})
}

func (r *SeasonRepository) FindLive(ctx context.Context, id string) (*domain.Season, error) {
	return r.store.GetLive(ctx, id)
}

func (r *SeasonRepository) ListLive(ctx context.Context) ([]domain.Season, error) {
	return r.store.ListLive(ctx)
}

// Update is a plain field update and must not be used to activate a season.
func (r *SeasonRepository) Update(ctx context.Context, id string, mutate func(*domain.Season) error) (*domain.Season, error) {
	return r.store.Update(ctx, id, mutate)
}

// Activate applies mutate and marks the season active. The advisory lock, the
// demotion of all live seasons and the write of the target commit or roll
// back together; an unknown or deleted id aborts before anything changes.
func (r *SeasonRepository) Activate(ctx context.Context, id string, mutate func(*domain.Season) error) (*domain.Season, error) {
	var activated *domain.Season
	err := r.store.WithTx(ctx, func(tx *sql.Tx) error {
		if err := lockSeasonActivation(ctx, tx); err != nil {
			return err
		}
		if _, err := r.store.lockLive(ctx, tx, id); err != nil {
			return err
		}
		if err := demoteActiveSeasons(ctx, tx); err != nil {
			return err
		}
		season, err := r.store.updateTx(ctx, tx, id, func(s *domain.Season) error {
			if mutate != nil {
				if err := mutate(s); err != nil {
					return err
				}
			}
			s.Active = true
			return nil
		})
		if err != nil {
			return err
		}
		activated = season
		return nil
	})
	if err != nil {
		return nil, err
	}
	return activated, nil
}

func (r *SeasonRepository) SoftDelete(ctx context.Context, id string) error {
	return r.store.SoftDelete(ctx, id)
}

func lockSeasonActivation(ctx context.Context, tx *sql.Tx) error {
	if _, err := tx.ExecContext(ctx, "SELECT pg_advisory_xact_lock($1)", seasonActivationLock); err != nil {
		return fmt.Errorf("could not acquire season activation lock: %w", err)
	}
	return nil
}

func demoteActiveSeasons(ctx context.Context, tx *sql.Tx) error {
	if _, err := tx.ExecContext(ctx, "UPDATE seasons SET active = FALSE WHERE active AND deleted_at IS NULL"); err != nil {
		return fmt.Errorf("could not demote active seasons: %w", err)
	}
	return nil
}
