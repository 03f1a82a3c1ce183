package infrastructure

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/sebuszqo/SeasonLedger/internal/finance/domain"
	financeErrors "github.com/sebuszqo/SeasonLedger/internal/finance/errors"
)

var transactionSchema = Schema[domain.Transaction]{
	Table:   "transactions",
	Columns: []string{"amount", "date", "time", "description", "kind", "category_id", "season_id"},
	OrderBy: "date DESC, time DESC, created_at DESC",
	Fields: func(t *domain.Transaction) []any {
		return []any{&t.Amount, &t.Date, &t.Time, &t.Description, &t.Kind, &t.CategoryID, &t.SeasonID}
	},
	Values: func(t *domain.Transaction) []any {
		return []any{t.Amount, t.Date, t.Time, t.Description, string(t.Kind), t.CategoryID, t.SeasonID}
	},
}

// The joins ignore deleted_at on purpose: a transaction keeps showing the
// category and season it was filed under after they are soft-deleted.
const transactionViewQuery = `
	SELECT t.id, t.amount, t.date, t.time, t.description, t.kind, t.category_id, t.season_id, t.created_at, t.deleted_at,
	       c.id, c.name, c.created_at, c.deleted_at,
	       s.id, s.name, s.active, s.created_at, s.deleted_at
	FROM transactions t
	LEFT JOIN categories c ON c.id = t.category_id
	LEFT JOIN seasons s ON s.id = t.season_id
	WHERE t.deleted_at IS NULL`

type PersonalTransactionRepository struct {
	db    *sql.DB
	store *RecordStore[domain.Transaction, *domain.Transaction]
}

func NewPersonalTransactionRepository(db *sql.DB) *PersonalTransactionRepository {
	return &PersonalTransactionRepository{
		db:    db,
		store: NewRecordStore[domain.Transaction, *domain.Transaction](db, transactionSchema),
	}
}

func (r *PersonalTransactionRepository) Create(ctx context.Context, transaction *domain.Transaction) error {
	return r.store.Create(ctx, transaction)
}

func (r *PersonalTransactionRepository) FindLive(ctx context.Context, id string) (*domain.TransactionView, error) {
	row := r.db.QueryRowContext(ctx, transactionViewQuery+" AND t.id = $1", id)
	view, err := scanTransactionView(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("transactions %q: %w", id, financeErrors.ErrNotFound)
		}
		return nil, fmt.Errorf("could not query transactions: %w", err)
	}
	return view, nil
}

func (r *PersonalTransactionRepository) ListLive(ctx context.Context, seasonID string) ([]domain.TransactionView, error) {
	query := transactionViewQuery
	var args []any
	if seasonID != "" {
		query += " AND t.season_id = $1"
		args = append(args, seasonID)
	}
	query += " ORDER BY t.date DESC, t.time DESC, t.created_at DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("could not list transactions: %w", err)
	}
	defer rows.Close()

	transactions := []domain.TransactionView{}
	for rows.Next() {
		view, err := scanTransactionView(rows)
		if err != nil {
			return nil, fmt.Errorf("could not scan transaction: %w", err)
		}
		transactions = append(transactions, *view)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("could not list transactions: %w", err)
	}
	return transactions, nil
}

func (r *PersonalTransactionRepository) Update(ctx context.Context, id string, mutate func(*domain.Transaction) error) (*domain.Transaction, error) {
	return r.store.Update(ctx, id, mutate)
}

func (r *PersonalTransactionRepository) SoftDelete(ctx context.Context, id string) error {
	return r.store.SoftDelete(ctx, id)
}

func scanTransactionView(row rowScanner) (*domain.TransactionView, error) {
	var (
		view domain.TransactionView
		t    = &view.Transaction

		categoryID, categoryName         sql.NullString
		categoryCreatedAt, categoryDelAt sql.NullTime

		seasonID, seasonName         sql.NullString
		seasonActive                 sql.NullBool
		seasonCreatedAt, seasonDelAt sql.NullTime
	)

	err := row.Scan(
		&t.ID, &t.Amount, &t.Date, &t.Time, &t.Description, &t.Kind, &t.CategoryID, &t.SeasonID, &t.CreatedAt, &t.DeletedAt,
		&categoryID, &categoryName, &categoryCreatedAt, &categoryDelAt,
		&seasonID, &seasonName, &seasonActive, &seasonCreatedAt, &seasonDelAt,
	)
	if err != nil {
		return nil, err
	}

	if categoryID.Valid {
		view.Category = &domain.Category{
			Record: domain.Record{ID: categoryID.String, CreatedAt: categoryCreatedAt.Time, DeletedAt: nullTimePtr(categoryDelAt)},
			Name:   categoryName.String,
		}
	}
	if seasonID.Valid {
		view.Season = &domain.Season{
			Record: domain.Record{ID: seasonID.String, CreatedAt: seasonCreatedAt.Time, DeletedAt: nullTimePtr(seasonDelAt)},
			Name:   seasonName.String,
			Active: seasonActive.Bool,
		}
	}
	return &view, nil
}

func nullTimePtr(value sql.NullTime) *time.Time {
	if !value.Valid {
		return nil
	}
	t := value.Time
	return &t
}
