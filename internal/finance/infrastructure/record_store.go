package infrastructure

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sebuszqo/SeasonLedger/internal/finance/domain"
	financeErrors "github.com/sebuszqo/SeasonLedger/internal/finance/errors"
)

type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type rowScanner interface {
	Scan(dest ...any) error
}

// Entity is the pointer type of a soft-deletable domain record.
type Entity[T any] interface {
	*T
	Meta() *domain.Record
	Validate() error
}

// Schema maps an entity onto its table. Columns lists the mutable columns;
// Fields returns scan targets and Values returns write arguments, both in
// Columns order. id, created_at and deleted_at are handled by the store.
type Schema[T any] struct {
	Table   string
	Columns []string
	OrderBy string
	Fields  func(*T) []any
	Values  func(*T) []any
}

// Filter is an equality condition on one column of a live listing.
type Filter struct {
	Column string
	Value  any
}

// RecordStore implements create, live lookup, listing, partial update and
// soft delete once for every entity table.
type RecordStore[T any, PT Entity[T]] struct {
	db     *sql.DB
	schema Schema[T]
	now    func() time.Time
	newID  func() string
}

func NewRecordStore[T any, PT Entity[T]](db *sql.DB, schema Schema[T]) *RecordStore[T, PT] {
	return &RecordStore[T, PT]{
		db:     db,
		schema: schema,
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

func (s *RecordStore[T, PT]) selectColumns() string {
	columns := make([]string, 0, len(s.schema.Columns)+3)
	columns = append(columns, "id")
	columns = append(columns, s.schema.Columns...)
	columns = append(columns, "created_at", "deleted_at")
	return strings.Join(columns, ", ")
}

func (s *RecordStore[T, PT]) scan(row rowScanner) (PT, error) {
	record := PT(new(T))
	meta := record.Meta()

	dest := make([]any, 0, len(s.schema.Columns)+3)
	dest = append(dest, &meta.ID)
	dest = append(dest, s.schema.Fields((*T)(record))...)
	dest = append(dest, &meta.CreatedAt, &meta.DeletedAt)

	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return record, nil
}

func (s *RecordStore[T, PT]) notFound(id string) error {
	return fmt.Errorf("%s %q: %w", s.schema.Table, id, financeErrors.ErrNotFound)
}

// Create validates the record, assigns its id and creation time and inserts it.
// Nothing is written when validation fails.
func (s *RecordStore[T, PT]) Create(ctx context.Context, record PT) error {
	return s.insert(ctx, s.db, record)
}

func (s *RecordStore[T, PT]) insert(ctx context.Context, q querier, record PT) error {
	if err := record.Validate(); err != nil {
		return err
	}

	meta := record.Meta()
	meta.ID = s.newID()
	meta.CreatedAt = s.now().UTC()
	meta.DeletedAt = nil

	columns := make([]string, 0, len(s.schema.Columns)+2)
	columns = append(columns, "id")
	columns = append(columns, s.schema.Columns...)
	columns = append(columns, "created_at")

	args := make([]any, 0, len(columns))
	args = append(args, meta.ID)
	args = append(args, s.schema.Values((*T)(record))...)
	args = append(args, meta.CreatedAt)

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		s.schema.Table, strings.Join(columns, ", "), placeholders(1, len(columns)))

	if _, err := q.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("could not insert into %s: %w", s.schema.Table, err)
	}
	return nil
}

// GetLive returns the record only while it is not soft-deleted.
func (s *RecordStore[T, PT]) GetLive(ctx context.Context, id string) (PT, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = $1 AND deleted_at IS NULL", s.selectColumns(), s.schema.Table)
	return s.getOne(ctx, s.db, query, id)
}

// Get returns the record regardless of its deletion state. It backs internal
// inspection only; request paths use GetLive.
func (s *RecordStore[T, PT]) Get(ctx context.Context, id string) (PT, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = $1", s.selectColumns(), s.schema.Table)
	return s.getOne(ctx, s.db, query, id)
}

func (s *RecordStore[T, PT]) lockLive(ctx context.Context, q querier, id string) (PT, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = $1 AND deleted_at IS NULL FOR UPDATE", s.selectColumns(), s.schema.Table)
	return s.getOne(ctx, q, query, id)
}

func (s *RecordStore[T, PT]) getOne(ctx context.Context, q querier, query, id string) (PT, error) {
	record, err := s.scan(q.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, s.notFound(id)
		}
		return nil, fmt.Errorf("could not query %s: %w", s.schema.Table, err)
	}
	return record, nil
}

func (s *RecordStore[T, PT]) ListLive(ctx context.Context, filters ...Filter) ([]T, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE deleted_at IS NULL", s.selectColumns(), s.schema.Table)
	args := make([]any, 0, len(filters))
	for i, filter := range filters {
		query += fmt.Sprintf(" AND %s = $%d", filter.Column, i+1)
		args = append(args, filter.Value)
	}
	if s.schema.OrderBy != "" {
		query += " ORDER BY " + s.schema.OrderBy
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("could not list %s: %w", s.schema.Table, err)
	}
	defer rows.Close()

	records := []T{}
	for rows.Next() {
		record, err := s.scan(rows)
		if err != nil {
			return nil, fmt.Errorf("could not scan %s: %w", s.schema.Table, err)
		}
		records = append(records, *record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("could not list %s: %w", s.schema.Table, err)
	}
	return records, nil
}

// Update applies mutate to the live record and writes the merged result, all
// under a row lock in one transaction. Soft-deleted records are never revived.
func (s *RecordStore[T, PT]) Update(ctx context.Context, id string, mutate func(PT) error) (PT, error) {
	var updated PT
	err := s.WithTx(ctx, func(tx *sql.Tx) error {
		record, err := s.updateTx(ctx, tx, id, mutate)
		if err != nil {
			return err
		}
		updated = record
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *RecordStore[T, PT]) updateTx(ctx context.Context, q querier, id string, mutate func(PT) error) (PT, error) {
	record, err := s.lockLive(ctx, q, id)
	if err != nil {
		return nil, err
	}
	if err := mutate(record); err != nil {
		return nil, err
	}
	// the record keeps its identity whatever mutate did
	meta := record.Meta()
	meta.ID = id
	meta.DeletedAt = nil

	if err := record.Validate(); err != nil {
		return nil, err
	}
	if err := s.write(ctx, q, record); err != nil {
		return nil, err
	}
	return record, nil
}

func (s *RecordStore[T, PT]) write(ctx context.Context, q querier, record PT) error {
	assignments := make([]string, len(s.schema.Columns))
	for i, column := range s.schema.Columns {
		assignments[i] = fmt.Sprintf("%s = $%d", column, i+1)
	}
	args := append(s.schema.Values((*T)(record)), record.Meta().ID)

	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = $%d AND deleted_at IS NULL",
		s.schema.Table, strings.Join(assignments, ", "), len(args))

	result, err := q.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("could not update %s: %w", s.schema.Table, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("could not update %s: %w", s.schema.Table, err)
	}
	if affected == 0 {
		return s.notFound(record.Meta().ID)
	}
	return nil
}

// SoftDelete tombstones a live record. Deleting an id that is unknown or
// already deleted returns ErrNotFound.
func (s *RecordStore[T, PT]) SoftDelete(ctx context.Context, id string) error {
	query := fmt.Sprintf("UPDATE %s SET deleted_at = $1 WHERE id = $2 AND deleted_at IS NULL", s.schema.Table)
	result, err := s.db.ExecContext(ctx, query, s.now().UTC(), id)
	if err != nil {
		return fmt.Errorf("could not delete from %s: %w", s.schema.Table, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("could not delete from %s: %w", s.schema.Table, err)
	}
	if affected == 0 {
		return s.notFound(id)
	}
	return nil
}

// WithTx runs fn in a transaction, committing when it returns nil and rolling
// back on error or panic.
func (s *RecordStore[T, PT]) WithTx(ctx context.Context, fn func(tx *sql.Tx) error) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			safeRollback(tx)
			panic(p)
		} else if err != nil {
			safeRollback(tx)
		} else {
			err = tx.Commit()
		}
	}()
	return fn(tx)
}

func safeRollback(tx *sql.Tx) {
	if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		slog.Error("Error during transaction rollback", "error", err)
	}
}

func placeholders(from, count int) string {
	marks := make([]string, count)
	for i := range marks {
		marks[i] = fmt.Sprintf("$%d", from+i)
	}
	return strings.Join(marks, ", ")
}
