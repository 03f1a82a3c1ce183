package application

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sebuszqo/SeasonLedger/internal/finance/domain"
	financeErrors "github.com/sebuszqo/SeasonLedger/internal/finance/errors"
)

// memoryTable is a soft-delete table kept in memory. It mirrors the
// create/update/delete rules of the postgres record store.
type memoryTable[T any, PT interface {
	*T
	Meta() *domain.Record
	Validate() error
}] struct {
	mu      sync.Mutex
	records map[string]*T
	order   []string
}

func newMemoryTable[T any, PT interface {
	*T
	Meta() *domain.Record
	Validate() error
}]() *memoryTable[T, PT] {
	return &memoryTable[T, PT]{records: map[string]*T{}}
}

func (m *memoryTable[T, PT]) create(record PT) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.createLocked(record)
}

func (m *memoryTable[T, PT]) createLocked(record PT) error {
	if err := record.Validate(); err != nil {
		return err
	}
	meta := record.Meta()
	meta.ID = uuid.NewString()
	meta.CreatedAt = time.Now().UTC()
	meta.DeletedAt = nil
	copied := *(*T)(record)
	m.records[meta.ID] = &copied
	m.order = append(m.order, meta.ID)
	return nil
}

func (m *memoryTable[T, PT]) findLocked(id string) (PT, error) {
	record, ok := m.records[id]
	if !ok || PT(record).Meta().DeletedAt != nil {
		return nil, fmt.Errorf("record %q: %w", id, financeErrors.ErrNotFound)
	}
	copied := *record
	return PT(&copied), nil
}

func (m *memoryTable[T, PT]) find(id string) (PT, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.findLocked(id)
}

func (m *memoryTable[T, PT]) list() []T {
	m.mu.Lock()
	defer m.mu.Unlock()
	records := []T{}
	for _, id := range m.order {
		if record := m.records[id]; PT(record).Meta().DeletedAt == nil {
			records = append(records, *record)
		}
	}
	return records
}

func (m *memoryTable[T, PT]) updateLocked(id string, mutate func(PT) error) (PT, error) {
	record, err := m.findLocked(id)
	if err != nil {
		return nil, err
	}
	if mutate != nil {
		if err := mutate(record); err != nil {
			return nil, err
		}
	}
	record.Meta().ID = id
	record.Meta().DeletedAt = nil
	if err := record.Validate(); err != nil {
		return nil, err
	}
	copied := *(*T)(record)
	m.records[id] = &copied
	return record, nil
}

func (m *memoryTable[T, PT]) update(id string, mutate func(PT) error) (PT, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.updateLocked(id, mutate)
}

func (m *memoryTable[T, PT]) softDelete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	record, ok := m.records[id]
	if !ok || PT(record).Meta().DeletedAt != nil {
		return fmt.Errorf("record %q: %w", id, financeErrors.ErrNotFound)
	}
	now := time.Now().UTC()
	PT(record).Meta().DeletedAt = &now
	return nil
}

type MockCategoryRepository struct {
	table *memoryTable[domain.Category, *domain.Category]
}

func newMockCategoryRepository() *MockCategoryRepository {
	return &MockCategoryRepository{table: newMemoryTable[domain.Category, *domain.Category]()}
}

func (m *MockCategoryRepository) Create(_ context.Context, category *domain.Category) error {
	return m.table.create(category)
}

func (m *MockCategoryRepository) FindLive(_ context.Context, id string) (*domain.Category, error) {
	return m.table.find(id)
}

func (m *MockCategoryRepository) ListLive(context.Context) ([]domain.Category, error) {
	categories := m.table.list()
	sort.SliceStable(categories, func(i, j int) bool { return categories[i].Name < categories[j].Name })
	return categories, nil
}

func (m *MockCategoryRepository) Update(_ context.Context, id string, mutate func(*domain.Category) error) (*domain.Category, error) {
	return m.table.update(id, mutate)
}

func (m *MockCategoryRepository) SoftDelete(_ context.Context, id string) error {
	return m.table.softDelete(id)
}

// MockSeasonRepository keeps the single-active rule by demoting under the
// table lock, the way the postgres repository does inside one transaction.
type MockSeasonRepository struct {
	table       *memoryTable[domain.Season, *domain.Season]
	activations int
	updates     int
}

func newMockSeasonRepository() *MockSeasonRepository {
	return &MockSeasonRepository{table: newMemoryTable[domain.Season, *domain.Season]()}
}

func (m *MockSeasonRepository) demoteLocked() {
	for _, record := range m.table.records {
		if record.DeletedAt == nil {
			record.Active = false
		}
	}
}

func (m *MockSeasonRepository) Create(_ context.Context, season *domain.Season) error {
	m.table.mu.Lock()
	defer m.table.mu.Unlock()
	if season.Active {
		if err := season.Validate(); err != nil {
			return err
		}
		m.demoteLocked()
	}
	return m.table.createLocked(season)
}

func (m *MockSeasonRepository) FindLive(_ context.Context, id string) (*domain.Season, error) {
	return m.table.find(id)
}

func (m *MockSeasonRepository) ListLive(context.Context) ([]domain.Season, error) {
	return m.table.list(), nil
}

func (m *MockSeasonRepository) Update(_ context.Context, id string, mutate func(*domain.Season) error) (*domain.Season, error) {
	m.table.mu.Lock()
	defer m.table.mu.Unlock()
	m.updates++
	return m.table.updateLocked(id, mutate)
}

func (m *MockSeasonRepository) Activate(_ context.Context, id string, mutate func(*domain.Season) error) (*domain.Season, error) {
	m.table.mu.Lock()
	defer m.table.mu.Unlock()
	m.activations++

	if _, err := m.table.findLocked(id); err != nil {
		return nil, err
	}
	snapshot := map[string]domain.Season{}
	for key, record := range m.table.records {
		snapshot[key] = *record
	}

	m.demoteLocked()
	season, err := m.table.updateLocked(id, func(s *domain.Season) error {
		if mutate != nil {
			if err := mutate(s); err != nil {
				return err
			}
		}
		s.Active = true
		return nil
	})
	if err != nil {
		for key, record := range snapshot {
			restored := record
			m.table.records[key] = &restored
		}
		return nil, err
	}
	return season, nil
}

func (m *MockSeasonRepository) SoftDelete(_ context.Context, id string) error {
	return m.table.softDelete(id)
}

func (m *MockSeasonRepository) activeCount() int {
	count := 0
	for _, season := range m.table.list() {
		if season.Active {
			count++
		}
	}
	return count
}

type MockTransactionRepository struct {
	table      *memoryTable[domain.Transaction, *domain.Transaction]
	categories *MockCategoryRepository
	seasons    *MockSeasonRepository
	creates    int
}

func newMockTransactionRepository(categories *MockCategoryRepository, seasons *MockSeasonRepository) *MockTransactionRepository {
	return &MockTransactionRepository{
		table:      newMemoryTable[domain.Transaction, *domain.Transaction](),
		categories: categories,
		seasons:    seasons,
	}
}

func (m *MockTransactionRepository) Create(_ context.Context, transaction *domain.Transaction) error {
	m.creates++
	return m.table.create(transaction)
}

func (m *MockTransactionRepository) view(transaction domain.Transaction) domain.TransactionView {
	view := domain.TransactionView{Transaction: transaction}
	if transaction.CategoryID != nil {
		if category, ok := m.categories.table.records[*transaction.CategoryID]; ok {
			copied := *category
			view.Category = &copied
		}
	}
	if transaction.SeasonID != nil {
		if season, ok := m.seasons.table.records[*transaction.SeasonID]; ok {
			copied := *season
			view.Season = &copied
		}
	}
	return view
}

func (m *MockTransactionRepository) FindLive(_ context.Context, id string) (*domain.TransactionView, error) {
	transaction, err := m.table.find(id)
	if err != nil {
		return nil, err
	}
	view := m.view(*transaction)
	return &view, nil
}

func (m *MockTransactionRepository) ListLive(_ context.Context, seasonID string) ([]domain.TransactionView, error) {
	var views []domain.TransactionView
	for _, transaction := range m.table.list() {
		if seasonID != "" && (transaction.SeasonID == nil || *transaction.SeasonID != seasonID) {
			continue
		}
		views = append(views, m.view(transaction))
	}
	return views, nil
}

func (m *MockTransactionRepository) Update(_ context.Context, id string, mutate func(*domain.Transaction) error) (*domain.Transaction, error) {
	return m.table.update(id, mutate)
}

func (m *MockTransactionRepository) SoftDelete(_ context.Context, id string) error {
	return m.table.softDelete(id)
}
