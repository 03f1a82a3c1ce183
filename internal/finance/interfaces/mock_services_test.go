package interfaces

import (
	"context"
	"errors"

	"github.com/sebuszqo/SeasonLedger/internal/finance/domain"
	financeErrors "github.com/sebuszqo/SeasonLedger/internal/finance/errors"
)

var errServiceFailure = errors.New("connection reset")

type MockCategoryService struct {
	categories []domain.Category
	err        error
	lastName   *string
}

func (m *MockCategoryService) ListCategories(context.Context) ([]domain.Category, error) {
	return m.categories, m.err
}

func (m *MockCategoryService) GetCategory(_ context.Context, id string) (*domain.Category, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, category := range m.categories {
		if category.ID == id {
			return &category, nil
		}
	}
	return nil, financeErrors.ErrNotFound
}

func (m *MockCategoryService) CreateCategory(_ context.Context, name string) (*domain.Category, error) {
	if m.err != nil {
		return nil, m.err
	}
	category := domain.Category{Record: domain.Record{ID: "11111111-1111-1111-1111-111111111111"}, Name: name}
	if err := category.Validate(); err != nil {
		return nil, err
	}
	return &category, nil
}

func (m *MockCategoryService) UpdateCategory(ctx context.Context, id string, name *string) (*domain.Category, error) {
	m.lastName = name
	category, err := m.GetCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	if name != nil {
		category.Name = *name
	}
	return category, nil
}

func (m *MockCategoryService) DeleteCategory(ctx context.Context, id string) error {
	_, err := m.GetCategory(ctx, id)
	return err
}

type MockSeasonService struct {
	season      *domain.Season
	err         error
	lastActive  *bool
	lastPatch   domain.SeasonPatch
	activatedID string
}

func (m *MockSeasonService) ListSeasons(context.Context) ([]domain.Season, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.season == nil {
		return []domain.Season{}, nil
	}
	return []domain.Season{*m.season}, nil
}

func (m *MockSeasonService) GetSeason(context.Context, string) (*domain.Season, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.season == nil {
		return nil, financeErrors.ErrNotFound
	}
	return m.season, nil
}

func (m *MockSeasonService) CreateSeason(_ context.Context, name string, active *bool) (*domain.Season, error) {
	m.lastActive = active
	if m.err != nil {
		return nil, m.err
	}
	return &domain.Season{Name: name, Active: active != nil && *active}, nil
}

func (m *MockSeasonService) UpdateSeason(ctx context.Context, id string, patch domain.SeasonPatch) (*domain.Season, error) {
	m.lastPatch = patch
	return m.GetSeason(ctx, id)
}

func (m *MockSeasonService) ActivateSeason(ctx context.Context, id string) (*domain.Season, error) {
	m.activatedID = id
	season, err := m.GetSeason(ctx, id)
	if err != nil {
		return nil, err
	}
	season.Active = true
	return season, nil
}

func (m *MockSeasonService) DeleteSeason(ctx context.Context, id string) error {
	_, err := m.GetSeason(ctx, id)
	return err
}

type MockTransactionService struct {
	view         *domain.TransactionView
	err          error
	lastSeasonID string
	lastCreated  *domain.Transaction
	lastPatch    domain.TransactionPatch
}

func (m *MockTransactionService) CreateTransaction(_ context.Context, transaction *domain.Transaction) (*domain.TransactionView, error) {
	m.lastCreated = transaction
	if m.err != nil {
		return nil, m.err
	}
	transaction.RoundToTwoDecimalPlaces()
	if err := transaction.Validate(); err != nil {
		return nil, err
	}
	return &domain.TransactionView{Transaction: *transaction}, nil
}

func (m *MockTransactionService) ListTransactions(_ context.Context, seasonID string) ([]domain.TransactionView, error) {
	m.lastSeasonID = seasonID
	if m.err != nil {
		return nil, m.err
	}
	if m.view == nil {
		return []domain.TransactionView{}, nil
	}
	return []domain.TransactionView{*m.view}, nil
}

func (m *MockTransactionService) GetTransaction(context.Context, string) (*domain.TransactionView, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.view == nil {
		return nil, financeErrors.ErrNotFound
	}
	return m.view, nil
}

func (m *MockTransactionService) UpdateTransaction(ctx context.Context, id string, patch domain.TransactionPatch) (*domain.TransactionView, error) {
	m.lastPatch = patch
	return m.GetTransaction(ctx, id)
}

func (m *MockTransactionService) DeleteTransaction(ctx context.Context, id string) error {
	_, err := m.GetTransaction(ctx, id)
	return err
}
