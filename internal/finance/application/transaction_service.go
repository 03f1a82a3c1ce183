package application

import (
	"context"

	"github.com/sebuszqo/SeasonLedger/internal/finance/domain"
)

type PersonalTransactionService struct {
	repo domain.TransactionRepository
}

func NewPersonalTransactionService(repo domain.TransactionRepository) *PersonalTransactionService {
	return &PersonalTransactionService{repo: repo}
}

// CreateTransaction stores transaction as given. CategoryID and SeasonID are
// not checked against existing records.
func (s *PersonalTransactionService) CreateTransaction(ctx context.Context, transaction *domain.Transaction) (*domain.TransactionView, error) {
	transaction.RoundToTwoDecimalPlaces()
	if err := transaction.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, transaction); err != nil {
		return nil, err
	}
	return s.repo.FindLive(ctx, transaction.ID)
}

// ListTransactions returns the live transactions of one season, or of every
// season when seasonID is empty.
func (s *PersonalTransactionService) ListTransactions(ctx context.Context, seasonID string) ([]domain.TransactionView, error) {
	transactions, err := s.repo.ListLive(ctx, seasonID)
	if err != nil {
		return nil, err
	}
	if transactions == nil {
		return []domain.TransactionView{}, nil
	}
	return transactions, nil
}

func (s *PersonalTransactionService) GetTransaction(ctx context.Context, id string) (*domain.TransactionView, error) {
	return s.repo.FindLive(ctx, id)
}

func (s *PersonalTransactionService) UpdateTransaction(ctx context.Context, id string, patch domain.TransactionPatch) (*domain.TransactionView, error) {
	_, err := s.repo.Update(ctx, id, func(transaction *domain.Transaction) error {
		patch.ApplyTo(transaction)
		transaction.RoundToTwoDecimalPlaces()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.repo.FindLive(ctx, id)
}

func (s *PersonalTransactionService) DeleteTransaction(ctx context.Context, id string) error {
	return s.repo.SoftDelete(ctx, id)
}
