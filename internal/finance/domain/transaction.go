package domain

import (
	"context"
	"time"
	"unicode/utf8"

	"github.com/sebuszqo/SeasonLedger/internal/finance/errors"
	"github.com/shopspring/decimal"
)

type TransactionKind string

const (
	KindIncome  TransactionKind = "income"
	KindExpense TransactionKind = "expense"
)

const maxDescriptionLength = 500

// maxAmount is the largest value the amount column can hold.
var maxAmount = decimal.RequireFromString("999999999999.99")

func IsValidTransactionType(kind TransactionKind) bool {
	return kind == KindIncome || kind == KindExpense
}

// Transaction is a single ledger entry. CategoryID and SeasonID are plain
// references: they are stored as given and may point at records that were
// never created or were soft-deleted since.
type Transaction struct {
	Record
	Amount      decimal.Decimal `json:"amount"`
	Date        string          `json:"date"`
	Time        string          `json:"time"`
	Description *string         `json:"description"`
	Kind        TransactionKind `json:"kind"`
	CategoryID  *string         `json:"categoryId"`
	SeasonID    *string         `json:"seasonId"`
}

// TransactionView is a transaction with its category and season resolved at
// read time. A referenced record is included even when it is soft-deleted;
// a dangling reference resolves to nil.
type TransactionView struct {
	Transaction
	Category *Category `json:"category"`
	Season   *Season   `json:"season"`
}

// TransactionPatch carries the fields of a partial transaction update.
type TransactionPatch struct {
	Amount      *decimal.Decimal
	Date        *string
	Time        *string
	Kind        *TransactionKind
	Description Nullable[string]
	CategoryID  Nullable[string]
	SeasonID    Nullable[string]
}

func (p TransactionPatch) ApplyTo(t *Transaction) {
	if p.Amount != nil {
		t.Amount = *p.Amount
	}
	if p.Date != nil {
		t.Date = *p.Date
	}
	if p.Time != nil {
		t.Time = *p.Time
	}
	if p.Kind != nil {
		t.Kind = *p.Kind
	}
	p.Description.Apply(&t.Description)
	p.CategoryID.Apply(&t.CategoryID)
	p.SeasonID.Apply(&t.SeasonID)
}

// RoundToTwoDecimalPlaces matches the precision of the amount column, so a
// value that would be stored as zero is rejected by Validate.
func (t *Transaction) RoundToTwoDecimalPlaces() {
	t.Amount = t.Amount.Round(2)
}

func (t *Transaction) Validate() error {
	if !t.Amount.IsPositive() {
		return errors.ErrInvalidAmount
	}
	if t.Amount.GreaterThan(maxAmount) {
		return errors.ErrAmountTooLarge
	}
	if !IsValidTransactionType(t.Kind) {
		return errors.ErrInvalidKind
	}
	if t.Date == "" {
		return errors.ErrMissingDate
	}
	if _, err := time.Parse("2006-01-02", t.Date); err != nil {
		return errors.ErrInvalidDate
	}
	if t.Time == "" {
		return errors.ErrMissingTime
	}
	if !isValidTimeOfDay(t.Time) {
		return errors.ErrInvalidTime
	}
	if t.Description != nil && utf8.RuneCountInString(*t.Description) > maxDescriptionLength {
		return errors.ErrDescriptionSize
	}
	for _, value := range []*string{t.Description, t.CategoryID, t.SeasonID} {
		if value != nil && containsNul(*value) {
			return errors.ErrNulCharacter
		}
	}
	return nil
}

func isValidTimeOfDay(value string) bool {
	for _, layout := range []string{"15:04", "15:04:05"} {
		if _, err := time.Parse(layout, value); err == nil {
			return true
		}
	}
	return false
}

type TransactionRepository interface {
	Create(ctx context.Context, transaction *Transaction) error
	FindLive(ctx context.Context, id string) (*TransactionView, error)
	ListLive(ctx context.Context, seasonID string) ([]TransactionView, error)
	Update(ctx context.Context, id string, mutate func(*Transaction) error) (*Transaction, error)
	SoftDelete(ctx context.Context, id string) error
}
