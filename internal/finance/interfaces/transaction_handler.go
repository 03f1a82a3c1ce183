package interfaces

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/sebuszqo/SeasonLedger/internal/finance/domain"
	"github.com/sebuszqo/SeasonLedger/internal/log"
	"github.com/shopspring/decimal"
)

const TransactionNotFoundMessage = "Transaction not found"

type TransactionServiceInterface interface {
	CreateTransaction(ctx context.Context, transaction *domain.Transaction) (*domain.TransactionView, error)
	ListTransactions(ctx context.Context, seasonID string) ([]domain.TransactionView, error)
	GetTransaction(ctx context.Context, id string) (*domain.TransactionView, error)
	UpdateTransaction(ctx context.Context, id string, patch domain.TransactionPatch) (*domain.TransactionView, error)
	DeleteTransaction(ctx context.Context, id string) error
}

type PersonalTransactionHandler struct {
	service      TransactionServiceInterface
	respondJSON  func(w http.ResponseWriter, status int, payload interface{})
	respondError func(w http.ResponseWriter, status int, message string)
}

func NewPersonalTransactionHandler(
	service TransactionServiceInterface,
	respondJSON func(w http.ResponseWriter, status int, payload interface{}),
	respondError func(w http.ResponseWriter, status int, message string),
) *PersonalTransactionHandler {
	mustHaveDependencies(service, respondJSON, respondError)
	return &PersonalTransactionHandler{
		service:      service,
		respondJSON:  respondJSON,
		respondError: respondError,
	}
}

type createTransactionRequest struct {
	Amount      decimal.Decimal        `json:"amount"`
	Date        string                 `json:"date"`
	Time        string                 `json:"time"`
	Description *string                `json:"description"`
	Kind        domain.TransactionKind `json:"kind"`
	CategoryID  *string                `json:"categoryId"`
	SeasonID    *string                `json:"seasonId"`
}

// updateTransactionRequest tells an omitted field apart from an explicit null
// for the nullable columns.
type updateTransactionRequest struct {
	Amount      *decimal.Decimal        `json:"amount"`
	Date        *string                 `json:"date"`
	Time        *string                 `json:"time"`
	Kind        *domain.TransactionKind `json:"kind"`
	Description domain.Nullable[string] `json:"description"`
	CategoryID  domain.Nullable[string] `json:"categoryId"`
	SeasonID    domain.Nullable[string] `json:"seasonId"`
}

func (h *PersonalTransactionHandler) GetTransactions(w http.ResponseWriter, r *http.Request) {
	transactions, err := h.service.ListTransactions(r.Context(), r.URL.Query().Get("seasonId"))
	if err != nil {
		respondServiceError(w, r, h.respondError, log.ComponentTransaction, log.OpList, err, TransactionNotFoundMessage, "Failed to retrieve transactions")
		return
	}
	h.respondJSON(w, http.StatusOK, transactions)
}

func (h *PersonalTransactionHandler) GetTransaction(w http.ResponseWriter, r *http.Request) {
	transaction, err := h.service.GetTransaction(r.Context(), r.PathValue("id"))
	if err != nil {
		respondServiceError(w, r, h.respondError, log.ComponentTransaction, log.OpRead, err, TransactionNotFoundMessage, "Failed to retrieve transaction")
		return
	}
	h.respondJSON(w, http.StatusOK, transaction)
}

func (h *PersonalTransactionHandler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req createTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	transaction, err := h.service.CreateTransaction(r.Context(), &domain.Transaction{
		Amount:      req.Amount,
		Date:        req.Date,
		Time:        req.Time,
		Description: req.Description,
		Kind:        req.Kind,
		CategoryID:  req.CategoryID,
		SeasonID:    req.SeasonID,
	})
	if err != nil {
		respondServiceError(w, r, h.respondError, log.ComponentTransaction, log.OpCreate, err, TransactionNotFoundMessage, "Failed to create transaction")
		return
	}
	h.respondJSON(w, http.StatusCreated, transaction)
}

func (h *PersonalTransactionHandler) UpdateTransaction(w http.ResponseWriter, r *http.Request) {
	var req updateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	transaction, err := h.service.UpdateTransaction(r.Context(), r.PathValue("id"), domain.TransactionPatch{
		Amount:      req.Amount,
		Date:        req.Date,
		Time:        req.Time,
		Kind:        req.Kind,
		Description: req.Description,
		CategoryID:  req.CategoryID,
		SeasonID:    req.SeasonID,
	})
	if err != nil {
		respondServiceError(w, r, h.respondError, log.ComponentTransaction, log.OpUpdate, err, TransactionNotFoundMessage, "Failed to update transaction")
		return
	}
	h.respondJSON(w, http.StatusOK, transaction)
}

func (h *PersonalTransactionHandler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteTransaction(r.Context(), r.PathValue("id")); err != nil {
		respondServiceError(w, r, h.respondError, log.ComponentTransaction, log.OpDelete, err, TransactionNotFoundMessage, "Failed to delete transaction")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
