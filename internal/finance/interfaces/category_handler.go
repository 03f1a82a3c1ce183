package interfaces

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/sebuszqo/SeasonLedger/internal/finance/domain"
	"github.com/sebuszqo/SeasonLedger/internal/log"
)

const CategoryNotFoundMessage = "Category not found"

type CategoryServiceInterface interface {
	ListCategories(ctx context.Context) ([]domain.Category, error)
	GetCategory(ctx context.Context, id string) (*domain.Category, error)
	CreateCategory(ctx context.Context, name string) (*domain.Category, error)
	UpdateCategory(ctx context.Context, id string, name *string) (*domain.Category, error)
	DeleteCategory(ctx context.Context, id string) error
}

type CategoryHandler struct {
	service      CategoryServiceInterface
	respondJSON  func(w http.ResponseWriter, status int, payload interface{})
	respondError func(w http.ResponseWriter, status int, message string)
}

func NewCategoryHandler(
	service CategoryServiceInterface,
	respondJSON func(w http.ResponseWriter, status int, payload interface{}),
	respondError func(w http.ResponseWriter, status int, message string),
) *CategoryHandler {
	mustHaveDependencies(service, respondJSON, respondError)
	return &CategoryHandler{
		service:      service,
		respondJSON:  respondJSON,
		respondError: respondError,
	}
}

type categoryRequest struct {
	Name *string `json:"name"`
}

func (h *CategoryHandler) GetCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.ListCategories(r.Context())
	if err != nil {
		respondServiceError(w, r, h.respondError, log.ComponentCategory, log.OpList, err, CategoryNotFoundMessage, "Failed to retrieve categories")
		return
	}
	h.respondJSON(w, http.StatusOK, categories)
}

func (h *CategoryHandler) GetCategory(w http.ResponseWriter, r *http.Request) {
	category, err := h.service.GetCategory(r.Context(), r.PathValue("id"))
	if err != nil {
		respondServiceError(w, r, h.respondError, log.ComponentCategory, log.OpRead, err, CategoryNotFoundMessage, "Failed to retrieve category")
		return
	}
	h.respondJSON(w, http.StatusOK, category)
}

func (h *CategoryHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Name == nil {
		h.respondError(w, http.StatusBadRequest, "Name is required")
		return
	}

	category, err := h.service.CreateCategory(r.Context(), *req.Name)
	if err != nil {
		respondServiceError(w, r, h.respondError, log.ComponentCategory, log.OpCreate, err, CategoryNotFoundMessage, "Failed to create category")
		return
	}
	h.respondJSON(w, http.StatusCreated, category)
}

func (h *CategoryHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	category, err := h.service.UpdateCategory(r.Context(), r.PathValue("id"), req.Name)
	if err != nil {
		respondServiceError(w, r, h.respondError, log.ComponentCategory, log.OpUpdate, err, CategoryNotFoundMessage, "Failed to update category")
		return
	}
	h.respondJSON(w, http.StatusOK, category)
}

func (h *CategoryHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteCategory(r.Context(), r.PathValue("id")); err != nil {
		respondServiceError(w, r, h.respondError, log.ComponentCategory, log.OpDelete, err, CategoryNotFoundMessage, "Failed to delete category")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
