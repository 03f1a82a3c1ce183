package interfaces

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/sebuszqo/SeasonLedger/internal/finance/domain"
	"github.com/sebuszqo/SeasonLedger/internal/log"
)

const SeasonNotFoundMessage = "Season not found"

type SeasonServiceInterface interface {
	ListSeasons(ctx context.Context) ([]domain.Season, error)
	GetSeason(ctx context.Context, id string) (*domain.Season, error)
	CreateSeason(ctx context.Context, name string, active *bool) (*domain.Season, error)
	UpdateSeason(ctx context.Context, id string, patch domain.SeasonPatch) (*domain.Season, error)
	ActivateSeason(ctx context.Context, id string) (*domain.Season, error)
	DeleteSeason(ctx context.Context, id string) error
}

type SeasonHandler struct {
	service      SeasonServiceInterface
	respondJSON  func(w http.ResponseWriter, status int, payload interface{})
	respondError func(w http.ResponseWriter, status int, message string)
}

func NewSeasonHandler(
	service SeasonServiceInterface,
	respondJSON func(w http.ResponseWriter, status int, payload interface{}),
	respondError func(w http.ResponseWriter, status int, message string),
) *SeasonHandler {
	mustHaveDependencies(service, respondJSON, respondError)
	return &SeasonHandler{
		service:      service,
		respondJSON:  respondJSON,
		respondError: respondError,
	}
}

type seasonRequest struct {
	Name   *string `json:"name"`
	Active *bool   `json:"active"`
}

func (h *SeasonHandler) GetSeasons(w http.ResponseWriter, r *http.Request) {
	seasons, err := h.service.ListSeasons(r.Context())
	if err != nil {
		respondServiceError(w, r, h.respondError, log.ComponentSeason, log.OpList, err, SeasonNotFoundMessage, "Failed to retrieve seasons")
		return
	}
	h.respondJSON(w, http.StatusOK, seasons)
}

func (h *SeasonHandler) GetSeason(w http.ResponseWriter, r *http.Request) {
	season, err := h.service.GetSeason(r.Context(), r.PathValue("id"))
	if err != nil {
		respondServiceError(w, r, h.respondError, log.ComponentSeason, log.OpRead, err, SeasonNotFoundMessage, "Failed to retrieve season")
		return
	}
	h.respondJSON(w, http.StatusOK, season)
}

func (h *SeasonHandler) CreateSeason(w http.ResponseWriter, r *http.Request) {
	var req seasonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Name == nil {
		h.respondError(w, http.StatusBadRequest, "Name is required")
		return
	}

	season, err := h.service.CreateSeason(r.Context(), *req.Name, req.Active)
	if err != nil {
		respondServiceError(w, r, h.respondError, log.ComponentSeason, log.OpCreate, err, SeasonNotFoundMessage, "Failed to create season")
		return
	}
	h.respondJSON(w, http.StatusCreated, season)
}

func (h *SeasonHandler) UpdateSeason(w http.ResponseWriter, r *http.Request) {
	var req seasonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	season, err := h.service.UpdateSeason(r.Context(), r.PathValue("id"), domain.SeasonPatch{
		Name:   req.Name,
		Active: req.Active,
	})
	if err != nil {
		respondServiceError(w, r, h.respondError, log.ComponentSeason, log.OpUpdate, err, SeasonNotFoundMessage, "Failed to update season")
		return
	}
	h.respondJSON(w, http.StatusOK, season)
}

func (h *SeasonHandler) ActivateSeason(w http.ResponseWriter, r *http.Request) {
	season, err := h.service.ActivateSeason(r.Context(), r.PathValue("id"))
	if err != nil {
		respondServiceError(w, r, h.respondError, log.ComponentSeason, log.OpActivate, err, SeasonNotFoundMessage, "Failed to activate season")
		return
	}
	h.respondJSON(w, http.StatusOK, season)
}

func (h *SeasonHandler) DeleteSeason(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteSeason(r.Context(), r.PathValue("id")); err != nil {
		respondServiceError(w, r, h.respondError, log.ComponentSeason, log.OpDelete, err, SeasonNotFoundMessage, "Failed to delete season")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
