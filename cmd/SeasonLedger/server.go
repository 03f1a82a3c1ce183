package main

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/sebuszqo/SeasonLedger/internal/auth"
	"github.com/sebuszqo/SeasonLedger/internal/finance/interfaces"
	"github.com/sebuszqo/SeasonLedger/internal/log"
)

type Response struct {
	Message string `json:"message"`
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]interface{}{
		"status":  "error",
		"message": message,
		"code":    status,
	})
}

func notFoundHandler(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusNotFound, Response{Message: "Path not found"})
}

type healthChecker interface {
	Health(ctx context.Context) map[string]string
}

type Server struct {
	router             *http.ServeMux
	logger             *log.Logger
	health             healthChecker
	authHandler        *auth.Handler
	authService        auth.Service
	loginLimiter       *auth.LoginRateLimiter
	categoryHandler    *interfaces.CategoryHandler
	seasonHandler      *interfaces.SeasonHandler
	transactionHandler *interfaces.PersonalTransactionHandler
}

func NewServer(
	logger *log.Logger,
	health healthChecker,
	authHandler *auth.Handler,
	authService auth.Service,
	loginLimiter *auth.LoginRateLimiter,
	categoryHandler *interfaces.CategoryHandler,
	seasonHandler *interfaces.SeasonHandler,
	transactionHandler *interfaces.PersonalTransactionHandler,
) *Server {
	return &Server{
		router:             http.NewServeMux(),
		logger:             logger,
		health:             health,
		authHandler:        authHandler,
		authService:        authService,
		loginLimiter:       loginLimiter,
		categoryHandler:    categoryHandler,
		seasonHandler:      seasonHandler,
		transactionHandler: transactionHandler,
	}
}

func (s *Server) handleRoot(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, Response{Message: "Season Ledger API"})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	stats := s.health.Health(r.Context())
	if stats["status"] != "up" {
		respondJSON(w, http.StatusServiceUnavailable, stats)
		return
	}
	respondJSON(w, http.StatusOK, stats)
}

func (s *Server) RegisterRoutes() {
	protected := func(handler http.HandlerFunc) http.Handler {
		return s.authService.JWTAccessTokenMiddleware()(handler)
	}
	protectedByID := func(handler http.HandlerFunc, notFoundMessage string) http.Handler {
		return protected(interfaces.ValidateIDPathParamMiddleware(respondError, notFoundMessage)(handler).ServeHTTP)
	}

	router := http.NewServeMux()

	// Public routes
	router.Handle("GET /{$}", http.HandlerFunc(s.handleRoot))
	router.Handle("GET /health", http.HandlerFunc(s.handleHealth))
	router.Handle("POST /login", s.loginLimiter.Middleware(http.HandlerFunc(s.authHandler.HandleLogin)))

	// CATEGORIES API
	router.Handle("GET /categories", protected(s.categoryHandler.GetCategories))
	router.Handle("POST /categories", protected(s.categoryHandler.CreateCategory))
	router.Handle("GET /categories/{id}", protectedByID(s.categoryHandler.GetCategory, interfaces.CategoryNotFoundMessage))
	router.Handle("PUT /categories/{id}", protectedByID(s.categoryHandler.UpdateCategory, interfaces.CategoryNotFoundMessage))
	router.Handle("DELETE /categories/{id}", protectedByID(s.categoryHandler.DeleteCategory, interfaces.CategoryNotFoundMessage))

	// SEASONS API
	router.Handle("GET /seasons", protected(s.seasonHandler.GetSeasons))
	router.Handle("POST /seasons", protected(s.seasonHandler.CreateSeason))
	router.Handle("GET /seasons/{id}", protectedByID(s.seasonHandler.GetSeason, interfaces.SeasonNotFoundMessage))
	router.Handle("PUT /seasons/{id}", protectedByID(s.seasonHandler.UpdateSeason, interfaces.SeasonNotFoundMessage))
	router.Handle("DELETE /seasons/{id}", protectedByID(s.seasonHandler.DeleteSeason, interfaces.SeasonNotFoundMessage))
	router.Handle("POST /seasons/{id}/activate", protectedByID(s.seasonHandler.ActivateSeason, interfaces.SeasonNotFoundMessage))

	// TRANSACTIONS API
	router.Handle("GET /transactions", protected(s.transactionHandler.GetTransactions))
	router.Handle("POST /transactions", protected(s.transactionHandler.CreateTransaction))
	router.Handle("GET /transactions/{id}", protectedByID(s.transactionHandler.GetTransaction, interfaces.TransactionNotFoundMessage))
	router.Handle("PUT /transactions/{id}", protectedByID(s.transactionHandler.UpdateTransaction, interfaces.TransactionNotFoundMessage))
	router.Handle("DELETE /transactions/{id}", protectedByID(s.transactionHandler.DeleteTransaction, interfaces.TransactionNotFoundMessage))

	router.Handle("/", http.HandlerFunc(notFoundHandler))

	s.router = router
}

// Handler returns the router wrapped in request logging.
func (s *Server) Handler() http.Handler {
	return log.Middleware(s.logger)(s.router)
}
