package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sebuszqo/SeasonLedger/internal/auth"
	"github.com/sebuszqo/SeasonLedger/internal/finance/domain"
	financeErrors "github.com/sebuszqo/SeasonLedger/internal/finance/errors"
	"github.com/sebuszqo/SeasonLedger/internal/finance/interfaces"
	"github.com/sebuszqo/SeasonLedger/internal/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPassword = "correct horse"

type fakeHealth struct {
	status string
}

func (f fakeHealth) Health(context.Context) map[string]string {
	return map[string]string{"status": f.status}
}

type fakeAuthService struct {
	jwtManager *auth.JWTManager
}

func (f *fakeAuthService) Login(_ context.Context, username, password string) (string, error) {
	if username != auth.AdminUsername || password != testPassword {
		return "", auth.ErrInvalidCredentials
	}
	return f.jwtManager.GenerateAccessJWT("1", username)
}

func (f *fakeAuthService) Verify(_ context.Context, username, password string) (bool, error) {
	return username == auth.AdminUsername && password == testPassword, nil
}

func (f *fakeAuthService) EnsureAdmin(context.Context, string) (auth.BootstrapResult, error) {
	return auth.BootstrapUnchanged, nil
}

func (f *fakeAuthService) JWTAccessTokenMiddleware() func(http.Handler) http.Handler {
	return auth.JWTAccessTokenMiddleware(f.jwtManager)
}

type fakeCategoryService struct{}

func (fakeCategoryService) ListCategories(context.Context) ([]domain.Category, error) {
	return []domain.Category{}, nil
}

func (fakeCategoryService) GetCategory(context.Context, string) (*domain.Category, error) {
	return nil, financeErrors.ErrNotFound
}

func (fakeCategoryService) CreateCategory(_ context.Context, name string) (*domain.Category, error) {
	return &domain.Category{Name: name}, nil
}

func (fakeCategoryService) UpdateCategory(context.Context, string, *string) (*domain.Category, error) {
	return nil, financeErrors.ErrNotFound
}

func (fakeCategoryService) DeleteCategory(context.Context, string) error {
	return financeErrors.ErrNotFound
}

type fakeSeasonService struct {
	activated string
}

func (f *fakeSeasonService) ListSeasons(context.Context) ([]domain.Season, error) {
	return []domain.Season{}, nil
}

func (f *fakeSeasonService) GetSeason(context.Context, string) (*domain.Season, error) {
	return nil, financeErrors.ErrNotFound
}

func (f *fakeSeasonService) CreateSeason(_ context.Context, name string, _ *bool) (*domain.Season, error) {
	return &domain.Season{Name: name}, nil
}

func (f *fakeSeasonService) UpdateSeason(context.Context, string, domain.SeasonPatch) (*domain.Season, error) {
	return nil, financeErrors.ErrNotFound
}

func (f *fakeSeasonService) ActivateSeason(_ context.Context, id string) (*domain.Season, error) {
	f.activated = id
	return &domain.Season{Record: domain.Record{ID: id}, Name: "Summer", Active: true}, nil
}

func (f *fakeSeasonService) DeleteSeason(context.Context, string) error {
	return financeErrors.ErrNotFound
}

type fakeTransactionService struct{}

func (fakeTransactionService) CreateTransaction(_ context.Context, transaction *domain.Transaction) (*domain.TransactionView, error) {
	return &domain.TransactionView{Transaction: *transaction}, nil
}

func (fakeTransactionService) ListTransactions(context.Context, string) ([]domain.TransactionView, error) {
	return []domain.TransactionView{}, nil
}

func (fakeTransactionService) GetTransaction(context.Context, string) (*domain.TransactionView, error) {
	return nil, financeErrors.ErrNotFound
}

func (fakeTransactionService) UpdateTransaction(context.Context, string, domain.TransactionPatch) (*domain.TransactionView, error) {
	return nil, financeErrors.ErrNotFound
}

func (fakeTransactionService) DeleteTransaction(context.Context, string) error {
	return financeErrors.ErrNotFound
}

func newTestServer(t *testing.T, health healthChecker) (http.Handler, *fakeSeasonService) {
	t.Helper()
	jwtManager, err := auth.NewJWTManager("test-secret")
	require.NoError(t, err)

	authService := &fakeAuthService{jwtManager: jwtManager}
	seasons := &fakeSeasonService{}
	server := NewServer(
		log.Nop(),
		health,
		auth.NewHandler(authService, respondJSON, respondError),
		authService,
		auth.NewLoginRateLimiter(100, 100, respondError),
		interfaces.NewCategoryHandler(fakeCategoryService{}, respondJSON, respondError),
		interfaces.NewSeasonHandler(seasons, respondJSON, respondError),
		interfaces.NewPersonalTransactionHandler(fakeTransactionService{}, respondJSON, respondError),
	)
	server.RegisterRoutes()
	return server.Handler(), seasons
}

func login(t *testing.T, handler http.Handler) string {
	t.Helper()
	body := `{"username":"admin","password":"` + testPassword + `"}`
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(body)))
	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	require.NotEmpty(t, response.Token)
	return response.Token
}

func TestServer_ProtectedRoutesRequireToken(t *testing.T) {
	handler, _ := newTestServer(t, fakeHealth{status: "up"})

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/categories", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	token := login(t, handler)
	req := httptest.NewRequest(http.MethodGet, "/categories", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestServer_UnauthenticatedRequestNeverReachesIDValidation(t *testing.T) {
	handler, _ := newTestServer(t, fakeHealth{status: "up"})

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/seasons/not-a-uuid", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestServer_MalformedIDIsNotFound(t *testing.T) {
	handler, _ := newTestServer(t, fakeHealth{status: "up"})
	token := login(t, handler)

	for _, path := range []string{"/categories/42", "/seasons/abc", "/transactions/not-a-uuid"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		assert.Equal(t, http.StatusNotFound, w.Code, path)
	}
}

func TestServer_ActivateSeasonRoute(t *testing.T) {
	handler, seasons := newTestServer(t, fakeHealth{status: "up"})
	token := login(t, handler)

	id := "66666666-6666-6666-6666-666666666666"
	req := httptest.NewRequest(http.MethodPost, "/seasons/"+id+"/activate", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, id, seasons.activated)
}

func TestServer_PublicRoutes(t *testing.T) {
	tests := []struct {
		name       string
		health     string
		method     string
		path       string
		wantStatus int
		wantBody   string
	}{
		{name: "root", health: "up", method: http.MethodGet, path: "/", wantStatus: http.StatusOK, wantBody: `{"message":"Season Ledger API"}`},
		{name: "health up", health: "up", method: http.MethodGet, path: "/health", wantStatus: http.StatusOK, wantBody: `{"status":"up"}`},
		{name: "health down", health: "down", method: http.MethodGet, path: "/health", wantStatus: http.StatusServiceUnavailable, wantBody: `{"status":"down"}`},
		{name: "unknown path", health: "up", method: http.MethodGet, path: "/nope", wantStatus: http.StatusNotFound, wantBody: `{"message":"Path not found"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, _ := newTestServer(t, fakeHealth{status: tt.health})

			w := httptest.NewRecorder()
			handler.ServeHTTP(w, httptest.NewRequest(tt.method, tt.path, nil))

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.JSONEq(t, tt.wantBody, w.Body.String())
		})
	}
}

func TestServer_LoginWithWrongPassword(t *testing.T) {
	handler, _ := newTestServer(t, fakeHealth{status: "up"})

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"username":"admin","password":"nope"}`)))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
