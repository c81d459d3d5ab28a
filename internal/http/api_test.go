package http

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"bookshelf/internal/catalog"
	"bookshelf/internal/repository/memory"
	"bookshelf/internal/service"
)

const testSecret = "test-secret"

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := memory.NewStore(catalog.Default())
	userRepo := memory.NewUserRepository(store)
	bookRepo := memory.NewBookRepository(store)

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	handler := NewHandler(
		service.NewUserService(userRepo, bcrypt.MinCost),
		service.NewTokenService([]byte(testSecret), time.Hour),
		service.NewCatalogService(bookRepo),
		service.NewReviewService(bookRepo),
		logger,
	)

	router := gin.New()
	handler.RegisterRoutes(router)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", token)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func registerAndLogin(t *testing.T, router *gin.Engine, username, password string) string {
	t.Helper()

	rec := doJSON(t, router, http.MethodPost, "/customer/register", "", gin.H{"username": username, "password": password})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/customer/login", "", gin.H{"username": username, "password": password})
	require.Equal(t, http.StatusOK, rec.Code)

	token, ok := decodeBody(t, rec)["token"].(string)
	require.True(t, ok, "login response carries a token")
	require.NotEmpty(t, token)
	return token
}

func TestRegisterLoginAndReviewScenario(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/customer/register", "", gin.H{"username": "alice", "password": "pw1"})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/customer/register", "", gin.H{"username": "alice", "password": "pw2"})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/customer/login", "", gin.H{"username": "alice", "password": "pw1"})
	require.Equal(t, http.StatusOK, rec.Code)
	token := decodeBody(t, rec)["token"].(string)
	require.NotEmpty(t, token)

	rec = doJSON(t, router, http.MethodGet, "/isbn/973", "", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/customer/auth/add-review/973", token, gin.H{"review": "great book"})
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/customer/auth/add-review/1", token, gin.H{"review": "great book"})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/review/1", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, map[string]any{"1": "great book"}, decodeBody(t, rec))

	rec = doJSON(t, router, http.MethodPost, "/customer/auth/add-review/1", "", gin.H{"review": "anonymous"})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)
	registerAndLogin(t, router, "alice", "pw1")

	rec := doJSON(t, router, http.MethodPost, "/customer/login", "", gin.H{"username": "alice", "password": "wrong"})
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/customer/login", "", gin.H{"username": "nobody", "password": "pw1"})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCatalogQueries(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var books []BookResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &books))
	require.Len(t, books, 10)

	rec = doJSON(t, router, http.MethodGet, "/author/Jane%20Austen", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/author/Nobody", "", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/title/Fairy%20tales", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/title/No%20Such%20Title", "", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	// A seeded book has no reviews collection yet.
	rec = doJSON(t, router, http.MethodGet, "/review/1", "", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAuthGateRejectsBadTokens(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/customer/auth/add-review/1", "garbage", gin.H{"review": "x"})
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	// Token signed with a different secret.
	other := service.NewTokenService([]byte("other-secret"), time.Hour)
	forged, err := other.Issue(1)
	require.NoError(t, err)

	rec = doJSON(t, router, http.MethodPost, "/customer/auth/add-review/1", forged, gin.H{"review": "x"})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthGateAcceptsBearerPrefix(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)
	token := registerAndLogin(t, router, "alice", "pw1")

	rec := doJSON(t, router, http.MethodPost, "/customer/auth/add-review/1", "Bearer "+token, gin.H{"review": "great book"})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, router, http.MethodPut, "/customer/auth/modify-review/1", token, gin.H{"review": "still great"})
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestReviewOwnershipAcrossUsers(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)
	aliceToken := registerAndLogin(t, router, "alice", "pw1")
	bobToken := registerAndLogin(t, router, "bob", "pw2")

	rec := doJSON(t, router, http.MethodPost, "/customer/auth/add-review/1", aliceToken, gin.H{"review": "great book"})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, router, http.MethodPut, "/customer/auth/modify-review/1", bobToken, gin.H{"review": "hijacked"})
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, router, http.MethodDelete, "/customer/auth/delete-review/1", bobToken, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/review/1", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, map[string]any{"1": "great book"}, decodeBody(t, rec))

	rec = doJSON(t, router, http.MethodDelete, "/customer/auth/delete-review/1", aliceToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	// The emptied collection now lists as an empty object.
	rec = doJSON(t, router, http.MethodGet, "/review/1", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Empty(t, decodeBody(t, rec))
}
