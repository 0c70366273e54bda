package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/billyziiii/docker-fullstack/internal/cache"
	"github.com/billyziiii/docker-fullstack/internal/config"
	"github.com/billyziiii/docker-fullstack/internal/middleware"
	"github.com/billyziiii/docker-fullstack/internal/models"
	"github.com/billyziiii/docker-fullstack/internal/repository"
	"github.com/billyziiii/docker-fullstack/internal/services"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// memStore is an in-memory user store shared by the handler tests. It
// doubles as the settler so wagers hit the same balances the profile
// endpoint reads.
type memStore struct {
	mu      sync.Mutex
	byName  map[string]*models.User
	history []*models.WagerOutcome
	nextID  int64
}

func newMemStore() *memStore {
	return &memStore{byName: make(map[string]*models.User)}
}

func (m *memStore) Create(_ context.Context, username, passwordHash string, initialBalance int64) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.byName[username]; exists {
		return nil, repository.ErrDuplicate
	}
	m.nextID++
	user := &models.User{
		ID:           m.nextID,
		Username:     username,
		PasswordHash: passwordHash,
		Balance:      initialBalance,
		CreatedAt:    time.Now(),
	}
	m.byName[username] = user
	return user, nil
}

func (m *memStore) GetByID(_ context.Context, id int64) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, user := range m.byName {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memStore) GetByUsername(_ context.Context, username string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.byName[username]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return user, nil
}

func (m *memStore) Settle(_ context.Context, outcome *models.WagerOutcome) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, user := range m.byName {
		if user.ID != outcome.UserID {
			continue
		}
		if user.Balance < outcome.BetAmount {
			return 0, repository.ErrInsufficientFunds
		}
		user.Balance = user.Balance - outcome.BetAmount + outcome.WinAmount
		outcome.ID = int64(len(m.history) + 1)
		outcome.CreatedAt = time.Now()
		m.history = append(m.history, outcome)
		return user.Balance, nil
	}
	return 0, repository.ErrNotFound
}

func (m *memStore) ListByUser(_ context.Context, userID int64, limit, offset int) ([]*models.WagerOutcome, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var mine []*models.WagerOutcome
	for i := len(m.history) - 1; i >= 0; i-- { // newest first
		if m.history[i].UserID == userID {
			mine = append(mine, m.history[i])
		}
	}
	total := int64(len(mine))
	if offset >= len(mine) {
		return nil, total, nil
	}
	mine = mine[offset:]
	if limit < len(mine) {
		mine = mine[:limit]
	}
	return mine, total, nil
}

type testEnv struct {
	router *gin.Engine
	store  *memStore
	jwt    *services.JWTService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	cfg := &config.Config{
		JWTSecret:       "test-secret",
		JWTExpiry:       time.Hour,
		BcryptCost:      bcrypt.MinCost,
		MinPasswordLen:  6,
		StartingBalance: 1000,
	}

	store := newMemStore()
	jwtService := services.NewJWTService(cfg)
	authService := services.NewAuthService(store, cfg)
	userService := services.NewUserService(store, cache.NewMemoryCache())
	broadcaster := services.NewBroadcaster()
	gameService := services.NewGameService(services.NewSlotEngineWithSeed(99), store, store, userService, broadcaster)

	authHandler := NewAuthHandler(authService, jwtService, cfg.MinPasswordLen)
	userHandler := NewUserHandler(userService)
	gameHandler := NewGameHandler(gameService)

	router := gin.New()
	router.POST("/api/auth/register", authHandler.Register)
	router.POST("/api/auth/login", authHandler.Login)

	protected := router.Group("/api")
	protected.Use(middleware.AuthMiddleware(jwtService))
	{
		protected.GET("/user/profile", userHandler.GetProfile)
		protected.POST("/game/slot", gameHandler.PlaySlot)
		protected.GET("/game/history", gameHandler.GetHistory)
	}

	return &testEnv{router: router, store: store, jwt: jwtService}
}

func (env *testEnv) do(t *testing.T, method, path, token, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	var parsed map[string]any
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &parsed))
	}
	return w, parsed
}

// register creates a user through the API and returns its token.
func (env *testEnv) register(t *testing.T, username string) string {
	t.Helper()

	w, body := env.do(t, http.MethodPost, "/api/auth/register", "", `{"username":"`+username+`","password":"password123"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	data := body["data"].(map[string]any)
	return data["token"].(string)
}
