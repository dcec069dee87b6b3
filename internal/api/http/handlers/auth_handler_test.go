package handlers_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/marketplace-auth/internal/api/http"
	"github.com/spec-kit/marketplace-auth/internal/api/http/handlers"
	"github.com/spec-kit/marketplace-auth/internal/auth"
	"github.com/spec-kit/marketplace-auth/internal/config"
	"github.com/spec-kit/marketplace-auth/internal/domain"
	"github.com/spec-kit/marketplace-auth/internal/events"
	"github.com/spec-kit/marketplace-auth/internal/observability"
	"github.com/spec-kit/marketplace-auth/internal/persistence"
	"github.com/spec-kit/marketplace-auth/internal/service"
)

// stubUserRepo backs the handler tests with an in-memory credential store.
type stubUserRepo struct {
	mu    sync.Mutex
	users map[string]*domain.User
	next  int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return domain.ErrDuplicateUser
		}
	}
	r.next++
	user.ID = "user-" + strconv.Itoa(r.next)
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *stubUserRepo) Update(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return domain.ErrUserNotFound
	}
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *stubUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user, ok := r.users[id]; ok {
		clone := *user
		return &clone, nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	cfg := config.Config{
		App: config.AppConfig{Name: "marketplace-auth-test", Version: "test"},
		Auth: config.AuthConfig{
			JWTSecret:             "test-secret",
			AccessTokenTTLSeconds: 86400,
		},
	}

	repo := newStubUserRepo()
	dispatcher := events.NewInMemoryDispatcher()
	authService := service.NewAuthService(cfg, service.AuthDependencies{UserRepo: repo, Dispatcher: dispatcher})
	profileService := service.NewProfileService(repo, dispatcher)

	logger := zap.NewNop()
	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, observability.NewMetrics(), 0)
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, &persistence.Postgres{}, &persistence.Redis{}),
		Auth:           handlers.NewAuthHandler(authService),
		Profile:        handlers.NewProfileHandler(profileService),
		AuthMiddleware: auth.NewAuthMiddleware(authService.TokenManager(), repo, logger),
	})
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, body, token string) (int, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var decoded map[string]any
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &decoded), "body: %s", raw)
	}
	return resp.StatusCode, decoded
}

const signupAlice = `{"email":"a@x.com","password":"secret123","name":"Alice","role":"producer"}`

func TestSignupEndpoint(t *testing.T) {
	app := newTestApp(t)

	status, body := doJSON(t, app, http.MethodPost, "/auth/signup", signupAlice, "")
	require.Equal(t, http.StatusCreated, status)

	data := body["data"].(map[string]any)
	assert.NotEmpty(t, data["access_token"])
	assert.EqualValues(t, 86400, data["expires_in"])

	user := data["user"].(map[string]any)
	assert.Equal(t, "a@x.com", user["email"])
	assert.Equal(t, "Alice", user["name"])
	assert.Equal(t, "producer", user["role"])
	assert.Equal(t, false, user["profile_completed"])
	assert.NotContains(t, user, "password_hash")
}

func TestSignupEndpoint_Duplicate(t *testing.T) {
	app := newTestApp(t)

	status, _ := doJSON(t, app, http.MethodPost, "/auth/signup", signupAlice, "")
	require.Equal(t, http.StatusCreated, status)

	status, body := doJSON(t, app, http.MethodPost, "/auth/signup", signupAlice, "")
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "DUPLICATE_USER", body["error"].(map[string]any)["code"])
}

func TestSignupEndpoint_Validation(t *testing.T) {
	app := newTestApp(t)

	cases := map[string]string{
		"bad role":         `{"email":"b@x.com","password":"pw","name":"Bob","role":"admin"}`,
		"missing email":    `{"password":"pw","name":"Bob","role":"buyer"}`,
		"missing password": `{"email":"b@x.com","name":"Bob","role":"buyer"}`,
		"not json":         `not-json`,
	}
	for name, payload := range cases {
		t.Run(name, func(t *testing.T) {
			status, _ := doJSON(t, app, http.MethodPost, "/auth/signup", payload, "")
			assert.Equal(t, http.StatusBadRequest, status)
		})
	}
}

func TestLoginEndpoint(t *testing.T) {
	app := newTestApp(t)

	status, _ := doJSON(t, app, http.MethodPost, "/auth/signup", signupAlice, "")
	require.Equal(t, http.StatusCreated, status)

	status, body := doJSON(t, app, http.MethodPost, "/auth/login", `{"email":"a@x.com","password":"secret123"}`, "")
	require.Equal(t, http.StatusOK, status)
	data := body["data"].(map[string]any)
	assert.NotEmpty(t, data["access_token"])
	assert.EqualValues(t, 86400, data["expires_in"])
}

func TestLoginEndpoint_UnauthorizedOutcomesMatch(t *testing.T) {
	app := newTestApp(t)

	status, _ := doJSON(t, app, http.MethodPost, "/auth/signup", signupAlice, "")
	require.Equal(t, http.StatusCreated, status)

	wrongStatus, wrongBody := doJSON(t, app, http.MethodPost, "/auth/login", `{"email":"a@x.com","password":"wrongpass"}`, "")
	ghostStatus, ghostBody := doJSON(t, app, http.MethodPost, "/auth/login", `{"email":"ghost@x.com","password":"secret123"}`, "")

	assert.Equal(t, http.StatusUnauthorized, wrongStatus)
	assert.Equal(t, http.StatusUnauthorized, ghostStatus)
	// Wrong password and unknown email must be indistinguishable.
	assert.Equal(t, wrongBody, ghostBody)
}

func TestMeEndpoint(t *testing.T) {
	app := newTestApp(t)

	status, body := doJSON(t, app, http.MethodPost, "/auth/signup", signupAlice, "")
	require.Equal(t, http.StatusCreated, status)
	token := body["data"].(map[string]any)["access_token"].(string)

	status, body = doJSON(t, app, http.MethodGet, "/auth/me", "", token)
	require.Equal(t, http.StatusOK, status)
	user := body["data"].(map[string]any)["user"].(map[string]any)
	assert.Equal(t, "a@x.com", user["email"])

	status, _ = doJSON(t, app, http.MethodGet, "/auth/me", "", "")
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = doJSON(t, app, http.MethodGet, "/auth/me", "", "not-a-token")
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestProfileCompleteEndpoint(t *testing.T) {
	app := newTestApp(t)

	status, body := doJSON(t, app, http.MethodPost, "/auth/signup", signupAlice, "")
	require.Equal(t, http.StatusCreated, status)
	token := body["data"].(map[string]any)["access_token"].(string)

	status, body = doJSON(t, app, http.MethodPost, "/profile/complete", "", token)
	require.Equal(t, http.StatusOK, status)
	user := body["data"].(map[string]any)["user"].(map[string]any)
	assert.Equal(t, true, user["profile_completed"])

	// The flip is visible on subsequent reads.
	status, body = doJSON(t, app, http.MethodGet, "/auth/me", "", token)
	require.Equal(t, http.StatusOK, status)
	user = body["data"].(map[string]any)["user"].(map[string]any)
	assert.Equal(t, true, user["profile_completed"])
}

func TestHealthEndpoints(t *testing.T) {
	app := newTestApp(t)

	status, body := doJSON(t, app, http.MethodGet, "/health/live", "", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "alive", body["status"])

	// Neither postgres nor redis is configured in tests.
	status, _ = doJSON(t, app, http.MethodGet, "/health/ready", "", "")
	assert.Equal(t, http.StatusServiceUnavailable, status)
}
