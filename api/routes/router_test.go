package routes_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"osspace/api/routes"
	"osspace/internal/events"
	"osspace/internal/shared/config"
	"osspace/internal/shared/database"
	"osspace/pkg/logger"
	"osspace/pkg/ratelimit"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// newTestServer assembles the engine the way server/main.go does: memory
// limiter in front, the full route tree behind, sqlite instead of postgres.
func newTestServer(t *testing.T, mutate func(cfg *config.Config)) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	cfg := &config.Config{
		GinMode:    gin.TestMode,
		APIVersion: "v1",
		APIPrefix:  "/api",
		AppBaseURL: "http://localhost:8080",
		Redis:      config.RedisConfig{ListingCacheTTL: 5 * time.Minute},
		Admin: config.AdminConfig{
			AllowedEmails: []string{"admin@osspace.in"},
			Password:      "open-sesame",
			SessionTTL:    time.Hour,
		},
		Payment: config.PaymentConfig{Provider: "RAZORPAY", KeyID: "rzp_test_abc123"},
		RateLimit: config.RateLimitConfig{
			Enabled:         true,
			WindowDuration:  time.Minute,
			DefaultRequests: 60,
			PublicRequests:  100,
			AuthRequests:    5,
			BookingRequests: 20,
			AdminRequests:   200,
		},
		Upload: config.UploadConfig{
			MaxSize: 5 * 1024 * 1024,
			Path:    t.TempDir(),
			Folders: []string{"classes", "events", "spaces"},
		},
	}
	if mutate != nil {
		mutate(cfg)
	}

	limiter := ratelimit.NewMemoryLimiter(&ratelimit.Config{
		Enabled:         cfg.RateLimit.Enabled,
		WindowDuration:  cfg.RateLimit.WindowDuration,
		DefaultRequests: cfg.RateLimit.DefaultRequests,
		PublicRequests:  cfg.RateLimit.PublicRequests,
		AuthRequests:    cfg.RateLimit.AuthRequests,
		BookingRequests: cfg.RateLimit.BookingRequests,
		AdminRequests:   cfg.RateLimit.AdminRequests,
	})

	engine := gin.New()
	engine.Use(ratelimit.Middleware(limiter))
	routes.NewRouter(cfg, &database.DB{PostgreSQL: db}, nil, logger.GetDefault()).SetupRoutes(engine)
	return engine, db
}

type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func doJSON(t *testing.T, engine *gin.Engine, method, path string, body interface{}, mutate func(*http.Request)) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.RemoteAddr = "203.0.113.7:52000"
	if mutate != nil {
		mutate(req)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder, dest interface{}) {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	require.NoError(t, json.Unmarshal(env.Data, dest))
}

func seedTestEvent(t *testing.T, db *gorm.DB) *events.Event {
	t.Helper()
	event := &events.Event{
		Title:      "Baithak Night",
		StartsAt:   time.Now().Add(7 * 24 * time.Hour),
		PriceMinor: 50000,
		Currency:   "INR",
		Active:     true,
	}
	require.NoError(t, db.Create(event).Error)
	return event
}

func TestLogin_SixthAttemptInWindowIsRateLimited(t *testing.T) {
	engine, _ := newTestServer(t, nil)

	bad := gin.H{"email": "admin@osspace.in", "password": "wrong"}
	for i := 1; i <= 5; i++ {
		w := doJSON(t, engine, http.MethodPost, "/api/v1/admin/auth", bad, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, "attempt %d", i)
		assert.NotEmpty(t, w.Header().Get("X-RateLimit-Limit"))
	}

	// The window is exhausted: even correct credentials are turned away.
	good := gin.H{"email": "admin@osspace.in", "password": "open-sesame"}
	w := doJSON(t, engine, http.MethodPost, "/api/v1/admin/auth", good, nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
}

func TestLogin_RateLimitWindowIsPerClientIP(t *testing.T) {
	engine, _ := newTestServer(t, nil)

	bad := gin.H{"email": "admin@osspace.in", "password": "wrong"}
	for i := 0; i < 6; i++ {
		doJSON(t, engine, http.MethodPost, "/api/v1/admin/auth", bad, nil)
	}

	good := gin.H{"email": "admin@osspace.in", "password": "open-sesame"}
	w := doJSON(t, engine, http.MethodPost, "/api/v1/admin/auth", good, func(req *http.Request) {
		req.RemoteAddr = "203.0.113.99:52000"
	})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAdminRoutes_RejectMissingOrBogusCookie(t *testing.T) {
	engine, _ := newTestServer(t, nil)

	w := doJSON(t, engine, http.MethodGet, "/api/v1/admin/bookings", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, engine, http.MethodGet, "/api/v1/admin/bookings", nil, func(req *http.Request) {
		req.AddCookie(&http.Cookie{Name: "admin_token", Value: strings.Repeat("ab", 32)})
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminRoutes_AcceptSessionCookieFromLogin(t *testing.T) {
	engine, _ := newTestServer(t, nil)

	login := doJSON(t, engine, http.MethodPost, "/api/v1/admin/auth",
		gin.H{"email": "admin@osspace.in", "password": "open-sesame"}, nil)
	require.Equal(t, http.StatusOK, login.Code)

	var session *http.Cookie
	for _, c := range login.Result().Cookies() {
		if c.Name == "admin_token" {
			session = c
		}
	}
	require.NotNil(t, session, "login must set the session cookie")

	w := doJSON(t, engine, http.MethodGet, "/api/v1/admin/bookings", nil, func(req *http.Request) {
		req.AddCookie(session)
	})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestDevConfirm_RouteAbsentWhenDisabled(t *testing.T) {
	engine, _ := newTestServer(t, nil)

	w := doJSON(t, engine, http.MethodPost, "/api/v1/payments/dev/confirm",
		gin.H{"bookingId": "00000000-0000-0000-0000-000000000000"}, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDevConfirm_SecretHeaderGate(t *testing.T) {
	engine, db := newTestServer(t, func(cfg *config.Config) {
		cfg.Dev.AllowDevEndpoints = true
		cfg.Dev.Secret = "local-dev-secret"
	})
	event := seedTestEvent(t, db)

	created := doJSON(t, engine, http.MethodPost, "/api/v1/bookings", gin.H{
		"type":    "EVENT",
		"name":    "Meera Nair",
		"phone":   "+919876543210",
		"email":   "meera@example.com",
		"eventId": event.ID.String(),
	}, nil)
	require.Equal(t, http.StatusCreated, created.Code)

	var booking struct {
		BookingID string `json:"bookingId"`
	}
	decodeData(t, created, &booking)

	order := doJSON(t, engine, http.MethodPost, "/api/v1/payments/orders",
		gin.H{"bookingId": booking.BookingID}, nil)
	require.Equal(t, http.StatusCreated, order.Code)

	confirmBody := gin.H{"bookingId": booking.BookingID}

	w := doJSON(t, engine, http.MethodPost, "/api/v1/payments/dev/confirm", confirmBody, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code, "missing secret header")

	w = doJSON(t, engine, http.MethodPost, "/api/v1/payments/dev/confirm", confirmBody, func(req *http.Request) {
		req.Header.Set("x-dev-secret", "not-the-secret")
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code, "wrong secret header")

	w = doJSON(t, engine, http.MethodPost, "/api/v1/payments/dev/confirm", confirmBody, func(req *http.Request) {
		req.Header.Set("x-dev-secret", "local-dev-secret")
	})
	require.Equal(t, http.StatusOK, w.Code)

	var confirmed struct {
		BookingStatus string `json:"bookingStatus"`
		PassID        string `json:"passId"`
	}
	decodeData(t, w, &confirmed)
	assert.Equal(t, "CONFIRMED", confirmed.BookingStatus)
	assert.True(t, strings.HasPrefix(confirmed.PassID, "OSS-EV-"))
}

func TestDevConfirm_EmptySecretLocksRoutes(t *testing.T) {
	engine, _ := newTestServer(t, func(cfg *config.Config) {
		cfg.Dev.AllowDevEndpoints = true
		cfg.Dev.Secret = ""
	})

	w := doJSON(t, engine, http.MethodPost, "/api/v1/payments/dev/confirm",
		gin.H{"bookingId": "00000000-0000-0000-0000-000000000000"}, func(req *http.Request) {
			req.Header.Set("x-dev-secret", "")
		})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
