package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/ahmetcoskunkizilkaya/nonprofit-backend/internal/cache"
	"github.com/ahmetcoskunkizilkaya/nonprofit-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/nonprofit-backend/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/nonprofit-backend/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/nonprofit-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/nonprofit-backend/internal/routes"
	"github.com/ahmetcoskunkizilkaya/nonprofit-backend/internal/services"
	"github.com/ahmetcoskunkizilkaya/nonprofit-backend/internal/testutil"
)

const (
	webhookSecret = "whsec_test"
	userPassword  = "s3cret-passphrase"
)

type testServer struct {
	app   *fiber.App
	db    *gorm.DB
	auth  *services.AuthService
	redis *miniredis.Miniredis
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	db := testutil.NewTestDB(t)

	mr := miniredis.RunT(t)
	store, err := cache.Connect("redis://" + mr.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	cfg := &config.Config{
		JWTSecret:            "handler-test-secret",
		JWTAccessExpiry:      time.Hour,
		PaymentWebhookSecret: webhookSecret,
		DonationRedirectURL:  "https://example.org/donate/payment",
		CORSOrigins:          "*",
	}

	authService := services.NewAuthService(db, cfg)
	donationService := services.NewDonationService(db, cfg.DonationRedirectURL)
	eventService := services.NewEventService(db, services.NewContentFilter(services.DefaultBannedWords))

	app := fiber.New(fiber.Config{ErrorHandler: handlers.ErrorHandler})
	app.Use(requestid.New())
	app.Use(middleware.SecurityHeaders())
	routes.Setup(app, cfg, authService, routes.Handlers{
		Auth:       handlers.NewAuthHandler(authService),
		Health:     handlers.NewHealthHandler(db, store),
		Donation:   handlers.NewDonationHandler(donationService, authService),
		Admin:      handlers.NewAdminHandler(eventService, services.NewAdminLogger(db), authService),
		Event:      handlers.NewEventHandler(eventService),
		Inventory:  handlers.NewInventoryHandler(services.NewInventoryService(db)),
		Donor:      handlers.NewDonorHandler(services.NewDonorService(db)),
		Newsletter: handlers.NewNewsletterHandler(services.NewNewsletterService(db)),
		Webhook:    handlers.NewWebhookHandler(donationService, cfg.PaymentWebhookSecret),
	})

	return &testServer{app: app, db: db, auth: authService, redis: mr}
}

// user creates an account and returns it with a signed access token.
func (s *testServer) user(t *testing.T, email, role string) (*models.User, string) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(userPassword), bcrypt.MinCost)
	require.NoError(t, err)

	u := &models.User{Email: email, Password: string(hash), Name: email, Role: role, IsActive: true}
	require.NoError(t, s.db.Create(u).Error)

	token, err := s.auth.GenerateAccessToken(u)
	require.NoError(t, err)
	return u, token
}

func (s *testServer) event(t *testing.T, title string) *models.Event {
	t.Helper()
	start := time.Now().Add(48 * time.Hour).UTC()
	e := &models.Event{Title: title, StartsAt: start, EndsAt: start.Add(time.Hour)}
	require.NoError(t, s.db.Create(e).Error)
	return e
}

type request struct {
	method string
	path   string
	body   interface{}
	header map[string]string
	token  string
}

func (s *testServer) do(t *testing.T, r request) (*http.Response, []byte) {
	t.Helper()
	var body io.Reader
	if r.body != nil {
		raw, ok := r.body.(string)
		if !ok {
			b, err := json.Marshal(r.body)
			require.NoError(t, err)
			raw = string(b)
		}
		body = bytes.NewBufferString(raw)
	}

	req := httptest.NewRequest(r.method, r.path, body)
	if r.body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if r.token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+r.token)
	}
	for k, v := range r.header {
		req.Header.Set(k, v)
	}

	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, out
}

func decode[T any](t *testing.T, body []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(body, &v), string(body))
	return v
}

func errorMessage(t *testing.T, body []byte) string {
	t.Helper()
	return decode[map[string]string](t, body)["error"]
}

func (s *testServer) count(t *testing.T, model interface{}, query string, args ...interface{}) int64 {
	t.Helper()
	var n int64
	q := s.db.Model(model)
	if query != "" {
		q = q.Where(query, args...)
	}
	require.NoError(t, q.Count(&n).Error)
	return n
}
