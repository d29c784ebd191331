package transport

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"storefront/internal/config"
	"storefront/internal/domain"
	"storefront/internal/messaging"
	"storefront/internal/metrics"
	"storefront/internal/middleware"
	"storefront/internal/repository"
	"storefront/internal/service"
	"storefront/internal/session"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// testTiming keeps notices and pending orders around for the whole test
func testTiming() config.TimingConfig {
	return config.TimingConfig{
		ConfirmDelay:         time.Hour,
		PaymentDelay:         time.Hour,
		BookNoticeDelay:      time.Hour,
		CafeteriaNoticeDelay: time.Hour,
		ContactResetDelay:    time.Hour,
	}
}

type testApp struct {
	router   http.Handler
	registry *session.Registry
	metrics  *metrics.Metrics
}

func newTestApp(t *testing.T, timing config.TimingConfig, products []domain.CafeteriaProduct) *testApp {
	t.Helper()
	logger := zap.NewNop()
	m := metrics.New()
	publisher := messaging.NewLogPublisher(logger)

	registry := session.NewRegistry(session.Deps{
		Reviews:     repository.NewMemoryReviewRepository(),
		Publisher:   publisher,
		OrdersTopic: "orders",
		Timing:      timing,
		Metrics:     m,
		Logger:      logger,
	}, time.Hour)
	t.Cleanup(registry.Close)

	catalog := service.NewCatalogService(
		repository.NewStaticBookRepository(nil),
		repository.NewStaticProductRepository(products),
		0,
		logger,
	)

	r := chi.NewRouter()
	r.Use(middleware.RequireJSON(logger))
	r.Use(middleware.SessionMiddleware(registry, time.Hour, logger))

	RegisterLandingRoutes(r)
	NewBookHandler(catalog, logger).RegisterRoutes(r)
	NewCartHandler(catalog, service.NewPaymentService(timing.PaymentDelay, m, logger), timing, m, logger).RegisterRoutes(r)
	NewCafeteriaHandler(catalog, timing, m, logger).RegisterRoutes(r)
	NewCheckoutHandler(logger).RegisterRoutes(r)
	NewContactHandler(service.NewContactService(publisher, "contact", logger), timing.ContactResetDelay, logger).RegisterRoutes(r)

	return &testApp{router: r, registry: registry, metrics: m}
}

// client replays the session id it was given on every later request
type client struct {
	t   *testing.T
	app *testApp
	sid string
}

func (a *testApp) client(t *testing.T) *client {
	return &client{t: t, app: a}
}

func (c *client) do(method, path string, body interface{}) *httptest.ResponseRecorder {
	c.t.Helper()
	var req *http.Request
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			c.t.Fatalf("marshal body: %v", err)
		}
		req = httptest.NewRequest(method, path, bytes.NewReader(raw))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if c.sid != "" {
		req.Header.Set(middleware.SessionHeader, c.sid)
	}

	w := httptest.NewRecorder()
	c.app.router.ServeHTTP(w, req)
	if id := w.Header().Get(middleware.SessionHeader); id != "" {
		c.sid = id
	}
	return w
}

func (c *client) raw(method, path, contentType string, body io.Reader) *httptest.ResponseRecorder {
	c.t.Helper()
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	c.app.router.ServeHTTP(w, req)
	return w
}

func (c *client) session() *session.Session {
	c.t.Helper()
	s, ok := c.app.registry.Get(c.sid)
	if !ok {
		c.t.Fatalf("session %q not found", c.sid)
	}
	return s
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("decode response: %v (body %s)", err, w.Body.String())
	}
}

func expectStatus(t *testing.T, w *httptest.ResponseRecorder, status int) {
	t.Helper()
	if w.Code != status {
		t.Fatalf("Expected status %d, got %d: %s", status, w.Code, w.Body.String())
	}
}

// cartBody mirrors CartView without the polymorphic item
type cartBody struct {
	Lines []struct {
		ID       int    `json:"id"`
		Name     string `json:"name"`
		Quantity int    `json:"quantity"`
		Subtotal string `json:"subtotal"`
	} `json:"lines"`
	TotalItems    int                 `json:"total_items"`
	TotalPrice    string              `json:"total_price"`
	DeliveryMode  domain.DeliveryMode `json:"delivery_mode"`
	TableNumber   *int                `json:"table_number"`
	TableRequired bool                `json:"table_required"`
	Notice        string              `json:"notice"`
}

type errorBody struct {
	Error struct {
		Message string                 `json:"message"`
		Details map[string]interface{} `json:"details"`
	} `json:"error"`
}

func (e errorBody) fields() map[string]bool {
	out := make(map[string]bool)
	raw, _ := e.Error.Details["validation_errors"].([]interface{})
	for _, item := range raw {
		if m, ok := item.(map[string]interface{}); ok {
			if f, ok := m["field"].(string); ok {
				out[f] = true
			}
		}
	}
	return out
}

func intPtr(v int) *int { return &v }
