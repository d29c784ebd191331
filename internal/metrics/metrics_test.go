package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNew_IndependentRegistries(t *testing.T) {
	a := New()
	b := New()

	a.OrdersConfirmed.Inc()

	if got := testutil.ToFloat64(a.OrdersConfirmed); got != 1 {
		t.Errorf("Expected 1 confirmed order, got %v", got)
	}
	if got := testutil.ToFloat64(b.OrdersConfirmed); got != 0 {
		t.Errorf("Registries should be independent, got %v", got)
	}
}

func TestMiddleware_RecordsRoutePattern(t *testing.T) {
	m := New()
	router := chi.NewRouter()
	router.Use(m.Middleware)
	router.Get("/api/books/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/books/7", nil))
	}

	got := testutil.ToFloat64(m.Requests.WithLabelValues("/api/books/{id}", http.MethodGet, "404"))
	if got != 3 {
		t.Errorf("Expected 3 requests recorded, got %v", got)
	}
}

func TestHandler_ExposesCollectors(t *testing.T) {
	m := New()
	m.ItemsAdded.WithLabelValues(DomainBooks).Add(2)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `storefront_cart_items_added_total{domain="books"} 2`) {
		t.Errorf("Expected cart counter in output, got:\n%s", rec.Body.String())
	}
}
