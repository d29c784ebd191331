package transport

import (
	"net/http"
	"testing"

	"storefront/internal/metrics"
	"storefront/internal/service"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func validCard() service.PaymentForm {
	return service.PaymentForm{Name: "Ada Lovelace", Number: "4111 1111 1111 1111", Expiry: "12/30", CVV: "123"}
}

func TestCartHandler_AddUpdateRemove(t *testing.T) {
	app := newTestApp(t, testTiming(), nil)
	c := app.client(t)

	w := c.do(http.MethodPost, "/api/cart/items", map[string]int{"book_id": 1})
	expectStatus(t, w, http.StatusOK)
	var cart cartBody
	decode(t, w, &cart)
	if cart.TotalItems != 1 || cart.TotalPrice != "25.99" {
		t.Errorf("Expected one Don Quixote, got %+v", cart)
	}
	if cart.Notice != "Don Quixote added to cart" {
		t.Errorf("Unexpected notice %q", cart.Notice)
	}

	c.do(http.MethodPost, "/api/cart/items", map[string]int{"book_id": 1, "quantity": 2})
	w = c.do(http.MethodPost, "/api/cart/items", map[string]int{"book_id": 7})
	decode(t, w, &cart)
	if len(cart.Lines) != 2 || cart.Lines[0].Quantity != 3 || cart.TotalItems != 4 {
		t.Fatalf("Expected lines [1x3, 7x1], got %+v", cart.Lines)
	}
	if got := testutil.ToFloat64(app.metrics.ItemsAdded.WithLabelValues(metrics.DomainBooks)); got != 4 {
		t.Errorf("Expected 4 books counted, got %v", got)
	}

	w = c.do(http.MethodPut, "/api/cart/items/1", map[string]int{"quantity": 1})
	decode(t, w, &cart)
	if cart.Lines[0].Quantity != 1 {
		t.Errorf("Expected quantity 1, got %d", cart.Lines[0].Quantity)
	}

	w = c.do(http.MethodPut, "/api/cart/items/1", map[string]int{"quantity": 0})
	decode(t, w, &cart)
	if len(cart.Lines) != 1 || cart.Lines[0].ID != 7 {
		t.Errorf("Expected quantity 0 to remove the line, got %+v", cart.Lines)
	}

	w = c.do(http.MethodDelete, "/api/cart/items/7", nil)
	decode(t, w, &cart)
	if len(cart.Lines) != 0 || cart.TotalPrice != "0" {
		t.Errorf("Expected an empty cart, got %+v", cart)
	}
}

func TestCartHandler_Errors(t *testing.T) {
	c := newTestApp(t, testTiming(), nil).client(t)

	expectStatus(t, c.do(http.MethodPost, "/api/cart/items", map[string]int{"book_id": 999}), http.StatusNotFound)
	expectStatus(t, c.do(http.MethodPost, "/api/cart/items", map[string]int{"quantity": 1}), http.StatusBadRequest)
	expectStatus(t, c.do(http.MethodPut, "/api/cart/items/1", map[string]string{}), http.StatusBadRequest)
	expectStatus(t, c.do(http.MethodPut, "/api/cart/items/x", map[string]int{"quantity": 1}), http.StatusBadRequest)
}

func TestCartHandler_Payment(t *testing.T) {
	t.Run("empty cart is a guard violation", func(t *testing.T) {
		c := newTestApp(t, testTiming(), nil).client(t)

		w := c.do(http.MethodPost, "/api/cart/payment", validCard())
		expectStatus(t, w, http.StatusConflict)

		var body errorBody
		decode(t, w, &body)
		if body.Error.Details["redirect"] != "/books" {
			t.Errorf("Expected redirect to /books, got %v", body.Error.Details)
		}
	})

	t.Run("short card number", func(t *testing.T) {
		c := newTestApp(t, testTiming(), nil).client(t)
		c.do(http.MethodPost, "/api/cart/items", map[string]int{"book_id": 2})

		form := validCard()
		form.Number = "4111 1111 111"
		w := c.do(http.MethodPost, "/api/cart/payment", form)
		expectStatus(t, w, http.StatusBadRequest)

		var body errorBody
		decode(t, w, &body)
		if !body.fields()["number"] {
			t.Errorf("Expected a number error, got %+v", body)
		}
		if c.session().BookCart.TotalItemCount() != 1 {
			t.Error("Rejected payment must not touch the cart")
		}
	})

	t.Run("accepted payment clears the cart after the delay", func(t *testing.T) {
		timing := testTiming()
		timing.PaymentDelay = 0
		c := newTestApp(t, timing, nil).client(t)
		c.do(http.MethodPost, "/api/cart/items", map[string]int{"book_id": 2, "quantity": 2})

		w := c.do(http.MethodPost, "/api/cart/payment", validCard())
		expectStatus(t, w, http.StatusOK)

		var result service.PaymentResult
		decode(t, w, &result)
		if result.Amount != "39.80" || result.Items != 2 {
			t.Errorf("Unexpected payment result %+v", result)
		}
		if c.session().BookCart.TotalItemCount() != 0 {
			t.Error("Expected the cart to be cleared")
		}
	})

	t.Run("clearing the cart cancels the pending clear", func(t *testing.T) {
		c := newTestApp(t, testTiming(), nil).client(t)
		c.do(http.MethodPost, "/api/cart/items", map[string]int{"book_id": 3})
		expectStatus(t, c.do(http.MethodPost, "/api/cart/payment", validCard()), http.StatusOK)

		s := c.session()
		if !s.Scheduler.Pending(service.PaymentClearKey) {
			t.Fatal("Expected a pending clear")
		}
		expectStatus(t, c.do(http.MethodDelete, "/api/cart", nil), http.StatusOK)
		if s.Scheduler.Pending(service.PaymentClearKey) {
			t.Error("Expected the pending clear to be cancelled")
		}
	})
}

func TestProperty_CartTotalsFollowAdds(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("total items is the sum of added quantities", prop.ForAll(
		func(ids []int) bool {
			c := newTestApp(t, testTiming(), nil).client(t)
			want := 0
			for _, id := range ids {
				c.do(http.MethodPost, "/api/cart/items", map[string]int{"book_id": id, "quantity": 2})
				want += 2
			}

			var cart cartBody
			decode(t, c.do(http.MethodGet, "/api/cart", nil), &cart)

			seen := make(map[int]bool)
			for _, l := range cart.Lines {
				if seen[l.ID] {
					return false
				}
				seen[l.ID] = true
			}
			return cart.TotalItems == want
		},
		gen.SliceOfN(8, gen.IntRange(1, 12)),
	))

	properties.TestingRun(t)
}
