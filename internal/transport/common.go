package transport

import (
	"errors"
	"net/http"
	"strconv"

	"storefront/internal/domain"
	"storefront/internal/middleware"
	"storefront/internal/session"
	"storefront/internal/store"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var errInvalidID = errors.New("invalid id")

// LineView is one cart line as the UI renders it
type LineView struct {
	ID        int                `json:"id"`
	Name      string             `json:"name"`
	Category  string             `json:"category"`
	UnitPrice decimal.Decimal    `json:"unit_price"`
	Quantity  int                `json:"quantity"`
	Subtotal  decimal.Decimal    `json:"subtotal"`
	Item      domain.CatalogItem `json:"item"`
}

// CartView is a cart snapshot with its derived totals
type CartView struct {
	Lines         []LineView          `json:"lines"`
	TotalItems    int                 `json:"total_items"`
	TotalPrice    decimal.Decimal     `json:"total_price"`
	DeliveryMode  domain.DeliveryMode `json:"delivery_mode"`
	TableNumber   *int                `json:"table_number,omitempty"`
	TableRequired bool                `json:"table_required"`
	Version       uint64              `json:"version"`
	Notice        string              `json:"notice,omitempty"`
}

func newCartView(st store.State, notice string) CartView {
	lines := make([]LineView, 0, len(st.Lines))
	for _, l := range st.Lines {
		lines = append(lines, LineView{
			ID:        l.Item.ItemID(),
			Name:      l.Item.DisplayName(),
			Category:  l.Item.CategoryTag(),
			UnitPrice: l.Item.UnitPrice(),
			Quantity:  l.Quantity,
			Subtotal:  l.Subtotal(),
			Item:      l.Item,
		})
	}
	return CartView{
		Lines:         lines,
		TotalItems:    st.TotalItemCount(),
		TotalPrice:    st.TotalPrice(),
		DeliveryMode:  st.Mode,
		TableNumber:   st.TableNumber,
		TableRequired: st.Mode == domain.DeliveryTable,
		Version:       st.Version,
		Notice:        notice,
	}
}

// QuantityRequest sets the quantity of a cart line. Zero or less removes it.
type QuantityRequest struct {
	Quantity *int `json:"quantity" validate:"required"`
}

// currentSession returns the session attached by the session middleware
func currentSession(w http.ResponseWriter, r *http.Request, logger *zap.Logger) (*session.Session, bool) {
	s, ok := middleware.GetSession(r.Context())
	if !ok {
		logger.Error("Request reached a handler without a session", zap.String("path", r.URL.Path))
		middleware.RespondWithError(w, http.StatusInternalServerError, "session unavailable")
		return nil, false
	}
	return s, true
}

func pathID(r *http.Request) (int, error) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id < 1 {
		return 0, errInvalidID
	}
	return id, nil
}

// respondRequestError maps decode and validation failures to 400 responses
func respondRequestError(w http.ResponseWriter, err error) {
	if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
		middleware.RespondWithValidationErrors(w, validationErrors)
		return
	}
	middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
}
