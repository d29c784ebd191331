package transport

import (
	"net/http"
	"strconv"

	"storefront/internal/config"
	"storefront/internal/domain"
	"storefront/internal/metrics"
	"storefront/internal/middleware"
	"storefront/internal/service"
	"storefront/internal/session"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Feature is a highlight shown on the cafeteria landing page
type Feature struct {
	Icon        string `json:"icon"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// OpeningHours is one row of the cafeteria timetable
type OpeningHours struct {
	Days  string `json:"days"`
	Hours string `json:"hours"`
}

// CafeteriaLanding is the static cafeteria landing content
type CafeteriaLanding struct {
	Features   []Feature      `json:"features"`
	Hours      []OpeningHours `json:"opening_hours"`
	Categories []string       `json:"categories"`
}

var cafeteriaLanding = CafeteriaLanding{
	Features: []Feature{
		{Icon: "☕", Title: "Quality coffee", Description: "Selected beans and expert baristas for the best coffee"},
		{Icon: "🥐", Title: "Fresh pastries", Description: "Baked every day in our own kitchen"},
		{Icon: "💻", Title: "Coworking area", Description: "Spaces designed for studying and working comfortably"},
		{Icon: "📚", Title: "Academic atmosphere", Description: "The perfect place for students and teachers"},
	},
	Hours: []OpeningHours{
		{Days: "Monday - Friday", Hours: "7:00 - 22:00"},
		{Days: "Saturday", Hours: "8:00 - 21:00"},
		{Days: "Sunday", Hours: "9:00 - 20:00"},
	},
	Categories: []string{
		domain.ProductCategoryCoffee,
		domain.ProductCategoryDrink,
		domain.ProductCategorySnack,
	},
}

// AddProductRequest adds a cafeteria product to the order
type AddProductRequest struct {
	ProductID int `json:"product_id" validate:"required,gt=0"`
	Quantity  int `json:"quantity" validate:"omitempty,min=1,max=99"`
}

// DeliveryRequest changes how the order is served
type DeliveryRequest struct {
	DeliveryMode domain.DeliveryMode `json:"delivery_mode" validate:"required,oneof=table counter"`
	TableNumber  *int                `json:"table_number" validate:"omitempty,min=1,max=50"`
}

// ProductListResponse is the cafeteria product list
type ProductListResponse struct {
	Products []domain.CafeteriaProduct `json:"products"`
	Count    int                       `json:"count"`
}

// CafeteriaHandler serves the cafeteria catalog and the order cart
type CafeteriaHandler struct {
	catalog service.CatalogService
	timing  config.TimingConfig
	metrics *metrics.Metrics
	logger  *zap.Logger
}

// NewCafeteriaHandler creates a new CafeteriaHandler
func NewCafeteriaHandler(catalog service.CatalogService, timing config.TimingConfig, m *metrics.Metrics, logger *zap.Logger) *CafeteriaHandler {
	return &CafeteriaHandler{catalog: catalog, timing: timing, metrics: m, logger: logger}
}

// RegisterRoutes registers the cafeteria catalog and order routes
func (h *CafeteriaHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/cafeteria", func(r chi.Router) {
		r.Get("/", h.Landing)
		r.Get("/products", h.ListProducts)
		r.Get("/products/{id}", h.GetProduct)

		r.Route("/order", func(r chi.Router) {
			r.Get("/", h.GetOrder)
			r.Delete("/", h.ClearOrder)
			r.Post("/items", h.AddItem)
			r.Put("/items/{id}", h.UpdateItem)
			r.Delete("/items/{id}", h.RemoveItem)
			r.Put("/delivery", h.SetDelivery)
		})
	})
}

// Landing returns the cafeteria highlights and opening hours
func (h *CafeteriaHandler) Landing(w http.ResponseWriter, r *http.Request) {
	middleware.RespondWithJSON(w, http.StatusOK, cafeteriaLanding)
}

// ListProducts lists products, optionally by category and availability
func (h *CafeteriaHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	availableOnly := false
	if raw := q.Get("available"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			middleware.RespondWithValidationErrors(w, []middleware.ValidationError{
				{Field: "available", Message: "Must be true or false"},
			})
			return
		}
		availableOnly = parsed
	}

	products := h.catalog.ListProducts(r.Context(), q.Get("category"), availableOnly)
	middleware.RespondWithJSON(w, http.StatusOK, ProductListResponse{Products: products, Count: len(products)})
}

// GetProduct returns one product
func (h *CafeteriaHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product id")
		return
	}
	product, ok := h.catalog.GetProduct(r.Context(), id)
	if !ok {
		middleware.RespondWithError(w, http.StatusNotFound, "product not found")
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, product)
}

func (h *CafeteriaHandler) render(w http.ResponseWriter, s *session.Session) {
	middleware.RespondWithJSON(w, http.StatusOK, newCartView(s.Order.Snapshot(), s.Notice(session.NoticeCafeteria)))
}

// GetOrder returns the cafeteria order cart
func (h *CafeteriaHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	s, ok := currentSession(w, r, h.logger)
	if !ok {
		return
	}
	h.render(w, s)
}

// AddItem adds an available product to the order
func (h *CafeteriaHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddProductRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		respondRequestError(w, err)
		return
	}
	s, ok := currentSession(w, r, h.logger)
	if !ok {
		return
	}

	product, found := h.catalog.GetProduct(r.Context(), req.ProductID)
	if !found {
		middleware.RespondWithError(w, http.StatusNotFound, "product not found")
		return
	}
	if !product.IsAvailable() {
		middleware.RespondWithError(w, http.StatusConflict, "product is not available")
		return
	}

	qty := req.Quantity
	if qty < 1 {
		qty = 1
	}
	s.Order.AddItem(product, qty)
	s.SetNotice(session.NoticeCafeteria, product.Name+" added to your order", h.timing.CafeteriaNoticeDelay)
	if h.metrics != nil {
		h.metrics.ItemsAdded.WithLabelValues(metrics.DomainCafeteria).Add(float64(qty))
	}

	h.render(w, s)
}

// UpdateItem sets the quantity of a line. Zero or less removes it.
func (h *CafeteriaHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product id")
		return
	}
	var req QuantityRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		respondRequestError(w, err)
		return
	}
	s, ok := currentSession(w, r, h.logger)
	if !ok {
		return
	}

	s.Order.UpdateQuantity(id, *req.Quantity)
	h.render(w, s)
}

// RemoveItem deletes the whole line of a product
func (h *CafeteriaHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product id")
		return
	}
	s, ok := currentSession(w, r, h.logger)
	if !ok {
		return
	}

	s.Order.RemoveItem(id)
	h.render(w, s)
}

// SetDelivery switches between table service and counter pickup
func (h *CafeteriaHandler) SetDelivery(w http.ResponseWriter, r *http.Request) {
	var req DeliveryRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		respondRequestError(w, err)
		return
	}
	s, ok := currentSession(w, r, h.logger)
	if !ok {
		return
	}

	s.Order.SetDeliveryMode(req.DeliveryMode)
	if req.DeliveryMode == domain.DeliveryTable {
		s.Order.SetTableNumber(req.TableNumber)
	}
	h.render(w, s)
}

// ClearOrder empties the order and abandons any checkout in progress
func (h *CafeteriaHandler) ClearOrder(w http.ResponseWriter, r *http.Request) {
	s, ok := currentSession(w, r, h.logger)
	if !ok {
		return
	}

	s.Checkout.Reset()
	s.Order.Clear()
	h.render(w, s)
}
