package transport

import (
	"net/http"

	"storefront/internal/middleware"

	"github.com/go-chi/chi/v5"
)

// Section is one entry of the landing page
type Section struct {
	Title string `json:"title"`
	Path  string `json:"path"`
}

var sections = []Section{
	{Title: "Bookstore", Path: "/api/books"},
	{Title: "Cafeteria", Path: "/api/cafeteria"},
	{Title: "Contact", Path: "/api/contact"},
}

// RegisterLandingRoutes registers the landing page and sends every unknown
// path back to it
func RegisterLandingRoutes(r chi.Router) {
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		middleware.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
			"sections": sections,
		})
	})
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/", http.StatusFound)
	})
}
