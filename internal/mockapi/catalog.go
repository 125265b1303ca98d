package mockapi

import (
	"net/http"

	"github.com/dukerupert/atelier/internal/domain"
)

// listProducts handles GET /api/products?category=&search=
func (s *Server) listProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	writeJSON(w, http.StatusOK, s.backend.ListProducts(domain.ProductFilter{
		CategoryID: q.Get("category"),
		Search:     q.Get("search"),
	}))
}

// getProduct handles GET /api/products/{id}
func (s *Server) getProduct(w http.ResponseWriter, r *http.Request) {
	p, err := s.backend.Product(r.PathValue("id"))
	if err != nil {
		errorResponse(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// listCategories handles GET /api/categories
func (s *Server) listCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.backend.Categories())
}
