package mockapi

import (
	"net/http"
)

// getWishlist handles GET /api/wishlist
func (s *Server) getWishlist(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.backend.Wishlist(currentUser(r).ID))
}

// toggleWishlist handles POST /api/wishlist/toggle/{productId}
func (s *Server) toggleWishlist(w http.ResponseWriter, r *http.Request) {
	added, err := s.backend.ToggleWishlist(currentUser(r).ID, r.PathValue("productId"))
	if err != nil {
		errorResponse(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"added": added})
}
