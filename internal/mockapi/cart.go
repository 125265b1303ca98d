package mockapi

import (
	"net/http"

	"github.com/dukerupert/atelier/internal/domain"
)

type cartItemBody struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// getCart handles GET /api/cart
func (s *Server) getCart(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.backend.Cart(currentUser(r).ID))
}

// addCartItem handles POST /api/cart/items. Quantities add up.
func (s *Server) addCartItem(w http.ResponseWriter, r *http.Request) {
	var body cartItemBody
	if err := decodeJSON(r, "cart.add", &body); err != nil {
		errorResponse(w, r, err)
		return
	}
	if body.ProductID == "" {
		errorResponse(w, r, domain.NewValidationError("cart.add", "productId", "is required"))
		return
	}

	cart, err := s.backend.AddToCart(currentUser(r).ID, body.ProductID, body.Quantity)
	if err != nil {
		errorResponse(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cart)
}

// updateCartItem handles PUT /api/cart/items/{productId}
func (s *Server) updateCartItem(w http.ResponseWriter, r *http.Request) {
	var body cartItemBody
	if err := decodeJSON(r, "cart.update", &body); err != nil {
		errorResponse(w, r, err)
		return
	}

	cart, err := s.backend.SetCartQuantity(currentUser(r).ID, r.PathValue("productId"), body.Quantity)
	if err != nil {
		errorResponse(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cart)
}

// removeCartItem handles DELETE /api/cart/items/{productId}
func (s *Server) removeCartItem(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.backend.RemoveFromCart(currentUser(r).ID, r.PathValue("productId")))
}
