package mockapi

import (
	"net/http"

	"github.com/dukerupert/atelier/internal/domain"
)

// placeOrder handles POST /api/orders
func (s *Server) placeOrder(w http.ResponseWriter, r *http.Request) {
	var req domain.CheckoutRequest
	if err := decodeJSON(r, "order.place", &req); err != nil {
		errorResponse(w, r, err)
		return
	}

	order, err := s.backend.PlaceOrder(currentUser(r).ID, req)
	if err != nil {
		errorResponse(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, order)
}

// listMyOrders handles GET /api/orders/my
func (s *Server) listMyOrders(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.backend.MyOrders(currentUser(r).ID))
}

// getOrder handles GET /api/orders/{id}
func (s *Server) getOrder(w http.ResponseWriter, r *http.Request) {
	u := currentUser(r)
	order, err := s.backend.Order(u.ID, u.IsAdmin(), r.PathValue("id"))
	if err != nil {
		errorResponse(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}
