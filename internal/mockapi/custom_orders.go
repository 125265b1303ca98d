package mockapi

import (
	"net/http"

	"github.com/dukerupert/atelier/internal/domain"
)

// createCustomOrder handles POST /api/custom-orders
func (s *Server) createCustomOrder(w http.ResponseWriter, r *http.Request) {
	var req domain.CustomOrderRequest
	if err := decodeJSON(r, "customorder.create", &req); err != nil {
		errorResponse(w, r, err)
		return
	}

	o, err := s.backend.CreateCustomOrder(currentUser(r).ID, req)
	if err != nil {
		errorResponse(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, o)
}

// listMyCustomOrders handles GET /api/custom-orders/my
func (s *Server) listMyCustomOrders(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.backend.MyCustomOrders(currentUser(r).ID))
}

// getCustomOrder handles GET /api/custom-orders/{id}
func (s *Server) getCustomOrder(w http.ResponseWriter, r *http.Request) {
	u := currentUser(r)
	o, err := s.backend.CustomOrder(u.ID, u.IsAdmin(), r.PathValue("id"))
	if err != nil {
		errorResponse(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

// payCustomOrder handles POST /api/custom-orders/{id}/pay
func (s *Server) payCustomOrder(w http.ResponseWriter, r *http.Request) {
	o, err := s.backend.PayCustomOrder(currentUser(r).ID, r.PathValue("id"))
	s.respondCustomOrder(w, r, o, err)
}

// listAllCustomOrders handles GET /api/custom-orders/admin/all?status=
func (s *Server) listAllCustomOrders(w http.ResponseWriter, r *http.Request) {
	var filter *domain.CustomOrderStatus
	if raw := r.URL.Query().Get("status"); raw != "" {
		status, err := domain.ParseCustomOrderStatus(raw)
		if err != nil {
			errorResponse(w, r, err)
			return
		}
		filter = &status
	}
	writeJSON(w, http.StatusOK, s.backend.AllCustomOrders(filter))
}

// approveCustomOrder handles PUT /api/custom-orders/admin/{id}/approve
func (s *Server) approveCustomOrder(w http.ResponseWriter, r *http.Request) {
	var d domain.PriceDecision
	if err := decodeJSON(r, "customorder.approve", &d); err != nil {
		errorResponse(w, r, err)
		return
	}
	o, err := s.backend.ApproveCustomOrder(r.PathValue("id"), d)
	s.respondCustomOrder(w, r, o, err)
}

// quoteCustomOrder handles PUT /api/custom-orders/admin/{id}/quote
func (s *Server) quoteCustomOrder(w http.ResponseWriter, r *http.Request) {
	var d domain.PriceDecision
	if err := decodeJSON(r, "customorder.quote", &d); err != nil {
		errorResponse(w, r, err)
		return
	}
	o, err := s.backend.QuoteCustomOrder(r.PathValue("id"), d)
	s.respondCustomOrder(w, r, o, err)
}

// rejectCustomOrder handles PUT /api/custom-orders/admin/{id}/reject
func (s *Server) rejectCustomOrder(w http.ResponseWriter, r *http.Request) {
	var body domain.Rejection
	if err := decodeJSON(r, "customorder.reject", &body); err != nil {
		errorResponse(w, r, err)
		return
	}
	o, err := s.backend.RejectCustomOrder(r.PathValue("id"), body)
	s.respondCustomOrder(w, r, o, err)
}

// updateCustomOrderStatus handles PUT /api/custom-orders/admin/{id}/status
func (s *Server) updateCustomOrderStatus(w http.ResponseWriter, r *http.Request) {
	var body domain.StatusUpdate
	if err := decodeJSON(r, "customorder.update_status", &body); err != nil {
		errorResponse(w, r, err)
		return
	}
	o, err := s.backend.UpdateCustomOrderStatus(r.PathValue("id"), body)
	s.respondCustomOrder(w, r, o, err)
}

func (s *Server) respondCustomOrder(w http.ResponseWriter, r *http.Request, o domain.CustomOrder, err error) {
	if err != nil {
		errorResponse(w, r, err)
		return
	}
	s.logger.Debug("custom order updated", "id", o.ID, "status", o.Status)
	writeJSON(w, http.StatusOK, o)
}
