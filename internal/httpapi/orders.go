package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"github.com/mvargas/cafe-orders/internal/domain"
	"go.uber.org/zap"
)

func (s *Server) listOrders(w http.ResponseWriter, r *http.Request) {
	page, size := pageParams(r)
	orders, total, err := s.orders.List(r.Context(), page, size)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, pageResult{Items: orders, Total: total, Page: page, Size: size})
}

func (s *Server) getOrder(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		http.Error(w, "invalid order id", http.StatusBadRequest)
		return
	}
	order, err := s.orders.GetByID(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (s *Server) createOrder(w http.ResponseWriter, r *http.Request) {
	ct := r.Header.Get("Content-Type")
	if !strings.HasPrefix(strings.ToLower(ct), "application/json") {
		http.Error(w, "Content-Type must be application/json", http.StatusUnsupportedMediaType)
		return
	}

	var req domain.Order
	if err := decodeJSON(r, &req); err != nil {
		s.logger.Error("bad order payload", zap.Error(err))
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}

	// Item prices and the total in the request are ignored: the
	// processor snapshots catalog prices itself.
	order, err := s.service.CreateOrder(r.Context(), &req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, order)
}

func (s *Server) deleteOrder(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		http.Error(w, "invalid order id", http.StatusBadRequest)
		return
	}
	if err := s.service.DeleteOrder(r.Context(), id); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) ordersByCustomer(w http.ResponseWriter, r *http.Request) {
	customerID, err := idParam(r, "customerID")
	if err != nil {
		http.Error(w, "invalid customer id", http.StatusBadRequest)
		return
	}
	orders, err := s.service.OrdersByCustomer(r.Context(), customerID)
	if err != nil {
		// The customer is the resource here, so an unknown one is 404.
		// No orders for a known customer is an empty list, not an error.
		if errors.Is(err, domain.ErrInvalidCustomer) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}
