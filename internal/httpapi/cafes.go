package httpapi

import (
	"net/http"

	"github.com/mvargas/cafe-orders/internal/domain"
	"go.uber.org/zap"
)

func (s *Server) listCafes(w http.ResponseWriter, r *http.Request) {
	page, size := pageParams(r)
	cafes, total, err := s.cafes.List(r.Context(), page, size)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, pageResult{Items: cafes, Total: total, Page: page, Size: size})
}

func (s *Server) getCafe(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		http.Error(w, "invalid cafe id", http.StatusBadRequest)
		return
	}
	cafe, err := s.cafes.GetByID(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cafe)
}

func (s *Server) createCafe(w http.ResponseWriter, r *http.Request) {
	var cafe domain.Cafe
	if err := decodeJSON(r, &cafe); err != nil {
		s.logger.Error("bad cafe payload", zap.Error(err))
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	stored, err := s.cafes.Create(r.Context(), &cafe)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, stored)
}

func (s *Server) updateCafe(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		http.Error(w, "invalid cafe id", http.StatusBadRequest)
		return
	}
	var cafe domain.Cafe
	if err := decodeJSON(r, &cafe); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	updated, err := s.cafes.Update(r.Context(), id, &cafe)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// patchCafe merges only the provided fields into the stored cafe.
func (s *Server) patchCafe(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		http.Error(w, "invalid cafe id", http.StatusBadRequest)
		return
	}
	var patch struct {
		Name        *string  `json:"name"`
		Description *string  `json:"description"`
		Price       *float64 `json:"price"`
	}
	if err := decodeJSON(r, &patch); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}

	cafe, err := s.cafes.GetByID(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if patch.Name != nil {
		cafe.Name = *patch.Name
	}
	if patch.Description != nil {
		cafe.Description = *patch.Description
	}
	if patch.Price != nil {
		cafe.Price = *patch.Price
	}

	updated, err := s.cafes.Update(r.Context(), id, cafe)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) deleteCafe(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		http.Error(w, "invalid cafe id", http.StatusBadRequest)
		return
	}
	if err := s.cafes.Delete(r.Context(), id); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
