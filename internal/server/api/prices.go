// Package api provides HTTP API handlers for the SmartShopping checkout
// assistant.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/lo7ol3/SmartShopping/internal/store"
)

// PricesHandler handles HTTP requests for the price catalog.
type PricesHandler struct {
	store *store.Store
}

// NewPricesHandler creates a new PricesHandler with the given store.
func NewPricesHandler(s *store.Store) *PricesHandler {
	return &PricesHandler{store: s}
}

// ServeHTTP implements the http.Handler interface and routes requests to appropriate methods.
func (h *PricesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Expected paths: /api/prices or /api/prices/{name}
	path := strings.TrimPrefix(r.URL.Path, "/api/prices")
	path = strings.TrimPrefix(path, "/")

	if path == "" {
		// Collection endpoint: /api/prices
		switch r.Method {
		case http.MethodGet:
			h.list(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
		return
	}

	// Item endpoint: /api/prices/{name}
	name := path
	switch r.Method {
	case http.MethodGet:
		h.get(w, r, name)
	case http.MethodPut:
		h.put(w, r, name)
	case http.MethodDelete:
		h.delete(w, r, name)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// Request and response types

type putPriceRequest struct {
	Price float64 `json:"price"`
}

type priceResponse struct {
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	CreatedAt string  `json:"created_at"`
	UpdatedAt string  `json:"updated_at"`
}

type listPricesResponse struct {
	Prices []priceResponse `json:"prices"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// toResponse converts a store.Price to a priceResponse.
func toResponse(p *store.Price) priceResponse {
	return priceResponse{
		Name:      p.Name,
		Price:     p.Price,
		CreatedAt: p.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt: p.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// list handles GET /api/prices and returns the whole catalog.
func (h *PricesHandler) list(w http.ResponseWriter, r *http.Request) {
	prices, err := h.store.Prices().List()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list prices")
		return
	}

	response := listPricesResponse{
		Prices: make([]priceResponse, 0, len(prices)),
	}

	for i := range prices {
		response.Prices = append(response.Prices, toResponse(&prices[i]))
	}

	writeJSON(w, http.StatusOK, response)
}

// get handles GET /api/prices/{name} and returns a single item's price.
func (h *PricesHandler) get(w http.ResponseWriter, r *http.Request, name string) {
	price, err := h.store.Prices().Get(name)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Item not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get price")
		return
	}

	writeJSON(w, http.StatusOK, toResponse(price))
}

// put handles PUT /api/prices/{name} and creates or updates an item's price.
func (h *PricesHandler) put(w http.ResponseWriter, r *http.Request, name string) {
	var req putPriceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Price < 0 {
		writeError(w, http.StatusBadRequest, "Price must not be negative")
		return
	}

	if err := h.store.Prices().Upsert(name, req.Price); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save price")
		return
	}

	price, err := h.store.Prices().Get(name)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get price")
		return
	}

	writeJSON(w, http.StatusOK, toResponse(price))
}

// delete handles DELETE /api/prices/{name} and removes an item from the catalog.
func (h *PricesHandler) delete(w http.ResponseWriter, r *http.Request, name string) {
	err := h.store.Prices().Delete(name)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Item not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to delete price")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
