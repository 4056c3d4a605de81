// Package server provides the HTTP server for the SmartShopping checkout
// assistant.
package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/lo7ol3/SmartShopping/internal/app"
	"github.com/lo7ol3/SmartShopping/internal/capture"
	"github.com/lo7ol3/SmartShopping/internal/dialog"
	"github.com/lo7ol3/SmartShopping/internal/server/api"
	"github.com/lo7ol3/SmartShopping/internal/store"
)

// Config holds the server configuration.
type Config struct {
	StaticDir string
	Store     *store.Store
	Camera    capture.Camera
	App       *app.App
}

// Server represents the HTTP server for the SmartShopping application.
type Server struct {
	config Config
	mux    *http.ServeMux
	start  time.Time
}

// New creates a new Server with the given configuration.
func New(config Config) *Server {
	s := &Server{
		config: config,
		mux:    http.NewServeMux(),
		start:  time.Now(),
	}
	s.setupRoutes()
	return s
}

// setupRoutes configures all HTTP routes for the server.
func (s *Server) setupRoutes() {
	s.mux.HandleFunc("/api/health", s.handleHealth)
	s.mux.Handle("/metrics", promhttp.Handler())

	// Register the catalog API if Store is configured
	if s.config.Store != nil {
		pricesHandler := api.NewPricesHandler(s.config.Store)
		s.mux.Handle("/api/prices", pricesHandler)
		s.mux.Handle("/api/prices/", pricesHandler)

		settingsHandler := api.NewSettingsHandler(s.config.Store)
		s.mux.Handle("/api/settings/", settingsHandler)
	}

	// Register the assistant surface if App is configured
	if s.config.App != nil {
		s.mux.HandleFunc("/api/cart", s.handleCart)
		s.mux.HandleFunc("/api/status", s.handleStatus)
		s.mux.HandleFunc("/api/buttons", s.handleButtons)
		s.mux.Handle("/api/events", NewEventsHandler(s.config.App))
	}

	// Register camera stream endpoint if Camera is configured
	if s.config.Camera != nil {
		streamHandler := NewStreamHandler(s.config.Camera)
		s.mux.Handle("/api/stream", streamHandler)
	}

	// Serve static files if StaticDir is configured
	if s.config.StaticDir != "" {
		fs := http.FileServer(http.Dir(s.config.StaticDir))
		s.mux.Handle("/", fs)
	}
}

// ServeHTTP implements the http.Handler interface.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// handleHealth handles GET requests to /api/health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	uptime := time.Since(s.start)

	response := map[string]interface{}{
		"status": "ok",
		"uptime": uptime.String(),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

type cartLineResponse struct {
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unit_price"`
	Qty       int     `json:"qty"`
	Total     float64 `json:"total"`
}

type cartResponse struct {
	Lines []cartLineResponse `json:"lines"`
	Total float64            `json:"total"`
}

// handleCart handles GET requests to /api/cart.
func (s *Server) handleCart(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	c := s.config.App.Cart()
	lines := c.Lines()

	response := cartResponse{
		Lines: make([]cartLineResponse, 0, len(lines)),
		Total: c.Total(),
	}
	for _, line := range lines {
		response.Lines = append(response.Lines, cartLineResponse{
			Name:      line.Name,
			UnitPrice: line.UnitPrice,
			Qty:       line.Qty,
			Total:     line.Total(),
		})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// handleStatus handles GET requests to /api/status.
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(s.config.App.Snapshot())
}

type buttonRequest struct {
	Button string `json:"button"`
	Qty    int    `json:"qty"`
}

// handleButtons handles POST requests to /api/buttons. The press is queued
// for the event loop; the response does not wait for the dialog transition.
func (s *Server) handleButtons(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req buttonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	button := dialog.Button(req.Button)
	switch button {
	case dialog.ButtonScan, dialog.ButtonYes, dialog.ButtonNo, dialog.ButtonTotal:
	case dialog.ButtonQty:
		if req.Qty < 1 || req.Qty > 10 {
			http.Error(w, "Quantity must be between 1 and 10", http.StatusBadRequest)
			return
		}
	default:
		http.Error(w, "Unknown button", http.StatusBadRequest)
		return
	}

	s.config.App.PressButton(button, req.Qty)
	w.WriteHeader(http.StatusAccepted)
}

// ListenAndServe starts the HTTP server on the given address.
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s)
}
