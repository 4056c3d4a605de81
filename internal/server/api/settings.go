package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/lo7ol3/SmartShopping/internal/store"
)

// SettingsHandler handles HTTP requests for application settings.
type SettingsHandler struct {
	store *store.Store
}

// NewSettingsHandler creates a new SettingsHandler with the given store.
func NewSettingsHandler(s *store.Store) *SettingsHandler {
	return &SettingsHandler{store: s}
}

type settingResponse struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type putSettingRequest struct {
	Value string `json:"value"`
}

// ServeHTTP implements the http.Handler interface.
func (h *SettingsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Expected path: /api/settings/{key}
	key := strings.TrimPrefix(r.URL.Path, "/api/settings")
	key = strings.TrimPrefix(key, "/")
	if key == "" {
		http.Error(w, "Setting key required", http.StatusBadRequest)
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.get(w, r, key)
	case http.MethodPut:
		h.put(w, r, key)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// get handles GET /api/settings/{key}.
func (h *SettingsHandler) get(w http.ResponseWriter, r *http.Request, key string) {
	value, err := h.store.Settings().Get(key)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Setting not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get setting")
		return
	}

	writeJSON(w, http.StatusOK, settingResponse{Key: key, Value: value})
}

// put handles PUT /api/settings/{key}.
func (h *SettingsHandler) put(w http.ResponseWriter, r *http.Request, key string) {
	var req putSettingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if err := h.store.Settings().Set(key, req.Value); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save setting")
		return
	}

	writeJSON(w, http.StatusOK, settingResponse{Key: key, Value: req.Value})
}
