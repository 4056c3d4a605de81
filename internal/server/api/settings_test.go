package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSettingsHandler_PutGet(t *testing.T) {
	s := newTestStore(t)
	handler := NewSettingsHandler(s)

	t.Run("stores a value", func(t *testing.T) {
		body, _ := json.Marshal(putSettingRequest{Value: "dark"})
		req := httptest.NewRequest(http.MethodPut, "/api/settings/theme", bytes.NewReader(body))
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
		}
	})

	t.Run("reads the value back", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/settings/theme", nil)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
		}

		var response settingResponse
		if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if response.Value != "dark" {
			t.Errorf("value = %q, want dark", response.Value)
		}
	})

	t.Run("returns 404 for unknown key", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/settings/missing", nil)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Errorf("expected status %d, got %d", http.StatusNotFound, rec.Code)
		}
	})

	t.Run("rejects empty key", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/settings/", nil)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected status %d, got %d", http.StatusBadRequest, rec.Code)
		}
	})
}
