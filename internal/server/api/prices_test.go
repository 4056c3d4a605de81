package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/lo7ol3/SmartShopping/internal/store"
)

// newTestStore creates a new Store with a temporary database for testing.
func newTestStore(t *testing.T) *store.Store {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	s, err := store.New(dbPath)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() {
		s.Close()
	})

	return s
}

func TestPricesHandler_List(t *testing.T) {
	s := newTestStore(t)
	handler := NewPricesHandler(s)

	if err := s.Prices().Upsert("apple", 2.50); err != nil {
		t.Fatalf("failed to seed price: %v", err)
	}
	if err := s.Prices().Upsert("milk", 3.00); err != nil {
		t.Fatalf("failed to seed price: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/prices", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, rec.Code)
	}

	contentType := rec.Header().Get("Content-Type")
	if contentType != "application/json" {
		t.Errorf("expected Content-Type application/json, got %s", contentType)
	}

	var response listPricesResponse
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if len(response.Prices) != 2 {
		t.Fatalf("expected 2 prices, got %d", len(response.Prices))
	}

	// List is ordered by name.
	if response.Prices[0].Name != "apple" || response.Prices[0].Price != 2.50 {
		t.Errorf("unexpected first entry: %+v", response.Prices[0])
	}
}

func TestPricesHandler_Get(t *testing.T) {
	s := newTestStore(t)
	handler := NewPricesHandler(s)

	if err := s.Prices().Upsert("apple", 2.50); err != nil {
		t.Fatalf("failed to seed price: %v", err)
	}

	t.Run("returns the item", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/prices/apple", nil)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
		}

		var response priceResponse
		if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}

		if response.Name != "apple" || response.Price != 2.50 {
			t.Errorf("unexpected response: %+v", response)
		}
	})

	t.Run("returns 404 for unknown item", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/prices/durian", nil)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Errorf("expected status %d, got %d", http.StatusNotFound, rec.Code)
		}
	})
}

func TestPricesHandler_Put(t *testing.T) {
	s := newTestStore(t)
	handler := NewPricesHandler(s)

	t.Run("creates a new item", func(t *testing.T) {
		body, _ := json.Marshal(putPriceRequest{Price: 4.20})
		req := httptest.NewRequest(http.MethodPut, "/api/prices/bread", bytes.NewReader(body))
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
		}

		price, err := s.Prices().Get("bread")
		if err != nil {
			t.Fatalf("price not stored: %v", err)
		}
		if price.Price != 4.20 {
			t.Errorf("stored price = %v, want 4.20", price.Price)
		}
	})

	t.Run("updates an existing item", func(t *testing.T) {
		body, _ := json.Marshal(putPriceRequest{Price: 5.00})
		req := httptest.NewRequest(http.MethodPut, "/api/prices/bread", bytes.NewReader(body))
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
		}

		price, err := s.Prices().Get("bread")
		if err != nil {
			t.Fatalf("price not stored: %v", err)
		}
		if price.Price != 5.00 {
			t.Errorf("stored price = %v, want 5.00", price.Price)
		}
	})

	t.Run("rejects negative prices", func(t *testing.T) {
		body, _ := json.Marshal(putPriceRequest{Price: -1})
		req := httptest.NewRequest(http.MethodPut, "/api/prices/bread", bytes.NewReader(body))
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected status %d, got %d", http.StatusBadRequest, rec.Code)
		}
	})

	t.Run("rejects invalid JSON", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPut, "/api/prices/bread", bytes.NewReader([]byte("{")))
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected status %d, got %d", http.StatusBadRequest, rec.Code)
		}
	})
}

func TestPricesHandler_Delete(t *testing.T) {
	s := newTestStore(t)
	handler := NewPricesHandler(s)

	if err := s.Prices().Upsert("apple", 2.50); err != nil {
		t.Fatalf("failed to seed price: %v", err)
	}

	t.Run("deletes the item", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodDelete, "/api/prices/apple", nil)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusNoContent {
			t.Fatalf("expected status %d, got %d", http.StatusNoContent, rec.Code)
		}

		if _, err := s.Prices().Get("apple"); err != store.ErrNotFound {
			t.Errorf("expected ErrNotFound after delete, got %v", err)
		}
	})

	t.Run("returns 404 for unknown item", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodDelete, "/api/prices/apple", nil)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Errorf("expected status %d, got %d", http.StatusNotFound, rec.Code)
		}
	})
}

func TestPricesHandler_MethodNotAllowed(t *testing.T) {
	s := newTestStore(t)
	handler := NewPricesHandler(s)

	req := httptest.NewRequest(http.MethodPost, "/api/prices", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected status %d, got %d", http.StatusMethodNotAllowed, rec.Code)
	}
}
