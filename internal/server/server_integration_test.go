package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/lo7ol3/SmartShopping/internal/store"
)

func TestAPI_PriceWorkflow(t *testing.T) {
	// Setup
	tmpDir := t.TempDir()
	s, _ := store.New(filepath.Join(tmpDir, "test.db"))
	defer s.Close()

	srv := New(Config{Store: s})
	ts := httptest.NewServer(srv)
	defer ts.Close()

	client := ts.Client()

	// 1. Create a price
	putBody := `{"price": 2.5}`
	req, _ := http.NewRequest(http.MethodPut, ts.URL+"/api/prices/apple", bytes.NewBufferString(putBody))
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("PUT /api/prices/apple error = %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("PUT status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	var created struct {
		Name  string  `json:"name"`
		Price float64 `json:"price"`
	}
	json.NewDecoder(resp.Body).Decode(&created)
	resp.Body.Close()

	if created.Name != "apple" || created.Price != 2.5 {
		t.Errorf("created = %+v, want apple at 2.5", created)
	}

	// 2. List prices
	resp, _ = client.Get(ts.URL + "/api/prices")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET /api/prices status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	var listed struct {
		Prices []struct {
			Name  string  `json:"name"`
			Price float64 `json:"price"`
		} `json:"prices"`
	}
	json.NewDecoder(resp.Body).Decode(&listed)
	resp.Body.Close()

	if len(listed.Prices) != 1 {
		t.Fatalf("len(prices) = %d, want 1", len(listed.Prices))
	}

	// 3. Get single price
	resp, _ = client.Get(ts.URL + "/api/prices/apple")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET /api/prices/apple status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
	resp.Body.Close()

	// 4. Delete price
	req, _ = http.NewRequest(http.MethodDelete, ts.URL+"/api/prices/apple", nil)
	resp, _ = client.Do(req)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("DELETE status = %d, want %d", resp.StatusCode, http.StatusNoContent)
	}
	resp.Body.Close()

	// 5. Verify deleted
	resp, _ = client.Get(ts.URL + "/api/prices/apple")
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("GET after delete status = %d, want %d", resp.StatusCode, http.StatusNotFound)
	}
	resp.Body.Close()
}

func TestAPI_HealthCheck(t *testing.T) {
	srv := New(Config{})
	ts := httptest.NewServer(srv)
	defer ts.Close()

	resp, err := ts.Client().Get(ts.URL + "/api/health")
	if err != nil {
		t.Fatalf("GET /api/health error = %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	var health struct {
		Status string `json:"status"`
		Uptime string `json:"uptime"`
	}
	json.NewDecoder(resp.Body).Decode(&health)

	if health.Status != "ok" {
		t.Errorf("status = %s, want ok", health.Status)
	}
}
