package store

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	s, err := New(dbPath)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	return s
}

func TestNewStore_CreatesDatabase(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "smartshopping-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	dbPath := filepath.Join(tmpDir, "test.db")

	// Verify the database file doesn't exist yet
	if _, err := os.Stat(dbPath); !os.IsNotExist(err) {
		t.Fatal("database file should not exist before creating store")
	}

	// Create the store
	s, err := New(dbPath)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	defer s.Close()

	// Verify the database file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Fatal("database file should exist after creating store")
	}
}

func TestNewStore_RunsMigrations(t *testing.T) {
	s := newTestStore(t)

	// Verify that the expected tables exist by querying sqlite_master
	tables := []string{"prices", "settings"}
	for _, table := range tables {
		var name string
		err := s.DB().QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?",
			table,
		).Scan(&name)
		if err != nil {
			t.Errorf("table %q should exist after migrations: %v", table, err)
		}
	}
}

func TestPrices_UpsertAndGet(t *testing.T) {
	s := newTestStore(t)

	if err := s.Prices().Upsert("apple", 2.50); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}

	p, err := s.Prices().Get("apple")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if p.Price != 2.50 {
		t.Errorf("Price = %f, want 2.50", p.Price)
	}

	// Upsert again replaces the price
	if err := s.Prices().Upsert("apple", 3.00); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}
	p, err = s.Prices().Get("apple")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if p.Price != 3.00 {
		t.Errorf("Price after upsert = %f, want 3.00", p.Price)
	}
}

func TestPrices_GetMissing(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.Prices().Get("durian"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() error = %v, want ErrNotFound", err)
	}
}

func TestPrices_ListOrdered(t *testing.T) {
	s := newTestStore(t)

	s.Prices().Upsert("milk", 4.00)
	s.Prices().Upsert("apple", 2.50)
	s.Prices().Upsert("bread", 1.20)

	prices, err := s.Prices().List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}

	if len(prices) != 3 {
		t.Fatalf("len(List()) = %d, want 3", len(prices))
	}
	if prices[0].Name != "apple" || prices[1].Name != "bread" || prices[2].Name != "milk" {
		t.Errorf("List() not ordered by name: %v", prices)
	}
}

func TestPrices_Import(t *testing.T) {
	s := newTestStore(t)

	err := s.Prices().Import(map[string]float64{
		"apple": 2.50,
		"bread": 1.20,
	})
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}

	m, err := s.Prices().AsMap()
	if err != nil {
		t.Fatalf("AsMap() error = %v", err)
	}
	if m["apple"] != 2.50 || m["bread"] != 1.20 {
		t.Errorf("AsMap() = %v", m)
	}

	n, err := s.Prices().Count()
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if n != 2 {
		t.Errorf("Count() = %d, want 2", n)
	}
}

func TestPrices_Delete(t *testing.T) {
	s := newTestStore(t)

	s.Prices().Upsert("apple", 2.50)

	if err := s.Prices().Delete("apple"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if err := s.Prices().Delete("apple"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete() of missing item error = %v, want ErrNotFound", err)
	}
}

func TestSettings_SetAndGet(t *testing.T) {
	s := newTestStore(t)

	if err := s.Settings().Set("scanner.enabled", "true"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	v, err := s.Settings().Get("scanner.enabled")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if v != "true" {
		t.Errorf("Get() = %q, want %q", v, "true")
	}

	if _, err := s.Settings().Get("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() of missing key error = %v, want ErrNotFound", err)
	}
}
