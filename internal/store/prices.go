package store

import (
	"database/sql"
	"errors"
	"time"
)

// ErrNotFound is returned when a requested resource does not exist.
var ErrNotFound = errors.New("not found")

// Price represents one priced item in the catalog table.
type Price struct {
	Name      string
	Price     float64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// PriceRepository provides CRUD operations for the price catalog.
type PriceRepository struct {
	db *sql.DB
}

// Prices returns the price repository for this store.
func (s *Store) Prices() *PriceRepository {
	return &PriceRepository{db: s.db}
}

// Upsert inserts or replaces the price for an item.
func (r *PriceRepository) Upsert(name string, price float64) error {
	now := time.Now()
	_, err := r.db.Exec(
		`INSERT INTO prices (name, price, created_at, updated_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET price = excluded.price, updated_at = excluded.updated_at`,
		name, price, now, now,
	)
	return err
}

// Get retrieves the price for an item by name.
func (r *PriceRepository) Get(name string) (*Price, error) {
	p := &Price{}

	err := r.db.QueryRow(
		`SELECT name, price, created_at, updated_at FROM prices WHERE name = ?`,
		name,
	).Scan(&p.Name, &p.Price, &p.CreatedAt, &p.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return p, nil
}

// List returns all priced items ordered by name.
func (r *PriceRepository) List() ([]Price, error) {
	rows, err := r.db.Query(
		`SELECT name, price, created_at, updated_at FROM prices ORDER BY name`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var prices []Price
	for rows.Next() {
		var p Price
		if err := rows.Scan(&p.Name, &p.Price, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		prices = append(prices, p)
	}

	return prices, rows.Err()
}

// AsMap returns the whole catalog as a name to price mapping.
func (r *PriceRepository) AsMap() (map[string]float64, error) {
	prices, err := r.List()
	if err != nil {
		return nil, err
	}

	m := make(map[string]float64, len(prices))
	for _, p := range prices {
		m[p.Name] = p.Price
	}
	return m, nil
}

// Count returns the number of priced items.
func (r *PriceRepository) Count() (int, error) {
	var n int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM prices`).Scan(&n)
	return n, err
}

// Delete removes an item from the catalog.
func (r *PriceRepository) Delete(name string) error {
	result, err := r.db.Exec(`DELETE FROM prices WHERE name = ?`, name)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}

// Import replaces prices with the entries of the given mapping. Existing
// items not present in the mapping are kept; items in the mapping are
// upserted. The whole import runs in one transaction.
func (r *PriceRepository) Import(prices map[string]float64) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}

	now := time.Now()
	for name, price := range prices {
		if _, err := tx.Exec(
			`INSERT INTO prices (name, price, created_at, updated_at)
			 VALUES (?, ?, ?, ?)
			 ON CONFLICT(name) DO UPDATE SET price = excluded.price, updated_at = excluded.updated_at`,
			name, price, now, now,
		); err != nil {
			tx.Rollback()
			return err
		}
	}

	return tx.Commit()
}
