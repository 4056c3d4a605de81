// Package catalog provides the read-only price catalog mapping detector
// labels to unit prices.
package catalog

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
)

// Catalog maps item names to unit prices. It is built once at startup and
// never mutated afterwards, so reads need no locking.
type Catalog struct {
	prices map[string]float64
}

// entry is the per-item object in the price JSON document.
type entry struct {
	Price float64 `json:"price"`
}

// FromMap builds a Catalog from an in-memory name to price mapping.
func FromMap(prices map[string]float64) *Catalog {
	copied := make(map[string]float64, len(prices))
	for name, price := range prices {
		copied[name] = price
	}
	return &Catalog{prices: copied}
}

// Parse reads a price document of the form {"item": {"price": 2.5}, ...}.
func Parse(r io.Reader) (*Catalog, error) {
	var doc map[string]entry
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse price catalog: %w", err)
	}

	prices := make(map[string]float64, len(doc))
	for name, e := range doc {
		prices[name] = e.Price
	}
	return &Catalog{prices: prices}, nil
}

// LoadFile reads a price catalog from a JSON file on disk.
func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open price catalog: %w", err)
	}
	defer f.Close()

	return Parse(f)
}

// Price returns the unit price for name and whether the name is known.
func (c *Catalog) Price(name string) (float64, bool) {
	price, ok := c.prices[name]
	return price, ok
}

// Has reports whether name is in the catalog.
func (c *Catalog) Has(name string) bool {
	_, ok := c.prices[name]
	return ok
}

// Len returns the number of priced items.
func (c *Catalog) Len() int {
	return len(c.prices)
}

// Map returns a copy of the full name to price mapping.
func (c *Catalog) Map() map[string]float64 {
	copied := make(map[string]float64, len(c.prices))
	for name, price := range c.prices {
		copied[name] = price
	}
	return copied
}

// Names returns all item names in sorted order.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.prices))
	for name := range c.prices {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
