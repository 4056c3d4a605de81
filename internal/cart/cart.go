// Package cart provides the in-memory shopping cart for the SmartShopping
// voice checkout assistant.
package cart

import (
	"errors"
	"fmt"
	"sync"
)

// ErrNotFound is returned when a removal targets an item that is not in the cart.
var ErrNotFound = errors.New("item not found in cart")

// ErrInvalidQuantity is returned when an operation is given a quantity below 1.
var ErrInvalidQuantity = errors.New("quantity must be at least 1")

// InsufficientQuantityError is returned when a removal asks for more units
// than the cart holds. Available carries the quantity actually in the cart.
type InsufficientQuantityError struct {
	Item      string
	Available int
}

func (e *InsufficientQuantityError) Error() string {
	return fmt.Sprintf("only %d of %s in cart", e.Available, e.Item)
}

// Line is one cart entry: an item name, the unit price recorded on first
// add, and the aggregate quantity.
type Line struct {
	Name      string
	UnitPrice float64
	Qty       int
}

// Total returns the line total (unit price times quantity).
func (l Line) Total() float64 {
	return l.UnitPrice * float64(l.Qty)
}

// Cart is a mutable mapping from item name to cart line. All operations are
// atomic; a caller never observes a half-applied add or remove. Lines keep
// insertion order so the cart can be read back in the order items were added.
type Cart struct {
	mu    sync.Mutex
	lines map[string]*Line
	order []string
}

// New creates an empty Cart.
func New() *Cart {
	return &Cart{
		lines: make(map[string]*Line),
	}
}

// Add inserts qty units of item at the given unit price. If the item is
// already in the cart its quantity is incremented and the stored price is
// kept (first-seen price wins). qty must be at least 1.
func (c *Cart) Add(item string, price float64, qty int) error {
	if qty < 1 {
		return ErrInvalidQuantity
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if line, ok := c.lines[item]; ok {
		line.Qty += qty
		return nil
	}

	c.lines[item] = &Line{Name: item, UnitPrice: price, Qty: qty}
	c.order = append(c.order, item)
	return nil
}

// Remove takes qty units of item out of the cart. It returns ErrNotFound if
// the item is absent and *InsufficientQuantityError when qty exceeds the
// held quantity; in both cases the cart is unchanged. Removing the full
// quantity deletes the line.
func (c *Cart) Remove(item string, qty int) error {
	if qty < 1 {
		return ErrInvalidQuantity
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	line, ok := c.lines[item]
	if !ok {
		return ErrNotFound
	}

	if qty > line.Qty {
		return &InsufficientQuantityError{Item: item, Available: line.Qty}
	}

	if qty == line.Qty {
		delete(c.lines, item)
		c.removeFromOrder(item)
		return nil
	}

	line.Qty -= qty
	return nil
}

// removeFromOrder drops item from the insertion-order slice.
// Caller must hold c.mu.
func (c *Cart) removeFromOrder(item string) {
	for i, name := range c.order {
		if name == item {
			c.order = append(c.order[:i], c.order[i+1:]...)
			return
		}
	}
}

// Total returns the sum of unit price times quantity over all lines.
// An empty cart totals 0.
func (c *Cart) Total() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	var total float64
	for _, line := range c.lines {
		total += line.Total()
	}
	return total
}

// Lines returns a snapshot of the cart contents in insertion order.
func (c *Cart) Lines() []Line {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Line, 0, len(c.order))
	for _, name := range c.order {
		out = append(out, *c.lines[name])
	}
	return out
}

// Get returns the line for item, or false if the item is not in the cart.
func (c *Cart) Get(item string) (Line, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	line, ok := c.lines[item]
	if !ok {
		return Line{}, false
	}
	return *line, true
}

// Len returns the number of distinct lines in the cart.
func (c *Cart) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.lines)
}

// Clear removes every line from the cart.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.lines = make(map[string]*Line)
	c.order = nil
}
