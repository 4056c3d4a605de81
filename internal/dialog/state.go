// Package dialog provides the voice dialog state machine that guides the
// shopper through confirming detected items, choosing quantities, and
// removing items from the cart.
package dialog

// StateKind identifies which step of a dialog flow is active. Exactly one
// state is live at any time; it is the sole authority for which events the
// controller currently expects.
type StateKind int

const (
	// StateIdle means no dialog is in progress; detections are accepted.
	StateIdle StateKind = iota
	// StateAwaitingAddConfirmation waits for yes/no on a verified item.
	StateAwaitingAddConfirmation
	// StateAwaitingQuantity waits for the quantity to add.
	StateAwaitingQuantity
	// StateAwaitingQuantityConfirmation waits for yes/no on the chosen quantity.
	StateAwaitingQuantityConfirmation
	// StateAwaitingRemoveItem waits for the name of the item to remove.
	StateAwaitingRemoveItem
	// StateAwaitingRemoveQuantity waits for the quantity to remove.
	StateAwaitingRemoveQuantity
	// StateAwaitingRemoveConfirmation waits for yes/no on the removal.
	StateAwaitingRemoveConfirmation
)

// String returns a short name for the state kind.
func (k StateKind) String() string {
	switch k {
	case StateIdle:
		return "idle"
	case StateAwaitingAddConfirmation:
		return "awaiting_add_confirmation"
	case StateAwaitingQuantity:
		return "awaiting_quantity"
	case StateAwaitingQuantityConfirmation:
		return "awaiting_quantity_confirmation"
	case StateAwaitingRemoveItem:
		return "awaiting_remove_item"
	case StateAwaitingRemoveQuantity:
		return "awaiting_remove_quantity"
	case StateAwaitingRemoveConfirmation:
		return "awaiting_remove_confirmation"
	default:
		return "unknown"
	}
}

// State is the live dialog state. Item, Price and Qty are only meaningful
// for the kinds that scope them; transitions replace the whole value so
// fields from an exited state never leak into the next one.
type State struct {
	Kind  StateKind
	Item  string
	Price float64
	Qty   int
}

// Idle reports whether no dialog is in progress.
func (s State) Idle() bool {
	return s.Kind == StateIdle
}
