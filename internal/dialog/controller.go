package dialog

import (
	"errors"
	"log"
	"strconv"
	"strings"

	"github.com/lo7ol3/SmartShopping/internal/cart"
)

// Button identifies a discrete UI button activation.
type Button string

const (
	ButtonScan  Button = "scan"
	ButtonYes   Button = "yes"
	ButtonNo    Button = "no"
	ButtonTotal Button = "total"
	// ButtonQty is one of the quantity buttons 1-10; the value travels
	// alongside the button event.
	ButtonQty Button = "qty"
)

// Prompter speaks a prompt to the shopper. Fire-and-forget; completion is
// reported to the event loop, not to the controller.
type Prompter interface {
	Speak(text string)
}

// Notifier receives state-driven display updates. Implementations must not
// block; the controller runs on the single event-consuming goroutine.
type Notifier interface {
	ScannerText(text string)
	ShowQuantityPanel()
	HideQuantityPanel()
	CartUpdated()
}

// Controller is the dialog state machine. It owns all pending-action state,
// consumes verified detections, recognized speech, and button events, and
// emits cart mutations plus outbound prompts.
//
// The controller is not safe for concurrent use: all Handle methods must be
// invoked from a single goroutine (the event serializer).
type Controller struct {
	cart    *cart.Cart
	speaker Prompter
	ui      Notifier
	onScan  func()

	state State
}

// NewController creates a Controller in the Idle state.
func NewController(c *cart.Cart, speaker Prompter, ui Notifier) *Controller {
	return &Controller{
		cart:    c,
		speaker: speaker,
		ui:      ui,
		state:   State{Kind: StateIdle},
	}
}

// OnScan sets the callback invoked when the shopper requests scanning.
func (c *Controller) OnScan(fn func()) {
	c.onScan = fn
}

// State returns the current dialog state.
func (c *Controller) State() State {
	return c.state
}

// Idle reports whether no dialog is in progress.
func (c *Controller) Idle() bool {
	return c.state.Idle()
}

// HandleVerified starts the add-confirmation dialog for a verified
// detection. Verified events arriving while a dialog is already open are
// stale and dropped.
func (c *Controller) HandleVerified(item string, price float64) {
	if !c.state.Idle() {
		log.Printf("Dropping stale verified detection %q: dialog in progress", item)
		return
	}

	c.state = State{Kind: StateAwaitingAddConfirmation, Item: item, Price: price}
	c.ui.ScannerText(strings.ToUpper(DisplayName(item)) + "\n" + DisplayPrice(price))
	c.speaker.Speak(PromptConfirmAdd(item, price))
}

// HandleSpeech routes one recognized utterance through the state machine.
func (c *Controller) HandleSpeech(text string) {
	cmd := strings.ToLower(text)

	// Cart read-back and total work from any state and leave it unchanged.
	if strings.Contains(cmd, "read") {
		c.readCart()
		return
	}
	if strings.Contains(cmd, "total") {
		c.SpeakTotal()
		return
	}

	switch c.state.Kind {
	case StateAwaitingRemoveItem:
		c.handleRemoveItemSpeech(cmd)
	case StateAwaitingRemoveQuantity:
		c.handleRemoveQuantitySpeech(cmd)
	case StateAwaitingQuantity:
		c.handleQuantitySpeech(cmd)
	default:
		c.handleCommandSpeech(cmd)
	}
}

// handleCommandSpeech handles utterances outside the quantity/item
// collection states: the remove command from Idle, and the spoken
// equivalents of the scan/yes/no buttons.
func (c *Controller) handleCommandSpeech(cmd string) {
	if strings.Contains(cmd, "remove") && c.state.Idle() {
		c.state = State{Kind: StateAwaitingRemoveItem}
		c.speaker.Speak(PromptAskRemoveItem())
		return
	}

	switch {
	case strings.Contains(cmd, "scan"):
		c.requestScan()
	case strings.Contains(cmd, "yes"):
		c.handleYes()
	case isNegative(cmd):
		c.Cancel()
	}
}

// isNegative reports whether an utterance is a negative reply. A negative
// reply cancels the pending dialog no matter which waiting sub-state is
// active, so every speech handler must check it before interpreting the
// utterance as an answer.
func isNegative(cmd string) bool {
	return strings.Contains(cmd, "no")
}

// handleRemoveItemSpeech matches the utterance against cart item names.
// Matching is case-insensitive substring containment against the display
// name; the first cart line that matches wins. Item names are tried before
// the negative check so an item like "instant noodles" is not mistaken for
// a "no".
func (c *Controller) handleRemoveItemSpeech(cmd string) {
	for _, line := range c.cart.Lines() {
		if strings.Contains(cmd, strings.ToLower(DisplayName(line.Name))) {
			c.state = State{Kind: StateAwaitingRemoveQuantity, Item: line.Name}
			c.ui.ShowQuantityPanel()
			c.speaker.Speak(PromptAskRemoveQuantity())
			return
		}
	}

	if isNegative(cmd) {
		c.Cancel()
		return
	}

	c.state = State{Kind: StateIdle}
	c.speaker.Speak(PromptItemNotFound())
}

func (c *Controller) handleRemoveQuantitySpeech(cmd string) {
	if isNegative(cmd) {
		c.Cancel()
		return
	}

	qty, ok := ParseQuantity(cmd)
	if !ok {
		// Unparsable quantity: reprompt, state unchanged.
		c.speaker.Speak(PromptUnparsableQuantity())
		return
	}
	c.captureRemoveQuantity(qty)
}

func (c *Controller) handleQuantitySpeech(cmd string) {
	if isNegative(cmd) {
		c.Cancel()
		return
	}

	qty, ok := ParseQuantity(cmd)
	if !ok {
		c.speaker.Speak(PromptUnparsableQuantity())
		return
	}
	c.captureQuantity(qty)
}

// HandleButton routes a discrete button activation. qty is only meaningful
// for ButtonQty.
func (c *Controller) HandleButton(b Button, qty int) {
	switch b {
	case ButtonScan:
		c.requestScan()
	case ButtonYes:
		c.handleYes()
	case ButtonNo:
		c.Cancel()
	case ButtonTotal:
		c.SpeakTotal()
	case ButtonQty:
		c.handleQuantityButton(qty)
	}
}

// handleQuantityButton accepts a quantity press only while a quantity is
// being collected; otherwise the panel is hidden and the press is ignored.
func (c *Controller) handleQuantityButton(qty int) {
	if qty < 1 {
		return
	}

	switch c.state.Kind {
	case StateAwaitingQuantity:
		c.captureQuantity(qty)
	case StateAwaitingRemoveQuantity:
		c.captureRemoveQuantity(qty)
	}
}

func (c *Controller) captureQuantity(qty int) {
	c.state = State{
		Kind:  StateAwaitingQuantityConfirmation,
		Item:  c.state.Item,
		Price: c.state.Price,
		Qty:   qty,
	}
	c.ui.HideQuantityPanel()
	c.speaker.Speak(PromptConfirmQuantity(qty))
}

func (c *Controller) captureRemoveQuantity(qty int) {
	c.state = State{
		Kind: StateAwaitingRemoveConfirmation,
		Item: c.state.Item,
		Qty:  qty,
	}
	c.ui.HideQuantityPanel()
	c.speaker.Speak(PromptConfirmRemove(qty, c.state.Item))
}

// handleYes advances whichever confirmation step is live.
func (c *Controller) handleYes() {
	switch c.state.Kind {
	case StateAwaitingAddConfirmation:
		c.state = State{Kind: StateAwaitingQuantity, Item: c.state.Item, Price: c.state.Price}
		c.ui.ScannerText("HOW MANY?")
		c.ui.ShowQuantityPanel()
		c.speaker.Speak(PromptAskQuantity())

	case StateAwaitingQuantityConfirmation:
		item, price, qty := c.state.Item, c.state.Price, c.state.Qty
		if err := c.cart.Add(item, price, qty); err != nil {
			log.Printf("cart add failed: %v", err)
		}
		c.ui.HideQuantityPanel()
		c.ui.CartUpdated()
		c.ui.ScannerText("ADDED x" + strconv.Itoa(qty))
		c.speaker.Speak(PromptAdded(qty, item))
		c.state = State{Kind: StateIdle}

	case StateAwaitingRemoveConfirmation:
		c.ui.HideQuantityPanel()
		c.performRemove()
	}
}

// performRemove applies the pending removal. An over-large quantity returns
// the dialog to the quantity-collection step instead of Idle so the shopper
// does not have to restart the whole flow.
func (c *Controller) performRemove() {
	item, qty := c.state.Item, c.state.Qty

	err := c.cart.Remove(item, qty)

	var insufficient *cart.InsufficientQuantityError
	switch {
	case err == nil:
		c.ui.CartUpdated()
		c.speaker.Speak(PromptRemoved(qty, item))
		c.state = State{Kind: StateIdle}

	case errors.As(err, &insufficient):
		c.speaker.Speak(PromptInsufficient(insufficient.Available, item))
		c.state = State{Kind: StateAwaitingRemoveQuantity, Item: item}
		c.ui.ShowQuantityPanel()

	case errors.Is(err, cart.ErrNotFound):
		c.speaker.Speak(PromptItemNotFound())
		c.state = State{Kind: StateIdle}

	default:
		log.Printf("cart remove failed: %v", err)
		c.state = State{Kind: StateIdle}
	}
}

// Cancel unconditionally returns the dialog to Idle, clearing all pending
// fields, regardless of which waiting sub-state was active. A dialog
// timeout uses the same path as a spoken "no".
func (c *Controller) Cancel() {
	c.state = State{Kind: StateIdle}
	c.ui.HideQuantityPanel()
	c.ui.ScannerText("CANCELLED")
	c.speaker.Speak(PromptCancelled())
}

// requestScan forwards a scan request to the application.
func (c *Controller) requestScan() {
	if c.onScan != nil {
		c.onScan()
	}
}

// readCart speaks the enumerated cart contents. Works from any state.
func (c *Controller) readCart() {
	lines := c.cart.Lines()
	if len(lines) == 0 {
		c.speaker.Speak(PromptEmptyCart())
		return
	}
	c.speaker.Speak(PromptReadCart(lines))
}

// SpeakTotal speaks the computed cart total. Works from any state.
func (c *Controller) SpeakTotal() {
	total := c.cart.Total()
	c.ui.ScannerText("TOTAL\n" + DisplayPrice(total))
	c.speaker.Speak(PromptTotal(total))
}
