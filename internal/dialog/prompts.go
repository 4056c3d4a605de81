package dialog

import (
	"fmt"
	"strings"

	"github.com/lo7ol3/SmartShopping/internal/cart"
)

// DisplayName renders an item label for speech and display: underscores
// become spaces.
func DisplayName(item string) string {
	return strings.ReplaceAll(item, "_", " ")
}

// Prompt texts spoken to the shopper. Prices are spoken in ringgit and
// shown as RM amounts.

// PromptGreeting is spoken once at startup and explains the voice commands.
func PromptGreeting() string {
	return "System ready. Please say or click scan to start scanning. " +
		"Hold the item steady for 5 seconds for me to verify. " +
		"I will tell you the item and price after verification. " +
		"Reply with yes or no when prompted. " +
		"Say read to listen to cart. " +
		"Say remove to remove item from cart. " +
		"Say or click total to hear total."
}

// PromptScanning is spoken when scanning starts.
func PromptScanning() string {
	return "Scanning"
}

// PromptVerifying is spoken once when a label begins accumulating stability.
func PromptVerifying() string {
	return "Verifying item"
}

// PromptConfirmAdd asks whether a verified item should go into the cart.
func PromptConfirmAdd(item string, price float64) string {
	return fmt.Sprintf("%s costs %.2f ringgit. Do you want to add to the cart?",
		DisplayName(item), price)
}

// PromptAskQuantity asks for the quantity to add.
func PromptAskQuantity() string {
	return "How many would you like to add?"
}

// PromptConfirmQuantity asks the shopper to confirm the chosen quantity.
func PromptConfirmQuantity(qty int) string {
	return fmt.Sprintf("You said %d. Say yes to confirm.", qty)
}

// PromptAdded announces a completed add.
func PromptAdded(qty int, item string) string {
	return fmt.Sprintf("Added %d %s", qty, DisplayName(item))
}

// PromptCancelled announces a cancelled dialog.
func PromptCancelled() string {
	return "Cancelled"
}

// PromptUnparsableQuantity reprompts when no number could be extracted.
func PromptUnparsableQuantity() string {
	return "Please say a number."
}

// PromptAskRemoveItem asks which cart item should be removed.
func PromptAskRemoveItem() string {
	return "Which item do you want to remove?"
}

// PromptItemNotFound announces that a removal target is not in the cart.
func PromptItemNotFound() string {
	return "I couldn't find that item."
}

// PromptAskRemoveQuantity asks how many units to remove.
func PromptAskRemoveQuantity() string {
	return "How many do you want to remove?"
}

// PromptConfirmRemove asks the shopper to confirm a removal.
func PromptConfirmRemove(qty int, item string) string {
	return fmt.Sprintf("Remove %d %s. Say yes to confirm.", qty, DisplayName(item))
}

// PromptInsufficient tells the shopper how many units the cart actually
// holds and asks for a smaller amount.
func PromptInsufficient(available int, item string) string {
	return fmt.Sprintf("You only have %d %s in your cart. Please choose a smaller amount.",
		available, DisplayName(item))
}

// PromptRemoved announces a completed removal.
func PromptRemoved(qty int, item string) string {
	return fmt.Sprintf("Removed %d %s", qty, DisplayName(item))
}

// PromptTotal reads the computed cart total.
func PromptTotal(total float64) string {
	return fmt.Sprintf("Your total is %.2f ringgit", total)
}

// PromptEmptyCart announces an empty cart.
func PromptEmptyCart() string {
	return "Your cart is empty."
}

// PromptReadCart enumerates cart contents for speech.
func PromptReadCart(lines []cart.Line) string {
	var sb strings.Builder
	sb.WriteString("You have ")
	for _, line := range lines {
		fmt.Fprintf(&sb, "%d %s, ", line.Qty, DisplayName(line.Name))
	}
	return sb.String()
}

// DisplayPrice renders a price for the scanner status line.
func DisplayPrice(price float64) string {
	return fmt.Sprintf("RM %.2f", price)
}
