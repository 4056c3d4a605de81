// Package tray provides the system tray interface for the SmartShopping
// checkout assistant: scan and quit controls plus a live cart total.
package tray

import (
	"fmt"
	"strings"
	"sync"

	"github.com/getlantern/systray"

	"github.com/lo7ol3/SmartShopping/internal/app"
)

// Tray represents the system tray application. Display updates arriving
// before the tray is ready are buffered and applied when the menu is built.
type Tray struct {
	onScan      func()
	onDashboard func()
	onQuit      func()

	mu          sync.RWMutex
	ready       bool
	totalLine   string
	scannerLine string

	menuTotal   *systray.MenuItem
	menuScanner *systray.MenuItem
}

// New creates a new Tray instance.
func New() *Tray {
	return &Tray{
		totalLine:   "Total: RM 0.00",
		scannerLine: "Scanner: idle",
	}
}

// OnScan sets the callback invoked when the scan menu item is clicked.
func (t *Tray) OnScan(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onScan = fn
}

// OnDashboard sets the callback invoked when the dashboard menu item is clicked.
func (t *Tray) OnDashboard(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onDashboard = fn
}

// OnQuit sets the callback invoked when the quit menu item is clicked.
func (t *Tray) OnQuit(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onQuit = fn
}

// Run starts the system tray application.
// This function blocks until systray.Quit() is called.
func (t *Tray) Run() {
	systray.Run(t.onReady, t.onExit)
}

// onReady builds the menu, seeding the display lines with whatever updates
// arrived before the tray came up.
func (t *Tray) onReady() {
	systray.SetTitle("SmartShopping")
	systray.SetTooltip("SmartShopping Checkout Assistant")

	menuScan := systray.AddMenuItem("Start Scanning", "Start scanning items")
	systray.AddSeparator()

	t.mu.Lock()
	t.menuTotal = systray.AddMenuItem(t.totalLine, "Current cart total")
	t.menuTotal.Disable()
	t.menuScanner = systray.AddMenuItem(t.scannerLine, "Scanner status")
	t.menuScanner.Disable()
	t.ready = true
	t.mu.Unlock()

	systray.AddSeparator()
	menuDashboard := systray.AddMenuItem("Open Dashboard...", "Open the dashboard in a browser")
	systray.AddSeparator()

	menuQuit := systray.AddMenuItem("Quit", "Quit SmartShopping")

	go func() {
		for {
			select {
			case <-menuScan.ClickedCh:
				t.handleScan()
			case <-menuDashboard.ClickedCh:
				t.handleDashboard()
			case <-menuQuit.ClickedCh:
				t.handleQuit()
				return
			}
		}
	}()
}

func (t *Tray) onExit() {}

// handleScan handles the scan menu item click.
func (t *Tray) handleScan() {
	t.mu.RLock()
	callback := t.onScan
	t.mu.RUnlock()

	if callback != nil {
		callback()
	}
}

// handleDashboard handles the dashboard menu item click.
func (t *Tray) handleDashboard() {
	t.mu.RLock()
	callback := t.onDashboard
	t.mu.RUnlock()

	if callback != nil {
		callback()
	}
}

// handleQuit handles the quit menu item click.
func (t *Tray) handleQuit() {
	t.mu.RLock()
	callback := t.onQuit
	t.mu.RUnlock()

	if callback != nil {
		callback()
	}

	systray.Quit()
}

// SetTotal updates the cart total line in the menu.
func (t *Tray) SetTotal(total float64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.totalLine = fmt.Sprintf("Total: RM %.2f", total)
	if t.ready && t.menuTotal != nil {
		t.menuTotal.SetTitle(t.totalLine)
	}
}

// SetScannerText updates the scanner status line in the menu. Multi-line
// scanner text is flattened; menu items are single lines.
func (t *Tray) SetScannerText(text string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.scannerLine = "Scanner: " + strings.ReplaceAll(text, "\n", " ")
	if t.ready && t.menuScanner != nil {
		t.menuScanner.SetTitle(t.scannerLine)
	}
}

// TotalLine returns the current cart total menu line.
func (t *Tray) TotalLine() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.totalLine
}

// ScannerLine returns the current scanner status menu line.
func (t *Tray) ScannerLine() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.scannerLine
}

// UI adapts assistant display updates onto the tray menu. It implements
// app.UI; the total callback is read on every cart change so the line
// always reflects the live cart.
type UI struct {
	tray  *Tray
	total func() float64
}

// NewUI creates a UI forwarding to the given tray. total reports the
// current cart total.
func NewUI(t *Tray, total func() float64) *UI {
	return &UI{tray: t, total: total}
}

// SetStatus is a no-op; the coarse status is served on the web dashboard.
func (u *UI) SetStatus(app.Status) {}

// ScannerText mirrors the scanner display line into the tray menu.
func (u *UI) ScannerText(text string) {
	u.tray.SetScannerText(text)
}

// SetQuantityPanel is a no-op; the quantity panel is a dashboard surface.
func (u *UI) SetQuantityPanel(bool) {}

// CartUpdated refreshes the tray's total line from the live cart.
func (u *UI) CartUpdated() {
	u.tray.SetTotal(u.total())
}
