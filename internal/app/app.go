// Package app wires the SmartShopping checkout assistant together: the
// detection pipeline, the speech collaborators, the dialog controller, and
// the single event queue that serializes everything the controller consumes.
package app

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/lo7ol3/SmartShopping/internal/capture"
	"github.com/lo7ol3/SmartShopping/internal/cart"
	"github.com/lo7ol3/SmartShopping/internal/catalog"
	"github.com/lo7ol3/SmartShopping/internal/detector"
	"github.com/lo7ol3/SmartShopping/internal/dialog"
	"github.com/lo7ol3/SmartShopping/internal/speech"
)

// Timing defaults.
const (
	// DefaultSpeakDelay approximates how long a prompt takes to speak when
	// the speaker cannot report completion.
	DefaultSpeakDelay = 4500 * time.Millisecond
	// DefaultListenRearm is the pause before listening restarts after a
	// prompt finishes, so the prompt tail is not transcribed.
	DefaultListenRearm = 600 * time.Millisecond
	// DefaultCameraFPS is the detection frame rate.
	DefaultCameraFPS = 15
	// eventQueueSize bounds the serializer queue.
	eventQueueSize = 64
)

// Status is the coarse state shown on the UI status surface.
type Status string

const (
	// StatusCalibrating means the system is busy preparing or thinking.
	StatusCalibrating Status = "calibrating"
	// StatusListening means a listening session is open.
	StatusListening Status = "listening"
	// StatusProcessing means a prompt is being spoken or work is running.
	StatusProcessing Status = "processing"
)

// UI receives state-driven display updates. Implementations must be safe
// for concurrent use; updates arrive from the event loop and the pipeline.
type UI interface {
	SetStatus(status Status)
	ScannerText(text string)
	SetQuantityPanel(visible bool)
	CartUpdated()
}

// NopUI is a UI that discards all updates.
type NopUI struct{}

func (NopUI) SetStatus(Status)      {}
func (NopUI) ScannerText(string)    {}
func (NopUI) SetQuantityPanel(bool) {}
func (NopUI) CartUpdated()          {}

// Config holds configuration options for the application.
type Config struct {
	Catalog    *catalog.Catalog
	Camera     capture.Camera
	Model      detector.Model
	Recognizer speech.Recognizer
	Speaker    speech.Speaker
	UI         UI

	CameraFPS       int
	ConfThreshold   float32
	Selection       detector.SelectionPolicy
	StabilityWindow time.Duration
	SpeakDelay      time.Duration
	ListenRearm     time.Duration
	// DialogTimeout cancels a pending dialog after this long with no
	// reply; 0 disables the timeout.
	DialogTimeout time.Duration
}

// App orchestrates detection, speech, and the dialog state machine. All
// dialog transitions and cart mutations happen on the single goroutine
// draining the event queue.
type App struct {
	config    Config
	camera    capture.Camera
	model     detector.Model
	stability *detector.StabilityFilter
	cart      *cart.Cart
	ctrl      *dialog.Controller
	ui        UI

	events chan event
	stopCh chan struct{}

	mu              sync.RWMutex
	started         bool
	scanning        bool
	pipelineStarted bool
	speaking        bool
	dialogActive    bool
	stateName       string
	status          Status
	scannerText     string
	panelVisible    bool
	listenCancel    context.CancelFunc
	listenSeq       int
	dialogTimer     *time.Timer
}

// Snapshot is a point-in-time view of the assistant's display state, served
// over the HTTP and websocket surfaces.
type Snapshot struct {
	Status        Status `json:"status"`
	ScannerText   string `json:"scanner_text"`
	QuantityPanel bool   `json:"quantity_panel"`
	DialogState   string `json:"dialog_state"`
	Scanning      bool   `json:"scanning"`
}

// notifier adapts the App to the dialog controller's display interface.
type notifier struct {
	a *App
}

func (n notifier) ScannerText(text string) { n.a.setScannerText(text) }
func (n notifier) ShowQuantityPanel()      { n.a.setQuantityPanel(true) }
func (n notifier) HideQuantityPanel()      { n.a.setQuantityPanel(false) }
func (n notifier) CartUpdated()            { n.a.ui.CartUpdated() }

// prompter adapts the App to the dialog controller's speech interface.
type prompter struct {
	a *App
}

func (p prompter) Speak(text string) { p.a.speak(text) }

// New creates a new App instance with the given configuration.
func New(config Config) *App {
	if config.CameraFPS <= 0 {
		config.CameraFPS = DefaultCameraFPS
	}
	if config.SpeakDelay <= 0 {
		config.SpeakDelay = DefaultSpeakDelay
	}
	if config.ListenRearm <= 0 {
		config.ListenRearm = DefaultListenRearm
	}
	if config.Selection == "" {
		config.Selection = detector.SelectFirst
	}
	if config.Speaker == nil {
		config.Speaker = speech.NewLogSpeaker()
	}
	if config.UI == nil {
		config.UI = NopUI{}
	}
	if config.Catalog == nil {
		config.Catalog = catalog.FromMap(nil)
	}

	a := &App{
		config:    config,
		camera:    config.Camera,
		model:     config.Model,
		cart:      cart.New(),
		ui:        config.UI,
		events:    make(chan event, eventQueueSize),
		stopCh:    nil,
		stateName: dialog.StateIdle.String(),
		status:    StatusCalibrating,
	}

	a.stability = detector.NewStabilityFilter(config.StabilityWindow, config.Catalog.Price)
	a.ctrl = dialog.NewController(a.cart, prompter{a}, notifier{a})
	a.ctrl.OnScan(a.StartScan)

	return a
}

// Start launches the event loop, greets the shopper, and prepares speech
// input. Scanning does not start until the shopper asks for it.
func (a *App) Start() error {
	a.mu.Lock()
	if a.started {
		a.mu.Unlock()
		return nil
	}
	a.started = true
	a.stopCh = make(chan struct{})
	a.mu.Unlock()

	go a.runEvents()

	if done := a.config.Speaker.Done(); done != nil {
		go a.watchSpeakerDone(done)
	}

	a.setStatus(StatusCalibrating)
	a.speak(dialog.PromptGreeting())

	log.Println("Checkout assistant started")
	return nil
}

// Stop halts the event loop and detection pipeline and releases resources.
func (a *App) Stop() {
	a.mu.Lock()
	if !a.started {
		a.mu.Unlock()
		return
	}
	a.started = false
	close(a.stopCh)
	if a.dialogTimer != nil {
		a.dialogTimer.Stop()
		a.dialogTimer = nil
	}
	a.mu.Unlock()

	a.stopListening()

	if a.camera != nil {
		if err := a.camera.Close(); err != nil {
			log.Printf("Error closing camera: %v", err)
		}
	}
	if a.model != nil {
		if err := a.model.Close(); err != nil {
			log.Printf("Error closing model: %v", err)
		}
	}

	log.Println("Checkout assistant stopped")
}

// StartScan begins the detection pipeline. Safe to call repeatedly; the
// pipeline is started once and scanning simply resumes on later calls.
func (a *App) StartScan() {
	if a.camera == nil || a.model == nil {
		log.Println("Scan requested but camera or model is unavailable")
		a.setScannerText("SCANNER UNAVAILABLE")
		return
	}

	a.mu.Lock()
	if a.scanning {
		a.mu.Unlock()
		return
	}
	a.scanning = true
	startPipeline := !a.pipelineStarted
	a.pipelineStarted = true
	a.mu.Unlock()

	if startPipeline {
		if err := a.camera.Open(); err != nil {
			log.Printf("Failed to open camera: %v", err)
			a.setScannerText("CAMERA ERROR")
			a.mu.Lock()
			a.scanning = false
			a.pipelineStarted = false
			a.mu.Unlock()
			return
		}
		a.camera.SetFPS(a.config.CameraFPS)
		go a.runPipeline()
	}

	a.setScannerText("SCANNING...")
	a.speak(dialog.PromptScanning())
}

// IsScanning returns whether the detection pipeline is active.
func (a *App) IsScanning() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.scanning
}

// Cart returns the session cart.
func (a *App) Cart() *cart.Cart {
	return a.cart
}

// Camera returns the camera instance, which may be nil.
func (a *App) Camera() capture.Camera {
	return a.camera
}

// DialogState returns the name of the current dialog state.
func (a *App) DialogState() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.stateName
}

// Snapshot returns the current display state.
func (a *App) Snapshot() Snapshot {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return Snapshot{
		Status:        a.status,
		ScannerText:   a.scannerText,
		QuantityPanel: a.panelVisible,
		DialogState:   a.stateName,
		Scanning:      a.scanning,
	}
}

// setStatus records the status and forwards it to the UI.
func (a *App) setStatus(s Status) {
	a.mu.Lock()
	a.status = s
	a.mu.Unlock()
	a.ui.SetStatus(s)
}

// setScannerText records the scanner line and forwards it to the UI.
func (a *App) setScannerText(text string) {
	a.mu.Lock()
	a.scannerText = text
	a.mu.Unlock()
	a.ui.ScannerText(text)
}

// setQuantityPanel records panel visibility and forwards it to the UI.
func (a *App) setQuantityPanel(visible bool) {
	a.mu.Lock()
	a.panelVisible = visible
	a.mu.Unlock()
	a.ui.SetQuantityPanel(visible)
}

// PressButton posts a button activation into the event queue. qty is only
// meaningful for the quantity buttons.
func (a *App) PressButton(b dialog.Button, qty int) {
	a.post(event{kind: eventButton, button: b, qty: qty})
}

// post enqueues an event unless the app is stopping.
func (a *App) post(ev event) {
	a.mu.RLock()
	stopCh := a.stopCh
	a.mu.RUnlock()
	if stopCh == nil {
		return
	}

	select {
	case a.events <- ev:
	case <-stopCh:
	}
}

// runEvents is the single consumer of the event queue. Every dialog
// transition, including its cart mutation, runs here as one atomic step.
func (a *App) runEvents() {
	for {
		select {
		case <-a.stopCh:
			return
		case ev := <-a.events:
			a.handleEvent(ev)
		}
	}
}

func (a *App) handleEvent(ev event) {
	metricEvents.WithLabelValues(ev.kind.String()).Inc()
	wasIdle := a.ctrl.Idle()

	switch ev.kind {
	case eventStreakStarted:
		// The pipeline may have raced a dialog opening between posting
		// this event and it being drained; skip the prompt then.
		if a.detectionAllowed() {
			a.setScannerText("VERIFYING ITEM...")
			a.speak(dialog.PromptVerifying())
		}

	case eventVerified:
		metricVerified.Inc()
		// Close the open listening session before the confirmation
		// prompt starts.
		a.stopListening()
		a.ctrl.HandleVerified(ev.item, ev.price)

	case eventSpeech:
		a.setStatus(StatusCalibrating)
		a.ctrl.HandleSpeech(ev.text)

	case eventButton:
		a.ctrl.HandleButton(ev.button, ev.qty)

	case eventPromptDone:
		a.mu.Lock()
		a.speaking = false
		a.mu.Unlock()
		a.setStatus(StatusListening)

	case eventListenError:
		log.Printf("Listening session failed: %v", ev.err)

	case eventDialogTimeout:
		if !a.ctrl.Idle() {
			log.Println("Dialog timed out waiting for a reply")
			a.ctrl.Cancel()
		}
	}

	a.afterEvent(wasIdle)
}

// afterEvent publishes the post-transition state, resets stability when a
// dialog just closed, manages the optional dialog timeout, and re-arms
// listening whenever no prompt is speaking and no session is open.
func (a *App) afterEvent(wasIdle bool) {
	idle := a.ctrl.Idle()

	a.mu.Lock()
	a.dialogActive = !idle
	a.stateName = a.ctrl.State().Kind.String()
	speaking := a.speaking
	listenActive := a.listenCancel != nil
	a.mu.Unlock()

	if !wasIdle && idle {
		// Leaving a dialog: the next detection must earn a fresh streak.
		a.stability.Reset()
	}

	a.scheduleDialogTimeout(idle)

	if !speaking && !listenActive {
		a.armListen()
	}
}

// scheduleDialogTimeout (re)arms the timeout clock while a dialog is open.
func (a *App) scheduleDialogTimeout(idle bool) {
	if a.config.DialogTimeout <= 0 {
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.dialogTimer != nil {
		a.dialogTimer.Stop()
		a.dialogTimer = nil
	}
	if !idle {
		a.dialogTimer = time.AfterFunc(a.config.DialogTimeout, func() {
			a.post(event{kind: eventDialogTimeout})
		})
	}
}

// speak sends one prompt to the speaker and tracks speaking state. While a
// prompt is speaking, listening and detection evaluation stay suppressed.
// Completion arrives either from the speaker's Done channel or, as a
// fallback, after the fixed speaking delay.
func (a *App) speak(text string) {
	metricPrompts.Inc()

	a.mu.Lock()
	a.speaking = true
	a.mu.Unlock()

	a.setStatus(StatusProcessing)
	a.stopListening()

	a.config.Speaker.Speak(text)

	if a.config.Speaker.Done() == nil {
		time.AfterFunc(a.config.SpeakDelay, func() {
			a.post(event{kind: eventPromptDone})
		})
	}
}

// watchSpeakerDone forwards true prompt-completion signals into the queue.
func (a *App) watchSpeakerDone(done <-chan string) {
	for {
		select {
		case <-a.stopCh:
			return
		case _, ok := <-done:
			if !ok {
				return
			}
			a.post(event{kind: eventPromptDone})
		}
	}
}

// armListen opens a new one-shot listening session after the re-arm pause.
func (a *App) armListen() {
	if a.config.Recognizer == nil {
		return
	}

	a.stopListening()

	ctx, cancel := context.WithCancel(context.Background())

	a.mu.Lock()
	a.listenCancel = cancel
	a.listenSeq++
	seq := a.listenSeq
	a.mu.Unlock()

	metricListenSessions.Inc()

	go func() {
		select {
		case <-time.After(a.config.ListenRearm):
		case <-ctx.Done():
			return
		}

		text, err := a.config.Recognizer.Listen(ctx)
		if ctx.Err() != nil {
			return
		}

		a.mu.Lock()
		if a.listenSeq == seq {
			a.listenCancel = nil
		}
		a.mu.Unlock()

		if err != nil {
			a.post(event{kind: eventListenError, err: err})
			return
		}
		a.post(event{kind: eventSpeech, text: text})
	}()
}

// stopListening cancels the open listening session, if any.
func (a *App) stopListening() {
	a.mu.Lock()
	cancel := a.listenCancel
	a.listenCancel = nil
	a.mu.Unlock()

	if cancel != nil {
		cancel()
	}
}

// detectionAllowed reports whether frames should be evaluated: scanning
// must be on, no prompt speaking, and no dialog open. While suppressed the
// stability filter is not fed at all, so its state cannot silently advance.
func (a *App) detectionAllowed() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.scanning && !a.speaking && !a.dialogActive
}
