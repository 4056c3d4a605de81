package detector

import "time"

// DefaultStabilityWindow is how long the same label must persist before a
// detection is treated as deliberate rather than a transient
// misclassification. Matches the five seconds the user is asked to hold an
// item steady.
const DefaultStabilityWindow = 5000 * time.Millisecond

// StreakEvent describes what the stability filter observed for one frame.
type StreakEvent int

const (
	// StreakNone means nothing noteworthy happened this frame.
	StreakNone StreakEvent = iota
	// StreakStarted means a new label began accumulating stability.
	StreakStarted
	// StreakVerified means the label persisted for the full stability
	// window. Fired at most once per continuous streak.
	StreakVerified
)

// Verified is the one-shot result of a detection passing the stability
// window. Price is looked up from the price catalog at verification time.
type Verified struct {
	Item  string
	Price float64
}

// StabilityFilter debounces the per-frame top label over time. It emits a
// single Verified event only after the same priced label has been observed
// continuously for at least the stability window.
//
// The filter must not be fed frames while a dialog is in progress or a
// prompt is being spoken; suspension is the caller's responsibility so the
// internal state cannot silently advance while the user is busy.
type StabilityFilter struct {
	window time.Duration
	lookup func(label string) (price float64, ok bool)

	lastLabel string
	since     time.Time
	fired     bool
}

// NewStabilityFilter creates a StabilityFilter with the given window and
// price lookup. Labels for which lookup reports false reset the filter.
// A window of 0 or below falls back to DefaultStabilityWindow.
func NewStabilityFilter(window time.Duration, lookup func(string) (float64, bool)) *StabilityFilter {
	if window <= 0 {
		window = DefaultStabilityWindow
	}
	return &StabilityFilter{
		window: window,
		lookup: lookup,
	}
}

// Observe feeds the filter the top label of one frame at the given instant.
// An empty label means the frame had no qualifying detection.
func (f *StabilityFilter) Observe(label string, now time.Time) (Verified, StreakEvent) {
	if label == "" {
		f.Reset()
		return Verified{}, StreakNone
	}

	price, ok := f.lookup(label)
	if !ok {
		// Unrecognized labels reset stability silently.
		f.Reset()
		return Verified{}, StreakNone
	}

	if label != f.lastLabel {
		f.lastLabel = label
		f.since = now
		f.fired = false
		return Verified{}, StreakStarted
	}

	if !f.fired && now.Sub(f.since) >= f.window {
		f.fired = true
		return Verified{Item: label, Price: price}, StreakVerified
	}

	return Verified{}, StreakNone
}

// Reset clears the filter so the next observation starts a fresh streak.
func (f *StabilityFilter) Reset() {
	f.lastLabel = ""
	f.since = time.Time{}
	f.fired = false
}

// Window returns the configured stability window.
func (f *StabilityFilter) Window() time.Duration {
	return f.window
}
