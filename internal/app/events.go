package app

import "github.com/lo7ol3/SmartShopping/internal/dialog"

// eventKind identifies the source of an event entering the serializer.
type eventKind int

const (
	// eventStreakStarted is a new label beginning to accumulate
	// stability; it drives the verifying prompt.
	eventStreakStarted eventKind = iota
	// eventVerified is a detection that passed the stability window.
	eventVerified
	// eventSpeech is one recognized utterance.
	eventSpeech
	// eventButton is a discrete UI button activation.
	eventButton
	// eventPromptDone signals that a spoken prompt finished (reported by
	// the speaker, or approximated by the fixed speaking delay).
	eventPromptDone
	// eventListenError signals a failed listening session.
	eventListenError
	// eventDialogTimeout fires when an optional dialog timeout elapses
	// with no reply.
	eventDialogTimeout
)

// String returns a short name for metrics labels and logs.
func (k eventKind) String() string {
	switch k {
	case eventStreakStarted:
		return "streak_started"
	case eventVerified:
		return "verified"
	case eventSpeech:
		return "speech"
	case eventButton:
		return "button"
	case eventPromptDone:
		return "prompt_done"
	case eventListenError:
		return "listen_error"
	case eventDialogTimeout:
		return "dialog_timeout"
	default:
		return "unknown"
	}
}

// event is one unit of work for the single-consumer event loop. All four
// asynchronous sources (detection pipeline, speech recognition, prompt
// timing, buttons) funnel through this type so dialog transitions are
// applied one at a time, in arrival order.
type event struct {
	kind   eventKind
	item   string
	price  float64
	text   string
	button dialog.Button
	qty    int
	err    error
}
