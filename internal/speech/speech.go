// Package speech defines the speech-to-text and text-to-speech collaborator
// interfaces consumed by the checkout session, plus mock implementations
// for tests and headless operation.
package speech

import (
	"context"
	"log"

	"github.com/google/uuid"
)

// Recognizer performs one-shot speech recognition. The session re-issues
// Listen after every completion or error while input is not suppressed.
type Recognizer interface {
	// Listen blocks until one utterance is recognized or ctx is done.
	Listen(ctx context.Context) (string, error)

	// Close releases any resources held by the recognizer.
	Close() error
}

// Speaker synthesizes spoken prompts. Speak is fire-and-forget and returns
// an utterance ID. Implementations that can report true completion expose
// it on Done; when Done returns nil the session approximates completion
// with a fixed delay instead.
type Speaker interface {
	// Speak queues text for synthesis and returns its utterance ID.
	Speak(text string) string

	// Done returns a channel delivering the IDs of finished utterances,
	// or nil if the implementation cannot report completion.
	Done() <-chan string

	// Close releases any resources held by the speaker.
	Close() error
}

// LogSpeaker is a Speaker that writes prompts to the process log. It is
// used when no audio backend is wired up; completion is not reported, so
// the session falls back to its fixed speaking delay.
type LogSpeaker struct{}

// NewLogSpeaker creates a LogSpeaker.
func NewLogSpeaker() *LogSpeaker {
	return &LogSpeaker{}
}

// Speak logs the prompt and returns a fresh utterance ID.
func (s *LogSpeaker) Speak(text string) string {
	id := uuid.NewString()
	log.Printf("[speak %s] %s", id[:8], text)
	return id
}

// Done returns nil: the log speaker cannot report completion.
func (s *LogSpeaker) Done() <-chan string {
	return nil
}

// Close is a no-op for the log speaker.
func (s *LogSpeaker) Close() error {
	return nil
}
