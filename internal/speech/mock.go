package speech

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// MockRecognizer is a test implementation of the Recognizer interface.
// Utterances pushed with Push are delivered to Listen calls in order.
type MockRecognizer struct {
	utterances chan string
	closed     chan struct{}
	closeOnce  sync.Once
}

// NewMockRecognizer creates a MockRecognizer.
func NewMockRecognizer() *MockRecognizer {
	return &MockRecognizer{
		utterances: make(chan string, 16),
		closed:     make(chan struct{}),
	}
}

// Push queues an utterance for the next Listen call.
func (r *MockRecognizer) Push(text string) {
	r.utterances <- text
}

// Listen blocks until an utterance is pushed, the context is done, or the
// recognizer is closed.
func (r *MockRecognizer) Listen(ctx context.Context) (string, error) {
	select {
	case text := <-r.utterances:
		return text, nil
	case <-ctx.Done():
		return "", ctx.Err()
	case <-r.closed:
		return "", context.Canceled
	}
}

// Close unblocks any pending Listen call.
func (r *MockRecognizer) Close() error {
	r.closeOnce.Do(func() { close(r.closed) })
	return nil
}

// MockSpeaker is a test implementation of the Speaker interface. It records
// every prompt and, when completion reporting is enabled, delivers utterance
// IDs on Done immediately after each Speak.
type MockSpeaker struct {
	mu          sync.Mutex
	prompts     []string
	done        chan string
	reportsDone bool
}

// NewMockSpeaker creates a MockSpeaker. When reportsDone is true the
// speaker signals completion on Done right after each Speak call;
// otherwise Done returns nil like a speaker without completion support.
func NewMockSpeaker(reportsDone bool) *MockSpeaker {
	s := &MockSpeaker{reportsDone: reportsDone}
	if reportsDone {
		s.done = make(chan string, 16)
	}
	return s
}

// Speak records the prompt and returns its utterance ID.
func (s *MockSpeaker) Speak(text string) string {
	s.mu.Lock()
	s.prompts = append(s.prompts, text)
	s.mu.Unlock()

	id := uuid.NewString()
	if s.reportsDone {
		s.done <- id
	}
	return id
}

// Done returns the completion channel, or nil when completion reporting is
// disabled.
func (s *MockSpeaker) Done() <-chan string {
	if !s.reportsDone {
		return nil
	}
	return s.done
}

// Close is a no-op for the mock speaker.
func (s *MockSpeaker) Close() error {
	return nil
}

// Prompts returns a snapshot of all prompts spoken so far.
func (s *MockSpeaker) Prompts() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]string, len(s.prompts))
	copy(out, s.prompts)
	return out
}

// LastPrompt returns the most recent prompt, or "" if none were spoken.
func (s *MockSpeaker) LastPrompt() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.prompts) == 0 {
		return ""
	}
	return s.prompts[len(s.prompts)-1]
}
