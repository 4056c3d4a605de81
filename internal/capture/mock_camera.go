package capture

import (
	"errors"
	"sync"

	"gocv.io/x/gocv"
)

// ErrNoMoreFrames is returned by PlaybackCamera when its recorded sequence
// is exhausted and hold-last is off.
var ErrNoMoreFrames = errors.New("frame sequence exhausted")

// PlaybackCamera replays a recorded frame sequence in place of the checkout
// scanner's webcam. With holdLast set the final frame repeats forever, like
// an item held steady in front of the lens; otherwise reads fail with
// ErrNoMoreFrames once the sequence runs out.
//
// A PlaybackCamera with no frames opens fine but fails every read, which is
// how tests run the pipeline without touching GoCV at all.
type PlaybackCamera struct {
	mu       sync.Mutex
	frames   []*gocv.Mat
	index    int
	holdLast bool
	open     bool
	fps      int
}

// NewPlaybackCamera creates a PlaybackCamera over the given frames.
func NewPlaybackCamera(frames []*gocv.Mat, holdLast bool) *PlaybackCamera {
	return &PlaybackCamera{
		frames:   frames,
		holdLast: holdLast,
		fps:      DefaultFPS,
	}
}

func (c *PlaybackCamera) Open() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.open = true
	c.index = 0
	return nil
}

func (c *PlaybackCamera) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.open = false
	return nil
}

// ReadFrame returns a clone of the next recorded frame so callers can
// mutate and close it like a live capture.
func (c *PlaybackCamera) ReadFrame() (*gocv.Mat, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.open {
		return nil, ErrCameraNotOpen
	}
	if len(c.frames) == 0 {
		return nil, ErrNoMoreFrames
	}

	if c.index >= len(c.frames) {
		if !c.holdLast {
			return nil, ErrNoMoreFrames
		}
		c.index = len(c.frames) - 1
	}

	frame := c.frames[c.index].Clone()
	c.index++

	return &frame, nil
}

func (c *PlaybackCamera) SetFPS(fps int) {
	if fps <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fps = fps
}

func (c *PlaybackCamera) FPS() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fps
}

func (c *PlaybackCamera) IsOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.open
}

// SetFrames replaces the recorded sequence and rewinds playback.
func (c *PlaybackCamera) SetFrames(frames []*gocv.Mat) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.frames = frames
	c.index = 0
}

// Rewind restarts playback from the first frame.
func (c *PlaybackCamera) Rewind() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.index = 0
}
