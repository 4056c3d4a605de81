package capture

import (
	"errors"
	"testing"

	"gocv.io/x/gocv"
)

func scannerFrame(t *testing.T) *gocv.Mat {
	t.Helper()

	frame := gocv.NewMatWithSize(DefaultHeight, DefaultWidth, gocv.MatTypeCV8UC3)
	t.Cleanup(func() { frame.Close() })

	return &frame
}

func TestPlaybackCamera_SequenceEnds(t *testing.T) {
	frames := []*gocv.Mat{scannerFrame(t), scannerFrame(t)}

	cam := NewPlaybackCamera(frames, false)
	if err := cam.Open(); err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer cam.Close()

	for i := range frames {
		f, err := cam.ReadFrame()
		if err != nil {
			t.Fatalf("ReadFrame() frame %d error = %v", i, err)
		}
		f.Close()
	}

	if _, err := cam.ReadFrame(); !errors.Is(err, ErrNoMoreFrames) {
		t.Errorf("ReadFrame() after sequence error = %v, want ErrNoMoreFrames", err)
	}
}

func TestPlaybackCamera_HoldLastRepeatsFrame(t *testing.T) {
	// An item held steady in front of the scanner: one frame, repeated.
	cam := NewPlaybackCamera([]*gocv.Mat{scannerFrame(t)}, true)
	cam.Open()
	defer cam.Close()

	for i := 0; i < 5; i++ {
		f, err := cam.ReadFrame()
		if err != nil {
			t.Fatalf("ReadFrame() iteration %d error = %v", i, err)
		}
		f.Close()
	}
}

func TestPlaybackCamera_ReadBeforeOpen(t *testing.T) {
	cam := NewPlaybackCamera(nil, false)

	if _, err := cam.ReadFrame(); !errors.Is(err, ErrCameraNotOpen) {
		t.Errorf("ReadFrame() error = %v, want ErrCameraNotOpen", err)
	}
}

func TestPlaybackCamera_EmptySequence(t *testing.T) {
	cam := NewPlaybackCamera(nil, true)
	cam.Open()
	defer cam.Close()

	if _, err := cam.ReadFrame(); !errors.Is(err, ErrNoMoreFrames) {
		t.Errorf("ReadFrame() error = %v, want ErrNoMoreFrames", err)
	}
}

func TestPlaybackCamera_Rewind(t *testing.T) {
	cam := NewPlaybackCamera([]*gocv.Mat{scannerFrame(t)}, false)
	cam.Open()
	defer cam.Close()

	f, err := cam.ReadFrame()
	if err != nil {
		t.Fatalf("ReadFrame() error = %v", err)
	}
	f.Close()

	if _, err := cam.ReadFrame(); !errors.Is(err, ErrNoMoreFrames) {
		t.Fatalf("expected exhausted sequence before Rewind, got %v", err)
	}

	cam.Rewind()

	f, err = cam.ReadFrame()
	if err != nil {
		t.Fatalf("ReadFrame() after Rewind error = %v", err)
	}
	f.Close()
}
