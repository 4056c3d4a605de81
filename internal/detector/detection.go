// Package detector provides grocery item detection for the SmartShopping
// checkout assistant: decoding of raw model output into labeled boxes and
// the temporal stability filter that turns noisy per-frame labels into
// verified detections.
package detector

import "gocv.io/x/gocv"

// Rect is an axis-aligned rectangle in source-image pixel coordinates.
type Rect struct {
	Left   float32
	Top    float32
	Right  float32
	Bottom float32
}

// Detection is one scored, labeled box produced for a single frame.
// Detections are never persisted; each frame produces a fresh set.
type Detection struct {
	Box        Rect
	Label      string
	Confidence float32
}

// RawOutput is the raw model output for one frame, laid out row-major as
// (NumAnchors, 4+NumClasses): four box parameters (center-x, center-y,
// width, height, normalized to [0,1]) followed by one score per class.
type RawOutput struct {
	Data       []float32
	NumAnchors int
	NumClasses int
}

// Model defines the interface for object detection model implementations.
type Model interface {
	// Infer runs the model on a video frame and returns the raw output
	// tensor along with the frame dimensions used for decoding.
	Infer(frame *gocv.Mat) (*RawOutput, error)

	// Labels returns the class labels in model output order.
	Labels() []string

	// Close releases any resources held by the model.
	Close() error
}

// SelectionPolicy chooses which detection of a frame is fed to the
// stability filter.
type SelectionPolicy string

const (
	// SelectFirst picks the first detection above threshold, in anchor order.
	SelectFirst SelectionPolicy = "first"
	// SelectBest picks the detection with the highest confidence.
	SelectBest SelectionPolicy = "best"
)

// Top selects the frame's single candidate detection according to policy.
// Returns false if the slice is empty. Unknown policies fall back to
// SelectFirst.
func Top(detections []Detection, policy SelectionPolicy) (Detection, bool) {
	if len(detections) == 0 {
		return Detection{}, false
	}

	if policy == SelectBest {
		best := detections[0]
		for _, d := range detections[1:] {
			if d.Confidence > best.Confidence {
				best = d
			}
		}
		return best, true
	}

	return detections[0], true
}
