package detector

import (
	"bufio"
	"fmt"
	"image"
	"os"
	"strings"
	"sync"

	"gocv.io/x/gocv"
)

// Model input defaults for the grocery YOLO network.
const (
	// DefaultInputSize is the square input resolution the network expects.
	DefaultInputSize = 640
)

// Config holds configuration options for the YOLO model.
type Config struct {
	// ModelPath is the path to the ONNX model file.
	ModelPath string

	// LabelPath is the path to the labels file, one class name per line.
	LabelPath string

	// InputSize is the square input resolution (default: 640).
	InputSize int
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() Config {
	return Config{
		InputSize: DefaultInputSize,
	}
}

// YOLOModel implements Model using a YOLOv8 ONNX network run through the
// GoCV DNN module.
type YOLOModel struct {
	config Config
	net    gocv.Net
	labels []string
	mu     sync.Mutex
	closed bool
}

// NewYOLOModel loads the ONNX network and class labels. The label count
// must match the model's class dimension; a mismatch is reported on the
// first inference. Construction failure is fatal for the scanning feature
// and is surfaced once at startup.
func NewYOLOModel(config Config) (*YOLOModel, error) {
	if config.InputSize <= 0 {
		config.InputSize = DefaultInputSize
	}

	labels, err := loadLabels(config.LabelPath)
	if err != nil {
		return nil, fmt.Errorf("load labels: %w", err)
	}
	if len(labels) == 0 {
		return nil, fmt.Errorf("label file %s is empty", config.LabelPath)
	}

	net := gocv.ReadNetFromONNX(config.ModelPath)
	if net.Empty() {
		return nil, fmt.Errorf("failed to load model from %s", config.ModelPath)
	}

	return &YOLOModel{
		config: config,
		net:    net,
		labels: labels,
	}, nil
}

// Labels returns the class labels in model output order.
func (m *YOLOModel) Labels() []string {
	return m.labels
}

// Infer runs the network on a frame and returns the raw output laid out as
// (anchors, 4+classes). YOLOv8 ONNX models emit (4+classes, anchors); the
// output is transposed here so decoding sees the documented layout.
func (m *YOLOModel) Infer(frame *gocv.Mat) (*RawOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil, fmt.Errorf("model is closed")
	}
	if frame == nil || frame.Empty() {
		return nil, fmt.Errorf("empty frame")
	}

	size := m.config.InputSize
	blob := gocv.BlobFromImage(*frame, 1.0/255.0, image.Pt(size, size),
		gocv.NewScalar(0, 0, 0, 0), true, false)
	defer blob.Close()

	m.net.SetInput(blob, "")

	out := m.net.Forward("")
	defer out.Close()

	// Output shape is [1, 4+classes, anchors].
	dims := out.Size()
	if len(dims) != 3 {
		return nil, fmt.Errorf("unexpected output rank %d", len(dims))
	}

	channels := dims[1]
	anchors := dims[2]
	numClasses := channels - 4
	if numClasses != len(m.labels) {
		return nil, fmt.Errorf("label count (%d) does not match model class count (%d)",
			len(m.labels), numClasses)
	}

	flat, err := out.DataPtrFloat32()
	if err != nil {
		return nil, fmt.Errorf("read output tensor: %w", err)
	}
	if len(flat) < channels*anchors {
		return nil, fmt.Errorf("short output tensor: %d values", len(flat))
	}

	// Transpose (channels, anchors) into anchor-major rows.
	data := make([]float32, anchors*channels)
	for c := 0; c < channels; c++ {
		for i := 0; i < anchors; i++ {
			data[i*channels+c] = flat[c*anchors+i]
		}
	}

	return &RawOutput{
		Data:       data,
		NumAnchors: anchors,
		NumClasses: numClasses,
	}, nil
}

// Close releases the network.
func (m *YOLOModel) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil
	}
	m.closed = true
	return m.net.Close()
}

// loadLabels reads class names from a file, one per line.
func loadLabels(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var labels []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			labels = append(labels, line)
		}
	}

	return labels, scanner.Err()
}
