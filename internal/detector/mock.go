package detector

import (
	"gocv.io/x/gocv"
)

// MockModel is a test implementation of the Model interface.
// It allows tests to control the inference results.
type MockModel struct {
	labels []string
	out    *RawOutput
	err    error
}

// NewMockModel creates a new MockModel with the given class labels.
func NewMockModel(labels []string) *MockModel {
	return &MockModel{labels: labels}
}

// SetOutput sets the raw output that will be returned by Infer.
func (m *MockModel) SetOutput(out *RawOutput) {
	m.out = out
}

// SetError sets the error that will be returned by Infer.
func (m *MockModel) SetError(err error) {
	m.err = err
}

// Infer returns the pre-configured output or error.
func (m *MockModel) Infer(frame *gocv.Mat) (*RawOutput, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.out == nil {
		return &RawOutput{NumAnchors: 0, NumClasses: len(m.labels)}, nil
	}
	return m.out, nil
}

// Labels returns the class labels in model output order.
func (m *MockModel) Labels() []string {
	return m.labels
}

// Close is a no-op for the mock model.
func (m *MockModel) Close() error {
	return nil
}

// SingleBoxOutput builds a raw output tensor with one anchor whose best
// class is classIdx at the given confidence, centered in the frame with a
// box spanning half of each dimension. Useful as a canned "one item in
// view" frame for tests.
func SingleBoxOutput(classIdx, numClasses int, confidence float32) *RawOutput {
	stride := 4 + numClasses
	data := make([]float32, stride)

	data[0] = 0.5  // cx
	data[1] = 0.5  // cy
	data[2] = 0.5  // w
	data[3] = 0.5  // h
	data[4+classIdx] = confidence

	return &RawOutput{
		Data:       data,
		NumAnchors: 1,
		NumClasses: numClasses,
	}
}

// MultiBoxOutput builds a raw output tensor with one anchor per entry of
// scores, where scores[i] maps class index i to its confidence. Anchors
// appear in slice order so tests can exercise selection policies.
func MultiBoxOutput(numClasses int, scores []map[int]float32) *RawOutput {
	stride := 4 + numClasses
	data := make([]float32, stride*len(scores))

	for i, anchor := range scores {
		row := data[i*stride : (i+1)*stride]
		row[0], row[1] = 0.5, 0.5
		row[2], row[3] = 0.2, 0.2
		for class, score := range anchor {
			row[4+class] = score
		}
	}

	return &RawOutput{
		Data:       data,
		NumAnchors: len(scores),
		NumClasses: numClasses,
	}
}
