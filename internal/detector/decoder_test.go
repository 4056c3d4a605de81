package detector

import (
	"math"
	"testing"
)

var testLabels = []string{"apple", "bread", "milk"}

func TestDecode_ArgmaxClassSelection(t *testing.T) {
	// One anchor where bread has the highest score.
	out := MultiBoxOutput(3, []map[int]float32{
		{0: 0.3, 1: 0.9, 2: 0.5},
	})

	dets := Decode(out, DecodeConfig{Labels: testLabels}, 640, 480)

	if len(dets) != 1 {
		t.Fatalf("len(dets) = %d, want 1", len(dets))
	}
	if dets[0].Label != "bread" {
		t.Errorf("Label = %q, want %q", dets[0].Label, "bread")
	}
	if dets[0].Confidence != 0.9 {
		t.Errorf("Confidence = %f, want 0.9", dets[0].Confidence)
	}
}

func TestDecode_DiscardsBelowThreshold(t *testing.T) {
	out := MultiBoxOutput(3, []map[int]float32{
		{0: 0.39}, // below default 0.4
		{1: 0.41}, // above
		{2: 0.10},
	})

	dets := Decode(out, DecodeConfig{Labels: testLabels}, 640, 480)

	if len(dets) != 1 {
		t.Fatalf("len(dets) = %d, want 1", len(dets))
	}
	if dets[0].Label != "bread" {
		t.Errorf("Label = %q, want %q", dets[0].Label, "bread")
	}
}

func TestDecode_BoxCoordinates(t *testing.T) {
	out := SingleBoxOutput(0, 3, 0.8)

	dets := Decode(out, DecodeConfig{Labels: testLabels}, 640, 480)
	if len(dets) != 1 {
		t.Fatalf("len(dets) = %d, want 1", len(dets))
	}

	// cx=0.5, cy=0.5, w=0.5, h=0.5 on a 640x480 frame.
	box := dets[0].Box
	wantLeft := float32(0.25 * 640)
	wantTop := float32(0.25 * 480)
	wantRight := float32(0.75 * 640)
	wantBottom := float32(0.75 * 480)

	approx := func(got, want float32) bool {
		return math.Abs(float64(got-want)) < 1e-3
	}
	if !approx(box.Left, wantLeft) || !approx(box.Top, wantTop) ||
		!approx(box.Right, wantRight) || !approx(box.Bottom, wantBottom) {
		t.Errorf("Box = %+v, want [%f %f %f %f]", box, wantLeft, wantTop, wantRight, wantBottom)
	}
}

func TestDecode_NoSuppression(t *testing.T) {
	// Two qualifying overlapping anchors both survive: no NMS.
	out := MultiBoxOutput(3, []map[int]float32{
		{0: 0.8},
		{0: 0.7},
	})

	dets := Decode(out, DecodeConfig{Labels: testLabels}, 640, 480)

	if len(dets) != 2 {
		t.Errorf("len(dets) = %d, want 2 (overlap suppression must not run)", len(dets))
	}
}

func TestDecode_EmptyAndNilInput(t *testing.T) {
	if dets := Decode(nil, DecodeConfig{Labels: testLabels}, 640, 480); dets != nil {
		t.Errorf("Decode(nil) = %v, want nil", dets)
	}

	out := &RawOutput{NumAnchors: 0, NumClasses: 3}
	if dets := Decode(out, DecodeConfig{Labels: testLabels}, 640, 480); len(dets) != 0 {
		t.Errorf("Decode(empty) = %v, want empty", dets)
	}
}

func TestDecode_CustomThreshold(t *testing.T) {
	out := MultiBoxOutput(3, []map[int]float32{
		{0: 0.5},
	})

	dets := Decode(out, DecodeConfig{Labels: testLabels, ConfThreshold: 0.6}, 640, 480)
	if len(dets) != 0 {
		t.Errorf("len(dets) = %d, want 0 with raised threshold", len(dets))
	}
}

func TestTop_SelectionPolicies(t *testing.T) {
	dets := []Detection{
		{Label: "apple", Confidence: 0.5},
		{Label: "milk", Confidence: 0.9},
	}

	first, ok := Top(dets, SelectFirst)
	if !ok || first.Label != "apple" {
		t.Errorf("Top(first) = %+v ok=%v, want apple", first, ok)
	}

	best, ok := Top(dets, SelectBest)
	if !ok || best.Label != "milk" {
		t.Errorf("Top(best) = %+v ok=%v, want milk", best, ok)
	}

	if _, ok := Top(nil, SelectFirst); ok {
		t.Error("Top(nil) should report no candidate")
	}
}
