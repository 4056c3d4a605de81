package detector

import (
	"testing"
	"time"
)

func testLookup(label string) (float64, bool) {
	prices := map[string]float64{"apple": 2.50, "milk": 4.00}
	price, ok := prices[label]
	return price, ok
}

func TestStabilityFilter_VerifiesAfterWindow(t *testing.T) {
	f := NewStabilityFilter(5*time.Second, testLookup)
	start := time.Now()

	_, ev := f.Observe("apple", start)
	if ev != StreakStarted {
		t.Fatalf("first observation event = %v, want StreakStarted", ev)
	}

	// Before the window elapses nothing fires.
	if _, ev := f.Observe("apple", start.Add(4999*time.Millisecond)); ev != StreakNone {
		t.Fatalf("at 4999ms event = %v, want StreakNone", ev)
	}

	v, ev := f.Observe("apple", start.Add(5*time.Second))
	if ev != StreakVerified {
		t.Fatalf("at 5000ms event = %v, want StreakVerified", ev)
	}
	if v.Item != "apple" || v.Price != 2.50 {
		t.Errorf("Verified = %+v, want apple at 2.50", v)
	}
}

func TestStabilityFilter_FiresOncePerStreak(t *testing.T) {
	f := NewStabilityFilter(5*time.Second, testLookup)
	start := time.Now()

	f.Observe("apple", start)
	if _, ev := f.Observe("apple", start.Add(5*time.Second)); ev != StreakVerified {
		t.Fatal("expected verification at window boundary")
	}

	// Further frames of the same streak must not re-emit.
	for i := 1; i <= 3; i++ {
		if _, ev := f.Observe("apple", start.Add(5*time.Second+time.Duration(i)*time.Second)); ev != StreakNone {
			t.Fatalf("frame %d after verification event = %v, want StreakNone", i, ev)
		}
	}
}

func TestStabilityFilter_LabelChangeRestartsStreak(t *testing.T) {
	f := NewStabilityFilter(5*time.Second, testLookup)
	start := time.Now()

	f.Observe("apple", start)

	// Label flips at 3s; the apple streak is abandoned.
	if _, ev := f.Observe("milk", start.Add(3*time.Second)); ev != StreakStarted {
		t.Fatal("label change should start a new streak")
	}

	// 5s after the original start is only 2s into the milk streak.
	if _, ev := f.Observe("milk", start.Add(5*time.Second)); ev != StreakNone {
		t.Error("milk must not verify before its own window elapses")
	}

	v, ev := f.Observe("milk", start.Add(8*time.Second))
	if ev != StreakVerified || v.Item != "milk" {
		t.Errorf("event = %v verified = %+v, want milk verified", ev, v)
	}
}

func TestStabilityFilter_UnknownLabelResets(t *testing.T) {
	f := NewStabilityFilter(5*time.Second, testLookup)
	start := time.Now()

	f.Observe("apple", start)

	// A label with no known price silently resets stability.
	if _, ev := f.Observe("mystery", start.Add(2*time.Second)); ev != StreakNone {
		t.Fatal("unknown label should produce no event")
	}

	// The apple streak was abandoned: a full new window is required.
	f.Observe("apple", start.Add(3*time.Second))
	if _, ev := f.Observe("apple", start.Add(6*time.Second)); ev != StreakNone {
		t.Error("apple must not verify from the pre-reset streak")
	}
	if _, ev := f.Observe("apple", start.Add(8*time.Second)); ev != StreakVerified {
		t.Error("apple should verify after a full window from the restart")
	}
}

func TestStabilityFilter_EmptyLabelResets(t *testing.T) {
	f := NewStabilityFilter(5*time.Second, testLookup)
	start := time.Now()

	f.Observe("apple", start)
	f.Observe("", start.Add(2*time.Second))

	// A frame with no detection abandons the streak.
	f.Observe("apple", start.Add(3*time.Second))
	if _, ev := f.Observe("apple", start.Add(6*time.Second)); ev != StreakNone {
		t.Error("streak should have restarted after the empty frame")
	}
}

func TestStabilityFilter_ResetClearsFiredLatch(t *testing.T) {
	f := NewStabilityFilter(5*time.Second, testLookup)
	start := time.Now()

	f.Observe("apple", start)
	f.Observe("apple", start.Add(5*time.Second))

	f.Reset()

	// After a reset a brand new streak can verify again.
	f.Observe("apple", start.Add(10*time.Second))
	if _, ev := f.Observe("apple", start.Add(15*time.Second)); ev != StreakVerified {
		t.Error("expected a fresh verification after Reset")
	}
}

func TestStabilityFilter_DefaultWindow(t *testing.T) {
	f := NewStabilityFilter(0, testLookup)
	if f.Window() != DefaultStabilityWindow {
		t.Errorf("Window() = %v, want %v", f.Window(), DefaultStabilityWindow)
	}
}
