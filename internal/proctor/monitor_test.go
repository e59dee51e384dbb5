package proctor

import (
	"reflect"
	"sync"
	"testing"
	"time"
)

func TestReportInactive(t *testing.T) {
	m := NewMonitor(nil)

	if m.Report(EventTabSwitch) {
		t.Error("expected Report to return false while inactive")
	}
	if got := m.Violations(); got != 0 {
		t.Errorf("expected 0 violations, got %d", got)
	}
}

func TestReportCountsAndLogsTags(t *testing.T) {
	m := NewMonitor(nil)
	m.Activate()

	events := []Event{EventTabSwitch, EventRightClick, EventFullscreenExit}
	for _, e := range events {
		if !m.Report(e) {
			t.Fatalf("expected Report(%v) to return true while active", e)
		}
	}

	if got := m.Violations(); got != 3 {
		t.Errorf("expected 3 violations, got %d", got)
	}
	want := []string{"tab_switch", "right_click", "tab_switch"}
	if got := m.ViolationTypes(); !reflect.DeepEqual(got, want) {
		t.Errorf("expected tags %v, got %v", want, got)
	}
}

func TestWarningExpires(t *testing.T) {
	m := NewMonitor(nil)
	m.warningTTL = 20 * time.Millisecond
	m.Activate()

	m.Report(EventCopyShortcut)
	w := m.Warning()
	if w == nil {
		t.Fatal("expected a warning right after a violation")
	}
	if w.Count != 1 || w.Threshold != DefaultThreshold {
		t.Errorf("unexpected warning contents: %+v", w)
	}

	time.Sleep(60 * time.Millisecond)
	if m.Warning() != nil {
		t.Error("expected the warning to auto-dismiss after the TTL")
	}
}

func TestWarningReplacedByNewerViolation(t *testing.T) {
	m := NewMonitor(nil)
	m.Activate()

	m.Report(EventRightClick)
	m.Report(EventTextSelection)

	w := m.Warning()
	if w == nil {
		t.Fatal("expected a warning")
	}
	if w.Count != 2 {
		t.Errorf("expected warning count 2, got %d", w.Count)
	}
	if w.Message != EventTextSelection.Message() {
		t.Errorf("expected the newest message, got %q", w.Message)
	}
}

func TestThresholdFiresExactlyOnce(t *testing.T) {
	var mu sync.Mutex
	fired := 0
	m := NewMonitor(func() {
		mu.Lock()
		fired++
		mu.Unlock()
	})
	m.Activate()

	for i := 0; i < 5; i++ {
		m.Report(EventTabSwitch)
	}

	mu.Lock()
	defer mu.Unlock()
	if fired != 1 {
		t.Errorf("expected the threshold callback to fire exactly once, fired %d times", fired)
	}
	if got := m.Violations(); got != 5 {
		t.Errorf("expected violations to keep counting past the threshold, got %d", got)
	}
}

func TestDeactivateStopsCountingKeepsLog(t *testing.T) {
	m := NewMonitor(nil)
	m.Activate()
	m.Report(EventTabSwitch)
	m.Deactivate()

	if m.Report(EventRightClick) {
		t.Error("expected Report to return false after Deactivate")
	}
	if got := m.Violations(); got != 1 {
		t.Errorf("expected the pre-deactivation count to survive, got %d", got)
	}
	if m.Warning() != nil {
		t.Error("expected Deactivate to clear the warning")
	}
}

func TestCameraUnavailable(t *testing.T) {
	m := NewMonitor(nil)
	if m.Degraded() {
		t.Error("expected a fresh monitor not to be degraded")
	}
	m.CameraUnavailable()
	if !m.Degraded() {
		t.Error("expected Degraded after CameraUnavailable")
	}
}
