// Package proctor tracks integrity violations while a test session is
// active. The host UI feeds environment events into a Monitor; the Monitor
// counts them, keeps an ordered tag log, raises transient warnings and
// triggers a forced submission exactly once when the threshold is reached.
package proctor

import (
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Sooraj-Rao/quiz-builder/internal/model"
)

// Event is an environment signal observed by the host while a test runs.
type Event int

const (
	EventTabSwitch Event = iota
	EventFullscreenExit
	EventRightClick
	EventCopyShortcut
	EventTextSelection
)

// Tag returns the categorical violation tag recorded for the event.
// Fullscreen exits are logged as tab switches, matching the wire format.
func (e Event) Tag() string {
	switch e {
	case EventTabSwitch, EventFullscreenExit:
		return model.ViolationTabSwitch
	case EventRightClick:
		return model.ViolationRightClick
	case EventCopyShortcut:
		return model.ViolationCopyAttempt
	case EventTextSelection:
		return model.ViolationTextSelection
	}
	return ""
}

func (e Event) Message() string {
	switch e {
	case EventTabSwitch:
		return "Tab switching detected!"
	case EventFullscreenExit:
		return "Exiting fullscreen detected!"
	case EventRightClick:
		return "Right-click disabled during test!"
	case EventCopyShortcut:
		return "Keyboard shortcuts disabled during test!"
	case EventTextSelection:
		return "Text selection disabled during test!"
	}
	return ""
}

const (
	// DefaultThreshold is the violation count that forces submission.
	DefaultThreshold = 3
	// DefaultWarningTTL is how long a warning stays visible.
	DefaultWarningTTL = 3 * time.Second
)

// Warning is the transient notice shown after each violation.
type Warning struct {
	Message   string
	Count     int
	Threshold int
}

// Monitor is safe for concurrent use; the host may deliver events from
// several callbacks at once. The forced-submit callback fires at most once
// per Monitor, no matter how many events land past the threshold.
type Monitor struct {
	mu           sync.Mutex
	active       bool
	violations   int
	tags         []string
	warning      *Warning
	warningTimer *time.Timer
	warningTTL   time.Duration
	threshold    int
	onThreshold  func()
	fired        bool
	cameraDenied bool
}

// NewMonitor creates an inactive monitor. onThreshold is invoked (outside
// the monitor's lock) when the violation count reaches the threshold.
func NewMonitor(onThreshold func()) *Monitor {
	return &Monitor{
		warningTTL:  DefaultWarningTTL,
		threshold:   DefaultThreshold,
		onThreshold: onThreshold,
	}
}

// Activate starts counting violations.
func (m *Monitor) Activate() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.active = true
}

// Deactivate stops counting and clears any pending warning. The violation
// count and tag log survive so they can be attached to the submission.
func (m *Monitor) Deactivate() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.active = false
	m.clearWarningLocked()
}

// Report records one violation event. The return value tells the host
// whether to suppress the default behavior of the underlying interaction:
// true while the monitor is active, false otherwise.
func (m *Monitor) Report(e Event) bool {
	m.mu.Lock()
	if !m.active {
		m.mu.Unlock()
		return false
	}

	m.violations++
	m.tags = append(m.tags, e.Tag())
	m.warning = &Warning{Message: e.Message(), Count: m.violations, Threshold: m.threshold}
	m.resetWarningTimerLocked()

	shouldFire := m.violations >= m.threshold && !m.fired
	if shouldFire {
		m.fired = true
	}
	count := m.violations
	m.mu.Unlock()

	log.Warn().Str("violation", e.Tag()).Int("count", count).Msg("Proctoring violation recorded")

	if shouldFire && m.onThreshold != nil {
		m.onThreshold()
	}
	return true
}

// CameraUnavailable records that camera capture was denied. The session
// continues in degraded mode.
func (m *Monitor) CameraUnavailable() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cameraDenied = true
}

func (m *Monitor) Degraded() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cameraDenied
}

func (m *Monitor) Violations() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.violations
}

// ViolationTypes returns the ordered tag log.
func (m *Monitor) ViolationTypes() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	tags := make([]string, len(m.tags))
	copy(tags, m.tags)
	return tags
}

// Warning returns the currently visible warning, or nil after it expired.
func (m *Monitor) Warning() *Warning {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.warning == nil {
		return nil
	}
	w := *m.warning
	return &w
}

func (m *Monitor) resetWarningTimerLocked() {
	if m.warningTimer != nil {
		m.warningTimer.Stop()
	}
	m.warningTimer = time.AfterFunc(m.warningTTL, func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		m.warning = nil
	})
}

func (m *Monitor) clearWarningLocked() {
	if m.warningTimer != nil {
		m.warningTimer.Stop()
		m.warningTimer = nil
	}
	m.warning = nil
}
