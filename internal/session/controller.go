// Package session drives one test-taking session from start to final
// result. The Controller owns the countdown, the answer vector, the
// proctoring monitor and the single allowed submission; a Presenter adapts
// it to whatever surface hosts the test (full-screen window, camera).
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Sooraj-Rao/quiz-builder/internal/dto"
	"github.com/Sooraj-Rao/quiz-builder/internal/model"
	"github.com/Sooraj-Rao/quiz-builder/internal/proctor"
)

// State is the lifecycle phase of a session.
type State int

const (
	StateNotStarted State = iota
	StateActive
	StateSubmitting
	StateCompleted
	StateFailed
	StateDisqualified
	StateErrored
)

func (s State) String() string {
	switch s {
	case StateNotStarted:
		return "not_started"
	case StateActive:
		return "active"
	case StateSubmitting:
		return "submitting"
	case StateCompleted:
		return "completed"
	case StateFailed:
		return "failed"
	case StateDisqualified:
		return "disqualified"
	case StateErrored:
		return "errored"
	}
	return "unknown"
}

// Terminal reports whether the session has reached a final state.
func (s State) Terminal() bool {
	return s == StateCompleted || s == StateFailed || s == StateDisqualified || s == StateErrored
}

// Gateway is the server-facing side of a session.
type Gateway interface {
	FetchTest(ctx context.Context, code string) (*dto.TestDetail, error)
	Submit(ctx context.Context, code string, req dto.SubmitTestRequest) (*dto.SubmitResult, error)
}

// Presenter adapts the controller to the hosting surface. EnterFullscreen
// failing blocks the start; StartCamera failing does not.
type Presenter interface {
	EnterFullscreen() error
	ExitFullscreen()
	StartCamera() error
	StopCamera()
}

// Unanswered is the answer value for a question the user never touched.
const Unanswered = -1

var (
	ErrNotLoaded  = errors.New("session: test not loaded")
	ErrNotActive  = errors.New("session: not active")
	ErrOutOfRange = errors.New("session: index out of range")
)

// UnansweredError aborts a manual submission until the user confirms.
type UnansweredError struct {
	Count int
}

func (e *UnansweredError) Error() string {
	return fmt.Sprintf("%d questions are unanswered", e.Count)
}

// Controller is one user's pass through one test. It is safe for
// concurrent use; the countdown tick, monitor callbacks and UI calls may
// all arrive on different goroutines. Exactly one submission ever reaches
// the gateway, whichever trigger fires first.
type Controller struct {
	mu sync.Mutex

	gateway   Gateway
	presenter Presenter
	monitor   *proctor.Monitor

	code string
	test *dto.TestDetail

	state     State
	starting  bool
	answers   []int
	current   int
	remaining int
	startedAt time.Time
	submitted bool
	result    *dto.SubmitResult
	lastErr   error

	tick      time.Duration
	now       func() time.Time
	stopTimer chan struct{}
}

// NewController builds an idle session for the given test code. Nothing
// happens until Load and Start.
func NewController(gateway Gateway, presenter Presenter, code string) *Controller {
	c := &Controller{
		gateway:   gateway,
		presenter: presenter,
		code:      code,
		state:     StateNotStarted,
		tick:      time.Second,
		now:       time.Now,
	}
	c.monitor = proctor.NewMonitor(c.forceSubmit)
	return c
}

// Monitor exposes the proctoring monitor so the host can route
// environment events into it.
func (c *Controller) Monitor() *proctor.Monitor { return c.monitor }

// Load fetches the test definition and initializes the answer vector to
// all-unanswered. It may be retried after a failure.
func (c *Controller) Load(ctx context.Context) error {
	test, err := c.gateway.FetchTest(ctx, c.code)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateNotStarted {
		return ErrNotActive
	}
	c.test = test
	c.answers = make([]int, len(test.Questions))
	for i := range c.answers {
		c.answers[i] = Unanswered
	}
	return nil
}

// Start transitions the session to Active. Full-screen mode is mandatory:
// if the presenter refuses it the session stays in NotStarted and Start may
// be called again. Camera denial is recorded on the monitor but does not
// block the start.
func (c *Controller) Start() error {
	c.mu.Lock()
	if c.state != StateNotStarted || c.starting {
		c.mu.Unlock()
		return ErrNotActive
	}
	if c.test == nil {
		c.mu.Unlock()
		return ErrNotLoaded
	}
	// Claimed before the lock is dropped for the presenter calls, so a
	// concurrent Start cannot slip past the state check and spawn a second
	// countdown.
	c.starting = true
	c.mu.Unlock()

	if err := c.presenter.EnterFullscreen(); err != nil {
		c.mu.Lock()
		c.starting = false
		c.mu.Unlock()
		return fmt.Errorf("fullscreen is required to start the test: %w", err)
	}
	if err := c.presenter.StartCamera(); err != nil {
		log.Warn().Err(err).Str("test", c.code).Msg("Camera unavailable, continuing without capture")
		c.monitor.CameraUnavailable()
	}

	stop := make(chan struct{})
	c.mu.Lock()
	c.starting = false
	c.state = StateActive
	c.remaining = c.test.TimeLimit * 60
	c.startedAt = c.now()
	c.stopTimer = stop
	c.mu.Unlock()

	c.monitor.Activate()
	go c.runCountdown(stop)

	log.Info().Str("test", c.code).Int("questions", len(c.answers)).Msg("Test session started")
	return nil
}

func (c *Controller) runCountdown(stop chan struct{}) {
	ticker := time.NewTicker(c.tick)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if c.countDown() {
				c.forceSubmit()
				return
			}
		}
	}
}

// countDown decrements the clock and reports whether it just hit zero.
func (c *Controller) countDown() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateActive || c.remaining <= 0 {
		return false
	}
	c.remaining--
	return c.remaining == 0
}

// SelectAnswer records the chosen option for a question.
func (c *Controller) SelectAnswer(question, option int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateActive {
		return ErrNotActive
	}
	if question < 0 || question >= len(c.answers) {
		return ErrOutOfRange
	}
	if option < 0 || option >= len(c.test.Questions[question].Options) {
		return ErrOutOfRange
	}
	c.answers[question] = option
	return nil
}

// Next advances to the following question, stopping at the last one.
func (c *Controller) Next() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == StateActive && c.current < len(c.answers)-1 {
		c.current++
	}
}

// Prev moves to the preceding question, stopping at the first one.
func (c *Controller) Prev() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == StateActive && c.current > 0 {
		c.current--
	}
}

func (c *Controller) CurrentQuestion() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// Answers returns a copy of the answer vector.
func (c *Controller) Answers() []int {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]int, len(c.answers))
	copy(out, c.answers)
	return out
}

func (c *Controller) UnansweredCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.unansweredLocked()
}

func (c *Controller) unansweredLocked() int {
	n := 0
	for _, a := range c.answers {
		if a == Unanswered {
			n++
		}
	}
	return n
}

// TimeRemaining returns the countdown in whole seconds.
func (c *Controller) TimeRemaining() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.remaining
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Result is the server's scored response, set once the session completes.
func (c *Controller) Result() *dto.SubmitResult {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.result
}

// Err returns the failure that moved the session to Errored, if any.
func (c *Controller) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

// Submit sends the answers on the user's request. If questions remain
// unanswered and confirmed is false it returns an UnansweredError and
// leaves the session active; calling again with confirmed true proceeds.
func (c *Controller) Submit(ctx context.Context, confirmed bool) error {
	c.mu.Lock()
	if c.state != StateActive {
		c.mu.Unlock()
		return ErrNotActive
	}
	if !confirmed {
		if n := c.unansweredLocked(); n > 0 {
			c.mu.Unlock()
			return &UnansweredError{Count: n}
		}
	}
	c.mu.Unlock()
	return c.submit(ctx)
}

// forceSubmit is the timer-expiry and violation-threshold path. It runs on
// monitor or countdown goroutines, so a second trigger racing the first is
// a silent no-op.
func (c *Controller) forceSubmit() {
	if err := c.submit(context.Background()); err != nil && !errors.Is(err, ErrNotActive) {
		log.Error().Err(err).Str("test", c.code).Msg("Forced submission failed")
	}
}

func (c *Controller) submit(ctx context.Context) error {
	c.mu.Lock()
	if c.state != StateActive || c.submitted {
		c.mu.Unlock()
		return ErrNotActive
	}
	c.submitted = true
	c.state = StateSubmitting

	answers := make([]int, len(c.answers))
	copy(answers, c.answers)
	req := dto.SubmitTestRequest{
		Answers:   answers,
		TimeSpent: int(c.now().Sub(c.startedAt).Seconds()),
	}
	stop := c.stopTimer
	c.stopTimer = nil
	c.mu.Unlock()

	// Out of Active: the clock and the violation listeners stop now, before
	// the network round trip.
	if stop != nil {
		close(stop)
	}
	c.monitor.Deactivate()
	req.Violations = c.monitor.Violations()
	req.ViolationTypes = c.monitor.ViolationTypes()

	result, err := c.gateway.Submit(ctx, c.code, req)

	c.mu.Lock()
	if err != nil {
		c.state = StateErrored
		c.lastErr = err
	} else {
		c.result = result
		c.state = stateForStatus(result.Status)
	}
	final := c.state
	c.mu.Unlock()

	c.presenter.StopCamera()
	c.presenter.ExitFullscreen()

	if err != nil {
		return err
	}
	log.Info().Str("test", c.code).Str("state", final.String()).
		Int("score", result.Score).Int("percentage", result.Percentage).
		Msg("Test session finished")
	return nil
}

// Abandon tears the session down without submitting, for when the host
// surface is closed mid-test. Terminal and not-started sessions are left
// alone.
func (c *Controller) Abandon() {
	c.mu.Lock()
	if c.state != StateActive {
		c.mu.Unlock()
		return
	}
	c.submitted = true
	c.state = StateErrored
	c.lastErr = errors.New("session abandoned")
	stop := c.stopTimer
	c.stopTimer = nil
	c.mu.Unlock()

	if stop != nil {
		close(stop)
	}
	c.monitor.Deactivate()
	c.presenter.StopCamera()
	c.presenter.ExitFullscreen()
}

func stateForStatus(status string) State {
	switch status {
	case model.StatusDisqualified:
		return StateDisqualified
	case model.StatusFailed:
		return StateFailed
	default:
		return StateCompleted
	}
}
