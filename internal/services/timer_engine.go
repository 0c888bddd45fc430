package services

import (
	"time"

	"github.com/xvierd/pomo-cli/internal/domain"
	"github.com/xvierd/pomo-cli/internal/ports"
)

// DefaultTickInterval is one logical second.
const DefaultTickInterval = time.Second

// TimerEngine is the focus/break state machine. It is not safe for concurrent
// use; App serializes every call, including scheduler ticks.
type TimerEngine struct {
	settings   domain.TimerSettings
	state      domain.TimerState
	scheduler  ports.Scheduler
	interval   time.Duration
	notifier   ports.Notifier
	onComplete func(domain.CompletionEvent)

	cancelTick ports.CancelFunc
	generation uint64
}

// NewTimerEngine creates an idle engine at the start of a focus session.
func NewTimerEngine(settings domain.TimerSettings, scheduler ports.Scheduler) *TimerEngine {
	return &TimerEngine{
		settings:  settings,
		state:     domain.NewTimerState(settings),
		scheduler: scheduler,
		interval:  DefaultTickInterval,
	}
}

// SetTickInterval overrides the scheduler interval. Non-positive values are ignored.
func (e *TimerEngine) SetTickInterval(d time.Duration) {
	if d > 0 {
		e.interval = d
	}
}

// SetNotifier sets the completion chime.
func (e *TimerEngine) SetNotifier(n ports.Notifier) {
	e.notifier = n
}

// OnComplete registers the completion callback.
func (e *TimerEngine) OnComplete(fn func(domain.CompletionEvent)) {
	e.onComplete = fn
}

// State returns a copy of the countdown state.
func (e *TimerEngine) State() domain.TimerState {
	return e.state
}

// Settings returns the settings the engine is counting with.
func (e *TimerEngine) Settings() domain.TimerSettings {
	return e.settings
}

// Start resumes the countdown. It is a no-op while running.
func (e *TimerEngine) Start() {
	if e.state.IsRunning {
		return
	}
	e.state.IsRunning = true
	e.arm()
}

// Pause stops the countdown. It is a no-op while paused.
func (e *TimerEngine) Pause() {
	if !e.state.IsRunning {
		return
	}
	e.state.IsRunning = false
	e.disarm()
}

// Toggle pauses a running countdown or starts a paused one.
func (e *TimerEngine) Toggle() {
	if e.state.IsRunning {
		e.Pause()
		return
	}
	e.Start()
}

// Reset restores the full duration of the current mode and pauses.
func (e *TimerEngine) Reset() {
	e.state.IsRunning = false
	e.disarm()
	e.state.TimeRemainingSeconds = e.settings.SecondsFor(e.state.Mode)
}

// SwitchMode jumps to target at full duration, paused. The session count is untouched.
func (e *TimerEngine) SwitchMode(target domain.Mode) error {
	if !target.IsValid() {
		return domain.ErrInvalidMode
	}
	e.transition(target)
	return nil
}

// Skip moves to the next mode without emitting a completion event.
func (e *TimerEngine) Skip() {
	e.advance()
}

// Tick consumes one second. On the final second the session completes:
// the event is emitted, the chime plays and the engine moves to the next mode, paused.
func (e *TimerEngine) Tick() {
	if !e.state.IsRunning {
		return
	}
	if e.state.TimeRemainingSeconds > 1 {
		e.state.TimeRemainingSeconds--
		return
	}

	event := domain.CompletionEvent{
		Mode:            e.state.Mode,
		DurationMinutes: e.settings.DurationFor(e.state.Mode),
	}
	if e.onComplete != nil {
		e.onComplete(event)
	}
	if e.notifier != nil {
		_ = e.notifier.NotifyCompletion(event)
	}
	e.advance()
}

// ApplySettings adopts new settings. A paused engine restarts the current mode's
// countdown when any duration changed; a running engine keeps counting but never
// holds more time than the new full duration.
func (e *TimerEngine) ApplySettings(s domain.TimerSettings) {
	changed := !e.settings.DurationsEqual(s)
	e.settings = s

	full := s.SecondsFor(e.state.Mode)
	switch {
	case !e.state.IsRunning && changed:
		e.state.TimeRemainingSeconds = full
	case e.state.TimeRemainingSeconds > full:
		e.state.TimeRemainingSeconds = full
	}
}

// FormattedTime renders the remaining time as MM:SS.
func (e *TimerEngine) FormattedTime() string {
	return domain.FormatClock(e.state.TimeRemainingSeconds)
}

// Progress returns the elapsed share of the current session, in [0, 100].
func (e *TimerEngine) Progress() float64 {
	return domain.ProgressPercent(e.settings.SecondsFor(e.state.Mode), e.state.TimeRemainingSeconds)
}

// Title returns the "MM:SS - Mode" line.
func (e *TimerEngine) Title() string {
	return domain.WindowTitle(e.state.TimeRemainingSeconds, e.state.Mode)
}

// Snapshot bundles the state with its derived display values.
func (e *TimerEngine) Snapshot() domain.TimerSnapshot {
	return domain.TimerSnapshot{
		State:         e.state,
		Settings:      e.settings,
		FormattedTime: e.FormattedTime(),
		Progress:      e.Progress(),
		Title:         e.Title(),
	}
}

// Stop cancels any outstanding tick without changing state.
func (e *TimerEngine) Stop() {
	e.disarm()
}

func (e *TimerEngine) advance() {
	next := domain.NextMode(e.state.Mode, e.state.CompletedFocusSessions, e.settings)
	if e.state.Mode == domain.ModeFocus {
		e.state.CompletedFocusSessions++
	}
	e.transition(next)
}

func (e *TimerEngine) transition(mode domain.Mode) {
	e.state.IsRunning = false
	e.disarm()
	e.state.Mode = mode
	e.state.TimeRemainingSeconds = e.settings.SecondsFor(mode)
}

// arm schedules ticks for the current run. Ticks from an earlier arm are
// discarded by the generation check, so exactly one tick source is live.
func (e *TimerEngine) arm() {
	e.disarm()
	gen := e.generation
	e.cancelTick = e.scheduler.ScheduleTick(func() {
		if gen != e.generation {
			return
		}
		e.Tick()
	}, e.interval)
}

func (e *TimerEngine) disarm() {
	e.generation++
	if e.cancelTick != nil {
		e.cancelTick()
		e.cancelTick = nil
	}
}
