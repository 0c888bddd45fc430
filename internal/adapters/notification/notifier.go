// Package notification plays the completion chime and shows desktop notifications.
package notification

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/gen2brain/beeep"

	"github.com/xvierd/pomo-cli/internal/config"
	"github.com/xvierd/pomo-cli/internal/domain"
	"github.com/xvierd/pomo-cli/internal/ports"
)

// Chime tone: 800 Hz for half a second.
const (
	chimeFrequency = 800.0
	chimeDuration  = 500
)

// Notifier handles the completion chime and desktop notifications.
type Notifier struct {
	cfg    *config.NotificationConfig
	logger *log.Logger

	beep   func(freq float64, duration int) error
	notify func(title, message string) error
	async  bool
}

// Ensure Notifier implements ports.Notifier.
var _ ports.Notifier = (*Notifier)(nil)

// New creates a new notifier with the given configuration.
func New(cfg *config.NotificationConfig, logger *log.Logger) *Notifier {
	return &Notifier{
		cfg:    cfg,
		logger: logger,
		beep:   beeep.Beep,
		notify: func(title, message string) error {
			return beeep.Notify(title, message, "")
		},
		async: true,
	}
}

// NotifyCompletion delivers the chime and notification in the background.
// Failures are logged; the caller is never blocked.
func (n *Notifier) NotifyCompletion(event domain.CompletionEvent) error {
	if !n.async {
		return n.Deliver(event)
	}
	go func() {
		if err := n.Deliver(event); err != nil {
			n.logger.Warn("completion notification failed", "mode", event.Mode, "err", err)
		}
	}()
	return nil
}

// Deliver plays the chime and shows the notification synchronously.
func (n *Notifier) Deliver(event domain.CompletionEvent) error {
	if n.cfg == nil {
		return nil
	}
	var errs []error
	if n.cfg.Sound {
		if err := n.beep(chimeFrequency, chimeDuration); err != nil {
			errs = append(errs, fmt.Errorf("failed to play chime: %w", err))
		}
	}
	if n.cfg.Enabled {
		title, message := Message(event)
		if err := n.notify(title, message); err != nil {
			errs = append(errs, fmt.Errorf("failed to show notification: %w", err))
		}
	}
	return errors.Join(errs...)
}

// Message returns the notification title and body for a completed session.
func Message(event domain.CompletionEvent) (title, message string) {
	switch event.Mode {
	case domain.ModeFocus:
		return "🍅 Focus complete!", fmt.Sprintf("%d minutes of focus done. Time for a break.", event.DurationMinutes)
	case domain.ModeLongBreak:
		return "☕ Long break over!", "Rested up? Start the next focus session."
	default:
		return "☕ Break over!", fmt.Sprintf("Your %d minute break is complete. Ready to focus?", event.DurationMinutes)
	}
}

// IsEnabled returns true if either the chime or notifications are on.
func (n *Notifier) IsEnabled() bool {
	return n.cfg != nil && (n.cfg.Enabled || n.cfg.Sound)
}
