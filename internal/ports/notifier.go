package ports

import "github.com/xvierd/pomo-cli/internal/domain"

// Notifier plays the completion chime and shows an optional desktop alert.
// Failures are reported but never affect timer state.
type Notifier interface {
	NotifyCompletion(event domain.CompletionEvent) error
}
