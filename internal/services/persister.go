// Package services implements the application layer (use cases)
// following hexagonal architecture principles.
package services

import (
	"context"
	"encoding/json"
	"errors"
	"io"

	"github.com/charmbracelet/log"

	"github.com/xvierd/pomo-cli/internal/ports"
)

// Storage keys, one per persisted slice.
const (
	KeyTasks          = "pomodoro-tasks"
	KeySettings       = "pomodoro-settings"
	KeyProgress       = "pomodoro-progress"
	KeyActiveTask     = "pomodoro-active-task"
	KeyWeeklyProgress = "pomodoro-weekly-progress"
)

// Persister reads and writes state slices as JSON documents.
// Failures are logged and never returned: in-memory state stays authoritative.
type Persister struct {
	store  ports.KeyValueStore
	logger *log.Logger
}

// NewPersister creates a persister over store.
func NewPersister(store ports.KeyValueStore, logger *log.Logger) *Persister {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Persister{store: store, logger: logger}
}

// Load decodes the slice stored under key into dest.
// It reports false when the key is missing, unreadable or corrupt. dest may be
// partially filled on failure, so callers decode into a fresh value.
func (p *Persister) Load(ctx context.Context, key string, dest any) bool {
	raw, err := p.store.Get(ctx, key)
	if errors.Is(err, ports.ErrKeyNotFound) {
		return false
	}
	if err != nil {
		p.logger.Warn("failed to read state, using default", "key", key, "err", err)
		return false
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		p.logger.Warn("discarding corrupt state", "key", key, "err", err)
		return false
	}
	return true
}

// Save encodes v and writes it under key.
func (p *Persister) Save(key string, v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		p.logger.Error("failed to encode state", "key", key, "err", err)
		return
	}
	if err := p.store.Set(context.Background(), key, raw); err != nil {
		p.logger.Error("failed to persist state", "key", key, "err", err)
	}
}
