// Package idle implements the auto-stop collaborator: a poll loop that
// watches system idle time and expires in-progress timeboxes once the user
// has been away longer than the configured threshold.
package idle

import (
	"context"
	"time"

	"github.com/caarlos0/env/v11"
	"go.uber.org/zap"

	"github.com/timeboxd/timeboxd/internal/db"
)

// Config is process-level configuration for the watcher, read from the
// environment. The user-facing threshold and enabled flag live in the
// settings table instead.
type Config struct {
	PollInterval time.Duration `env:"TIMEBOXD_IDLE_POLL_INTERVAL" envDefault:"30s"`
}

// LoadConfig parses the watcher configuration from the environment.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// IdleFunc reports how long the user has been idle. Probing is OS glue and
// is injected; SystemIdleTime is the default.
type IdleFunc func() (time.Duration, error)

// SystemIdleTime is the fallback probe. Without an OS hook it reports zero,
// meaning the user is never considered idle.
func SystemIdleTime() (time.Duration, error) {
	return 0, nil
}

// Watcher periodically checks idle time and issues ordinary auto-expire
// transitions against the store, exactly like any other caller.
type Watcher struct {
	store *db.Store
	idle  IdleFunc
	cfg   Config
	log   *zap.Logger
}

// New creates a watcher. A nil idle func falls back to SystemIdleTime.
func New(store *db.Store, idle IdleFunc, cfg Config, log *zap.Logger) *Watcher {
	if idle == nil {
		idle = SystemIdleTime
	}
	return &Watcher{store: store, idle: idle, cfg: cfg, log: log}
}

// Run polls until the context is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.cfg.PollInterval)
	defer ticker.Stop()

	w.log.Info("idle watcher started", zap.Duration("poll_interval", w.cfg.PollInterval))
	for {
		select {
		case <-ctx.Done():
			w.log.Info("idle watcher stopped")
			return ctx.Err()
		case <-ticker.C:
			w.poll()
		}
	}
}

// poll runs one idle check and expires any in-progress timebox with an open
// session when the threshold is exceeded.
func (w *Watcher) poll() {
	settings, err := w.store.IdleSettings()
	if err != nil {
		w.log.Error("failed to read idle settings", zap.Error(err))
		return
	}
	if !settings.Enabled {
		return
	}

	idleFor, err := w.idle()
	if err != nil {
		w.log.Error("failed to probe idle time", zap.Error(err))
		return
	}
	threshold := time.Duration(settings.TimeoutMinutes) * time.Minute
	if idleFor < threshold {
		return
	}

	active, err := w.store.ActiveTimeboxes()
	if err != nil {
		w.log.Error("failed to list active timeboxes", zap.Error(err))
		return
	}
	for _, tb := range active {
		if !hasOpenSession(tb) {
			continue
		}
		if _, err := w.store.StopTimeboxAfterTime(tb.ID); err != nil {
			w.log.Error("failed to auto-expire timebox",
				zap.Uint("timebox_id", tb.ID), zap.Error(err))
			continue
		}
		w.log.Info("auto-expired idle timebox",
			zap.Uint("timebox_id", tb.ID),
			zap.String("intention", tb.Intention),
			zap.Duration("idle_for", idleFor))
	}
}

func hasOpenSession(tb db.TimeboxWithSessions) bool {
	for i := range tb.Sessions {
		if tb.Sessions[i].Open() {
			return true
		}
	}
	return false
}
