package models_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/timeboxd/timeboxd/internal/models"
)

func TestSessionOpen(t *testing.T) {
	now := time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)

	session := models.Session{StartedAt: now}
	assert.True(t, session.Open())

	stopped := now.Add(time.Minute)
	session.StoppedAt = &stopped
	assert.False(t, session.Open())

	cancelled := models.Session{StartedAt: now, CancelledAt: &stopped}
	assert.False(t, cancelled.Open())
}

func TestSessionDuration(t *testing.T) {
	start := time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)
	stop := start.Add(5 * time.Minute)
	now := start.Add(12 * time.Minute)

	closed := models.Session{StartedAt: start, StoppedAt: &stop}
	assert.Equal(t, 5*time.Minute, closed.Duration(now))

	open := models.Session{StartedAt: start}
	assert.Equal(t, 12*time.Minute, open.Duration(now))

	cancelled := models.Session{StartedAt: start, CancelledAt: &stop}
	assert.Zero(t, cancelled.Duration(now))
}
