package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/timeboxd/timeboxd/internal/models"
)

func TestParseStatus(t *testing.T) {
	for _, valid := range []string{
		"not_started", "in_progress", "paused", "completed", "cancelled", "stopped",
	} {
		status, err := models.ParseStatus(valid)
		require.NoError(t, err)
		assert.Equal(t, valid, status.String())
	}
}

// Unknown persisted strings must fail loudly, never default to not_started.
func TestParseStatusUnknown(t *testing.T) {
	_, err := models.ParseStatus("pending")
	assert.Error(t, err)

	_, err = models.ParseStatus("")
	assert.Error(t, err)
}

func TestStatusScan(t *testing.T) {
	var status models.Status
	require.NoError(t, status.Scan("paused"))
	assert.Equal(t, models.StatusPaused, status)

	require.NoError(t, status.Scan([]byte("completed")))
	assert.Equal(t, models.StatusCompleted, status)

	assert.Error(t, status.Scan("bogus"))
	assert.Error(t, status.Scan(42))
}

func TestStatusValueRejectsUnknown(t *testing.T) {
	_, err := models.Status("bogus").Value()
	assert.Error(t, err)

	value, err := models.StatusInProgress.Value()
	require.NoError(t, err)
	assert.Equal(t, "in_progress", value)
}

func TestStatusTerminal(t *testing.T) {
	assert.True(t, models.StatusCompleted.Terminal())
	assert.True(t, models.StatusCancelled.Terminal())
	assert.True(t, models.StatusStopped.Terminal())
	assert.False(t, models.StatusInProgress.Terminal())
	assert.False(t, models.StatusPaused.Terminal())
	assert.False(t, models.StatusNotStarted.Terminal())
}
