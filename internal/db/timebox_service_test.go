package db_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/timeboxd/timeboxd/internal/db"
	"github.com/timeboxd/timeboxd/internal/models"
)

func TestCreateTimebox(t *testing.T) {
	store, _ := newTestStore(t)

	tb, err := store.CreateTimebox(db.CreateTimeboxRequest{
		Intention:        "Write the launch email",
		IntendedDuration: 1500,
		Notes:            strPtr("keep it short"),
	})
	require.NoError(t, err)

	assert.Equal(t, models.StatusNotStarted, tb.Status)
	assert.Equal(t, int64(1500), tb.IntendedDuration)
	assert.WithinDuration(t, baseTime, tb.CreatedAt, time.Second)
	assert.Nil(t, tb.StartedAt)

	sessions, err := store.SessionsForTimebox(tb.ID)
	require.NoError(t, err)
	assert.Empty(t, sessions)
}

func TestCreateTimeboxValidation(t *testing.T) {
	store, _ := newTestStore(t)

	_, err := store.CreateTimebox(db.CreateTimeboxRequest{
		Intention:        "   ",
		IntendedDuration: 1500,
	})
	assert.ErrorIs(t, err, db.ErrValidation)

	_, err = store.CreateTimebox(db.CreateTimeboxRequest{
		Intention:        "ok",
		IntendedDuration: 0,
	})
	assert.ErrorIs(t, err, db.ErrValidation)

	_, err = store.CreateTimebox(db.CreateTimeboxRequest{
		Intention:        "ok",
		IntendedDuration: -60,
	})
	assert.ErrorIs(t, err, db.ErrValidation)
}

func TestStartTimebox(t *testing.T) {
	store, _ := newTestStore(t)
	id := createTimebox(t, store, "deep work")

	tb, err := store.StartTimebox(id)
	require.NoError(t, err)

	assert.Equal(t, models.StatusInProgress, tb.Status)
	require.NotNil(t, tb.StartedAt)
	assert.WithinDuration(t, baseTime, *tb.StartedAt, time.Second)

	session, err := store.ActiveSession(id)
	require.NoError(t, err)
	require.NotNil(t, session)
	assert.WithinDuration(t, baseTime, session.StartedAt, time.Second)
}

func TestStartUnknownTimebox(t *testing.T) {
	store, _ := newTestStore(t)

	_, err := store.StartTimebox(999)
	assert.ErrorIs(t, err, db.ErrNotFound)
}

func TestPauseClosesSession(t *testing.T) {
	store, clk := newTestStore(t)
	id := createTimebox(t, store, "deep work")

	_, err := store.StartTimebox(id)
	require.NoError(t, err)

	clk.Advance(5 * time.Minute)
	tb, err := store.PauseTimebox(id)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPaused, tb.Status)

	session, err := store.ActiveSession(id)
	require.NoError(t, err)
	assert.Nil(t, session)

	sessions, err := store.SessionsForTimebox(id)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	require.NotNil(t, sessions[0].StoppedAt)
	assert.WithinDuration(t, baseTime.Add(5*time.Minute), *sessions[0].StoppedAt, time.Second)
	assert.Nil(t, sessions[0].CancelledAt)
}

func TestStopTimebox(t *testing.T) {
	store, clk := newTestStore(t)
	id := createTimebox(t, store, "deep work")

	_, err := store.StartTimebox(id)
	require.NoError(t, err)

	clk.Advance(10 * time.Minute)
	tb, err := store.StopTimebox(id)
	require.NoError(t, err)

	assert.Equal(t, models.StatusStopped, tb.Status)
	require.NotNil(t, tb.CompletedAt)
	assert.Nil(t, tb.FinishedAt)
	assert.Nil(t, tb.AfterTimeStoppedAt)

	// Stopping again is an idempotent no-op for the session ledger.
	_, err = store.StopTimebox(id)
	require.NoError(t, err)
}

// Finish and stop-after-time both complete a timebox but must populate
// mutually distinct marker timestamps.
func TestCompletionMarkersAreExclusive(t *testing.T) {
	store, _ := newTestStore(t)

	finishID := createTimebox(t, store, "finish me")
	_, err := store.StartTimebox(finishID)
	require.NoError(t, err)
	finished, err := store.FinishTimebox(finishID)
	require.NoError(t, err)

	assert.Equal(t, models.StatusCompleted, finished.Status)
	assert.NotNil(t, finished.FinishedAt)
	assert.NotNil(t, finished.CompletedAt)
	assert.Nil(t, finished.AfterTimeStoppedAt)

	expireID := createTimebox(t, store, "expire me")
	_, err = store.StartTimebox(expireID)
	require.NoError(t, err)
	expired, err := store.StopTimeboxAfterTime(expireID)
	require.NoError(t, err)

	assert.Equal(t, models.StatusCompleted, expired.Status)
	assert.NotNil(t, expired.AfterTimeStoppedAt)
	assert.NotNil(t, expired.CompletedAt)
	assert.Nil(t, expired.FinishedAt)
}

func TestCancelTimebox(t *testing.T) {
	store, clk := newTestStore(t)
	id := createTimebox(t, store, "abandon me")

	_, err := store.StartTimebox(id)
	require.NoError(t, err)

	clk.Advance(3 * time.Minute)
	tb, err := store.CancelTimebox(id)
	require.NoError(t, err)

	assert.Equal(t, models.StatusCancelled, tb.Status)
	require.NotNil(t, tb.CanceledAt)
	assert.Nil(t, tb.CompletedAt)

	sessions, err := store.SessionsForTimebox(id)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Nil(t, sessions[0].StoppedAt)
	require.NotNil(t, sessions[0].CancelledAt)
}

// create → start → stop → start must keep the first started_at, clear
// completed_at, and open a fresh session.
func TestRestartAfterStop(t *testing.T) {
	store, clk := newTestStore(t)
	id := createTimebox(t, store, "come back to it")

	_, err := store.StartTimebox(id)
	require.NoError(t, err)

	clk.Advance(5 * time.Minute)
	_, err = store.StopTimebox(id)
	require.NoError(t, err)

	clk.Advance(30 * time.Minute)
	tb, err := store.StartTimebox(id)
	require.NoError(t, err)

	assert.Equal(t, models.StatusInProgress, tb.Status)
	require.NotNil(t, tb.StartedAt)
	assert.WithinDuration(t, baseTime, *tb.StartedAt, time.Second, "restart must not move started_at")
	assert.Nil(t, tb.CompletedAt, "restart must clear completed_at")

	sessions, err := store.SessionsForTimebox(id)
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.True(t, sessions[0].Open())

	active, err := store.ActiveTimeboxes()
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, id, active[0].ID)
}

// At most one open session may exist per timebox after any transition.
func TestSingleOpenSessionInvariant(t *testing.T) {
	store, clk := newTestStore(t)
	id := createTimebox(t, store, "invariant check")

	countOpen := func() int {
		sessions, err := store.SessionsForTimebox(id)
		require.NoError(t, err)
		open := 0
		for _, session := range sessions {
			if session.Open() {
				open++
			}
		}
		return open
	}

	_, err := store.StartTimebox(id)
	require.NoError(t, err)
	assert.Equal(t, 1, countOpen())

	// Starting an already running timebox must not stack open sessions.
	clk.Advance(time.Minute)
	_, err = store.StartTimebox(id)
	require.NoError(t, err)
	assert.Equal(t, 1, countOpen())

	_, err = store.PauseTimebox(id)
	require.NoError(t, err)
	assert.Equal(t, 0, countOpen())

	_, err = store.StartTimebox(id)
	require.NoError(t, err)
	assert.Equal(t, 1, countOpen())

	_, err = store.FinishTimebox(id)
	require.NoError(t, err)
	assert.Equal(t, 0, countOpen())
}

func TestCancelledTimeboxCannotRestart(t *testing.T) {
	store, _ := newTestStore(t)
	id := createTimebox(t, store, "abandoned for good")

	_, err := store.StartTimebox(id)
	require.NoError(t, err)
	_, err = store.CancelTimebox(id)
	require.NoError(t, err)

	_, err = store.StartTimebox(id)
	assert.ErrorIs(t, err, db.ErrConflict)
}

// Repeating a closing transition must not move the marker set the first
// time around.
func TestMarkersAreSetOnce(t *testing.T) {
	store, clk := newTestStore(t)
	id := createTimebox(t, store, "stop twice")

	_, err := store.StartTimebox(id)
	require.NoError(t, err)

	clk.Advance(5 * time.Minute)
	first, err := store.StopTimebox(id)
	require.NoError(t, err)
	require.NotNil(t, first.CompletedAt)

	clk.Advance(5 * time.Minute)
	second, err := store.StopTimebox(id)
	require.NoError(t, err)
	require.NotNil(t, second.CompletedAt)
	assert.WithinDuration(t, *first.CompletedAt, *second.CompletedAt, time.Second)
}

func TestDeleteTimebox(t *testing.T) {
	store, _ := newTestStore(t)
	id := createTimebox(t, store, "gone soon")

	_, err := store.StartTimebox(id)
	require.NoError(t, err)

	tb, err := store.DeleteTimebox(id)
	require.NoError(t, err)
	require.NotNil(t, tb.DeletedAt)
	assert.Equal(t, models.StatusInProgress, tb.Status, "delete must not alter status")

	// Transitions no longer find it.
	_, err = store.GetTimebox(id)
	assert.ErrorIs(t, err, db.ErrNotFound)
	_, err = store.StartTimebox(id)
	assert.ErrorIs(t, err, db.ErrNotFound)

	// But its history stays directly queryable.
	sessions, err := store.SessionsForTimebox(id)
	require.NoError(t, err)
	assert.Len(t, sessions, 1)
	assert.True(t, sessions[0].Open(), "delete must not close sessions")
}

func TestArchiveAndUnarchive(t *testing.T) {
	store, clk := newTestStore(t)
	id := createTimebox(t, store, "shelve me")

	tb, err := store.ArchiveTimebox(id)
	require.NoError(t, err)
	require.NotNil(t, tb.ArchivedAt)
	assert.Equal(t, models.StatusNotStarted, tb.Status, "archive is independent of status")

	clk.Advance(time.Minute)
	tb, err = store.UnarchiveTimebox(id)
	require.NoError(t, err)
	assert.Nil(t, tb.ArchivedAt)
}

func TestReorderTimeboxes(t *testing.T) {
	store, _ := newTestStore(t)
	first := createTimebox(t, store, "first")
	second := createTimebox(t, store, "second")

	err := store.ReorderTimeboxes([]db.ReorderRequest{
		{ID: first, DisplayOrder: 2},
		{ID: second, DisplayOrder: 1},
	})
	require.NoError(t, err)

	tb, err := store.GetTimebox(first)
	require.NoError(t, err)
	require.NotNil(t, tb.DisplayOrder)
	assert.Equal(t, int64(2), *tb.DisplayOrder)
}

// A duplicated ID in one batch deterministically takes the last value.
func TestReorderDuplicateIDLastWins(t *testing.T) {
	store, _ := newTestStore(t)
	id := createTimebox(t, store, "dup")

	err := store.ReorderTimeboxes([]db.ReorderRequest{
		{ID: id, DisplayOrder: 5},
		{ID: id, DisplayOrder: 9},
	})
	require.NoError(t, err)

	tb, err := store.GetTimebox(id)
	require.NoError(t, err)
	require.NotNil(t, tb.DisplayOrder)
	assert.Equal(t, int64(9), *tb.DisplayOrder)
}

// An unknown ID rolls the whole batch back; readers never observe a partial
// reorder.
func TestReorderIsAtomic(t *testing.T) {
	store, _ := newTestStore(t)
	id := createTimebox(t, store, "survivor")

	err := store.ReorderTimeboxes([]db.ReorderRequest{
		{ID: id, DisplayOrder: 1},
		{ID: 999, DisplayOrder: 2},
	})
	assert.ErrorIs(t, err, db.ErrNotFound)

	tb, err := store.GetTimebox(id)
	require.NoError(t, err)
	assert.Nil(t, tb.DisplayOrder, "failed batch must not leave partial orders")
}
