package db_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/timeboxd/timeboxd/internal/db"
)

func viewIDs(rows []db.TimeboxWithSessions) []uint {
	ids := make([]uint, len(rows))
	for i, row := range rows {
		ids[i] = row.ID
	}
	return ids
}

func TestTodayViewFiltersAndOrder(t *testing.T) {
	store, clk := newTestStore(t)

	first := createTimebox(t, store, "first")
	clk.Advance(time.Minute)
	second := createTimebox(t, store, "second")
	clk.Advance(time.Minute)
	third := createTimebox(t, store, "third")
	clk.Advance(time.Minute)
	archived := createTimebox(t, store, "archived")
	deleted := createTimebox(t, store, "deleted")

	_, err := store.ArchiveTimebox(archived)
	require.NoError(t, err)
	_, err = store.DeleteTimebox(deleted)
	require.NoError(t, err)

	// Manual order on two rows; the third, unordered, sorts last.
	err = store.ReorderTimeboxes([]db.ReorderRequest{
		{ID: second, DisplayOrder: 1},
		{ID: first, DisplayOrder: 2},
	})
	require.NoError(t, err)

	rows, err := store.TodayTimeboxes()
	require.NoError(t, err)
	assert.Equal(t, []uint{second, first, third}, viewIDs(rows))
}

func TestTodayViewExcludesOtherDays(t *testing.T) {
	store, clk := newTestStore(t)

	yesterday := createTimebox(t, store, "yesterday's work")
	_ = yesterday

	clk.Advance(24 * time.Hour)
	today := createTimebox(t, store, "today's work")

	rows, err := store.TodayTimeboxes()
	require.NoError(t, err)
	assert.Equal(t, []uint{today}, viewIDs(rows))
}

func TestActiveViewLifecycle(t *testing.T) {
	store, _ := newTestStore(t)

	running := createTimebox(t, store, "running")
	paused := createTimebox(t, store, "paused")
	finished := createTimebox(t, store, "finished")
	notStarted := createTimebox(t, store, "not started")
	_ = notStarted

	_, err := store.StartTimebox(running)
	require.NoError(t, err)
	_, err = store.StartTimebox(paused)
	require.NoError(t, err)
	_, err = store.PauseTimebox(paused)
	require.NoError(t, err)
	_, err = store.StartTimebox(finished)
	require.NoError(t, err)
	_, err = store.FinishTimebox(finished)
	require.NoError(t, err)

	rows, err := store.ActiveTimeboxes()
	require.NoError(t, err)
	ids := viewIDs(rows)
	assert.Contains(t, ids, running)
	assert.Contains(t, ids, paused, "paused timeboxes are still in flight")
	assert.NotContains(t, ids, finished)
	assert.NotContains(t, ids, notStarted)
}

func TestArchivedViewOrder(t *testing.T) {
	store, clk := newTestStore(t)

	early := createTimebox(t, store, "archived early")
	late := createTimebox(t, store, "archived late")
	plain := createTimebox(t, store, "not archived")
	_ = plain

	_, err := store.ArchiveTimebox(early)
	require.NoError(t, err)
	clk.Advance(time.Minute)
	_, err = store.ArchiveTimebox(late)
	require.NoError(t, err)

	rows, err := store.ArchivedTimeboxes()
	require.NoError(t, err)
	assert.Equal(t, []uint{late, early}, viewIDs(rows))
}

func TestSoftDeleteHidesFromAllViews(t *testing.T) {
	store, _ := newTestStore(t)
	id := createTimebox(t, store, "everywhere then nowhere")

	_, err := store.StartTimebox(id)
	require.NoError(t, err)
	_, err = store.ArchiveTimebox(id)
	require.NoError(t, err)
	_, err = store.DeleteTimebox(id)
	require.NoError(t, err)

	today, err := store.TodayTimeboxes()
	require.NoError(t, err)
	assert.Empty(t, today)

	active, err := store.ActiveTimeboxes()
	require.NoError(t, err)
	assert.Empty(t, active)

	archivedRows, err := store.ArchivedTimeboxes()
	require.NoError(t, err)
	assert.Empty(t, archivedRows)

	sessions, err := store.SessionsForTimebox(id)
	require.NoError(t, err)
	assert.Len(t, sessions, 1, "sessions stay queryable after soft delete")
}

func TestViewsCarrySessionsAndDuration(t *testing.T) {
	store, clk := newTestStore(t)
	id := createTimebox(t, store, "projection")

	_, err := store.StartTimebox(id)
	require.NoError(t, err)
	clk.Advance(4 * time.Minute)

	rows, err := store.TodayTimeboxes()
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Len(t, rows[0].Sessions, 1)
	assert.Equal(t, 4*time.Minute, rows[0].ActualDuration)
}
