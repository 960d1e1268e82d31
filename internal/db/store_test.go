package db_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/timeboxd/timeboxd/internal/clock"
	"github.com/timeboxd/timeboxd/internal/db"
)

// baseTime is 10:00 local on an arbitrary workday.
var baseTime = time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)

func newTestStore(t *testing.T) (*db.Store, *clock.Fixed) {
	t.Helper()

	clk := clock.NewFixed(baseTime)
	store, err := db.OpenMemory(clk)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store, clk
}

func createTimebox(t *testing.T, store *db.Store, intention string) uint {
	t.Helper()

	tb, err := store.CreateTimebox(db.CreateTimeboxRequest{
		Intention:        intention,
		IntendedDuration: 25 * 60,
	})
	require.NoError(t, err)
	return tb.ID
}

func strPtr(s string) *string {
	return &s
}

func int64Ptr(n int64) *int64 {
	return &n
}
