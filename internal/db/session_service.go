package db

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/timeboxd/timeboxd/internal/models"
)

// closeReason says how an open session ends: stopped time counts toward the
// actual duration, cancelled time does not.
type closeReason string

const (
	closeStopped   closeReason = "stopped_at"
	closeCancelled closeReason = "cancelled_at"
)

// closeOpenSessions stamps the reason column on every open session of the
// timebox. Normally that is exactly one session, but zero is fine too, so
// repeating a stop never errors.
func closeOpenSessions(tx *gorm.DB, timeboxID uint, reason closeReason, now time.Time) error {
	err := tx.Model(&models.Session{}).
		Where("timebox_id = ? AND stopped_at IS NULL AND cancelled_at IS NULL", timeboxID).
		Updates(map[string]any{
			string(reason): now,
			"updated_at":   now,
		}).Error
	if err != nil {
		return storageErr(err)
	}
	return nil
}

// SessionsForTimebox returns every session of a timebox, newest start first.
// Sessions of a soft-deleted timebox remain reachable here.
func (s *Store) SessionsForTimebox(timeboxID uint) ([]models.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return sessionsForTimebox(s.db, timeboxID)
}

func sessionsForTimebox(tx *gorm.DB, timeboxID uint) ([]models.Session, error) {
	var sessions []models.Session
	err := tx.Where("timebox_id = ?", timeboxID).
		Order("started_at DESC").
		Find(&sessions).Error
	if err != nil {
		return nil, storageErr(err)
	}
	return sessions, nil
}

// ActiveSession returns the open session for a timebox, or nil when there is
// none.
func (s *Store) ActiveSession(timeboxID uint) (*models.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var session models.Session
	err := s.db.Where("timebox_id = ? AND stopped_at IS NULL AND cancelled_at IS NULL", timeboxID).
		First(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, storageErr(err)
	}
	return &session, nil
}

// ActualDuration sums the non-cancelled session time of a timebox, counting
// a still-open session up to the current clock reading. The value is derived
// on every call and never persisted.
func (s *Store) ActualDuration(timeboxID uint) (time.Duration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sessions, err := sessionsForTimebox(s.db, timeboxID)
	if err != nil {
		return 0, err
	}
	return sumDurations(sessions, s.clock.Now()), nil
}

func sumDurations(sessions []models.Session, now time.Time) time.Duration {
	var total time.Duration
	for i := range sessions {
		total += sessions[i].Duration(now)
	}
	return total
}
