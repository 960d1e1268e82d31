package db

import (
	"time"

	"gorm.io/gorm"

	"github.com/timeboxd/timeboxd/internal/models"
)

// TimeboxWithSessions is the read model served to views: the timebox, its
// full session history, and the derived actual duration at read time.
type TimeboxWithSessions struct {
	models.Timebox
	Sessions       []models.Session `json:"sessions"`
	ActualDuration time.Duration    `json:"actual_duration_seconds"`
}

// TodayTimeboxes returns the timeboxes created on the current local calendar
// date that are neither deleted nor archived, ordered by display order with
// unordered rows last, then newest first.
func (s *Store) TodayTimeboxes() ([]TimeboxWithSessions, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	dayStart, dayEnd := s.todayBounds()
	return s.project(s.db.
		Where("created_at >= ? AND created_at < ?", dayStart, dayEnd).
		Where("deleted_at IS NULL AND archived_at IS NULL").
		Order("COALESCE(display_order, 999999), created_at DESC"))
}

// ActiveTimeboxes returns every timebox that has been started and not yet
// completed, stopped after time, cancelled, or deleted, newest first. A
// restarted timebox reappears here because restart clears completed_at.
func (s *Store) ActiveTimeboxes() ([]TimeboxWithSessions, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.project(s.db.
		Where("started_at IS NOT NULL").
		Where("completed_at IS NULL AND after_time_stopped_at IS NULL").
		Where("canceled_at IS NULL AND deleted_at IS NULL").
		Order("created_at DESC"))
}

// ArchivedTimeboxes returns today's archived, non-deleted timeboxes, most
// recently archived first.
func (s *Store) ArchivedTimeboxes() ([]TimeboxWithSessions, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	dayStart, dayEnd := s.todayBounds()
	return s.project(s.db.
		Where("created_at >= ? AND created_at < ?", dayStart, dayEnd).
		Where("deleted_at IS NULL AND archived_at IS NOT NULL").
		Order("archived_at DESC"))
}

func (s *Store) todayBounds() (time.Time, time.Time) {
	now := s.clock.Now()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return start, start.AddDate(0, 0, 1)
}

// project runs the timebox query and attaches sessions and the computed
// actual duration to each row.
func (s *Store) project(query *gorm.DB) ([]TimeboxWithSessions, error) {
	var timeboxes []models.Timebox
	if err := query.Find(&timeboxes).Error; err != nil {
		return nil, storageErr(err)
	}

	now := s.clock.Now()
	result := make([]TimeboxWithSessions, 0, len(timeboxes))
	for _, tb := range timeboxes {
		sessions, err := sessionsForTimebox(s.db, tb.ID)
		if err != nil {
			return nil, err
		}
		result = append(result, TimeboxWithSessions{
			Timebox:        tb,
			Sessions:       sessions,
			ActualDuration: sumDurations(sessions, now),
		})
	}
	return result, nil
}
