package db

import (
	"github.com/timeboxd/timeboxd/internal/models"
)

// ChangeLogForTimebox returns the audit trail of a timebox, newest entry
// first. Entries are only ever written by UpdateTimebox; nothing mutates or
// deletes them afterwards.
func (s *Store) ChangeLogForTimebox(timeboxID uint) ([]models.ChangeLogEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var entries []models.ChangeLogEntry
	err := s.db.Where("timebox_id = ?", timeboxID).
		Order("updated_at DESC, id DESC").
		Find(&entries).Error
	if err != nil {
		return nil, storageErr(err)
	}
	return entries, nil
}
