package db

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/timeboxd/timeboxd/internal/models"
)

// CreateTimeboxRequest holds the data needed to create a new timebox
type CreateTimeboxRequest struct {
	Intention        string
	IntendedDuration int64 // seconds
	Notes            *string
	LinearProjectID  *string
}

// CreateTimebox creates a new timebox in the not_started state.
func (s *Store) CreateTimebox(req CreateTimeboxRequest) (*models.Timebox, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if strings.TrimSpace(req.Intention) == "" {
		return nil, validationErr("intention must not be empty")
	}
	if req.IntendedDuration <= 0 {
		return nil, validationErr("intended duration must be positive, got %d", req.IntendedDuration)
	}

	now := s.clock.Now()
	tb := models.Timebox{
		Intention:        req.Intention,
		Notes:            req.Notes,
		IntendedDuration: req.IntendedDuration,
		Status:           models.StatusNotStarted,
		LinearProjectID:  req.LinearProjectID,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := s.db.Create(&tb).Error; err != nil {
		return nil, storageErr(err)
	}
	return &tb, nil
}

// GetTimebox retrieves a live timebox by ID.
func (s *Store) GetTimebox(id uint) (*models.Timebox, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return getTimebox(s.db, id)
}

// StartTimebox moves a timebox into in_progress and opens a new session.
// The first start stamps started_at; a restart leaves it untouched but
// clears completed_at so a stopped timebox shows up as active again.
func (s *Store) StartTimebox(id uint) (*models.Timebox, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	err := s.db.Transaction(func(tx *gorm.DB) error {
		tb, err := getTimebox(tx, id)
		if err != nil {
			return err
		}
		if tb.CanceledAt != nil {
			return fmt.Errorf("%w: timebox #%d was cancelled and cannot be restarted", ErrConflict, id)
		}

		// A lingering open session would break the one-open-session
		// invariant once the new one is created.
		if err := closeOpenSessions(tx, id, closeStopped, now); err != nil {
			return err
		}

		updates := map[string]any{
			"status":       models.StatusInProgress,
			"completed_at": nil,
			"updated_at":   now,
		}
		if tb.StartedAt == nil {
			updates["started_at"] = now
		}
		if err := tx.Model(&models.Timebox{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return storageErr(err)
		}

		session := models.Session{
			TimeboxID: id,
			StartedAt: now,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := tx.Create(&session).Error; err != nil {
			return storageErr(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return getTimebox(s.db, id)
}

// PauseTimebox closes the open session and parks the timebox in paused.
func (s *Store) PauseTimebox(id uint) (*models.Timebox, error) {
	return s.transition(id, closeStopped, func(tb *models.Timebox, updates map[string]any) {
		updates["status"] = models.StatusPaused
	})
}

// StopTimebox ends work on the timebox by user request. The timebox is
// marked completed_at but keeps the stopped status so it can be told apart
// from an explicit finish.
func (s *Store) StopTimebox(id uint) (*models.Timebox, error) {
	return s.transition(id, closeStopped, func(tb *models.Timebox, updates map[string]any) {
		updates["status"] = models.StatusStopped
		setOnce(updates, "completed_at", tb.CompletedAt)
	})
}

// FinishTimebox completes the timebox by explicit user action.
func (s *Store) FinishTimebox(id uint) (*models.Timebox, error) {
	return s.transition(id, closeStopped, func(tb *models.Timebox, updates map[string]any) {
		updates["status"] = models.StatusCompleted
		setOnce(updates, "completed_at", tb.CompletedAt)
		setOnce(updates, "finished_at", tb.FinishedAt)
	})
}

// StopTimeboxAfterTime completes the timebox because its intended duration
// ran out (or idle auto-stop fired). Only the marker timestamp separates
// this from FinishTimebox; callers must pick the transition that matches
// why the timebox ended.
func (s *Store) StopTimeboxAfterTime(id uint) (*models.Timebox, error) {
	return s.transition(id, closeStopped, func(tb *models.Timebox, updates map[string]any) {
		updates["status"] = models.StatusCompleted
		setOnce(updates, "completed_at", tb.CompletedAt)
		setOnce(updates, "after_time_stopped_at", tb.AfterTimeStoppedAt)
	})
}

// CancelTimebox abandons the timebox. Its open session is cancelled rather
// than stopped, so the time never counts toward the actual duration.
func (s *Store) CancelTimebox(id uint) (*models.Timebox, error) {
	return s.transition(id, closeCancelled, func(tb *models.Timebox, updates map[string]any) {
		updates["status"] = models.StatusCancelled
		setOnce(updates, "canceled_at", tb.CanceledAt)
	})
}

// DeleteTimebox soft-deletes the timebox. Status and sessions are left as
// they are; the tombstone only hides the row from the default views.
func (s *Store) DeleteTimebox(id uint) (*models.Timebox, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	if _, err := getTimebox(s.db, id); err != nil {
		return nil, err
	}
	err := s.db.Model(&models.Timebox{}).Where("id = ?", id).Updates(map[string]any{
		"deleted_at": now,
		"updated_at": now,
	}).Error
	if err != nil {
		return nil, storageErr(err)
	}

	var tb models.Timebox
	if err := s.db.First(&tb, id).Error; err != nil {
		return nil, wrapLookup(err, "timebox", id)
	}
	return &tb, nil
}

// ArchiveTimebox stamps archived_at. Archival is a view filter only and is
// independent of lifecycle status.
func (s *Store) ArchiveTimebox(id uint) (*models.Timebox, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	return s.updateLive(id, map[string]any{
		"archived_at": now,
		"updated_at":  now,
	})
}

// UnarchiveTimebox clears archived_at.
func (s *Store) UnarchiveTimebox(id uint) (*models.Timebox, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.updateLive(id, map[string]any{
		"archived_at": nil,
		"updated_at":  s.clock.Now(),
	})
}

// transition runs the shared close-sessions-then-update shape of the
// lifecycle transitions in one transaction.
func (s *Store) transition(id uint, reason closeReason, apply func(tb *models.Timebox, updates map[string]any)) (*models.Timebox, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	err := s.db.Transaction(func(tx *gorm.DB) error {
		tb, err := getTimebox(tx, id)
		if err != nil {
			return err
		}
		if err := closeOpenSessions(tx, id, reason, now); err != nil {
			return err
		}
		updates := map[string]any{"updated_at": now}
		apply(tb, updates)
		if err := tx.Model(&models.Timebox{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return storageErr(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return getTimebox(s.db, id)
}

// updateLive applies updates to a live timebox and returns the fresh row.
// Callers must hold s.mu.
func (s *Store) updateLive(id uint, updates map[string]any) (*models.Timebox, error) {
	if _, err := getTimebox(s.db, id); err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.Timebox{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return nil, storageErr(err)
	}
	return getTimebox(s.db, id)
}

// UpdateTimeboxRequest carries the editable fields of a timebox. Nil means
// "leave as is".
type UpdateTimeboxRequest struct {
	Intention        *string
	Notes            *string
	IntendedDuration *int64
}

// UpdateTimebox applies the requested field changes and records one change
// log entry covering exactly the fields whose values actually changed. If
// nothing changed, no entry is written and the row is left untouched.
func (s *Store) UpdateTimebox(id uint, req UpdateTimeboxRequest) (*models.Timebox, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if req.Intention != nil && strings.TrimSpace(*req.Intention) == "" {
		return nil, validationErr("intention must not be empty")
	}
	if req.IntendedDuration != nil && *req.IntendedDuration <= 0 {
		return nil, validationErr("intended duration must be positive, got %d", *req.IntendedDuration)
	}

	now := s.clock.Now()
	err := s.db.Transaction(func(tx *gorm.DB) error {
		current, err := getTimebox(tx, id)
		if err != nil {
			return err
		}

		newIntention := current.Intention
		if req.Intention != nil {
			newIntention = *req.Intention
		}
		newNotes := current.Notes
		if req.Notes != nil {
			newNotes = req.Notes
		}
		newDuration := current.IntendedDuration
		if req.IntendedDuration != nil {
			newDuration = *req.IntendedDuration
		}

		intentionChanged := newIntention != current.Intention
		notesChanged := !strPtrEqual(newNotes, current.Notes)
		durationChanged := newDuration != current.IntendedDuration

		if !intentionChanged && !notesChanged && !durationChanged {
			return nil
		}

		entry := models.ChangeLogEntry{TimeboxID: id, UpdatedAt: now}
		if intentionChanged {
			prev := current.Intention
			entry.PreviousIntention = &prev
			entry.UpdatedIntention = &newIntention
		}
		if notesChanged {
			entry.PreviousNotes = current.Notes
			entry.UpdatedNotes = newNotes
		}
		if durationChanged {
			prev := current.IntendedDuration
			entry.PreviousIntendedDuration = &prev
			entry.NewIntendedDuration = &newDuration
		}
		if err := tx.Create(&entry).Error; err != nil {
			return storageErr(err)
		}

		err = tx.Model(&models.Timebox{}).Where("id = ?", id).Updates(map[string]any{
			"intention":         newIntention,
			"notes":             newNotes,
			"intended_duration": newDuration,
			"updated_at":        now,
		}).Error
		if err != nil {
			return storageErr(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return getTimebox(s.db, id)
}

// ReorderRequest assigns a display order to one timebox.
type ReorderRequest struct {
	ID           uint
	DisplayOrder int64
}

// ReorderTimeboxes batch-applies display orders in a single transaction, so
// readers never observe a partial reorder. When the same ID appears more
// than once, the last entry in the list wins.
func (s *Store) ReorderTimeboxes(orders []ReorderRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	return s.db.Transaction(func(tx *gorm.DB) error {
		for _, order := range orders {
			res := tx.Model(&models.Timebox{}).
				Where("id = ? AND deleted_at IS NULL", order.ID).
				Updates(map[string]any{
					"display_order": order.DisplayOrder,
					"updated_at":    now,
				})
			if res.Error != nil {
				return storageErr(res.Error)
			}
			if res.RowsAffected == 0 {
				return notFoundErr("timebox #%d", order.ID)
			}
		}
		return nil
	})
}

// setOnce stamps a marker column with the transition time unless the marker
// already carries a value; markers are written exactly once.
func setOnce(updates map[string]any, column string, existing *time.Time) {
	if existing == nil {
		updates[column] = updates["updated_at"]
	}
}

func strPtrEqual(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
