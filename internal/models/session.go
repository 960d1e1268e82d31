package models

import (
	"time"
)

// Session represents one contiguous interval of active work against a Timebox.
// A session is open while both StoppedAt and CancelledAt are nil; once one of
// them is set the other stays nil forever.
type Session struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	TimeboxID   uint       `gorm:"not null;index" json:"timebox_id"`
	StartedAt   time.Time  `gorm:"not null" json:"started_at"`
	StoppedAt   *time.Time `json:"stopped_at"`
	CancelledAt *time.Time `json:"cancelled_at"`

	// Relationships
	Timebox Timebox `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}

// Open reports whether the session is still accumulating work time.
func (s *Session) Open() bool {
	return s.StoppedAt == nil && s.CancelledAt == nil
}

// Duration returns the session's elapsed time, counting an open session up
// to the supplied instant. Cancelled sessions report zero.
func (s *Session) Duration(now time.Time) time.Duration {
	if s.CancelledAt != nil {
		return 0
	}
	end := now
	if s.StoppedAt != nil {
		end = *s.StoppedAt
	}
	return end.Sub(s.StartedAt)
}
