package models

import (
	"time"
)

// ChangeLogEntry is an audit record of one update to a Timebox's intention,
// notes, or intended duration. For each tracked field the previous/updated
// pair is either both set or both nil; an entry always has at least one pair.
type ChangeLogEntry struct {
	ID        uint `gorm:"primarykey" json:"id"`
	TimeboxID uint `gorm:"not null;index" json:"timebox_id"`

	PreviousIntention *string `json:"previous_intention"`
	UpdatedIntention  *string `json:"updated_intention"`

	PreviousNotes *string `json:"previous_notes"`
	UpdatedNotes  *string `json:"updated_notes"`

	PreviousIntendedDuration *int64 `json:"previous_intended_duration"`
	NewIntendedDuration      *int64 `json:"new_intended_duration"`

	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	Timebox Timebox `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}
