package models

import (
	"time"
)

// Timebox represents a planned unit of intentional work
type Timebox struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Intention        string  `gorm:"not null" json:"intention"`
	Notes            *string `json:"notes"`
	IntendedDuration int64   `gorm:"not null" json:"intended_duration"` // seconds
	Status           Status  `gorm:"type:text;default:not_started" json:"status"`

	// Lifecycle markers. Each is set once by the transition that owns it;
	// completed_at is additionally cleared on restart, archived_at on unarchive.
	StartedAt          *time.Time `json:"started_at"`
	CompletedAt        *time.Time `json:"completed_at"`
	FinishedAt         *time.Time `json:"finished_at"`
	AfterTimeStoppedAt *time.Time `json:"after_time_stopped_at"`
	CanceledAt         *time.Time `json:"canceled_at"`
	ArchivedAt         *time.Time `json:"archived_at"`
	DeletedAt          *time.Time `gorm:"index" json:"deleted_at"`

	DisplayOrder *int64 `json:"display_order"`

	// Opaque reference to an external issue-tracker project, never validated here.
	LinearProjectID *string `json:"linear_project_id"`
}

// Deleted reports whether the timebox carries a soft-delete tombstone.
func (t *Timebox) Deleted() bool {
	return t.DeletedAt != nil
}
