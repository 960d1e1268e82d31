package models

import (
	"database/sql/driver"
	"fmt"
)

// Status is the lifecycle state of a Timebox, persisted as its string form.
type Status string

const (
	StatusNotStarted Status = "not_started"
	StatusInProgress Status = "in_progress"
	StatusPaused     Status = "paused"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
	StatusStopped    Status = "stopped"
)

// ParseStatus maps a persisted string back to a Status. Unknown strings are
// an error; a row carrying one is corrupt and must not be read as not_started.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusNotStarted, StatusInProgress, StatusPaused,
		StatusCompleted, StatusCancelled, StatusStopped:
		return Status(s), nil
	}
	return "", fmt.Errorf("unknown timebox status %q", s)
}

// Terminal reports whether the status ends session activity. Completed and
// stopped timeboxes may still be restarted.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled || s == StatusStopped
}

func (s Status) String() string {
	return string(s)
}

// Scan implements sql.Scanner, failing loudly on unknown persisted values.
func (s *Status) Scan(value any) error {
	var raw string
	switch v := value.(type) {
	case string:
		raw = v
	case []byte:
		raw = string(v)
	default:
		return fmt.Errorf("cannot scan %T into Status", value)
	}
	parsed, err := ParseStatus(raw)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Value implements driver.Valuer.
func (s Status) Value() (driver.Value, error) {
	if _, err := ParseStatus(string(s)); err != nil {
		return nil, err
	}
	return string(s), nil
}
