package models

import (
	"time"
)

// Setting is a single key/value row of durable user configuration, such as
// the idle auto-stop threshold.
type Setting struct {
	Key       string    `gorm:"primarykey" json:"key"`
	Value     string    `gorm:"not null" json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}
