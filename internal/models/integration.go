package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// LinearProject mirrors a project from the Linear issue tracker. The core
// only stores and returns these rows; it never talks to the Linear API.
type LinearProject struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	LinearProjectID string  `gorm:"not null;uniqueIndex" json:"linear_project_id"`
	LinearTeamID    string  `gorm:"not null" json:"linear_team_id"`
	Name            string  `gorm:"not null" json:"name"`
	Description     *string `json:"description"`
	State           *string `json:"state"`

	// At most one project is the target for newly created timeboxes.
	IsActiveTimeboxProject bool `gorm:"default:false" json:"is_active_timebox_project"`

	ArchivedAt *time.Time `json:"archived_at"`
	DeletedAt  *time.Time `gorm:"index" json:"deleted_at"`
}

// IntegrationKind identifies which external service a connection belongs to.
type IntegrationKind string

const (
	IntegrationLinear IntegrationKind = "linear"
)

// LinearConfig is the connection configuration for a Linear integration.
type LinearConfig struct {
	APIKey string `json:"api_key"`
}

// Integration is a stored connection to an external service. The config is a
// typed union keyed by Kind, serialized to JSON for storage.
type Integration struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	ConnectionName string          `gorm:"not null" json:"connection_name"`
	Kind           IntegrationKind `gorm:"column:integration_type;not null" json:"integration_type"`
	ConfigJSON     string          `gorm:"column:connection_config;not null" json:"-"`
}

// LinearConfig decodes the stored config for a Linear integration.
func (i *Integration) LinearConfig() (*LinearConfig, error) {
	if i.Kind != IntegrationLinear {
		return nil, fmt.Errorf("integration %q is not a linear connection", i.ConnectionName)
	}
	var cfg LinearConfig
	if err := json.Unmarshal([]byte(i.ConfigJSON), &cfg); err != nil {
		return nil, fmt.Errorf("decode linear config: %w", err)
	}
	return &cfg, nil
}

// EncodeConfig serializes a typed config into the stored JSON form.
func EncodeConfig(cfg any) (string, error) {
	raw, err := json.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("encode integration config: %w", err)
	}
	return string(raw), nil
}
