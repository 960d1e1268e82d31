package db

import (
	"errors"
	"strconv"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/timeboxd/timeboxd/internal/models"
)

const (
	settingAutoStopEnabled    = "auto_stop_enabled"
	settingIdleTimeoutMinutes = "idle_timeout_minutes"

	defaultIdleTimeoutMinutes = 5
)

// IdleSettings configures the idle auto-stop behavior. These are durable
// user settings, not process configuration.
type IdleSettings struct {
	Enabled        bool `json:"enabled"`
	TimeoutMinutes int  `json:"timeout_minutes"`
}

// IdleSettings returns the stored idle configuration, falling back to the
// defaults (enabled, 5 minutes) for keys that were never written.
func (s *Store) IdleSettings() (IdleSettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	settings := IdleSettings{Enabled: true, TimeoutMinutes: defaultIdleTimeoutMinutes}

	enabled, err := s.getSetting(settingAutoStopEnabled)
	if err != nil {
		return settings, err
	}
	if enabled != nil {
		settings.Enabled = *enabled == "true"
	}

	timeout, err := s.getSetting(settingIdleTimeoutMinutes)
	if err != nil {
		return settings, err
	}
	if timeout != nil {
		if minutes, err := strconv.Atoi(*timeout); err == nil {
			settings.TimeoutMinutes = minutes
		}
	}
	return settings, nil
}

// SetIdleSettings persists the idle configuration.
func (s *Store) SetIdleSettings(settings IdleSettings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	enabled := "false"
	if settings.Enabled {
		enabled = "true"
	}
	if err := s.putSetting(settingAutoStopEnabled, enabled); err != nil {
		return err
	}
	return s.putSetting(settingIdleTimeoutMinutes, strconv.Itoa(settings.TimeoutMinutes))
}

func (s *Store) getSetting(key string) (*string, error) {
	var setting models.Setting
	err := s.db.Where("key = ?", key).First(&setting).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, storageErr(err)
	}
	return &setting.Value, nil
}

func (s *Store) putSetting(key, value string) error {
	setting := models.Setting{
		Key:       key,
		Value:     value,
		UpdatedAt: s.clock.Now(),
	}
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&setting).Error
	if err != nil {
		return storageErr(err)
	}
	return nil
}
