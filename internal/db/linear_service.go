package db

import (
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/timeboxd/timeboxd/internal/models"
)

// SaveLinearProjectRequest carries a project snapshot fetched from Linear by
// the integration layer. The core stores it verbatim.
type SaveLinearProjectRequest struct {
	LinearProjectID string
	LinearTeamID    string
	Name            string
	Description     *string
	State           *string
}

// SaveLinearProject upserts a Linear project row keyed by its external
// project ID.
func (s *Store) SaveLinearProject(req SaveLinearProjectRequest) (*models.LinearProject, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if strings.TrimSpace(req.LinearProjectID) == "" || strings.TrimSpace(req.Name) == "" {
		return nil, validationErr("linear project id and name must not be empty")
	}

	now := s.clock.Now()
	project := models.LinearProject{
		LinearProjectID: req.LinearProjectID,
		LinearTeamID:    req.LinearTeamID,
		Name:            req.Name,
		Description:     req.Description,
		State:           req.State,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	err := s.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "linear_project_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"linear_team_id", "name", "description", "state", "updated_at",
		}),
	}).Create(&project).Error
	if err != nil {
		return nil, storageErr(err)
	}

	var saved models.LinearProject
	if err := s.db.Where("linear_project_id = ?", req.LinearProjectID).First(&saved).Error; err != nil {
		return nil, storageErr(err)
	}
	return &saved, nil
}

// ListLinearProjects returns all non-deleted Linear projects by name.
func (s *Store) ListLinearProjects() ([]models.LinearProject, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var projects []models.LinearProject
	err := s.db.Where("deleted_at IS NULL").Order("name").Find(&projects).Error
	if err != nil {
		return nil, storageErr(err)
	}
	return projects, nil
}

// SetActiveTimeboxProject marks one Linear project as the target for new
// timeboxes, clearing the flag from whichever project held it before. Both
// writes land in one transaction.
func (s *Store) SetActiveTimeboxProject(linearProjectID string) (*models.LinearProject, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	var active models.LinearProject
	err := s.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("linear_project_id = ? AND deleted_at IS NULL", linearProjectID).
			First(&active).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFoundErr("linear project %q", linearProjectID)
		}
		if err != nil {
			return storageErr(err)
		}

		err = tx.Model(&models.LinearProject{}).
			Where("is_active_timebox_project = ?", true).
			Updates(map[string]any{"is_active_timebox_project": false, "updated_at": now}).Error
		if err != nil {
			return storageErr(err)
		}

		err = tx.Model(&models.LinearProject{}).
			Where("id = ?", active.ID).
			Updates(map[string]any{"is_active_timebox_project": true, "updated_at": now}).Error
		if err != nil {
			return storageErr(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := s.db.First(&active, active.ID).Error; err != nil {
		return nil, storageErr(err)
	}
	return &active, nil
}

// ActiveTimeboxProject returns the project flagged for new timeboxes, or nil.
func (s *Store) ActiveTimeboxProject() (*models.LinearProject, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var project models.LinearProject
	err := s.db.Where("is_active_timebox_project = ? AND deleted_at IS NULL", true).
		First(&project).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, storageErr(err)
	}
	return &project, nil
}

// CreateIntegration stores a connection to an external service with its
// typed configuration.
func (s *Store) CreateIntegration(name string, kind models.IntegrationKind, config any) (*models.Integration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if strings.TrimSpace(name) == "" {
		return nil, validationErr("connection name must not be empty")
	}
	configJSON, err := models.EncodeConfig(config)
	if err != nil {
		return nil, validationErr("%v", err)
	}

	now := s.clock.Now()
	integration := models.Integration{
		ConnectionName: name,
		Kind:           kind,
		ConfigJSON:     configJSON,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.db.Create(&integration).Error; err != nil {
		return nil, storageErr(err)
	}
	return &integration, nil
}

// ListIntegrations returns all stored integrations.
func (s *Store) ListIntegrations() ([]models.Integration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var integrations []models.Integration
	if err := s.db.Order("connection_name").Find(&integrations).Error; err != nil {
		return nil, storageErr(err)
	}
	return integrations, nil
}

// IntegrationByKind returns the first stored integration of the given kind,
// or nil when none is configured.
func (s *Store) IntegrationByKind(kind models.IntegrationKind) (*models.Integration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var integration models.Integration
	err := s.db.Where("integration_type = ?", kind).First(&integration).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, storageErr(err)
	}
	return &integration, nil
}

// DeleteIntegration removes a stored connection.
func (s *Store) DeleteIntegration(id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res := s.db.Delete(&models.Integration{}, id)
	if res.Error != nil {
		return storageErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return notFoundErr("integration #%d", id)
	}
	return nil
}
