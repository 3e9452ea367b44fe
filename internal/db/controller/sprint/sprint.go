// Package sprint provides CRUD and lifecycle operations for sprints. A
// project has at most one sprint in the current state at a time.
package sprint

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/trofos-project/trofos/internal/db/models"
)

var (
	// ErrSprintNotFound is returned when a sprint is not found.
	ErrSprintNotFound = errors.New("sprint not found")
	// ErrSprintNameEmpty is returned when attempting to create a sprint with an empty name.
	ErrSprintNameEmpty = errors.New("sprint name cannot be empty")
	// ErrActiveSprintExists is returned when starting a sprint while another is current.
	ErrActiveSprintExists = errors.New("project already has an active sprint")
	// ErrSprintNotCurrent is returned when completing a sprint that is not current.
	ErrSprintNotCurrent = errors.New("sprint is not current")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// Create creates an upcoming sprint in a project.
func Create(db *gorm.DB, projectID uint64, name string, startDate, endDate *time.Time, goals string) (*models.Sprint, error) {
	if db == nil {
		return nil, ErrDBNil
	}
	if name == "" {
		return nil, ErrSprintNameEmpty
	}

	sprint := &models.Sprint{
		ProjectID: projectID,
		Name:      name,
		StartDate: startDate,
		EndDate:   endDate,
		Goals:     goals,
		Status:    models.SprintStatusUpcoming,
	}

	if err := db.Create(sprint).Error; err != nil {
		return nil, err
	}

	return sprint, nil
}

// Get retrieves a sprint by its ID.
func Get(db *gorm.DB, id uint64) (*models.Sprint, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var sprint models.Sprint
	result := db.First(&sprint, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrSprintNotFound
		}
		return nil, result.Error
	}

	return &sprint, nil
}

// GetByProject retrieves all sprints of a project, newest first.
func GetByProject(db *gorm.DB, projectID uint64) ([]models.Sprint, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var sprints []models.Sprint
	if err := db.Where("project_id = ?", projectID).Order("id DESC").Find(&sprints).Error; err != nil {
		return nil, err
	}

	return sprints, nil
}

// Update updates a sprint's mutable fields.
func Update(db *gorm.DB, id uint64, name string, startDate, endDate *time.Time, goals string) (*models.Sprint, error) {
	if db == nil {
		return nil, ErrDBNil
	}
	if name == "" {
		return nil, ErrSprintNameEmpty
	}

	sprint, err := Get(db, id)
	if err != nil {
		return nil, err
	}

	sprint.Name = name
	sprint.StartDate = startDate
	sprint.EndDate = endDate
	sprint.Goals = goals

	if err := db.Save(sprint).Error; err != nil {
		return nil, err
	}

	return sprint, nil
}

// Delete deletes a sprint. Backlog items assigned to it return to the
// project backlog.
func Delete(db *gorm.DB, id uint64) error {
	if db == nil {
		return ErrDBNil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&models.Backlog{}).Where("sprint_id = ?", id).
			Update("sprint_id", nil).Error
		if err != nil {
			return err
		}

		result := tx.Delete(&models.Sprint{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrSprintNotFound
		}

		return nil
	})
}

// Start transitions a sprint to current. Only one sprint per project may be
// current at a time.
func Start(db *gorm.DB, id uint64) (*models.Sprint, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var sprint *models.Sprint
	err := db.Transaction(func(tx *gorm.DB) error {
		var err error
		sprint, err = Get(tx, id)
		if err != nil {
			return err
		}

		var active int64
		err = tx.Model(&models.Sprint{}).
			Where("project_id = ? AND status = ? AND id <> ?", sprint.ProjectID, models.SprintStatusCurrent, id).
			Count(&active).Error
		if err != nil {
			return err
		}
		if active > 0 {
			return ErrActiveSprintExists
		}

		sprint.Status = models.SprintStatusCurrent
		if sprint.StartDate == nil {
			now := time.Now()
			sprint.StartDate = &now
		}

		return tx.Save(sprint).Error
	})
	if err != nil {
		return nil, err
	}

	return sprint, nil
}

// Complete transitions a current sprint to completed. Unfinished backlog
// items are detached from the sprint and return to the project backlog.
func Complete(db *gorm.DB, id uint64) (*models.Sprint, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var sprint *models.Sprint
	err := db.Transaction(func(tx *gorm.DB) error {
		var err error
		sprint, err = Get(tx, id)
		if err != nil {
			return err
		}
		if sprint.Status != models.SprintStatusCurrent {
			return ErrSprintNotCurrent
		}

		err = tx.Model(&models.Backlog{}).
			Where("sprint_id = ? AND status <> ?", id, models.BacklogStatusDone).
			Update("sprint_id", nil).Error
		if err != nil {
			return err
		}

		sprint.Status = models.SprintStatusCompleted
		if sprint.EndDate == nil {
			now := time.Now()
			sprint.EndDate = &now
		}

		return tx.Save(sprint).Error
	})
	if err != nil {
		return nil, err
	}

	return sprint, nil
}
