// Package backlog provides CRUD operations for backlog items and the status
// columns of a project's board.
package backlog

import (
	"errors"

	"gorm.io/gorm"

	"github.com/trofos-project/trofos/internal/db/models"
)

var (
	// ErrBacklogNotFound is returned when a backlog item is not found.
	ErrBacklogNotFound = errors.New("backlog item not found")
	// ErrSummaryEmpty is returned when attempting to create a backlog item with an empty summary.
	ErrSummaryEmpty = errors.New("backlog summary cannot be empty")
	// ErrUnknownStatus is returned when a status name does not exist on the project's board.
	ErrUnknownStatus = errors.New("unknown backlog status for project")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// Create creates a backlog item on the project backlog. The item starts in
// the leftmost board column and carries a per-project sequence number taken
// from the project's backlog counter.
func Create(db *gorm.DB, projectID uint64, summary string, itemType models.BacklogType, priority models.BacklogPriority) (*models.Backlog, error) {
	if db == nil {
		return nil, ErrDBNil
	}
	if summary == "" {
		return nil, ErrSummaryEmpty
	}

	item := &models.Backlog{
		ProjectID: projectID,
		Summary:   summary,
		Type:      itemType,
		Priority:  priority,
		Status:    models.BacklogStatusTodo,
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&models.Project{}).Where("id = ?", projectID).
			Update("backlog_counter", gorm.Expr("backlog_counter + 1")).Error
		if err != nil {
			return err
		}

		return tx.Create(item).Error
	})
	if err != nil {
		return nil, err
	}

	return item, nil
}

// Get retrieves a backlog item by its ID.
func Get(db *gorm.DB, id uint64) (*models.Backlog, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var item models.Backlog
	result := db.First(&item, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrBacklogNotFound
		}
		return nil, result.Error
	}

	return &item, nil
}

// GetByProject retrieves all backlog items of a project.
func GetByProject(db *gorm.DB, projectID uint64) ([]models.Backlog, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var items []models.Backlog
	if err := db.Where("project_id = ?", projectID).Order("id ASC").Find(&items).Error; err != nil {
		return nil, err
	}

	return items, nil
}

// GetBySprint retrieves the backlog items pulled into a sprint.
func GetBySprint(db *gorm.DB, sprintID uint64) ([]models.Backlog, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var items []models.Backlog
	if err := db.Where("sprint_id = ?", sprintID).Order("id ASC").Find(&items).Error; err != nil {
		return nil, err
	}

	return items, nil
}

// UpdateFields carries the mutable fields of a backlog item for Update.
// Pointer fields clear the column when the pointed-to value is the zero
// value carried by the caller.
type UpdateFields struct {
	Summary    string
	Type       models.BacklogType
	Priority   models.BacklogPriority
	Status     string
	SprintID   *uint64
	AssigneeID *uint64
	Points     *int
}

// Update updates a backlog item. The status must name one of the project's
// board columns.
func Update(db *gorm.DB, id uint64, fields UpdateFields) (*models.Backlog, error) {
	if db == nil {
		return nil, ErrDBNil
	}
	if fields.Summary == "" {
		return nil, ErrSummaryEmpty
	}

	item, err := Get(db, id)
	if err != nil {
		return nil, err
	}

	if fields.Status != item.Status {
		var count int64
		err = db.Model(&models.BacklogStatus{}).
			Where("project_id = ? AND name = ?", item.ProjectID, fields.Status).
			Count(&count).Error
		if err != nil {
			return nil, err
		}
		if count == 0 {
			return nil, ErrUnknownStatus
		}
	}

	item.Summary = fields.Summary
	item.Type = fields.Type
	item.Priority = fields.Priority
	item.Status = fields.Status
	item.SprintID = fields.SprintID
	item.AssigneeID = fields.AssigneeID
	item.Points = fields.Points

	if err := db.Save(item).Error; err != nil {
		return nil, err
	}

	return item, nil
}

// Delete deletes a backlog item by ID.
func Delete(db *gorm.DB, id uint64) error {
	if db == nil {
		return ErrDBNil
	}

	result := db.Delete(&models.Backlog{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrBacklogNotFound
	}

	return nil
}

// Statuses retrieves the board columns of a project in board order.
func Statuses(db *gorm.DB, projectID uint64) ([]models.BacklogStatus, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var statuses []models.BacklogStatus
	err := db.Where("project_id = ?", projectID).Order("sort_order ASC").Find(&statuses).Error
	if err != nil {
		return nil, err
	}

	return statuses, nil
}
