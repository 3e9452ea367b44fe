// Package project provides CRUD operations for projects, their members and
// their directed assignment links.
package project

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/trofos-project/trofos/internal/db/models"
)

var (
	// ErrProjectNotFound is returned when a project is not found.
	ErrProjectNotFound = errors.New("project not found")
	// ErrProjectNameEmpty is returned when attempting to create a project with an empty name.
	ErrProjectNameEmpty = errors.New("project name cannot be empty")
	// ErrMembershipNotFound is returned when a user is not a member of the project.
	ErrMembershipNotFound = errors.New("project membership not found")
	// ErrAssignmentNotFound is returned when a project assignment link is not found.
	ErrAssignmentNotFound = errors.New("project assignment not found")
	// ErrSelfAssignment is returned when assigning a project to evaluate itself.
	ErrSelfAssignment = errors.New("project cannot be assigned to itself")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// Create creates a project in a course and seeds it with the default
// backlog statuses, in one transaction.
func Create(db *gorm.DB, courseID uint64, name, pkey string) (*models.Project, error) {
	if db == nil {
		return nil, ErrDBNil
	}
	if name == "" {
		return nil, ErrProjectNameEmpty
	}

	project := &models.Project{
		Name:     name,
		Pkey:     pkey,
		CourseID: courseID,
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(project).Error; err != nil {
			return err
		}

		statuses := models.DefaultBacklogStatuses(project.ID)

		return tx.Create(&statuses).Error
	})
	if err != nil {
		return nil, err
	}

	return project, nil
}

// Get retrieves a project by its ID.
func Get(db *gorm.DB, id uint64) (*models.Project, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var project models.Project
	result := db.First(&project, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, result.Error
	}

	return &project, nil
}

// GetByCourse retrieves all projects of a course.
func GetByCourse(db *gorm.DB, courseID uint64) ([]models.Project, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var projects []models.Project
	if err := db.Where("course_id = ?", courseID).Order("pkey ASC").Find(&projects).Error; err != nil {
		return nil, err
	}

	return projects, nil
}

// GetByUser retrieves all projects the user is a member of.
func GetByUser(db *gorm.DB, userID uint64) ([]models.Project, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var projects []models.Project
	err := db.Joins("JOIN project_memberships ON project_memberships.project_id = projects.id").
		Where("project_memberships.user_id = ?", userID).
		Find(&projects).Error
	if err != nil {
		return nil, err
	}

	return projects, nil
}

// Update updates a project's mutable fields.
func Update(db *gorm.DB, id uint64, name string) (*models.Project, error) {
	if db == nil {
		return nil, ErrDBNil
	}
	if name == "" {
		return nil, ErrProjectNameEmpty
	}

	project, err := Get(db, id)
	if err != nil {
		return nil, err
	}

	project.Name = name

	if err := db.Save(project).Error; err != nil {
		return nil, err
	}

	return project, nil
}

// Delete deletes a project by ID.
func Delete(db *gorm.DB, id uint64) error {
	if db == nil {
		return ErrDBNil
	}

	result := db.Delete(&models.Project{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProjectNotFound
	}

	return nil
}

// Members retrieves the members of a project with users preloaded.
func Members(db *gorm.DB, projectID uint64) ([]models.ProjectMembership, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var memberships []models.ProjectMembership
	err := db.Preload("User").Where("project_id = ?", projectID).Find(&memberships).Error
	if err != nil {
		return nil, err
	}

	return memberships, nil
}

// AddMember links a user to a project; an existing link is left untouched.
func AddMember(db *gorm.DB, projectID, userID uint64) error {
	if db == nil {
		return ErrDBNil
	}

	link := models.ProjectMembership{
		UserID:    userID,
		ProjectID: projectID,
	}

	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "project_id"}},
		DoNothing: true,
	}).Create(&link).Error
}

// RemoveMember removes a user from a project.
func RemoveMember(db *gorm.DB, projectID, userID uint64) error {
	if db == nil {
		return ErrDBNil
	}

	result := db.Where("project_id = ? AND user_id = ?", projectID, userID).
		Delete(&models.ProjectMembership{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrMembershipNotFound
	}

	return nil
}

// Assignments retrieves the directed assignment links where the project is
// the evaluating side.
func Assignments(db *gorm.DB, sourceProjectID uint64) ([]models.ProjectAssignment, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var assignments []models.ProjectAssignment
	err := db.Preload("TargetProject").
		Where("source_project_id = ?", sourceProjectID).
		Find(&assignments).Error
	if err != nil {
		return nil, err
	}

	return assignments, nil
}

// Assign creates a directed assignment link; an existing link is left
// untouched.
func Assign(db *gorm.DB, sourceProjectID, targetProjectID uint64) error {
	if db == nil {
		return ErrDBNil
	}
	if sourceProjectID == targetProjectID {
		return ErrSelfAssignment
	}

	assignment := models.ProjectAssignment{
		SourceProjectID: sourceProjectID,
		TargetProjectID: targetProjectID,
	}

	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "source_project_id"}, {Name: "target_project_id"}},
		DoNothing: true,
	}).Create(&assignment).Error
}

// Unassign removes a directed assignment link.
func Unassign(db *gorm.DB, sourceProjectID, targetProjectID uint64) error {
	if db == nil {
		return ErrDBNil
	}

	result := db.Where("source_project_id = ? AND target_project_id = ?", sourceProjectID, targetProjectID).
		Delete(&models.ProjectAssignment{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrAssignmentNotFound
	}

	return nil
}
