// Package course provides CRUD operations for courses and their rosters.
package course

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/trofos-project/trofos/internal/db/models"
)

var (
	// ErrCourseNotFound is returned when a course is not found.
	ErrCourseNotFound = errors.New("course not found")
	// ErrCourseCodeEmpty is returned when attempting to create a course with an empty code.
	ErrCourseCodeEmpty = errors.New("course code cannot be empty")
	// ErrCourseAlreadyExists is returned when a course with the same code, year and semester exists.
	ErrCourseAlreadyExists = errors.New("course already exists")
	// ErrMembershipNotFound is returned when a user is not a member of the course.
	ErrMembershipNotFound = errors.New("course membership not found")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// Create creates a new course.
func Create(db *gorm.DB, code, name string, year, semester int, description string) (*models.Course, error) {
	if db == nil {
		return nil, ErrDBNil
	}
	if code == "" {
		return nil, ErrCourseCodeEmpty
	}

	var existing models.Course
	result := db.Where("code = ? AND year = ? AND semester = ?", code, year, semester).First(&existing)
	if result.Error == nil {
		return nil, ErrCourseAlreadyExists
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, result.Error
	}

	course := &models.Course{
		Code:        code,
		Name:        name,
		Year:        year,
		Semester:    semester,
		Description: description,
	}

	if err := db.Create(course).Error; err != nil {
		return nil, err
	}

	return course, nil
}

// Get retrieves a course by its ID.
func Get(db *gorm.DB, id uint64) (*models.Course, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var course models.Course
	result := db.First(&course, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, result.Error
	}

	return &course, nil
}

// GetAll retrieves all courses.
func GetAll(db *gorm.DB) ([]models.Course, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var courses []models.Course
	if err := db.Order("year DESC, semester DESC, code ASC").Find(&courses).Error; err != nil {
		return nil, err
	}

	return courses, nil
}

// GetByUser retrieves all courses the user is a member of.
func GetByUser(db *gorm.DB, userID uint64) ([]models.Course, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var courses []models.Course
	err := db.Joins("JOIN course_memberships ON course_memberships.course_id = courses.id").
		Where("course_memberships.user_id = ?", userID).
		Find(&courses).Error
	if err != nil {
		return nil, err
	}

	return courses, nil
}

// Update updates a course's mutable fields.
func Update(db *gorm.DB, id uint64, name, description string) (*models.Course, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	course, err := Get(db, id)
	if err != nil {
		return nil, err
	}

	course.Name = name
	course.Description = description

	if err := db.Save(course).Error; err != nil {
		return nil, err
	}

	return course, nil
}

// Delete deletes a course by ID.
func Delete(db *gorm.DB, id uint64) error {
	if db == nil {
		return ErrDBNil
	}

	result := db.Delete(&models.Course{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCourseNotFound
	}

	return nil
}

// Members retrieves the roster of a course with users preloaded.
func Members(db *gorm.DB, courseID uint64) ([]models.CourseMembership, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var memberships []models.CourseMembership
	err := db.Preload("User").Where("course_id = ?", courseID).Find(&memberships).Error
	if err != nil {
		return nil, err
	}

	return memberships, nil
}

// AddMember upserts a course membership; an existing membership gets its
// role updated in place.
func AddMember(db *gorm.DB, courseID, userID uint64, roleID uint) error {
	if db == nil {
		return ErrDBNil
	}

	membership := models.CourseMembership{
		UserID:   userID,
		CourseID: courseID,
		RoleID:   roleID,
	}

	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "course_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"role_id"}),
	}).Create(&membership).Error
}

// RemoveMember removes a user from the course roster.
func RemoveMember(db *gorm.DB, courseID, userID uint64) error {
	if db == nil {
		return ErrDBNil
	}

	result := db.Where("course_id = ? AND user_id = ?", courseID, userID).
		Delete(&models.CourseMembership{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrMembershipNotFound
	}

	return nil
}
