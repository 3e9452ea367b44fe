package auth

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/trofos-project/trofos/internal/db/models"
)

// Service answers authorization questions against the database.
type Service struct {
	db *gorm.DB
}

// NewService creates a new auth service.
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// IsAdmin reports whether the user's global role is administrator.
func (s *Service) IsAdmin(userID uint64) (bool, error) {
	var count int64

	err := s.db.Model(&models.User{}).
		Where("id = ? AND role_id = ?", userID, models.RoleAdminID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check admin role: %w", err)
	}

	return count > 0, nil
}

// HasCourseRole reports whether the user is a member of the course with at
// least the given role. Role IDs order by privilege: admin < faculty <
// student, so a lower role ID means more privilege. Administrators pass
// every check.
func (s *Service) HasCourseRole(userID, courseID uint64, roleID uint) (bool, error) {
	isAdmin, err := s.IsAdmin(userID)
	if err != nil {
		return false, err
	}
	if isAdmin {
		return true, nil
	}

	var count int64

	err = s.db.Model(&models.CourseMembership{}).
		Where("user_id = ? AND course_id = ? AND role_id <= ?", userID, courseID, roleID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check course role: %w", err)
	}

	return count > 0, nil
}

// IsCourseMember reports whether the user has any membership in the course.
func (s *Service) IsCourseMember(userID, courseID uint64) (bool, error) {
	return s.HasCourseRole(userID, courseID, models.RoleStudentID)
}

// IsProjectMember reports whether the user is on the project's team.
// Faculty of the owning course and administrators also pass.
func (s *Service) IsProjectMember(userID, projectID uint64) (bool, error) {
	var count int64

	err := s.db.Model(&models.ProjectMembership{}).
		Where("user_id = ? AND project_id = ?", userID, projectID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check project membership: %w", err)
	}

	if count > 0 {
		return true, nil
	}

	var project models.Project
	if err := s.db.First(&project, projectID).Error; err != nil {
		return false, fmt.Errorf("failed to load project: %w", err)
	}

	return s.HasCourseRole(userID, project.CourseID, models.RoleFacultyID)
}

// CourseRole returns the role the user holds in the course, or zero when the
// user is not a member.
func (s *Service) CourseRole(userID, courseID uint64) (uint, error) {
	var membership models.CourseMembership

	err := s.db.Where("user_id = ? AND course_id = ?", userID, courseID).
		First(&membership).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}

		return 0, fmt.Errorf("failed to load course membership: %w", err)
	}

	return membership.RoleID, nil
}
