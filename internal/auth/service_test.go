package auth

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/trofos-project/trofos/internal/db/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to open sqlite in-memory db")

	err = db.AutoMigrate(
		&models.Role{},
		&models.User{},
		&models.Course{},
		&models.CourseMembership{},
		&models.Project{},
		&models.ProjectMembership{},
	)
	require.NoError(t, err, "failed to migrate test database")

	roles := []models.Role{
		{ID: models.RoleAdminID, Name: models.RoleAdminName},
		{ID: models.RoleFacultyID, Name: models.RoleFacultyName},
		{ID: models.RoleStudentID, Name: models.RoleStudentName},
	}
	require.NoError(t, db.Create(&roles).Error)

	users := []models.User{
		{ID: 1, Email: "admin@test.com", RoleID: models.RoleAdminID},
		{ID: 2, Email: "prof@test.com", RoleID: models.RoleFacultyID},
		{ID: 3, Email: "s1@test.com", RoleID: models.RoleStudentID},
		{ID: 4, Email: "s2@test.com", RoleID: models.RoleStudentID},
	}
	require.NoError(t, db.Create(&users).Error)

	course := models.Course{ID: 1, Code: "CS3203", Name: "Software Engineering Project", Year: 2024, Semester: 1}
	require.NoError(t, db.Create(&course).Error)

	memberships := []models.CourseMembership{
		{UserID: 2, CourseID: 1, RoleID: models.RoleFacultyID},
		{UserID: 3, CourseID: 1, RoleID: models.RoleStudentID},
	}
	require.NoError(t, db.Create(&memberships).Error)

	project := models.Project{ID: 1, CourseID: 1, Name: "Team A", Pkey: "A"}
	require.NoError(t, db.Create(&project).Error)

	link := models.ProjectMembership{UserID: 3, ProjectID: 1}
	require.NoError(t, db.Create(&link).Error)

	return db
}

func TestIsAdmin(t *testing.T) {
	s := NewService(setupTestDB(t))

	isAdmin, err := s.IsAdmin(1)
	require.NoError(t, err)
	assert.True(t, isAdmin)

	isAdmin, err = s.IsAdmin(3)
	require.NoError(t, err)
	assert.False(t, isAdmin)
}

func TestHasCourseRole(t *testing.T) {
	s := NewService(setupTestDB(t))

	tests := []struct {
		name     string
		userID   uint64
		roleID   uint
		expected bool
	}{
		{"faculty passes faculty check", 2, models.RoleFacultyID, true},
		{"faculty passes student check", 2, models.RoleStudentID, true},
		{"student fails faculty check", 3, models.RoleFacultyID, false},
		{"student passes student check", 3, models.RoleStudentID, true},
		{"admin passes without membership", 1, models.RoleFacultyID, true},
		{"non-member fails", 4, models.RoleStudentID, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			allowed, err := s.HasCourseRole(tt.userID, 1, tt.roleID)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, allowed)
		})
	}
}

func TestIsProjectMember(t *testing.T) {
	s := NewService(setupTestDB(t))

	// Direct team member.
	allowed, err := s.IsProjectMember(3, 1)
	require.NoError(t, err)
	assert.True(t, allowed)

	// Faculty of the owning course.
	allowed, err = s.IsProjectMember(2, 1)
	require.NoError(t, err)
	assert.True(t, allowed)

	// Admin bypass.
	allowed, err = s.IsProjectMember(1, 1)
	require.NoError(t, err)
	assert.True(t, allowed)

	// Unrelated student.
	allowed, err = s.IsProjectMember(4, 1)
	require.NoError(t, err)
	assert.False(t, allowed)
}

func TestCourseRole(t *testing.T) {
	s := NewService(setupTestDB(t))

	roleID, err := s.CourseRole(2, 1)
	require.NoError(t, err)
	assert.Equal(t, models.RoleFacultyID, roleID)

	roleID, err = s.CourseRole(4, 1)
	require.NoError(t, err)
	assert.Zero(t, roleID)
}
