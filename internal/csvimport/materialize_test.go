package csvimport

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/trofos-project/trofos/internal/db/models"
)

// setupTestDB creates an in-memory SQLite database for testing, migrated and
// seeded with the three roles and one course.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to create test database")

	err = db.AutoMigrate(
		&models.Role{},
		&models.User{},
		&models.Course{},
		&models.CourseMembership{},
		&models.Project{},
		&models.ProjectMembership{},
		&models.BacklogStatus{},
		&models.ProjectAssignment{},
	)
	require.NoError(t, err, "failed to migrate test database")

	roles := []models.Role{
		{ID: models.RoleAdminID, Name: models.RoleAdminName},
		{ID: models.RoleFacultyID, Name: models.RoleFacultyName},
		{ID: models.RoleStudentID, Name: models.RoleStudentName},
	}
	require.NoError(t, db.Create(&roles).Error, "failed to seed roles")

	course := models.Course{ID: 1, Code: "CS3203", Name: "Software Engineering Project", Year: 2024, Semester: 1}
	require.NoError(t, db.Create(&course).Error, "failed to seed course")

	return db
}

func studentDetail(name, email string) *UserDetail {
	return &UserDetail{
		Name:     name,
		Email:    email,
		Password: models.HashPassword("p"),
		RoleID:   models.RoleStudentID,
	}
}

func TestMaterialize(t *testing.T) {
	db := setupTestDB(t)

	users := map[string]*UserDetail{
		"s1@test.com": studentDetail("s1", "s1@test.com"),
		"s2@test.com": studentDetail("s2", "s2@test.com"),
		"f1@test.com": {Name: "f1", Email: "f1@test.com", RoleID: models.RoleFacultyID},
	}
	groups := map[string]*GroupDetail{
		"A": {CourseID: 1, TeamName: "A", ProjectName: "Project A"},
	}
	grouping := map[string]string{
		"s1@test.com": "A",
		"s2@test.com": "A",
	}

	require.NoError(t, Materialize(db, 1, users, groups, grouping))

	// One project keyed by the team name, seeded with three board columns.
	var project models.Project
	require.NoError(t, db.Where("pkey = ?", "A").First(&project).Error)
	assert.Equal(t, "Project A", project.Name)
	assert.Equal(t, uint64(1), project.CourseID)
	assert.Equal(t, project.ID, groups["A"].ProjectID)

	var statusCount int64
	db.Model(&models.BacklogStatus{}).Where("project_id = ?", project.ID).Count(&statusCount)
	assert.EqualValues(t, 3, statusCount)

	var userCount int64
	db.Model(&models.User{}).Count(&userCount)
	assert.EqualValues(t, 3, userCount)

	// Course memberships carry the roles from the roster.
	var membership models.CourseMembership
	require.NoError(t, db.Where("user_id = ?", users["f1@test.com"].ID).First(&membership).Error)
	assert.Equal(t, models.RoleFacultyID, membership.RoleID)

	// Both students are linked to the team's project, faculty is not.
	var linkCount int64
	db.Model(&models.ProjectMembership{}).Where("project_id = ?", project.ID).Count(&linkCount)
	assert.EqualValues(t, 2, linkCount)
}

func TestMaterializeIdempotentReimport(t *testing.T) {
	db := setupTestDB(t)

	users := map[string]*UserDetail{"s1@test.com": studentDetail("s1", "s1@test.com")}
	groups := map[string]*GroupDetail{"A": {CourseID: 1, TeamName: "A", ProjectName: "A"}}
	grouping := map[string]string{"s1@test.com": "A"}

	require.NoError(t, Materialize(db, 1, users, groups, grouping))

	// Second import of the same person with a different role: no duplicate
	// user, single membership with the latest role.
	again := map[string]*UserDetail{
		"s1@test.com": {Name: "s1", Email: "s1@test.com", RoleID: models.RoleFacultyID},
	}
	require.NoError(t, Materialize(db, 1, again, map[string]*GroupDetail{}, map[string]string{}))

	var userCount int64
	db.Model(&models.User{}).Where("email = ?", "s1@test.com").Count(&userCount)
	assert.EqualValues(t, 1, userCount)

	var memberships []models.CourseMembership
	require.NoError(t, db.Where("course_id = ?", 1).Find(&memberships).Error)
	require.Len(t, memberships, 1)
	assert.Equal(t, models.RoleFacultyID, memberships[0].RoleID)
}

func TestMaterializeStudentWithoutTeamRollsBack(t *testing.T) {
	db := setupTestDB(t)

	users := map[string]*UserDetail{
		"s1@test.com": studentDetail("s1", "s1@test.com"),
		"s2@test.com": studentDetail("s2", "s2@test.com"),
	}
	groups := map[string]*GroupDetail{"A": {CourseID: 1, TeamName: "A", ProjectName: "A"}}
	// s2 never resolved to a team: the validator would have rejected the
	// file, so this is the defensive integrity path.
	grouping := map[string]string{"s1@test.com": "A"}

	err := Materialize(db, 1, users, groups, grouping)
	require.Error(t, err)
	require.ErrorIs(t, err, ErrUserGroupUndefined)

	// The whole transaction rolled back, including the created project and
	// the sibling user that materialized cleanly.
	var userCount, projectCount int64
	db.Model(&models.User{}).Count(&userCount)
	db.Model(&models.Project{}).Count(&projectCount)
	assert.Zero(t, userCount)
	assert.Zero(t, projectCount)
}

func TestMaterializeNilDB(t *testing.T) {
	err := Materialize(nil, 1, map[string]*UserDetail{}, map[string]*GroupDetail{}, map[string]string{})
	require.ErrorIs(t, err, ErrDBNil)
}
