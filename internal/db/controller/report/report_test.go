package report

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
	require.NoError(t, err, "failed to create test database")

	err = db.AutoMigrate(
		&models.Role{},
		&models.User{},
		&models.Course{},
		&models.CourseMembership{},
		&models.Project{},
		&models.ProjectMembership{},
		&models.Sprint{},
		&models.Backlog{},
	)
	require.NoError(t, err, "failed to migrate test database")

	course := models.Course{ID: 1, Code: "CS3203", Name: "SE Project", Year: 2024, Semester: 1}
	require.NoError(t, db.Create(&course).Error)

	return db
}

func TestSummary(t *testing.T) {
	db := setupTestDB(t)

	projects := []models.Project{
		{ID: 1, Name: "Alpha", Pkey: "Alpha", CourseID: 1},
		{ID: 2, Name: "Beta", Pkey: "Beta", CourseID: 1},
	}
	require.NoError(t, db.Create(&projects).Error)

	user := models.User{Email: "s1@test.com", DisplayName: "s1", RoleID: models.RoleStudentID}
	require.NoError(t, db.Create(&user).Error)
	require.NoError(t, db.Create(&models.CourseMembership{
		UserID: user.ID, CourseID: 1, RoleID: models.RoleStudentID,
	}).Error)

	sprint := models.Sprint{ProjectID: 1, Name: "Sprint 1", Status: models.SprintStatusCurrent}
	require.NoError(t, db.Create(&sprint).Error)

	items := []models.Backlog{
		{ProjectID: 1, Summary: "a", Type: models.BacklogTypeTask, Status: models.BacklogStatusTodo},
		{ProjectID: 1, Summary: "b", Type: models.BacklogTypeTask, Status: models.BacklogStatusDone},
		{ProjectID: 2, Summary: "c", Type: models.BacklogTypeStory, Status: models.BacklogStatusTodo},
	}
	require.NoError(t, db.Create(&items).Error)

	summary, err := Summary(db, 1)
	require.NoError(t, err)
	assert.EqualValues(t, 2, summary.ProjectCount)
	assert.EqualValues(t, 1, summary.MemberCount)
	assert.EqualValues(t, 1, summary.SprintCount)
	assert.EqualValues(t, 2, summary.BacklogByStatus[models.BacklogStatusTodo])
	assert.EqualValues(t, 1, summary.BacklogByStatus[models.BacklogStatusDone])
}

func TestSummaryEmptyCourse(t *testing.T) {
	db := setupTestDB(t)

	summary, err := Summary(db, 1)
	require.NoError(t, err)
	assert.Zero(t, summary.ProjectCount)
	assert.Empty(t, summary.BacklogByStatus)
}

func TestProjectReport(t *testing.T) {
	db := setupTestDB(t)

	project := models.Project{ID: 1, Name: "Alpha", Pkey: "Alpha", CourseID: 1}
	require.NoError(t, db.Create(&project).Error)

	p3, p5 := 3, 5
	items := []models.Backlog{
		{ProjectID: 1, Summary: "a", Type: models.BacklogTypeTask, Status: models.BacklogStatusDone, Points: &p3},
		{ProjectID: 1, Summary: "b", Type: models.BacklogTypeTask, Status: models.BacklogStatusTodo, Points: &p5},
		{ProjectID: 1, Summary: "c", Type: models.BacklogTypeTask, Status: models.BacklogStatusTodo},
	}
	require.NoError(t, db.Create(&items).Error)

	summary, err := ProjectReport(db, 1)
	require.NoError(t, err)
	assert.EqualValues(t, 8, summary.PointsTotal)
	assert.EqualValues(t, 3, summary.PointsDone)
	assert.EqualValues(t, 2, summary.BacklogByStatus[models.BacklogStatusTodo])
}

func TestNilDB(t *testing.T) {
	_, err := Summary(nil, 1)
	require.ErrorIs(t, err, ErrDBNil)

	_, err = ProjectReport(nil, 1)
	require.ErrorIs(t, err, ErrDBNil)
}
