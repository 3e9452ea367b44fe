package course

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
	)
	require.NoError(t, err, "failed to migrate test database")

	roles := []models.Role{
		{ID: models.RoleAdminID, Name: models.RoleAdminName},
		{ID: models.RoleFacultyID, Name: models.RoleFacultyName},
		{ID: models.RoleStudentID, Name: models.RoleStudentName},
	}
	require.NoError(t, db.Create(&roles).Error, "failed to seed roles")

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	user := &models.User{Email: email, DisplayName: email, RoleID: models.RoleStudentID}
	require.NoError(t, db.Create(user).Error)

	return user
}

func TestCreate(t *testing.T) {
	tests := []struct {
		name     string
		code     string
		year     int
		semester int
		wantErr  error
	}{
		{name: "valid course", code: "CS3203", year: 2024, semester: 1},
		{name: "empty code", code: "", year: 2024, semester: 1, wantErr: ErrCourseCodeEmpty},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := setupTestDB(t)

			course, err := Create(db, tt.code, "Software Engineering Project", tt.year, tt.semester, "")
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.NotZero(t, course.ID)
			assert.Equal(t, tt.code, course.Code)
		})
	}
}

func TestCreateDuplicate(t *testing.T) {
	db := setupTestDB(t)

	_, err := Create(db, "CS3203", "SE Project", 2024, 1, "")
	require.NoError(t, err)

	_, err = Create(db, "CS3203", "SE Project", 2024, 1, "")
	require.ErrorIs(t, err, ErrCourseAlreadyExists)

	// Same code in another semester is a different offering.
	_, err = Create(db, "CS3203", "SE Project", 2024, 2, "")
	require.NoError(t, err)
}

func TestGet(t *testing.T) {
	db := setupTestDB(t)

	created, err := Create(db, "CS3203", "SE Project", 2024, 1, "capstone")
	require.NoError(t, err)

	got, err := Get(db, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "CS3203", got.Code)
	assert.Equal(t, "capstone", got.Description)

	_, err = Get(db, 999)
	require.ErrorIs(t, err, ErrCourseNotFound)
}

func TestUpdate(t *testing.T) {
	db := setupTestDB(t)

	created, err := Create(db, "CS3203", "SE Project", 2024, 1, "")
	require.NoError(t, err)

	updated, err := Update(db, created.ID, "Software Engineering", "renamed")
	require.NoError(t, err)
	assert.Equal(t, "Software Engineering", updated.Name)
	assert.Equal(t, "renamed", updated.Description)

	_, err = Update(db, 999, "x", "")
	require.ErrorIs(t, err, ErrCourseNotFound)
}

func TestDelete(t *testing.T) {
	db := setupTestDB(t)

	created, err := Create(db, "CS3203", "SE Project", 2024, 1, "")
	require.NoError(t, err)

	require.NoError(t, Delete(db, created.ID))
	require.ErrorIs(t, Delete(db, created.ID), ErrCourseNotFound)
}

func TestMembers(t *testing.T) {
	db := setupTestDB(t)

	course, err := Create(db, "CS3203", "SE Project", 2024, 1, "")
	require.NoError(t, err)
	user := createTestUser(t, db, "s1@test.com")

	require.NoError(t, AddMember(db, course.ID, user.ID, models.RoleStudentID))

	members, err := Members(db, course.ID)
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, "s1@test.com", members[0].User.Email)
	assert.Equal(t, models.RoleStudentID, members[0].RoleID)

	// Re-adding with another role updates the membership in place.
	require.NoError(t, AddMember(db, course.ID, user.ID, models.RoleFacultyID))

	members, err = Members(db, course.ID)
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, models.RoleFacultyID, members[0].RoleID)

	require.NoError(t, RemoveMember(db, course.ID, user.ID))
	require.ErrorIs(t, RemoveMember(db, course.ID, user.ID), ErrMembershipNotFound)
}

func TestGetByUser(t *testing.T) {
	db := setupTestDB(t)

	c1, err := Create(db, "CS3203", "SE Project", 2024, 1, "")
	require.NoError(t, err)
	_, err = Create(db, "CS2103", "SE", 2024, 1, "")
	require.NoError(t, err)
	user := createTestUser(t, db, "s1@test.com")

	require.NoError(t, AddMember(db, c1.ID, user.ID, models.RoleStudentID))

	courses, err := GetByUser(db, user.ID)
	require.NoError(t, err)
	require.Len(t, courses, 1)
	assert.Equal(t, "CS3203", courses[0].Code)
}

func TestNilDB(t *testing.T) {
	_, err := Create(nil, "CS3203", "x", 2024, 1, "")
	require.ErrorIs(t, err, ErrDBNil)

	_, err = Get(nil, 1)
	require.ErrorIs(t, err, ErrDBNil)

	require.ErrorIs(t, AddMember(nil, 1, 1, 1), ErrDBNil)
}
