package csvimport

import (
	"encoding/csv"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/trofos-project/trofos/internal/db/models"
)

// writeCSV writes a CSV fixture into a temp dir and returns its path.
func writeCSV(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "import.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestImportCourseData(t *testing.T) {
	db := setupTestDB(t)

	path := writeCSV(t, "name,email,password,role,teamName,projectName\n"+
		"s1,s1@test.com,p,student,A,\n")

	require.NoError(t, ImportCourseData(db, path, 1))

	// One project named after the team, one user, one membership link.
	var project models.Project
	require.NoError(t, db.Where("course_id = ?", 1).First(&project).Error)
	assert.Equal(t, "A", project.Name)
	assert.Equal(t, "A", project.Pkey)

	var user models.User
	require.NoError(t, db.Where("email = ?", "s1@test.com").First(&user).Error)
	require.NotEmpty(t, user.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("p")))

	var linkCount int64
	db.Model(&models.ProjectMembership{}).Where("user_id = ?", user.ID).Count(&linkCount)
	assert.EqualValues(t, 1, linkCount)
}

func TestImportCourseDataHeaderOrderInsensitive(t *testing.T) {
	db := setupTestDB(t)

	path := writeCSV(t, "role,teamName,email,name,projectName,password\n"+
		"student,A,s1@test.com,s1,Project A,p\n")

	require.NoError(t, ImportCourseData(db, path, 1))

	var project models.Project
	require.NoError(t, db.Where("pkey = ?", "A").First(&project).Error)
	assert.Equal(t, "Project A", project.Name)
}

func TestImportCourseDataInvalidRowBlocksBatch(t *testing.T) {
	db := setupTestDB(t)

	// Row 3 is invalid: a single bad row anywhere blocks the whole file.
	path := writeCSV(t, "name,email,password,role,teamName,projectName\n"+
		"s1,s1@test.com,p,student,A,\n"+
		"s2,not-an-email,p,student,A,\n")

	err := ImportCourseData(db, path, 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 3")
	assert.Contains(t, err.Error(), ReasonInvalidEmail)

	var userCount, projectCount, membershipCount int64
	db.Model(&models.User{}).Count(&userCount)
	db.Model(&models.Project{}).Count(&projectCount)
	db.Model(&models.CourseMembership{}).Count(&membershipCount)
	assert.Zero(t, userCount)
	assert.Zero(t, projectCount)
	assert.Zero(t, membershipCount)
}

func TestImportCourseDataReportsAllRows(t *testing.T) {
	db := setupTestDB(t)

	// The whole file is scanned before rejection: both bad rows appear in
	// the one combined message.
	path := writeCSV(t, "name,email,password,role,teamName,projectName\n"+
		"s1,bad,p,student,A,\n"+
		"s2,s2@test.com,p,invalidRole,A,\n")

	err := ImportCourseData(db, path, 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 2")
	assert.Contains(t, err.Error(), ReasonInvalidEmail)
	assert.Contains(t, err.Error(), "row 3")
	assert.Contains(t, err.Error(), ReasonInvalidRole)
}

func TestImportCourseDataIdempotentReimport(t *testing.T) {
	db := setupTestDB(t)

	first := writeCSV(t, "name,email,password,role,teamName,projectName\n"+
		"s1,s1@test.com,p,student,A,\n")
	require.NoError(t, ImportCourseData(db, first, 1))

	// Same person again with a different role: the membership row is
	// updated in place, no duplicate user appears.
	second := writeCSV(t, "name,email,password,role,teamName,projectName\n"+
		"s1,s1@test.com,,faculty,,\n")
	require.NoError(t, ImportCourseData(db, second, 1))

	var userCount int64
	db.Model(&models.User{}).Where("email = ?", "s1@test.com").Count(&userCount)
	assert.EqualValues(t, 1, userCount)

	var memberships []models.CourseMembership
	require.NoError(t, db.Where("course_id = ?", 1).Find(&memberships).Error)
	require.Len(t, memberships, 1)
	assert.Equal(t, models.RoleFacultyID, memberships[0].RoleID)
}

func TestImportCourseDataLastRowWins(t *testing.T) {
	db := setupTestDB(t)

	path := writeCSV(t, "name,email,password,role,teamName,projectName\n"+
		"s1,s1@test.com,p,student,A,\n"+
		"s1 again,s1@test.com,,faculty,,\n")

	require.NoError(t, ImportCourseData(db, path, 1))

	var user models.User
	require.NoError(t, db.Where("email = ?", "s1@test.com").First(&user).Error)
	assert.Equal(t, "s1 again", user.DisplayName)
	assert.Equal(t, models.RoleFacultyID, user.RoleID)
}

func TestImportCourseDataMissingHeaderColumn(t *testing.T) {
	db := setupTestDB(t)

	path := writeCSV(t, "name,password,role,teamName,projectName\n"+
		"s1,p,student,A,\n")

	err := ImportCourseData(db, path, 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "email")
}

func TestImportCourseDataMissingFile(t *testing.T) {
	db := setupTestDB(t)

	err := ImportCourseData(db, filepath.Join(t.TempDir(), "nope.csv"), 1)
	require.Error(t, err)
}

// failingReader yields its buffered content, then the same error on every
// subsequent read.
type failingReader struct {
	data io.Reader
	err  error
}

func (f *failingReader) Read(p []byte) (int, error) {
	n, err := f.data.Read(p)
	if errors.Is(err, io.EOF) {
		return n, f.err
	}

	return n, err
}

func rosterIndex() map[string]int {
	return map[string]int{
		ColName: 0, ColEmail: 1, ColPassword: 2,
		ColRole: 3, ColTeamName: 4, ColProjectName: 5,
	}
}

func TestScanRosterStopsOnPersistentReadError(t *testing.T) {
	errDisk := errors.New("read: input/output error")

	r := csv.NewReader(&failingReader{
		data: strings.NewReader("s1,s1@test.com,p,student,A,\n"),
		err:  errDisk,
	})
	r.FieldsPerRecord = -1

	_, _, _, _, err := scanRoster(r, rosterIndex(), 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, errDisk)

	var validationErr *ValidationError
	assert.False(t, errors.As(err, &validationErr),
		"a read failure is not a file rejection")
}

func TestScanRosterAccumulatesParseErrors(t *testing.T) {
	r := csv.NewReader(strings.NewReader(
		"s1,s1@test.com,p,student,A,\n" +
			"s2,\"s2@test.com,p,student,A,\n"))
	r.FieldsPerRecord = -1

	userDetails, _, _, rowErrors, err := scanRoster(r, rosterIndex(), 1)
	require.NoError(t, err)

	// The malformed row is reported, the valid one is still aggregated.
	require.Len(t, rowErrors, 1)
	assert.Contains(t, userDetails, "s1@test.com")
}
