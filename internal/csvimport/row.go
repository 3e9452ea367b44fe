package csvimport

// Roster CSV header column names. Column order in the file does not matter;
// columns are resolved by name from the header row.
const (
	ColName        = "name"
	ColEmail       = "email"
	ColPassword    = "password"
	ColRole        = "role"
	ColTeamName    = "teamName"
	ColProjectName = "projectName"
)

// RawImportRow is one roster CSV line. It only exists while the file is
// being streamed; teamName, projectName and password may be empty.
type RawImportRow struct {
	Name        string
	Email       string
	Password    string
	Role        string
	TeamName    string
	ProjectName string
}

// UserDetail is the per-email aggregate built up during a roster import.
// A later row for the same email overwrites an earlier one, so within one
// import run the last occurrence wins.
type UserDetail struct {
	// ID is assigned after the user row has been persisted.
	ID uint64
	// Name is the display name from the row.
	Name string
	// Email keys the record.
	Email string
	// Password is the bcrypt hash of the row password, or empty when the
	// row carried none (SSO accounts).
	Password string
	// RoleID is the course role resolved from the row's role column.
	RoleID uint
}

// GroupDetail is the per-team aggregate built up during a roster import.
// Team names are unique within one run; project names need not be.
type GroupDetail struct {
	// ProjectID is assigned after the project row has been persisted.
	ProjectID uint64
	// CourseID is the course the team's project belongs to.
	CourseID uint64
	// TeamName keys the record and becomes the project key.
	TeamName string
	// ProjectName is the project display name; defaults to TeamName when
	// the row carried none.
	ProjectName string
}
