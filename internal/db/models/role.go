package models

import "time"

// Seeded role identifiers. The seed step creates these three roles with
// fixed ids so that role resolution does not require a lookup.
const (
	// RoleAdminID is the administrator role id.
	RoleAdminID uint = 1
	// RoleFacultyID is the faculty role id.
	RoleFacultyID uint = 2
	// RoleStudentID is the student role id.
	RoleStudentID uint = 3
)

// Seeded role names.
const (
	RoleAdminName   = "admin"
	RoleFacultyName = "faculty"
	RoleStudentName = "student"
)

// Role represents a role in the system (admin, faculty or student).
// A user carries a base role, and each course membership carries a
// course-scoped role that may differ from the base one.
type Role struct {
	// ID is the unique identifier for the role.
	ID uint `gorm:"primaryKey" json:"id"`
	// Name is the unique name of the role (e.g., "student").
	Name string `gorm:"unique;size:100;not null" json:"name"`
	// Description provides a human-readable description of the role's purpose.
	Description string `gorm:"size:255" json:"description"`
	// CreatedAt is the timestamp when the role was created (managed by GORM).
	CreatedAt time.Time `json:"createdAt"`
	// UpdatedAt is the timestamp when the role was last updated (managed by GORM).
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName specifies the database table name for the Role model.
// This overrides GORM's default pluralized table naming.
func (Role) TableName() string {
	return "roles"
}
