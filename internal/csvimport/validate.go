package csvimport

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/trofos-project/trofos/internal/db/models"
)

// Validation reason codes. When a row violates several checks the codes are
// space-joined in the order below, so one row reports all its problems at
// once.
const (
	ReasonInvalidEmail    = "INVALID_EMAIL"
	ReasonInvalidPassword = "INVALID_PASSWORD"
	ReasonInvalidRole     = "INVALID_ROLE"
	ReasonInvalidTeamName = "INVALID_TEAM_NAME"
)

var rowValidate = validator.New()

// roleIDForName maps a roster role column value to a role id,
// case-insensitively. Administrators cannot be bulk-imported, so "admin"
// does not resolve.
func roleIDForName(role string) (uint, bool) {
	switch strings.ToLower(strings.TrimSpace(role)) {
	case models.RoleStudentName:
		return models.RoleStudentID, true
	case models.RoleFacultyName:
		return models.RoleFacultyID, true
	default:
		return 0, false
	}
}

// ValidateRow checks a single roster row and reports every violated check in
// one combined reason string. All checks run even when an earlier one has
// already failed. A valid row returns (true, "").
func ValidateRow(row RawImportRow) (bool, string) {
	var reasons []string

	roleID, roleOK := roleIDForName(row.Role)
	isStudent := roleOK && roleID == models.RoleStudentID

	if err := rowValidate.Var(row.Email, "required,email"); err != nil {
		reasons = append(reasons, ReasonInvalidEmail)
	}

	// SSO bypasses local passwords, so only students need one.
	if isStudent && row.Password == "" {
		reasons = append(reasons, ReasonInvalidPassword)
	}

	if !roleOK {
		reasons = append(reasons, ReasonInvalidRole)
	}

	if isStudent && row.TeamName == "" {
		reasons = append(reasons, ReasonInvalidTeamName)
	}

	if len(reasons) > 0 {
		return false, strings.Join(reasons, " ")
	}

	return true, ""
}
