package csvimport

import (
	"fmt"

	"github.com/trofos-project/trofos/internal/db/models"
)

// TransformRow folds a validated roster row into the per-user and per-team
// aggregates, mutating the three maps in place. A row for an email already
// seen overwrites the earlier record. Only student rows populate the team
// aggregates; faculty rows never join a team.
//
// TransformRow assumes the row already passed ValidateRow; an unmappable
// role here means the validator and transformer disagree and is returned as
// a fatal ErrInvalidRole.
func TransformRow(
	row RawImportRow,
	courseID uint64,
	userDetails map[string]*UserDetail,
	groupDetails map[string]*GroupDetail,
	userGrouping map[string]string,
) error {
	roleID, ok := roleIDForName(row.Role)
	if !ok {
		return fmt.Errorf("%w: %q", ErrInvalidRole, row.Role)
	}

	detail := &UserDetail{
		Name:   row.Name,
		Email:  row.Email,
		RoleID: roleID,
	}
	if row.Password != "" {
		detail.Password = models.HashPassword(row.Password)
	}

	userDetails[row.Email] = detail

	if roleID == models.RoleStudentID && row.TeamName != "" {
		projectName := row.ProjectName
		if projectName == "" {
			projectName = row.TeamName
		}

		groupDetails[row.TeamName] = &GroupDetail{
			CourseID:    courseID,
			TeamName:    row.TeamName,
			ProjectName: projectName,
		}
		userGrouping[row.Email] = row.TeamName
	}

	return nil
}
