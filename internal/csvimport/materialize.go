package csvimport

import (
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/trofos-project/trofos/internal/db/models"
)

// Materialize commits the aggregates of one roster import in a single
// transaction: first a project per team (seeded with the default backlog
// statuses), then a user upsert, course-membership upsert and, for students,
// a project-membership link per user. If any step fails the whole
// transaction rolls back and nothing is persisted.
//
// Each phase attempts every element before surfacing the first error, so one
// bad record does not hide problems in its siblings; the two phases stay
// strictly ordered because membership linking needs the project ids assigned
// in the first phase. All statements run on the calling goroutine.
func Materialize(
	db *gorm.DB,
	courseID uint64,
	userDetails map[string]*UserDetail,
	groupDetails map[string]*GroupDetail,
	userGrouping map[string]string,
) error {
	if db == nil {
		return ErrDBNil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := createProjects(tx, courseID, groupDetails); err != nil {
			return err
		}

		return upsertUsers(tx, courseID, userDetails, groupDetails, userGrouping)
	})
}

// createProjects creates one project per team and records the assigned
// project id back into the in-memory GroupDetail.
func createProjects(tx *gorm.DB, courseID uint64, groupDetails map[string]*GroupDetail) error {
	var firstErr error

	for _, group := range groupDetails {
		project := models.Project{
			Name:     group.ProjectName,
			Pkey:     group.TeamName,
			CourseID: courseID,
		}

		if err := tx.Create(&project).Error; err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("create project %q: %w", group.TeamName, err)
			}

			continue
		}

		statuses := models.DefaultBacklogStatuses(project.ID)
		if err := tx.Create(&statuses).Error; err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("seed backlog statuses for %q: %w", group.TeamName, err)
			}

			continue
		}

		group.ProjectID = project.ID
	}

	return firstErr
}

// upsertUsers upserts each user by email, upserts their course membership
// (role updated on conflict) and links students to their team's project.
func upsertUsers(
	tx *gorm.DB,
	courseID uint64,
	userDetails map[string]*UserDetail,
	groupDetails map[string]*GroupDetail,
	userGrouping map[string]string,
) error {
	var firstErr error

	record := func(err error) {
		if firstErr == nil {
			firstErr = err
		}
	}

	for email, detail := range userDetails {
		user := models.User{
			Email:       email,
			DisplayName: detail.Name,
			Password:    detail.Password,
			RoleID:      detail.RoleID,
		}

		// Existing accounts are left untouched; only existence matters, so
		// repeated imports of the same person are safe.
		err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "email"}},
			DoNothing: true,
		}).Create(&user).Error
		if err != nil {
			record(fmt.Errorf("upsert user %q: %w", email, err))
			continue
		}

		if user.ID == 0 {
			// Conflict path: the insert was skipped, fetch the existing id.
			var existing models.User
			if err := tx.Where("email = ?", email).First(&existing).Error; err != nil {
				record(fmt.Errorf("resolve user %q: %w", email, err))
				continue
			}

			user.ID = existing.ID
		}

		detail.ID = user.ID

		membership := models.CourseMembership{
			UserID:   user.ID,
			CourseID: courseID,
			RoleID:   detail.RoleID,
		}

		// Re-import with a different role updates the membership role.
		err = tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "course_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"role_id"}),
		}).Create(&membership).Error
		if err != nil {
			record(fmt.Errorf("upsert course membership for %q: %w", email, err))
			continue
		}

		if detail.RoleID != models.RoleStudentID {
			continue
		}

		if err := linkStudent(tx, email, user.ID, groupDetails, userGrouping); err != nil {
			record(err)
		}
	}

	return firstErr
}

// linkStudent resolves a student's team to its freshly created project and
// creates the project-membership link. Every student must have resolved to a
// team by this point; a missing entry is an invariant violation.
func linkStudent(
	tx *gorm.DB,
	email string,
	userID uint64,
	groupDetails map[string]*GroupDetail,
	userGrouping map[string]string,
) error {
	teamName, ok := userGrouping[email]
	if !ok {
		return fmt.Errorf("%w: student %q has no team", ErrUserGroupUndefined, email)
	}

	group, ok := groupDetails[teamName]
	if !ok || group.ProjectID == 0 {
		return fmt.Errorf("%w: team %q has no project", ErrUserGroupUndefined, teamName)
	}

	link := models.ProjectMembership{
		UserID:    userID,
		ProjectID: group.ProjectID,
	}

	err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "project_id"}},
		DoNothing: true,
	}).Create(&link).Error
	if err != nil {
		return fmt.Errorf("link student %q to %q: %w", email, teamName, err)
	}

	return nil
}
