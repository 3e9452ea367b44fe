// Package report aggregates course and project statistics for dashboards.
package report

import (
	"errors"

	"gorm.io/gorm"

	"github.com/trofos-project/trofos/internal/db/models"
)

// ErrDBNil is returned when the database connection is nil.
var ErrDBNil = errors.New("database connection is nil")

// CourseSummary aggregates the headline numbers of a course.
type CourseSummary struct {
	ProjectCount    int64            `json:"projectCount"`
	MemberCount     int64            `json:"memberCount"`
	SprintCount     int64            `json:"sprintCount"`
	BacklogByStatus map[string]int64 `json:"backlogByStatus"`
}

// ProjectSummary aggregates the headline numbers of a project.
type ProjectSummary struct {
	MemberCount     int64            `json:"memberCount"`
	SprintCount     int64            `json:"sprintCount"`
	BacklogByStatus map[string]int64 `json:"backlogByStatus"`
	PointsDone      int64            `json:"pointsDone"`
	PointsTotal     int64            `json:"pointsTotal"`
}

type statusCount struct {
	Status string
	Count  int64
}

// Summary computes the course-level summary.
func Summary(db *gorm.DB, courseID uint64) (*CourseSummary, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	summary := &CourseSummary{BacklogByStatus: map[string]int64{}}

	err := db.Model(&models.Project{}).Where("course_id = ?", courseID).
		Count(&summary.ProjectCount).Error
	if err != nil {
		return nil, err
	}

	err = db.Model(&models.CourseMembership{}).Where("course_id = ?", courseID).
		Count(&summary.MemberCount).Error
	if err != nil {
		return nil, err
	}

	err = db.Model(&models.Sprint{}).
		Joins("JOIN projects ON projects.id = sprints.project_id").
		Where("projects.course_id = ?", courseID).
		Count(&summary.SprintCount).Error
	if err != nil {
		return nil, err
	}

	var rows []statusCount
	err = db.Model(&models.Backlog{}).
		Select("backlogs.status AS status, COUNT(*) AS count").
		Joins("JOIN projects ON projects.id = backlogs.project_id").
		Where("projects.course_id = ?", courseID).
		Group("backlogs.status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		summary.BacklogByStatus[row.Status] = row.Count
	}

	return summary, nil
}

// ProjectReport computes the project-level summary including story point
// burn-down totals.
func ProjectReport(db *gorm.DB, projectID uint64) (*ProjectSummary, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	summary := &ProjectSummary{BacklogByStatus: map[string]int64{}}

	err := db.Model(&models.ProjectMembership{}).Where("project_id = ?", projectID).
		Count(&summary.MemberCount).Error
	if err != nil {
		return nil, err
	}

	err = db.Model(&models.Sprint{}).Where("project_id = ?", projectID).
		Count(&summary.SprintCount).Error
	if err != nil {
		return nil, err
	}

	var rows []statusCount
	err = db.Model(&models.Backlog{}).
		Select("status, COUNT(*) AS count").
		Where("project_id = ?", projectID).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		summary.BacklogByStatus[row.Status] = row.Count
	}

	err = db.Model(&models.Backlog{}).
		Where("project_id = ? AND points IS NOT NULL", projectID).
		Select("COALESCE(SUM(points), 0)").
		Scan(&summary.PointsTotal).Error
	if err != nil {
		return nil, err
	}

	err = db.Model(&models.Backlog{}).
		Where("project_id = ? AND status = ? AND points IS NOT NULL", projectID, models.BacklogStatusDone).
		Select("COALESCE(SUM(points), 0)").
		Scan(&summary.PointsDone).Error
	if err != nil {
		return nil, err
	}

	return summary, nil
}
