// Package report provides the JSON endpoints for course and project
// summaries.
package report

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/trofos-project/trofos/internal/auth"
	"github.com/trofos-project/trofos/internal/config"
	reportctl "github.com/trofos-project/trofos/internal/db/controller/report"
	"github.com/trofos-project/trofos/internal/db/models"
	"github.com/trofos-project/trofos/internal/web/handler"
)

// CoursePath is the course summary endpoint.
const CoursePath = handler.APIPrefix + "/courses/:courseID/report"

// ProjectPath is the project summary endpoint.
const ProjectPath = handler.APIPrefix + "/projects/:projectID/report"

// Service is the report handler service.
type Service struct {
	handler.Service
	cfg         *config.Config
	db          *gorm.DB
	authService *auth.Service
}

// Handler is the report handler.
var Handler = Service{}

// Init initializes the report handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB, authService *auth.Service) error {
	if app == nil || cfg == nil || db == nil || authService == nil {
		return errors.New("app, cfg, db or authService is nil")
	}

	s.cfg = cfg
	s.db = db
	s.authService = authService

	app.Get(CoursePath, auth.RequireCourseRole(authService, models.RoleFacultyID), s.CourseSummary)
	app.Get(ProjectPath, auth.RequireProjectMember(authService), s.ProjectSummary)

	return nil
}

// CourseSummary returns the aggregated numbers of a course.
func (s *Service) CourseSummary(c *fiber.Ctx) error {
	courseID, ok := handler.ParamID(c, "courseID")
	if !ok {
		return handler.BadRequest(c, "invalid course id")
	}

	summary, err := reportctl.Summary(s.db, courseID)
	if err != nil {
		log.Error().Err(err).Uint64("course_id", courseID).Msg("failed to build course summary")

		return handler.InternalError(c)
	}

	return c.JSON(summary)
}

// ProjectSummary returns the aggregated numbers of a project.
func (s *Service) ProjectSummary(c *fiber.Ctx) error {
	projectID, ok := handler.ParamID(c, "projectID")
	if !ok {
		return handler.BadRequest(c, "invalid project id")
	}

	summary, err := reportctl.ProjectReport(s.db, projectID)
	if err != nil {
		log.Error().Err(err).Uint64("project_id", projectID).Msg("failed to build project summary")

		return handler.InternalError(c)
	}

	return c.JSON(summary)
}
