// Package sprint provides the JSON endpoints for sprint lifecycle management.
package sprint

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/trofos-project/trofos/internal/auth"
	"github.com/trofos-project/trofos/internal/config"
	sprintctl "github.com/trofos-project/trofos/internal/db/controller/sprint"
	"github.com/trofos-project/trofos/internal/web/handler"
)

// Path is the base path of the sprint endpoints.
const Path = handler.APIPrefix + "/projects/:projectID/sprints"

// Service is the sprint handler service.
type Service struct {
	handler.Service
	cfg         *config.Config
	db          *gorm.DB
	authService *auth.Service
}

// Handler is the sprint handler.
var Handler = Service{}

type sprintRequest struct {
	Name      string     `json:"name"`
	StartDate *time.Time `json:"startDate"`
	EndDate   *time.Time `json:"endDate"`
	Goals     string     `json:"goals"`
}

// Init initializes the sprint handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB, authService *auth.Service) error {
	if app == nil || cfg == nil || db == nil || authService == nil {
		return errors.New("app, cfg, db or authService is nil")
	}

	s.cfg = cfg
	s.db = db
	s.authService = authService

	app.Route(Path, func(router fiber.Router) {
		router.Get(handler.RootPath, auth.RequireProjectMember(authService), s.List)
		router.Post(handler.RootPath, auth.RequireProjectMember(authService), s.Create)
		router.Put("/:sprintID", auth.RequireProjectMember(authService), s.Update)
		router.Delete("/:sprintID", auth.RequireProjectMember(authService), s.Delete)
		router.Post("/:sprintID/start", auth.RequireProjectMember(authService), s.Start)
		router.Post("/:sprintID/complete", auth.RequireProjectMember(authService), s.Complete)
	})

	return nil
}

// List returns the sprints of a project.
func (s *Service) List(c *fiber.Ctx) error {
	projectID, ok := handler.ParamID(c, "projectID")
	if !ok {
		return handler.BadRequest(c, "invalid project id")
	}

	sprints, err := sprintctl.GetByProject(s.db, projectID)
	if err != nil {
		log.Error().Err(err).Uint64("project_id", projectID).Msg("failed to list sprints")

		return handler.InternalError(c)
	}

	return c.JSON(sprints)
}

// Create creates an upcoming sprint.
func (s *Service) Create(c *fiber.Ctx) error {
	projectID, ok := handler.ParamID(c, "projectID")
	if !ok {
		return handler.BadRequest(c, "invalid project id")
	}

	req := new(sprintRequest)
	if err := c.BodyParser(req); err != nil {
		return handler.BadRequest(c, "invalid request body")
	}

	sprint, err := sprintctl.Create(s.db, projectID, req.Name, req.StartDate, req.EndDate, req.Goals)
	if err != nil {
		if errors.Is(err, sprintctl.ErrSprintNameEmpty) {
			return handler.BadRequest(c, err.Error())
		}

		log.Error().Err(err).Uint64("project_id", projectID).Msg("failed to create sprint")

		return handler.InternalError(c)
	}

	return c.Status(fiber.StatusCreated).JSON(sprint)
}

// Update updates a sprint.
func (s *Service) Update(c *fiber.Ctx) error {
	sprintID, ok := handler.ParamID(c, "sprintID")
	if !ok {
		return handler.BadRequest(c, "invalid sprint id")
	}

	req := new(sprintRequest)
	if err := c.BodyParser(req); err != nil {
		return handler.BadRequest(c, "invalid request body")
	}

	sprint, err := sprintctl.Update(s.db, sprintID, req.Name, req.StartDate, req.EndDate, req.Goals)
	if err != nil {
		switch {
		case errors.Is(err, sprintctl.ErrSprintNotFound):
			return handler.NotFound(c, err.Error())
		case errors.Is(err, sprintctl.ErrSprintNameEmpty):
			return handler.BadRequest(c, err.Error())
		default:
			log.Error().Err(err).Uint64("sprint_id", sprintID).Msg("failed to update sprint")

			return handler.InternalError(c)
		}
	}

	return c.JSON(sprint)
}

// Delete deletes a sprint.
func (s *Service) Delete(c *fiber.Ctx) error {
	sprintID, ok := handler.ParamID(c, "sprintID")
	if !ok {
		return handler.BadRequest(c, "invalid sprint id")
	}

	if err := sprintctl.Delete(s.db, sprintID); err != nil {
		if errors.Is(err, sprintctl.ErrSprintNotFound) {
			return handler.NotFound(c, err.Error())
		}

		log.Error().Err(err).Uint64("sprint_id", sprintID).Msg("failed to delete sprint")

		return handler.InternalError(c)
	}

	return c.JSON(fiber.Map{"status": "ok"})
}

// Start transitions a sprint to current.
func (s *Service) Start(c *fiber.Ctx) error {
	sprintID, ok := handler.ParamID(c, "sprintID")
	if !ok {
		return handler.BadRequest(c, "invalid sprint id")
	}

	sprint, err := sprintctl.Start(s.db, sprintID)
	if err != nil {
		switch {
		case errors.Is(err, sprintctl.ErrSprintNotFound):
			return handler.NotFound(c, err.Error())
		case errors.Is(err, sprintctl.ErrActiveSprintExists):
			return handler.Conflict(c, err.Error())
		default:
			log.Error().Err(err).Uint64("sprint_id", sprintID).Msg("failed to start sprint")

			return handler.InternalError(c)
		}
	}

	return c.JSON(sprint)
}

// Complete transitions a current sprint to completed.
func (s *Service) Complete(c *fiber.Ctx) error {
	sprintID, ok := handler.ParamID(c, "sprintID")
	if !ok {
		return handler.BadRequest(c, "invalid sprint id")
	}

	sprint, err := sprintctl.Complete(s.db, sprintID)
	if err != nil {
		switch {
		case errors.Is(err, sprintctl.ErrSprintNotFound):
			return handler.NotFound(c, err.Error())
		case errors.Is(err, sprintctl.ErrSprintNotCurrent):
			return handler.Conflict(c, err.Error())
		default:
			log.Error().Err(err).Uint64("sprint_id", sprintID).Msg("failed to complete sprint")

			return handler.InternalError(c)
		}
	}

	return c.JSON(sprint)
}
