// Package backlog provides the JSON endpoints for backlog items and board
// status columns.
package backlog

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/trofos-project/trofos/internal/auth"
	"github.com/trofos-project/trofos/internal/config"
	backlogctl "github.com/trofos-project/trofos/internal/db/controller/backlog"
	"github.com/trofos-project/trofos/internal/db/models"
	"github.com/trofos-project/trofos/internal/web/handler"
)

// Path is the base path of the backlog endpoints.
const Path = handler.APIPrefix + "/projects/:projectID/backlogs"

// Service is the backlog handler service.
type Service struct {
	handler.Service
	cfg         *config.Config
	db          *gorm.DB
	authService *auth.Service
}

// Handler is the backlog handler.
var Handler = Service{}

type createRequest struct {
	Summary  string                 `json:"summary"`
	Type     models.BacklogType     `json:"type"`
	Priority models.BacklogPriority `json:"priority"`
}

type updateRequest struct {
	Summary    string                 `json:"summary"`
	Type       models.BacklogType     `json:"type"`
	Priority   models.BacklogPriority `json:"priority"`
	Status     string                 `json:"status"`
	SprintID   *uint64                `json:"sprintId"`
	AssigneeID *uint64                `json:"assigneeId"`
	Points     *int                   `json:"points"`
}

// Init initializes the backlog handler.
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
		router.Get("/statuses", auth.RequireProjectMember(authService), s.Statuses)
		router.Get("/:backlogID", auth.RequireProjectMember(authService), s.Get)
		router.Put("/:backlogID", auth.RequireProjectMember(authService), s.Update)
		router.Delete("/:backlogID", auth.RequireProjectMember(authService), s.Delete)
	})

	return nil
}

// List returns the backlog items of a project.
func (s *Service) List(c *fiber.Ctx) error {
	projectID, ok := handler.ParamID(c, "projectID")
	if !ok {
		return handler.BadRequest(c, "invalid project id")
	}

	items, err := backlogctl.GetByProject(s.db, projectID)
	if err != nil {
		log.Error().Err(err).Uint64("project_id", projectID).Msg("failed to list backlog items")

		return handler.InternalError(c)
	}

	return c.JSON(items)
}

// Statuses returns the board columns of a project.
func (s *Service) Statuses(c *fiber.Ctx) error {
	projectID, ok := handler.ParamID(c, "projectID")
	if !ok {
		return handler.BadRequest(c, "invalid project id")
	}

	statuses, err := backlogctl.Statuses(s.db, projectID)
	if err != nil {
		log.Error().Err(err).Uint64("project_id", projectID).Msg("failed to list board statuses")

		return handler.InternalError(c)
	}

	return c.JSON(statuses)
}

// Create creates a backlog item.
func (s *Service) Create(c *fiber.Ctx) error {
	projectID, ok := handler.ParamID(c, "projectID")
	if !ok {
		return handler.BadRequest(c, "invalid project id")
	}

	req := new(createRequest)
	if err := c.BodyParser(req); err != nil {
		return handler.BadRequest(c, "invalid request body")
	}

	item, err := backlogctl.Create(s.db, projectID, req.Summary, req.Type, req.Priority)
	if err != nil {
		if errors.Is(err, backlogctl.ErrSummaryEmpty) {
			return handler.BadRequest(c, err.Error())
		}

		log.Error().Err(err).Uint64("project_id", projectID).Msg("failed to create backlog item")

		return handler.InternalError(c)
	}

	return c.Status(fiber.StatusCreated).JSON(item)
}

// Get returns one backlog item.
func (s *Service) Get(c *fiber.Ctx) error {
	backlogID, ok := handler.ParamID(c, "backlogID")
	if !ok {
		return handler.BadRequest(c, "invalid backlog id")
	}

	item, err := backlogctl.Get(s.db, backlogID)
	if err != nil {
		if errors.Is(err, backlogctl.ErrBacklogNotFound) {
			return handler.NotFound(c, err.Error())
		}

		log.Error().Err(err).Uint64("backlog_id", backlogID).Msg("failed to load backlog item")

		return handler.InternalError(c)
	}

	return c.JSON(item)
}

// Update updates a backlog item.
func (s *Service) Update(c *fiber.Ctx) error {
	backlogID, ok := handler.ParamID(c, "backlogID")
	if !ok {
		return handler.BadRequest(c, "invalid backlog id")
	}

	req := new(updateRequest)
	if err := c.BodyParser(req); err != nil {
		return handler.BadRequest(c, "invalid request body")
	}

	item, err := backlogctl.Update(s.db, backlogID, backlogctl.UpdateFields{
		Summary:    req.Summary,
		Type:       req.Type,
		Priority:   req.Priority,
		Status:     req.Status,
		SprintID:   req.SprintID,
		AssigneeID: req.AssigneeID,
		Points:     req.Points,
	})
	if err != nil {
		switch {
		case errors.Is(err, backlogctl.ErrBacklogNotFound):
			return handler.NotFound(c, err.Error())
		case errors.Is(err, backlogctl.ErrSummaryEmpty), errors.Is(err, backlogctl.ErrUnknownStatus):
			return handler.BadRequest(c, err.Error())
		default:
			log.Error().Err(err).Uint64("backlog_id", backlogID).Msg("failed to update backlog item")

			return handler.InternalError(c)
		}
	}

	return c.JSON(item)
}

// Delete deletes a backlog item.
func (s *Service) Delete(c *fiber.Ctx) error {
	backlogID, ok := handler.ParamID(c, "backlogID")
	if !ok {
		return handler.BadRequest(c, "invalid backlog id")
	}

	if err := backlogctl.Delete(s.db, backlogID); err != nil {
		if errors.Is(err, backlogctl.ErrBacklogNotFound) {
			return handler.NotFound(c, err.Error())
		}

		log.Error().Err(err).Uint64("backlog_id", backlogID).Msg("failed to delete backlog item")

		return handler.InternalError(c)
	}

	return c.JSON(fiber.Map{"status": "ok"})
}
