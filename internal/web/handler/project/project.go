// Package project provides the JSON endpoints for projects, their members
// and peer assignment links.
package project

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/trofos-project/trofos/internal/auth"
	"github.com/trofos-project/trofos/internal/config"
	projectctl "github.com/trofos-project/trofos/internal/db/controller/project"
	"github.com/trofos-project/trofos/internal/db/models"
	"github.com/trofos-project/trofos/internal/web/handler"
)

// Path is the base path of the project endpoints.
const Path = handler.APIPrefix + "/projects"

// Service is the project handler service.
type Service struct {
	handler.Service
	cfg         *config.Config
	db          *gorm.DB
	authService *auth.Service
}

// Handler is the project handler.
var Handler = Service{}

type createRequest struct {
	CourseID uint64 `json:"courseId"`
	Name     string `json:"name"`
	Pkey     string `json:"pkey"`
}

type updateRequest struct {
	Name string `json:"name"`
}

type memberRequest struct {
	UserID uint64 `json:"userId"`
}

type assignRequest struct {
	TargetProjectID uint64 `json:"targetProjectId"`
}

// Init initializes the project handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB, authService *auth.Service) error {
	if app == nil || cfg == nil || db == nil || authService == nil {
		return errors.New("app, cfg, db or authService is nil")
	}

	s.cfg = cfg
	s.db = db
	s.authService = authService

	app.Route(Path, func(router fiber.Router) {
		router.Get(handler.RootPath, s.List)
		router.Post(handler.RootPath, s.Create)
		router.Get("/:projectID", auth.RequireProjectMember(authService), s.Get)
		router.Put("/:projectID", auth.RequireProjectMember(authService), s.Update)
		router.Delete("/:projectID", auth.RequireProjectMember(authService), s.Delete)

		router.Get("/:projectID/members", auth.RequireProjectMember(authService), s.Members)
		router.Post("/:projectID/members", auth.RequireProjectMember(authService), s.AddMember)
		router.Delete("/:projectID/members/:userID", auth.RequireProjectMember(authService), s.RemoveMember)

		router.Get("/:projectID/assignments", auth.RequireProjectMember(authService), s.Assignments)
		router.Post("/:projectID/assignments", auth.RequireProjectMember(authService), s.Assign)
		router.Delete("/:projectID/assignments/:targetID", auth.RequireProjectMember(authService), s.Unassign)
	})

	return nil
}

// List returns the caller's projects.
func (s *Service) List(c *fiber.Ctx) error {
	userID := auth.UserID(c)

	projects, err := projectctl.GetByUser(s.db, userID)
	if err != nil {
		log.Error().Err(err).Uint64("user_id", userID).Msg("failed to list projects")

		return handler.InternalError(c)
	}

	return c.JSON(projects)
}

// Create creates a project. The caller must be faculty of the course.
func (s *Service) Create(c *fiber.Ctx) error {
	req := new(createRequest)
	if err := c.BodyParser(req); err != nil || req.CourseID == 0 {
		return handler.BadRequest(c, "invalid request body")
	}

	allowed, err := s.authService.HasCourseRole(auth.UserID(c), req.CourseID, models.RoleFacultyID)
	if err != nil {
		log.Error().Err(err).Msg("failed to check course role")

		return handler.InternalError(c)
	}

	if !allowed {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "forbidden"})
	}

	project, err := projectctl.Create(s.db, req.CourseID, req.Name, req.Pkey)
	if err != nil {
		if errors.Is(err, projectctl.ErrProjectNameEmpty) {
			return handler.BadRequest(c, err.Error())
		}

		log.Error().Err(err).Uint64("course_id", req.CourseID).Msg("failed to create project")

		return handler.InternalError(c)
	}

	return c.Status(fiber.StatusCreated).JSON(project)
}

// Get returns one project.
func (s *Service) Get(c *fiber.Ctx) error {
	projectID, ok := handler.ParamID(c, "projectID")
	if !ok {
		return handler.BadRequest(c, "invalid project id")
	}

	project, err := projectctl.Get(s.db, projectID)
	if err != nil {
		if errors.Is(err, projectctl.ErrProjectNotFound) {
			return handler.NotFound(c, err.Error())
		}

		log.Error().Err(err).Uint64("project_id", projectID).Msg("failed to load project")

		return handler.InternalError(c)
	}

	return c.JSON(project)
}

// Update renames a project.
func (s *Service) Update(c *fiber.Ctx) error {
	projectID, ok := handler.ParamID(c, "projectID")
	if !ok {
		return handler.BadRequest(c, "invalid project id")
	}

	req := new(updateRequest)
	if err := c.BodyParser(req); err != nil {
		return handler.BadRequest(c, "invalid request body")
	}

	project, err := projectctl.Update(s.db, projectID, req.Name)
	if err != nil {
		switch {
		case errors.Is(err, projectctl.ErrProjectNotFound):
			return handler.NotFound(c, err.Error())
		case errors.Is(err, projectctl.ErrProjectNameEmpty):
			return handler.BadRequest(c, err.Error())
		default:
			log.Error().Err(err).Uint64("project_id", projectID).Msg("failed to update project")

			return handler.InternalError(c)
		}
	}

	return c.JSON(project)
}

// Delete deletes a project.
func (s *Service) Delete(c *fiber.Ctx) error {
	projectID, ok := handler.ParamID(c, "projectID")
	if !ok {
		return handler.BadRequest(c, "invalid project id")
	}

	if err := projectctl.Delete(s.db, projectID); err != nil {
		if errors.Is(err, projectctl.ErrProjectNotFound) {
			return handler.NotFound(c, err.Error())
		}

		log.Error().Err(err).Uint64("project_id", projectID).Msg("failed to delete project")

		return handler.InternalError(c)
	}

	return c.JSON(fiber.Map{"status": "ok"})
}

// Members returns the project team.
func (s *Service) Members(c *fiber.Ctx) error {
	projectID, ok := handler.ParamID(c, "projectID")
	if !ok {
		return handler.BadRequest(c, "invalid project id")
	}

	members, err := projectctl.Members(s.db, projectID)
	if err != nil {
		log.Error().Err(err).Uint64("project_id", projectID).Msg("failed to load project members")

		return handler.InternalError(c)
	}

	return c.JSON(members)
}

// AddMember links a user to the project.
func (s *Service) AddMember(c *fiber.Ctx) error {
	projectID, ok := handler.ParamID(c, "projectID")
	if !ok {
		return handler.BadRequest(c, "invalid project id")
	}

	req := new(memberRequest)
	if err := c.BodyParser(req); err != nil || req.UserID == 0 {
		return handler.BadRequest(c, "invalid request body")
	}

	if err := projectctl.AddMember(s.db, projectID, req.UserID); err != nil {
		log.Error().Err(err).Uint64("project_id", projectID).Uint64("user_id", req.UserID).
			Msg("failed to add project member")

		return handler.InternalError(c)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"status": "ok"})
}

// RemoveMember removes a user from the project.
func (s *Service) RemoveMember(c *fiber.Ctx) error {
	projectID, ok := handler.ParamID(c, "projectID")
	if !ok {
		return handler.BadRequest(c, "invalid project id")
	}

	userID, ok := handler.ParamID(c, "userID")
	if !ok {
		return handler.BadRequest(c, "invalid user id")
	}

	if err := projectctl.RemoveMember(s.db, projectID, userID); err != nil {
		if errors.Is(err, projectctl.ErrMembershipNotFound) {
			return handler.NotFound(c, err.Error())
		}

		log.Error().Err(err).Uint64("project_id", projectID).Uint64("user_id", userID).
			Msg("failed to remove project member")

		return handler.InternalError(c)
	}

	return c.JSON(fiber.Map{"status": "ok"})
}

// Assignments lists the projects this project evaluates.
func (s *Service) Assignments(c *fiber.Ctx) error {
	projectID, ok := handler.ParamID(c, "projectID")
	if !ok {
		return handler.BadRequest(c, "invalid project id")
	}

	assignments, err := projectctl.Assignments(s.db, projectID)
	if err != nil {
		log.Error().Err(err).Uint64("project_id", projectID).Msg("failed to load assignments")

		return handler.InternalError(c)
	}

	return c.JSON(assignments)
}

// Assign links this project as evaluator of a target project.
func (s *Service) Assign(c *fiber.Ctx) error {
	projectID, ok := handler.ParamID(c, "projectID")
	if !ok {
		return handler.BadRequest(c, "invalid project id")
	}

	req := new(assignRequest)
	if err := c.BodyParser(req); err != nil || req.TargetProjectID == 0 {
		return handler.BadRequest(c, "invalid request body")
	}

	if err := projectctl.Assign(s.db, projectID, req.TargetProjectID); err != nil {
		if errors.Is(err, projectctl.ErrSelfAssignment) {
			return handler.BadRequest(c, err.Error())
		}

		log.Error().Err(err).Uint64("project_id", projectID).Uint64("target_id", req.TargetProjectID).
			Msg("failed to create assignment")

		return handler.InternalError(c)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"status": "ok"})
}

// Unassign removes an assignment link.
func (s *Service) Unassign(c *fiber.Ctx) error {
	projectID, ok := handler.ParamID(c, "projectID")
	if !ok {
		return handler.BadRequest(c, "invalid project id")
	}

	targetID, ok := handler.ParamID(c, "targetID")
	if !ok {
		return handler.BadRequest(c, "invalid target project id")
	}

	if err := projectctl.Unassign(s.db, projectID, targetID); err != nil {
		if errors.Is(err, projectctl.ErrAssignmentNotFound) {
			return handler.NotFound(c, err.Error())
		}

		log.Error().Err(err).Uint64("project_id", projectID).Uint64("target_id", targetID).
			Msg("failed to remove assignment")

		return handler.InternalError(c)
	}

	return c.JSON(fiber.Map{"status": "ok"})
}
