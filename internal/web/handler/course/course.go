// Package course provides the JSON endpoints for courses, their rosters and
// the CSV batch imports.
package course

import (
	"errors"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/trofos-project/trofos/internal/auth"
	"github.com/trofos-project/trofos/internal/config"
	"github.com/trofos-project/trofos/internal/csvimport"
	coursectl "github.com/trofos-project/trofos/internal/db/controller/course"
	"github.com/trofos-project/trofos/internal/db/models"
	"github.com/trofos-project/trofos/internal/web/handler"
)

// Path is the base path of the course endpoints.
const Path = handler.APIPrefix + "/courses"

// Service is the course handler service.
type Service struct {
	handler.Service
	cfg         *config.Config
	db          *gorm.DB
	authService *auth.Service
}

// Handler is the course handler.
var Handler = Service{}

type createRequest struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	Year        int    `json:"year"`
	Semester    int    `json:"semester"`
	Description string `json:"description"`
}

type updateRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type memberRequest struct {
	UserID uint64 `json:"userId"`
	RoleID uint   `json:"roleId"`
}

// Init initializes the course handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB, authService *auth.Service) error {
	if app == nil || cfg == nil || db == nil || authService == nil {
		return errors.New("app, cfg, db or authService is nil")
	}

	s.cfg = cfg
	s.db = db
	s.authService = authService

	app.Route(Path, func(router fiber.Router) {
		router.Get(handler.RootPath, s.List)
		router.Post(handler.RootPath, auth.RequireAdmin(authService), s.Create)
		router.Get("/:courseID", auth.RequireCourseRole(authService, models.RoleStudentID), s.Get)
		router.Put("/:courseID", auth.RequireCourseRole(authService, models.RoleFacultyID), s.Update)
		router.Delete("/:courseID", auth.RequireAdmin(authService), s.Delete)

		router.Get("/:courseID/members", auth.RequireCourseRole(authService, models.RoleStudentID), s.Members)
		router.Post("/:courseID/members", auth.RequireCourseRole(authService, models.RoleFacultyID), s.AddMember)
		router.Delete("/:courseID/members/:userID", auth.RequireCourseRole(authService, models.RoleFacultyID), s.RemoveMember)

		router.Post("/:courseID/import/roster",
			auth.RequireCourseRole(authService, models.RoleFacultyID), s.ImportRoster)
		router.Post("/:courseID/import/assignments",
			auth.RequireCourseRole(authService, models.RoleFacultyID), s.ImportAssignments)
	})

	return nil
}

// List returns all courses for admins, or the caller's courses otherwise.
func (s *Service) List(c *fiber.Ctx) error {
	userID := auth.UserID(c)

	isAdmin, err := s.authService.IsAdmin(userID)
	if err != nil {
		log.Error().Err(err).Msg("failed to check admin role")

		return handler.InternalError(c)
	}

	var courses []models.Course
	if isAdmin {
		courses, err = coursectl.GetAll(s.db)
	} else {
		courses, err = coursectl.GetByUser(s.db, userID)
	}

	if err != nil {
		log.Error().Err(err).Msg("failed to list courses")

		return handler.InternalError(c)
	}

	return c.JSON(courses)
}

// Create creates a course.
func (s *Service) Create(c *fiber.Ctx) error {
	req := new(createRequest)
	if err := c.BodyParser(req); err != nil {
		return handler.BadRequest(c, "invalid request body")
	}

	course, err := coursectl.Create(s.db, req.Code, req.Name, req.Year, req.Semester, req.Description)
	if err != nil {
		switch {
		case errors.Is(err, coursectl.ErrCourseCodeEmpty):
			return handler.BadRequest(c, err.Error())
		case errors.Is(err, coursectl.ErrCourseAlreadyExists):
			return handler.Conflict(c, err.Error())
		default:
			log.Error().Err(err).Msg("failed to create course")

			return handler.InternalError(c)
		}
	}

	return c.Status(fiber.StatusCreated).JSON(course)
}

// Get returns one course.
func (s *Service) Get(c *fiber.Ctx) error {
	courseID, err := courseParam(c)
	if err != nil {
		return handler.BadRequest(c, "invalid course id")
	}

	course, err := coursectl.Get(s.db, courseID)
	if err != nil {
		if errors.Is(err, coursectl.ErrCourseNotFound) {
			return handler.NotFound(c, err.Error())
		}

		log.Error().Err(err).Uint64("course_id", courseID).Msg("failed to load course")

		return handler.InternalError(c)
	}

	return c.JSON(course)
}

// Update updates a course.
func (s *Service) Update(c *fiber.Ctx) error {
	courseID, err := courseParam(c)
	if err != nil {
		return handler.BadRequest(c, "invalid course id")
	}

	req := new(updateRequest)
	if err := c.BodyParser(req); err != nil {
		return handler.BadRequest(c, "invalid request body")
	}

	course, err := coursectl.Update(s.db, courseID, req.Name, req.Description)
	if err != nil {
		if errors.Is(err, coursectl.ErrCourseNotFound) {
			return handler.NotFound(c, err.Error())
		}

		log.Error().Err(err).Uint64("course_id", courseID).Msg("failed to update course")

		return handler.InternalError(c)
	}

	return c.JSON(course)
}

// Delete deletes a course.
func (s *Service) Delete(c *fiber.Ctx) error {
	courseID, err := courseParam(c)
	if err != nil {
		return handler.BadRequest(c, "invalid course id")
	}

	if err := coursectl.Delete(s.db, courseID); err != nil {
		if errors.Is(err, coursectl.ErrCourseNotFound) {
			return handler.NotFound(c, err.Error())
		}

		log.Error().Err(err).Uint64("course_id", courseID).Msg("failed to delete course")

		return handler.InternalError(c)
	}

	return c.JSON(fiber.Map{"status": "ok"})
}

// Members returns the course roster.
func (s *Service) Members(c *fiber.Ctx) error {
	courseID, err := courseParam(c)
	if err != nil {
		return handler.BadRequest(c, "invalid course id")
	}

	members, err := coursectl.Members(s.db, courseID)
	if err != nil {
		log.Error().Err(err).Uint64("course_id", courseID).Msg("failed to load course members")

		return handler.InternalError(c)
	}

	return c.JSON(members)
}

// AddMember enrolls a user into the course.
func (s *Service) AddMember(c *fiber.Ctx) error {
	courseID, err := courseParam(c)
	if err != nil {
		return handler.BadRequest(c, "invalid course id")
	}

	req := new(memberRequest)
	if err := c.BodyParser(req); err != nil || req.UserID == 0 || req.RoleID == 0 {
		return handler.BadRequest(c, "invalid request body")
	}

	if err := coursectl.AddMember(s.db, courseID, req.UserID, req.RoleID); err != nil {
		log.Error().Err(err).Uint64("course_id", courseID).Uint64("user_id", req.UserID).
			Msg("failed to add course member")

		return handler.InternalError(c)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"status": "ok"})
}

// RemoveMember removes a user from the course.
func (s *Service) RemoveMember(c *fiber.Ctx) error {
	courseID, err := courseParam(c)
	if err != nil {
		return handler.BadRequest(c, "invalid course id")
	}

	userID, err := c.ParamsInt("userID")
	if err != nil || userID <= 0 {
		return handler.BadRequest(c, "invalid user id")
	}

	if err := coursectl.RemoveMember(s.db, courseID, uint64(userID)); err != nil {
		if errors.Is(err, coursectl.ErrMembershipNotFound) {
			return handler.NotFound(c, err.Error())
		}

		log.Error().Err(err).Uint64("course_id", courseID).Int("user_id", userID).
			Msg("failed to remove course member")

		return handler.InternalError(c)
	}

	return c.JSON(fiber.Map{"status": "ok"})
}

// ImportRoster accepts a roster CSV upload and imports it as one batch. A
// rejected file returns the per-row diagnostics with status 400; nothing is
// committed unless every row is valid.
func (s *Service) ImportRoster(c *fiber.Ctx) error {
	return s.importUpload(c, csvimport.ImportCourseData)
}

// ImportAssignments accepts a project assignment CSV upload.
func (s *Service) ImportAssignments(c *fiber.Ctx) error {
	return s.importUpload(c, csvimport.ImportProjectAssignments)
}

func (s *Service) importUpload(c *fiber.Ctx, importFn func(*gorm.DB, string, uint64) error) error {
	courseID, err := courseParam(c)
	if err != nil {
		return handler.BadRequest(c, "invalid course id")
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return handler.BadRequest(c, "missing file upload")
	}

	// The importer streams from disk, so the upload is spooled to a temp
	// file that is removed no matter how the import ends. The path must be
	// unique per request: concurrent uploads commonly share a filename.
	tmpFile, err := os.CreateTemp("", "trofos-import-*.csv")
	if err != nil {
		log.Error().Err(err).Msg("failed to create temp file for uploaded csv")

		return handler.InternalError(c)
	}

	tmpPath := tmpFile.Name()
	_ = tmpFile.Close()
	defer func() { _ = os.Remove(tmpPath) }()

	if err := c.SaveFile(fileHeader, tmpPath); err != nil {
		log.Error().Err(err).Msg("failed to save uploaded csv")

		return handler.InternalError(c)
	}

	if err := importFn(s.db, tmpPath, courseID); err != nil {
		var validationErr *csvimport.ValidationError
		if errors.As(err, &validationErr) {
			return handler.BadRequest(c, validationErr.Error())
		}

		log.Error().Err(err).Uint64("course_id", courseID).Msg("csv import failed")

		return handler.InternalError(c)
	}

	return c.JSON(fiber.Map{"status": "ok"})
}

func courseParam(c *fiber.Ctx) (uint64, error) {
	id, err := c.ParamsInt("courseID")
	if err != nil || id <= 0 {
		return 0, errors.New("invalid course id")
	}

	return uint64(id), nil
}
