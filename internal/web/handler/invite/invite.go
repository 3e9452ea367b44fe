// Package invite provides the JSON endpoints for course invitations.
package invite

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/trofos-project/trofos/internal/auth"
	"github.com/trofos-project/trofos/internal/config"
	coursectl "github.com/trofos-project/trofos/internal/db/controller/course"
	invitectl "github.com/trofos-project/trofos/internal/db/controller/invite"
	"github.com/trofos-project/trofos/internal/db/models"
	"github.com/trofos-project/trofos/internal/notification"
	"github.com/trofos-project/trofos/internal/web/handler"
)

// Path is the base path of the invite endpoints.
const Path = handler.APIPrefix + "/courses/:courseID/invites"

// AcceptPath is the standalone accept endpoint keyed by token.
const AcceptPath = handler.APIPrefix + "/invites/accept"

// Service is the invite handler service.
type Service struct {
	handler.Service
	cfg         *config.Config
	db          *gorm.DB
	authService *auth.Service
	sender      notification.Sender
}

// Handler is the invite handler.
var Handler = Service{}

type createRequest struct {
	Email  string `json:"email"`
	RoleID uint   `json:"roleId"`
}

type acceptRequest struct {
	Token string `json:"token"`
}

// Init initializes the invite handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB, authService *auth.Service, sender notification.Sender) error {
	if app == nil || cfg == nil || db == nil || authService == nil || sender == nil {
		return errors.New("app, cfg, db, authService or sender is nil")
	}

	s.cfg = cfg
	s.db = db
	s.authService = authService
	s.sender = sender

	app.Route(Path, func(router fiber.Router) {
		router.Get(handler.RootPath, auth.RequireCourseRole(authService, models.RoleFacultyID), s.List)
		router.Post(handler.RootPath, auth.RequireCourseRole(authService, models.RoleFacultyID), s.Create)
		router.Delete("/:inviteID", auth.RequireCourseRole(authService, models.RoleFacultyID), s.Revoke)
	})

	app.Post(AcceptPath, auth.RequireAuth(), s.Accept)

	return nil
}

// List returns the pending invites of a course.
func (s *Service) List(c *fiber.Ctx) error {
	courseID, ok := handler.ParamID(c, "courseID")
	if !ok {
		return handler.BadRequest(c, "invalid course id")
	}

	invites, err := invitectl.GetByCourse(s.db, courseID)
	if err != nil {
		log.Error().Err(err).Uint64("course_id", courseID).Msg("failed to list invites")

		return handler.InternalError(c)
	}

	return c.JSON(invites)
}

// Create issues an invite and mails it to the invitee.
func (s *Service) Create(c *fiber.Ctx) error {
	courseID, ok := handler.ParamID(c, "courseID")
	if !ok {
		return handler.BadRequest(c, "invalid course id")
	}

	req := new(createRequest)
	if err := c.BodyParser(req); err != nil || req.RoleID == 0 {
		return handler.BadRequest(c, "invalid request body")
	}

	course, err := coursectl.Get(s.db, courseID)
	if err != nil {
		if errors.Is(err, coursectl.ErrCourseNotFound) {
			return handler.NotFound(c, err.Error())
		}

		log.Error().Err(err).Uint64("course_id", courseID).Msg("failed to load course")

		return handler.InternalError(c)
	}

	invite, err := invitectl.Create(s.db, courseID, req.Email, req.RoleID)
	if err != nil {
		if errors.Is(err, invitectl.ErrEmailEmpty) {
			return handler.BadRequest(c, err.Error())
		}

		log.Error().Err(err).Uint64("course_id", courseID).Msg("failed to create invite")

		return handler.InternalError(c)
	}

	// Mail failures don't fail the request; the invite exists and can be
	// re-sent.
	link := fmt.Sprintf("%s/join?token=%s", s.cfg.Webserver.URL, invite.Token)
	if err := s.sender.SendInvite(invite.Email, course.Name, link); err != nil {
		log.Error().Err(err).Str("email", invite.Email).Msg("failed to send invite mail")
	}

	return c.Status(fiber.StatusCreated).JSON(invite)
}

// Accept redeems an invite token for the logged-in user.
func (s *Service) Accept(c *fiber.Ctx) error {
	req := new(acceptRequest)
	if err := c.BodyParser(req); err != nil || req.Token == "" {
		return handler.BadRequest(c, "invalid request body")
	}

	invite, err := invitectl.Accept(s.db, req.Token, auth.UserID(c))
	if err != nil {
		switch {
		case errors.Is(err, invitectl.ErrInviteNotFound):
			return handler.NotFound(c, err.Error())
		case errors.Is(err, invitectl.ErrInviteExpired):
			return c.Status(fiber.StatusGone).JSON(fiber.Map{"error": err.Error()})
		default:
			log.Error().Err(err).Msg("failed to accept invite")

			return handler.InternalError(c)
		}
	}

	return c.JSON(fiber.Map{"status": "ok", "courseId": invite.CourseID})
}

// Revoke removes a pending invite.
func (s *Service) Revoke(c *fiber.Ctx) error {
	inviteID, ok := handler.ParamID(c, "inviteID")
	if !ok {
		return handler.BadRequest(c, "invalid invite id")
	}

	if err := invitectl.Revoke(s.db, inviteID); err != nil {
		if errors.Is(err, invitectl.ErrInviteNotFound) {
			return handler.NotFound(c, err.Error())
		}

		log.Error().Err(err).Uint64("invite_id", inviteID).Msg("failed to revoke invite")

		return handler.InternalError(c)
	}

	return c.JSON(fiber.Map{"status": "ok"})
}
