package auth

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/trofos-project/trofos/internal/web/session"
)

// sessionUser reads the session cookie and returns the logged-in user's ID,
// or zero when the session is missing or invalid.
func sessionUser(c *fiber.Ctx) uint64 {
	sessionID := c.Cookies("session")
	if sessionID == "" {
		return 0
	}

	sessionData := new(session.Data)
	if err := sessionData.Read(sessionID); err != nil {
		return 0
	}

	return sessionData.User.ID
}

// UserID returns the logged-in user's ID from the request, or zero.
func UserID(c *fiber.Ctx) uint64 {
	return sessionUser(c)
}

// RequireAuth creates Fiber middleware that requires a valid session.
func RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if sessionUser(c) == 0 {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
		}

		return c.Next()
	}
}

// RequireAdmin creates Fiber middleware that requires a global administrator.
func RequireAdmin(authService *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := sessionUser(c)
		if userID == 0 {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
		}

		isAdmin, err := authService.IsAdmin(userID)
		if err != nil {
			log.Error().Err(err).Uint64("user_id", userID).Msg("failed to check admin role")

			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
		}

		if !isAdmin {
			log.Warn().Uint64("user_id", userID).Msg("user is not an administrator")

			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "forbidden"})
		}

		return c.Next()
	}
}

// RequireCourseRole creates Fiber middleware that requires a course
// membership with at least the given role. The course is taken from the
// :courseID route parameter.
func RequireCourseRole(authService *Service, roleID uint) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := sessionUser(c)
		if userID == 0 {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
		}

		courseID, err := c.ParamsInt("courseID")
		if err != nil || courseID <= 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid course id"})
		}

		allowed, err := authService.HasCourseRole(userID, uint64(courseID), roleID)
		if err != nil {
			log.Error().Err(err).Uint64("user_id", userID).Int("course_id", courseID).
				Msg("failed to check course role")

			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
		}

		if !allowed {
			log.Warn().Uint64("user_id", userID).Int("course_id", courseID).Uint("role_id", roleID).
				Msg("user lacks required course role")

			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "forbidden"})
		}

		return c.Next()
	}
}

// RequireProjectMember creates Fiber middleware that requires membership in
// the project from the :projectID route parameter. Faculty of the owning
// course and administrators pass.
func RequireProjectMember(authService *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := sessionUser(c)
		if userID == 0 {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
		}

		projectID, err := c.ParamsInt("projectID")
		if err != nil || projectID <= 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid project id"})
		}

		allowed, err := authService.IsProjectMember(userID, uint64(projectID))
		if err != nil {
			log.Error().Err(err).Uint64("user_id", userID).Int("project_id", projectID).
				Msg("failed to check project membership")

			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
		}

		if !allowed {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "forbidden"})
		}

		return c.Next()
	}
}
