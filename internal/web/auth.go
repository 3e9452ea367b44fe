package web

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/trofos-project/trofos/internal/web/handler/login"
	"github.com/trofos-project/trofos/internal/web/session"
)

// publicPaths lists route prefixes that do not need a session.
var publicPaths = []string{
	login.Path,
	"/checkalive",
	"/metrics",
}

// AuthMiddleware is a Fiber middleware that checks for user authentication.
func AuthMiddleware(c *fiber.Ctx) error {
	originalURL := strings.ToLower(c.OriginalURL())
	for _, p := range publicPaths {
		if strings.HasPrefix(originalURL, strings.ToLower(p)) {
			return c.Next()
		}
	}

	loginCookie := c.Cookies("session")
	if loginCookie == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	sessData := new(session.Data)
	_ = sessData.Read(loginCookie)

	if sessData.User.ID == 0 {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	return c.Next()
}
