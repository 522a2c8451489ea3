package server

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// sessionGate filters page navigation. API, asset, and operational paths are
// exempt; everything else requires a valid session cookie. A session that
// fails to parse is treated as absent, so a broken cookie lands on the login
// view rather than an error page.
func (s *FiberServer) sessionGate(c *fiber.Ctx) error {
	path := c.Path()
	if strings.HasPrefix(path, "/api/") ||
		strings.HasPrefix(path, "/assets/") ||
		strings.HasPrefix(path, "/debug/") ||
		path == "/favicon.ico" ||
		path == "/health" ||
		path == "/memory" {
		return c.Next()
	}

	_, err := s.sessionClaims(c)
	authenticated := err == nil

	if path == "/login" {
		if authenticated {
			return c.Redirect("/", fiber.StatusFound)
		}
		return c.Next()
	}
	if !authenticated {
		return c.Redirect("/login", fiber.StatusFound)
	}
	return c.Next()
}
