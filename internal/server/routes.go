package server

import (
	"fmt"
	"runtime"

	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
)

func bToMb(b uint64) uint64 {
	return b / 1024 / 1024
}

func (s *FiberServer) RegisterFiberRoutes() {
	// Page-level session gate: redirects unauthenticated browsers to the
	// login view and authenticated ones away from it. API and asset paths
	// pass through untouched.
	s.App.Use(s.sessionGate)

	s.App.Get("/", s.homePage)
	s.App.Get("/notes", s.homePage)
	s.App.Get("/login", s.loginPage)

	s.App.Post("/api/login", s.login)
	s.App.Post("/api/register", s.registerUser)
	s.App.Post("/api/logout", s.logout)
	s.App.Get("/health", s.healthHandler)
	// endpoint to monitor memory
	s.App.Get("/memory", func(c *fiber.Ctx) error {
		var m runtime.MemStats
		runtime.ReadMemStats(&m)
		memoryInfo := fmt.Sprintf("Alloc = %v MiB, TotalAlloc = %v MiB, Sys = %v MiB, NumGC = %v",
			bToMb(m.Alloc), bToMb(m.TotalAlloc), bToMb(m.Sys), m.NumGC)
		return c.SendString(memoryInfo)
	})

	// The optimize relay mirrors the availability probe and carries its own
	// validation, so it sits outside the authenticated group.
	s.App.Post("/api/optimize-note", s.optimizeNote)
	s.App.Get("/api/optimize-note", s.optimizeAvailability)

	s.App.Use(jwtware.New(jwtware.Config{
		SigningKey:  jwtware.SigningKey{Key: []byte(s.cfg.JWTSecret)},
		TokenLookup: "cookie:" + sessionCookieName + ",header:Authorization",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "missing or invalid session"})
		},
	}))

	s.App.Get("/api/session", s.currentSession)

	s.App.Post("/api/notes", s.createNote)
	s.App.Get("/api/notes", s.getAllNotes)
	s.App.Get("/api/notes/search", s.searchNotes)
	s.App.Get("/api/notes/:id", s.getSingleNote)
	s.App.Put("/api/notes/:id", s.updateNote)
	s.App.Delete("/api/notes/:id", s.deleteNote)
}

func (s *FiberServer) healthHandler(c *fiber.Ctx) error {
	return c.JSON(s.db.Health())
}
