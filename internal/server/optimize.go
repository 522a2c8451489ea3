package server

import (
	"errors"

	"jotter/internal/database/dto"
	"jotter/internal/optimizer"

	"github.com/gofiber/fiber/v2"
)

func (s *FiberServer) optimizeNote(c *fiber.Ctx) error {
	var req dto.OptimizeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	result, err := s.optimizer.Optimize(c.Context(), req.Content)
	if err != nil {
		var upstream *optimizer.UpstreamError
		switch {
		case errors.Is(err, optimizer.ErrEmptyContent):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		case errors.As(err, &upstream):
			return c.Status(upstream.Status).JSON(fiber.Map{"error": upstream.Message})
		default:
			// ErrNoAPIKey and ErrMalformed both read as a server fault.
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
	}
	return c.JSON(dto.OptimizeResponse{OptimizedContent: result})
}

func (s *FiberServer) optimizeAvailability(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"available": s.optimizer.Available()})
}
