package server

import (
	"errors"
	"strings"

	"jotter/internal/database/dto"
	"jotter/internal/database/models"
	"jotter/internal/database/repositories"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func (s *FiberServer) createNote(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "missing or invalid session"})
	}
	var req dto.NoteRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	// Whitespace-only notes are rejected before the store is touched.
	if strings.TrimSpace(req.Text) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "note text must not be empty"})
	}
	note := models.Note{
		Title:  dto.DeriveTitle(req.Title, req.Text),
		Text:   req.Text,
		UserID: userID,
	}
	noteRepo := repositories.NewNoteRepository(s.db.DB())
	if err := noteRepo.Create(c.Context(), &note); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"note": note})
}

func (s *FiberServer) getAllNotes(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "missing or invalid session"})
	}
	noteRepo := repositories.NewNoteRepository(s.db.DB())
	notes, err := noteRepo.GetAll(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if notes == nil {
		notes = []models.Note{}
	}
	return c.JSON(fiber.Map{"notes": notes})
}

func (s *FiberServer) getSingleNote(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "missing or invalid session"})
	}
	uid, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid note id"})
	}
	noteRepo := repositories.NewNoteRepository(s.db.DB())
	note, err := noteRepo.GetByID(c.Context(), uid, userID)
	if errors.Is(err, repositories.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"note": note})
}

func (s *FiberServer) updateNote(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "missing or invalid session"})
	}
	uid, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid note id"})
	}
	var req dto.NoteRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if strings.TrimSpace(req.Text) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "note text must not be empty"})
	}
	note := models.Note{
		ID:     uid,
		Title:  dto.DeriveTitle(req.Title, req.Text),
		Text:   req.Text,
		UserID: userID,
	}
	noteRepo := repositories.NewNoteRepository(s.db.DB())
	err = noteRepo.Update(c.Context(), &note, userID)
	if errors.Is(err, repositories.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"note": note})
}

func (s *FiberServer) deleteNote(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "missing or invalid session"})
	}
	uid, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid note id"})
	}
	noteRepo := repositories.NewNoteRepository(s.db.DB())
	err = noteRepo.Delete(c.Context(), uid, userID)
	if errors.Is(err, repositories.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"message": "note deleted successfully"})
}

func (s *FiberServer) searchNotes(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "missing or invalid session"})
	}
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "search query must not be empty"})
	}
	searchRepo := repositories.NewSearchRepository(s.db.DB())
	notes, err := searchRepo.SearchNotes(c.Context(), query, userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if notes == nil {
		notes = []models.Note{}
	}
	return c.JSON(fiber.Map{"notes": notes})
}
