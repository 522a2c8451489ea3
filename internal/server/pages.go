package server

import (
	"bytes"
	"embed"
	"html/template"
	"strings"
	"time"

	"jotter/internal/database/repositories"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

//go:embed templates/*.html
var templatesFS embed.FS

var pageTemplates = template.Must(template.ParseFS(templatesFS, "templates/*.html"))

type noteView struct {
	Title     string
	Lines     []string
	CreatedAt string
}

type homeView struct {
	Email string
	Notes []noteView
}

func (s *FiberServer) renderPage(c *fiber.Ctx, name string, data any) error {
	var buf bytes.Buffer
	if err := pageTemplates.ExecuteTemplate(&buf, name, data); err != nil {
		return c.Status(fiber.StatusInternalServerError).SendString("template error")
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Send(buf.Bytes())
}

func (s *FiberServer) loginPage(c *fiber.Ctx) error {
	return s.renderPage(c, "login.html", nil)
}

// homePage renders the caller's notes. Text goes through the template engine
// escaped and split on line breaks; stored content is never trusted as markup.
func (s *FiberServer) homePage(c *fiber.Ctx) error {
	claims, err := s.sessionClaims(c)
	if err != nil {
		// The gate already checked; a race with expiry still fails closed.
		return c.Redirect("/login", fiber.StatusFound)
	}
	sub, _ := claims["sub"].(string)
	userID, err := uuid.Parse(sub)
	if err != nil {
		return c.Redirect("/login", fiber.StatusFound)
	}
	email, _ := claims["email"].(string)

	noteRepo := repositories.NewNoteRepository(s.db.DB())
	notes, err := noteRepo.GetAll(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).SendString("could not load notes")
	}

	view := homeView{Email: email}
	for _, n := range notes {
		view.Notes = append(view.Notes, noteView{
			Title:     n.Title,
			Lines:     strings.Split(n.Text, "\n"),
			CreatedAt: n.CreatedAt.Format(time.RFC822),
		})
	}
	return s.renderPage(c, "home.html", view)
}
