package server

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/session"
	"inkwell/internal/validation"
)

//go:embed templates/*.html
var templateFS embed.FS

// pages are the content templates, each rendered inside base.html.
var pages = []string{
	"index.html",
	"post.html",
	"register.html",
	"login.html",
	"make-post.html",
	"about.html",
	"contact.html",
	"error.html",
}

var templateFuncs = template.FuncMap{
	// Post bodies are authored by the admin and stored as HTML.
	"raw": func(s string) template.HTML { return template.HTML(s) },
}

func newTemplates() (map[string]*template.Template, error) {
	set := make(map[string]*template.Template, len(pages))
	for _, page := range pages {
		t, err := template.New(page).Funcs(templateFuncs).ParseFS(templateFS, "templates/base.html", "templates/"+page)
		if err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", page, err)
		}
		set[page] = t
	}
	return set, nil
}

// viewData carries everything the templates can reference. Handlers fill
// only the fields their page needs; render supplies the session-derived
// fields before executing.
type viewData struct {
	Title         string
	Flashes       []string
	FormError     string
	Authenticated bool
	IsAdmin       bool
	UserID        uint
	Post          *models.Post
	Posts         []*models.Post
	Form          map[string]string
	Errors        validation.Errors
	Editing       bool
	FormAction    string
	Sent          bool
	Message       string
}

func (s *Server) render(c *fiber.Ctx, status int, page string, data viewData) error {
	t, ok := s.templates[page]
	if !ok {
		middleware.Logger.ErrorContext(c.UserContext(), "unknown template", "page", page)
		return c.Status(fiber.StatusInternalServerError).SendString("template not found")
	}

	if uid, authed := currentUserID(c); authed {
		data.Authenticated = true
		data.UserID = uid
		data.IsAdmin = uid == models.AdminUserID
	}
	data.Flashes = append(session.TakeFlashes(c), data.Flashes...)
	if data.Form == nil {
		data.Form = map[string]string{}
	}
	if data.Errors == nil {
		data.Errors = validation.Errors{}
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "base", data); err != nil {
		middleware.Logger.ErrorContext(c.UserContext(), "template execution failed", "page", page, "error", err)
		return c.Status(fiber.StatusInternalServerError).SendString("internal server error")
	}

	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Status(status).Send(buf.Bytes())
}

func (s *Server) renderError(c *fiber.Ctx, status int, message string) error {
	return s.render(c, status, "error.html", viewData{
		Title:   http.StatusText(status),
		Message: message,
	})
}
