package server

import (
	"inkwell/internal/middleware"
	"inkwell/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// ContactForm renders the contact page.
func (s *Server) ContactForm(c *fiber.Ctx) error {
	return s.render(c, fiber.StatusOK, "contact.html", viewData{Title: "Contact"})
}

// SubmitContact relays the contact form to the site owner over SMTP and
// re-renders the page with a confirmation.
func (s *Server) SubmitContact(c *fiber.Ctx) error {
	var form validation.ContactForm
	if err := c.BodyParser(&form); err != nil {
		return s.renderError(c, fiber.StatusBadRequest, "Could not read the submitted form.")
	}

	if errs := form.Validate(); !errs.Valid() {
		return s.render(c, fiber.StatusOK, "contact.html", viewData{
			Title:  "Contact",
			Form:   map[string]string{"email": form.Email, "message": form.Message},
			Errors: errs,
		})
	}

	if err := s.mailer.Relay(c.UserContext(), form.Email, form.Message); err != nil {
		middleware.Logger.ErrorContext(c.UserContext(), "contact relay failed", "error", err)
		return s.renderError(c, fiber.StatusInternalServerError, "Could not send your message.")
	}

	return s.render(c, fiber.StatusOK, "contact.html", viewData{
		Title: "Contact",
		Sent:  true,
	})
}
