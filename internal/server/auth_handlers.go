package server

import (
	"errors"

	"inkwell/internal/middleware"
	"inkwell/internal/service"
	"inkwell/internal/session"
	"inkwell/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// RegisterForm renders the registration page.
func (s *Server) RegisterForm(c *fiber.Ctx) error {
	return s.render(c, fiber.StatusOK, "register.html", viewData{Title: "Register"})
}

// Register handles the registration form. A taken email sends the visitor to
// the login page with a flash instead of creating anything.
func (s *Server) Register(c *fiber.Ctx) error {
	var form validation.RegisterForm
	if err := c.BodyParser(&form); err != nil {
		return s.renderError(c, fiber.StatusBadRequest, "Could not read the submitted form.")
	}

	formValues := map[string]string{"email": form.Email, "username": form.Username}
	if errs := form.Validate(); !errs.Valid() {
		return s.render(c, fiber.StatusOK, "register.html", viewData{
			Title:  "Register",
			Form:   formValues,
			Errors: errs,
		})
	}

	user, err := s.authService.Register(c.UserContext(), service.RegisterInput{
		Email:    form.Email,
		Username: form.Username,
		Password: form.Password,
	})
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			session.Flash(c, "You already have an account, Login instead!")
			return c.Redirect("/login", fiber.StatusSeeOther)
		}
		middleware.Logger.ErrorContext(c.UserContext(), "registration failed", "error", err)
		return s.renderError(c, fiber.StatusInternalServerError, "Could not create your account.")
	}

	if err := s.sessions.Issue(c, user.ID); err != nil {
		middleware.Logger.ErrorContext(c.UserContext(), "session issue failed", "error", err)
		return s.renderError(c, fiber.StatusInternalServerError, "Could not sign you in.")
	}
	return c.Redirect("/", fiber.StatusSeeOther)
}

// LoginForm renders the login page.
func (s *Server) LoginForm(c *fiber.Ctx) error {
	return s.render(c, fiber.StatusOK, "login.html", viewData{Title: "Log In"})
}

// Login handles the login form. An unknown email re-renders the form in
// place; a wrong password flashes and redirects back to the login page.
func (s *Server) Login(c *fiber.Ctx) error {
	var form validation.LoginForm
	if err := c.BodyParser(&form); err != nil {
		return s.renderError(c, fiber.StatusBadRequest, "Could not read the submitted form.")
	}

	formValues := map[string]string{"email": form.Email}
	if errs := form.Validate(); !errs.Valid() {
		return s.render(c, fiber.StatusOK, "login.html", viewData{
			Title:  "Log In",
			Form:   formValues,
			Errors: errs,
		})
	}

	user, err := s.authService.Authenticate(c.UserContext(), form.Email, form.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoAccount):
			return s.render(c, fiber.StatusOK, "login.html", viewData{
				Title:     "Log In",
				Form:      formValues,
				FormError: "User account does not exists!",
			})
		case errors.Is(err, service.ErrWrongPassword):
			session.Flash(c, "Wrong password!")
			return c.Redirect("/login", fiber.StatusSeeOther)
		default:
			middleware.Logger.ErrorContext(c.UserContext(), "login failed", "error", err)
			return s.renderError(c, fiber.StatusInternalServerError, "Could not sign you in.")
		}
	}

	if err := s.sessions.Issue(c, user.ID); err != nil {
		middleware.Logger.ErrorContext(c.UserContext(), "session issue failed", "error", err)
		return s.renderError(c, fiber.StatusInternalServerError, "Could not sign you in.")
	}
	return c.Redirect("/", fiber.StatusSeeOther)
}

// Logout clears the session cookie and returns to the front page.
func (s *Server) Logout(c *fiber.Ctx) error {
	s.sessions.Clear(c)
	return c.Redirect("/", fiber.StatusFound)
}
