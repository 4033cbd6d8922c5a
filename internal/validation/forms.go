// Package validation provides declarative form definitions and field checks
// for submitted HTML forms.
package validation

import (
	"regexp"
	"strings"
)

// maxFieldLen matches the 250-character column width of the short text fields.
const maxFieldLen = 250

var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Errors maps field names to a single user-facing error message each.
type Errors map[string]string

// Valid reports whether no field failed validation.
func (e Errors) Valid() bool {
	return len(e) == 0
}

// RegisterForm is the registration form submission.
type RegisterForm struct {
	Email    string `form:"email"`
	Username string `form:"username"`
	Password string `form:"password"`
}

// Validate checks the registration fields and returns per-field errors.
func (f *RegisterForm) Validate() Errors {
	errs := Errors{}
	checkEmail(errs, "email", f.Email)
	checkRequired(errs, "username", f.Username)
	checkLength(errs, "username", f.Username)
	checkRequired(errs, "password", f.Password)
	if f.Password != "" && len(f.Password) < 8 {
		errs["password"] = "Password must be at least 8 characters"
	}
	return errs
}

// LoginForm is the login form submission.
type LoginForm struct {
	Email    string `form:"email"`
	Password string `form:"password"`
}

// Validate checks the login fields and returns per-field errors.
func (f *LoginForm) Validate() Errors {
	errs := Errors{}
	checkEmail(errs, "email", f.Email)
	checkRequired(errs, "password", f.Password)
	return errs
}

// PostForm is the create/edit post form submission.
type PostForm struct {
	Title    string `form:"title"`
	Subtitle string `form:"subtitle"`
	Body     string `form:"body"`
	ImageURL string `form:"img_url"`
}

// Validate checks the post fields and returns per-field errors.
func (f *PostForm) Validate() Errors {
	errs := Errors{}
	checkRequired(errs, "title", f.Title)
	checkLength(errs, "title", f.Title)
	checkRequired(errs, "subtitle", f.Subtitle)
	checkLength(errs, "subtitle", f.Subtitle)
	checkRequired(errs, "body", f.Body)
	checkRequired(errs, "img_url", f.ImageURL)
	checkLength(errs, "img_url", f.ImageURL)
	if f.ImageURL != "" && !strings.HasPrefix(f.ImageURL, "http://") && !strings.HasPrefix(f.ImageURL, "https://") {
		errs["img_url"] = "Image URL must start with http:// or https://"
	}
	return errs
}

// CommentForm is the comment form submitted on the post detail page.
type CommentForm struct {
	Text string `form:"comment_text"`
}

// Validate checks the comment text and returns per-field errors.
func (f *CommentForm) Validate() Errors {
	errs := Errors{}
	if strings.TrimSpace(f.Text) == "" {
		errs["comment_text"] = "This field is required"
	}
	return errs
}

// ContactForm is the contact page submission relayed to the site owner.
type ContactForm struct {
	Email   string `form:"email"`
	Message string `form:"message"`
}

// Validate checks the contact fields and returns per-field errors.
func (f *ContactForm) Validate() Errors {
	errs := Errors{}
	checkEmail(errs, "email", f.Email)
	if strings.TrimSpace(f.Message) == "" {
		errs["message"] = "This field is required"
	}
	return errs
}

func checkRequired(errs Errors, field, value string) {
	if _, seen := errs[field]; seen {
		return
	}
	if strings.TrimSpace(value) == "" {
		errs[field] = "This field is required"
	}
}

func checkLength(errs Errors, field, value string) {
	if _, seen := errs[field]; seen {
		return
	}
	if len(value) > maxFieldLen {
		errs[field] = "Must be 250 characters or fewer"
	}
}

func checkEmail(errs Errors, field, value string) {
	if strings.TrimSpace(value) == "" {
		errs[field] = "This field is required"
		return
	}
	if len(value) > maxFieldLen {
		errs[field] = "Must be 250 characters or fewer"
		return
	}
	if !emailRe.MatchString(value) {
		errs[field] = "Invalid email address"
	}
}
