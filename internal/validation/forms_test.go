package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegisterFormValidate(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name      string
		form      RegisterForm
		wantField string
	}{
		{"Valid", RegisterForm{Email: "a@x.com", Username: "alice", Password: "longenough"}, ""},
		{"Missing Email", RegisterForm{Username: "alice", Password: "longenough"}, "email"},
		{"Bad Email", RegisterForm{Email: "not-an-email", Username: "alice", Password: "longenough"}, "email"},
		{"Missing Username", RegisterForm{Email: "a@x.com", Password: "longenough"}, "username"},
		{"Short Password", RegisterForm{Email: "a@x.com", Username: "alice", Password: "pw1"}, "password"},
		{"Long Username", RegisterForm{Email: "a@x.com", Username: strings.Repeat("a", 251), Password: "longenough"}, "username"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := tt.form.Validate()
			if tt.wantField == "" {
				assert.True(t, errs.Valid(), "expected no errors, got %v", errs)
			} else {
				assert.Contains(t, errs, tt.wantField)
			}
		})
	}
}

func TestLoginFormValidate(t *testing.T) {
	t.Parallel()
	assert.True(t, (&LoginForm{Email: "a@x.com", Password: "pw1"}).Validate().Valid())
	assert.Contains(t, (&LoginForm{Password: "pw1"}).Validate(), "email")
	assert.Contains(t, (&LoginForm{Email: "a@x.com"}).Validate(), "password")
}

func TestPostFormValidate(t *testing.T) {
	t.Parallel()
	valid := PostForm{
		Title:    "A Title",
		Subtitle: "A subtitle",
		Body:     "Body text",
		ImageURL: "https://example.com/cover.png",
	}
	assert.True(t, valid.Validate().Valid())

	missingTitle := valid
	missingTitle.Title = "   "
	assert.Contains(t, missingTitle.Validate(), "title")

	badURL := valid
	badURL.ImageURL = "ftp://example.com/cover.png"
	assert.Contains(t, badURL.Validate(), "img_url")

	longTitle := valid
	longTitle.Title = strings.Repeat("t", 251)
	assert.Contains(t, longTitle.Validate(), "title")
}

func TestCommentFormValidate(t *testing.T) {
	t.Parallel()
	assert.True(t, (&CommentForm{Text: "nice post"}).Validate().Valid())
	assert.Contains(t, (&CommentForm{Text: "  "}).Validate(), "comment_text")
}

func TestContactFormValidate(t *testing.T) {
	t.Parallel()
	assert.True(t, (&ContactForm{Email: "a@x.com", Message: "hello"}).Validate().Valid())
	assert.Contains(t, (&ContactForm{Email: "bad", Message: "hello"}).Validate(), "email")
	assert.Contains(t, (&ContactForm{Email: "a@x.com"}).Validate(), "message")
}
