package server

import (
	"errors"
	"fmt"

	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/service"
	"inkwell/internal/session"
	"inkwell/internal/validation"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Home renders the front page with every post.
func (s *Server) Home(c *fiber.Ctx) error {
	posts, err := s.postService.List(c.UserContext())
	if err != nil {
		middleware.Logger.ErrorContext(c.UserContext(), "listing posts failed", "error", err)
		return s.renderError(c, fiber.StatusInternalServerError, "Could not load the posts.")
	}
	return s.render(c, fiber.StatusOK, "index.html", viewData{
		Title: "Home",
		Posts: posts,
	})
}

// About renders the static about page.
func (s *Server) About(c *fiber.Ctx) error {
	return s.render(c, fiber.StatusOK, "about.html", viewData{Title: "About"})
}

// ShowPost renders one post with its comments and the comment form.
func (s *Server) ShowPost(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return s.renderError(c, fiber.StatusNotFound, "That post does not exist.")
	}

	post, err := s.postService.Get(c.UserContext(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return s.renderError(c, fiber.StatusNotFound, "That post does not exist.")
		}
		middleware.Logger.ErrorContext(c.UserContext(), "loading post failed", "post_id", id, "error", err)
		return s.renderError(c, fiber.StatusInternalServerError, "Could not load the post.")
	}

	return s.render(c, fiber.StatusOK, "post.html", viewData{
		Title: post.Title,
		Post:  post,
	})
}

// SubmitComment handles the comment form on a post page. Anonymous visitors
// are sent to the login page and nothing is stored.
func (s *Server) SubmitComment(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return s.renderError(c, fiber.StatusNotFound, "That post does not exist.")
	}

	userID, authed := currentUserID(c)
	if !authed {
		session.Flash(c, "Login to comment on the post.")
		return c.Redirect("/login", fiber.StatusSeeOther)
	}

	var form validation.CommentForm
	if err := c.BodyParser(&form); err != nil {
		return s.renderError(c, fiber.StatusBadRequest, "Could not read the submitted form.")
	}

	if errs := form.Validate(); !errs.Valid() {
		post, err := s.postService.Get(c.UserContext(), id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return s.renderError(c, fiber.StatusNotFound, "That post does not exist.")
			}
			return s.renderError(c, fiber.StatusInternalServerError, "Could not load the post.")
		}
		return s.render(c, fiber.StatusOK, "post.html", viewData{
			Title:  post.Title,
			Post:   post,
			Form:   map[string]string{"comment_text": form.Text},
			Errors: errs,
		})
	}

	if _, err := s.commentService.Create(c.UserContext(), service.CreateCommentInput{
		UserID: userID,
		PostID: id,
		Text:   form.Text,
	}); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return s.renderError(c, fiber.StatusNotFound, "That post does not exist.")
		}
		middleware.Logger.ErrorContext(c.UserContext(), "creating comment failed", "post_id", id, "error", err)
		return s.renderError(c, fiber.StatusInternalServerError, "Could not save your comment.")
	}

	return c.Redirect(fmt.Sprintf("/post/%d", id), fiber.StatusSeeOther)
}

// NewPostForm renders the empty authoring form. The admin gate lets
// anonymous visitors reach this, so redirect them to the login page.
func (s *Server) NewPostForm(c *fiber.Ctx) error {
	if _, authed := currentUserID(c); !authed {
		return c.Redirect("/login", fiber.StatusFound)
	}
	return s.render(c, fiber.StatusOK, "make-post.html", viewData{
		Title:      "New Post",
		FormAction: "/new-post",
	})
}

// CreatePost handles the new-post form submission.
func (s *Server) CreatePost(c *fiber.Ctx) error {
	userID, authed := currentUserID(c)
	if !authed {
		return c.Redirect("/login", fiber.StatusSeeOther)
	}

	var form validation.PostForm
	if err := c.BodyParser(&form); err != nil {
		return s.renderError(c, fiber.StatusBadRequest, "Could not read the submitted form.")
	}

	formValues := postFormValues(form)
	if errs := form.Validate(); !errs.Valid() {
		return s.render(c, fiber.StatusOK, "make-post.html", viewData{
			Title:      "New Post",
			FormAction: "/new-post",
			Form:       formValues,
			Errors:     errs,
		})
	}

	post, err := s.postService.Create(c.UserContext(), service.CreatePostInput{
		Title:    form.Title,
		Subtitle: form.Subtitle,
		Body:     form.Body,
		ImageURL: form.ImageURL,
		AuthorID: userID,
	})
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) && appErr.Code == "VALIDATION_ERROR" {
			return s.render(c, fiber.StatusOK, "make-post.html", viewData{
				Title:      "New Post",
				FormAction: "/new-post",
				Form:       formValues,
				Errors:     validation.Errors{"title": appErr.Message},
			})
		}
		middleware.Logger.ErrorContext(c.UserContext(), "creating post failed", "error", err)
		return s.renderError(c, fiber.StatusInternalServerError, "Could not save the post.")
	}

	return c.Redirect(fmt.Sprintf("/post/%d", post.ID), fiber.StatusSeeOther)
}

// EditPostForm renders the authoring form prefilled with the post.
func (s *Server) EditPostForm(c *fiber.Ctx) error {
	if _, authed := currentUserID(c); !authed {
		return c.Redirect("/login", fiber.StatusFound)
	}

	id, err := parseID(c)
	if err != nil {
		return s.renderError(c, fiber.StatusNotFound, "That post does not exist.")
	}

	post, err := s.postService.Get(c.UserContext(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return s.renderError(c, fiber.StatusNotFound, "That post does not exist.")
		}
		return s.renderError(c, fiber.StatusInternalServerError, "Could not load the post.")
	}

	return s.render(c, fiber.StatusOK, "make-post.html", viewData{
		Title:      "Edit Post",
		Editing:    true,
		FormAction: fmt.Sprintf("/edit-post/%d", post.ID),
		Form: map[string]string{
			"title":    post.Title,
			"subtitle": post.Subtitle,
			"body":     post.Body,
			"img_url":  post.ImageURL,
		},
	})
}

// UpdatePost handles the edit-post form submission. The publish date and
// author stay as they were.
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	if _, authed := currentUserID(c); !authed {
		return c.Redirect("/login", fiber.StatusSeeOther)
	}

	id, err := parseID(c)
	if err != nil {
		return s.renderError(c, fiber.StatusNotFound, "That post does not exist.")
	}

	var form validation.PostForm
	if err := c.BodyParser(&form); err != nil {
		return s.renderError(c, fiber.StatusBadRequest, "Could not read the submitted form.")
	}

	formValues := postFormValues(form)
	editAction := fmt.Sprintf("/edit-post/%d", id)
	if errs := form.Validate(); !errs.Valid() {
		return s.render(c, fiber.StatusOK, "make-post.html", viewData{
			Title:      "Edit Post",
			Editing:    true,
			FormAction: editAction,
			Form:       formValues,
			Errors:     errs,
		})
	}

	post, err := s.postService.Update(c.UserContext(), service.UpdatePostInput{
		PostID:   id,
		Title:    form.Title,
		Subtitle: form.Subtitle,
		Body:     form.Body,
		ImageURL: form.ImageURL,
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return s.renderError(c, fiber.StatusNotFound, "That post does not exist.")
		}
		var appErr *models.AppError
		if errors.As(err, &appErr) && appErr.Code == "VALIDATION_ERROR" {
			return s.render(c, fiber.StatusOK, "make-post.html", viewData{
				Title:      "Edit Post",
				Editing:    true,
				FormAction: editAction,
				Form:       formValues,
				Errors:     validation.Errors{"title": appErr.Message},
			})
		}
		middleware.Logger.ErrorContext(c.UserContext(), "updating post failed", "post_id", id, "error", err)
		return s.renderError(c, fiber.StatusInternalServerError, "Could not save the post.")
	}

	return c.Redirect(fmt.Sprintf("/post/%d", post.ID), fiber.StatusSeeOther)
}

// DeletePost removes a post and its comments, then returns to the front page.
func (s *Server) DeletePost(c *fiber.Ctx) error {
	if _, authed := currentUserID(c); !authed {
		return c.Redirect("/login", fiber.StatusFound)
	}

	id, err := parseID(c)
	if err != nil {
		return s.renderError(c, fiber.StatusNotFound, "That post does not exist.")
	}

	if err := s.postService.Delete(c.UserContext(), id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return s.renderError(c, fiber.StatusNotFound, "That post does not exist.")
		}
		middleware.Logger.ErrorContext(c.UserContext(), "deleting post failed", "post_id", id, "error", err)
		return s.renderError(c, fiber.StatusInternalServerError, "Could not delete the post.")
	}

	return c.Redirect("/", fiber.StatusFound)
}

func postFormValues(form validation.PostForm) map[string]string {
	return map[string]string{
		"title":    form.Title,
		"subtitle": form.Subtitle,
		"body":     form.Body,
		"img_url":  form.ImageURL,
	}
}
