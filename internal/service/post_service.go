package service

import (
	"context"
	"time"

	"inkwell/internal/models"
	"inkwell/internal/repository"
)

// publishDateLayout renders the stamped publish date, e.g. "August 28, 2026".
const publishDateLayout = "January 02, 2006"

// PostService handles creation, editing, and deletion of blog posts.
type PostService struct {
	postRepo repository.PostRepository
	now      func() time.Time
}

// CreatePostInput carries the validated new-post form fields.
type CreatePostInput struct {
	Title    string
	Subtitle string
	Body     string
	ImageURL string
	AuthorID uint
}

// UpdatePostInput carries the validated edit-post form fields.
type UpdatePostInput struct {
	PostID   uint
	Title    string
	Subtitle string
	Body     string
	ImageURL string
}

// NewPostService creates a PostService backed by the given post repository.
func NewPostService(postRepo repository.PostRepository) *PostService {
	return &PostService{postRepo: postRepo, now: time.Now}
}

// Create persists a new post owned by the author, stamped with the current
// date. A duplicate title is rejected before insert so the form can re-render
// with an inline error instead of surfacing a constraint violation.
func (s *PostService) Create(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	existing, err := s.postRepo.GetByTitle(ctx, in.Title)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, models.NewValidationError("A post with this title already exists")
	}

	post := &models.Post{
		Title:    in.Title,
		Subtitle: in.Subtitle,
		Body:     in.Body,
		ImageURL: in.ImageURL,
		Date:     s.now().Format(publishDateLayout),
		AuthorID: in.AuthorID,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// Get loads one post with its author and comments.
func (s *PostService) Get(ctx context.Context, id uint) (*models.Post, error) {
	return s.postRepo.GetByID(ctx, id)
}

// List returns all posts in storage order.
func (s *PostService) List(ctx context.Context) ([]*models.Post, error) {
	return s.postRepo.List(ctx)
}

// Update overwrites all mutable fields of the post in place. The publish date
// and author are not touched by an edit.
func (s *PostService) Update(ctx context.Context, in UpdatePostInput) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, in.PostID)
	if err != nil {
		return nil, err
	}

	if in.Title != post.Title {
		other, err := s.postRepo.GetByTitle(ctx, in.Title)
		if err != nil {
			return nil, err
		}
		if other != nil && other.ID != post.ID {
			return nil, models.NewValidationError("A post with this title already exists")
		}
	}

	post.Title = in.Title
	post.Subtitle = in.Subtitle
	post.Body = in.Body
	post.ImageURL = in.ImageURL

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// Delete removes the post unconditionally; its comments go with it.
func (s *PostService) Delete(ctx context.Context, id uint) error {
	if _, err := s.postRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.postRepo.Delete(ctx, id)
}
