// Package service contains the application's business logic.
package service

import (
	"context"
	"errors"

	"inkwell/internal/models"
	"inkwell/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

// Authentication outcomes the handlers translate into flash messages.
var (
	// ErrEmailTaken signals a registration attempt with an existing email.
	ErrEmailTaken = errors.New("an account with this email already exists")
	// ErrNoAccount signals a login attempt for an unknown email.
	ErrNoAccount = errors.New("user account does not exist")
	// ErrWrongPassword signals a failed password check for a known account.
	ErrWrongPassword = errors.New("wrong password")
)

// AuthService handles registration and credential verification.
type AuthService struct {
	userRepo repository.UserRepository
}

// RegisterInput carries the validated registration form fields.
type RegisterInput struct {
	Email    string
	Username string
	Password string
}

// NewAuthService creates an AuthService backed by the given user repository.
func NewAuthService(userRepo repository.UserRepository) *AuthService {
	return &AuthService{userRepo: userRepo}
}

// Register creates a new user with a bcrypt-hashed password. A duplicate
// email returns ErrEmailTaken without touching storage. Username uniqueness
// is left to the storage constraint.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	existing, err := s.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		Email:    in.Email,
		Username: in.Username,
		Password: string(hashed),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate verifies the email/password pair. It distinguishes an unknown
// account from a wrong password so the handlers can message each case the way
// the login flow requires.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNoAccount
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrWrongPassword
	}
	return user, nil
}
