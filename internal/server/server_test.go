package server

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"inkwell/internal/config"
	"inkwell/internal/models"
	"inkwell/internal/service"
	"inkwell/internal/session"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockUserRepository is a mock of the UserRepository interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// MockPostRepository is a mock of the PostRepository interface
type MockPostRepository struct {
	mock.Mock
}

func (m *MockPostRepository) Create(ctx context.Context, post *models.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockPostRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostRepository) GetByTitle(ctx context.Context, title string) (*models.Post, error) {
	args := m.Called(ctx, title)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostRepository) List(ctx context.Context) ([]*models.Post, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Post), args.Error(1)
}

func (m *MockPostRepository) Update(ctx context.Context, post *models.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockPostRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockCommentRepository is a mock of the CommentRepository interface
type MockCommentRepository struct {
	mock.Mock
}

func (m *MockCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockCommentRepository) ListByPost(ctx context.Context, postID uint) ([]*models.Comment, error) {
	args := m.Called(ctx, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Comment), args.Error(1)
}

// MockMailer is a mock of the mail.Mailer interface
type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) Relay(ctx context.Context, fromEmail, message string) error {
	args := m.Called(ctx, fromEmail, message)
	return args.Error(0)
}

type testMocks struct {
	userRepo    *MockUserRepository
	postRepo    *MockPostRepository
	commentRepo *MockCommentRepository
	mailer      *MockMailer
}

func newTestServer(t *testing.T) (*Server, *testMocks) {
	t.Helper()

	templates, err := newTemplates()
	require.NoError(t, err)

	mocks := &testMocks{
		userRepo:    new(MockUserRepository),
		postRepo:    new(MockPostRepository),
		commentRepo: new(MockCommentRepository),
		mailer:      new(MockMailer),
	}

	s := &Server{
		config:      &config.Config{Env: "test", SessionSecret: "test_secret"},
		sessions:    session.NewManager("test_secret", false),
		templates:   templates,
		userRepo:    mocks.userRepo,
		postRepo:    mocks.postRepo,
		commentRepo: mocks.commentRepo,
		mailer:      mocks.mailer,
	}
	s.authService = service.NewAuthService(mocks.userRepo)
	s.postService = service.NewPostService(mocks.postRepo)
	s.commentService = service.NewCommentService(mocks.commentRepo, mocks.postRepo)

	return s, mocks
}

func newTestApp(s *Server) *fiber.App {
	app := fiber.New()
	app.Use(s.LoadPrincipal())
	s.SetupRoutes(app)
	return app
}

func formRequest(path string, values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

// sessionCookieFor issues a real signed session cookie for the given user.
func sessionCookieFor(t *testing.T, s *Server, userID uint) *http.Cookie {
	t.Helper()

	app := fiber.New()
	app.Get("/issue", func(c *fiber.Ctx) error {
		return s.sessions.Issue(c, userID)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/issue", nil))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	for _, ck := range resp.Cookies() {
		if ck.Name == session.CookieName {
			return ck
		}
	}
	t.Fatal("no session cookie issued")
	return nil
}

func flashCookieValue(resp *http.Response) string {
	for _, ck := range resp.Cookies() {
		if ck.Name == session.FlashCookieName {
			return ck.Value
		}
	}
	return ""
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(body)
}
