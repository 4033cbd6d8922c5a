// Package seed provides database seeding utilities for development and demos.
package seed

import (
	"fmt"
	"log"
	"time"

	"inkwell/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers        int
	NumPosts        int
	CommentsPerPost int
	ShouldClean     bool
}

const publishDateLayout = "January 02, 2006"

// EnsureAdmin makes sure the blog owner account exists. The first row in the
// users table is the admin, so this must run against an empty table on first
// boot.
func EnsureAdmin(db *gorm.DB, email, username, password string) (*models.User, error) {
	var admin models.User
	err := db.First(&admin, models.AdminUserID).Error
	if err == nil {
		return &admin, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("looking up admin user: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing admin password: %w", err)
	}

	admin = models.User{
		Email:    email,
		Username: username,
		Password: string(hashed),
	}
	if err := db.Create(&admin).Error; err != nil {
		return nil, fmt.Errorf("creating admin user: %w", err)
	}
	if admin.ID != models.AdminUserID {
		return nil, fmt.Errorf("admin user got ID %d, expected %d (users table was not empty)", admin.ID, models.AdminUserID)
	}
	return &admin, nil
}

// Seed fills the database with sample readers, posts, and comments.
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("Seeding database with %d users, %d posts...", opts.NumUsers, opts.NumPosts)

	gofakeit.Seed(time.Now().UnixNano())

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			return fmt.Errorf("clearing existing data: %w", err)
		}
	}

	admin, err := EnsureAdmin(db, "admin@example.com", "admin", "changeme123")
	if err != nil {
		return err
	}

	users, err := createUsers(db, opts.NumUsers)
	if err != nil {
		return fmt.Errorf("creating users: %w", err)
	}
	log.Printf("created %d users", len(users))

	posts, err := createPosts(db, admin, opts.NumPosts)
	if err != nil {
		return fmt.Errorf("creating posts: %w", err)
	}
	log.Printf("created %d posts", len(posts))

	if err := createComments(db, users, posts, opts.CommentsPerPost); err != nil {
		return fmt.Errorf("creating comments: %w", err)
	}

	log.Println("Database seeding complete")
	return nil
}

func clearData(db *gorm.DB) error {
	log.Println("Clearing existing data...")
	for _, model := range []interface{}{&models.Comment{}, &models.Post{}, &models.User{}} {
		if err := db.Unscoped().Where("1 = 1").Delete(model).Error; err != nil {
			return err
		}
	}
	return nil
}

func createUsers(db *gorm.DB, count int) ([]models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	users := make([]models.User, 0, count)
	for i := 0; i < count; i++ {
		username := fmt.Sprintf("%s%d", gofakeit.Username(), i)
		user := models.User{
			Email:    fmt.Sprintf("%s@example.com", username),
			Username: username,
			Password: string(hashed),
		}
		if err := db.Create(&user).Error; err != nil {
			log.Printf("failed to create user %s: %v", username, err)
			continue
		}
		users = append(users, user)
	}
	return users, nil
}

func createPosts(db *gorm.DB, author *models.User, count int) ([]models.Post, error) {
	posts := make([]models.Post, 0, count)
	for i := 0; i < count; i++ {
		// spread publish dates backwards from today
		published := time.Now().AddDate(0, 0, -i*3)
		post := models.Post{
			Title:    fmt.Sprintf("%s #%d", gofakeit.Sentence(4), i+1),
			Subtitle: gofakeit.Sentence(6),
			Body:     fmt.Sprintf("<p>%s</p>", gofakeit.Paragraph(2, 4, 8, "</p><p>")),
			ImageURL: fmt.Sprintf("https://picsum.photos/seed/%s/1000/400", gofakeit.UUID()),
			Date:     published.Format(publishDateLayout),
			AuthorID: author.ID,
		}
		if err := db.Create(&post).Error; err != nil {
			log.Printf("failed to create post %q: %v", post.Title, err)
			continue
		}
		posts = append(posts, post)
	}
	return posts, nil
}

func createComments(db *gorm.DB, users []models.User, posts []models.Post, perPost int) error {
	if len(users) == 0 || perPost <= 0 {
		return nil
	}
	for _, post := range posts {
		for i := 0; i < perPost; i++ {
			commenter := users[gofakeit.Number(0, len(users)-1)]
			comment := models.Comment{
				Text:   gofakeit.Sentence(gofakeit.Number(5, 20)),
				UserID: commenter.ID,
				PostID: post.ID,
			}
			if err := db.Create(&comment).Error; err != nil {
				return err
			}
		}
	}
	return nil
}
