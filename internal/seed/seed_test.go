package seed

import (
	"log"
	"os"
	"testing"

	"inkwell/internal/database"
	"inkwell/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var testDB *gorm.DB

func TestMain(m *testing.M) {
	os.Setenv("APP_ENV", "test")

	var err error
	testDB, err = database.OpenSQLite()
	if err != nil {
		log.Printf("Seed tests skipped: sqlite unavailable: %v", err)
		os.Exit(0)
	}

	os.Exit(m.Run())
}

func cleanTables(t *testing.T) {
	t.Helper()
	testDB.Unscoped().Where("1 = 1").Delete(&models.Comment{})
	testDB.Unscoped().Where("1 = 1").Delete(&models.Post{})
	testDB.Unscoped().Where("1 = 1").Delete(&models.User{})
}

func TestEnsureAdminCreatesFirstUser(t *testing.T) {
	cleanTables(t)

	admin, err := EnsureAdmin(testDB, "owner@example.com", "owner", "changeme123")
	require.NoError(t, err)
	assert.Equal(t, models.AdminUserID, admin.ID)
	assert.True(t, admin.IsAdmin())
}

func TestEnsureAdminIsIdempotent(t *testing.T) {
	cleanTables(t)

	first, err := EnsureAdmin(testDB, "owner@example.com", "owner", "changeme123")
	require.NoError(t, err)

	second, err := EnsureAdmin(testDB, "other@example.com", "other", "otherpass123")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "owner@example.com", second.Email)

	var count int64
	testDB.Model(&models.User{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestSeedPopulates(t *testing.T) {
	cleanTables(t)

	err := Seed(testDB, Options{NumUsers: 3, NumPosts: 4, CommentsPerPost: 2})
	require.NoError(t, err)

	var userCount, postCount, commentCount int64
	testDB.Model(&models.User{}).Count(&userCount)
	testDB.Model(&models.Post{}).Count(&postCount)
	testDB.Model(&models.Comment{}).Count(&commentCount)

	assert.Equal(t, int64(4), userCount, "admin plus three readers")
	assert.Equal(t, int64(4), postCount)
	assert.Equal(t, int64(8), commentCount)

	// every post belongs to the admin
	var posts []models.Post
	require.NoError(t, testDB.Find(&posts).Error)
	for _, p := range posts {
		assert.Equal(t, models.AdminUserID, p.AuthorID)
		assert.NotEmpty(t, p.Date)
	}
}
