package repository

import (
	"log"
	"os"
	"testing"

	"inkwell/internal/database"
	"inkwell/internal/models"

	"gorm.io/gorm"
)

var testDB *gorm.DB

func TestMain(m *testing.M) {
	os.Setenv("APP_ENV", "test")

	var err error
	testDB, err = database.OpenSQLite()
	if err != nil {
		log.Printf("Repository tests skipped: sqlite unavailable: %v", err)
		os.Exit(0)
	}

	os.Exit(m.Run())
}

// cleanTables wipes rows between tests. Unscoped bypasses the soft-delete
// scope so unique indexes do not collide across tests.
func cleanTables(t *testing.T) {
	t.Helper()
	testDB.Unscoped().Where("1 = 1").Delete(&models.Comment{})
	testDB.Unscoped().Where("1 = 1").Delete(&models.Post{})
	testDB.Unscoped().Where("1 = 1").Delete(&models.User{})
}

func createTestUser(t *testing.T, email, username string) *models.User {
	t.Helper()
	user := &models.User{Email: email, Username: username, Password: "hashed"}
	if err := testDB.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}
