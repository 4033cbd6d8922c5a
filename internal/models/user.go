// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// AdminUserID identifies the single administrative account. Admin status is a
// static convention on user ID 1, not a stored role flag.
const AdminUserID uint = 1

// User represents a registered account.
type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Email     string         `gorm:"size:250;uniqueIndex;not null" json:"email"`
	Username  string         `gorm:"size:250;uniqueIndex;not null" json:"username"`
	Password  string         `gorm:"size:250;not null" json:"-"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	Posts     []Post         `gorm:"foreignKey:AuthorID" json:"posts,omitempty"`
	Comments  []Comment      `gorm:"foreignKey:UserID" json:"comments,omitempty"`
}

// IsAdmin reports whether this user is the admin principal.
func (u *User) IsAdmin() bool {
	return u.ID == AdminUserID
}
