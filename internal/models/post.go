package models

import (
	"time"

	"gorm.io/gorm"
)

// Post represents a published blog post.
//
// Date is the human-readable publish date stamped at creation time
// ("January 02, 2006"); it is stored as text, not a real date column.
type Post struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Title     string         `gorm:"size:250;uniqueIndex;not null" json:"title"`
	Subtitle  string         `gorm:"size:250;not null" json:"subtitle"`
	Body      string         `gorm:"type:text;not null" json:"body"`
	ImageURL  string         `gorm:"size:250;not null" json:"img_url"`
	Date      string         `gorm:"size:250;not null" json:"date"`
	AuthorID  uint           `gorm:"not null;index" json:"author_id"`
	Author    User           `gorm:"foreignKey:AuthorID" json:"author"`
	Comments  []Comment      `gorm:"foreignKey:PostID" json:"comments,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName keeps the original table name for existing deployments.
func (Post) TableName() string {
	return "blog_posts"
}
