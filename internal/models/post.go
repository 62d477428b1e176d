// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// Post represents a blog post in the Inkwell application.
type Post struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	// Titles are unique among live posts only; deleting a post frees
	// its title for reuse.
	Title    string `gorm:"not null;uniqueIndex:uniq_posts_live_title,where:deleted_at IS NULL" json:"title"`
	Subtitle string `json:"subtitle"`
	Body     string `gorm:"type:text;not null" json:"body"`
	ImageURL string `json:"image_url,omitempty"`
	UserID   uint   `gorm:"not null;index" json:"user_id"`
	User     User   `gorm:"foreignKey:UserID" json:"user"`
	// CommentsCount is not persisted; computed at query time
	CommentsCount int            `gorm:"->" json:"comments_count"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

// OwnerID returns the author of the post for authorization checks.
func (p *Post) OwnerID() uint {
	return p.UserID
}
