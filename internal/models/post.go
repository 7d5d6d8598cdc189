package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Post struct {
	ID       string `gorm:"type:uuid;primaryKey" json:"id"`
	AuthorID string `gorm:"type:uuid;not null;index" json:"authorId"`
	Author   User   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"author"`
	Title    string `gorm:"not null" json:"title"`
	Content  string `gorm:"type:text" json:"content"`
	Excerpt  string `gorm:"size:300" json:"excerpt"`

	// Visibility gate: unpublished posts are invisible to everyone but the author,
	// and cannot be liked, bookmarked or commented on.
	Published bool `gorm:"not null;default:false;index" json:"published"`

	Views int `gorm:"default:0" json:"views"`

	// Denormalized counters. Mutated only inside the same transaction as the
	// matching relation-row change; the reconciler resets them to COUNT(*) on drift.
	LikesCount     int `gorm:"not null;default:0" json:"likesCount"`
	CommentsCount  int `gorm:"not null;default:0" json:"commentsCount"`
	BookmarksCount int `gorm:"not null;default:0" json:"bookmarksCount"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
