package model

import (
	"time"

	"gorm.io/datatypes"
)

// PostStatus represents the publication status of a post.
type PostStatus string

const (
	PostStatusDraft     PostStatus = "draft"
	PostStatusPublished PostStatus = "published"
)

// Valid reports whether s is a recognized status value.
func (s PostStatus) Valid() bool {
	return s == PostStatusDraft || s == PostStatusPublished
}

// Post is a blog entry authored by a user. Show is the soft-delete marker:
// a hidden post stays in the table but is excluded from public feeds.
type Post struct {
	ID            uint                        `json:"id" gorm:"primaryKey"`
	AuthorID      uint                        `json:"author_id" gorm:"not null;index"`
	Title         string                      `json:"title" gorm:"size:100;not null"`
	Content       string                      `json:"content" gorm:"type:text;not null"`
	Excerpt       string                      `json:"excerpt" gorm:"size:500"`
	CategoryID    uint                        `json:"category_id" gorm:"not null;index"`
	Status        PostStatus                  `json:"status" gorm:"type:varchar(10);not null;default:'draft';index"`
	Tags          datatypes.JSONSlice[string] `json:"tags"`
	Thumbnail     string                      `json:"thumbnail" gorm:"size:500"`
	Show          bool                        `json:"show" gorm:"default:true;index"`
	CreatedAt     time.Time                   `json:"created_at"`
	UpdatedAt     time.Time                   `json:"updated_at"`
	PublishedDate time.Time                   `json:"published_date" gorm:"autoCreateTime"`

	// Relations. Deleting a post removes its comments and likes; a category
	// cannot be deleted while posts reference it.
	Author   User      `json:"-" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	Category Category  `json:"-" gorm:"foreignKey:CategoryID;constraint:OnDelete:RESTRICT"`
	Comments []Comment `json:"-" gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
	Likes    []Like    `json:"-" gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
}
