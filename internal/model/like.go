package model

import "time"

// Like marks that a user likes a post. The composite unique index enforces
// at most one row per (post, user) pair and is the sole arbiter for
// concurrent toggle requests.
type Like struct {
	ID      uint      `json:"id" gorm:"primaryKey"`
	PostID  uint      `json:"post_id" gorm:"not null;uniqueIndex:idx_post_user"`
	UserID  uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_post_user"`
	LikedAt time.Time `json:"liked_at" gorm:"autoCreateTime"`
}
