package model

import "time"

// User represents a registered account on the platform.
type User struct {
	ID             uint       `json:"id" gorm:"primaryKey"`
	FirstName      string     `json:"first_name" gorm:"size:150"`
	Email          string     `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash   string     `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	Bio            string     `json:"bio,omitempty" gorm:"type:text"`
	ProfilePicture string     `json:"profile_picture,omitempty" gorm:"size:500"`
	Title          string     `json:"title,omitempty" gorm:"size:100"`
	Phone          string     `json:"phone,omitempty" gorm:"size:20"`
	Location       string     `json:"location,omitempty" gorm:"size:100"`
	DateOfBirth    *time.Time `json:"date_of_birth,omitempty"`
	IsActive       bool       `json:"is_active" gorm:"default:true;index"`
	IsStaff        bool       `json:"is_staff" gorm:"default:false"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`

	// Relations
	Posts    []Post    `json:"-" gorm:"foreignKey:AuthorID"`
	Comments []Comment `json:"-" gorm:"foreignKey:UserID"`
	Likes    []Like    `json:"-" gorm:"foreignKey:UserID"`
}
