package model

// Category is a named content tag referenced by posts.
type Category struct {
	ID     uint   `json:"id" gorm:"primaryKey"`
	Name   string `json:"name" gorm:"uniqueIndex;size:100;not null"`
	Active bool   `json:"active" gorm:"default:true"`
}
