package model

import (
	"time"
)

// Task belongs to exactly one user for its whole lifetime. The owning user
// lives in the identity provider; user_id is a plain string reference.
type Task struct {
	ID          int64     `gorm:"primaryKey" json:"id"`
	UserID      string    `gorm:"size:255;not null;index" json:"userId"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Description *string   `gorm:"type:text" json:"description"`
	Completed   bool      `gorm:"not null" json:"completed"`
	Category    *string   `gorm:"size:100" json:"category"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}
