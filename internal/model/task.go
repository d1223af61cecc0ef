package model

import "time"

// Task is a unit of work owned by exactly one User.
type Task struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Title       string    `json:"title" gorm:"size:255;not null"`
	Description string    `json:"description" gorm:"type:text"`
	Status      Status    `json:"status" gorm:"not null;default:0"`
	UserID      uint      `json:"user_id" gorm:"not null;index"`
	CreatedAt   time.Time `json:"-"`
	UpdatedAt   time.Time `json:"-"`

	// Relations
	User User `json:"user" gorm:"foreignKey:UserID"`
}
