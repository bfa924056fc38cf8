package model

import "time"

// Task represents a single to-do item.
type Task struct {
	ID         uint   `gorm:"primaryKey"`
	Name       string `gorm:"size:255;not null"`
	Completed  bool   `gorm:"not null;default:false"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
	CategoryID *uint `gorm:"index"`
}
