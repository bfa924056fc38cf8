package model

import "time"

// Category groups tasks. Categories form a tree through ParentID.
type Category struct {
	ID            uint   `gorm:"primaryKey"`
	Name          string `gorm:"size:100;not null"`
	ParentID      *uint  `gorm:"index"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
	Subcategories []Category `gorm:"foreignKey:ParentID;constraint:OnDelete:CASCADE"`
	Tasks         []Task     `gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL"`
}
