package models

import (
	"time"
)

type Category struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:100;not null" json:"name"`
	Slug        string    `gorm:"size:100;not null;uniqueIndex" json:"slug"`
	Description *string   `gorm:"type:text" json:"description"`
	Image       *string   `gorm:"type:text" json:"image"`
	Featured    bool      `gorm:"not null;index" json:"featured"`
	CreatedAt   time.Time `gorm:"not null" json:"createdAt"`
}
