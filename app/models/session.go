package models

import "time"

// Session is the server side half of a gorilla session; the cookie only
// carries the signed ID.
type Session struct {
	ID        string    `gorm:"primaryKey;size:64"`
	Data      string    `gorm:"type:text;not null"`
	ExpiresAt time.Time `gorm:"not null;index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
