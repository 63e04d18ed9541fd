package models

import (
	"time"
)

type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"size:100;not null;uniqueIndex" json:"username"`
	Password  string    `gorm:"size:255;not null" json:"-"`
	IsAdmin   bool      `gorm:"not null" json:"isAdmin"`
	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
}

// UserProfile is the only user shape the API ever returns.
type UserProfile struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	IsAdmin  bool   `json:"isAdmin"`
}

func (u *User) Profile() UserProfile {
	return UserProfile{ID: u.ID, Username: u.Username, IsAdmin: u.IsAdmin}
}
