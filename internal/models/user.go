package models

import (
	"time"
)

// User is an authenticated owner of sessions and categories
type User struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`
}

// AuthToken binds an opaque bearer token to a user
type AuthToken struct {
	Token     string    `gorm:"primarykey" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`

	User User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}

// Export is an uploaded CSV object retrievable by its id
type Export struct {
	ID        string    `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	OwnerID   uint      `gorm:"index;not null" json:"owner_id"`
	Filename  string    `gorm:"not null" json:"filename"`
	Content   []byte    `json:"-"`
}
