package models

import (
	"time"
)

// Category is a user-scoped label attachable to sessions as free text
type Category struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	OwnerID uint    `gorm:"index;not null" json:"owner_id"`
	Name    string  `gorm:"not null" json:"name"`
	Color   *string `json:"color"` // "#RRGGBB"
}

// ColorText returns the display color or an empty string
func (c *Category) ColorText() string {
	if c.Color == nil {
		return ""
	}
	return *c.Color
}
