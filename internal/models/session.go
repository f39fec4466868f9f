package models

import (
	"time"
)

// Session represents a single tracked interval of activity
type Session struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	SessionID       string     `gorm:"uniqueIndex;not null" json:"session_id"`
	OwnerID         uint       `gorm:"index;not null" json:"owner_id"`
	Name            string     `json:"name"`
	Description     *string    `json:"description"`
	Category        *string    `json:"category"` // denormalized category name
	StartTime       time.Time  `gorm:"not null" json:"start_time"`
	EndTime         *time.Time `json:"end_time"`
	DurationSeconds *int64     `json:"duration_seconds"`
}

// InProgress reports whether the session has not been finished yet
func (s *Session) InProgress() bool {
	return s.EndTime == nil
}

// Duration returns the recorded duration in whole seconds, 0 while in progress
func (s *Session) Duration() int64 {
	if s.DurationSeconds == nil {
		return 0
	}
	return *s.DurationSeconds
}

// DescriptionText returns the description or an empty string
func (s *Session) DescriptionText() string {
	if s.Description == nil {
		return ""
	}
	return *s.Description
}

// CategoryText returns the category name or an empty string
func (s *Session) CategoryText() string {
	if s.Category == nil {
		return ""
	}
	return *s.Category
}

// Finish sets the end instant together with its duration so the pair stays consistent
func (s *Session) Finish(end time.Time, durationSeconds int64) {
	s.EndTime = &end
	s.DurationSeconds = &durationSeconds
}

// StringPtr returns nil for an empty value, otherwise a pointer to it
func StringPtr(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}
