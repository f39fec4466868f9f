package tui

import (
	"github.com/balkashynov/clockr/internal/models"
	"github.com/balkashynov/clockr/internal/stats"
)

// tickMsg is sent by the timer's tick hook
type tickMsg struct{}

// shimmerTickMsg advances the selected-row shimmer
type shimmerTickMsg struct{}

type sessionsLoadedMsg struct {
	sessions []models.Session
	err      error
}

type summaryLoadedMsg struct {
	summary stats.Summary
	err     error
}

type categoriesLoadedMsg struct {
	categories []models.Category
	err        error
}

type timerStartedMsg struct {
	err error
}

type metadataSavedMsg struct {
	session *models.Session
	err     error
}

// statusMsg reports the outcome of an action on the status line. reload
// refreshes the data tabs afterwards.
type statusMsg struct {
	text   string
	err    error
	reload bool
}

type categorySavedMsg struct {
	category *models.Category
	err      error
}
