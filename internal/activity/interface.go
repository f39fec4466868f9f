package activity

import (
	"context"

	"github.com/balkashynov/clockr/internal/models"
)

// Backend is the persistence collaborator. Every call is implicitly scoped
// to the current authenticated owner.
type Backend interface {
	// CurrentUser returns the authenticated user or an auth-required error
	CurrentUser(ctx context.Context) (*models.User, error)

	CreateSession(ctx context.Context, session *models.Session) error
	GetSession(ctx context.Context, sessionID string) (*models.Session, error)
	UpdateSession(ctx context.Context, session *models.Session) error
	DeleteSession(ctx context.Context, sessionID string) error
	// ListSessions returns sessions newest created first
	ListSessions(ctx context.Context) ([]models.Session, error)

	CreateCategory(ctx context.Context, category *models.Category) error
	GetCategory(ctx context.Context, id uint) (*models.Category, error)
	UpdateCategory(ctx context.Context, category *models.Category) error
	DeleteCategory(ctx context.Context, id uint) error
	ListCategories(ctx context.Context) ([]models.Category, error)
}

// Uploader stores an export blob and returns a retrieval URL
type Uploader interface {
	UploadExport(ctx context.Context, filename string, content []byte) (string, error)
}
