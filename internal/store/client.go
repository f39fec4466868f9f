package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/balkashynov/clockr/internal/models"
)

// Client is the store seen through one bearer token. Every call resolves the
// current user first, so data is always scoped to that owner.
type Client struct {
	store   *Store
	token   string
	baseURL string
}

// NewClient binds a store to a bearer token. baseURL prefixes export links.
func NewClient(s *Store, token, baseURL string) *Client {
	return &Client{
		store:   s,
		token:   token,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// CurrentUser returns the authenticated user or ErrAuthRequired
func (c *Client) CurrentUser(ctx context.Context) (*models.User, error) {
	if c.token == "" {
		return nil, ErrAuthRequired
	}
	user, err := c.store.UserForToken(ctx, c.token)
	if errors.Is(err, ErrNotFound) {
		return nil, ErrAuthRequired
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return user, nil
}

func (c *Client) ownerID(ctx context.Context) (uint, error) {
	user, err := c.CurrentUser(ctx)
	if err != nil {
		return 0, err
	}
	return user.ID, nil
}

// CreateSession stores a new session for the current user
func (c *Client) CreateSession(ctx context.Context, session *models.Session) error {
	ownerID, err := c.ownerID(ctx)
	if err != nil {
		return err
	}
	if err := c.store.CreateSession(ctx, ownerID, session); err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

// GetSession loads a session by its client-generated id
func (c *Client) GetSession(ctx context.Context, sessionID string) (*models.Session, error) {
	ownerID, err := c.ownerID(ctx)
	if err != nil {
		return nil, err
	}
	session, err := c.store.GetSession(ctx, ownerID, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get session %s: %w", sessionID, err)
	}
	return session, nil
}

// UpdateSession overwrites an existing session
func (c *Client) UpdateSession(ctx context.Context, session *models.Session) error {
	ownerID, err := c.ownerID(ctx)
	if err != nil {
		return err
	}
	if err := c.store.SaveSession(ctx, ownerID, session); err != nil {
		return fmt.Errorf("failed to update session %s: %w", session.SessionID, err)
	}
	return nil
}

// DeleteSession permanently removes a session
func (c *Client) DeleteSession(ctx context.Context, sessionID string) error {
	ownerID, err := c.ownerID(ctx)
	if err != nil {
		return err
	}
	if err := c.store.DeleteSession(ctx, ownerID, sessionID); err != nil {
		return fmt.Errorf("failed to delete session %s: %w", sessionID, err)
	}
	return nil
}

// ListSessions returns the current user's sessions, newest created first
func (c *Client) ListSessions(ctx context.Context) ([]models.Session, error) {
	ownerID, err := c.ownerID(ctx)
	if err != nil {
		return nil, err
	}
	sessions, err := c.store.ListSessions(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	return sessions, nil
}

// CreateCategory stores a new category for the current user
func (c *Client) CreateCategory(ctx context.Context, category *models.Category) error {
	ownerID, err := c.ownerID(ctx)
	if err != nil {
		return err
	}
	if err := c.store.CreateCategory(ctx, ownerID, category); err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}
	return nil
}

// GetCategory loads a category by row id
func (c *Client) GetCategory(ctx context.Context, id uint) (*models.Category, error) {
	ownerID, err := c.ownerID(ctx)
	if err != nil {
		return nil, err
	}
	category, err := c.store.GetCategory(ctx, ownerID, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get category #%d: %w", id, err)
	}
	return category, nil
}

// UpdateCategory overwrites an existing category
func (c *Client) UpdateCategory(ctx context.Context, category *models.Category) error {
	ownerID, err := c.ownerID(ctx)
	if err != nil {
		return err
	}
	if err := c.store.SaveCategory(ctx, ownerID, category); err != nil {
		return fmt.Errorf("failed to update category #%d: %w", category.ID, err)
	}
	return nil
}

// DeleteCategory removes a category
func (c *Client) DeleteCategory(ctx context.Context, id uint) error {
	ownerID, err := c.ownerID(ctx)
	if err != nil {
		return err
	}
	if err := c.store.DeleteCategory(ctx, ownerID, id); err != nil {
		return fmt.Errorf("failed to delete category #%d: %w", id, err)
	}
	return nil
}

// ListCategories returns the current user's categories
func (c *Client) ListCategories(ctx context.Context) ([]models.Category, error) {
	ownerID, err := c.ownerID(ctx)
	if err != nil {
		return nil, err
	}
	categories, err := c.store.ListCategories(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

// UploadExport stores a CSV blob and returns the URL it can be fetched from
func (c *Client) UploadExport(ctx context.Context, filename string, content []byte) (string, error) {
	ownerID, err := c.ownerID(ctx)
	if err != nil {
		return "", err
	}
	export, err := c.store.SaveExport(ctx, ownerID, filename, content)
	if err != nil {
		return "", fmt.Errorf("failed to upload export: %w", err)
	}
	return c.ExportURL(export.ID), nil
}

// ExportURL builds the retrieval URL for an export id
func (c *Client) ExportURL(id string) string {
	return fmt.Sprintf("%s/exports/%s", c.baseURL, id)
}
