package store

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/balkashynov/clockr/internal/models"
)

// CreateSession inserts a session owned by ownerID
func (s *Store) CreateSession(ctx context.Context, ownerID uint, session *models.Session) error {
	session.ID = 0
	session.OwnerID = ownerID
	return s.db.WithContext(ctx).Create(session).Error
}

// GetSession finds a session by its client-generated id
func (s *Store) GetSession(ctx context.Context, ownerID uint, sessionID string) (*models.Session, error) {
	var session models.Session
	err := s.db.WithContext(ctx).
		Where("owner_id = ? AND session_id = ?", ownerID, sessionID).
		First(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// SaveSession overwrites every mutable column of an existing session
func (s *Store) SaveSession(ctx context.Context, ownerID uint, session *models.Session) error {
	existing, err := s.GetSession(ctx, ownerID, session.SessionID)
	if err != nil {
		return err
	}

	session.ID = existing.ID
	session.OwnerID = ownerID
	session.CreatedAt = existing.CreatedAt
	return s.db.WithContext(ctx).Save(session).Error
}

// DeleteSession permanently removes a session
func (s *Store) DeleteSession(ctx context.Context, ownerID uint, sessionID string) error {
	result := s.db.WithContext(ctx).
		Where("owner_id = ? AND session_id = ?", ownerID, sessionID).
		Delete(&models.Session{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListSessions returns all sessions of an owner, newest created first
func (s *Store) ListSessions(ctx context.Context, ownerID uint) ([]models.Session, error) {
	var sessions []models.Session
	err := s.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&sessions).Error
	if err != nil {
		return nil, err
	}
	return sessions, nil
}
