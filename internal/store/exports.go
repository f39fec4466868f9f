package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/balkashynov/clockr/internal/models"
)

// SaveExport stores an uploaded export blob under a fresh random id
func (s *Store) SaveExport(ctx context.Context, ownerID uint, filename string, content []byte) (*models.Export, error) {
	export := models.Export{
		ID:       uuid.NewString(),
		OwnerID:  ownerID,
		Filename: filename,
		Content:  content,
	}
	if err := s.db.WithContext(ctx).Create(&export).Error; err != nil {
		return nil, err
	}
	return &export, nil
}

// GetExport loads an export by id. The id itself is the retrieval capability.
func (s *Store) GetExport(ctx context.Context, id string) (*models.Export, error) {
	var export models.Export
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&export).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &export, nil
}
