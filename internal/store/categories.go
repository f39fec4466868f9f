package store

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/balkashynov/clockr/internal/models"
)

// CreateCategory inserts a category owned by ownerID
func (s *Store) CreateCategory(ctx context.Context, ownerID uint, category *models.Category) error {
	category.ID = 0
	category.OwnerID = ownerID
	return s.db.WithContext(ctx).Create(category).Error
}

// GetCategory finds a category by row id
func (s *Store) GetCategory(ctx context.Context, ownerID, id uint) (*models.Category, error) {
	var category models.Category
	err := s.db.WithContext(ctx).
		Where("owner_id = ? AND id = ?", ownerID, id).
		First(&category).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// SaveCategory overwrites name and color of an existing category
func (s *Store) SaveCategory(ctx context.Context, ownerID uint, category *models.Category) error {
	existing, err := s.GetCategory(ctx, ownerID, category.ID)
	if err != nil {
		return err
	}

	category.OwnerID = ownerID
	category.CreatedAt = existing.CreatedAt
	return s.db.WithContext(ctx).Save(category).Error
}

// DeleteCategory removes a category. Sessions carrying its name are left alone.
func (s *Store) DeleteCategory(ctx context.Context, ownerID, id uint) error {
	result := s.db.WithContext(ctx).
		Where("owner_id = ? AND id = ?", ownerID, id).
		Delete(&models.Category{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListCategories returns the owner's categories ordered by name
func (s *Store) ListCategories(ctx context.Context, ownerID uint) ([]models.Category, error) {
	var categories []models.Category
	err := s.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("name ASC").
		Find(&categories).Error
	if err != nil {
		return nil, err
	}
	return categories, nil
}
