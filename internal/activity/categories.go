package activity

import (
	"context"
	"strings"

	"github.com/balkashynov/clockr/internal/models"
	"github.com/balkashynov/clockr/internal/validate"
)

// CreateCategory validates and stores a new category
func (s *Service) CreateCategory(ctx context.Context, name, color string) (*models.Category, error) {
	if err := validate.CategoryName(name); err != nil {
		return nil, err
	}
	color = strings.TrimSpace(color)
	if err := validate.Color(color); err != nil {
		return nil, err
	}

	category := &models.Category{
		Name:  strings.TrimSpace(name),
		Color: models.StringPtr(color),
	}
	if err := s.backend.CreateCategory(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// UpdateCategory renames or recolors a category. Sessions keep the old name.
func (s *Service) UpdateCategory(ctx context.Context, id uint, patch CategoryPatch) (*models.Category, error) {
	if patch.Name != nil {
		if err := validate.CategoryName(*patch.Name); err != nil {
			return nil, err
		}
	}
	if patch.Color != nil {
		if err := validate.Color(strings.TrimSpace(*patch.Color)); err != nil {
			return nil, err
		}
	}

	category, err := s.backend.GetCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.Name != nil {
		category.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Color != nil {
		category.Color = models.StringPtr(strings.TrimSpace(*patch.Color))
	}

	if err := s.backend.UpdateCategory(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// DeleteCategory removes a category without touching sessions
func (s *Service) DeleteCategory(ctx context.Context, id uint) error {
	return s.backend.DeleteCategory(ctx, id)
}

// ListCategories returns the owner's categories
func (s *Service) ListCategories(ctx context.Context) ([]models.Category, error) {
	return s.backend.ListCategories(ctx)
}
