package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "tresoria/internal/errors"
	"tresoria/internal/models"
)

// defaultPalette provides the starting color for categories created inline
// from the transaction editor, which only supplies a name.
var defaultPalette = []string{
	"#3b82f6", "#ef4444", "#22c55e", "#f59e0b",
	"#8b5cf6", "#14b8a6", "#ec4899", "#6b7280",
}

// categoryService handles category-related business logic.
type categoryService struct {
	db *gorm.DB
}

// NewCategoryService creates a new CategoryServicer.
func NewCategoryService(db *gorm.DB) CategoryServicer {
	return &categoryService{db: db}
}

// CreateCategory creates a new category for a company. The color is assigned
// from the default palette; it can be changed later through UpdateCategory.
func (s *categoryService) CreateCategory(companyID, name string) (*models.Category, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category name is required")
	}
	if companyID == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "company id is required")
	}

	// Names are the user-facing identity of a category, so duplicates within
	// a company are rejected as a validation error.
	var count int64
	if err := s.db.Model(&models.Category{}).
		Where("company_id = ? AND name = ?", companyID, name).
		Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return nil, apperrors.ErrDuplicateCategory
	}

	var existing int64
	if err := s.db.Model(&models.Category{}).
		Where("company_id = ?", companyID).
		Count(&existing).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	category := &models.Category{
		CompanyID: companyID,
		Name:      name,
		Color:     defaultPalette[existing%int64(len(defaultPalette))],
	}
	if err := s.db.Create(category).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return category, nil
}

// GetCompanyCategories retrieves all categories. An empty company id is
// unscoped, matching the contract's parameterless list call.
func (s *categoryService) GetCompanyCategories(companyID string) ([]models.Category, error) {
	q := s.db.Order("created_at ASC")
	if companyID != "" {
		q = q.Where("company_id = ?", companyID)
	}

	var categories []models.Category
	if err := q.Find(&categories).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return categories, nil
}

// GetCategoryByID retrieves a category by ID.
func (s *categoryService) GetCategoryByID(id string) (*models.Category, error) {
	var category models.Category
	if err := s.db.Where("id = ?", id).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &category, nil
}

// UpdateCategory updates the name and color of an existing category.
func (s *categoryService) UpdateCategory(id, name, color string) (*models.Category, error) {
	category, err := s.GetCategoryByID(id)
	if err != nil {
		return nil, err
	}

	if name != "" && name != category.Name {
		var count int64
		if err := s.db.Model(&models.Category{}).
			Where("company_id = ? AND name = ? AND id <> ?", category.CompanyID, name, id).
			Count(&count).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if count > 0 {
			return nil, apperrors.ErrDuplicateCategory
		}
	}

	updates := make(map[string]interface{})
	if name != "" {
		updates["name"] = name
	}
	if color != "" {
		updates["color"] = color
	}
	if len(updates) > 0 {
		if err := s.db.Model(category).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}
	return category, nil
}
