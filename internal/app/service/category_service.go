package service

import (
	"errors"

	"github.com/ecofinds/ecofinds-backend/internal/app/model"
	"github.com/ecofinds/ecofinds-backend/internal/app/repository"
	apperrors "github.com/ecofinds/ecofinds-backend/internal/errors"
	"gorm.io/gorm"
)

var ErrCategoryNotFound = apperrors.NotFound(apperrors.ResourceNotFound, "category not found")

type CategoryService interface {
	GetCategories() ([]model.Category, error)
	GetCategoryByName(name string) (*model.Category, error)
}

type categoryService struct {
	categoryRepo repository.CategoryRepository
}

func NewCategoryService(categoryRepo repository.CategoryRepository) CategoryService {
	return &categoryService{categoryRepo: categoryRepo}
}

func (s *categoryService) GetCategories() ([]model.Category, error) {
	categories, err := s.categoryRepo.FindAll()
	if err != nil {
		return nil, apperrors.Classify(err, "fetch categories")
	}
	return categories, nil
}

func (s *categoryService) GetCategoryByName(name string) (*model.Category, error) {
	category, err := s.categoryRepo.FindByName(name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, apperrors.Classify(err, "fetch category")
	}
	return category, nil
}
