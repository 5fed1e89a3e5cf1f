package service

import (
	"errors"
	"math"
	"strings"

	"github.com/ecofinds/ecofinds-backend/internal/app/model"
	"github.com/ecofinds/ecofinds-backend/internal/app/repository"
	apperrors "github.com/ecofinds/ecofinds-backend/internal/errors"
	"github.com/ecofinds/ecofinds-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrProductNotFound = apperrors.NotFound(apperrors.ProductNotFound, "product not found")
	ErrNotProductOwner = apperrors.Validation(apperrors.AuthzOwnerOnly, "you do not own this product")
	ErrInvalidPrice    = apperrors.Validation(apperrors.ProductInvalidPrice, "price must be non-negative")
	ErrEmptyTitle      = apperrors.Validation(apperrors.ValidationRequired, "title is required")
)

type ProductInput struct {
	Title       string
	Description string
	Price       float64
	Category    string
	Image       string
}

type ProductUpdate struct {
	Title       *string
	Description *string
	Price       *float64
	Category    *string
	Image       *string
}

type ProductService interface {
	CreateProduct(sellerID uint, input ProductInput) (*model.Product, error)
	GetProducts(filter repository.ProductFilter) ([]model.Product, error)
	GetProductByID(id uint) (*model.Product, error)
	GetProductsBySeller(sellerID uint) ([]model.Product, error)
	UpdateProduct(id, sellerID uint, update ProductUpdate) (*model.Product, error)
	DeleteProduct(id, sellerID uint) error
}

type productService struct {
	productRepo repository.ProductRepository
}

func NewProductService(productRepo repository.ProductRepository) ProductService {
	return &productService{productRepo: productRepo}
}

// roundMoney normalizes amounts to two decimal places before they are stored.
func roundMoney(v float64) float64 {
	return math.Round(v*100) / 100
}

func (s *productService) CreateProduct(sellerID uint, input ProductInput) (*model.Product, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, ErrEmptyTitle
	}
	if input.Price < 0 {
		return nil, ErrInvalidPrice
	}

	product := &model.Product{
		UserID:      sellerID,
		Title:       strings.TrimSpace(input.Title),
		Description: input.Description,
		Price:       roundMoney(input.Price),
		Category:    input.Category,
		Image:       input.Image,
	}

	if err := s.productRepo.Create(product); err != nil {
		return nil, apperrors.Classify(err, "create product")
	}

	logger.Info("Product created", map[string]interface{}{
		"product_id": product.ID,
		"seller_id":  sellerID,
		"title":      product.Title,
	})

	return product, nil
}

func (s *productService) GetProducts(filter repository.ProductFilter) ([]model.Product, error) {
	products, err := s.productRepo.FindWithFilter(filter)
	if err != nil {
		return nil, apperrors.Classify(err, "list products")
	}
	return products, nil
}

func (s *productService) GetProductByID(id uint) (*model.Product, error) {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, apperrors.Classify(err, "fetch product")
	}
	return product, nil
}

func (s *productService) GetProductsBySeller(sellerID uint) ([]model.Product, error) {
	products, err := s.productRepo.FindBySellerID(sellerID)
	if err != nil {
		return nil, apperrors.Classify(err, "list seller products")
	}
	return products, nil
}

func (s *productService) UpdateProduct(id, sellerID uint, update ProductUpdate) (*model.Product, error) {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, apperrors.Classify(err, "update product")
	}

	if product.UserID != sellerID {
		logger.Warn("Product update rejected: not owner", map[string]interface{}{
			"product_id": id,
			"seller_id":  sellerID,
			"owner_id":   product.UserID,
		})
		return nil, ErrNotProductOwner
	}

	if update.Title != nil {
		if strings.TrimSpace(*update.Title) == "" {
			return nil, ErrEmptyTitle
		}
		product.Title = strings.TrimSpace(*update.Title)
	}
	if update.Description != nil {
		product.Description = *update.Description
	}
	if update.Price != nil {
		if *update.Price < 0 {
			return nil, ErrInvalidPrice
		}
		product.Price = roundMoney(*update.Price)
	}
	if update.Category != nil {
		product.Category = *update.Category
	}
	if update.Image != nil {
		product.Image = *update.Image
	}

	if err := s.productRepo.Update(product); err != nil {
		return nil, apperrors.Classify(err, "update product")
	}

	logger.Info("Product updated", map[string]interface{}{
		"product_id": id,
		"seller_id":  sellerID,
	})

	return product, nil
}

func (s *productService) DeleteProduct(id, sellerID uint) error {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return apperrors.Classify(err, "delete product")
	}

	if product.UserID != sellerID {
		return ErrNotProductOwner
	}

	if err := s.productRepo.Delete(id); err != nil {
		return apperrors.Classify(err, "delete product")
	}

	logger.Info("Product deleted", map[string]interface{}{
		"product_id": id,
		"seller_id":  sellerID,
	})

	return nil
}
