package service

import (
	"errors"

	"github.com/ecofinds/ecofinds-backend/internal/app/model"
	"github.com/ecofinds/ecofinds-backend/internal/app/repository"
	apperrors "github.com/ecofinds/ecofinds-backend/internal/errors"
	"github.com/ecofinds/ecofinds-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrWishlistItemExists   = apperrors.Conflict(apperrors.WishlistItemExists, "product already in wishlist")
	ErrWishlistItemNotFound = apperrors.NotFound(apperrors.WishlistItemNotFound, "wishlist item not found")
)

type WishlistService interface {
	AddToWishlist(userID, productID uint) (*model.WishlistItem, error)
	GetWishlist(userID uint) ([]model.WishlistItem, error)
	RemoveFromWishlist(userID, productID uint) error
}

type wishlistService struct {
	wishlistRepo repository.WishlistRepository
	productRepo  repository.ProductRepository
}

func NewWishlistService(
	wishlistRepo repository.WishlistRepository,
	productRepo repository.ProductRepository,
) WishlistService {
	return &wishlistService{wishlistRepo: wishlistRepo, productRepo: productRepo}
}

func (s *wishlistService) AddToWishlist(userID, productID uint) (*model.WishlistItem, error) {
	if _, err := s.productRepo.FindByID(productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, apperrors.Classify(err, "add to wishlist")
	}

	if _, err := s.wishlistRepo.FindByUserAndProduct(userID, productID); err == nil {
		return nil, ErrWishlistItemExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.Classify(err, "add to wishlist")
	}

	item := &model.WishlistItem{
		UserID:    userID,
		ProductID: productID,
	}
	if err := s.wishlistRepo.Create(item); err != nil {
		return nil, apperrors.Classify(err, "add to wishlist")
	}

	logger.Debug("Wishlist item created", map[string]interface{}{
		"user_id":    userID,
		"product_id": productID,
	})

	return item, nil
}

func (s *wishlistService) GetWishlist(userID uint) ([]model.WishlistItem, error) {
	items, err := s.wishlistRepo.FindByUserID(userID)
	if err != nil {
		return nil, apperrors.Classify(err, "fetch wishlist")
	}
	return items, nil
}

func (s *wishlistService) RemoveFromWishlist(userID, productID uint) error {
	if _, err := s.wishlistRepo.FindByUserAndProduct(userID, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrWishlistItemNotFound
		}
		return apperrors.Classify(err, "remove from wishlist")
	}

	if err := s.wishlistRepo.Delete(userID, productID); err != nil {
		return apperrors.Classify(err, "remove from wishlist")
	}

	return nil
}
