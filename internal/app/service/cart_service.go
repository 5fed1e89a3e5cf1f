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
	ErrCartItemNotFound = apperrors.NotFound(apperrors.CartItemNotFound, "cart item not found")
	ErrInvalidQuantity  = apperrors.Validation(apperrors.CartInvalidQuantity, "quantity must be at least 1")
)

type CartService interface {
	AddToCart(userID, productID uint, quantity int) (*model.CartItem, error)
	GetCart(userID uint) ([]model.CartItem, float64, error)
	SetQuantity(userID, productID uint, quantity int) (*model.CartItem, error)
	RemoveFromCart(userID, productID uint) error
	ClearCart(userID uint) error
}

type cartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
}

func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository) CartService {
	return &cartService{cartRepo: cartRepo, productRepo: productRepo}
}

// AddToCart inserts a line for the (user, product) pair, or bumps the
// quantity when the pair already has one.
func (s *cartService) AddToCart(userID, productID uint, quantity int) (*model.CartItem, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	if _, err := s.productRepo.FindByID(productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, apperrors.Classify(err, "add to cart")
	}

	item, err := s.cartRepo.FindByUserAndProduct(userID, productID)
	if err == nil {
		item.Quantity += quantity
		if err := s.cartRepo.Update(item); err != nil {
			return nil, apperrors.Classify(err, "add to cart")
		}
		logger.Debug("Cart quantity incremented", map[string]interface{}{
			"user_id":    userID,
			"product_id": productID,
			"quantity":   item.Quantity,
		})
		return item, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.Classify(err, "add to cart")
	}

	item = &model.CartItem{
		UserID:    userID,
		ProductID: productID,
		Quantity:  quantity,
	}
	if err := s.cartRepo.Create(item); err != nil {
		return nil, apperrors.Classify(err, "add to cart")
	}

	logger.Debug("Cart item created", map[string]interface{}{
		"user_id":    userID,
		"product_id": productID,
		"quantity":   quantity,
	})

	return item, nil
}

// GetCart returns the cart lines with products preloaded and the running
// subtotal at current listing prices.
func (s *cartService) GetCart(userID uint) ([]model.CartItem, float64, error) {
	items, err := s.cartRepo.FindByUserID(userID)
	if err != nil {
		return nil, 0, apperrors.Classify(err, "fetch cart")
	}

	var subtotal float64
	for _, item := range items {
		subtotal += item.Product.Price * float64(item.Quantity)
	}

	return items, roundMoney(subtotal), nil
}

func (s *cartService) SetQuantity(userID, productID uint, quantity int) (*model.CartItem, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	item, err := s.cartRepo.FindByUserAndProduct(userID, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCartItemNotFound
		}
		return nil, apperrors.Classify(err, "update cart quantity")
	}

	item.Quantity = quantity
	if err := s.cartRepo.Update(item); err != nil {
		return nil, apperrors.Classify(err, "update cart quantity")
	}

	return item, nil
}

func (s *cartService) RemoveFromCart(userID, productID uint) error {
	if _, err := s.cartRepo.FindByUserAndProduct(userID, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCartItemNotFound
		}
		return apperrors.Classify(err, "remove from cart")
	}

	if err := s.cartRepo.DeleteByUserAndProduct(userID, productID); err != nil {
		return apperrors.Classify(err, "remove from cart")
	}

	return nil
}

func (s *cartService) ClearCart(userID uint) error {
	if err := s.cartRepo.DeleteByUserID(userID); err != nil {
		return apperrors.Classify(err, "clear cart")
	}

	logger.Debug("Cart cleared", map[string]interface{}{
		"user_id": userID,
	})

	return nil
}
