package service

import (
	"errors"
	"fmt"

	"github.com/ecofinds/ecofinds-backend/internal/app/model"
	"github.com/ecofinds/ecofinds-backend/internal/app/repository"
	apperrors "github.com/ecofinds/ecofinds-backend/internal/errors"
	"github.com/ecofinds/ecofinds-backend/pkg/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrOrderNotFound     = apperrors.NotFound(apperrors.OrderNotFound, "order not found")
	ErrEmptyCart         = apperrors.Validation(apperrors.CartEmpty, "cart is empty")
	ErrInvalidStatus     = apperrors.Validation(apperrors.OrderInvalidStatus, "unknown order status")
	ErrInvalidTransition = apperrors.Conflict(apperrors.OrderInvalidTransition, "order status transition not allowed")
	ErrNotOrderOwner     = apperrors.Validation(apperrors.AuthzOwnerOnly, "you do not own this order")
)

// OrderNotifier receives order status change events. Implementations must
// not block; a nil notifier disables push.
type OrderNotifier interface {
	NotifyOrderStatus(userID, orderID uint, status model.OrderStatus)
}

type OrderService interface {
	Checkout(userID uint, clearCart bool) (*model.Order, error)
	GetUserOrders(userID uint) ([]model.Order, error)
	GetOrderByID(userID, orderID uint) (*model.Order, error)
	UpdateOrderStatus(userID, orderID uint, status model.OrderStatus) (*model.Order, error)
}

type orderService struct {
	orderRepo repository.OrderRepository
	db        *gorm.DB
	notifier  OrderNotifier
}

func NewOrderService(
	orderRepo repository.OrderRepository,
	db *gorm.DB,
	notifier OrderNotifier,
) OrderService {
	return &orderService{
		orderRepo: orderRepo,
		db:        db,
		notifier:  notifier,
	}
}

// Checkout converts the user's cart into an order inside a single
// transaction. The cart rows are locked on read, and each product row is
// locked while its current price is snapshotted into the order item, so a
// concurrent price change cannot split one order across two price versions.
// When clearCart is true the snapshotted cart rows are removed in the same
// transaction.
func (s *orderService) Checkout(userID uint, clearCart bool) (*model.Order, error) {
	logger.Info("Starting checkout", map[string]interface{}{
		"user_id":    userID,
		"clear_cart": clearCart,
	})

	tx := s.db.Begin()
	if tx.Error != nil {
		return nil, apperrors.Classify(tx.Error, "checkout")
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			logger.Error("Panic during checkout, rolling back", fmt.Errorf("panic: %v", r), map[string]interface{}{
				"user_id": userID,
			})
		}
	}()

	// Lock the cart rows first so two checkouts of the same cart
	// serialize on them; the loser re-reads an empty cart and aborts
	// instead of committing a duplicate order.
	var cartItems []model.CartItem
	if err := tx.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ?", userID).
		Find(&cartItems).Error; err != nil {
		tx.Rollback()
		logger.Error("Failed to fetch cart items", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, apperrors.Classify(err, "checkout")
	}

	if len(cartItems) == 0 {
		tx.Rollback()
		logger.Warn("Checkout rejected: cart is empty", map[string]interface{}{
			"user_id": userID,
		})
		return nil, ErrEmptyCart
	}

	var (
		totalAmount float64
		orderItems  []model.OrderItem
	)

	for _, cartItem := range cartItems {
		var product model.Product
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&product, cartItem.ProductID).Error; err != nil {
			tx.Rollback()
			if errors.Is(err, gorm.ErrRecordNotFound) {
				logger.Warn("Product disappeared during checkout", map[string]interface{}{
					"user_id":    userID,
					"product_id": cartItem.ProductID,
				})
				return nil, ErrProductNotFound
			}
			logger.Error("Failed to lock product during checkout", err, map[string]interface{}{
				"user_id":    userID,
				"product_id": cartItem.ProductID,
			})
			return nil, apperrors.Classify(err, "checkout")
		}

		orderItems = append(orderItems, model.OrderItem{
			ProductID: cartItem.ProductID,
			Quantity:  cartItem.Quantity,
			Price:     product.Price,
		})
		totalAmount += product.Price * float64(cartItem.Quantity)
	}

	order := &model.Order{
		UserID:      userID,
		TotalAmount: roundMoney(totalAmount),
		Status:      model.OrderStatusPending,
		OrderItems:  orderItems,
	}

	if err := tx.Create(order).Error; err != nil {
		tx.Rollback()
		logger.Error("Failed to create order", err, map[string]interface{}{
			"user_id":      userID,
			"total_amount": totalAmount,
		})
		return nil, apperrors.Classify(err, "checkout")
	}

	if clearCart {
		// Delete exactly the rows this order was built from; a line the
		// user adds while the order is committing stays in the cart.
		cartItemIDs := make([]uint, len(cartItems))
		for i, cartItem := range cartItems {
			cartItemIDs[i] = cartItem.ID
		}
		if err := tx.Where("id IN ?", cartItemIDs).Delete(&model.CartItem{}).Error; err != nil {
			tx.Rollback()
			logger.Error("Failed to clear cart during checkout", err, map[string]interface{}{
				"user_id": userID,
			})
			return nil, apperrors.Classify(err, "checkout")
		}
	}

	if err := tx.Commit().Error; err != nil {
		logger.Error("Failed to commit checkout transaction", err, map[string]interface{}{
			"user_id":  userID,
			"order_id": order.ID,
		})
		return nil, apperrors.Classify(err, "checkout")
	}

	logger.Info("Checkout completed", map[string]interface{}{
		"user_id":      userID,
		"order_id":     order.ID,
		"total_amount": order.TotalAmount,
		"item_count":   len(orderItems),
	})

	created, err := s.orderRepo.FindByID(order.ID)
	if err != nil {
		return nil, apperrors.Classify(err, "checkout")
	}
	return created, nil
}

func (s *orderService) GetUserOrders(userID uint) ([]model.Order, error) {
	orders, err := s.orderRepo.FindByUserID(userID)
	if err != nil {
		logger.Error("Failed to fetch user orders", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, apperrors.Classify(err, "fetch orders")
	}
	return orders, nil
}

func (s *orderService) GetOrderByID(userID, orderID uint) (*model.Order, error) {
	order, err := s.orderRepo.FindByID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, apperrors.Classify(err, "fetch order")
	}

	if order.UserID != userID {
		logger.Warn("Order access rejected: not owner", map[string]interface{}{
			"order_id": orderID,
			"user_id":  userID,
			"owner_id": order.UserID,
		})
		return nil, ErrNotOrderOwner
	}

	return order, nil
}

// UpdateOrderStatus applies a status change after checking ownership and the
// order lifecycle. Terminal states accept no further changes.
func (s *orderService) UpdateOrderStatus(userID, orderID uint, status model.OrderStatus) (*model.Order, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	order, err := s.orderRepo.FindByID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, apperrors.Classify(err, "update order status")
	}

	if order.UserID != userID {
		logger.Warn("Order status update rejected: not owner", map[string]interface{}{
			"order_id": orderID,
			"user_id":  userID,
			"owner_id": order.UserID,
		})
		return nil, ErrNotOrderOwner
	}

	if !order.Status.CanTransitionTo(status) {
		logger.Warn("Order status transition rejected", map[string]interface{}{
			"order_id": orderID,
			"from":     order.Status,
			"to":       status,
		})
		return nil, ErrInvalidTransition
	}

	if err := s.orderRepo.UpdateStatus(orderID, status); err != nil {
		return nil, apperrors.Classify(err, "update order status")
	}
	order.Status = status

	logger.Info("Order status updated", map[string]interface{}{
		"order_id": orderID,
		"status":   status,
	})

	if s.notifier != nil {
		s.notifier.NotifyOrderStatus(order.UserID, order.ID, status)
	}

	return order, nil
}
