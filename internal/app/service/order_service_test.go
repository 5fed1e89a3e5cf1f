package service

import (
	"testing"
	"time"

	"github.com/ecofinds/ecofinds-backend/internal/app/model"
	"github.com/ecofinds/ecofinds-backend/internal/app/repository"
	"github.com/ecofinds/ecofinds-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupOrderServiceTest(t *testing.T) (OrderService, *gorm.DB, *model.User, *model.Product) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	orderRepo := repository.NewOrderRepository(testDB)
	orderService := NewOrderService(orderRepo, testDB, nil)

	user := &model.User{
		Username:     "buyer",
		Email:        "buyer@example.com",
		PasswordHash: "hash",
	}
	testDB.Create(user)

	seller := &model.User{
		Username:     "seller",
		Email:        "seller@example.com",
		PasswordHash: "hash",
	}
	testDB.Create(seller)

	product := &model.Product{
		UserID:   seller.ID,
		Title:    "Vintage Lamp",
		Price:    45.50,
		Category: "Furniture",
	}
	testDB.Create(product)

	return orderService, testDB, user, product
}

func TestOrderService_Checkout_Success(t *testing.T) {
	orderService, testDB, user, product := setupOrderServiceTest(t)

	cartRepo := repository.NewCartRepository(testDB)
	cartRepo.Create(&model.CartItem{
		UserID:    user.ID,
		ProductID: product.ID,
		Quantity:  2,
	})

	order, err := orderService.Checkout(user.ID, true)
	require.NoError(t, err)
	assert.NotZero(t, order.ID)
	assert.Equal(t, user.ID, order.UserID)
	assert.Equal(t, 91.00, order.TotalAmount)
	assert.Equal(t, model.OrderStatusPending, order.Status)
	require.Len(t, order.OrderItems, 1)
	assert.Equal(t, product.Price, order.OrderItems[0].Price)
	assert.Equal(t, 2, order.OrderItems[0].Quantity)

	// Cart is cleared in the same transaction
	items, _ := cartRepo.FindByUserID(user.ID)
	assert.Len(t, items, 0)
}

func TestOrderService_Checkout_KeepCart(t *testing.T) {
	orderService, testDB, user, product := setupOrderServiceTest(t)

	cartRepo := repository.NewCartRepository(testDB)
	cartRepo.Create(&model.CartItem{
		UserID:    user.ID,
		ProductID: product.ID,
		Quantity:  1,
	})

	_, err := orderService.Checkout(user.ID, false)
	require.NoError(t, err)

	items, _ := cartRepo.FindByUserID(user.ID)
	assert.Len(t, items, 1)
}

func TestOrderService_Checkout_KeepsLineAddedWhileCommitting(t *testing.T) {
	orderService, testDB, user, product := setupOrderServiceTest(t)

	second := &model.Product{
		UserID:   product.UserID,
		Title:    "Desk Fan",
		Price:    12.00,
		Category: "Appliances",
	}
	testDB.Create(second)

	cartRepo := repository.NewCartRepository(testDB)
	cartRepo.Create(&model.CartItem{
		UserID:    user.ID,
		ProductID: product.ID,
		Quantity:  1,
	})

	// Another request adds a cart line after the checkout has already
	// snapshotted the cart. Clearing the cart must only remove the rows
	// the order was built from, not the new line.
	injected := false
	err := testDB.Callback().Create().Before("gorm:create").Register("test_cart_add_during_checkout", func(d *gorm.DB) {
		if _, ok := d.Statement.Model.(*model.Order); !ok || injected {
			return
		}
		injected = true
		now := time.Now()
		_, execErr := d.Statement.ConnPool.ExecContext(d.Statement.Context,
			"INSERT INTO cart_items (user_id, product_id, quantity, created_at, updated_at) VALUES (?, ?, ?, ?, ?)",
			user.ID, second.ID, 3, now, now)
		require.NoError(t, execErr)
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		testDB.Callback().Create().Remove("test_cart_add_during_checkout")
	})

	order, err := orderService.Checkout(user.ID, true)
	require.NoError(t, err)
	require.True(t, injected)
	require.Len(t, order.OrderItems, 1)
	assert.Equal(t, product.ID, order.OrderItems[0].ProductID)

	items, err := cartRepo.FindByUserID(user.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, second.ID, items[0].ProductID)
	assert.Equal(t, 3, items[0].Quantity)
}

func TestOrderService_Checkout_EmptyCart(t *testing.T) {
	orderService, _, user, _ := setupOrderServiceTest(t)

	order, err := orderService.Checkout(user.ID, true)
	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Nil(t, order)
}

func TestOrderService_Checkout_SnapshotSurvivesPriceChange(t *testing.T) {
	orderService, testDB, user, product := setupOrderServiceTest(t)

	cartRepo := repository.NewCartRepository(testDB)
	cartRepo.Create(&model.CartItem{
		UserID:    user.ID,
		ProductID: product.ID,
		Quantity:  1,
	})

	order, err := orderService.Checkout(user.ID, true)
	require.NoError(t, err)

	// Raise the listing price after purchase
	testDB.Model(&model.Product{}).Where("id = ?", product.ID).Update("price", 99.99)

	fetched, err := orderService.GetOrderByID(user.ID, order.ID)
	require.NoError(t, err)
	require.Len(t, fetched.OrderItems, 1)
	assert.Equal(t, 45.50, fetched.OrderItems[0].Price)
	assert.Equal(t, 45.50, fetched.TotalAmount)
}

func TestOrderService_Checkout_MultipleItems(t *testing.T) {
	orderService, testDB, user, product := setupOrderServiceTest(t)

	second := &model.Product{
		UserID:   product.UserID,
		Title:    "Old Books",
		Price:    10.25,
		Category: "Books",
	}
	testDB.Create(second)

	cartRepo := repository.NewCartRepository(testDB)
	cartRepo.Create(&model.CartItem{UserID: user.ID, ProductID: product.ID, Quantity: 1})
	cartRepo.Create(&model.CartItem{UserID: user.ID, ProductID: second.ID, Quantity: 3})

	order, err := orderService.Checkout(user.ID, true)
	require.NoError(t, err)
	assert.Len(t, order.OrderItems, 2)
	assert.Equal(t, 76.25, order.TotalAmount)
}

func TestOrderService_Checkout_RollsBackWhenProductVanishes(t *testing.T) {
	orderService, testDB, user, product := setupOrderServiceTest(t)

	cartRepo := repository.NewCartRepository(testDB)
	cartRepo.Create(&model.CartItem{UserID: user.ID, ProductID: product.ID, Quantity: 1})

	// Orphan cart line pointing at a listing that no longer exists. The FK
	// check is suspended for the insert only; checkout must hit the missing
	// row and roll the whole transaction back.
	testDB.Exec("PRAGMA foreign_keys = OFF")
	testDB.Exec(
		"INSERT INTO cart_items (user_id, product_id, quantity, created_at, updated_at) VALUES (?, ?, 1, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)",
		user.ID, 99999,
	)
	testDB.Exec("PRAGMA foreign_keys = ON")

	order, err := orderService.Checkout(user.ID, true)
	assert.ErrorIs(t, err, ErrProductNotFound)
	assert.Nil(t, order)

	var orderCount, itemCount, cartCount int64
	testDB.Model(&model.Order{}).Count(&orderCount)
	testDB.Model(&model.OrderItem{}).Count(&itemCount)
	testDB.Model(&model.CartItem{}).Count(&cartCount)
	assert.Zero(t, orderCount)
	assert.Zero(t, itemCount)
	assert.EqualValues(t, 2, cartCount, "cart must be untouched after rollback")
}

func TestOrderService_PurchaseLifecycle(t *testing.T) {
	orderService, testDB, buyer, _ := setupOrderServiceTest(t)

	seller := &model.User{
		Username:     "chair_seller",
		Email:        "chair_seller@example.com",
		PasswordHash: "hash",
	}
	testDB.Create(seller)
	chair := &model.Product{
		UserID:   seller.ID,
		Title:    "Chair",
		Price:    25.00,
		Category: "Furniture",
	}
	testDB.Create(chair)

	cartRepo := repository.NewCartRepository(testDB)
	cartRepo.Create(&model.CartItem{UserID: buyer.ID, ProductID: chair.ID, Quantity: 2})

	order, err := orderService.Checkout(buyer.ID, true)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusPending, order.Status)
	assert.Equal(t, 50.00, order.TotalAmount)
	require.Len(t, order.OrderItems, 1)
	assert.Equal(t, 25.00, order.OrderItems[0].Price)
	assert.Equal(t, 2, order.OrderItems[0].Quantity)

	items, _ := cartRepo.FindByUserID(buyer.ID)
	assert.Len(t, items, 0)

	// Later price change never touches the purchase record
	testDB.Model(&model.Product{}).Where("id = ?", chair.ID).Update("price", 30.00)
	fetched, err := orderService.GetOrderByID(buyer.ID, order.ID)
	require.NoError(t, err)
	assert.Equal(t, 25.00, fetched.OrderItems[0].Price)

	// Delisting the chair destroys its order items and its sales row, but
	// the order header stays in the buyer's history.
	productRepo := repository.NewProductRepository(testDB)
	require.NoError(t, productRepo.Delete(chair.ID))

	var itemCount int64
	testDB.Model(&model.OrderItem{}).Where("product_id = ?", chair.ID).Count(&itemCount)
	assert.Zero(t, itemCount)

	summaryRepo := repository.NewSummaryRepository(testDB)
	_, err = summaryRepo.ProductSalesSummaryByProductID(chair.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	history, err := orderService.GetUserOrders(buyer.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Empty(t, history[0].OrderItems)
}

func TestOrderService_GetOrderByID_NotOwner(t *testing.T) {
	orderService, testDB, user, product := setupOrderServiceTest(t)

	cartRepo := repository.NewCartRepository(testDB)
	cartRepo.Create(&model.CartItem{UserID: user.ID, ProductID: product.ID, Quantity: 1})

	order, err := orderService.Checkout(user.ID, true)
	require.NoError(t, err)

	other := &model.User{
		Username:     "stranger",
		Email:        "stranger@example.com",
		PasswordHash: "hash",
	}
	testDB.Create(other)

	fetched, err := orderService.GetOrderByID(other.ID, order.ID)
	assert.ErrorIs(t, err, ErrNotOrderOwner)
	assert.Nil(t, fetched)
}

func TestOrderService_GetUserOrders(t *testing.T) {
	orderService, testDB, user, product := setupOrderServiceTest(t)

	cartRepo := repository.NewCartRepository(testDB)
	cartRepo.Create(&model.CartItem{UserID: user.ID, ProductID: product.ID, Quantity: 1})
	_, err := orderService.Checkout(user.ID, true)
	require.NoError(t, err)

	cartRepo.Create(&model.CartItem{UserID: user.ID, ProductID: product.ID, Quantity: 2})
	_, err = orderService.Checkout(user.ID, true)
	require.NoError(t, err)

	orders, err := orderService.GetUserOrders(user.ID)
	require.NoError(t, err)
	assert.Len(t, orders, 2)
}

func TestOrderService_UpdateOrderStatus_ValidTransitions(t *testing.T) {
	orderService, testDB, user, product := setupOrderServiceTest(t)

	cartRepo := repository.NewCartRepository(testDB)
	cartRepo.Create(&model.CartItem{UserID: user.ID, ProductID: product.ID, Quantity: 1})
	order, err := orderService.Checkout(user.ID, true)
	require.NoError(t, err)

	for _, status := range []model.OrderStatus{
		model.OrderStatusProcessing,
		model.OrderStatusShipped,
		model.OrderStatusDelivered,
	} {
		updated, err := orderService.UpdateOrderStatus(user.ID, order.ID, status)
		require.NoError(t, err)
		assert.Equal(t, status, updated.Status)
	}
}

func TestOrderService_UpdateOrderStatus_RejectsSkippedStep(t *testing.T) {
	orderService, testDB, user, product := setupOrderServiceTest(t)

	cartRepo := repository.NewCartRepository(testDB)
	cartRepo.Create(&model.CartItem{UserID: user.ID, ProductID: product.ID, Quantity: 1})
	order, err := orderService.Checkout(user.ID, true)
	require.NoError(t, err)

	// pending cannot jump straight to shipped
	_, err = orderService.UpdateOrderStatus(user.ID, order.ID, model.OrderStatusShipped)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestOrderService_UpdateOrderStatus_TerminalIsFinal(t *testing.T) {
	orderService, testDB, user, product := setupOrderServiceTest(t)

	cartRepo := repository.NewCartRepository(testDB)
	cartRepo.Create(&model.CartItem{UserID: user.ID, ProductID: product.ID, Quantity: 1})
	order, err := orderService.Checkout(user.ID, true)
	require.NoError(t, err)

	_, err = orderService.UpdateOrderStatus(user.ID, order.ID, model.OrderStatusCancelled)
	require.NoError(t, err)

	_, err = orderService.UpdateOrderStatus(user.ID, order.ID, model.OrderStatusProcessing)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestOrderService_UpdateOrderStatus_NotOwner(t *testing.T) {
	orderService, testDB, user, product := setupOrderServiceTest(t)

	cartRepo := repository.NewCartRepository(testDB)
	cartRepo.Create(&model.CartItem{UserID: user.ID, ProductID: product.ID, Quantity: 1})
	order, err := orderService.Checkout(user.ID, true)
	require.NoError(t, err)

	other := &model.User{
		Username:     "meddler",
		Email:        "meddler@example.com",
		PasswordHash: "hash",
	}
	testDB.Create(other)

	_, err = orderService.UpdateOrderStatus(other.ID, order.ID, model.OrderStatusProcessing)
	assert.ErrorIs(t, err, ErrNotOrderOwner)
}

func TestOrderService_UpdateOrderStatus_UnknownStatus(t *testing.T) {
	orderService, testDB, user, product := setupOrderServiceTest(t)

	cartRepo := repository.NewCartRepository(testDB)
	cartRepo.Create(&model.CartItem{UserID: user.ID, ProductID: product.ID, Quantity: 1})
	order, err := orderService.Checkout(user.ID, true)
	require.NoError(t, err)

	_, err = orderService.UpdateOrderStatus(user.ID, order.ID, model.OrderStatus("teleported"))
	assert.ErrorIs(t, err, ErrInvalidStatus)
}
