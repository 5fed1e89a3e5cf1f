package service

import (
	"testing"

	"github.com/ecofinds/ecofinds-backend/internal/app/model"
	"github.com/ecofinds/ecofinds-backend/internal/app/repository"
	"github.com/ecofinds/ecofinds-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupCartServiceTest(t *testing.T) (CartService, *gorm.DB, *model.User, *model.Product) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	cartRepo := repository.NewCartRepository(testDB)
	productRepo := repository.NewProductRepository(testDB)
	cartService := NewCartService(cartRepo, productRepo)

	user := &model.User{
		Username:     "shopper",
		Email:        "shopper@example.com",
		PasswordHash: "hash",
	}
	testDB.Create(user)

	product := &model.Product{
		UserID:   user.ID,
		Title:    "Used Bicycle",
		Price:    120.00,
		Category: "Other",
	}
	testDB.Create(product)

	return cartService, testDB, user, product
}

func TestCartService_AddToCart_CreatesLine(t *testing.T) {
	cartService, _, user, product := setupCartServiceTest(t)

	item, err := cartService.AddToCart(user.ID, product.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, item.Quantity)
	assert.Equal(t, product.ID, item.ProductID)
}

func TestCartService_AddToCart_AccumulatesQuantity(t *testing.T) {
	cartService, _, user, product := setupCartServiceTest(t)

	_, err := cartService.AddToCart(user.ID, product.ID, 2)
	require.NoError(t, err)

	item, err := cartService.AddToCart(user.ID, product.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, 5, item.Quantity)

	// Still a single line for the pair
	items, _, err := cartService.GetCart(user.ID)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestCartService_AddToCart_InvalidQuantity(t *testing.T) {
	cartService, _, user, product := setupCartServiceTest(t)

	_, err := cartService.AddToCart(user.ID, product.ID, 0)
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = cartService.AddToCart(user.ID, product.ID, -1)
	assert.ErrorIs(t, err, ErrInvalidQuantity)
}

func TestCartService_AddToCart_MissingProduct(t *testing.T) {
	cartService, _, user, _ := setupCartServiceTest(t)

	_, err := cartService.AddToCart(user.ID, 9999, 1)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestCartService_GetCart_Subtotal(t *testing.T) {
	cartService, testDB, user, product := setupCartServiceTest(t)

	second := &model.Product{
		UserID:   user.ID,
		Title:    "Winter Coat",
		Price:    35.75,
		Category: "Clothing",
	}
	testDB.Create(second)

	_, err := cartService.AddToCart(user.ID, product.ID, 2)
	require.NoError(t, err)
	_, err = cartService.AddToCart(user.ID, second.ID, 1)
	require.NoError(t, err)

	items, subtotal, err := cartService.GetCart(user.ID)
	require.NoError(t, err)
	assert.Len(t, items, 2)
	assert.Equal(t, 275.75, subtotal)
}

func TestCartService_SetQuantity(t *testing.T) {
	cartService, _, user, product := setupCartServiceTest(t)

	_, err := cartService.AddToCart(user.ID, product.ID, 5)
	require.NoError(t, err)

	item, err := cartService.SetQuantity(user.ID, product.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, item.Quantity)
}

func TestCartService_SetQuantity_MissingLine(t *testing.T) {
	cartService, _, user, product := setupCartServiceTest(t)

	_, err := cartService.SetQuantity(user.ID, product.ID, 1)
	assert.ErrorIs(t, err, ErrCartItemNotFound)
}

func TestCartService_RemoveFromCart(t *testing.T) {
	cartService, _, user, product := setupCartServiceTest(t)

	_, err := cartService.AddToCart(user.ID, product.ID, 1)
	require.NoError(t, err)

	require.NoError(t, cartService.RemoveFromCart(user.ID, product.ID))

	items, _, err := cartService.GetCart(user.ID)
	require.NoError(t, err)
	assert.Len(t, items, 0)

	err = cartService.RemoveFromCart(user.ID, product.ID)
	assert.ErrorIs(t, err, ErrCartItemNotFound)
}

func TestCartService_ClearCart(t *testing.T) {
	cartService, testDB, user, product := setupCartServiceTest(t)

	second := &model.Product{
		UserID:   user.ID,
		Title:    "Desk Fan",
		Price:    15,
		Category: "Electronics",
	}
	testDB.Create(second)

	_, err := cartService.AddToCart(user.ID, product.ID, 1)
	require.NoError(t, err)
	_, err = cartService.AddToCart(user.ID, second.ID, 1)
	require.NoError(t, err)

	require.NoError(t, cartService.ClearCart(user.ID))

	items, subtotal, err := cartService.GetCart(user.ID)
	require.NoError(t, err)
	assert.Len(t, items, 0)
	assert.Zero(t, subtotal)
}
