package repository

import (
	"testing"

	"github.com/ecofinds/ecofinds-backend/internal/app/model"
	"github.com/ecofinds/ecofinds-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupCartTest(t *testing.T) (*gorm.DB, CartRepository, *model.User, *model.Product) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	repo := NewCartRepository(testDB)

	user := &model.User{
		Username:     "cartuser",
		Email:        "cartuser@example.com",
		PasswordHash: "hashedpassword",
	}
	require.NoError(t, testDB.Create(user).Error)

	product := &model.Product{UserID: user.ID, Title: "Teapot", Price: 14}
	require.NoError(t, testDB.Create(product).Error)

	return testDB, repo, user, product
}

func TestCartRepository_UniquePairEnforced(t *testing.T) {
	testDB, repo, user, product := setupCartTest(t)
	defer db.CleanupTestDB(testDB)

	require.NoError(t, repo.Create(&model.CartItem{
		UserID:    user.ID,
		ProductID: product.ID,
		Quantity:  1,
	}))

	// A second line for the same pair violates the unique index
	err := repo.Create(&model.CartItem{
		UserID:    user.ID,
		ProductID: product.ID,
		Quantity:  2,
	})
	assert.Error(t, err)
}

func TestCartRepository_QuantityCheckConstraint(t *testing.T) {
	testDB, repo, user, product := setupCartTest(t)
	defer db.CleanupTestDB(testDB)

	err := repo.Create(&model.CartItem{
		UserID:    user.ID,
		ProductID: product.ID,
		Quantity:  0,
	})
	assert.Error(t, err)
}

func TestCartRepository_FindByUserID_PreloadsProducts(t *testing.T) {
	testDB, repo, user, product := setupCartTest(t)
	defer db.CleanupTestDB(testDB)

	require.NoError(t, repo.Create(&model.CartItem{
		UserID:    user.ID,
		ProductID: product.ID,
		Quantity:  3,
	}))

	items, err := repo.FindByUserID(user.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Teapot", items[0].Product.Title)
	assert.Equal(t, 14.0, items[0].Product.Price)
}

func TestCartRepository_DeleteByUserID(t *testing.T) {
	testDB, repo, user, product := setupCartTest(t)
	defer db.CleanupTestDB(testDB)

	second := &model.Product{UserID: user.ID, Title: "Saucer", Price: 2}
	require.NoError(t, testDB.Create(second).Error)

	require.NoError(t, repo.Create(&model.CartItem{UserID: user.ID, ProductID: product.ID, Quantity: 1}))
	require.NoError(t, repo.Create(&model.CartItem{UserID: user.ID, ProductID: second.ID, Quantity: 1}))

	require.NoError(t, repo.DeleteByUserID(user.ID))

	items, err := repo.FindByUserID(user.ID)
	require.NoError(t, err)
	assert.Len(t, items, 0)
}

func TestCartRepository_DeleteByUserAndProduct(t *testing.T) {
	testDB, repo, user, product := setupCartTest(t)
	defer db.CleanupTestDB(testDB)

	require.NoError(t, repo.Create(&model.CartItem{UserID: user.ID, ProductID: product.ID, Quantity: 1}))

	require.NoError(t, repo.DeleteByUserAndProduct(user.ID, product.ID))

	_, err := repo.FindByUserAndProduct(user.ID, product.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
