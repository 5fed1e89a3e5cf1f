package repository

import (
	"testing"

	"github.com/ecofinds/ecofinds-backend/internal/app/model"
	"github.com/ecofinds/ecofinds-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupWishlistTest(t *testing.T) (*gorm.DB, WishlistRepository, *model.User, *model.Product) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	repo := NewWishlistRepository(testDB)

	user := &model.User{
		Username:     "wishlistrepo",
		Email:        "wishlistrepo@example.com",
		PasswordHash: "hashedpassword",
	}
	require.NoError(t, testDB.Create(user).Error)

	product := &model.Product{UserID: user.ID, Title: "Typewriter", Price: 75}
	require.NoError(t, testDB.Create(product).Error)

	return testDB, repo, user, product
}

func TestWishlistRepository_UniquePairEnforced(t *testing.T) {
	testDB, repo, user, product := setupWishlistTest(t)
	defer db.CleanupTestDB(testDB)

	require.NoError(t, repo.Create(&model.WishlistItem{
		UserID:    user.ID,
		ProductID: product.ID,
	}))

	err := repo.Create(&model.WishlistItem{
		UserID:    user.ID,
		ProductID: product.ID,
	})
	assert.Error(t, err)
}

func TestWishlistRepository_FindByUserID_PreloadsProducts(t *testing.T) {
	testDB, repo, user, product := setupWishlistTest(t)
	defer db.CleanupTestDB(testDB)

	require.NoError(t, repo.Create(&model.WishlistItem{
		UserID:    user.ID,
		ProductID: product.ID,
	}))

	items, err := repo.FindByUserID(user.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Typewriter", items[0].Product.Title)
}

func TestWishlistRepository_Delete(t *testing.T) {
	testDB, repo, user, product := setupWishlistTest(t)
	defer db.CleanupTestDB(testDB)

	require.NoError(t, repo.Create(&model.WishlistItem{
		UserID:    user.ID,
		ProductID: product.ID,
	}))

	require.NoError(t, repo.Delete(user.ID, product.ID))

	_, err := repo.FindByUserAndProduct(user.ID, product.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
