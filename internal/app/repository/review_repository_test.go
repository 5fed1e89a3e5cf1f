package repository

import (
	"testing"

	"github.com/ecofinds/ecofinds-backend/internal/app/model"
	"github.com/ecofinds/ecofinds-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupReviewTest(t *testing.T) (*gorm.DB, ReviewRepository, *model.User, *model.Product) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	repo := NewReviewRepository(testDB)

	user := &model.User{
		Username:     "reviewrepo",
		Email:        "reviewrepo@example.com",
		PasswordHash: "hashedpassword",
	}
	require.NoError(t, testDB.Create(user).Error)

	product := &model.Product{UserID: user.ID, Title: "Armchair", Price: 65}
	require.NoError(t, testDB.Create(product).Error)

	return testDB, repo, user, product
}

func TestReviewRepository_UniquePairEnforced(t *testing.T) {
	testDB, repo, user, product := setupReviewTest(t)
	defer db.CleanupTestDB(testDB)

	require.NoError(t, repo.Create(&model.ProductReview{
		UserID:    user.ID,
		ProductID: product.ID,
		Rating:    4,
	}))

	err := repo.Create(&model.ProductReview{
		UserID:    user.ID,
		ProductID: product.ID,
		Rating:    1,
	})
	assert.Error(t, err)
}

func TestReviewRepository_RatingCheckConstraint(t *testing.T) {
	testDB, repo, user, product := setupReviewTest(t)
	defer db.CleanupTestDB(testDB)

	for _, rating := range []int{0, 6, -1} {
		err := repo.Create(&model.ProductReview{
			UserID:    user.ID,
			ProductID: product.ID,
			Rating:    rating,
		})
		assert.Error(t, err, "rating %d must be rejected", rating)
	}
}

func TestReviewRepository_AverageRating(t *testing.T) {
	testDB, repo, user, product := setupReviewTest(t)
	defer db.CleanupTestDB(testDB)

	second := &model.User{
		Username:     "secondreviewer",
		Email:        "secondreviewer@example.com",
		PasswordHash: "hashedpassword",
	}
	require.NoError(t, testDB.Create(second).Error)

	require.NoError(t, repo.Create(&model.ProductReview{UserID: user.ID, ProductID: product.ID, Rating: 5}))
	require.NoError(t, repo.Create(&model.ProductReview{UserID: second.ID, ProductID: product.ID, Rating: 2}))

	average, count, err := repo.AverageRating(product.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
	assert.InDelta(t, 3.5, average, 0.001)
}

func TestReviewRepository_AverageRating_Empty(t *testing.T) {
	testDB, repo, _, product := setupReviewTest(t)
	defer db.CleanupTestDB(testDB)

	average, count, err := repo.AverageRating(product.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
	assert.Zero(t, average)
}

func TestReviewRepository_FindByProductID_PreloadsUser(t *testing.T) {
	testDB, repo, user, product := setupReviewTest(t)
	defer db.CleanupTestDB(testDB)

	require.NoError(t, repo.Create(&model.ProductReview{
		UserID:     user.ID,
		ProductID:  product.ID,
		Rating:     3,
		ReviewText: "decent",
	}))

	reviews, err := repo.FindByProductID(product.ID)
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	assert.Equal(t, "reviewrepo", reviews[0].User.Username)
}
