package repository

import (
	"testing"

	"github.com/ecofinds/ecofinds-backend/internal/app/model"
	"github.com/ecofinds/ecofinds-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupUserTest(t *testing.T) (*gorm.DB, UserRepository) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	repo := NewUserRepository(testDB)
	return testDB, repo
}

func TestUserRepository_Create(t *testing.T) {
	testDB, repo := setupUserTest(t)
	defer db.CleanupTestDB(testDB)

	tests := []struct {
		name    string
		user    *model.User
		wantErr bool
	}{
		{
			name: "Valid user",
			user: &model.User{
				Username:     "firstuser",
				Email:        "test@example.com",
				PasswordHash: "hashedpassword",
			},
			wantErr: false,
		},
		{
			name: "Duplicate email",
			user: &model.User{
				Username:     "otheruser",
				Email:        "test@example.com",
				PasswordHash: "hashedpassword",
			},
			wantErr: true,
		},
		{
			name: "Duplicate username",
			user: &model.User{
				Username:     "firstuser",
				Email:        "unused@example.com",
				PasswordHash: "hashedpassword",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := repo.Create(tt.user)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.NotZero(t, tt.user.ID)
			}
		})
	}
}

func TestUserRepository_FindByEmailAndUsername(t *testing.T) {
	testDB, repo := setupUserTest(t)
	defer db.CleanupTestDB(testDB)

	user := &model.User{
		Username:     "findme",
		Email:        "findme@example.com",
		PasswordHash: "hashedpassword",
	}
	require.NoError(t, repo.Create(user))

	byEmail, err := repo.FindByEmail("findme@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)

	byUsername, err := repo.FindByUsername("findme")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byUsername.ID)

	_, err = repo.FindByEmail("missing@example.com")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestUserRepository_UpsertProfile(t *testing.T) {
	testDB, repo := setupUserTest(t)
	defer db.CleanupTestDB(testDB)

	user := &model.User{
		Username:     "profileduser",
		Email:        "profiled@example.com",
		PasswordHash: "hashedpassword",
	}
	require.NoError(t, repo.Create(user))

	profile := &model.UserProfile{
		UserID: user.ID,
		Name:   "First Name",
		City:   "Berlin",
	}
	require.NoError(t, repo.UpsertProfile(profile))
	firstID := profile.ID
	assert.NotZero(t, firstID)

	// Upsert again keeps the same row
	profile.Name = "Second Name"
	require.NoError(t, repo.UpsertProfile(profile))

	stored, err := repo.FindProfileByUserID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, firstID, stored.ID)
	assert.Equal(t, "Second Name", stored.Name)
	assert.Equal(t, "Berlin", stored.City)

	var count int64
	testDB.Model(&model.UserProfile{}).Where("user_id = ?", user.ID).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestUserRepository_Delete_CascadesEverything(t *testing.T) {
	testDB, repo := setupUserTest(t)
	defer db.CleanupTestDB(testDB)

	user := &model.User{
		Username:     "cascadeuser",
		Email:        "cascade@example.com",
		PasswordHash: "hashedpassword",
	}
	require.NoError(t, repo.Create(user))

	buyer := &model.User{
		Username:     "cascadebuyer",
		Email:        "cascadebuyer@example.com",
		PasswordHash: "hashedpassword",
	}
	require.NoError(t, repo.Create(buyer))

	require.NoError(t, repo.UpsertProfile(&model.UserProfile{UserID: user.ID, Name: "Gone Soon"}))

	product := &model.Product{UserID: user.ID, Title: "Globe", Price: 22}
	require.NoError(t, testDB.Create(product).Error)
	require.NoError(t, testDB.Create(&model.CartItem{UserID: user.ID, ProductID: product.ID, Quantity: 1}).Error)
	require.NoError(t, testDB.Create(&model.WishlistItem{UserID: user.ID, ProductID: product.ID}).Error)
	require.NoError(t, testDB.Create(&model.ProductReview{UserID: buyer.ID, ProductID: product.ID, Rating: 4}).Error)
	require.NoError(t, testDB.Create(&model.Order{
		UserID:      user.ID,
		TotalAmount: 22,
		Status:      model.OrderStatusPending,
		OrderItems:  []model.OrderItem{{ProductID: product.ID, Quantity: 1, Price: 22}},
	}).Error)

	require.NoError(t, repo.Delete(user.ID))

	// Everything hanging off the user is gone, including rows reachable
	// only through the user's products (the buyer's review).
	for name, count := range map[string]int64{
		"profiles":  tableCount(testDB, &model.UserProfile{}),
		"products":  tableCount(testDB, &model.Product{}),
		"cart":      tableCount(testDB, &model.CartItem{}),
		"wishlist":  tableCount(testDB, &model.WishlistItem{}),
		"reviews":   tableCount(testDB, &model.ProductReview{}),
		"orders":    tableCount(testDB, &model.Order{}),
		"orderItem": tableCount(testDB, &model.OrderItem{}),
	} {
		assert.Zero(t, count, name)
	}

	// The buyer account itself survives
	_, err := repo.FindByID(buyer.ID)
	assert.NoError(t, err)
}

func tableCount(db *gorm.DB, model interface{}) int64 {
	var count int64
	db.Model(model).Count(&count)
	return count
}
