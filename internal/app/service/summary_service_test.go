package service

import (
	"context"
	"testing"

	"github.com/ecofinds/ecofinds-backend/internal/app/model"
	"github.com/ecofinds/ecofinds-backend/internal/app/repository"
	"github.com/ecofinds/ecofinds-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// Summary tests run without Redis; a nil client reads straight from the views.
func setupSummaryServiceTest(t *testing.T) (SummaryService, OrderService, *gorm.DB, *model.User, *model.Product) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	summaryRepo := repository.NewSummaryRepository(testDB)
	summaryService := NewSummaryService(summaryRepo, nil, 0)

	orderRepo := repository.NewOrderRepository(testDB)
	orderService := NewOrderService(orderRepo, testDB, nil)

	seller := &model.User{
		Username:     "summary_seller",
		Email:        "summary_seller@example.com",
		PasswordHash: "hash",
	}
	testDB.Create(seller)

	product := &model.Product{
		UserID:   seller.ID,
		Title:    "Ceramic Vase",
		Price:    18.50,
		Category: "Home",
	}
	testDB.Create(product)

	return summaryService, orderService, testDB, seller, product
}

func TestSummaryService_UserOrderSummaries(t *testing.T) {
	summaryService, orderService, testDB, _, product := setupSummaryServiceTest(t)

	buyer := &model.User{
		Username:     "summary_buyer",
		Email:        "summary_buyer@example.com",
		PasswordHash: "hash",
	}
	testDB.Create(buyer)

	testDB.Create(&model.CartItem{UserID: buyer.ID, ProductID: product.ID, Quantity: 2})
	order, err := orderService.Checkout(buyer.ID, true)
	require.NoError(t, err)

	summaries, err := summaryService.GetUserOrderSummaries(buyer.ID)
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, order.ID, summaries[0].OrderID)
	assert.Equal(t, "summary_buyer", summaries[0].Username)
	assert.Equal(t, 1, summaries[0].ItemCount)
	assert.Equal(t, 37.00, summaries[0].TotalAmount)
}

func TestSummaryService_UserOrderSummary_OwnerOnly(t *testing.T) {
	summaryService, orderService, testDB, seller, product := setupSummaryServiceTest(t)

	buyer := &model.User{
		Username:     "nosy_buyer",
		Email:        "nosy_buyer@example.com",
		PasswordHash: "hash",
	}
	testDB.Create(buyer)

	testDB.Create(&model.CartItem{UserID: buyer.ID, ProductID: product.ID, Quantity: 1})
	order, err := orderService.Checkout(buyer.ID, true)
	require.NoError(t, err)

	_, err = summaryService.GetUserOrderSummary(seller.ID, order.ID)
	assert.ErrorIs(t, err, ErrNotOrderOwner)

	summary, err := summaryService.GetUserOrderSummary(buyer.ID, order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.ID, summary.OrderID)
}

func TestSummaryService_ProductSales_UnsoldProductHasZeros(t *testing.T) {
	summaryService, _, _, _, product := setupSummaryServiceTest(t)

	summary, err := summaryService.GetProductSalesSummary(product.ID)
	require.NoError(t, err)
	assert.Equal(t, product.ID, summary.ProductID)
	assert.Equal(t, 0, summary.TimesSold)
	assert.Equal(t, 0, summary.TotalQuantitySold)
	assert.Zero(t, summary.TotalRevenue)
}

func TestSummaryService_ProductSales_AggregatesAcrossOrders(t *testing.T) {
	summaryService, orderService, testDB, seller, product := setupSummaryServiceTest(t)

	buyer := &model.User{
		Username:     "repeat_buyer",
		Email:        "repeat_buyer@example.com",
		PasswordHash: "hash",
	}
	testDB.Create(buyer)

	testDB.Create(&model.CartItem{UserID: buyer.ID, ProductID: product.ID, Quantity: 2})
	_, err := orderService.Checkout(buyer.ID, true)
	require.NoError(t, err)

	testDB.Create(&model.CartItem{UserID: buyer.ID, ProductID: product.ID, Quantity: 1})
	_, err = orderService.Checkout(buyer.ID, true)
	require.NoError(t, err)

	summary, err := summaryService.GetProductSalesSummary(product.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.TimesSold)
	assert.Equal(t, 3, summary.TotalQuantitySold)
	assert.InDelta(t, 55.50, summary.TotalRevenue, 0.001)
	assert.Equal(t, seller.ID, summary.SellerID)
	assert.Equal(t, "summary_seller", summary.SellerName)
}

func TestSummaryService_SellerSalesSummaries(t *testing.T) {
	summaryService, _, testDB, seller, _ := setupSummaryServiceTest(t)

	otherSeller := &model.User{
		Username:     "other_seller",
		Email:        "other_seller@example.com",
		PasswordHash: "hash",
	}
	testDB.Create(otherSeller)
	testDB.Create(&model.Product{UserID: otherSeller.ID, Title: "Tent", Price: 40})

	summaries, err := summaryService.GetSellerSalesSummaries(seller.ID)
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, "Ceramic Vase", summaries[0].Title)
}

func TestSummaryService_ProductSales_NoCacheClient(t *testing.T) {
	summaryService, _, _, _, _ := setupSummaryServiceTest(t)

	summaries, err := summaryService.GetProductSalesSummaries(context.Background())
	require.NoError(t, err)
	assert.Len(t, summaries, 1)

	err = summaryService.RefreshProductSalesCache(context.Background())
	assert.Error(t, err)
}
