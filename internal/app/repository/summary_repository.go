package repository

import (
	"github.com/ecofinds/ecofinds-backend/internal/app/model"
	"github.com/ecofinds/ecofinds-backend/pkg/logger"
	"gorm.io/gorm"
)

// SummaryRepository reads the derived reporting views. The views are
// recomputed by the engine on every query; nothing here caches.
type SummaryRepository interface {
	UserOrderSummaries(userID uint) ([]model.UserOrderSummary, error)
	UserOrderSummaryByOrderID(orderID uint) (*model.UserOrderSummary, error)
	ProductSalesSummaries() ([]model.ProductSalesSummary, error)
	ProductSalesSummaryByProductID(productID uint) (*model.ProductSalesSummary, error)
	SellerSalesSummaries(sellerID uint) ([]model.ProductSalesSummary, error)
}

type summaryRepository struct {
	db *gorm.DB
}

func NewSummaryRepository(db *gorm.DB) SummaryRepository {
	return &summaryRepository{db: db}
}

func (r *summaryRepository) UserOrderSummaries(userID uint) ([]model.UserOrderSummary, error) {
	var summaries []model.UserOrderSummary
	err := r.db.Table("user_order_summary").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Scan(&summaries).Error
	if err != nil {
		logger.Error("Failed to read user_order_summary view", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}
	return summaries, nil
}

func (r *summaryRepository) UserOrderSummaryByOrderID(orderID uint) (*model.UserOrderSummary, error) {
	var summary model.UserOrderSummary
	err := r.db.Table("user_order_summary").
		Where("order_id = ?", orderID).
		Take(&summary).Error
	if err != nil {
		logger.Error("Failed to read user_order_summary row", err, map[string]interface{}{
			"order_id": orderID,
		})
		return nil, err
	}
	return &summary, nil
}

func (r *summaryRepository) ProductSalesSummaries() ([]model.ProductSalesSummary, error) {
	var summaries []model.ProductSalesSummary
	err := r.db.Table("product_sales_summary").
		Order("total_revenue DESC").
		Scan(&summaries).Error
	if err != nil {
		logger.Error("Failed to read product_sales_summary view", err)
		return nil, err
	}
	return summaries, nil
}

func (r *summaryRepository) ProductSalesSummaryByProductID(productID uint) (*model.ProductSalesSummary, error) {
	var summary model.ProductSalesSummary
	err := r.db.Table("product_sales_summary").
		Where("product_id = ?", productID).
		Take(&summary).Error
	if err != nil {
		logger.Error("Failed to read product_sales_summary row", err, map[string]interface{}{
			"product_id": productID,
		})
		return nil, err
	}
	return &summary, nil
}

func (r *summaryRepository) SellerSalesSummaries(sellerID uint) ([]model.ProductSalesSummary, error) {
	var summaries []model.ProductSalesSummary
	err := r.db.Table("product_sales_summary").
		Where("seller_id = ?", sellerID).
		Order("total_revenue DESC").
		Scan(&summaries).Error
	if err != nil {
		logger.Error("Failed to read product_sales_summary view for seller", err, map[string]interface{}{
			"seller_id": sellerID,
		})
		return nil, err
	}
	return summaries, nil
}
