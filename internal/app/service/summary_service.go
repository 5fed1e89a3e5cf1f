package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ecofinds/ecofinds-backend/internal/app/model"
	"github.com/ecofinds/ecofinds-backend/internal/app/repository"
	apperrors "github.com/ecofinds/ecofinds-backend/internal/errors"
	"github.com/ecofinds/ecofinds-backend/pkg/logger"
	cache "github.com/ecofinds/ecofinds-backend/pkg/redis"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const productSalesCacheKey = "summary:product_sales"

// SummaryService reads the reporting views. The marketplace-wide sales
// summary is cached in Redis when a client is available; per-user reads
// always go to the database.
type SummaryService interface {
	GetUserOrderSummaries(userID uint) ([]model.UserOrderSummary, error)
	GetUserOrderSummary(userID, orderID uint) (*model.UserOrderSummary, error)
	GetProductSalesSummaries(ctx context.Context) ([]model.ProductSalesSummary, error)
	GetProductSalesSummary(productID uint) (*model.ProductSalesSummary, error)
	GetSellerSalesSummaries(sellerID uint) ([]model.ProductSalesSummary, error)
	RefreshProductSalesCache(ctx context.Context) error
}

type summaryService struct {
	summaryRepo repository.SummaryRepository
	cacheClient *redis.Client
	cacheTTL    time.Duration
}

func NewSummaryService(
	summaryRepo repository.SummaryRepository,
	cacheClient *redis.Client,
	cacheTTL time.Duration,
) SummaryService {
	return &summaryService{
		summaryRepo: summaryRepo,
		cacheClient: cacheClient,
		cacheTTL:    cacheTTL,
	}
}

func (s *summaryService) GetUserOrderSummaries(userID uint) ([]model.UserOrderSummary, error) {
	summaries, err := s.summaryRepo.UserOrderSummaries(userID)
	if err != nil {
		return nil, apperrors.Classify(err, "fetch order summaries")
	}
	return summaries, nil
}

func (s *summaryService) GetUserOrderSummary(userID, orderID uint) (*model.UserOrderSummary, error) {
	summary, err := s.summaryRepo.UserOrderSummaryByOrderID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, apperrors.Classify(err, "fetch order summary")
	}
	if summary.UserID != userID {
		return nil, ErrNotOrderOwner
	}
	return summary, nil
}

func (s *summaryService) GetProductSalesSummaries(ctx context.Context) ([]model.ProductSalesSummary, error) {
	if s.cacheClient != nil {
		var cached []model.ProductSalesSummary
		err := cache.GetJSON(ctx, s.cacheClient, productSalesCacheKey, &cached)
		if err == nil {
			logger.Debug("Product sales summary served from cache", map[string]interface{}{
				"count": len(cached),
			})
			return cached, nil
		}
		if !errors.Is(err, cache.Nil) {
			// Cache trouble never fails the read, fall through to the view.
			logger.Warn("Product sales cache read failed", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	summaries, err := s.summaryRepo.ProductSalesSummaries()
	if err != nil {
		return nil, apperrors.Classify(err, "fetch sales summaries")
	}

	if s.cacheClient != nil {
		if err := cache.SetJSON(ctx, s.cacheClient, productSalesCacheKey, summaries, s.cacheTTL); err != nil {
			logger.Warn("Product sales cache write failed", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	return summaries, nil
}

func (s *summaryService) GetProductSalesSummary(productID uint) (*model.ProductSalesSummary, error) {
	summary, err := s.summaryRepo.ProductSalesSummaryByProductID(productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, apperrors.Classify(err, "fetch sales summary")
	}
	return summary, nil
}

func (s *summaryService) GetSellerSalesSummaries(sellerID uint) ([]model.ProductSalesSummary, error) {
	summaries, err := s.summaryRepo.SellerSalesSummaries(sellerID)
	if err != nil {
		return nil, apperrors.Classify(err, "fetch seller sales summaries")
	}
	return summaries, nil
}

// RefreshProductSalesCache re-reads the sales view and rewrites the cached
// copy. Used by the scheduler to keep the cache warm.
func (s *summaryService) RefreshProductSalesCache(ctx context.Context) error {
	if s.cacheClient == nil {
		return fmt.Errorf("summary cache not configured")
	}

	summaries, err := s.summaryRepo.ProductSalesSummaries()
	if err != nil {
		return apperrors.Classify(err, "refresh sales cache")
	}

	if err := cache.SetJSON(ctx, s.cacheClient, productSalesCacheKey, summaries, s.cacheTTL); err != nil {
		return fmt.Errorf("failed to write sales cache: %w", err)
	}

	logger.Debug("Product sales cache refreshed", map[string]interface{}{
		"count": len(summaries),
	})

	return nil
}
