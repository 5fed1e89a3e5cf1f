package repository

import (
	"github.com/ecofinds/ecofinds-backend/internal/app/model"
	"github.com/ecofinds/ecofinds-backend/pkg/logger"
	"gorm.io/gorm"
)

type ReviewRepository interface {
	Create(review *model.ProductReview) error
	FindByID(id uint) (*model.ProductReview, error)
	FindByProductID(productID uint) ([]model.ProductReview, error)
	FindByUserID(userID uint) ([]model.ProductReview, error)
	FindByUserAndProduct(userID, productID uint) (*model.ProductReview, error)
	Update(review *model.ProductReview) error
	Delete(id uint) error
	AverageRating(productID uint) (float64, int64, error)
}

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Create(review *model.ProductReview) error {
	logger.Debug("Creating product review in database", map[string]interface{}{
		"user_id":    review.UserID,
		"product_id": review.ProductID,
		"rating":     review.Rating,
	})

	if err := r.db.Create(review).Error; err != nil {
		logger.Error("Failed to create product review in database", err, map[string]interface{}{
			"user_id":    review.UserID,
			"product_id": review.ProductID,
		})
		return err
	}

	logger.Debug("Product review created in database", map[string]interface{}{
		"review_id":  review.ID,
		"user_id":    review.UserID,
		"product_id": review.ProductID,
	})
	return nil
}

func (r *reviewRepository) FindByID(id uint) (*model.ProductReview, error) {
	var review model.ProductReview
	if err := r.db.First(&review, id).Error; err != nil {
		logger.Error("Failed to find review by ID in database", err, map[string]interface{}{
			"review_id": id,
		})
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) FindByProductID(productID uint) ([]model.ProductReview, error) {
	var reviews []model.ProductReview
	err := r.db.Where("product_id = ?", productID).
		Preload("User").
		Order("created_at DESC").
		Find(&reviews).Error
	if err != nil {
		logger.Error("Failed to find reviews by product ID in database", err, map[string]interface{}{
			"product_id": productID,
		})
		return nil, err
	}
	return reviews, nil
}

func (r *reviewRepository) FindByUserID(userID uint) ([]model.ProductReview, error) {
	var reviews []model.ProductReview
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&reviews).Error
	if err != nil {
		logger.Error("Failed to find reviews by user ID in database", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}
	return reviews, nil
}

func (r *reviewRepository) FindByUserAndProduct(userID, productID uint) (*model.ProductReview, error) {
	var review model.ProductReview
	err := r.db.Where("user_id = ? AND product_id = ?", userID, productID).First(&review).Error
	if err != nil {
		logger.Error("Failed to find review by user and product in database", err, map[string]interface{}{
			"user_id":    userID,
			"product_id": productID,
		})
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) Update(review *model.ProductReview) error {
	logger.Debug("Updating product review in database", map[string]interface{}{
		"review_id": review.ID,
		"rating":    review.Rating,
	})

	if err := r.db.Save(review).Error; err != nil {
		logger.Error("Failed to update product review in database", err, map[string]interface{}{
			"review_id": review.ID,
		})
		return err
	}
	return nil
}

func (r *reviewRepository) Delete(id uint) error {
	logger.Debug("Deleting product review from database", map[string]interface{}{
		"review_id": id,
	})

	if err := r.db.Delete(&model.ProductReview{}, id).Error; err != nil {
		logger.Error("Failed to delete product review from database", err, map[string]interface{}{
			"review_id": id,
		})
		return err
	}
	return nil
}

// AverageRating returns the mean rating and review count for a product.
func (r *reviewRepository) AverageRating(productID uint) (float64, int64, error) {
	var result struct {
		Average float64
		Count   int64
	}
	err := r.db.Model(&model.ProductReview{}).
		Select("COALESCE(AVG(rating), 0) AS average, COUNT(*) AS count").
		Where("product_id = ?", productID).
		Scan(&result).Error
	if err != nil {
		logger.Error("Failed to compute average rating in database", err, map[string]interface{}{
			"product_id": productID,
		})
		return 0, 0, err
	}
	return result.Average, result.Count, nil
}
