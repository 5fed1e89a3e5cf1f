package service

import (
	"errors"

	"github.com/ecofinds/ecofinds-backend/internal/app/model"
	"github.com/ecofinds/ecofinds-backend/internal/app/repository"
	apperrors "github.com/ecofinds/ecofinds-backend/internal/errors"
	"github.com/ecofinds/ecofinds-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrReviewNotFound      = apperrors.NotFound(apperrors.ReviewNotFound, "review not found")
	ErrReviewAlreadyExists = apperrors.Conflict(apperrors.ReviewAlreadyExists, "you already reviewed this product")
	ErrInvalidRating       = apperrors.Validation(apperrors.ReviewInvalidRating, "rating must be between 1 and 5")
	ErrNotReviewAuthor     = apperrors.Validation(apperrors.AuthzOwnerOnly, "you do not own this review")
)

// RatingSummary aggregates the reviews of one product.
type RatingSummary struct {
	Average float64 `json:"average"`
	Count   int64   `json:"count"`
}

type ReviewService interface {
	CreateReview(userID, productID uint, rating int, reviewText string) (*model.ProductReview, error)
	GetProductReviews(productID uint) ([]model.ProductReview, *RatingSummary, error)
	GetUserReviews(userID uint) ([]model.ProductReview, error)
	UpdateReview(reviewID, userID uint, rating int, reviewText string) (*model.ProductReview, error)
	DeleteReview(reviewID, userID uint) error
}

type reviewService struct {
	reviewRepo  repository.ReviewRepository
	productRepo repository.ProductRepository
}

func NewReviewService(
	reviewRepo repository.ReviewRepository,
	productRepo repository.ProductRepository,
) ReviewService {
	return &reviewService{reviewRepo: reviewRepo, productRepo: productRepo}
}

func (s *reviewService) CreateReview(userID, productID uint, rating int, reviewText string) (*model.ProductReview, error) {
	if !model.ValidRating(rating) {
		return nil, ErrInvalidRating
	}

	if _, err := s.productRepo.FindByID(productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, apperrors.Classify(err, "create review")
	}

	if _, err := s.reviewRepo.FindByUserAndProduct(userID, productID); err == nil {
		return nil, ErrReviewAlreadyExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.Classify(err, "create review")
	}

	review := &model.ProductReview{
		UserID:     userID,
		ProductID:  productID,
		Rating:     rating,
		ReviewText: reviewText,
	}
	if err := s.reviewRepo.Create(review); err != nil {
		return nil, apperrors.Classify(err, "create review")
	}

	logger.Info("Review created", map[string]interface{}{
		"review_id":  review.ID,
		"user_id":    userID,
		"product_id": productID,
		"rating":     rating,
	})

	return review, nil
}

func (s *reviewService) GetProductReviews(productID uint) ([]model.ProductReview, *RatingSummary, error) {
	if _, err := s.productRepo.FindByID(productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrProductNotFound
		}
		return nil, nil, apperrors.Classify(err, "fetch reviews")
	}

	reviews, err := s.reviewRepo.FindByProductID(productID)
	if err != nil {
		return nil, nil, apperrors.Classify(err, "fetch reviews")
	}

	average, count, err := s.reviewRepo.AverageRating(productID)
	if err != nil {
		return nil, nil, apperrors.Classify(err, "fetch reviews")
	}

	return reviews, &RatingSummary{Average: average, Count: count}, nil
}

func (s *reviewService) GetUserReviews(userID uint) ([]model.ProductReview, error) {
	reviews, err := s.reviewRepo.FindByUserID(userID)
	if err != nil {
		return nil, apperrors.Classify(err, "fetch user reviews")
	}
	return reviews, nil
}

func (s *reviewService) UpdateReview(reviewID, userID uint, rating int, reviewText string) (*model.ProductReview, error) {
	if !model.ValidRating(rating) {
		return nil, ErrInvalidRating
	}

	review, err := s.reviewRepo.FindByID(reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, apperrors.Classify(err, "update review")
	}

	if review.UserID != userID {
		return nil, ErrNotReviewAuthor
	}

	review.Rating = rating
	review.ReviewText = reviewText
	if err := s.reviewRepo.Update(review); err != nil {
		return nil, apperrors.Classify(err, "update review")
	}

	return review, nil
}

func (s *reviewService) DeleteReview(reviewID, userID uint) error {
	review, err := s.reviewRepo.FindByID(reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrReviewNotFound
		}
		return apperrors.Classify(err, "delete review")
	}

	if review.UserID != userID {
		return ErrNotReviewAuthor
	}

	if err := s.reviewRepo.Delete(reviewID); err != nil {
		return apperrors.Classify(err, "delete review")
	}

	return nil
}
