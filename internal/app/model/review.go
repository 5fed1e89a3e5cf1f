package model

import (
	"time"
)

const (
	MinRating = 1
	MaxRating = 5
)

// ProductReview is one user's review of one product. A (user, product) pair
// may carry at most one review.
type ProductReview struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	ProductID  uint      `gorm:"not null;index:idx_review_user_product,unique" json:"product_id"`
	UserID     uint      `gorm:"not null;index:idx_review_user_product,unique" json:"user_id"`
	Rating     int       `gorm:"not null;check:rating >= 1 AND rating <= 5" json:"rating"`
	ReviewText string    `gorm:"type:text" json:"review_text"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	// Relationships
	Product Product `gorm:"foreignKey:ProductID" json:"-"`
	User    User    `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (ProductReview) TableName() string {
	return "product_reviews"
}

// ValidRating reports whether r is inside the accepted range
func ValidRating(r int) bool {
	return r >= MinRating && r <= MaxRating
}
