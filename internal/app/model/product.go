package model

import (
	"time"
)

type Product struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	UserID      uint      `gorm:"not null;index" json:"user_id"` // seller
	Title       string    `gorm:"not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Price       float64   `gorm:"type:numeric(10,2);not null;check:price >= 0" json:"price"`
	Category    string    `gorm:"type:varchar(50);index" json:"category"` // free-form label
	Image       string    `json:"image"`                                  // reference only, storage is external
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relationships
	Seller        User            `gorm:"foreignKey:UserID" json:"seller,omitempty"`
	CartItems     []CartItem      `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"-"`
	WishlistItems []WishlistItem  `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"-"`
	Reviews       []ProductReview `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"-"`
	OrderItems    []OrderItem     `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Product) TableName() string {
	return "products"
}
