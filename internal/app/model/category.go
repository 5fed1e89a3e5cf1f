package model

import (
	"time"
)

// Category is an advisory reference list. Product.Category stays a free-form
// label and is deliberately not foreign-keyed to this table.
type Category struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	Name        string    `gorm:"uniqueIndex;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

func (Category) TableName() string {
	return "categories"
}

// DefaultCategories are seeded once at initialization
var DefaultCategories = []Category{
	{Name: "Clothing", Description: "Secondhand apparel, shoes and accessories"},
	{Name: "Electronics", Description: "Phones, computers, audio and other devices"},
	{Name: "Furniture", Description: "Tables, chairs, storage and home furniture"},
	{Name: "Books", Description: "Used books, comics and magazines"},
	{Name: "Home", Description: "Kitchenware, decor and household goods"},
	{Name: "Other", Description: "Everything that fits nowhere else"},
}
