package model

import (
	"time"
)

// Read models for the reporting views. Both views are recomputed on every
// query; there is no materialization at the schema level.

// UserOrderSummary is one row of the user_order_summary view: one order with
// its buyer and line-item count. Orders with zero items still appear with
// ItemCount 0 (left join).
type UserOrderSummary struct {
	OrderID     uint        `json:"order_id"`
	UserID      uint        `json:"user_id"`
	Username    string      `json:"username"`
	Email       string      `json:"email"`
	TotalAmount float64     `json:"total_amount"`
	Status      OrderStatus `json:"status"`
	ItemCount   int         `json:"item_count"`
	CreatedAt   time.Time   `json:"created_at"`
}

// ProductSalesSummary is one row of the product_sales_summary view: per-product
// sales aggregates. Products never ordered appear with zero aggregates.
type ProductSalesSummary struct {
	ProductID         uint    `json:"product_id"`
	Title             string  `json:"title"`
	SellerID          uint    `json:"seller_id"`
	SellerName        string  `json:"seller_name"`
	CurrentPrice      float64 `json:"current_price"`
	TimesSold         int     `json:"times_sold"`
	TotalQuantitySold int     `json:"total_quantity_sold"`
	TotalRevenue      float64 `json:"total_revenue"`
}
