package db

import (
	"github.com/ecofinds/ecofinds-backend/internal/app/model"
	"github.com/ecofinds/ecofinds-backend/pkg/logger"
	"gorm.io/gorm"
)

// View bodies shared between the postgres migration and the sqlite test
// database. Both views are plain derived projections, recomputed per query.
const (
	// One row per order with its buyer and line-item count. The LEFT JOIN
	// keeps zero-item orders visible with item_count 0.
	userOrderSummarySelect = `
SELECT o.id          AS order_id,
       o.user_id     AS user_id,
       u.username    AS username,
       u.email       AS email,
       o.total_amount AS total_amount,
       o.status      AS status,
       COUNT(oi.id)  AS item_count,
       o.created_at  AS created_at
FROM orders o
JOIN users u ON u.id = o.user_id
LEFT JOIN order_items oi ON oi.order_id = o.id
GROUP BY o.id, o.user_id, u.username, u.email, o.total_amount, o.status, o.created_at`

	// Per-product sales aggregates. Products never ordered appear with zero
	// aggregates via the LEFT JOIN + COALESCE.
	productSalesSummarySelect = `
SELECT p.id        AS product_id,
       p.title     AS title,
       p.user_id   AS seller_id,
       u.username  AS seller_name,
       p.price     AS current_price,
       COUNT(oi.id)                        AS times_sold,
       COALESCE(SUM(oi.quantity), 0)       AS total_quantity_sold,
       COALESCE(SUM(oi.price * oi.quantity), 0) AS total_revenue
FROM products p
JOIN users u ON u.id = p.user_id
LEFT JOIN order_items oi ON oi.product_id = p.id
GROUP BY p.id, p.title, p.user_id, u.username, p.price`
)

// Migrate runs database migrations
func Migrate() error {
	logger.Info("Running database migrations...")

	models := []interface{}{
		&model.User{},
		&model.UserProfile{},
		&model.Category{},
		&model.Product{},
		&model.CartItem{},
		&model.WishlistItem{},
		&model.ProductReview{},
		&model.Order{},
		&model.OrderItem{},
	}

	if err := DB.AutoMigrate(models...); err != nil {
		logger.Error("Failed to run migrations", err)
		return err
	}

	if err := createViews(DB); err != nil {
		logger.Error("Failed to create reporting views", err)
		return err
	}

	if err := createSearchIndex(DB); err != nil {
		logger.Error("Failed to create full-text search index", err)
		return err
	}

	if err := seedInitialData(); err != nil {
		logger.Error("Failed to seed initial data during migration", err)
		return err
	}

	logger.Info("Database migrations completed successfully", map[string]interface{}{
		"models_count": len(models),
	})
	return nil
}

func createViews(db *gorm.DB) error {
	if err := db.Exec("CREATE OR REPLACE VIEW user_order_summary AS " + userOrderSummarySelect).Error; err != nil {
		return err
	}
	return db.Exec("CREATE OR REPLACE VIEW product_sales_summary AS " + productSalesSummarySelect).Error
}

// createSearchIndex provisions full-text search over title+description.
// Ranking policy is left to the storage engine (ts_rank at query time).
func createSearchIndex(db *gorm.DB) error {
	if db.Dialector.Name() != "postgres" {
		return nil
	}
	return db.Exec(`CREATE INDEX IF NOT EXISTS idx_products_fulltext
ON products USING GIN (to_tsvector('english', title || ' ' || coalesce(description, '')))`).Error
}

// Seed adds initial data to the database (optional)
func Seed() error {
	return seedInitialData()
}

func seedInitialData() error {
	logger.Info("Seeding initial data...")

	if err := seedCategories(DB); err != nil {
		logger.Error("Failed to seed categories", err)
		return err
	}

	logger.Info("Initial data seeded successfully")
	return nil
}

// seedCategories inserts the six fixed categories once; reruns are no-ops.
func seedCategories(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.Category{}).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		logger.Info("Categories already seeded, skipping...", map[string]interface{}{
			"existing_count": count,
		})
		return nil
	}

	categories := make([]model.Category, len(model.DefaultCategories))
	copy(categories, model.DefaultCategories)
	if err := db.Create(&categories).Error; err != nil {
		return err
	}

	logger.Info("Categories seeded", map[string]interface{}{
		"count": len(categories),
	})
	return nil
}
