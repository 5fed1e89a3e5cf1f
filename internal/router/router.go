package router

import (
	"github.com/ecofinds/ecofinds-backend/config"
	"github.com/ecofinds/ecofinds-backend/internal/app/controller"
	"github.com/ecofinds/ecofinds-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type Router struct {
	authController     *controller.AuthController
	userController     *controller.UserController
	categoryController *controller.CategoryController
	productController  *controller.ProductController
	cartController     *controller.CartController
	wishlistController *controller.WishlistController
	reviewController   *controller.ReviewController
	orderController    *controller.OrderController
	summaryController  *controller.SummaryController
	authMiddleware     *middleware.AuthMiddleware
	config             *config.Config
}

func NewRouter(
	authController *controller.AuthController,
	userController *controller.UserController,
	categoryController *controller.CategoryController,
	productController *controller.ProductController,
	cartController *controller.CartController,
	wishlistController *controller.WishlistController,
	reviewController *controller.ReviewController,
	orderController *controller.OrderController,
	summaryController *controller.SummaryController,
	authMiddleware *middleware.AuthMiddleware,
	cfg *config.Config,
) *Router {
	return &Router{
		authController:     authController,
		userController:     userController,
		categoryController: categoryController,
		productController:  productController,
		cartController:     cartController,
		wishlistController: wishlistController,
		reviewController:   reviewController,
		orderController:    orderController,
		summaryController:  summaryController,
		authMiddleware:     authMiddleware,
		config:             cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"message": "EcoFinds API is running",
		})
	})

	v1 := router.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/register", r.authController.Register)
			auth.POST("/login", r.authController.Login)
			auth.GET("/me", r.authMiddleware.Authenticate(), r.authController.Me)
		}

		users := v1.Group("/users")
		users.Use(r.authMiddleware.Authenticate())
		{
			users.GET("/me", r.userController.GetAccount)
			users.PUT("/me", r.userController.UpdateAccount)
			users.PUT("/me/profile", r.userController.UpsertProfile)
			users.DELETE("/me", r.userController.DeleteAccount)
		}

		v1.GET("/categories", r.categoryController.GetCategories)

		products := v1.Group("/products")
		{
			// Public browsing; a token, when sent, attributes the
			// request in the access log without gating it.
			products.GET("",
				r.authMiddleware.OptionalAuthenticate(),
				r.productController.GetProducts,
			)
			products.GET("/mine",
				r.authMiddleware.Authenticate(),
				r.productController.GetMyProducts,
			)
			products.GET("/:id",
				r.authMiddleware.OptionalAuthenticate(),
				r.productController.GetProduct,
			)
			products.GET("/:id/reviews", r.reviewController.GetProductReviews)

			products.POST("",
				r.authMiddleware.Authenticate(),
				r.productController.CreateProduct,
			)
			products.POST("/:id/reviews",
				r.authMiddleware.Authenticate(),
				r.reviewController.CreateReview,
			)
			products.PUT("/:id",
				r.authMiddleware.Authenticate(),
				r.productController.UpdateProduct,
			)
			products.DELETE("/:id",
				r.authMiddleware.Authenticate(),
				r.productController.DeleteProduct,
			)
		}

		cart := v1.Group("/cart")
		cart.Use(r.authMiddleware.Authenticate())
		{
			cart.GET("", r.cartController.GetCart)
			cart.POST("", r.cartController.AddToCart)
			cart.PUT("/:product_id", r.cartController.SetQuantity)
			cart.DELETE("/:product_id", r.cartController.RemoveFromCart)
			cart.DELETE("", r.cartController.ClearCart)
		}

		wishlist := v1.Group("/wishlist")
		wishlist.Use(r.authMiddleware.Authenticate())
		{
			wishlist.GET("", r.wishlistController.GetWishlist)
			wishlist.POST("", r.wishlistController.AddToWishlist)
			wishlist.DELETE("/:product_id", r.wishlistController.RemoveFromWishlist)
		}

		reviews := v1.Group("/reviews")
		reviews.Use(r.authMiddleware.Authenticate())
		{
			reviews.GET("/mine", r.reviewController.GetMyReviews)
			reviews.PUT("/:id", r.reviewController.UpdateReview)
			reviews.DELETE("/:id", r.reviewController.DeleteReview)
		}

		orders := v1.Group("/orders")
		orders.Use(r.authMiddleware.Authenticate())
		{
			orders.GET("", r.orderController.GetOrders)
			orders.GET("/ws", r.orderController.WebSocketHandler)
			orders.GET("/:id", r.orderController.GetOrder)
			orders.POST("/checkout", r.orderController.Checkout)
			orders.PATCH("/:id/status", r.orderController.UpdateOrderStatus)
		}

		summaries := v1.Group("/summaries")
		summaries.Use(r.authMiddleware.Authenticate())
		{
			summaries.GET("/orders", r.summaryController.GetMyOrderSummaries)
			summaries.GET("/orders/:id", r.summaryController.GetOrderSummary)
			summaries.GET("/products", r.summaryController.GetProductSales)
			summaries.GET("/products/:id", r.summaryController.GetProductSalesByID)
			summaries.GET("/sales/mine", r.summaryController.GetMySales)
		}
	}

	return router
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin || allowedOrigin == "*" {
				allowed = true
				break
			}
		}

		if allowed {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
