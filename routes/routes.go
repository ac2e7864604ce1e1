package routes

import (
	"time"

	"freshcart-backend/handlers"
	"freshcart-backend/middleware"
	"freshcart-backend/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func SetupRoutes(r *gin.Engine, db *gorm.DB) {
	// Initialize handlers
	authHandler := &handlers.AuthHandler{DB: db}
	categoryHandler := &handlers.CategoryHandler{DB: db}
	subcategoryHandler := &handlers.SubcategoryHandler{DB: db}
	productHandler := &handlers.ProductHandler{DB: db}
	cartHandler := &handlers.CartHandler{Cart: &services.CartService{DB: db}}

	// Credential endpoints get a per-IP rate limit
	credLimiter := middleware.NewRateLimiter(10, time.Minute)

	// Public routes
	r.GET("/categories/", categoryHandler.GetCategories)
	r.GET("/products/", productHandler.GetProducts)
	r.GET("/products/:id/", productHandler.GetProduct)
	r.POST("/users/", credLimiter.Middleware(), authHandler.CreateUser)
	r.POST("/auth/token/login/", credLimiter.Middleware(), authHandler.TokenLogin)

	// Protected routes (require a valid token)
	protected := r.Group("")
	protected.Use(middleware.AuthMiddleware(db))
	{
		// Cart routes
		protected.POST("/products/:id/shopping_cart/", cartHandler.AddToCart)
		protected.PATCH("/products/:id/shopping_cart/", cartHandler.UpdateQuantity)
		protected.DELETE("/products/:id/shopping_cart/", cartHandler.RemoveFromCart)
		protected.GET("/my_cart/", cartHandler.GetCart)
		protected.DELETE("/my_cart/", cartHandler.ClearCart)

		// User routes
		protected.GET("/users/me/", authHandler.Me)
		protected.POST("/auth/token/logout/", authHandler.TokenLogout)
	}

	// Admin routes (catalog management, require admin role)
	admin := r.Group("/admin")
	admin.Use(middleware.AuthMiddleware(db))
	admin.Use(middleware.AdminMiddleware())
	{
		admin.POST("/categories/", categoryHandler.CreateCategory)
		admin.PUT("/categories/:id/", categoryHandler.UpdateCategory)
		admin.DELETE("/categories/:id/", categoryHandler.DeleteCategory)

		admin.POST("/subcategories/", subcategoryHandler.CreateSubcategory)
		admin.PUT("/subcategories/:id/", subcategoryHandler.UpdateSubcategory)
		admin.DELETE("/subcategories/:id/", subcategoryHandler.DeleteSubcategory)

		admin.POST("/products/", productHandler.CreateProduct)
		admin.PUT("/products/:id/", productHandler.UpdateProduct)
		admin.DELETE("/products/:id/", productHandler.DeleteProduct)
	}

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
}
