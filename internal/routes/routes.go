package routes

import (
	"github.com/gin-gonic/gin"

	"sway_back_end/internal/handlers"
	"sway_back_end/internal/handlers/brand"
	"sway_back_end/internal/handlers/customer"
	"sway_back_end/internal/handlers/payment"
	"sway_back_end/internal/handlers/user"
	"sway_back_end/internal/middleware"
)

func RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api")
	api.Use(middleware.APIRateLimit())

	// Auth
	auth := api.Group("/auth")
	{
		auth.POST("/register", middleware.RegisterRateLimit(), user.Register)
		auth.POST("/login", middleware.LoginRateLimit(), user.Login)
		auth.GET("/me", middleware.AuthRequired(), user.Me)
	}

	// Public catalog
	products := api.Group("/products")
	{
		products.GET("", handlers.ListProducts)
		products.GET("/search", handlers.SearchProducts)
		products.GET("/:id", handlers.GetProduct)
	}

	// Brand dashboard
	brandGroup := api.Group("/brand", middleware.AuthRequired(), middleware.RequireRole("brand"))
	{
		brandGroup.GET("/products", brand.ListProducts)
		brandGroup.POST("/products", brand.CreateProduct)
		brandGroup.PUT("/products/:id", brand.UpdateProduct)
		brandGroup.DELETE("/products/:id", brand.DeleteProduct)
	}

	// Customer account
	customerGroup := api.Group("/customer", middleware.AuthRequired(), middleware.RequireRole("customer"))
	{
		customerGroup.POST("/orders", customer.PlaceOrder)
		customerGroup.GET("/orders", customer.ListMyOrders)
		customerGroup.GET("/orders/:id", customer.GetOrderByID)
		customerGroup.PUT("/orders/:id/cancel", customer.CancelOrder)

		customerGroup.GET("/addresses", customer.ListAddresses)
		customerGroup.POST("/addresses", customer.CreateAddress)
		customerGroup.PUT("/addresses/:id", customer.UpdateAddress)
		customerGroup.PUT("/addresses/:id/default", customer.MakeDefaultAddress)
		customerGroup.DELETE("/addresses/:id", customer.DeleteAddress)

		customerGroup.GET("/wishlist", customer.GetWishlist)
		customerGroup.POST("/wishlist/:productId", customer.AddToWishlist)
		customerGroup.DELETE("/wishlist/:productId", customer.RemoveFromWishlist)

		customerGroup.GET("/cart", customer.GetCart)
		customerGroup.PUT("/cart", customer.SaveCart)
		customerGroup.DELETE("/cart", customer.ClearCart)
	}

	// Stripe callback (signature-verified, no bearer auth)
	api.POST("/payments/webhook", payment.StripeWebhook)
}
