package routes

import (
	"github.com/gin-gonic/gin"

	cartHandlers "lumina_back_end/internal/handlers/cart"
	catalogHandlers "lumina_back_end/internal/handlers/catalog"
	checkoutHandlers "lumina_back_end/internal/handlers/checkout"
	couponHandlers "lumina_back_end/internal/handlers/coupons"
	orderHandlers "lumina_back_end/internal/handlers/orders"
	"lumina_back_end/internal/middleware"
)

type Handlers struct {
	Catalog  *catalogHandlers.Handler
	Cart     *cartHandlers.Handler
	Coupons  *couponHandlers.Handler
	Checkout *checkoutHandlers.Handler
	Orders   *orderHandlers.Handler
}

func RegisterRoutes(r *gin.Engine, h Handlers) {
	api := r.Group("/api")

	// Catalog
	api.GET("/products", h.Catalog.ListProducts)
	api.GET("/products/:slug", h.Catalog.GetProduct)

	// Cart (guest token or authenticated user)
	cart := api.Group("/cart", middleware.AuthOptional())
	cart.GET("", h.Cart.GetCart)
	cart.POST("/add", h.Cart.AddToCart)
	cart.PUT("/update", h.Cart.UpdateCart)
	cart.DELETE("/remove/:productId", h.Cart.RemoveFromCart)
	cart.DELETE("/clear", h.Cart.ClearCart)

	api.GET("/shipping/options", h.Cart.ShippingOptions)
	api.GET("/coupons/validate", h.Coupons.Validate)

	// Checkout
	api.POST("/orders/create", middleware.AuthOptional(), middleware.CheckoutRateLimit(), h.Checkout.CreateOrder)
	api.POST("/checkout/razorpay", middleware.AuthOptional(), middleware.CheckoutRateLimit(), h.Checkout.RazorpayOrder)
	api.POST("/checkout/verify", middleware.CheckoutRateLimit(), h.Checkout.VerifyPayment)
	api.GET("/checkout/status", h.Checkout.Status)

	// Orders
	api.POST("/orders/track", middleware.TrackRateLimit(), h.Orders.Track)
	api.GET("/orders", middleware.AuthRequired(), h.Orders.MyOrders)
}
