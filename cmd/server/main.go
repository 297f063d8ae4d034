package main

import (
	"log"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"lumina_back_end/internal/cart"
	"lumina_back_end/internal/catalog"
	"lumina_back_end/internal/config"
	"lumina_back_end/internal/coupons"
	"lumina_back_end/internal/database"
	cartHandlers "lumina_back_end/internal/handlers/cart"
	catalogHandlers "lumina_back_end/internal/handlers/catalog"
	checkoutHandlers "lumina_back_end/internal/handlers/checkout"
	couponHandlers "lumina_back_end/internal/handlers/coupons"
	orderHandlers "lumina_back_end/internal/handlers/orders"
	"lumina_back_end/internal/orders"
	"lumina_back_end/internal/payment"
	"lumina_back_end/internal/routes"
)

func main() {
	config.Load()

	gateway := payment.NewGateway(config.RazorpayKeyID(), config.RazorpayKeySecret())
	if gateway.Configured() {
		log.Println("✅ Razorpay initialized")
	} else {
		log.Println("⚠️  RAZORPAY_KEY_ID/RAZORPAY_KEY_SECRET not set — only cash on delivery is available")
	}

	database.ConnectDatabases()
	defer database.Close()

	orderRepo := orders.NewRepository(database.Postgres, config.OrderPrefix())
	catalogRepo := catalog.NewRepository(database.Postgres)
	couponRepo := coupons.NewRepository(database.Postgres)
	cartStore := cart.NewRedisStore(database.Redis)

	r := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{
		"http://localhost:3000",
		"https://luminacrafts.in",
		"https://www.luminacrafts.in",
	}
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization", "X-Cart-Token")
	r.Use(cors.New(corsConfig))

	routes.RegisterRoutes(r, routes.Handlers{
		Catalog:  catalogHandlers.NewHandler(catalogRepo),
		Cart:     cartHandlers.NewHandler(cartStore, catalogRepo),
		Coupons:  couponHandlers.NewHandler(couponRepo),
		Checkout: checkoutHandlers.NewHandler(orderRepo, gateway, couponRepo),
		Orders:   orderHandlers.NewHandler(orderRepo),
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Println("🚀 Lumina Crafts server listening on port", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal("❌ Server failed to start:", err)
	}
}
