package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

func Load() {
	err := godotenv.Load(".env")
	if err != nil {
		log.Println("⚠️  No .env file found — falling back to system environment variables")
	} else {
		log.Println("✅ .env file loaded")
	}
}

// RazorpayKeyID is the public key the checkout widget uses.
func RazorpayKeyID() string {
	return os.Getenv("RAZORPAY_KEY_ID")
}

// RazorpayKeySecret signs gateway callbacks; never exposed to the client.
func RazorpayKeySecret() string {
	return os.Getenv("RAZORPAY_KEY_SECRET")
}

// RazorpayConfigured reports whether online payment can be offered. When
// false the storefront falls back to cash on delivery.
func RazorpayConfigured() bool {
	return RazorpayKeyID() != "" && RazorpayKeySecret() != ""
}

// OrderPrefix is the literal prefix of order numbers (LMN-2025-0423).
func OrderPrefix() string {
	if p := os.Getenv("ORDER_PREFIX"); p != "" {
		return p
	}
	return "LMN"
}

func JWTSecret() []byte {
	return []byte(os.Getenv("AUTH_JWT_SECRET"))
}
