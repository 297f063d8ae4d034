// Package payment wraps the Razorpay gateway: order creation before the
// client opens the payment widget, and signature verification of the widget's
// callback.
package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"

	razorpay "github.com/razorpay/razorpay-go"
)

// ErrNotConfigured means the gateway keys are missing server-side. The
// storefront treats this as "offer cash on delivery only", not as a crash.
var ErrNotConfigured = errors.New("razorpay keys are not configured")

type Gateway struct {
	keyID     string
	keySecret string
	client    *razorpay.Client
}

func NewGateway(keyID, keySecret string) *Gateway {
	g := &Gateway{keyID: keyID, keySecret: keySecret}
	if g.Configured() {
		g.client = razorpay.NewClient(keyID, keySecret)
	}
	return g
}

func (g *Gateway) Configured() bool {
	return g.keyID != "" && g.keySecret != ""
}

// PublicKey is the key id the checkout widget needs; safe to expose.
func (g *Gateway) PublicKey() string {
	return g.keyID
}

// CreateOrder registers a payment intent with the gateway and returns its
// opaque order id. The amount is integer paise; receipt carries our order
// number so the two sides can be reconciled.
func (g *Gateway) CreateOrder(totalPaise int64, orderNumber, contactEmail string) (string, error) {
	if !g.Configured() {
		return "", ErrNotConfigured
	}

	data := map[string]interface{}{
		"amount":   totalPaise,
		"currency": "INR",
		"receipt":  orderNumber,
		"notes": map[string]interface{}{
			"order_number":   orderNumber,
			"customer_email": contactEmail,
		},
	}

	body, err := g.client.Order.Create(data, nil)
	if err != nil {
		return "", fmt.Errorf("razorpay order create: %w", err)
	}

	id, ok := body["id"].(string)
	if !ok || id == "" {
		return "", errors.New("razorpay order create: response has no order id")
	}
	return id, nil
}

// VerifySignature checks the callback signature: HMAC-SHA256 over
// "orderId|paymentId" with the key secret, hex-encoded, compared in constant
// time. A single flipped character must fail.
func (g *Gateway) VerifySignature(gatewayOrderID, paymentID, signature string) bool {
	if !g.Configured() {
		return false
	}

	mac := hmac.New(sha256.New, []byte(g.keySecret))
	mac.Write([]byte(gatewayOrderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(signature))
}
