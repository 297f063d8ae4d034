package models

import (
	"time"

	"github.com/google/uuid"
)

type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusConfirmed OrderStatus = "confirmed"
	StatusPaid      OrderStatus = "paid"
	StatusPacked    OrderStatus = "packed"
	StatusShipped   OrderStatus = "shipped"
	StatusInTransit OrderStatus = "in_transit"
	StatusDelivered OrderStatus = "delivered"
	StatusCancelled OrderStatus = "cancelled"
)

const (
	PaymentMethodRazorpay = "razorpay"
	PaymentMethodCOD      = "cod"
)

type OrderItem struct {
	ID          uuid.UUID `json:"id"`
	ProductID   string    `json:"product_id"`
	ProductName string    `json:"product_name"`
	PricePaise  int64     `json:"price_paise"`
	Quantity    int       `json:"quantity"`
	TotalPaise  int64     `json:"total_paise"`
}

// Order is the persisted record. Item name and price are snapshots taken at
// creation time; amounts are integer paise and never recomputed afterward.
type Order struct {
	ID              uuid.UUID       `json:"id"`
	OrderNumber     string          `json:"order_number"`
	UserID          string          `json:"user_id,omitempty"` // empty for guest checkout
	GuestName       string          `json:"guest_name"`
	GuestEmail      string          `json:"guest_email"`
	GuestPhone      string          `json:"guest_phone"`
	Items           []OrderItem     `json:"items"`
	SubtotalPaise   int64           `json:"subtotal_paise"`
	DiscountPaise   int64           `json:"discount_paise"`
	ShippingPaise   int64           `json:"shipping_paise"`
	TaxPaise        int64           `json:"tax_paise"`
	TotalPaise      int64           `json:"total_paise"`
	PaymentMethod   string          `json:"payment_method"`
	Status          OrderStatus     `json:"status"`
	PaymentIntentID string          `json:"payment_intent_id,omitempty"`
	CouponCode      string          `json:"coupon_code,omitempty"`
	Address         ShippingAddress `json:"shipping_address"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}
