// Package orders exposes the track-order lookup and the account order
// history.
package orders

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"lumina_back_end/internal/models"
	"lumina_back_end/internal/orders"
	"lumina_back_end/internal/pricing"
)

type Repo interface {
	Track(ctx context.Context, orderNumber, email string) (*models.Order, error)
	ListByUser(ctx context.Context, userID string) ([]models.Order, error)
}

type Handler struct {
	repo Repo
}

func NewHandler(repo Repo) *Handler {
	return &Handler{repo: repo}
}

// Track handles POST /api/orders/track. The order number alone is not enough:
// the contact email must match too, and any mismatch gets the same generic
// not-found, so order numbers cannot be enumerated.
func (h *Handler) Track(c *gin.Context) {
	var req struct {
		OrderNumber string `json:"order_number"`
		Email       string `json:"email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.OrderNumber == "" || req.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Order number and email are required"})
		return
	}

	o, err := h.repo.Track(c.Request.Context(), strings.TrimSpace(req.OrderNumber), req.Email)
	if errors.Is(err, orders.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found. Please check your order number and email"})
		return
	}
	if err != nil {
		log.Println("❌ Order lookup failed:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not look up order, please retry"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"order_number": o.OrderNumber,
		"status":       o.Status,
		"order_date":   o.CreatedAt.Format("January 2, 2006"),
		"items":        itemsJSON(o.Items),
		"totals":       totalsJSON(o),
		"shipping_address": gin.H{
			"name":    o.Address.Name,
			"address": o.Address.Address,
			"city":    o.Address.City,
			"state":   o.Address.State,
			"pincode": o.Address.Pincode,
		},
		"timeline": orders.Timeline(o),
	})
}

// MyOrders handles GET /api/orders for authenticated users.
func (h *Handler) MyOrders(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	list, err := h.repo.ListByUser(c.Request.Context(), userID)
	if err != nil {
		log.Println("❌ Order history query failed:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not load orders"})
		return
	}

	out := make([]gin.H, 0, len(list))
	for i := range list {
		o := &list[i]
		out = append(out, gin.H{
			"order_number":   o.OrderNumber,
			"status":         o.Status,
			"payment_method": o.PaymentMethod,
			"total":          pricing.Rupees(o.TotalPaise),
			"created_at":     o.CreatedAt,
			"items":          itemsJSON(o.Items),
		})
	}

	c.JSON(http.StatusOK, gin.H{"orders": out})
}

func itemsJSON(items []models.OrderItem) []gin.H {
	out := make([]gin.H, 0, len(items))
	for _, it := range items {
		out = append(out, gin.H{
			"product_id":   it.ProductID,
			"product_name": it.ProductName,
			"price":        pricing.Rupees(it.PricePaise),
			"quantity":     it.Quantity,
			"total":        pricing.Rupees(it.TotalPaise),
		})
	}
	return out
}

func totalsJSON(o *models.Order) gin.H {
	return gin.H{
		"subtotal": pricing.Rupees(o.SubtotalPaise),
		"discount": pricing.Rupees(o.DiscountPaise),
		"shipping": pricing.Rupees(o.ShippingPaise),
		"tax":      pricing.Rupees(o.TaxPaise),
		"total":    pricing.Rupees(o.TotalPaise),
	}
}
