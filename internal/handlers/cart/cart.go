// Package cart is the HTTP surface over the cart store.
package cart

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"lumina_back_end/internal/cart"
	"lumina_back_end/internal/catalog"
	"lumina_back_end/internal/models"
	"lumina_back_end/internal/pricing"
)

// ProductSource validates cart lines against the catalog.
type ProductSource interface {
	ByID(ctx context.Context, id string) (*models.Product, error)
}

type Handler struct {
	store    cart.Store
	products ProductSource
}

func NewHandler(store cart.Store, products ProductSource) *Handler {
	return &Handler{store: store, products: products}
}

// owner identifies the cart: the authenticated user id, or the client's
// opaque cart token for guests.
func owner(c *gin.Context) string {
	if userID := c.GetString("user_id"); userID != "" {
		return userID
	}
	return c.GetHeader("X-Cart-Token")
}

func (h *Handler) respondCart(c *gin.Context, own string) {
	items, err := h.store.Get(c.Request.Context(), own)
	if err != nil {
		log.Println("❌ Cart read failed:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not load cart"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items":    items,
		"subtotal": pricing.Rupees(cart.Subtotal(items)),
	})
}

// GetCart handles GET /api/cart.
func (h *Handler) GetCart(c *gin.Context) {
	own := owner(c)
	if own == "" {
		c.JSON(http.StatusOK, gin.H{"items": []models.CartItem{}, "subtotal": 0.0})
		return
	}
	h.respondCart(c, own)
}

// AddToCart handles POST /api/cart/add. The product snapshot (name, price)
// comes from the catalog, never from the client.
func (h *Handler) AddToCart(c *gin.Context) {
	own := owner(c)
	if own == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing cart token"})
		return
	}

	var input struct {
		ProductID string `json:"product_id"`
		Quantity  int    `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.ProductID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if input.Quantity <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Quantity must be at least 1"})
		return
	}

	product, err := h.products.ByID(c.Request.Context(), input.ProductID)
	if errors.Is(err, catalog.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}
	if err != nil {
		log.Println("❌ Product lookup failed:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not load product"})
		return
	}

	// cap the merged quantity at what is actually in stock
	existing, err := h.store.Get(c.Request.Context(), own)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not load cart"})
		return
	}
	inCart := 0
	for _, it := range existing {
		if it.ProductID == input.ProductID {
			inCart = it.Quantity
		}
	}
	if inCart+input.Quantity > product.Stock {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Not enough stock",
			"available": product.Stock,
			"requested": inCart + input.Quantity,
		})
		return
	}

	err = h.store.Add(c.Request.Context(), own, models.CartItem{
		ProductID:   input.ProductID,
		ProductName: product.Name,
		Price:       product.Price,
		Quantity:    input.Quantity,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not update cart"})
		return
	}

	h.respondCart(c, own)
}

// UpdateCart handles PUT /api/cart/update: replaces a line's quantity.
func (h *Handler) UpdateCart(c *gin.Context) {
	own := owner(c)
	if own == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing cart token"})
		return
	}

	var input struct {
		ProductID string `json:"product_id"`
		Quantity  int    `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.ProductID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	product, err := h.products.ByID(c.Request.Context(), input.ProductID)
	if errors.Is(err, catalog.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not load product"})
		return
	}
	if input.Quantity > product.Stock {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Not enough stock", "available": product.Stock})
		return
	}

	err = h.store.SetQuantity(c.Request.Context(), own, input.ProductID, input.Quantity)
	switch {
	case errors.Is(err, cart.ErrBadQuantity):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Quantity must be at least 1"})
		return
	case errors.Is(err, cart.ErrNotInCart):
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not in cart"})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not update cart"})
		return
	}

	h.respondCart(c, own)
}

// RemoveFromCart handles DELETE /api/cart/remove/:productId.
func (h *Handler) RemoveFromCart(c *gin.Context) {
	own := owner(c)
	if own == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing cart token"})
		return
	}

	if err := h.store.Remove(c.Request.Context(), own, c.Param("productId")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not update cart"})
		return
	}
	h.respondCart(c, own)
}

// ClearCart handles DELETE /api/cart/clear.
func (h *Handler) ClearCart(c *gin.Context) {
	own := owner(c)
	if own == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing cart token"})
		return
	}

	if err := h.store.Clear(c.Request.Context(), own); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not clear cart"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": []models.CartItem{}, "subtotal": 0.0})
}

// ShippingOptions handles GET /api/shipping/options?cart_total= so the
// checkout page can show the speed tiers before submission.
func (h *Handler) ShippingOptions(c *gin.Context) {
	var cartTotal float64
	if total := c.Query("cart_total"); total != "" {
		if n, err := parseFloat(total); err == nil {
			cartTotal = n
		}
	}

	freeThreshold := pricing.Rupees(pricing.FreeShippingThresholdPaise)
	isFree := cartTotal > freeThreshold

	options := []models.ShippingOption{
		{
			ID:            pricing.SpeedStandard,
			Name:          "Standard Delivery",
			Description:   "Delivered in 3-5 business days",
			Price:         pricing.Rupees(pricing.StandardShippingPaise),
			EstimatedDays: 5,
		},
		{
			ID:            pricing.SpeedExpress,
			Name:          "Express Delivery",
			Description:   "Delivered in 1-2 business days",
			Price:         pricing.Rupees(pricing.ExpressShippingPaise),
			EstimatedDays: 2,
		},
	}
	if isFree {
		options[0].Price = 0
		options[0].Name = "Free Standard Delivery"
	}

	c.JSON(http.StatusOK, models.ShippingCalculation{
		Options:       options,
		FreeThreshold: freeThreshold,
		CartTotal:     cartTotal,
		IsFree:        isFree,
	})
}

func parseFloat(s string) (float64, error) {
	var f float64
	_, err := fmt.Sscanf(s, "%f", &f)
	return f, err
}
