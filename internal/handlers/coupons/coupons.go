// Package coupons serves coupon validation for the cart page.
package coupons

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"lumina_back_end/internal/coupons"
	"lumina_back_end/internal/pricing"
)

type Handler struct {
	repo *coupons.Repository
}

func NewHandler(repo *coupons.Repository) *Handler {
	return &Handler{repo: repo}
}

// Validate handles GET /api/coupons/validate?code=&cart_total=. The cart
// total (rupees) is optional; when present the minimum-amount rule is
// checked too, so the UI can explain why a real code gives no discount.
func (h *Handler) Validate(c *gin.Context) {
	code := c.Query("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"valid": false, "error": "Code is required"})
		return
	}

	coupon, err := h.repo.Resolve(c.Request.Context(), code)
	if err != nil {
		log.Println("❌ Coupon lookup failed:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"valid": false, "error": "Could not validate coupon"})
		return
	}
	if coupon == nil {
		c.JSON(http.StatusNotFound, gin.H{"valid": false, "error": "Invalid or expired coupon code"})
		return
	}

	if total := c.Query("cart_total"); total != "" {
		var rupees float64
		if _, err := fmt.Sscanf(total, "%f", &rupees); err == nil {
			if coupons.PercentFor(coupon, pricing.ToPaise(rupees)) == 0 {
				c.JSON(http.StatusOK, gin.H{
					"valid":      false,
					"error":      "Cart total is below the coupon minimum",
					"min_amount": pricing.Rupees(coupon.MinAmountPaise),
				})
				return
			}
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"valid":   true,
		"code":    coupon.Code,
		"percent": coupon.Percent,
	})
}
