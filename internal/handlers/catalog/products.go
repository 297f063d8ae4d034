// Package catalog serves the read-only product endpoints.
package catalog

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"lumina_back_end/internal/catalog"
)

type Handler struct {
	repo *catalog.Repository
}

func NewHandler(repo *catalog.Repository) *Handler {
	return &Handler{repo: repo}
}

// ListProducts handles GET /api/products with optional ?category= and
// ?featured=true filters.
func (h *Handler) ListProducts(c *gin.Context) {
	products, err := h.repo.List(c.Request.Context(), c.Query("category"), c.Query("featured") == "true")
	if err != nil {
		log.Println("❌ Product list query failed:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not load products"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"products": products, "count": len(products)})
}

// GetProduct handles GET /api/products/:slug.
func (h *Handler) GetProduct(c *gin.Context) {
	product, err := h.repo.BySlug(c.Request.Context(), c.Param("slug"))
	if errors.Is(err, catalog.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}
	if err != nil {
		log.Println("❌ Product query failed:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not load product"})
		return
	}

	c.JSON(http.StatusOK, product)
}
