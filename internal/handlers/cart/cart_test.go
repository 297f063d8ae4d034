package cart

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lumina_back_end/internal/cart"
	"lumina_back_end/internal/catalog"
	"lumina_back_end/internal/models"
)

type fakeCatalog struct {
	products map[string]*models.Product
}

func (f *fakeCatalog) ByID(ctx context.Context, id string) (*models.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, catalog.ErrNotFound
	}
	return p, nil
}

func newRouter() (*gin.Engine, *fakeCatalog) {
	gin.SetMode(gin.TestMode)
	source := &fakeCatalog{products: map[string]*models.Product{
		"p1": {Name: "Vanilla Dream", Price: 599, Stock: 5},
	}}
	h := NewHandler(cart.NewMemoryStore(), source)

	r := gin.New()
	r.GET("/api/cart", h.GetCart)
	r.POST("/api/cart/add", h.AddToCart)
	r.PUT("/api/cart/update", h.UpdateCart)
	r.DELETE("/api/cart/remove/:productId", h.RemoveFromCart)
	r.DELETE("/api/cart/clear", h.ClearCart)
	r.GET("/api/shipping/options", h.ShippingOptions)
	return r, source
}

func do(r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Cart-Token", "guest-token-1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type cartResponse struct {
	Items    []models.CartItem `json:"items"`
	Subtotal float64           `json:"subtotal"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) cartResponse {
	t.Helper()
	var resp cartResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestAddToCartSnapshotsCatalogPrice(t *testing.T) {
	r, _ := newRouter()

	w := do(r, http.MethodPost, "/api/cart/add", gin.H{"product_id": "p1", "quantity": 2})
	require.Equal(t, http.StatusOK, w.Code)

	resp := decode(t, w)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "Vanilla Dream", resp.Items[0].ProductName)
	assert.Equal(t, 599.0, resp.Items[0].Price)
	assert.Equal(t, 2, resp.Items[0].Quantity)
	assert.Equal(t, 1198.0, resp.Subtotal)
}

func TestAddToCartMergesLines(t *testing.T) {
	r, _ := newRouter()

	do(r, http.MethodPost, "/api/cart/add", gin.H{"product_id": "p1", "quantity": 2})
	w := do(r, http.MethodPost, "/api/cart/add", gin.H{"product_id": "p1", "quantity": 1})

	resp := decode(t, w)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, 3, resp.Items[0].Quantity)
}

func TestAddToCartEnforcesStock(t *testing.T) {
	r, _ := newRouter()

	do(r, http.MethodPost, "/api/cart/add", gin.H{"product_id": "p1", "quantity": 4})
	w := do(r, http.MethodPost, "/api/cart/add", gin.H{"product_id": "p1", "quantity": 2})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Not enough stock")
}

func TestAddToCartUnknownProduct(t *testing.T) {
	r, _ := newRouter()

	w := do(r, http.MethodPost, "/api/cart/add", gin.H{"product_id": "ghost", "quantity": 1})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAddToCartWithoutToken(t *testing.T) {
	r, _ := newRouter()

	raw, _ := json.Marshal(gin.H{"product_id": "p1", "quantity": 1})
	req := httptest.NewRequest(http.MethodPost, "/api/cart/add", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Missing cart token")
}

func TestUpdateCart(t *testing.T) {
	r, _ := newRouter()

	do(r, http.MethodPost, "/api/cart/add", gin.H{"product_id": "p1", "quantity": 2})
	w := do(r, http.MethodPut, "/api/cart/update", gin.H{"product_id": "p1", "quantity": 5})

	require.Equal(t, http.StatusOK, w.Code)
	resp := decode(t, w)
	assert.Equal(t, 5, resp.Items[0].Quantity)

	w = do(r, http.MethodPut, "/api/cart/update", gin.H{"product_id": "p1", "quantity": 6})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Not enough stock")
}

func TestUpdateCartNotInCart(t *testing.T) {
	r, _ := newRouter()

	w := do(r, http.MethodPut, "/api/cart/update", gin.H{"product_id": "p1", "quantity": 1})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Product not in cart")
}

func TestRemoveAndClear(t *testing.T) {
	r, _ := newRouter()

	do(r, http.MethodPost, "/api/cart/add", gin.H{"product_id": "p1", "quantity": 2})

	w := do(r, http.MethodDelete, "/api/cart/remove/p1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode(t, w).Items)

	do(r, http.MethodPost, "/api/cart/add", gin.H{"product_id": "p1", "quantity": 2})
	w = do(r, http.MethodDelete, "/api/cart/clear", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0.0, decode(t, w).Subtotal)
}

func TestShippingOptions(t *testing.T) {
	r, _ := newRouter()

	w := do(r, http.MethodGet, "/api/shipping/options?cart_total=500", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var calc models.ShippingCalculation
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &calc))
	assert.False(t, calc.IsFree)
	require.Len(t, calc.Options, 2)
	assert.Equal(t, 99.0, calc.Options[0].Price)
	assert.Equal(t, 199.0, calc.Options[1].Price)

	w = do(r, http.MethodGet, "/api/shipping/options?cart_total=1500", nil)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &calc))
	assert.True(t, calc.IsFree)
	assert.Equal(t, 0.0, calc.Options[0].Price)
	assert.Equal(t, "Free Standard Delivery", calc.Options[0].Name)
}
