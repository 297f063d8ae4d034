package orders

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lumina_back_end/internal/models"
	"lumina_back_end/internal/orders"
)

type fakeRepo struct {
	byNumber map[string]*models.Order
	byUser   map[string][]models.Order
}

func (f *fakeRepo) Track(ctx context.Context, orderNumber, email string) (*models.Order, error) {
	o, ok := f.byNumber[orderNumber]
	if !ok || o.GuestEmail != email {
		return nil, orders.ErrNotFound
	}
	return o, nil
}

func (f *fakeRepo) ListByUser(ctx context.Context, userID string) ([]models.Order, error) {
	return f.byUser[userID], nil
}

func shippedOrder() *models.Order {
	return &models.Order{
		OrderNumber: "LMN-2025-0423",
		GuestEmail:  "priya@example.com",
		Items: []models.OrderItem{
			{ProductID: "p1", ProductName: "Vanilla Dream", PricePaise: 59900, Quantity: 2, TotalPaise: 119800},
		},
		SubtotalPaise: 119800,
		TaxPaise:      21564,
		TotalPaise:    141364,
		PaymentMethod: models.PaymentMethodRazorpay,
		Status:        models.StatusShipped,
		Address: models.ShippingAddress{
			Name: "Priya Sharma", Address: "12 MG Road", City: "Bengaluru",
			State: "Karnataka", Pincode: "560001",
		},
		CreatedAt: time.Date(2025, 11, 3, 10, 30, 0, 0, time.UTC),
		UpdatedAt: time.Date(2025, 11, 6, 18, 15, 0, 0, time.UTC),
	}
}

func newRouter(repo *fakeRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(repo)
	r := gin.New()
	r.POST("/api/orders/track", h.Track)
	r.GET("/api/orders", func(c *gin.Context) {
		c.Set("user_id", "user-1")
		h.MyOrders(c)
	})
	return r
}

func track(r *gin.Engine, body gin.H) *httptest.ResponseRecorder {
	raw, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, "/api/orders/track", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestTrack(t *testing.T) {
	repo := &fakeRepo{byNumber: map[string]*models.Order{"LMN-2025-0423": shippedOrder()}}
	r := newRouter(repo)

	w := track(r, gin.H{"order_number": "LMN-2025-0423", "email": "priya@example.com"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		OrderNumber string `json:"order_number"`
		Status      string `json:"status"`
		OrderDate   string `json:"order_date"`
		Totals      struct {
			Subtotal float64 `json:"subtotal"`
			Total    float64 `json:"total"`
		} `json:"totals"`
		Timeline []models.TimelineStep `json:"timeline"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.Equal(t, "LMN-2025-0423", resp.OrderNumber)
	assert.Equal(t, "shipped", resp.Status)
	assert.Equal(t, "November 3, 2025", resp.OrderDate)
	assert.Equal(t, 1198.0, resp.Totals.Subtotal)
	assert.Equal(t, 1413.64, resp.Totals.Total)

	require.Len(t, resp.Timeline, 6)
	assert.True(t, resp.Timeline[3].Completed)  // Shipped
	assert.True(t, resp.Timeline[3].Current)    // the latest milestone reached
	assert.False(t, resp.Timeline[4].Completed) // In Transit
}

func TestTrackWrongEmail(t *testing.T) {
	repo := &fakeRepo{byNumber: map[string]*models.Order{"LMN-2025-0423": shippedOrder()}}
	r := newRouter(repo)

	w := track(r, gin.H{"order_number": "LMN-2025-0423", "email": "mallory@example.com"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "check your order number and email")
}

func TestTrackMissingFields(t *testing.T) {
	r := newRouter(&fakeRepo{})

	for _, body := range []gin.H{
		{},
		{"order_number": "LMN-2025-0423"},
		{"email": "priya@example.com"},
	} {
		w := track(r, body)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	}
}

func TestMyOrders(t *testing.T) {
	repo := &fakeRepo{byUser: map[string][]models.Order{"user-1": {*shippedOrder()}}}
	r := newRouter(repo)

	req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Orders []struct {
			OrderNumber string  `json:"order_number"`
			Total       float64 `json:"total"`
		} `json:"orders"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Orders, 1)
	assert.Equal(t, "LMN-2025-0423", resp.Orders[0].OrderNumber)
	assert.Equal(t, 1413.64, resp.Orders[0].Total)
}
