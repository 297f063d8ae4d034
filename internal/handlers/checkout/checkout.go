// Package checkout exposes the order-creation and payment endpoints.
package checkout

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"lumina_back_end/internal/checkout"
	"lumina_back_end/internal/coupons"
	"lumina_back_end/internal/models"
	"lumina_back_end/internal/orders"
	"lumina_back_end/internal/payment"
	"lumina_back_end/internal/pricing"
	"lumina_back_end/internal/utils"
)

// OrderRepo is the slice of the orders repository the checkout flow needs.
type OrderRepo interface {
	NextNumber(ctx context.Context) (string, error)
	Create(ctx context.Context, o *models.Order) error
	MarkPaid(ctx context.Context, orderNumber, paymentID string) (alreadyPaid bool, err error)
	GetByNumber(ctx context.Context, orderNumber string) (*models.Order, error)
}

// PaymentGateway is what the handlers need from the Razorpay adapter.
type PaymentGateway interface {
	Configured() bool
	PublicKey() string
	CreateOrder(totalPaise int64, orderNumber, contactEmail string) (string, error)
	VerifySignature(gatewayOrderID, paymentID, signature string) bool
}

// CouponSource resolves a code to its rule; nil means no discount.
type CouponSource interface {
	Resolve(ctx context.Context, code string) (*models.Coupon, error)
}

type Handler struct {
	repo    OrderRepo
	gateway PaymentGateway
	coupons CouponSource

	// notify dispatches the confirmation email; swapped out in tests.
	notify func(o *models.Order)
}

func NewHandler(repo OrderRepo, gateway PaymentGateway, couponSource CouponSource) *Handler {
	return &Handler{
		repo:    repo,
		gateway: gateway,
		coupons: couponSource,
		notify:  sendConfirmation,
	}
}

// assemble binds and validates the draft, resolving the coupon first. An
// unknown coupon code is a validation error, not a silent zero discount.
func (h *Handler) assemble(c *gin.Context) (*checkout.Draft, bool) {
	var req checkout.DraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return nil, false
	}

	percent := 0
	if req.CouponCode != "" {
		coupon, err := h.coupons.Resolve(c.Request.Context(), req.CouponCode)
		if err != nil {
			log.Println("❌ Coupon lookup failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not validate coupon, please retry"})
			return nil, false
		}
		if coupon == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or expired coupon code"})
			return nil, false
		}
		var subtotal int64
		for _, it := range req.Items {
			subtotal += pricing.ToPaise(it.Price) * int64(it.Quantity)
		}
		percent = coupons.PercentFor(coupon, subtotal)
	}

	draft, err := checkout.AssembleDraft(req, percent, c.GetString("user_id"))
	if err != nil {
		var vErr *checkout.ValidationError
		if errors.As(err, &vErr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Message, "field": vErr.Field})
		} else {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		}
		return nil, false
	}
	return draft, true
}

// persist allocates a number and writes the order, retrying once when the
// random suffix loses a uniqueness race.
func (h *Handler) persist(ctx context.Context, draft *checkout.Draft, gatewayOrderID string) (*models.Order, error) {
	for attempt := 0; attempt < 2; attempt++ {
		number, err := h.repo.NextNumber(ctx)
		if err != nil {
			return nil, err
		}
		o := draft.ToOrder(number)
		o.PaymentIntentID = gatewayOrderID

		err = h.repo.Create(ctx, o)
		if orders.IsDuplicateNumber(err) {
			log.Println("⚠️  Order number collision, retrying:", number)
			continue
		}
		if err != nil {
			return nil, err
		}
		return o, nil
	}
	return nil, orders.ErrNoFreeNumber
}

// CreateOrder handles POST /api/orders/create, the COD path (and the
// fallback when the gateway is down).
func (h *Handler) CreateOrder(c *gin.Context) {
	draft, ok := h.assemble(c)
	if !ok {
		return
	}

	o, err := h.persist(c.Request.Context(), draft, "")
	if err != nil {
		log.Println("❌ Order creation failed:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create order, please try again"})
		return
	}

	log.Printf("🛍️  Order %s created (%s, ₹%.0f) for %s", o.OrderNumber, o.PaymentMethod, pricing.Rupees(o.TotalPaise), o.GuestEmail)

	if o.Status == models.StatusConfirmed {
		go h.notify(o)
	}

	c.JSON(http.StatusOK, gin.H{
		"orderNumber": o.OrderNumber,
		"orderId":     o.ID,
	})
}

// RazorpayOrder handles POST /api/checkout/razorpay: creates the gateway
// order first, then persists the local order carrying its reference, so the
// payment widget never opens for an order we did not record.
func (h *Handler) RazorpayOrder(c *gin.Context) {
	if !h.gateway.Configured() {
		log.Println("❌ Razorpay keys are not set — cannot create a gateway order")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Online payment is not configured. Please use cash on delivery"})
		return
	}

	draft, ok := h.assemble(c)
	if !ok {
		return
	}
	draft.PaymentMethod = models.PaymentMethodRazorpay

	number, err := h.repo.NextNumber(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create order, please try again"})
		return
	}

	gatewayOrderID, err := h.gateway.CreateOrder(draft.Breakdown.TotalPaise, number, draft.GuestEmail)
	if err != nil {
		log.Println("❌ Razorpay order creation failed:", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Payment service is unavailable, please retry"})
		return
	}

	o := draft.ToOrder(number)
	o.PaymentIntentID = gatewayOrderID
	if err := h.repo.Create(c.Request.Context(), o); err != nil {
		// The gateway order exists but ours does not; the widget must not
		// open. Razorpay expires unpaid orders on its own.
		log.Println("❌ Order persist after gateway create failed:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create order, please try again"})
		return
	}

	log.Printf("💳 Gateway order %s created for %s (₹%.0f)", gatewayOrderID, o.OrderNumber, pricing.Rupees(o.TotalPaise))

	c.JSON(http.StatusOK, gin.H{
		"orderId":     gatewayOrderID,
		"orderNumber": o.OrderNumber,
	})
}

// VerifyPayment handles POST /api/checkout/verify. A signature mismatch is a
// security rejection: the order stays unpaid and the response says so.
func (h *Handler) VerifyPayment(c *gin.Context) {
	var req struct {
		RazorpayOrderID   string `json:"razorpay_order_id"`
		RazorpayPaymentID string `json:"razorpay_payment_id"`
		RazorpaySignature string `json:"razorpay_signature"`
		OrderNumber       string `json:"order_number"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
		return
	}

	if !h.gateway.Configured() {
		log.Println("❌ RAZORPAY_KEY_SECRET is not set — cannot verify payment signature")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Payment key not configured"})
		return
	}

	if !h.gateway.VerifySignature(req.RazorpayOrderID, req.RazorpayPaymentID, req.RazorpaySignature) {
		log.Printf("🚨 Signature mismatch for order %s (gateway order %s)", req.OrderNumber, req.RazorpayOrderID)
		c.JSON(http.StatusOK, gin.H{"success": false, "message": "Invalid signature"})
		return
	}

	alreadyPaid, err := h.repo.MarkPaid(c.Request.Context(), req.OrderNumber, req.RazorpayPaymentID)
	if errors.Is(err, orders.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Order not found"})
		return
	}
	if err != nil {
		log.Println("❌ Payment status update failed:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Could not update order"})
		return
	}

	if !alreadyPaid {
		log.Printf("✅ Payment verified for %s (payment %s)", req.OrderNumber, req.RazorpayPaymentID)
		if o, err := h.repo.GetByNumber(c.Request.Context(), req.OrderNumber); err == nil {
			go h.notify(o)
		}
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Status handles GET /api/checkout/status so the client can decide whether
// to offer online payment at all.
func (h *Handler) Status(c *gin.Context) {
	var publicKey any
	if h.gateway.Configured() {
		publicKey = h.gateway.PublicKey()
	}
	c.JSON(http.StatusOK, gin.H{
		"razorpay_available": h.gateway.Configured(),
		"public_key":         publicKey,
	})
}

var _ PaymentGateway = (*payment.Gateway)(nil)

func sendConfirmation(o *models.Order) {
	html := utils.GenerateOrderConfirmationHTML(o)

	pdf, err := utils.GenerateInvoicePDF(o)
	if err != nil {
		log.Println("❌ Invoice PDF generation failed:", err)
		pdf = nil
	}

	if err := utils.SendConfirmationEmail(o.GuestEmail, "Your Lumina Crafts order "+o.OrderNumber, html, pdf); err != nil {
		log.Println("❌ Confirmation email failed:", err)
	} else {
		log.Println("📧 Confirmation email sent to", o.GuestEmail)
	}
}
