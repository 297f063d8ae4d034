// Package checkout validates a submitted cart and assembles the normalized
// order draft that the persistence and payment layers consume.
package checkout

import (
	"regexp"
	"strings"

	"github.com/google/uuid"

	"lumina_back_end/internal/models"
	"lumina_back_end/internal/pricing"
)

// Indian mobile numbers: 10 digits, first digit 6-9.
var phonePattern = regexp.MustCompile(`^[6-9]\d{9}$`)

var pincodePattern = regexp.MustCompile(`^\d{6}$`)

var nonDigits = regexp.MustCompile(`\D`)

// DraftRequest is the JSON body of the order-creation endpoints. Amounts are
// rupees (what the UI displays); the assembler converts to paise.
type DraftRequest struct {
	Items           []DraftItem            `json:"items"`
	ShippingAddress models.ShippingAddress `json:"shipping_address"`
	CouponCode      string                 `json:"coupon_code"`
	ShippingSpeed   string                 `json:"shipping_speed"`
	PaymentMethod   string                 `json:"payment_method"`
	GuestName       string                 `json:"guest_name"`
	GuestEmail      string                 `json:"guest_email"`
	GuestPhone      string                 `json:"guest_phone"`
}

type DraftItem struct {
	ProductID   string  `json:"product_id"`
	ProductName string  `json:"product_name"`
	Price       float64 `json:"price"` // unit price in rupees
	Quantity    int     `json:"quantity"`
}

// Draft is the normalized submission: validated address, snapshotted item
// lines and a server-computed breakdown, all in paise.
type Draft struct {
	Items         []models.OrderItem
	Address       models.ShippingAddress
	Breakdown     pricing.Breakdown
	PaymentMethod string
	UserID        string // empty for guest checkout
	GuestName     string
	GuestEmail    string
	GuestPhone    string
	CouponCode    string
}

// AssembleDraft validates the request and builds the draft. couponPercent is
// the discount already resolved from the coupon store (0 when no coupon
// applies). userID comes from the auth middleware and is empty for guests.
func AssembleDraft(req DraftRequest, couponPercent int, userID string) (*Draft, error) {
	if len(req.Items) == 0 {
		return nil, invalid("items", "cart is empty")
	}

	addr := req.ShippingAddress
	for field, value := range map[string]string{
		"name":    addr.Name,
		"email":   addr.Email,
		"address": addr.Address,
		"city":    addr.City,
		"state":   addr.State,
	} {
		if strings.TrimSpace(value) == "" {
			return nil, invalid(field, "required field is missing")
		}
	}

	phone := nonDigits.ReplaceAllString(addr.Phone, "")
	if !phonePattern.MatchString(phone) {
		return nil, invalid("phone", "enter a valid 10-digit mobile number")
	}
	addr.Phone = phone

	if !pincodePattern.MatchString(strings.TrimSpace(addr.Pincode)) {
		return nil, invalid("pincode", "enter a valid 6-digit pincode")
	}
	addr.Pincode = strings.TrimSpace(addr.Pincode)

	method := req.PaymentMethod
	if method == "" {
		method = models.PaymentMethodRazorpay
	}
	if method != models.PaymentMethodRazorpay && method != models.PaymentMethodCOD {
		return nil, invalid("payment_method", "unknown payment method")
	}

	var subtotal int64
	items := make([]models.OrderItem, 0, len(req.Items))
	for _, it := range req.Items {
		if it.ProductID == "" || it.ProductName == "" {
			return nil, invalid("items", "item is missing a product reference")
		}
		if it.Quantity < 1 {
			return nil, invalid("items", "item quantity must be at least 1")
		}
		unit := pricing.ToPaise(it.Price)
		line := models.OrderItem{
			ID:          uuid.New(),
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			PricePaise:  unit,
			Quantity:    it.Quantity,
			TotalPaise:  unit * int64(it.Quantity),
		}
		subtotal += line.TotalPaise
		items = append(items, line)
	}

	// The breakdown is always recomputed here; client-sent totals are only
	// ever used for display.
	breakdown := pricing.Quote(subtotal, couponPercent, req.ShippingSpeed)

	draft := &Draft{
		Items:         items,
		Address:       addr,
		Breakdown:     breakdown,
		PaymentMethod: method,
		UserID:        userID,
		GuestName:     req.GuestName,
		GuestEmail:    strings.ToLower(strings.TrimSpace(req.GuestEmail)),
		GuestPhone:    req.GuestPhone,
	}
	if couponPercent > 0 {
		draft.CouponCode = strings.ToUpper(strings.TrimSpace(req.CouponCode))
	}

	// Guest contact falls back to the shipping address fields, like the
	// checkout form does.
	if draft.GuestName == "" {
		draft.GuestName = addr.Name
	}
	if draft.GuestEmail == "" {
		draft.GuestEmail = strings.ToLower(addr.Email)
	}
	if draft.GuestPhone == "" {
		draft.GuestPhone = addr.Phone
	}

	return draft, nil
}

// ToOrder copies the draft into an order record with the given number. The
// initial status depends on the payment method: COD orders are confirmed
// immediately, gateway orders wait for payment.
func (d *Draft) ToOrder(orderNumber string) *models.Order {
	status := models.StatusPending
	if d.PaymentMethod == models.PaymentMethodCOD {
		status = models.StatusConfirmed
	}

	return &models.Order{
		ID:            uuid.New(),
		OrderNumber:   orderNumber,
		UserID:        d.UserID,
		GuestName:     d.GuestName,
		GuestEmail:    d.GuestEmail,
		GuestPhone:    d.GuestPhone,
		Items:         d.Items,
		SubtotalPaise: d.Breakdown.SubtotalPaise,
		DiscountPaise: d.Breakdown.DiscountPaise,
		ShippingPaise: d.Breakdown.ShippingPaise,
		TaxPaise:      d.Breakdown.TaxPaise,
		TotalPaise:    d.Breakdown.TotalPaise,
		PaymentMethod: d.PaymentMethod,
		Status:        status,
		CouponCode:    d.CouponCode,
		Address:       d.Address,
	}
}
