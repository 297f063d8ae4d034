// Package orders persists and queries order records on the hosted Postgres
// backend.
package orders

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"lumina_back_end/internal/database"
	"lumina_back_end/internal/models"
)

var (
	// ErrNotFound is returned for any order_number/contact pair that does not
	// match a row. Callers must not distinguish "wrong number" from "wrong
	// email".
	ErrNotFound = errors.New("order not found")

	// ErrNoFreeNumber means number allocation kept colliding; practically
	// only reachable when a year's number space is nearly full.
	ErrNoFreeNumber = errors.New("could not allocate an order number")

	ErrOrderCancelled = errors.New("order has been cancelled")
)

const numberAttempts = 5

type Repository struct {
	pool   database.PgxPool
	prefix string
}

func NewRepository(pool database.PgxPool, prefix string) *Repository {
	return &Repository{pool: pool, prefix: prefix}
}

// NextNumber draws random order numbers until one is unused. The insert can
// still lose a race on the unique index; Create reports that as a duplicate
// and the caller retries the whole flow.
func (r *Repository) NextNumber(ctx context.Context) (string, error) {
	for range numberAttempts {
		n := newNumber(r.prefix)
		var exists bool
		err := r.pool.QueryRow(ctx,
			`SELECT EXISTS(SELECT 1 FROM orders WHERE order_number = $1)`, n,
		).Scan(&exists)
		if err != nil {
			return "", fmt.Errorf("check order number: %w", err)
		}
		if !exists {
			return n, nil
		}
	}
	return "", ErrNoFreeNumber
}

// Create writes the order header, its line items and the shipping address in
// a single transaction: either the whole order exists afterwards or none of
// it does.
func (r *Repository) Create(ctx context.Context, o *models.Order) error {
	now := time.Now()
	o.CreatedAt = now
	o.UpdatedAt = now

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	var userID any
	if o.UserID != "" {
		userID = o.UserID
	}
	var intentID any
	if o.PaymentIntentID != "" {
		intentID = o.PaymentIntentID
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO orders (id, order_number, user_id, guest_name, guest_email, guest_phone,
		                     subtotal_paise, discount_paise, shipping_paise, tax_paise, total_paise,
		                     payment_method, status, payment_intent_id, coupon_code, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`,
		o.ID, o.OrderNumber, userID, o.GuestName, strings.ToLower(o.GuestEmail), o.GuestPhone,
		o.SubtotalPaise, o.DiscountPaise, o.ShippingPaise, o.TaxPaise, o.TotalPaise,
		o.PaymentMethod, string(o.Status), intentID, o.CouponCode, o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	for _, it := range o.Items {
		_, err = tx.Exec(ctx,
			`INSERT INTO order_items (id, order_id, product_id, product_name, price_paise, quantity, total_paise)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			it.ID, o.ID, it.ProductID, it.ProductName, it.PricePaise, it.Quantity, it.TotalPaise,
		)
		if err != nil {
			return fmt.Errorf("insert order item: %w", err)
		}
	}

	a := o.Address
	_, err = tx.Exec(ctx,
		`INSERT INTO shipping_addresses (id, order_id, name, phone, address, city, state, pincode)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		uuid.New(), o.ID, a.Name, a.Phone, a.Address, a.City, a.State, a.Pincode,
	)
	if err != nil {
		return fmt.Errorf("insert shipping address: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// IsDuplicateNumber reports whether err is the unique violation on
// orders.order_number, meaning the caller should retry with a fresh number.
func IsDuplicateNumber(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// MarkPaid transitions an order to paid and stores the gateway payment id as
// the new payment reference. Idempotent: a repeat of the same callback finds
// the order already paid and reports alreadyPaid without writing anything.
func (r *Repository) MarkPaid(ctx context.Context, orderNumber, paymentID string) (alreadyPaid bool, err error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE orders SET status = 'paid', payment_intent_id = $2, updated_at = now()
		 WHERE order_number = $1 AND status NOT IN ('paid', 'cancelled')`,
		orderNumber, paymentID,
	)
	if err != nil {
		return false, fmt.Errorf("mark paid: %w", err)
	}
	if tag.RowsAffected() == 1 {
		return false, nil
	}

	var status string
	err = r.pool.QueryRow(ctx,
		`SELECT status FROM orders WHERE order_number = $1`, orderNumber,
	).Scan(&status)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, ErrNotFound
	}
	if err != nil {
		return false, fmt.Errorf("check status: %w", err)
	}
	if status == string(models.StatusCancelled) {
		return false, ErrOrderCancelled
	}
	return true, nil
}

// Track fetches an order by number and verifying contact email. Both must
// match; any mismatch is the same ErrNotFound.
func (r *Repository) Track(ctx context.Context, orderNumber, email string) (*models.Order, error) {
	o := &models.Order{}
	var userID, intentID, couponCode *string

	err := r.pool.QueryRow(ctx,
		`SELECT id, order_number, user_id, guest_name, guest_email, guest_phone,
		        subtotal_paise, discount_paise, shipping_paise, tax_paise, total_paise,
		        payment_method, status, payment_intent_id, coupon_code, created_at, updated_at
		 FROM orders WHERE order_number = $1 AND guest_email = lower($2)`,
		orderNumber, strings.TrimSpace(email),
	).Scan(&o.ID, &o.OrderNumber, &userID, &o.GuestName, &o.GuestEmail, &o.GuestPhone,
		&o.SubtotalPaise, &o.DiscountPaise, &o.ShippingPaise, &o.TaxPaise, &o.TotalPaise,
		&o.PaymentMethod, &o.Status, &intentID, &couponCode, &o.CreatedAt, &o.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select order: %w", err)
	}
	if userID != nil {
		o.UserID = *userID
	}
	if intentID != nil {
		o.PaymentIntentID = *intentID
	}
	if couponCode != nil {
		o.CouponCode = *couponCode
	}

	if err := r.loadItems(ctx, o); err != nil {
		return nil, err
	}
	if err := r.loadAddress(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

// GetByNumber fetches an order without a contact check. Internal use only
// (confirmation email after payment verification); never expose directly.
func (r *Repository) GetByNumber(ctx context.Context, orderNumber string) (*models.Order, error) {
	var email string
	err := r.pool.QueryRow(ctx,
		`SELECT guest_email FROM orders WHERE order_number = $1`, orderNumber,
	).Scan(&email)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select order: %w", err)
	}
	return r.Track(ctx, orderNumber, email)
}

// ListByUser returns an authenticated user's orders, newest first. Line items
// are loaded per order; order history pages are small.
func (r *Repository) ListByUser(ctx context.Context, userID string) ([]models.Order, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, order_number, guest_name, guest_email, guest_phone,
		        subtotal_paise, discount_paise, shipping_paise, tax_paise, total_paise,
		        payment_method, status, created_at, updated_at
		 FROM orders WHERE user_id = $1 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("select orders: %w", err)
	}
	defer rows.Close()

	var out []models.Order
	for rows.Next() {
		o := models.Order{UserID: userID}
		if err := rows.Scan(&o.ID, &o.OrderNumber, &o.GuestName, &o.GuestEmail, &o.GuestPhone,
			&o.SubtotalPaise, &o.DiscountPaise, &o.ShippingPaise, &o.TaxPaise, &o.TotalPaise,
			&o.PaymentMethod, &o.Status, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	for i := range out {
		if err := r.loadItems(ctx, &out[i]); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (r *Repository) loadItems(ctx context.Context, o *models.Order) error {
	rows, err := r.pool.Query(ctx,
		`SELECT id, product_id, product_name, price_paise, quantity, total_paise
		 FROM order_items WHERE order_id = $1`,
		o.ID,
	)
	if err != nil {
		return fmt.Errorf("select order items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var it models.OrderItem
		if err := rows.Scan(&it.ID, &it.ProductID, &it.ProductName, &it.PricePaise, &it.Quantity, &it.TotalPaise); err != nil {
			return fmt.Errorf("scan order item: %w", err)
		}
		o.Items = append(o.Items, it)
	}
	return rows.Err()
}

func (r *Repository) loadAddress(ctx context.Context, o *models.Order) error {
	err := r.pool.QueryRow(ctx,
		`SELECT name, phone, address, city, state, pincode
		 FROM shipping_addresses WHERE order_id = $1`,
		o.ID,
	).Scan(&o.Address.Name, &o.Address.Phone, &o.Address.Address, &o.Address.City, &o.Address.State, &o.Address.Pincode)
	if errors.Is(err, pgx.ErrNoRows) {
		// Orders created before the transactional rewrite may miss their
		// address row; tracking still works without it.
		return nil
	}
	if err != nil {
		return fmt.Errorf("select shipping address: %w", err)
	}
	o.Address.Email = o.GuestEmail
	return nil
}
