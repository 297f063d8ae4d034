// Package coupons resolves discount codes from the coupons table. Codes are
// data, not inlined conditionals, so marketing can add one without a deploy.
package coupons

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"lumina_back_end/internal/database"
	"lumina_back_end/internal/models"
)

type Repository struct {
	pool database.PgxPool
}

func NewRepository(pool database.PgxPool) *Repository {
	return &Repository{pool: pool}
}

// Resolve looks up a code case-insensitively. Unknown or inactive codes
// return (nil, nil); the caller decides whether that is an error.
func (r *Repository) Resolve(ctx context.Context, code string) (*models.Coupon, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, nil
	}

	var c models.Coupon
	err := r.pool.QueryRow(ctx,
		`SELECT code, percent, min_amount_paise, active FROM coupons WHERE code = $1`,
		code,
	).Scan(&c.Code, &c.Percent, &c.MinAmountPaise, &c.Active)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select coupon: %w", err)
	}
	if !c.Active {
		return nil, nil
	}
	return &c, nil
}

// PercentFor returns the discount percent a coupon grants for a given
// subtotal: 0 when the coupon is nil or the cart is below its minimum.
func PercentFor(c *models.Coupon, subtotalPaise int64) int {
	if c == nil || subtotalPaise < c.MinAmountPaise {
		return 0
	}
	return c.Percent
}
