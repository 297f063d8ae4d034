// Package catalog reads the product catalog. The storefront never writes it.
package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"lumina_back_end/internal/database"
	"lumina_back_end/internal/models"
	"lumina_back_end/internal/pricing"
)

var ErrNotFound = errors.New("product not found")

const productColumns = `id, name, slug, description, price_paise, stock, category,
	scent, size, burn_time, image_url, featured, created_at, updated_at`

type Repository struct {
	pool database.PgxPool
}

func NewRepository(pool database.PgxPool) *Repository {
	return &Repository{pool: pool}
}

func (r *Repository) List(ctx context.Context, category string, featuredOnly bool) ([]models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products`
	args := []any{}
	switch {
	case category != "" && featuredOnly:
		query += ` WHERE category = $1 AND featured ORDER BY created_at DESC`
		args = append(args, category)
	case category != "":
		query += ` WHERE category = $1 ORDER BY created_at DESC`
		args = append(args, category)
	case featuredOnly:
		query += ` WHERE featured ORDER BY created_at DESC`
	default:
		query += ` ORDER BY created_at DESC`
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select products: %w", err)
	}
	defer rows.Close()

	var out []models.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *Repository) BySlug(ctx context.Context, slug string) (*models.Product, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE slug = $1`, slug)
	return r.one(row)
}

func (r *Repository) ByID(ctx context.Context, id string) (*models.Product, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id)
	return r.one(row)
}

func (r *Repository) one(row pgx.Row) (*models.Product, error) {
	p, err := scanProduct(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func scanProduct(row pgx.Row) (models.Product, error) {
	var p models.Product
	err := row.Scan(&p.ID, &p.Name, &p.Slug, &p.Description, &p.PricePaise, &p.Stock,
		&p.Category, &p.Scent, &p.Size, &p.BurnTime, &p.ImageURL, &p.Featured,
		&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return models.Product{}, err
	}
	p.Price = pricing.Rupees(p.PricePaise)
	return p, nil
}
