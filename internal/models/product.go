package models

import (
	"time"

	"github.com/google/uuid"
)

type Product struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	PricePaise  int64     `json:"price_paise"`
	Price       float64   `json:"price"` // rupees, derived from PricePaise at the boundary
	Stock       int       `json:"stock"`
	Category    string    `json:"category"`
	Scent       string    `json:"scent,omitempty"`
	Size        string    `json:"size,omitempty"`
	BurnTime    string    `json:"burn_time,omitempty"`
	ImageURL    string    `json:"image_url"`
	Featured    bool      `json:"featured"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
