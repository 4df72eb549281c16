package models

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type Product struct {
	ID          uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string         `gorm:"not null" json:"name"`
	Description string         `json:"description"`
	PriceCents  int64          `gorm:"not null" json:"price_cents"` // Price in cents, never floats
	Stock       int            `gorm:"not null;default:0" json:"stock"`
	ImageURL    string         `json:"image_url"`
	Category    string         `gorm:"index" json:"category"`
	Active      bool           `gorm:"not null;default:true" json:"active"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (p *Product) InStock() bool {
	return p.Stock > 0
}

// Available reports whether the product can be sold right now.
func (p *Product) Available() bool {
	return p.Active && p.InStock()
}

// ProductFinder resolves a product against the authoritative catalog.
// The returned product carries the current stock level, which the cart
// relies on when validating quantities.
type ProductFinder interface {
	FindProduct(ctx context.Context, productID uint) (*Product, error)
}
