package models

import "time"

// Product is a stocked item that can be sold on invoices.
// Stock is REAL in the schema on purpose: goods sold by weight or length
// carry fractional quantities.
type Product struct {
	ID    uint    `gorm:"primaryKey" json:"id"`
	SKU   *string `gorm:"uniqueIndex" json:"sku"` // optional, unique when present
	Name  string  `gorm:"not null" json:"name"`
	Price float64 `gorm:"not null;default:0" json:"price"`
	Stock float64 `gorm:"not null;default:0" json:"stock"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LowStockThreshold marks products the dashboard should highlight.
const LowStockThreshold = 5

func (p Product) LowStock() bool { return p.Stock <= LowStockThreshold }
