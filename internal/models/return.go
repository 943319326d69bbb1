package models

import "time"

// Return records a quantity given back against a sold line. Creating
// one credits the invoice and restocks the product; editing or deleting
// one afterwards is a clerical correction only and reverses neither
// effect (see core.ReturnProcessor).
type Return struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	InvoiceID uint    `gorm:"not null;index" json:"invoice_id"`
	ItemID    uint    `gorm:"not null;index" json:"item_id"`
	ProductID uint    `gorm:"not null" json:"product_id"`
	Qty       float64 `gorm:"not null" json:"qty"`
	Reason    string  `json:"reason"`
	Restocked bool    `gorm:"not null;default:true" json:"restocked"`

	ReturnedAt time.Time `gorm:"not null;autoCreateTime" json:"returned_at"`
}
