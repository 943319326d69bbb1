package models

import "time"

// Payment is one ledger entry against an invoice. The invoice's Paid
// column is the running sum of its non-deleted payments.
type Payment struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	InvoiceID uint    `gorm:"not null;index" json:"invoice_id"`
	Amount    float64 `gorm:"not null" json:"amount"`
	Method    string  `json:"method"` // free text: cash, card, bkash, ...
	Note      string  `json:"note"`

	PaidAt time.Time `gorm:"not null;autoCreateTime" json:"paid_at"`
}
