package models

import "time"

// Invoice statuses. Canceled is terminal: payment and return operations
// keep their ledger effects but never move the status off canceled.
const (
	StatusOpen     = "open"
	StatusPaid     = "paid"
	StatusCanceled = "canceled"
)

// Invoice carries computed totals plus the running paid/due/status
// projection. Paid, Due and Status are stored (not recomputed on read)
// and updated incrementally by the payment and return operations; the
// reconciler in internal/core can verify them against the payment rows.
type Invoice struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	Number          string    `gorm:"uniqueIndex;not null" json:"number"`
	CustomerName    string    `json:"customer_name"`
	CustomerPhone   string    `gorm:"size:15" json:"customer_phone"`
	CustomerAddress string    `json:"customer_address"`
	IssueDate       time.Time `gorm:"not null" json:"issue_date"`
	Subtotal        float64   `gorm:"not null;default:0" json:"subtotal"`
	Discount        float64   `gorm:"not null;default:0" json:"discount"` // invoice-level flat amount
	TaxRate         float64   `gorm:"not null;default:0" json:"tax_rate"` // percent
	TaxAmount       float64   `gorm:"not null;default:0" json:"tax_amount"`
	Total           float64   `gorm:"not null;default:0" json:"total"`
	Paid            float64   `gorm:"not null;default:0" json:"paid"`
	Due             float64   `gorm:"not null;default:0" json:"due"`
	Status          string    `gorm:"not null;default:'open'" json:"status"`
	Notes           string    `json:"notes"`

	Items    []InvoiceItem `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
	Payments []Payment     `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE" json:"payments,omitempty"`
	Returns  []Return      `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE" json:"returns,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// InvoiceItem is a sold line. Description and UnitPrice are snapshots
// taken at invoice time, so later product edits do not rewrite history.
// Rows are immutable after creation; returns record against them
// without touching them.
type InvoiceItem struct {
	ID           uint    `gorm:"primaryKey" json:"id"`
	InvoiceID    uint    `gorm:"not null;index" json:"invoice_id"`
	ProductID    uint    `gorm:"not null" json:"product_id"`
	Description  string  `json:"description"`
	Qty          float64 `gorm:"not null" json:"qty"`
	UnitPrice    float64 `gorm:"not null" json:"unit_price"`
	LineDiscount float64 `gorm:"not null;default:0" json:"line_discount"` // flat amount per line
	LineTotal    float64 `gorm:"not null" json:"line_total"`

	Returns []Return `gorm:"foreignKey:ItemID;constraint:OnDelete:CASCADE" json:"-"`
}
