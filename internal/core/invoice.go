package core

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/Level-R/invoice-app/internal/models"
	"gorm.io/gorm"
)

// Engine owns invoice creation and the totals arithmetic. Creation is a
// single transaction: invoice row, item rows, stock decrements and the
// optional first payment all commit together or not at all.
type Engine struct {
	db    *gorm.DB
	stock *Inventory
}

func NewEngine(db *gorm.DB, stock *Inventory) *Engine {
	return &Engine{db: db, stock: stock}
}

// LineInput is one requested invoice line. UnitPrice nil means "sell at
// the product's current price"; a non-nil value overrides it and is
// snapshotted on the item either way.
type LineInput struct {
	ProductID    uint
	Qty          float64
	UnitPrice    *float64
	LineDiscount float64 // flat amount off this line
}

type CreateInvoiceInput struct {
	CustomerName    string
	CustomerPhone   string
	CustomerAddress string
	IssueDate       time.Time // zero value means today
	Discount        float64   // invoice-level flat amount
	TaxRate         float64   // percent
	Notes           string
	Items           []LineInput

	// Optional first payment recorded together with the invoice.
	InitialPayment float64
	PaymentMethod  string
}

// CreateInvoice validates the lines, computes totals, assigns the next
// invoice number and persists everything atomically. Any failure,
// including an insufficient stock decrement on the last line, rolls the
// whole invoice back.
func (e *Engine) CreateInvoice(in CreateInvoiceInput) (*models.Invoice, error) {
	if len(in.Items) == 0 {
		return nil, errf(KindValidation, "no items in invoice")
	}
	for _, line := range in.Items {
		if line.Qty <= 0 {
			return nil, errf(KindValidation, "quantity must be > 0")
		}
	}
	issueDate := in.IssueDate
	if issueDate.IsZero() {
		issueDate = time.Now()
	}

	var inv models.Invoice
	err := e.db.Transaction(func(tx *gorm.DB) error {
		items := make([]models.InvoiceItem, 0, len(in.Items))
		subtotal := 0.0
		for _, line := range in.Items {
			var product models.Product
			if err := tx.First(&product, line.ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return errf(KindProductNotFound, "product not found: %d", line.ProductID)
				}
				return err
			}
			price := product.Price
			if line.UnitPrice != nil {
				price = *line.UnitPrice
			}
			lineTotal := max0(line.Qty*price - line.LineDiscount)
			subtotal += lineTotal
			items = append(items, models.InvoiceItem{
				ProductID:    product.ID,
				Description:  product.Name, // snapshot, survives renames
				Qty:          line.Qty,
				UnitPrice:    price,
				LineDiscount: line.LineDiscount,
				LineTotal:    lineTotal,
			})
		}

		taxable := max0(subtotal - in.Discount)
		taxAmount := round2(taxable * in.TaxRate / 100)
		total := max0(taxable + taxAmount)

		number, err := nextInvoiceNumber(tx, issueDate)
		if err != nil {
			return err
		}
		inv = models.Invoice{
			Number:          number,
			CustomerName:    in.CustomerName,
			CustomerPhone:   in.CustomerPhone,
			CustomerAddress: in.CustomerAddress,
			IssueDate:       issueDate,
			Subtotal:        subtotal,
			Discount:        in.Discount,
			TaxRate:         in.TaxRate,
			TaxAmount:       taxAmount,
			Total:           total,
			Paid:            0,
			Due:             total,
			Status:          models.StatusOpen,
			Notes:           in.Notes,
		}
		if err := tx.Create(&inv).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].InvoiceID = inv.ID
			if err := e.stock.AdjustTx(tx, items[i].ProductID, -items[i].Qty); err != nil {
				return err
			}
			if err := tx.Create(&items[i]).Error; err != nil {
				return err
			}
		}
		inv.Items = items

		if in.InitialPayment > 0 {
			payment := models.Payment{
				InvoiceID: inv.ID,
				Amount:    in.InitialPayment,
				Method:    in.PaymentMethod,
				Note:      "Initial payment",
			}
			if err := tx.Create(&payment).Error; err != nil {
				return err
			}
			if err := applyPayment(tx, &inv, in.InitialPayment); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

// CancelInvoice flips the status to canceled. It is idempotent and a
// status flag only: stock, payments and totals stay as they are.
func (e *Engine) CancelInvoice(id uint) error {
	res := e.db.Model(&models.Invoice{}).Where("id = ?", id).
		Update("status", models.StatusCanceled)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errf(KindInvoiceNotFound, "invoice not found: %d", id)
	}
	return nil
}

// InvoiceDetail is the full read model for one invoice.
type InvoiceDetail struct {
	Invoice  models.Invoice       `json:"invoice"`
	Items    []models.InvoiceItem `json:"items"`
	Payments []models.Payment     `json:"payments"`
	Returns  []models.Return      `json:"returns"`
}

func (e *Engine) Detail(id uint) (*InvoiceDetail, error) {
	var inv models.Invoice
	if err := e.db.First(&inv, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errf(KindInvoiceNotFound, "invoice not found: %d", id)
		}
		return nil, err
	}
	detail := &InvoiceDetail{Invoice: inv}
	if err := e.db.Where("invoice_id = ?", id).Order("id asc").Find(&detail.Items).Error; err != nil {
		return nil, err
	}
	if err := e.db.Where("invoice_id = ?", id).Order("id desc").Find(&detail.Payments).Error; err != nil {
		return nil, err
	}
	if err := e.db.Where("invoice_id = ?", id).Order("id desc").Find(&detail.Returns).Error; err != nil {
		return nil, err
	}
	return detail, nil
}

func (e *Engine) List() ([]models.Invoice, error) {
	var invs []models.Invoice
	if err := e.db.Order("id desc").Find(&invs).Error; err != nil {
		return nil, err
	}
	return invs, nil
}

// nextInvoiceNumber derives YYYYMMDD-NNNN from the issue date and the
// next invoice id. Invoices are never physically deleted, so max(id)+1
// is monotone; the UNIQUE constraint on number is the backstop.
func nextInvoiceNumber(tx *gorm.DB, issueDate time.Time) (string, error) {
	var seq int64
	if err := tx.Model(&models.Invoice{}).
		Select("COALESCE(MAX(id),0)+1").Scan(&seq).Error; err != nil {
		return "", err
	}
	return fmt.Sprintf("%s-%04d", issueDate.Format("20060102"), seq), nil
}

func max0(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
