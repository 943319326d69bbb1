package core

import (
	"errors"
	"time"

	"github.com/Level-R/invoice-app/internal/models"
	"gorm.io/gorm"
)

// ReturnProcessor validates return eligibility, credits the invoice and
// restocks the product, all in one transaction.
//
// Two behaviors are deliberate simplifications carried over from the
// shop's policy, not bugs: the quantity bound checks against the
// originally sold quantity (prior returns are not subtracted), and
// editing or deleting a return never reverses its stock or credit
// effects.
type ReturnProcessor struct {
	db         *gorm.DB
	stock      *Inventory
	windowDays int
}

func NewReturnProcessor(db *gorm.DB, stock *Inventory, windowDays int) *ReturnProcessor {
	return &ReturnProcessor{db: db, stock: stock, windowDays: windowDays}
}

// Process accepts a return of qty units against a sold line: inserts
// the return record, restocks the product and applies the credit
// (qty x unit price, line discount not prorated) to total and due.
func (p *ReturnProcessor) Process(invoiceID, itemID uint, qty float64, reason string) (*models.Return, error) {
	if qty <= 0 {
		return nil, errf(KindValidation, "return qty must be > 0")
	}
	var inv models.Invoice
	if err := p.db.First(&inv, invoiceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errf(KindInvoiceNotFound, "invoice not found: %d", invoiceID)
		}
		return nil, err
	}
	deadline := inv.IssueDate.AddDate(0, 0, p.windowDays)
	if time.Now().After(deadline) {
		return nil, errf(KindReturnWindowExpired, "return window expired on %s", deadline.Format("2006-01-02"))
	}

	var ret models.Return
	err := p.db.Transaction(func(tx *gorm.DB) error {
		var item models.InvoiceItem
		if err := tx.Where("id = ? AND invoice_id = ?", itemID, invoiceID).First(&item).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errf(KindItemNotFound, "invoice item not found: %d", itemID)
			}
			return err
		}
		if qty > item.Qty {
			return errf(KindExceedsSoldQuantity, "cannot return %.2f of %.2f sold", qty, item.Qty)
		}
		ret = models.Return{
			InvoiceID: invoiceID,
			ItemID:    item.ID,
			ProductID: item.ProductID,
			Qty:       qty,
			Reason:    reason,
			Restocked: true,
		}
		if err := tx.Create(&ret).Error; err != nil {
			return err
		}
		if err := p.stock.AdjustTx(tx, item.ProductID, qty); err != nil {
			return err
		}
		// re-read inside the transaction so the credit lands on current
		// aggregates, not the pre-window-check snapshot
		cur, err := loadInvoice(tx, invoiceID)
		if err != nil {
			return err
		}
		credit := qty * item.UnitPrice
		cur.Total = max0(cur.Total - credit)
		cur.Due = max0(cur.Due - credit)
		return saveAggregates(tx, cur, recomputeStatus(cur))
	})
	if err != nil {
		return nil, err
	}
	return &ret, nil
}

// Update overwrites quantity and reason on the return record. It is a
// clerical correction only: stock and invoice totals are NOT
// re-derived from the new quantity.
func (p *ReturnProcessor) Update(returnID uint, qty float64, reason string) error {
	if qty <= 0 {
		return errf(KindValidation, "return qty must be > 0")
	}
	res := p.db.Model(&models.Return{}).Where("id = ?", returnID).
		Updates(map[string]any{"qty": qty, "reason": reason})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errf(KindReturnNotFound, "return not found: %d", returnID)
	}
	return nil
}

// Delete removes the return record without reversing its stock or
// credit effects.
func (p *ReturnProcessor) Delete(returnID uint) error {
	res := p.db.Delete(&models.Return{}, returnID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errf(KindReturnNotFound, "return not found: %d", returnID)
	}
	return nil
}
