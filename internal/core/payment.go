package core

import (
	"errors"

	"github.com/Level-R/invoice-app/internal/models"
	"gorm.io/gorm"
)

// PaymentLedger records, edits and deletes payment entries and keeps
// the invoice's paid/due/status projection in step. Each operation is
// one transaction: the payment row and the invoice aggregates commit
// together or not at all.
type PaymentLedger struct {
	db *gorm.DB
}

func NewPaymentLedger(db *gorm.DB) *PaymentLedger { return &PaymentLedger{db: db} }

// AddPayment records a payment and applies it to the invoice. Adding
// never demotes a paid invoice back to open; only update and delete
// recompute the status both ways.
func (l *PaymentLedger) AddPayment(invoiceID uint, amount float64, method, note string) (*models.Payment, error) {
	if amount <= 0 {
		return nil, errf(KindValidation, "amount must be > 0")
	}
	var payment models.Payment
	err := l.db.Transaction(func(tx *gorm.DB) error {
		inv, err := loadInvoice(tx, invoiceID)
		if err != nil {
			return err
		}
		payment = models.Payment{InvoiceID: invoiceID, Amount: amount, Method: method, Note: note}
		if err := tx.Create(&payment).Error; err != nil {
			return err
		}
		return applyPayment(tx, inv, amount)
	})
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

// UpdatePayment overwrites a payment's amount/method/note and shifts
// the invoice aggregates by the difference. Unlike AddPayment this can
// demote the status back to open when the new amount no longer covers
// the total.
func (l *PaymentLedger) UpdatePayment(paymentID uint, amount float64, method, note string) error {
	if amount <= 0 {
		return errf(KindValidation, "amount must be > 0")
	}
	return l.db.Transaction(func(tx *gorm.DB) error {
		var payment models.Payment
		if err := tx.First(&payment, paymentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errf(KindPaymentNotFound, "payment not found: %d", paymentID)
			}
			return err
		}
		diff := amount - payment.Amount
		if err := tx.Model(&payment).
			Updates(map[string]any{"amount": amount, "method": method, "note": note}).Error; err != nil {
			return err
		}
		inv, err := loadInvoice(tx, payment.InvoiceID)
		if err != nil {
			return err
		}
		inv.Paid += diff
		inv.Due = max0(inv.Due - diff)
		return saveAggregates(tx, inv, recomputeStatus(inv))
	})
}

// DeletePayment removes the payment row and gives the amount back to
// the outstanding balance, recomputing status the same way as update.
func (l *PaymentLedger) DeletePayment(paymentID uint) error {
	return l.db.Transaction(func(tx *gorm.DB) error {
		var payment models.Payment
		if err := tx.First(&payment, paymentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errf(KindPaymentNotFound, "payment not found: %d", paymentID)
			}
			return err
		}
		if err := tx.Delete(&payment).Error; err != nil {
			return err
		}
		inv, err := loadInvoice(tx, payment.InvoiceID)
		if err != nil {
			return err
		}
		inv.Paid = max0(inv.Paid - payment.Amount)
		inv.Due += payment.Amount
		return saveAggregates(tx, inv, recomputeStatus(inv))
	})
}

// applyPayment adds amount to the aggregates after a payment insert.
// Status is only promoted here, never demoted.
func applyPayment(tx *gorm.DB, inv *models.Invoice, amount float64) error {
	inv.Paid += amount
	inv.Due = max0(inv.Due - amount)
	status := inv.Status
	if status != models.StatusCanceled && inv.Paid >= inv.Total {
		status = models.StatusPaid
	}
	return saveAggregates(tx, inv, status)
}

// recomputeStatus derives open/paid from the current aggregates.
// Canceled is sticky: once set, no payment or return edit moves it.
func recomputeStatus(inv *models.Invoice) string {
	if inv.Status == models.StatusCanceled {
		return models.StatusCanceled
	}
	if inv.Paid >= inv.Total {
		return models.StatusPaid
	}
	return models.StatusOpen
}

func saveAggregates(tx *gorm.DB, inv *models.Invoice, status string) error {
	inv.Status = status
	return tx.Model(&models.Invoice{}).Where("id = ?", inv.ID).
		Updates(map[string]any{"paid": inv.Paid, "due": inv.Due, "status": inv.Status}).Error
}

func loadInvoice(tx *gorm.DB, id uint) (*models.Invoice, error) {
	var inv models.Invoice
	if err := tx.First(&inv, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errf(KindInvoiceNotFound, "invoice not found: %d", id)
		}
		return nil, err
	}
	return &inv, nil
}
