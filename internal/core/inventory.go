package core

import (
	"github.com/Level-R/invoice-app/internal/models"
	"gorm.io/gorm"
)

// Inventory owns stock adjustments. The guard against negative stock is
// part of the UPDATE itself (WHERE stock + delta >= 0), so two handlers
// racing for the same units cannot both pass: the affected-row count
// decides who won.
type Inventory struct {
	db *gorm.DB
}

func NewInventory(db *gorm.DB) *Inventory { return &Inventory{db: db} }

// Adjust applies stock += delta atomically. A negative delta that would
// take stock below zero fails with ErrInsufficientStock and mutates
// nothing.
func (m *Inventory) Adjust(productID uint, delta float64) error {
	return m.AdjustTx(m.db, productID, delta)
}

// AdjustTx is Adjust inside an existing transaction, used by invoice
// creation and return processing so the stock change commits or rolls
// back with the rest of the operation.
func (m *Inventory) AdjustTx(tx *gorm.DB, productID uint, delta float64) error {
	res := tx.Model(&models.Product{}).
		Where("id = ? AND stock + ? >= 0", productID, delta).
		UpdateColumn("stock", gorm.Expr("stock + ?", delta))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		var count int64
		if err := tx.Model(&models.Product{}).Where("id = ?", productID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return errf(KindProductNotFound, "product not found: %d", productID)
		}
		return errf(KindInsufficientStock, "insufficient stock for product %d", productID)
	}
	return nil
}
