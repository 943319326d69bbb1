package core

import "github.com/Level-R/invoice-app/internal/models"

// Stats is the dashboard read model: product count, the outstanding
// balance across non-canceled invoices, and the latest invoices.
type Stats struct {
	ProductCount   int64            `json:"product_count"`
	TotalDue       float64          `json:"total_due"`
	RecentInvoices []models.Invoice `json:"recent_invoices"`
}

func (e *Engine) Stats() (*Stats, error) {
	stats := &Stats{}
	if err := e.db.Model(&models.Product{}).Count(&stats.ProductCount).Error; err != nil {
		return nil, err
	}
	if err := e.db.Model(&models.Invoice{}).
		Where("status != ?", models.StatusCanceled).
		Select("COALESCE(SUM(due),0)").Scan(&stats.TotalDue).Error; err != nil {
		return nil, err
	}
	if err := e.db.Order("id desc").Limit(10).Find(&stats.RecentInvoices).Error; err != nil {
		return nil, err
	}
	return stats, nil
}
