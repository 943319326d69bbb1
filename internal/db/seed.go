package db

import (
	"github.com/Level-R/invoice-app/internal/models"
	"gorm.io/gorm"
)

// Seed inserts a few demo products for development. It is a no-op when
// the products table already has rows.
func Seed(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Product{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	sku := func(s string) *string { return &s }
	demo := []models.Product{
		{SKU: sku("TEA-500"), Name: "Tea Pack 500g", Price: 350, Stock: 40},
		{SKU: sku("SUGAR-1K"), Name: "Sugar 1kg", Price: 120, Stock: 60},
		{SKU: sku("RICE-5K"), Name: "Rice 5kg", Price: 480, Stock: 25},
		{SKU: sku("OIL-1L"), Name: "Soybean Oil 1L", Price: 175, Stock: 30},
	}
	return db.Create(&demo).Error
}
