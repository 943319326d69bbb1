package core

import (
	"errors"
	"strings"

	"github.com/Level-R/invoice-app/internal/models"
	"gorm.io/gorm"
)

// Catalog manages the product list. Stock movements caused by sales and
// returns go through Inventory; direct edits here set the fields as
// given.
type Catalog struct {
	db *gorm.DB
}

func NewCatalog(db *gorm.DB) *Catalog { return &Catalog{db: db} }

type UpsertProductInput struct {
	ID    uint // 0 creates, otherwise updates
	SKU   string
	Name  string
	Price float64
	Stock float64
}

// Upsert creates a product or fully overwrites an existing one.
func (c *Catalog) Upsert(in UpsertProductInput) (*models.Product, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, errf(KindValidation, "product name required")
	}
	if in.Price < 0 || in.Stock < 0 {
		return nil, errf(KindValidation, "price and stock must not be negative")
	}
	var sku *string
	if s := strings.TrimSpace(in.SKU); s != "" {
		sku = &s
	}
	if in.ID == 0 {
		product := models.Product{SKU: sku, Name: in.Name, Price: in.Price, Stock: in.Stock}
		if err := c.db.Create(&product).Error; err != nil {
			return nil, err
		}
		return &product, nil
	}
	var product models.Product
	if err := c.db.First(&product, in.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errf(KindProductNotFound, "product not found: %d", in.ID)
		}
		return nil, err
	}
	product.SKU = sku
	product.Name = in.Name
	product.Price = in.Price
	product.Stock = in.Stock
	if err := c.db.Save(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// Delete removes a product. Products referenced by invoice items are
// protected: sold lines keep their snapshots, but the product row must
// stay for returns to restock against.
func (c *Catalog) Delete(id uint) error {
	var refs int64
	if err := c.db.Model(&models.InvoiceItem{}).Where("product_id = ?", id).Count(&refs).Error; err != nil {
		return err
	}
	if refs > 0 {
		return errf(KindValidation, "product %d is referenced by %d invoice item(s)", id, refs)
	}
	res := c.db.Delete(&models.Product{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errf(KindProductNotFound, "product not found: %d", id)
	}
	return nil
}

func (c *Catalog) List() ([]models.Product, error) {
	var products []models.Product
	if err := c.db.Order("id desc").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}
