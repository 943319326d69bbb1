package core

import (
	"fmt"
	"testing"

	"github.com/Level-R/invoice-app/internal/db"
	"github.com/Level-R/invoice-app/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testWindowDays = 7

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	conn, err := db.Connect(dsn)
	require.NoError(t, err, "open db")
	require.NoError(t, db.AutoMigrate(conn), "migrate")
	return conn
}

func newServices(t *testing.T) (*gorm.DB, *Engine, *PaymentLedger, *ReturnProcessor) {
	t.Helper()
	conn := setupTestDB(t)
	stock := NewInventory(conn)
	return conn, NewEngine(conn, stock), NewPaymentLedger(conn), NewReturnProcessor(conn, stock, testWindowDays)
}

func createProduct(t *testing.T, conn *gorm.DB, name string, price, stock float64) models.Product {
	t.Helper()
	product := models.Product{Name: name, Price: price, Stock: stock}
	require.NoError(t, conn.Create(&product).Error)
	return product
}

func reloadProduct(t *testing.T, conn *gorm.DB, id uint) models.Product {
	t.Helper()
	var product models.Product
	require.NoError(t, conn.First(&product, id).Error)
	return product
}

func reloadInvoice(t *testing.T, conn *gorm.DB, id uint) models.Invoice {
	t.Helper()
	var inv models.Invoice
	require.NoError(t, conn.First(&inv, id).Error)
	return inv
}
