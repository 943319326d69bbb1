package core

import (
	"testing"
	"time"

	"github.com/Level-R/invoice-app/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessReturnCreditsInvoiceAndRestocks(t *testing.T) {
	conn, engine, _, processor := newServices(t)
	product := createProduct(t, conn, "Widget", 100, 10)
	inv, err := engine.CreateInvoice(CreateInvoiceInput{
		TaxRate: 5,
		Items:   []LineInput{{ProductID: product.ID, Qty: 3}},
	})
	require.NoError(t, err)
	require.Equal(t, 315.0, inv.Total)
	require.Equal(t, 7.0, reloadProduct(t, conn, product.ID).Stock)

	ret, err := processor.Process(inv.ID, inv.Items[0].ID, 1, "damaged")
	require.NoError(t, err)
	assert.True(t, ret.Restocked)

	stored := reloadInvoice(t, conn, inv.ID)
	// credit is qty x unit price; the 5% tax is not re-derived
	assert.Equal(t, 215.0, stored.Total)
	assert.Equal(t, 215.0, stored.Due)
	assert.Equal(t, models.StatusOpen, stored.Status)
	assert.Equal(t, 8.0, reloadProduct(t, conn, product.ID).Stock)
}

func TestProcessReturnCanMarkInvoicePaid(t *testing.T) {
	conn, engine, ledger, processor := newServices(t)
	product := createProduct(t, conn, "Widget", 100, 10)
	inv, err := engine.CreateInvoice(CreateInvoiceInput{
		TaxRate: 5,
		Items:   []LineInput{{ProductID: product.ID, Qty: 3}},
	})
	require.NoError(t, err)
	_, err = ledger.AddPayment(inv.ID, 300, "cash", "")
	require.NoError(t, err)

	// crediting 100 drops the total to 215, below the 300 already paid
	_, err = processor.Process(inv.ID, inv.Items[0].ID, 1, "changed mind")
	require.NoError(t, err)

	stored := reloadInvoice(t, conn, inv.ID)
	assert.Equal(t, 215.0, stored.Total)
	assert.Equal(t, 0.0, stored.Due)
	assert.Equal(t, models.StatusPaid, stored.Status)
}

func TestProcessReturnWindowExpired(t *testing.T) {
	conn, engine, _, processor := newServices(t)
	product := createProduct(t, conn, "Widget", 100, 10)
	inv, err := engine.CreateInvoice(CreateInvoiceInput{
		IssueDate: time.Now().AddDate(0, 0, -(testWindowDays + 3)),
		Items:     []LineInput{{ProductID: product.ID, Qty: 3}},
	})
	require.NoError(t, err)

	_, err = processor.Process(inv.ID, inv.Items[0].ID, 1, "too late")
	require.ErrorIs(t, err, ErrReturnWindowExpired)

	// no state change
	assert.Equal(t, 7.0, reloadProduct(t, conn, product.ID).Stock)
	assert.Equal(t, inv.Total, reloadInvoice(t, conn, inv.ID).Total)
	var count int64
	require.NoError(t, conn.Model(&models.Return{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestProcessReturnBounds(t *testing.T) {
	conn, engine, _, processor := newServices(t)
	product := createProduct(t, conn, "Widget", 100, 10)
	inv, err := engine.CreateInvoice(CreateInvoiceInput{
		Items: []LineInput{{ProductID: product.ID, Qty: 3}},
	})
	require.NoError(t, err)
	other, err := engine.CreateInvoice(CreateInvoiceInput{
		Items: []LineInput{{ProductID: product.ID, Qty: 1}},
	})
	require.NoError(t, err)

	_, err = processor.Process(inv.ID, inv.Items[0].ID, 0, "")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = processor.Process(inv.ID, inv.Items[0].ID, 4, "")
	assert.ErrorIs(t, err, ErrExceedsSoldQuantity)

	_, err = processor.Process(999, inv.Items[0].ID, 1, "")
	assert.ErrorIs(t, err, ErrInvoiceNotFound)

	// item belongs to a different invoice
	_, err = processor.Process(inv.ID, other.Items[0].ID, 1, "")
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestSellThenReturnConservesStock(t *testing.T) {
	conn, engine, _, processor := newServices(t)
	product := createProduct(t, conn, "Widget", 100, 10)
	inv, err := engine.CreateInvoice(CreateInvoiceInput{
		Items: []LineInput{{ProductID: product.ID, Qty: 4}},
	})
	require.NoError(t, err)
	require.Equal(t, 6.0, reloadProduct(t, conn, product.ID).Stock)

	_, err = processor.Process(inv.ID, inv.Items[0].ID, 4, "full return")
	require.NoError(t, err)
	assert.Equal(t, 10.0, reloadProduct(t, conn, product.ID).Stock)
}

func TestUpdateReturnIsClericalOnly(t *testing.T) {
	conn, engine, _, processor := newServices(t)
	product := createProduct(t, conn, "Widget", 100, 10)
	inv, err := engine.CreateInvoice(CreateInvoiceInput{
		Items: []LineInput{{ProductID: product.ID, Qty: 3}},
	})
	require.NoError(t, err)
	ret, err := processor.Process(inv.ID, inv.Items[0].ID, 1, "damaged")
	require.NoError(t, err)
	stockAfter := reloadProduct(t, conn, product.ID).Stock
	totalAfter := reloadInvoice(t, conn, inv.ID).Total

	require.NoError(t, processor.Update(ret.ID, 2, "damaged in transit"))

	var stored models.Return
	require.NoError(t, conn.First(&stored, ret.ID).Error)
	assert.Equal(t, 2.0, stored.Qty)
	assert.Equal(t, "damaged in transit", stored.Reason)
	// stock and totals deliberately untouched
	assert.Equal(t, stockAfter, reloadProduct(t, conn, product.ID).Stock)
	assert.Equal(t, totalAfter, reloadInvoice(t, conn, inv.ID).Total)

	assert.ErrorIs(t, processor.Update(ret.ID, 0, ""), ErrValidation)
	assert.ErrorIs(t, processor.Update(999, 1, ""), ErrReturnNotFound)
}

func TestDeleteReturnKeepsStockAndCredit(t *testing.T) {
	conn, engine, _, processor := newServices(t)
	product := createProduct(t, conn, "Widget", 100, 10)
	inv, err := engine.CreateInvoice(CreateInvoiceInput{
		Items: []LineInput{{ProductID: product.ID, Qty: 3}},
	})
	require.NoError(t, err)
	ret, err := processor.Process(inv.ID, inv.Items[0].ID, 1, "damaged")
	require.NoError(t, err)

	require.NoError(t, processor.Delete(ret.ID))

	var count int64
	require.NoError(t, conn.Model(&models.Return{}).Count(&count).Error)
	assert.Zero(t, count)
	// effects deliberately not reversed
	assert.Equal(t, 8.0, reloadProduct(t, conn, product.ID).Stock)
	assert.Equal(t, 200.0, reloadInvoice(t, conn, inv.ID).Total)

	assert.ErrorIs(t, processor.Delete(ret.ID), ErrReturnNotFound)
}

func TestCanceledStatusSurvivesReturn(t *testing.T) {
	conn, engine, _, processor := newServices(t)
	product := createProduct(t, conn, "Widget", 100, 10)
	inv, err := engine.CreateInvoice(CreateInvoiceInput{
		Items: []LineInput{{ProductID: product.ID, Qty: 3}},
	})
	require.NoError(t, err)
	require.NoError(t, engine.CancelInvoice(inv.ID))

	_, err = processor.Process(inv.ID, inv.Items[0].ID, 1, "return anyway")
	require.NoError(t, err)
	stored := reloadInvoice(t, conn, inv.ID)
	assert.Equal(t, models.StatusCanceled, stored.Status)
	assert.Equal(t, 200.0, stored.Total)
}
