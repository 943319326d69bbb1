package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Level-R/invoice-app/internal/core"
	"github.com/Level-R/invoice-app/internal/db"
	"gorm.io/gorm"
)

func setupHandlerTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	conn, err := db.Connect(dsn)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(conn); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return conn
}

func TestProductUpsertAndListJSON(t *testing.T) {
	conn := setupHandlerTestDB(t)
	h := NewProductHandler(core.NewCatalog(conn))

	body := `{"sku":"SKU1","name":"Widget","price":100,"stock":10}`
	req := httptest.NewRequest(http.MethodPost, "/products", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.Upsert(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d body=%s", w.Code, w.Body.String())
	}
	var created map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if created["id"] == nil {
		t.Fatalf("missing id in response: %#v", created)
	}

	listReq := httptest.NewRequest(http.MethodGet, "/products", nil)
	listW := httptest.NewRecorder()
	h.List(listW, listReq)
	if listW.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", listW.Code)
	}
	var list struct {
		Items []struct {
			Name     string  `json:"name"`
			Stock    float64 `json:"stock"`
			LowStock bool    `json:"low_stock"`
		} `json:"items"`
		Total int `json:"total"`
	}
	if err := json.Unmarshal(listW.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if list.Total != 1 || len(list.Items) != 1 || list.Items[0].Name != "Widget" {
		t.Fatalf("unexpected list: %#v", list)
	}
	if list.Items[0].LowStock {
		t.Fatalf("stock 10 should not be flagged low")
	}
}

func TestProductUpsertValidation(t *testing.T) {
	conn := setupHandlerTestDB(t)
	h := NewProductHandler(core.NewCatalog(conn))

	req := httptest.NewRequest(http.MethodPost, "/products", strings.NewReader(`{"name":"","price":-1}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.Upsert(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", w.Code)
	}
}

func TestProductDeleteReferencedFails(t *testing.T) {
	conn := setupHandlerTestDB(t)
	catalog := core.NewCatalog(conn)
	stock := core.NewInventory(conn)
	engine := core.NewEngine(conn, stock)
	h := NewProductHandler(catalog)

	product, err := catalog.Upsert(core.UpsertProductInput{Name: "Widget", Price: 100, Stock: 10})
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if _, err := engine.CreateInvoice(core.CreateInvoiceInput{
		Items: []core.LineInput{{ProductID: product.ID, Qty: 1}},
	}); err != nil {
		t.Fatalf("create invoice: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/products/delete?id=%d", product.ID), nil)
	w := httptest.NewRecorder()
	h.Delete(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for referenced product got %d body=%s", w.Code, w.Body.String())
	}
}
