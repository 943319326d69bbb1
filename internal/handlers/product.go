package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/Level-R/invoice-app/internal/core"
	"github.com/Level-R/invoice-app/internal/httpx"
	"github.com/Level-R/invoice-app/internal/validation"
)

type ProductHandler struct {
	Catalog *core.Catalog
}

func NewProductHandler(catalog *core.Catalog) *ProductHandler {
	return &ProductHandler{Catalog: catalog}
}

// List: GET /products
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.Catalog.List()
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_products", nil)
		return
	}
	type row struct {
		ID       uint    `json:"id"`
		SKU      *string `json:"sku"`
		Name     string  `json:"name"`
		Price    float64 `json:"price"`
		Stock    float64 `json:"stock"`
		LowStock bool    `json:"low_stock"`
	}
	items := make([]row, 0, len(products))
	for _, p := range products {
		items = append(items, row{ID: p.ID, SKU: p.SKU, Name: p.Name, Price: p.Price, Stock: p.Stock, LowStock: p.LowStock()})
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": items, "total": len(items)})
}

// Upsert: POST /products — id 0 or absent creates, otherwise updates.
func (h *ProductHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	var input struct {
		ID    uint    `json:"id"`
		SKU   string  `json:"sku"`
		Name  string  `json:"name"`
		Price float64 `json:"price"`
		Stock float64 `json:"stock"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	v := validation.Violations{}
	validation.Required("name", input.Name, v)
	validation.NonNegativeFloat("price", input.Price, v)
	validation.NonNegativeFloat("stock", input.Stock, v)
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	product, err := h.Catalog.Upsert(core.UpsertProductInput{
		ID: input.ID, SKU: input.SKU, Name: input.Name, Price: input.Price, Stock: input.Stock,
	})
	if err != nil {
		writeCoreError(w, err)
		return
	}
	status := http.StatusCreated
	if input.ID != 0 {
		status = http.StatusOK
	}
	httpx.JSON(w, status, product)
}

// Delete: POST /products/delete?id=...
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	if err := h.Catalog.Delete(id); err != nil {
		writeCoreError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
