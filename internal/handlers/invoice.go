package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/Level-R/invoice-app/internal/core"
	"github.com/Level-R/invoice-app/internal/httpx"
)

type InvoiceHandler struct {
	Engine *core.Engine
	// DefaultTaxRate applies when a create request leaves tax_rate out.
	DefaultTaxRate float64
}

func NewInvoiceHandler(engine *core.Engine, defaultTaxRate float64) *InvoiceHandler {
	return &InvoiceHandler{Engine: engine, DefaultTaxRate: defaultTaxRate}
}

// List: GET /invoices
func (h *InvoiceHandler) List(w http.ResponseWriter, r *http.Request) {
	invs, err := h.Engine.List()
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_invoices", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": invs, "total": len(invs)})
}

// Create: POST /invoices
func (h *InvoiceHandler) Create(w http.ResponseWriter, r *http.Request) {
	type itemReq struct {
		ProductID    uint     `json:"product_id"`
		Qty          float64  `json:"qty"`
		UnitPrice    *float64 `json:"unit_price"` // null means product price
		LineDiscount float64  `json:"line_discount"`
	}
	var req struct {
		CustomerName    string    `json:"customer_name"`
		CustomerPhone   string    `json:"customer_phone"`
		CustomerAddress string    `json:"customer_address"`
		IssueDate       string    `json:"issue_date"` // YYYY-MM-DD, empty means today
		Discount        float64   `json:"discount"`
		TaxRate         *float64  `json:"tax_rate"` // null means the configured default
		Notes           string    `json:"notes"`
		Items           []itemReq `json:"items"`
		PayAmount       float64   `json:"pay_amount"`
		PayMethod       string    `json:"pay_method"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	var issueDate time.Time
	if req.IssueDate != "" {
		parsed, err := time.Parse("2006-01-02", req.IssueDate)
		if err != nil {
			httpx.JSONError(w, http.StatusBadRequest, "validation_failed", map[string]string{"issue_date": "expected YYYY-MM-DD"})
			return
		}
		issueDate = parsed
	}
	taxRate := h.DefaultTaxRate
	if req.TaxRate != nil {
		taxRate = *req.TaxRate
	}
	input := core.CreateInvoiceInput{
		CustomerName:    req.CustomerName,
		CustomerPhone:   req.CustomerPhone,
		CustomerAddress: req.CustomerAddress,
		IssueDate:       issueDate,
		Discount:        req.Discount,
		TaxRate:         taxRate,
		Notes:           req.Notes,
		InitialPayment:  req.PayAmount,
		PaymentMethod:   req.PayMethod,
	}
	for _, it := range req.Items {
		input.Items = append(input.Items, core.LineInput{
			ProductID:    it.ProductID,
			Qty:          it.Qty,
			UnitPrice:    it.UnitPrice,
			LineDiscount: it.LineDiscount,
		})
	}
	inv, err := h.Engine.CreateInvoice(input)
	if err != nil {
		writeCoreError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, inv)
}

// Cancel: POST /invoices/cancel?id=...
func (h *InvoiceHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	if err := h.Engine.CancelInvoice(id); err != nil {
		writeCoreError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "canceled"})
}

// Detail: GET /invoices/detail?id=...
func (h *InvoiceHandler) Detail(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	detail, err := h.Engine.Detail(id)
	if err != nil {
		writeCoreError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, detail)
}

// Stats: GET /stats
func (h *InvoiceHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Engine.Stats()
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_compute_stats", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, stats)
}
