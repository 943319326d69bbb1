package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/Level-R/invoice-app/internal/core"
	"github.com/Level-R/invoice-app/internal/httpx"
)

type PaymentHandler struct {
	Ledger *core.PaymentLedger
}

func NewPaymentHandler(ledger *core.PaymentLedger) *PaymentHandler {
	return &PaymentHandler{Ledger: ledger}
}

// Add: POST /payments
func (h *PaymentHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req struct {
		InvoiceID uint    `json:"invoice_id"`
		Amount    float64 `json:"amount"`
		Method    string  `json:"method"`
		Note      string  `json:"note"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	payment, err := h.Ledger.AddPayment(req.InvoiceID, req.Amount, req.Method, req.Note)
	if err != nil {
		writeCoreError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, payment)
}

// Update: POST /payments/update
func (h *PaymentHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID     uint    `json:"id"`
		Amount float64 `json:"amount"`
		Method string  `json:"method"`
		Note   string  `json:"note"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	if err := h.Ledger.UpdatePayment(req.ID, req.Amount, req.Method, req.Note); err != nil {
		writeCoreError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

// Delete: POST /payments/delete?id=...
func (h *PaymentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	if err := h.Ledger.DeletePayment(id); err != nil {
		writeCoreError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
