package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/Level-R/invoice-app/internal/core"
	"github.com/Level-R/invoice-app/internal/httpx"
)

type ReturnHandler struct {
	Processor *core.ReturnProcessor
}

func NewReturnHandler(processor *core.ReturnProcessor) *ReturnHandler {
	return &ReturnHandler{Processor: processor}
}

// Process: POST /returns
func (h *ReturnHandler) Process(w http.ResponseWriter, r *http.Request) {
	var req struct {
		InvoiceID uint    `json:"invoice_id"`
		ItemID    uint    `json:"item_id"`
		Qty       float64 `json:"qty"`
		Reason    string  `json:"reason"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	ret, err := h.Processor.Process(req.InvoiceID, req.ItemID, req.Qty, req.Reason)
	if err != nil {
		writeCoreError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, ret)
}

// Update: POST /returns/update — corrects qty/reason on the record
// only; stock and credit are not re-derived.
func (h *ReturnHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID     uint    `json:"id"`
		Qty    float64 `json:"qty"`
		Reason string  `json:"reason"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	if err := h.Processor.Update(req.ID, req.Qty, req.Reason); err != nil {
		writeCoreError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

// Delete: POST /returns/delete?id=...
func (h *ReturnHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	if err := h.Processor.Delete(id); err != nil {
		writeCoreError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
