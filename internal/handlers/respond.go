package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Level-R/invoice-app/internal/core"
	"github.com/Level-R/invoice-app/internal/httpx"
)

// writeCoreError maps engine failures onto HTTP statuses. Anything that
// is not a *core.Error is an internal error and stays opaque to the
// client.
func writeCoreError(w http.ResponseWriter, err error) {
	var ce *core.Error
	if !errors.As(err, &ce) {
		httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
		return
	}
	status := http.StatusInternalServerError
	switch ce.Kind {
	case core.KindValidation:
		status = http.StatusBadRequest
	case core.KindProductNotFound, core.KindInvoiceNotFound, core.KindItemNotFound,
		core.KindPaymentNotFound, core.KindReturnNotFound:
		status = http.StatusNotFound
	case core.KindInsufficientStock, core.KindReturnWindowExpired, core.KindExceedsSoldQuantity:
		status = http.StatusConflict
	}
	httpx.JSONError(w, status, string(ce.Kind), ce.Message)
}

// idParam reads a positive integer id from the query string.
func idParam(r *http.Request, name string) (uint, bool) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0, false
	}
	return uint(n), true
}
