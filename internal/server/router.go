package server

import (
	"net/http"
	"time"

	"github.com/Level-R/invoice-app/internal/config"
	"github.com/Level-R/invoice-app/internal/core"
	"github.com/Level-R/invoice-app/internal/handlers"
	"github.com/Level-R/invoice-app/internal/httpx"
	"github.com/Level-R/invoice-app/internal/logger"
	"gorm.io/gorm"
)

// New constructs the root http.Handler with all routes and middlewares
// applied. The handler layer is a thin JSON surface; everything with
// business rules lives in internal/core.
func New(db *gorm.DB, cfg config.Config) http.Handler {
	mux := http.NewServeMux()

	stock := core.NewInventory(db)
	engine := core.NewEngine(db, stock)
	ledger := core.NewPaymentLedger(db)
	processor := core.NewReturnProcessor(db, stock, cfg.ReturnWindowDays)
	catalog := core.NewCatalog(db)

	//revive:disable:unused-parameter simple handlers intentionally ignore *http.Request
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if err := db.Exec("SELECT 1").Error; err != nil {
			httpx.JSONError(w, http.StatusServiceUnavailable, "degraded", nil)
			return
		}
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	ph := handlers.NewProductHandler(catalog)
	mux.HandleFunc("/products", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			ph.List(w, r)
		case http.MethodPost:
			ph.Upsert(w, r)
		default:
			methodNotAllowed(w, "GET,POST")
		}
	})
	mux.Handle("/products/delete", postOnly(ph.Delete))

	ih := handlers.NewInvoiceHandler(engine, cfg.DefaultTaxRate)
	mux.HandleFunc("/invoices", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			ih.List(w, r)
		case http.MethodPost:
			ih.Create(w, r)
		default:
			methodNotAllowed(w, "GET,POST")
		}
	})
	mux.Handle("/invoices/cancel", postOnly(ih.Cancel))
	mux.HandleFunc("/invoices/detail", ih.Detail)
	mux.HandleFunc("/stats", ih.Stats)

	payh := handlers.NewPaymentHandler(ledger)
	mux.Handle("/payments", postOnly(payh.Add))
	mux.Handle("/payments/update", postOnly(payh.Update))
	mux.Handle("/payments/delete", postOnly(payh.Delete))

	reth := handlers.NewReturnHandler(processor)
	mux.Handle("/returns", postOnly(reth.Process))
	mux.Handle("/returns/update", postOnly(reth.Update))
	mux.Handle("/returns/delete", postOnly(reth.Delete))
	//revive:enable:unused-parameter

	return withRecover(withLogging(mux))
}

func postOnly(h http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			methodNotAllowed(w, "POST")
			return
		}
		h(w, r)
	})
}

func methodNotAllowed(w http.ResponseWriter, allow string) {
	w.Header().Set("Allow", allow)
	httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
}

func withLogging(next http.Handler) http.Handler {
	log := logger.WithComponent("http")
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}

func withRecover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
