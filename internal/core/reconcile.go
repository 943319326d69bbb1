package core

import (
	"fmt"
	"math"

	"github.com/Level-R/invoice-app/internal/models"
	"gorm.io/gorm"
)

// Reconciler cross-checks the stored paid/due projections against the
// payment rows. The projections are updated incrementally for fast
// reads; if an update path is ever skipped they drift, and this is the
// routine that finds it.
type Reconciler struct {
	db *gorm.DB
}

func NewReconciler(db *gorm.DB) *Reconciler { return &Reconciler{db: db} }

// Drift is one detected mismatch on one invoice field.
type Drift struct {
	InvoiceID uint    `json:"invoice_id"`
	Number    string  `json:"number"`
	Field     string  `json:"field"`
	Stored    float64 `json:"stored"`
	Computed  float64 `json:"computed"`
}

func (d Drift) String() string {
	return fmt.Sprintf("invoice %s (#%d): %s stored=%.2f computed=%.2f", d.Number, d.InvoiceID, d.Field, d.Stored, d.Computed)
}

// moneyEpsilon absorbs float accumulation noise well below a cent.
const moneyEpsilon = 1e-6

// Check reports every invoice whose stored paid differs from the sum of
// its payments, or whose stored due differs from max(0, total-paid).
// It never mutates.
func (r *Reconciler) Check() ([]Drift, error) {
	var invoices []models.Invoice
	if err := r.db.Order("id asc").Find(&invoices).Error; err != nil {
		return nil, err
	}
	var drifts []Drift
	for _, inv := range invoices {
		var paidSum float64
		if err := r.db.Model(&models.Payment{}).
			Where("invoice_id = ?", inv.ID).
			Select("COALESCE(SUM(amount),0)").Scan(&paidSum).Error; err != nil {
			return nil, err
		}
		if math.Abs(inv.Paid-paidSum) > moneyEpsilon {
			drifts = append(drifts, Drift{InvoiceID: inv.ID, Number: inv.Number, Field: "paid", Stored: inv.Paid, Computed: paidSum})
		}
		wantDue := max0(inv.Total - inv.Paid)
		if math.Abs(inv.Due-wantDue) > moneyEpsilon {
			drifts = append(drifts, Drift{InvoiceID: inv.ID, Number: inv.Number, Field: "due", Stored: inv.Due, Computed: wantDue})
		}
	}
	return drifts, nil
}

// Repair rewrites drifted projections from the payment rows: paid from
// the sum, due from max(0, total-paid), status recomputed with the
// sticky-canceled rule. Returns the drifts it fixed.
func (r *Reconciler) Repair() ([]Drift, error) {
	drifts, err := r.Check()
	if err != nil {
		return nil, err
	}
	if len(drifts) == 0 {
		return nil, nil
	}
	touched := map[uint]bool{}
	for _, d := range drifts {
		touched[d.InvoiceID] = true
	}
	err = r.db.Transaction(func(tx *gorm.DB) error {
		for id := range touched {
			inv, err := loadInvoice(tx, id)
			if err != nil {
				return err
			}
			var paidSum float64
			if err := tx.Model(&models.Payment{}).
				Where("invoice_id = ?", id).
				Select("COALESCE(SUM(amount),0)").Scan(&paidSum).Error; err != nil {
				return err
			}
			inv.Paid = paidSum
			inv.Due = max0(inv.Total - paidSum)
			if err := saveAggregates(tx, inv, recomputeStatus(inv)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return drifts, nil
}
