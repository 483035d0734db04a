// internal/payroll/handler.go
package payroll

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/AyoubEttalbi/Tikoschool-sub000/internal/attribution"
	"github.com/AyoubEttalbi/Tikoschool-sub000/internal/employee"
	"github.com/AyoubEttalbi/Tikoschool-sub000/internal/payment"
	"github.com/AyoubEttalbi/Tikoschool-sub000/internal/transaction"
)

// Handler serves payroll and organization reports.
type Handler struct {
	Employees    *employee.Repository
	Transactions *transaction.Repository
	Shares       *attribution.Repository
	Payments     *payment.Repository
}

// NewHandler returns a new Handler.
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{
		Employees:    employee.NewRepository(db),
		Transactions: transaction.NewRepository(db),
		Shares:       attribution.NewRepository(db),
		Payments:     payment.NewRepository(db),
	}
}

// periodFromQuery resolves month/year (or quarter) query params. A month or
// quarter given without a year falls on the current year. With no params the
// active month defaults to the month of the most recent payment, falling
// back to the current date.
func (h *Handler) periodFromQuery(r *http.Request) (Period, error) {
	q := r.URL.Query()

	year := time.Now().Year()
	yearGiven := q.Get("year") != ""
	if yearGiven {
		var err error
		if year, err = strconv.Atoi(q.Get("year")); err != nil {
			return Period{}, err
		}
	}
	if q.Get("quarter") != "" {
		quarter, err := strconv.Atoi(q.Get("quarter"))
		if err != nil {
			return Period{}, err
		}
		return QuarterPeriod(year, quarter), nil
	}
	if q.Get("month") != "" {
		month, err := strconv.Atoi(q.Get("month"))
		if err != nil {
			return Period{}, err
		}
		return MonthPeriod(year, time.Month(month)), nil
	}
	if yearGiven {
		return YearPeriod(year), nil
	}

	last, err := h.Transactions.LatestPaymentDateAny()
	if err != nil {
		return Period{}, err
	}
	return DefaultPeriod(last, time.Now()), nil
}

// ledgers reconciles every payable employee for the period.
func (h *Handler) ledgers(p Period) ([]Ledger, error) {
	emps, err := h.Employees.ListPayable()
	if err != nil {
		return nil, err
	}

	out := make([]Ledger, 0, len(emps))
	for i := range emps {
		emp := &emps[i]

		wallet := decimal.Zero
		if emp.Role == employee.RoleInstructor {
			if wallet, err = h.Shares.WalletBalance(emp.ID); err != nil {
				return nil, err
			}
		}
		txs, err := h.Transactions.ListByUser(emp.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, Reconcile(emp, wallet, txs, p))
	}
	return out, nil
}

// Ledgers handles GET /reports/payroll.
func (h *Handler) Ledgers(w http.ResponseWriter, r *http.Request) {
	p, err := h.periodFromQuery(r)
	if err != nil {
		http.Error(w, "invalid period parameters", http.StatusBadRequest)
		return
	}

	list, err := h.ledgers(p)
	if err != nil {
		http.Error(w, "could not reconcile payroll", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"period":  p,
		"ledgers": list,
	})
}

func (h *Handler) summary(p Period) (Summary, error) {
	list, err := h.ledgers(p)
	if err != nil {
		return Summary{}, err
	}
	revenue, err := h.Payments.SumInPeriod(p.From, p.To)
	if err != nil {
		return Summary{}, err
	}
	count, err := h.Payments.CountInPeriod(p.From, p.To)
	if err != nil {
		return Summary{}, err
	}
	return Summarize(list, p, revenue, count > 0), nil
}

// Summary handles GET /reports/summary: organization totals for the period
// plus the year-over-year comparison against the same span one year back.
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	p, err := h.periodFromQuery(r)
	if err != nil {
		http.Error(w, "invalid period parameters", http.StatusBadRequest)
		return
	}

	current, err := h.summary(p)
	if err != nil {
		http.Error(w, "could not build summary", http.StatusInternalServerError)
		return
	}
	previous, err := h.summary(p.PreviousYear())
	if err != nil {
		http.Error(w, "could not build prior-year summary", http.StatusInternalServerError)
		return
	}

	resp := map[string]interface{}{
		"summary": current,
		"yearOverYear": map[string]interface{}{
			"revenue":  CalculateChange(current.TotalRevenue, previous.TotalRevenue),
			"expenses": CalculateChange(current.TotalExpenses, previous.TotalExpenses),
			"profit":   CalculateChange(current.Profit, previous.Profit),
		},
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
