// internal/payroll/engine.go
package payroll

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/AyoubEttalbi/Tikoschool-sub000/internal/employee"
	"github.com/AyoubEttalbi/Tikoschool-sub000/internal/transaction"
)

// Ledger is one employee's reconciliation for a period: what they are owed,
// what was actually paid, what expenses were charged, and the balance.
type Ledger struct {
	EmployeeID uint   `json:"employeeId"`
	Name       string `json:"name"`
	Role       string `json:"role"`
	Period     Period `json:"period"`

	MonthlyOwed     decimal.Decimal `json:"monthlyOwed"`
	MonthlyPaid     decimal.Decimal `json:"monthlyPaid"`
	MonthlyExpenses decimal.Decimal `json:"monthlyExpenses"`
	// Owed − paid − expenses; positive means outstanding.
	MonthlyBalance decimal.Decimal `json:"monthlyBalance"`

	// Most recent salary/wallet payment across all periods, for
	// "last paid N days ago" displays.
	LastPaymentDate *time.Time `json:"lastPaymentDate"`
}

// Summary aggregates the organization for a period.
type Summary struct {
	Period Period `json:"period"`

	TotalOwed     decimal.Decimal `json:"totalOwed"`
	TotalPaid     decimal.Decimal `json:"totalPaid"`
	TotalExpenses decimal.Decimal `json:"totalExpenses"`

	// Cash-basis revenue: payments recorded against invoices in the period.
	TotalRevenue decimal.Decimal `json:"totalRevenue"`
	// False when no payment events exist for the period at all; callers must
	// label that "no revenue data", not "zero revenue".
	HasRevenueData bool `json:"hasRevenueData"`

	// Revenue minus expense transactions minus employee payouts.
	Profit decimal.Decimal `json:"profit"`
}

// Change directions for period comparisons.
const (
	DirectionUp      = "up"
	DirectionDown    = "down"
	DirectionNeutral = "neutral"
)

// Change is a year-over-year (or any period-over-period) comparison.
type Change struct {
	Percentage float64 `json:"percentage"`
	Direction  string  `json:"direction"`
}

// Reconcile folds one employee's transactions into their period ledger.
// Instructors are owed their accrued wallet balance, assistants their fixed
// monthly salary. Absent transactions simply yield zero sums, so reconciliation
// never fails on missing data.
func Reconcile(emp *employee.Employee, walletBalance decimal.Decimal, txs []transaction.Transaction, p Period) Ledger {
	l := Ledger{
		EmployeeID:      emp.ID,
		Name:            emp.FirstName + " " + emp.LastName,
		Role:            emp.Role,
		Period:          p,
		MonthlyPaid:     decimal.Zero,
		MonthlyExpenses: decimal.Zero,
	}

	if emp.Role == employee.RoleInstructor {
		l.MonthlyOwed = walletBalance
	} else {
		l.MonthlyOwed = emp.BaseSalary
	}

	for i := range txs {
		t := &txs[i]
		if t.IsPayout() {
			if l.LastPaymentDate == nil || t.PaymentDate.After(*l.LastPaymentDate) {
				d := t.PaymentDate
				l.LastPaymentDate = &d
			}
			if p.Contains(t.PaymentDate) {
				l.MonthlyPaid = l.MonthlyPaid.Add(t.Amount)
			}
		} else if t.Type == transaction.TypeExpense && p.Contains(t.PaymentDate) {
			l.MonthlyExpenses = l.MonthlyExpenses.Add(t.Amount)
		}
	}

	l.MonthlyBalance = l.MonthlyOwed.Sub(l.MonthlyPaid).Sub(l.MonthlyExpenses)
	return l
}

// Summarize rolls per-employee ledgers into the organization totals.
// Revenue is supplied by the caller from the payment-event log; hasRevenueData
// distinguishes a true zero from missing upstream records. Profit counts both
// expense transactions and payouts as cost.
func Summarize(ledgers []Ledger, p Period, revenue decimal.Decimal, hasRevenueData bool) Summary {
	s := Summary{
		Period:         p,
		TotalOwed:      decimal.Zero,
		TotalPaid:      decimal.Zero,
		TotalExpenses:  decimal.Zero,
		TotalRevenue:   revenue,
		HasRevenueData: hasRevenueData,
	}
	for _, l := range ledgers {
		s.TotalOwed = s.TotalOwed.Add(l.MonthlyOwed)
		s.TotalPaid = s.TotalPaid.Add(l.MonthlyPaid)
		s.TotalExpenses = s.TotalExpenses.Add(l.MonthlyExpenses)
	}
	s.Profit = s.TotalRevenue.Sub(s.TotalExpenses).Sub(s.TotalPaid)
	return s
}

// CalculateChange compares a value against the matching prior-period value.
// A zero or missing previous value reports zero/neutral instead of dividing
// by zero.
func CalculateChange(current, previous decimal.Decimal) Change {
	if previous.IsZero() {
		return Change{Percentage: 0, Direction: DirectionNeutral}
	}

	diff := current.Sub(previous)
	pct, _ := diff.Abs().Div(previous.Abs()).Mul(decimal.NewFromInt(100)).Float64()

	switch {
	case diff.IsPositive():
		return Change{Percentage: pct, Direction: DirectionUp}
	case diff.IsNegative():
		return Change{Percentage: pct, Direction: DirectionDown}
	default:
		return Change{Percentage: 0, Direction: DirectionNeutral}
	}
}

// DefaultPeriod picks the reporting month shown by default: the month of the
// most recent payment if any, else the month containing now.
func DefaultPeriod(lastPayment *time.Time, now time.Time) Period {
	ref := now
	if lastPayment != nil {
		ref = *lastPayment
	}
	return MonthPeriod(ref.Year(), ref.Month())
}
