package payroll

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/AyoubEttalbi/Tikoschool-sub000/internal/employee"
	"github.com/AyoubEttalbi/Tikoschool-sub000/internal/transaction"
)

func assistant(salary int64) *employee.Employee {
	return &employee.Employee{
		Model:      gorm.Model{ID: 11},
		FirstName:  "Sara",
		LastName:   "Bennis",
		Role:       employee.RoleAssistant,
		BaseSalary: decimal.NewFromInt(salary),
	}
}

func instructor() *employee.Employee {
	return &employee.Employee{
		Model:     gorm.Model{ID: 7},
		FirstName: "Omar",
		LastName:  "Idrissi",
		Role:      employee.RoleInstructor,
	}
}

func tx(typ string, amount int64, date time.Time) transaction.Transaction {
	return transaction.Transaction{Type: typ, Amount: decimal.NewFromInt(amount), PaymentDate: date}
}

func TestReconcileZeroData(t *testing.T) {
	p := MonthPeriod(2024, time.May)
	l := Reconcile(assistant(3000), decimal.Zero, nil, p)

	assert.True(t, l.MonthlyPaid.IsZero())
	assert.True(t, l.MonthlyExpenses.IsZero())
	assert.True(t, l.MonthlyBalance.Equal(decimal.NewFromInt(3000)), "balance equals owed")
	assert.Nil(t, l.LastPaymentDate)
}

func TestReconcileAssistant(t *testing.T) {
	p := MonthPeriod(2024, time.May)
	txs := []transaction.Transaction{
		tx(transaction.TypeSalary, 2000, time.Date(2024, time.May, 10, 0, 0, 0, 0, time.UTC)),
		tx(transaction.TypeExpense, 150, time.Date(2024, time.May, 12, 0, 0, 0, 0, time.UTC)),
		// Outside the period: ignored by sums, still counts for last payment.
		tx(transaction.TypeSalary, 999, time.Date(2024, time.June, 2, 0, 0, 0, 0, time.UTC)),
	}

	l := Reconcile(assistant(3000), decimal.Zero, txs, p)

	assert.True(t, l.MonthlyPaid.Equal(decimal.NewFromInt(2000)))
	assert.True(t, l.MonthlyExpenses.Equal(decimal.NewFromInt(150)))
	assert.True(t, l.MonthlyBalance.Equal(decimal.NewFromInt(850)), "3000-2000-150")
	require.NotNil(t, l.LastPaymentDate)
	assert.Equal(t, time.Date(2024, time.June, 2, 0, 0, 0, 0, time.UTC), *l.LastPaymentDate)
}

func TestReconcileInstructorOwedWallet(t *testing.T) {
	p := MonthPeriod(2024, time.May)
	wallet := decimal.NewFromInt(1240)
	txs := []transaction.Transaction{
		tx(transaction.TypeWallet, 1000, time.Date(2024, time.May, 20, 0, 0, 0, 0, time.UTC)),
	}

	l := Reconcile(instructor(), wallet, txs, p)

	assert.True(t, l.MonthlyOwed.Equal(wallet))
	assert.True(t, l.MonthlyPaid.Equal(decimal.NewFromInt(1000)))
	assert.True(t, l.MonthlyBalance.Equal(decimal.NewFromInt(240)))
}

func TestReconcileOverpaidBalanceGoesNegative(t *testing.T) {
	p := MonthPeriod(2024, time.May)
	txs := []transaction.Transaction{
		tx(transaction.TypeSalary, 3500, time.Date(2024, time.May, 5, 0, 0, 0, 0, time.UTC)),
	}
	l := Reconcile(assistant(3000), decimal.Zero, txs, p)
	assert.True(t, l.MonthlyBalance.Equal(decimal.NewFromInt(-500)))
}

func TestSummarize(t *testing.T) {
	p := MonthPeriod(2024, time.May)
	ledgers := []Ledger{
		{MonthlyOwed: decimal.NewFromInt(3000), MonthlyPaid: decimal.NewFromInt(2000), MonthlyExpenses: decimal.NewFromInt(100)},
		{MonthlyOwed: decimal.NewFromInt(1500), MonthlyPaid: decimal.NewFromInt(1500), MonthlyExpenses: decimal.Zero},
	}

	s := Summarize(ledgers, p, decimal.NewFromInt(9000), true)

	assert.True(t, s.TotalOwed.Equal(decimal.NewFromInt(4500)))
	assert.True(t, s.TotalPaid.Equal(decimal.NewFromInt(3500)))
	assert.True(t, s.TotalExpenses.Equal(decimal.NewFromInt(100)))
	assert.True(t, s.Profit.Equal(decimal.NewFromInt(5400)), "9000-100-3500")
	assert.True(t, s.HasRevenueData)
}

func TestSummarizeNoRevenueData(t *testing.T) {
	p := MonthPeriod(2024, time.May)
	s := Summarize(nil, p, decimal.Zero, false)
	assert.False(t, s.HasRevenueData)
	assert.True(t, s.TotalRevenue.IsZero())
	assert.True(t, s.Profit.IsZero())
}

func TestCalculateChange(t *testing.T) {
	cases := []struct {
		name          string
		current, prev int64
		wantPct       float64
		wantDir       string
	}{
		{"up", 150, 100, 50, DirectionUp},
		{"down", 80, 100, 20, DirectionDown},
		{"flat", 100, 100, 0, DirectionNeutral},
		{"previous zero", 100, 0, 0, DirectionNeutral},
		{"both zero", 0, 0, 0, DirectionNeutral},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := CalculateChange(decimal.NewFromInt(tc.current), decimal.NewFromInt(tc.prev))
			assert.InDelta(t, tc.wantPct, c.Percentage, 0.0001)
			assert.Equal(t, tc.wantDir, c.Direction)
		})
	}
}

func TestPeriods(t *testing.T) {
	m := MonthPeriod(2024, time.February)
	assert.True(t, m.Contains(time.Date(2024, time.February, 29, 23, 0, 0, 0, time.UTC)))
	assert.False(t, m.Contains(time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)))

	q := QuarterPeriod(2024, 4)
	assert.Equal(t, time.Date(2024, time.October, 1, 0, 0, 0, 0, time.UTC), q.From)
	assert.Equal(t, time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC), q.To)

	y := YearPeriod(2024)
	assert.True(t, y.Contains(time.Date(2024, time.December, 31, 0, 0, 0, 0, time.UTC)))

	prev := m.PreviousYear()
	assert.Equal(t, time.Date(2023, time.February, 1, 0, 0, 0, 0, time.UTC), prev.From)
}

func TestDefaultPeriod(t *testing.T) {
	now := time.Date(2024, time.August, 14, 0, 0, 0, 0, time.UTC)

	last := time.Date(2024, time.June, 28, 0, 0, 0, 0, time.UTC)
	p := DefaultPeriod(&last, now)
	assert.Equal(t, MonthPeriod(2024, time.June), p)

	p = DefaultPeriod(nil, now)
	assert.Equal(t, MonthPeriod(2024, time.August), p)
}
