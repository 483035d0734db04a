// internal/payroll/period.go
package payroll

import "time"

// Period is a half-open reporting span [From, To). Months are the unit of
// payroll; quarters and years aggregate them.
type Period struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// MonthPeriod returns the calendar month (year, month).
func MonthPeriod(year int, month time.Month) Period {
	from := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return Period{From: from, To: from.AddDate(0, 1, 0)}
}

// QuarterPeriod returns quarter q (1-4) of a year.
func QuarterPeriod(year, q int) Period {
	from := time.Date(year, time.Month((q-1)*3+1), 1, 0, 0, 0, 0, time.UTC)
	return Period{From: from, To: from.AddDate(0, 3, 0)}
}

// YearPeriod returns the whole calendar year.
func YearPeriod(year int) Period {
	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	return Period{From: from, To: from.AddDate(1, 0, 0)}
}

// Contains reports whether t falls inside the period.
func (p Period) Contains(t time.Time) bool {
	return !t.Before(p.From) && t.Before(p.To)
}

// PreviousYear returns the same span shifted one year back, for
// year-over-year comparison.
func (p Period) PreviousYear() Period {
	return Period{From: p.From.AddDate(-1, 0, 0), To: p.To.AddDate(-1, 0, 0)}
}
