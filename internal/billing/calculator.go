// internal/billing/calculator.go
package billing

import (
	"errors"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// Validation errors surfaced verbatim to the caller for inline display.
// None of them is retried.
var (
	ErrEmptySelection          = errors.New("billing selection is empty: select at least one month or the partial current month")
	ErrNonContiguousMonths     = errors.New("selected months must be chronologically contiguous")
	ErrOverlappingPartialMonth = errors.New("current month cannot be selected and billed as a partial month at the same time")
)

// YearMonth identifies one billable calendar month.
type YearMonth struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
}

// Before reports whether ym precedes other chronologically.
func (ym YearMonth) Before(other YearMonth) bool {
	if ym.Year != other.Year {
		return ym.Year < other.Year
	}
	return ym.Month < other.Month
}

// Next returns the calendar month immediately after ym.
func (ym YearMonth) Next() YearMonth {
	if ym.Month == time.December {
		return YearMonth{Year: ym.Year + 1, Month: time.January}
	}
	return YearMonth{Year: ym.Year, Month: ym.Month + 1}
}

// FirstDay returns midnight UTC on the first day of the month.
func (ym YearMonth) FirstDay() time.Time {
	return time.Date(ym.Year, ym.Month, 1, 0, 0, 0, 0, time.UTC)
}

// LastDay returns midnight UTC on the last day of the month.
func (ym YearMonth) LastDay() time.Time {
	return ym.FirstDay().AddDate(0, 1, -1)
}

// Days returns the number of calendar days in the month.
func (ym YearMonth) Days() int {
	return ym.LastDay().Day()
}

// Of returns the YearMonth containing t.
func Of(t time.Time) YearMonth {
	return YearMonth{Year: t.Year(), Month: t.Month()}
}

// Selection is the caller's billing choice: a set of full months plus an
// optional prorated remainder of the current month.
type Selection struct {
	Months              []YearMonth `json:"months"`
	IncludePartialMonth bool        `json:"includePartialMonth"`
}

// Draft is the computed billing span and totals for one invoice, before
// persistence. AmountPaid/Rest bookkeeping belongs to the invoice itself.
type Draft struct {
	BillDate           time.Time
	EndDate            time.Time
	Months             []YearMonth
	IncludePartial     bool
	PartialMonthAmount decimal.Decimal
	FullMonthsAmount   decimal.Decimal
	TotalAmount        decimal.Decimal
}

// Calculator turns a membership price plus a Selection into an invoice Draft.
// The clock is injected so billing "today" is testable.
type Calculator struct {
	Now func() time.Time
}

// NewCalculator returns a Calculator on the system clock.
func NewCalculator() *Calculator {
	return &Calculator{Now: time.Now}
}

func (c *Calculator) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

// Compute validates the selection and produces the invoice draft.
//
// Rules:
//   - two or more selected months must advance by exactly one calendar month
//     each (duplicates fail the same check);
//   - the selection must not be empty;
//   - the current month may not be both selected in full and billed partially.
//
// The partial amount prorates the monthly price over the days remaining in
// the current month, counting today. Rounding is half-up to the whole
// currency unit.
func (c *Calculator) Compute(price decimal.Decimal, sel Selection) (Draft, error) {
	today := c.now()

	months := make([]YearMonth, len(sel.Months))
	copy(months, sel.Months)
	sort.Slice(months, func(i, j int) bool { return months[i].Before(months[j]) })

	if len(months) == 0 && !sel.IncludePartialMonth {
		return Draft{}, ErrEmptySelection
	}
	for i := 1; i < len(months); i++ {
		if months[i] != months[i-1].Next() {
			return Draft{}, ErrNonContiguousMonths
		}
	}
	current := Of(today)
	if sel.IncludePartialMonth {
		for _, ym := range months {
			if ym == current {
				return Draft{}, ErrOverlappingPartialMonth
			}
		}
	}

	draft := Draft{
		Months:             months,
		IncludePartial:     sel.IncludePartialMonth,
		PartialMonthAmount: decimal.Zero,
	}

	if sel.IncludePartialMonth {
		remaining := current.Days() - today.Day() + 1
		draft.PartialMonthAmount = price.
			Div(decimal.NewFromInt(int64(current.Days()))).
			Mul(decimal.NewFromInt(int64(remaining))).
			Round(0)
	}
	draft.FullMonthsAmount = price.Round(0).Mul(decimal.NewFromInt(int64(len(months))))
	draft.TotalAmount = draft.PartialMonthAmount.Add(draft.FullMonthsAmount)

	if sel.IncludePartialMonth {
		draft.BillDate = time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	} else {
		draft.BillDate = months[0].FirstDay()
	}
	if len(months) > 0 {
		draft.EndDate = months[len(months)-1].LastDay()
	} else {
		draft.EndDate = current.LastDay()
	}
	return draft, nil
}
