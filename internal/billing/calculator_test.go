package billing

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock(year int, month time.Month, day int) func() time.Time {
	return func() time.Time {
		return time.Date(year, month, day, 10, 30, 0, 0, time.UTC)
	}
}

func ym(year int, month time.Month) YearMonth {
	return YearMonth{Year: year, Month: month}
}

func TestComputeContiguity(t *testing.T) {
	calc := &Calculator{Now: fixedClock(2024, time.November, 5)}
	price := decimal.NewFromInt(1000)

	cases := []struct {
		name    string
		months  []YearMonth
		wantErr error
	}{
		{"single month", []YearMonth{ym(2024, time.January)}, nil},
		{"three contiguous", []YearMonth{ym(2024, time.January), ym(2024, time.February), ym(2024, time.March)}, nil},
		{"unsorted but contiguous", []YearMonth{ym(2024, time.March), ym(2024, time.January), ym(2024, time.February)}, nil},
		{"year boundary", []YearMonth{ym(2023, time.December), ym(2024, time.January)}, nil},
		{"gap", []YearMonth{ym(2024, time.January), ym(2024, time.March)}, ErrNonContiguousMonths},
		{"duplicate", []YearMonth{ym(2024, time.January), ym(2024, time.January)}, ErrNonContiguousMonths},
		{"same month different year", []YearMonth{ym(2023, time.May), ym(2024, time.May)}, ErrNonContiguousMonths},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := calc.Compute(price, Selection{Months: tc.months})
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestComputeEmptySelection(t *testing.T) {
	calc := &Calculator{Now: fixedClock(2024, time.November, 5)}
	_, err := calc.Compute(decimal.NewFromInt(500), Selection{})
	assert.ErrorIs(t, err, ErrEmptySelection)
}

func TestComputeOverlappingPartialMonth(t *testing.T) {
	calc := &Calculator{Now: fixedClock(2024, time.November, 5)}
	// Current month selected in full and billed partially at the same time.
	_, err := calc.Compute(decimal.NewFromInt(500), Selection{
		Months:              []YearMonth{ym(2024, time.November), ym(2024, time.December)},
		IncludePartialMonth: true,
	})
	assert.ErrorIs(t, err, ErrOverlappingPartialMonth)
}

func TestComputeFullMonthsTotal(t *testing.T) {
	calc := &Calculator{Now: fixedClock(2024, time.November, 5)}
	draft, err := calc.Compute(decimal.NewFromInt(1000), Selection{
		Months: []YearMonth{ym(2024, time.May), ym(2024, time.June)},
	})
	require.NoError(t, err)

	assert.True(t, draft.TotalAmount.Equal(decimal.NewFromInt(2000)), "total %s", draft.TotalAmount)
	assert.True(t, draft.PartialMonthAmount.IsZero())
	assert.Equal(t, time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC), draft.BillDate)
	assert.Equal(t, time.Date(2024, time.June, 30, 0, 0, 0, 0, time.UTC), draft.EndDate)
}

func TestComputePartialMonthProration(t *testing.T) {
	// 21st of a 30-day month, 10 remaining days including today.
	calc := &Calculator{Now: fixedClock(2024, time.September, 21)}
	draft, err := calc.Compute(decimal.NewFromInt(900), Selection{IncludePartialMonth: true})
	require.NoError(t, err)

	assert.True(t, draft.PartialMonthAmount.Equal(decimal.NewFromInt(300)), "partial %s", draft.PartialMonthAmount)
	assert.True(t, draft.TotalAmount.Equal(decimal.NewFromInt(300)))
	assert.Equal(t, time.Date(2024, time.September, 21, 0, 0, 0, 0, time.UTC), draft.BillDate)
	assert.Equal(t, time.Date(2024, time.September, 30, 0, 0, 0, 0, time.UTC), draft.EndDate)
}

func TestComputePartialRoundsHalfUp(t *testing.T) {
	// 1000/30*10 = 333.33… rounds to 333; 775/30*6 = 155 exact;
	// 100/32 is impossible, so force a .5 with 45/30*5 = 7.5 -> 8.
	calc := &Calculator{Now: fixedClock(2024, time.September, 26)} // 5 remaining days
	draft, err := calc.Compute(decimal.NewFromInt(45), Selection{IncludePartialMonth: true})
	require.NoError(t, err)
	assert.True(t, draft.PartialMonthAmount.Equal(decimal.NewFromInt(8)), "partial %s", draft.PartialMonthAmount)
}

func TestComputePartialPlusFutureMonths(t *testing.T) {
	calc := &Calculator{Now: fixedClock(2024, time.November, 16)} // 15 remaining days of 30
	draft, err := calc.Compute(decimal.NewFromInt(600), Selection{
		Months:              []YearMonth{ym(2024, time.December), ym(2025, time.January)},
		IncludePartialMonth: true,
	})
	require.NoError(t, err)

	// 600/30*15 = 300 partial + 2 full months.
	assert.True(t, draft.PartialMonthAmount.Equal(decimal.NewFromInt(300)))
	assert.True(t, draft.TotalAmount.Equal(decimal.NewFromInt(1500)))
	assert.Equal(t, time.Date(2024, time.November, 16, 0, 0, 0, 0, time.UTC), draft.BillDate)
	assert.Equal(t, time.Date(2025, time.January, 31, 0, 0, 0, 0, time.UTC), draft.EndDate)
}

func TestComputeLeapFebruary(t *testing.T) {
	calc := &Calculator{Now: fixedClock(2024, time.February, 28)} // 2 remaining of 29
	draft, err := calc.Compute(decimal.NewFromInt(290), Selection{IncludePartialMonth: true})
	require.NoError(t, err)
	assert.True(t, draft.PartialMonthAmount.Equal(decimal.NewFromInt(20)), "partial %s", draft.PartialMonthAmount)
	assert.Equal(t, time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC), draft.EndDate)
}

func TestYearMonthHelpers(t *testing.T) {
	assert.Equal(t, ym(2025, time.January), ym(2024, time.December).Next())
	assert.Equal(t, 29, ym(2024, time.February).Days())
	assert.Equal(t, 28, ym(2023, time.February).Days())
	assert.True(t, ym(2023, time.December).Before(ym(2024, time.January)))
}
