package attribution

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AyoubEttalbi/Tikoschool-sub000/internal/invoice"
)

func snapshot() []invoice.Share {
	return []invoice.Share{
		{Subject: "Math", TeacherID: 1, Percentage: 60},
		{Subject: "Physics", TeacherID: 2, Percentage: 40},
	}
}

func TestDistributeCashBasis(t *testing.T) {
	deltas := Distribute(snapshot(), decimal.NewFromInt(500))
	require.Len(t, deltas, 2)

	assert.Equal(t, uint(1), deltas[0].TeacherID)
	assert.True(t, deltas[0].Amount.Equal(decimal.NewFromInt(300)), "math share %s", deltas[0].Amount)
	assert.Equal(t, uint(2), deltas[1].TeacherID)
	assert.True(t, deltas[1].Amount.Equal(decimal.NewFromInt(200)), "physics share %s", deltas[1].Amount)
}

func TestDistributeSubsequentPartialPayment(t *testing.T) {
	deltas := Distribute(snapshot(), decimal.NewFromInt(100))
	require.Len(t, deltas, 2)
	assert.True(t, deltas[0].Amount.Equal(decimal.NewFromInt(60)))
	assert.True(t, deltas[1].Amount.Equal(decimal.NewFromInt(40)))
}

func TestDistributeSumNeverExceedsPaymentsForPartitionedWeights(t *testing.T) {
	// With weights summing to 100, the attributed total equals each payment.
	payments := []int64{500, 100, 250}
	total := decimal.Zero
	paid := decimal.Zero
	for _, p := range payments {
		delta := decimal.NewFromInt(p)
		paid = paid.Add(delta)
		for _, d := range Distribute(snapshot(), delta) {
			total = total.Add(d.Amount)
		}
	}
	assert.True(t, total.Equal(paid), "attributed %s of %s paid", total, paid)
}

func TestDistributeIndependentWeights(t *testing.T) {
	// Weights are administrator-chosen and need not partition 100%.
	shares := []invoice.Share{
		{Subject: "Math", TeacherID: 1, Percentage: 80},
		{Subject: "Physics", TeacherID: 2, Percentage: 80},
	}
	deltas := Distribute(shares, decimal.NewFromInt(100))
	require.Len(t, deltas, 2)
	assert.True(t, deltas[0].Amount.Equal(decimal.NewFromInt(80)))
	assert.True(t, deltas[1].Amount.Equal(decimal.NewFromInt(80)))
}

func TestDistributeZeroPercentageYieldsZero(t *testing.T) {
	shares := []invoice.Share{{Subject: "Art", TeacherID: 3, Percentage: 0}}
	deltas := Distribute(shares, decimal.NewFromInt(900))
	require.Len(t, deltas, 1)
	assert.True(t, deltas[0].Amount.IsZero())
}

func TestDistributeKeepsFractions(t *testing.T) {
	// 33% of 100 is 33, 1% of 50 is 0.5; fractions are kept, not rounded.
	shares := []invoice.Share{{Subject: "Math", TeacherID: 1, Percentage: 1}}
	deltas := Distribute(shares, decimal.NewFromInt(50))
	require.Len(t, deltas, 1)
	assert.True(t, deltas[0].Amount.Equal(decimal.NewFromFloat(0.5)), "got %s", deltas[0].Amount)
}
