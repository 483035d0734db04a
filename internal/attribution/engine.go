// internal/attribution/engine.go
package attribution

import (
	"github.com/shopspring/decimal"

	"github.com/AyoubEttalbi/Tikoschool-sub000/internal/invoice"
)

// ShareDelta is the portion of one payment event attributed to one teacher
// for one subject.
type ShareDelta struct {
	TeacherID  uint            `json:"teacherId"`
	Subject    string          `json:"subject"`
	Percentage int             `json:"percentage"`
	Amount     decimal.Decimal `json:"amount"`
}

var hundred = decimal.NewFromInt(100)

// Distribute attributes a payment delta across an invoice's share snapshot
// on a cash basis: each subject teacher earns delta × percentage / 100.
//
// Weights are independent; their sum may be under or over 100, and the
// resulting deltas reflect that. Distribute is purely additive; replay
// protection is the caller's job, via the payment event's unique id.
func Distribute(shares []invoice.Share, delta decimal.Decimal) []ShareDelta {
	out := make([]ShareDelta, 0, len(shares))
	for _, s := range shares {
		out = append(out, ShareDelta{
			TeacherID:  s.TeacherID,
			Subject:    s.Subject,
			Percentage: s.Percentage,
			Amount:     delta.Mul(decimal.NewFromInt(int64(s.Percentage))).Div(hundred),
		})
	}
	return out
}
