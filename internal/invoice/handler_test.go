package invoice

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AyoubEttalbi/Tikoschool-sub000/internal/membership"
)

func snapshotMembership() *membership.Membership {
	return &membership.Membership{
		StudentID: 3,
		OfferID:   4,
		Price:     decimal.NewFromInt(900),
		Subjects:  []string{"math", "physics"},
		Percentages: map[string]int{
			"math":    60,
			"physics": 40,
		},
		TeacherAssignments: map[string]uint{
			"math":    21,
			"physics": 22,
		},
	}
}

func TestSnapshotShares(t *testing.T) {
	shares := SnapshotShares(snapshotMembership())
	require.Len(t, shares, 2)

	bySubject := map[string]Share{}
	for _, s := range shares {
		bySubject[s.Subject] = s
	}
	assert.Equal(t, uint(21), bySubject["math"].TeacherID)
	assert.Equal(t, 60, bySubject["math"].Percentage)
	assert.Equal(t, uint(22), bySubject["physics"].TeacherID)
	assert.Equal(t, 40, bySubject["physics"].Percentage)
}

// Shares are frozen copies: reassigning a subject or reweighting the
// membership afterwards must not reach into an already-taken snapshot.
func TestSnapshotSharesUnaffectedByLaterEdits(t *testing.T) {
	m := snapshotMembership()
	shares := SnapshotShares(m)

	m.Percentages["math"] = 10
	m.TeacherAssignments["math"] = 99
	m.Subjects = append(m.Subjects, "chemistry")

	require.Len(t, shares, 2)
	for _, s := range shares {
		if s.Subject == "math" {
			assert.Equal(t, uint(21), s.TeacherID)
			assert.Equal(t, 60, s.Percentage)
		}
	}
}
