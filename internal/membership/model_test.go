package membership

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func validMembership() Membership {
	return Membership{
		StudentID: 1,
		OfferID:   1,
		Price:     decimal.NewFromInt(1000),
		Subjects:  []string{"Math", "Physics"},
		Percentages: map[string]int{
			"Math":    60,
			"Physics": 40,
		},
		TeacherAssignments: map[string]uint{
			"Math":    7,
			"Physics": 9,
		},
	}
}

func TestValidateOK(t *testing.T) {
	m := validMembership()
	assert.NoError(t, m.Validate())
}

func TestValidateWeightsNeedNotSumTo100(t *testing.T) {
	m := validMembership()
	m.Percentages = map[string]int{"Math": 80, "Physics": 80}
	assert.NoError(t, m.Validate(), "percentages are independent weights")
}

func TestValidateRejectsUnknownSubjectKeys(t *testing.T) {
	m := validMembership()
	m.Percentages["Chemistry"] = 10
	assert.ErrorIs(t, m.Validate(), ErrUnknownSubject)

	m = validMembership()
	m.TeacherAssignments["Chemistry"] = 3
	assert.ErrorIs(t, m.Validate(), ErrUnknownSubject)
}

func TestValidateRejectsOutOfRangePercentage(t *testing.T) {
	m := validMembership()
	m.Percentages["Math"] = 101
	assert.ErrorIs(t, m.Validate(), ErrPercentageRange)

	m.Percentages["Math"] = -1
	assert.ErrorIs(t, m.Validate(), ErrPercentageRange)
}

func TestValidateRejectsMissingData(t *testing.T) {
	m := validMembership()
	m.Subjects = nil
	assert.ErrorIs(t, m.Validate(), ErrNoSubjects)

	m = validMembership()
	m.Price = decimal.NewFromInt(-5)
	assert.ErrorIs(t, m.Validate(), ErrNegativePrice)

	m = validMembership()
	delete(m.TeacherAssignments, "Physics")
	assert.ErrorIs(t, m.Validate(), ErrMissingAssignment)
}
