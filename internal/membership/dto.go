// internal/membership/dto.go
package membership

import "github.com/shopspring/decimal"

// CreateMembershipDTO is the payload for creating or replacing a membership.
type CreateMembershipDTO struct {
	StudentID          uint            `json:"studentId"`
	OfferID            uint            `json:"offerId"`
	Price              decimal.Decimal `json:"price"`
	Subjects           []string        `json:"subjects"`
	Percentages        map[string]int  `json:"percentages"`
	TeacherAssignments map[string]uint `json:"teacherAssignments"`
}
