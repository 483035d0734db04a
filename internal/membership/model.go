// internal/membership/model.go
package membership

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrNoSubjects        = errors.New("membership must carry at least one subject")
	ErrUnknownSubject    = errors.New("percentage and assignment keys must be membership subjects")
	ErrPercentageRange   = errors.New("subject percentages must lie between 0 and 100")
	ErrNegativePrice     = errors.New("membership price cannot be negative")
	ErrMissingAssignment = errors.New("every subject needs an assigned teacher")
)

// Membership is a student's subscription to a priced bundle of subjects.
// Each subject carries an independent revenue weight (0-100, not required to
// sum to 100) and an assigned teacher. Invoices snapshot both maps at
// creation time, so edits here only affect invoices created afterwards.
type Membership struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deletedAt,omitempty"`

	StudentID uint `gorm:"not null;index" json:"studentId"`
	OfferID   uint `gorm:"not null;index" json:"offerId"`

	Price decimal.Decimal `gorm:"type:numeric;not null" json:"price"`

	Subjects           []string        `gorm:"type:jsonb;serializer:json" json:"subjects"`
	Percentages        map[string]int  `gorm:"type:jsonb;serializer:json" json:"percentages"`
	TeacherAssignments map[string]uint `gorm:"type:jsonb;serializer:json" json:"teacherAssignments"`
}

// Validate enforces the subject-set invariant: every percentage and
// assignment key must be one of the membership's subjects, every subject
// must have a teacher, and weights must be valid percentages.
func (m *Membership) Validate() error {
	if m.Price.IsNegative() {
		return ErrNegativePrice
	}
	if len(m.Subjects) == 0 {
		return ErrNoSubjects
	}
	subjects := make(map[string]bool, len(m.Subjects))
	for _, s := range m.Subjects {
		subjects[s] = true
	}
	for subject, pct := range m.Percentages {
		if !subjects[subject] {
			return fmt.Errorf("%w: %q", ErrUnknownSubject, subject)
		}
		if pct < 0 || pct > 100 {
			return fmt.Errorf("%w: %q has %d", ErrPercentageRange, subject, pct)
		}
	}
	for subject := range m.TeacherAssignments {
		if !subjects[subject] {
			return fmt.Errorf("%w: %q", ErrUnknownSubject, subject)
		}
	}
	for _, s := range m.Subjects {
		if m.TeacherAssignments[s] == 0 {
			return fmt.Errorf("%w: %q", ErrMissingAssignment, s)
		}
	}
	return nil
}

// Migrate creates the memberships table.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Membership{})
}
