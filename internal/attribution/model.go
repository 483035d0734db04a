// internal/attribution/model.go
package attribution

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TeacherShare is a persisted ShareDelta: one row per payment event and
// subject. The append-only history is the source of truth for teacher
// earnings and for the wallet projection.
type TeacherShare struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`

	PaymentID uint `gorm:"not null;index" json:"paymentId"`
	InvoiceID uint `gorm:"not null;index" json:"invoiceId"`
	TeacherID uint `gorm:"not null;index" json:"teacherId"`

	Subject    string          `gorm:"size:255;not null" json:"subject"`
	Percentage int             `gorm:"not null;default:0" json:"percentage"`
	Amount     decimal.Decimal `gorm:"type:numeric;not null;default:0" json:"amount"`

	// When the cash moved; copied from the payment event so earnings queries
	// need no join for the common case.
	PaidAt time.Time `gorm:"not null;index" json:"paidAt"`
}

// Migrate creates the teacher_shares table.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&TeacherShare{})
}
