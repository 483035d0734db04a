// internal/payment/model.go
package payment

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Payment is one cash-receipt event against an invoice. EventID is supplied
// by the caller (or generated) and uniquely indexed, so replaying the same
// event fails instead of double-attributing revenue.
type Payment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`

	EventID   string          `gorm:"size:36;not null;uniqueIndex" json:"eventId"`
	InvoiceID uint            `gorm:"not null;index" json:"invoiceId"`
	Amount    decimal.Decimal `gorm:"type:numeric;not null" json:"amount"`
	PaidAt    time.Time       `gorm:"not null;index" json:"paidAt"`
	Method    string          `gorm:"size:50" json:"method"`
}

// Migrate creates the payments table.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Payment{})
}
