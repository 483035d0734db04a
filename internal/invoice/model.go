// internal/invoice/model.go
package invoice

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/AyoubEttalbi/Tikoschool-sub000/internal/billing"
)

// Invoice is one billed period of a membership: one or more contiguous
// months, optionally plus a prorated partial current month.
type Invoice struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deletedAt,omitempty"`

	MembershipID uint `gorm:"not null;index" json:"membershipId"`
	StudentID    uint `gorm:"not null;index" json:"studentId"`
	OfferID      uint `gorm:"not null;index" json:"offerId"`

	BillDate time.Time `gorm:"not null" json:"billDate"`
	EndDate  time.Time `gorm:"not null" json:"endDate"`

	// The literal selection billed, kept for audit.
	SelectedMonths      []billing.YearMonth `gorm:"type:jsonb;serializer:json" json:"selectedMonths"`
	IncludePartialMonth bool                `gorm:"not null;default:false" json:"includePartialMonth"`

	PartialMonthAmount decimal.Decimal `gorm:"type:numeric;not null;default:0" json:"partialMonthAmount"`
	TotalAmount        decimal.Decimal `gorm:"type:numeric;not null;default:0" json:"totalAmount"`
	AmountPaid         decimal.Decimal `gorm:"type:numeric;not null;default:0" json:"amountPaid"`
	Rest               decimal.Decimal `gorm:"type:numeric;not null;default:0" json:"rest"`

	// Updated only when AmountPaid changes.
	LastPaymentDate *time.Time `json:"lastPaymentDate"`

	// Per-subject attribution snapshot, frozen at creation time. Later edits
	// to the membership's percentages or assignments never touch these rows.
	Shares []Share `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE" json:"shares"`
}

// Share is one subject line of an invoice's attribution snapshot.
type Share struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	InvoiceID uint `gorm:"not null;index" json:"invoiceId"`

	Subject    string `gorm:"size:255;not null" json:"subject"`
	TeacherID  uint   `gorm:"not null;index" json:"teacherId"`
	Percentage int    `gorm:"not null;default:0" json:"percentage"`

	CreatedAt time.Time `json:"createdAt"`
}

// applyPayment folds one payment event into the cash counters. The last
// payment date only moves forward, so a backdated event cannot rewind it.
func (inv *Invoice) applyPayment(amount decimal.Decimal, paidAt time.Time) {
	inv.AmountPaid = inv.AmountPaid.Add(amount)
	inv.Rest = inv.TotalAmount.Sub(inv.AmountPaid)
	if inv.LastPaymentDate == nil || paidAt.After(*inv.LastPaymentDate) {
		d := paidAt
		inv.LastPaymentDate = &d
	}
}

// Migrate creates the invoice tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Invoice{}, &Share{})
}
