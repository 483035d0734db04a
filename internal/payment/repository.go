// internal/payment/repository.go
package payment

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Repository encapsulates database access for payment events.
type Repository struct {
	DB *gorm.DB
}

// NewRepository returns a new repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

// WithDB returns a copy of the repo bound to a specific *gorm.DB (e.g. a tx).
func (r *Repository) WithDB(db *gorm.DB) *Repository {
	if db == nil {
		db = r.DB
	}
	return &Repository{DB: db}
}

// Create appends a payment event.
func (r *Repository) Create(p *Payment) error {
	return r.DB.Create(p).Error
}

// ListByInvoice returns all payment events of an invoice in order.
func (r *Repository) ListByInvoice(invoiceID uint) ([]Payment, error) {
	var list []Payment
	err := r.DB.Where("invoice_id = ?", invoiceID).Order("paid_at ASC").Find(&list).Error
	return list, err
}

// SumInPeriod totals cash received in [from, to), which is the
// organization's cash-basis revenue for a reporting period.
func (r *Repository) SumInPeriod(from, to time.Time) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.DB.Model(&Payment{}).
		Where("paid_at >= ? AND paid_at < ?", from, to).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	return total, err
}

// CountInPeriod reports whether any payments were recorded in [from, to).
// Distinguishes "no revenue data" from an actual zero.
func (r *Repository) CountInPeriod(from, to time.Time) (int64, error) {
	var n int64
	err := r.DB.Model(&Payment{}).
		Where("paid_at >= ? AND paid_at < ?", from, to).
		Count(&n).Error
	return n, err
}
