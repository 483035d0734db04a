// internal/invoice/repository.go
package invoice

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository encapsulates database access for invoices.
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

// Create inserts a new invoice together with its share snapshot.
func (r *Repository) Create(inv *Invoice) error {
	return r.DB.Create(inv).Error
}

// FindByID returns one invoice with its share snapshot preloaded.
func (r *Repository) FindByID(id uint) (*Invoice, error) {
	var inv Invoice
	if err := r.DB.Preload("Shares").First(&inv, id).Error; err != nil {
		return nil, err
	}
	return &inv, nil
}

// ListByMembership returns all invoices of a membership, newest first.
func (r *Repository) ListByMembership(membershipID uint) ([]Invoice, error) {
	var list []Invoice
	err := r.DB.
		Preload("Shares").
		Where("membership_id = ?", membershipID).
		Order("bill_date DESC").
		Find(&list).Error
	return list, err
}

// ListByStudent returns all invoices of a student, newest first.
func (r *Repository) ListByStudent(studentID uint) ([]Invoice, error) {
	var list []Invoice
	err := r.DB.
		Preload("Shares").
		Where("student_id = ?", studentID).
		Order("bill_date DESC").
		Find(&list).Error
	return list, err
}

// ListUnpaid returns invoices with an outstanding rest.
func (r *Repository) ListUnpaid() ([]Invoice, error) {
	var list []Invoice
	err := r.DB.Where("rest > 0").Order("bill_date ASC").Find(&list).Error
	return list, err
}

// RegisterPayment bumps the cash counters on an invoice. Meant to run inside
// the payment-recording transaction: it takes a row lock and recomputes the
// counters from the locked row, so a concurrent event against the same
// invoice waits instead of overwriting this one. inv is refreshed with the
// committed counters.
func (r *Repository) RegisterPayment(db *gorm.DB, inv *Invoice, amount decimal.Decimal, paidAt time.Time) error {
	if db == nil {
		db = r.DB
	}
	var current Invoice
	if err := db.Clauses(clause.Locking{Strength: "UPDATE"}).First(&current, inv.ID).Error; err != nil {
		return err
	}
	current.applyPayment(amount, paidAt)
	if err := db.Model(&Invoice{}).Where("id = ?", inv.ID).Updates(map[string]interface{}{
		"amount_paid":       current.AmountPaid,
		"rest":              current.Rest,
		"last_payment_date": current.LastPaymentDate,
	}).Error; err != nil {
		return err
	}
	inv.AmountPaid = current.AmountPaid
	inv.Rest = current.Rest
	inv.LastPaymentDate = current.LastPaymentDate
	return nil
}

// Delete soft-deletes an invoice.
func (r *Repository) Delete(inv *Invoice) error {
	return r.DB.Delete(inv).Error
}
