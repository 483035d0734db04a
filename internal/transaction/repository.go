// internal/transaction/repository.go
package transaction

import (
	"database/sql"
	"time"

	"gorm.io/gorm"
)

// Repository encapsulates database access for transactions.
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

// Create appends a transaction.
func (r *Repository) Create(t *Transaction) error {
	return r.DB.Create(t).Error
}

// FindByID returns one transaction by ID.
func (r *Repository) FindByID(id uint) (*Transaction, error) {
	var t Transaction
	if err := r.DB.First(&t, id).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

// ListByUser returns all transactions of one employee, newest first.
func (r *Repository) ListByUser(userID uint) ([]Transaction, error) {
	var list []Transaction
	err := r.DB.Where("user_id = ?", userID).Order("payment_date DESC").Find(&list).Error
	return list, err
}

// ListByUserInPeriod returns one employee's transactions with payment date
// in [from, to).
func (r *Repository) ListByUserInPeriod(userID uint, from, to time.Time) ([]Transaction, error) {
	var list []Transaction
	err := r.DB.
		Where("user_id = ? AND payment_date >= ? AND payment_date < ?", userID, from, to).
		Order("payment_date ASC").
		Find(&list).Error
	return list, err
}

// LastPaymentDate returns the most recent salary/wallet payment date for one
// employee across all periods, or nil if they were never paid.
func (r *Repository) LastPaymentDate(userID uint) (*time.Time, error) {
	var nt sql.NullTime
	err := r.DB.Model(&Transaction{}).
		Where("user_id = ? AND type IN ?", userID, []string{TypeSalary, TypeWallet}).
		Select("MAX(payment_date)").
		Scan(&nt).Error
	if err != nil || !nt.Valid {
		return nil, err
	}
	return &nt.Time, nil
}

// LatestPaymentDateAny returns the most recent salary/wallet payment across
// all employees; the reporting UI defaults its active month to it.
func (r *Repository) LatestPaymentDateAny() (*time.Time, error) {
	var nt sql.NullTime
	err := r.DB.Model(&Transaction{}).
		Where("type IN ?", []string{TypeSalary, TypeWallet}).
		Select("MAX(payment_date)").
		Scan(&nt).Error
	if err != nil || !nt.Valid {
		return nil, err
	}
	return &nt.Time, nil
}

// ListDueRecurring returns recurring transactions whose next occurrence is
// due at or before the given time.
func (r *Repository) ListDueRecurring(now time.Time) ([]Transaction, error) {
	var list []Transaction
	err := r.DB.
		Where("is_recurring = ? AND next_payment_date IS NOT NULL AND next_payment_date <= ?", true, now).
		Find(&list).Error
	return list, err
}

// Update saves changes to a transaction (administrative correction path).
func (r *Repository) Update(t *Transaction) error {
	return r.DB.Save(t).Error
}

// Delete soft-deletes a transaction.
func (r *Repository) Delete(t *Transaction) error {
	return r.DB.Delete(t).Error
}
