// internal/attribution/repository.go
package attribution

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Repository encapsulates database access for teacher shares.
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

// CreateInBatch appends share rows for one payment event (ignores if empty).
func (r *Repository) CreateInBatch(shares []*TeacherShare) error {
	if len(shares) == 0 {
		return nil
	}
	return r.DB.Create(shares).Error
}

// EarningsFilter narrows earnings queries. School and class filters go
// through the invoice's student; zero values mean "no filter".
type EarningsFilter struct {
	From     time.Time
	To       time.Time
	SchoolID uint
	ClassID  uint
}

func (r *Repository) earningsQuery(teacherID uint, f EarningsFilter) *gorm.DB {
	q := r.DB.Model(&TeacherShare{}).
		Where("teacher_shares.teacher_id = ?", teacherID)
	if !f.From.IsZero() {
		q = q.Where("teacher_shares.paid_at >= ?", f.From)
	}
	if !f.To.IsZero() {
		q = q.Where("teacher_shares.paid_at < ?", f.To)
	}
	if f.SchoolID != 0 || f.ClassID != 0 {
		q = q.Joins("JOIN invoices ON invoices.id = teacher_shares.invoice_id").
			Joins("JOIN students ON students.id = invoices.student_id")
		if f.SchoolID != 0 {
			q = q.Where("students.school_id = ?", f.SchoolID)
		}
		if f.ClassID != 0 {
			q = q.Where("students.class_id = ?", f.ClassID)
		}
	}
	return q
}

// SumEarnings totals a teacher's cash-basis earnings under a filter.
func (r *Repository) SumEarnings(teacherID uint, f EarningsFilter) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.earningsQuery(teacherID, f).
		Select("COALESCE(SUM(teacher_shares.amount), 0)").
		Scan(&total).Error
	return total, err
}

// EarningsLine is one row of the per-student/offer earnings breakdown.
type EarningsLine struct {
	StudentID uint            `json:"studentId"`
	OfferID   uint            `json:"offerId"`
	Subject   string          `json:"subject"`
	Amount    decimal.Decimal `json:"amount"`
}

// EarningsBreakdown groups a teacher's earnings by student, offer and
// subject for detail views.
func (r *Repository) EarningsBreakdown(teacherID uint, f EarningsFilter) ([]EarningsLine, error) {
	var lines []EarningsLine
	q := r.DB.Model(&TeacherShare{}).
		Select("invoices.student_id AS student_id, invoices.offer_id AS offer_id, teacher_shares.subject AS subject, COALESCE(SUM(teacher_shares.amount), 0) AS amount").
		Joins("JOIN invoices ON invoices.id = teacher_shares.invoice_id").
		Where("teacher_shares.teacher_id = ?", teacherID)
	if !f.From.IsZero() {
		q = q.Where("teacher_shares.paid_at >= ?", f.From)
	}
	if !f.To.IsZero() {
		q = q.Where("teacher_shares.paid_at < ?", f.To)
	}
	if f.SchoolID != 0 || f.ClassID != 0 {
		q = q.Joins("JOIN students ON students.id = invoices.student_id")
		if f.SchoolID != 0 {
			q = q.Where("students.school_id = ?", f.SchoolID)
		}
		if f.ClassID != 0 {
			q = q.Where("students.class_id = ?", f.ClassID)
		}
	}
	err := q.Group("invoices.student_id, invoices.offer_id, teacher_shares.subject").
		Order("invoices.student_id ASC").
		Scan(&lines).Error
	return lines, err
}

// WalletBalance folds the whole share history of a teacher into the accrued
// wallet balance. A projection over the append-only log, never a counter.
func (r *Repository) WalletBalance(teacherID uint) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.DB.Model(&TeacherShare{}).
		Where("teacher_id = ?", teacherID).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	return total, err
}

// ListByInvoice returns the full attribution history of one invoice.
func (r *Repository) ListByInvoice(invoiceID uint) ([]TeacherShare, error) {
	var list []TeacherShare
	err := r.DB.Where("invoice_id = ?", invoiceID).Order("paid_at ASC").Find(&list).Error
	return list, err
}
