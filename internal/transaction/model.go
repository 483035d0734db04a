// internal/transaction/model.go
package transaction

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Transaction types. Salary pays an assistant's fixed wage, wallet pays out
// an instructor's accrued revenue share, expense charges a cost against the
// employee.
const (
	TypeSalary  = "salary"
	TypeWallet  = "wallet"
	TypeExpense = "expense"
)

var ErrInvalidType = errors.New("transaction type must be salary, wallet or expense")

// Transaction is one cash movement against an employee. The log is
// append-only; corrections are new rows, not edits.
type Transaction struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deletedAt,omitempty"`

	UserID      uint            `gorm:"not null;index" json:"userId"`
	Type        string          `gorm:"size:20;not null;index" json:"type"`
	Amount      decimal.Decimal `gorm:"type:numeric;not null" json:"amount"`
	PaymentDate time.Time       `gorm:"not null;index" json:"paymentDate"`
	Description string          `gorm:"size:500" json:"description"`

	IsRecurring     bool       `gorm:"not null;default:false" json:"isRecurring"`
	NextPaymentDate *time.Time `json:"nextPaymentDate"`
}

// IsPayout reports whether the transaction moves cash to the employee.
func (t *Transaction) IsPayout() bool {
	return t.Type == TypeSalary || t.Type == TypeWallet
}

// ValidType reports whether the type is one of the three known kinds.
func ValidType(t string) bool {
	return t == TypeSalary || t == TypeWallet || t == TypeExpense
}

// Migrate creates the transactions table.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Transaction{})
}
