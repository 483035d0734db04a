// internal/employee/model.go
package employee

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Employee roles. Instructors are owed their accrued wallet balance,
// assistants a fixed monthly salary.
const (
	RoleInstructor = "instructor"
	RoleAssistant  = "assistant"
	RoleAdmin      = "admin"
)

type Employee struct {
	gorm.Model
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email" gorm:"unique"`
	Phone     string `json:"phone"`
	Role      string `json:"role" gorm:"size:20;not null;index"`
	SchoolID  uint   `json:"schoolId" gorm:"index"`

	// Fixed monthly wage; meaningful for assistants only.
	BaseSalary decimal.Decimal `json:"baseSalary" gorm:"type:numeric;not null;default:0"`

	PasswordHash string `json:"-"`
}

// ValidRole reports whether the role is one of the known kinds.
func ValidRole(r string) bool {
	return r == RoleInstructor || r == RoleAssistant || r == RoleAdmin
}

// Migrate creates the employees table.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Employee{})
}
