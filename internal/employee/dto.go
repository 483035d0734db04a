// internal/employee/dto.go
package employee

import "github.com/shopspring/decimal"

// CreateEmployeeDTO is the payload for creating or updating an employee.
type CreateEmployeeDTO struct {
	FirstName  string          `json:"firstName"`
	LastName   string          `json:"lastName"`
	Email      string          `json:"email"`
	Phone      string          `json:"phone"`
	Role       string          `json:"role"`
	SchoolID   uint            `json:"schoolId"`
	BaseSalary decimal.Decimal `json:"baseSalary"`
	Password   string          `json:"password,omitempty"`
}

// LoginRequest carries credentials for POST /login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the issued access token.
type LoginResponse struct {
	Token    string    `json:"token"`
	Employee *Employee `json:"employee"`
}
