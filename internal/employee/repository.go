// internal/employee/repository.go
package employee

import (
	"gorm.io/gorm"
)

// Repository encapsulates database access for employees.
type Repository struct {
	DB *gorm.DB
}

// NewRepository returns a new repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

// Create inserts a new employee.
func (r *Repository) Create(e *Employee) error {
	return r.DB.Create(e).Error
}

// FindByID returns one employee by ID.
func (r *Repository) FindByID(id uint) (*Employee, error) {
	var e Employee
	if err := r.DB.First(&e, id).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

// FindByEmail returns one employee by email.
func (r *Repository) FindByEmail(email string) (*Employee, error) {
	var e Employee
	if err := r.DB.Where("email = ?", email).First(&e).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

// List returns all employees, optionally filtered by role and school.
func (r *Repository) List(role string, schoolID uint) ([]Employee, error) {
	q := r.DB.Order("last_name ASC, first_name ASC")
	if role != "" {
		q = q.Where("role = ?", role)
	}
	if schoolID != 0 {
		q = q.Where("school_id = ?", schoolID)
	}
	var list []Employee
	err := q.Find(&list).Error
	return list, err
}

// ListPayable returns every employee who appears on payroll, i.e. everyone
// but admins.
func (r *Repository) ListPayable() ([]Employee, error) {
	var list []Employee
	err := r.DB.
		Where("role IN ?", []string{RoleInstructor, RoleAssistant}).
		Order("last_name ASC, first_name ASC").
		Find(&list).Error
	return list, err
}

// Update saves changes to an existing employee.
func (r *Repository) Update(e *Employee) error {
	return r.DB.Save(e).Error
}

// Delete soft-deletes an employee.
func (r *Repository) Delete(e *Employee) error {
	return r.DB.Delete(e).Error
}
