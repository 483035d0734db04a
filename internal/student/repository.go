// internal/student/repository.go
package student

import (
	"gorm.io/gorm"
)

// Repository encapsulates database access for students.
type Repository struct {
	DB *gorm.DB
}

// NewRepository returns a new repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

// Create inserts a new student.
func (r *Repository) Create(s *Student) error {
	return r.DB.Create(s).Error
}

// FindByID returns one student by ID.
func (r *Repository) FindByID(id uint) (*Student, error) {
	var s Student
	if err := r.DB.First(&s, id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

// List returns students, optionally filtered by school and class.
func (r *Repository) List(schoolID, classID uint) ([]Student, error) {
	q := r.DB.Order("last_name ASC, first_name ASC")
	if schoolID != 0 {
		q = q.Where("school_id = ?", schoolID)
	}
	if classID != 0 {
		q = q.Where("class_id = ?", classID)
	}
	var list []Student
	err := q.Find(&list).Error
	return list, err
}

// Update saves changes to an existing student.
func (r *Repository) Update(s *Student) error {
	return r.DB.Save(s).Error
}

// Delete soft-deletes a student.
func (r *Repository) Delete(s *Student) error {
	return r.DB.Delete(s).Error
}
