// internal/membership/repository.go
package membership

import (
	"gorm.io/gorm"
)

// Repository encapsulates database access for memberships.
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

// Create inserts a new membership.
func (r *Repository) Create(m *Membership) error {
	return r.DB.Create(m).Error
}

// FindByID returns one membership by ID.
func (r *Repository) FindByID(id uint) (*Membership, error) {
	var m Membership
	if err := r.DB.First(&m, id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

// ListByStudent returns all memberships of one student.
func (r *Repository) ListByStudent(studentID uint) ([]Membership, error) {
	var list []Membership
	err := r.DB.Where("student_id = ?", studentID).Find(&list).Error
	return list, err
}

// ListByTeacher returns memberships in which the teacher is assigned to at
// least one subject. Assignments live in a jsonb map keyed by subject.
func (r *Repository) ListByTeacher(teacherID uint) ([]Membership, error) {
	var list []Membership
	err := r.DB.
		Where("EXISTS (SELECT 1 FROM jsonb_each_text(teacher_assignments) AS a WHERE a.value = ?::text)",
			teacherID).
		Find(&list).Error
	return list, err
}

// List returns all memberships.
func (r *Repository) List() ([]Membership, error) {
	var list []Membership
	err := r.DB.Find(&list).Error
	return list, err
}

// Update saves changes to an existing membership (updates all fields).
func (r *Repository) Update(m *Membership) error {
	return r.DB.Save(m).Error
}

// Delete soft-deletes a membership.
func (r *Repository) Delete(m *Membership) error {
	return r.DB.Delete(m).Error
}
