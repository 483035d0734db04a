// internal/student/model.go
package student

import "gorm.io/gorm"

// Student is an enrolled student. School and class enrollment drive the
// read-side filters on teacher earnings.
type Student struct {
	gorm.Model
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	GuardianName  string `json:"guardianName"`
	GuardianPhone string `json:"guardianPhone"`
	SchoolID      uint   `json:"schoolId" gorm:"not null;index"`
	ClassID       uint   `json:"classId" gorm:"index"`
	ClassName     string `json:"className" gorm:"size:100"`
}

// Migrate creates the students table.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Student{})
}
