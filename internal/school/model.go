// internal/school/model.go
package school

import "gorm.io/gorm"

// School is one branch of the tutoring operation.
type School struct {
	gorm.Model
	Name    string `json:"name" gorm:"size:255;not null;unique"`
	Address string `json:"address" gorm:"size:500"`
	Phone   string `json:"phone" gorm:"size:50"`
}

// Migrate creates the schools table.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&School{})
}
