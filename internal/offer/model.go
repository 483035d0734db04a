// internal/offer/model.go
package offer

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Offer is a catalog entry: a named subject bundle with a default monthly
// price. Memberships start from an offer and may override price, weights
// and teacher assignments per student.
type Offer struct {
	gorm.Model
	Name     string          `json:"name" gorm:"size:255;not null"`
	Subjects []string        `json:"subjects" gorm:"type:jsonb;serializer:json"`
	Price    decimal.Decimal `json:"price" gorm:"type:numeric;not null;default:0"`
	Active   bool            `json:"active" gorm:"not null;default:true"`
	SchoolID uint            `json:"schoolId" gorm:"index"`
}

// Migrate creates the offers table.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Offer{})
}
