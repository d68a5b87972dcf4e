package entities

import (
	"github.com/google/uuid"
)

// BloodGroupRestriction flags a product as not allowed for blood groups 1-4.
type BloodGroupRestriction struct {
	Group1 bool `gorm:"column:group1;default:false"`
	Group2 bool `gorm:"column:group2;default:false"`
	Group3 bool `gorm:"column:group3;default:false"`
	Group4 bool `gorm:"column:group4;default:false"`
}

func NewBloodGroupRestriction(flags []bool) BloodGroupRestriction {
	var padded [4]bool
	copy(padded[:], flags)
	return BloodGroupRestriction{
		Group1: padded[0],
		Group2: padded[1],
		Group3: padded[2],
		Group4: padded[3],
	}
}

func (b BloodGroupRestriction) Flags() [4]bool {
	return [4]bool{b.Group1, b.Group2, b.Group3, b.Group4}
}

type Product struct {
	ID         uuid.UUID             `gorm:"type:uuid;primary_key" json:"id"`
	Categories string                `gorm:"not null" json:"categories"`
	Weight     float64               `gorm:"not null" json:"weight"`
	Title      string                `gorm:"not null;index" json:"title"`
	Calories   float64               `gorm:"not null" json:"calories"`
	NotAllowed BloodGroupRestriction `gorm:"embedded;embeddedPrefix:not_allowed_" json:"-"`

	Timestamp
}
