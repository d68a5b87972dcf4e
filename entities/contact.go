package entities

import (
	"github.com/google/uuid"
)

type Contact struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	OwnerID  uuid.UUID `gorm:"type:uuid;not null;index" json:"owner_id"`
	Name     string    `gorm:"not null" json:"name"`
	Email    string    `json:"email"`
	Phone    string    `json:"phone"`
	Favorite bool      `gorm:"default:false" json:"favorite"`

	Owner *User `gorm:"foreignKey:OwnerID"`
	Timestamp
}
