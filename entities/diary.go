package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ConsumedProduct is a snapshot of the catalog entry taken when it was eaten.
type ConsumedProduct struct {
	ProductID uuid.UUID `json:"productId"`
	Title     string    `json:"title"`
	Calories  float64   `json:"calories"`
	Quantity  float64   `json:"quantity"`
}

func (c ConsumedProduct) Total() float64 {
	return c.Calories * c.Quantity
}

type Diary struct {
	ID               uuid.UUID                            `gorm:"type:uuid;primary_key" json:"id"`
	UserID           uuid.UUID                            `gorm:"type:uuid;not null;uniqueIndex:idx_diaries_user_date" json:"user_id"`
	Date             time.Time                            `gorm:"type:date;not null;uniqueIndex:idx_diaries_user_date" json:"date"`
	TotalCalories    float64                              `gorm:"not null;default:0" json:"total_calories"`
	ConsumedProducts datatypes.JSONSlice[ConsumedProduct] `gorm:"type:jsonb;not null" json:"consumed_products"`

	User *User `gorm:"foreignKey:UserID"`
	Timestamp
}
