package entities

import (
	"github.com/google/uuid"
)

type User struct {
	ID                uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Email             string    `gorm:"uniqueIndex;not null" json:"email"`
	Password          string    `gorm:"not null" json:"-"`
	Subscription      string    `gorm:"default:starter;not null" json:"subscription"`
	Token             *string   `gorm:"type:text" json:"-"`
	AvatarURL         string    `json:"avatar_url"`
	VerificationToken *string   `gorm:"index" json:"-"`
	Verify            bool      `gorm:"default:false;not null" json:"verify"`

	Contacts []*Contact `gorm:"foreignKey:OwnerID"`
	Diaries  []*Diary   `gorm:"foreignKey:UserID"`
	Timestamp
}

// SessionToken returns the stored session token or "" when logged out.
func (u *User) SessionToken() string {
	if u.Token == nil {
		return ""
	}
	return *u.Token
}
