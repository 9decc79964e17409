package models

import "time"

// TrustedContact is an emergency-notification target belonging to one user.
// Its email is unique per owning user, not globally.
type TrustedContact struct {
	ID    string `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name  string `json:"nombre" gorm:"type:varchar(100);not null"`
	Email string `json:"mail" gorm:"type:varchar(255);not null"`

	UserID string `json:"-" gorm:"type:varchar(36);index;not null"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
