package models

import "time"

// User represents a registered civilian user of the app.
type User struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	DNI       string    `json:"dni" gorm:"uniqueIndex;type:varchar(8);not null"`
	FirstName string    `json:"nombre" gorm:"type:varchar(100);not null"`
	LastName  string    `json:"apellido" gorm:"type:varchar(100);not null"`
	BirthDate time.Time `json:"fechaNacimiento" gorm:"type:date"`
	Phone     string    `json:"telefono" gorm:"type:varchar(20);not null"`
	Email     string    `json:"email" gorm:"uniqueIndex;type:varchar(255);not null"`
	Password  string    `json:"-" gorm:"type:varchar(255);not null"` // bcrypt hash, never serialized
	Image     string    `json:"imagen" gorm:"type:varchar(255)"`

	Reports    []Report         `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Contacts   []TrustedContact `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	HealthData *HealthData      `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
