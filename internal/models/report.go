package models

import (
	"time"

	"github.com/lib/pq"
)

// TypeUrgency is the report type assigned to one-tap emergency alerts.
const TypeUrgency = "urgencia"

// Report is an accident or urgency record. The subject DNI may belong to a
// different user than the author (reporting an accident on someone's behalf).
type Report struct {
	ID          string         `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Type        string         `json:"tipoAccidente" gorm:"type:varchar(50);not null"`
	DNI         string         `json:"dni" gorm:"type:varchar(8);index;not null"`
	Description string         `json:"descripcion" gorm:"type:text;not null"`
	Location    string         `json:"ubicacion" gorm:"type:varchar(255);not null"`
	Images      pq.StringArray `json:"imagenes" gorm:"type:text[]"`

	UserID string `json:"-" gorm:"type:varchar(36);index;not null"`
	User   *User  `json:"usuario,omitempty" gorm:"foreignKey:UserID"`

	CreatedAt time.Time `json:"createdAt" gorm:"index"`
}
