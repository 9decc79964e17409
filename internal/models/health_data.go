package models

import (
	"time"

	"github.com/lib/pq"
)

// HealthData holds the optional medical profile of a user, at most one row per
// user. Each tag list holds at most 3 entries, enforced in the service layer.
type HealthData struct {
	ID          string         `json:"id" gorm:"primaryKey;type:varchar(36)"`
	BloodType   string         `json:"grupoSanguineo" gorm:"type:varchar(3)"`
	Height      string         `json:"altura" gorm:"type:varchar(10)"`
	Weight      string         `json:"peso" gorm:"type:varchar(10)"`
	Sex         string         `json:"sexo" gorm:"type:varchar(20)"`
	Pathologies pq.StringArray `json:"patologias" gorm:"type:text[]"`
	Medications pq.StringArray `json:"medicacion" gorm:"type:text[]"`
	Allergies   pq.StringArray `json:"alergias" gorm:"type:text[]"`

	UserID string `json:"-" gorm:"type:varchar(36);uniqueIndex;not null"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
