package types

import (
	"time"

	"gorm.io/datatypes"
)

// Unit is a catalog row. The full unit definition (profiles, equipment,
// rules, upgrade menu, relic) lives in Data as JSON; the scalar columns
// exist for listing and filtering without unmarshalling every payload.
type Unit struct {
	ID          string         `gorm:"primaryKey" json:"id"`
	FactionID   string         `gorm:"index;not null;column:faction_id" json:"faction_id"`
	Faction     *Faction       `gorm:"constraint:OnDelete:CASCADE;foreignKey:FactionID;references:ID" json:"faction,omitempty"`
	Name        string         `gorm:"not null;column:name" json:"name"`
	Category    string         `gorm:"not null;column:category" json:"category"`
	IsCharacter bool           `gorm:"column:is_character;not null;default:false" json:"is_character"`
	Data        datatypes.JSON `gorm:"column:data" json:"data"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

func (Unit) TableName() string { return "unit" }
