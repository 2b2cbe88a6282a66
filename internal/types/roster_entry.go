package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// RosterEntry is one persisted army-list line. Selections holds the
// upgrade/item/ammo state as JSON (the domain entry shape); the scalar
// columns mirror the fields list views need.
type RosterEntry struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	ListID      uuid.UUID      `gorm:"type:uuid;index;not null;column:list_id" json:"list_id"`
	List        *ArmyList      `gorm:"constraint:OnDelete:CASCADE;foreignKey:ListID;references:ID" json:"list,omitempty"`
	UnitID      string         `gorm:"index;not null;column:unit_id" json:"unit_id"`
	UnitName    string         `gorm:"not null;column:unit_name" json:"unit_name"`
	ModelCount  int            `gorm:"column:model_count;not null;default:1" json:"model_count"`
	IsCharacter bool           `gorm:"column:is_character;not null;default:false" json:"is_character"`
	Category    string         `gorm:"column:category" json:"category"`
	Selections  datatypes.JSON `gorm:"column:selections" json:"selections"`
	Notes       string         `gorm:"column:notes" json:"notes"`
	PtsCost     int            `gorm:"column:pts_cost;not null;default:0" json:"pts_cost"`
	Position    int            `gorm:"column:position;not null;default:0" json:"position"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

func (RosterEntry) TableName() string { return "roster_entry" }
