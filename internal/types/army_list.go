package types

import (
	"time"

	"github.com/google/uuid"
)

// ArmyList total cost is always the sum of its entries' PtsCost; it is
// never stored on the list row.
type ArmyList struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string    `gorm:"not null;column:name" json:"name"`
	FactionID   string    `gorm:"index;not null;column:faction_id" json:"faction_id"`
	PointsLimit int       `gorm:"column:points_limit;not null;default:0" json:"points_limit"`
	Notes       string    `gorm:"column:notes" json:"notes"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (ArmyList) TableName() string { return "army_list" }
