package types

import (
	"time"

	"gorm.io/datatypes"
)

// UnitOverride is the stored sparse patch for one unit. Rows whose
// patch becomes empty are deleted, never stored as {} — the override
// service enforces that invariant on every write.
type UnitOverride struct {
	UnitID    string         `gorm:"primaryKey;column:unit_id" json:"unit_id"`
	Patch     datatypes.JSON `gorm:"column:patch;not null" json:"patch"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

func (UnitOverride) TableName() string { return "unit_override" }
