package types

import "time"

type MagicItem struct {
	ID          string    `gorm:"primaryKey" json:"id"`
	FactionID   string    `gorm:"index;not null;column:faction_id" json:"faction_id"`
	Faction     *Faction  `gorm:"constraint:OnDelete:CASCADE;foreignKey:FactionID;references:ID" json:"faction,omitempty"`
	Name        string    `gorm:"not null;column:name" json:"name"`
	Slot        string    `gorm:"not null;column:slot" json:"slot"`
	Pts         int       `gorm:"column:pts;not null;default:0" json:"pts"`
	Description string    `gorm:"column:description" json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (MagicItem) TableName() string { return "magic_item" }

// AmmoItem is a special-ammunition catalog row.
type AmmoItem struct {
	ID          string    `gorm:"primaryKey" json:"id"`
	FactionID   string    `gorm:"index;not null;column:faction_id" json:"faction_id"`
	Faction     *Faction  `gorm:"constraint:OnDelete:CASCADE;foreignKey:FactionID;references:ID" json:"faction,omitempty"`
	Name        string    `gorm:"not null;column:name" json:"name"`
	PtsPerModel int       `gorm:"column:pts_per_model;not null;default:0" json:"pts_per_model"`
	PtsFlat     int       `gorm:"column:pts_flat;not null;default:0" json:"pts_flat"`
	Description string    `gorm:"column:description" json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (AmmoItem) TableName() string { return "ammo_item" }
