package types

import "time"

type Faction struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null;column:name" json:"name"`
	SortOrder int       `gorm:"column:sort_order;not null;default:0" json:"sort_order"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Faction) TableName() string { return "faction" }
