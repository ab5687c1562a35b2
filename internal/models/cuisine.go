package models

import "time"

// Cuisine is a lazily created lookup row keyed by exact name. Names are
// whatever the generator emitted, including the empty string; rows are never
// updated after insert.
type Cuisine struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"size:100;uniqueIndex" json:"name"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Cuisine) TableName() string {
	return "cuisines"
}
