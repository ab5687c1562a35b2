package models

import "time"

// Recipe is the structured result extracted from a generated reply. Identity
// is (user_id, dish_name): asking for the same dish again updates the
// existing row in place instead of creating a duplicate.
type Recipe struct {
	ID             uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID         uint      `gorm:"not null;uniqueIndex:idx_recipes_user_dish" json:"user_id"`
	ConversationID uint      `gorm:"not null" json:"conversation_id"`
	DishName       string    `gorm:"size:255;not null;uniqueIndex:idx_recipes_user_dish" json:"dish_name"`
	Markdown       string    `gorm:"type:text" json:"markdown"`
	CuisineID      uint      `gorm:"not null" json:"cuisine_id"`
	Cuisine        Cuisine   `gorm:"foreignKey:CuisineID" json:"cuisine,omitempty"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Recipe) TableName() string {
	return "recipes"
}
