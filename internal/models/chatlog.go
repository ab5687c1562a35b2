package models

import "time"

// Chat roles as stored in chatlogs.role.
const (
	RoleUser   = "user"
	RoleSystem = "system"
)

// ChatLog is one immutable conversational turn. The table is append-only;
// rows are never updated or deleted.
type ChatLog struct {
	ID             uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Role           string    `gorm:"size:20;not null" json:"role"`
	Content        string    `gorm:"type:text;not null" json:"content"`
	Markdown       string    `gorm:"type:text" json:"markdown,omitempty"`
	MessageType    string    `gorm:"size:50;default:text" json:"message_type"`
	ConversationID uint      `gorm:"not null;index" json:"conversation_id"`
	UserID         uint      `gorm:"not null;index" json:"user_id"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (ChatLog) TableName() string {
	return "chatlogs"
}
