package service

import (
	"context"

	"gorm.io/gorm"

	"github.com/pminda/souschef-backend/internal/models"
)

// ChatService handles conversations and their append-only chat log.
type ChatService struct {
	db *gorm.DB
}

// NewChatService creates a new ChatService instance.
func NewChatService(db *gorm.DB) *ChatService {
	return &ChatService{db: db}
}

// CreateConversation creates a conversation owned by the given user.
func (s *ChatService) CreateConversation(ctx context.Context, userID uint) (*models.Conversation, error) {
	conversation := models.Conversation{UserID: userID}
	if err := s.db.WithContext(ctx).Create(&conversation).Error; err != nil {
		return nil, err
	}
	return &conversation, nil
}

// LogMessage appends one immutable turn to the chat log. The entry comes back
// with its generated identifier and timestamp filled in.
func (s *ChatService) LogMessage(ctx context.Context, entry *models.ChatLog) (*models.ChatLog, error) {
	if entry.MessageType == "" {
		entry.MessageType = "text"
	}
	if err := s.db.WithContext(ctx).Create(entry).Error; err != nil {
		return nil, err
	}
	return entry, nil
}

// ListMessages returns a conversation's turns in insertion order.
func (s *ChatService) ListMessages(ctx context.Context, conversationID uint) ([]models.ChatLog, error) {
	var entries []models.ChatLog
	err := s.db.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Order("created_at ASC, id ASC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}
