package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pminda/souschef-backend/internal/models"
	"github.com/pminda/souschef-backend/internal/testhelpers"
)

func TestChatService_CreateConversation(t *testing.T) {
	db := testhelpers.SetupSQLiteDB(t)
	svc := NewChatService(db)

	conversation, err := svc.CreateConversation(context.Background(), 1)
	require.NoError(t, err)
	assert.NotZero(t, conversation.ID)
	assert.EqualValues(t, 1, conversation.UserID)
	assert.False(t, conversation.CreatedAt.IsZero())
}

func TestChatService_LogMessage(t *testing.T) {
	db := testhelpers.SetupSQLiteDB(t)
	svc := NewChatService(db)
	ctx := context.Background()

	entry, err := svc.LogMessage(ctx, &models.ChatLog{
		Role:           models.RoleUser,
		Content:        "I want chicken stir-fry",
		ConversationID: 1,
		UserID:         1,
	})
	require.NoError(t, err)

	assert.NotZero(t, entry.ID)
	assert.False(t, entry.CreatedAt.IsZero())
	assert.Equal(t, "text", entry.MessageType)
}

func TestChatService_ListMessages(t *testing.T) {
	db := testhelpers.SetupSQLiteDB(t)
	svc := NewChatService(db)
	ctx := context.Background()

	for _, content := range []string{"first", "second", "third"} {
		_, err := svc.LogMessage(ctx, &models.ChatLog{
			Role:           models.RoleUser,
			Content:        content,
			ConversationID: 7,
			UserID:         1,
		})
		require.NoError(t, err)
	}
	// A turn from another conversation must not leak in.
	_, err := svc.LogMessage(ctx, &models.ChatLog{
		Role:           models.RoleUser,
		Content:        "other",
		ConversationID: 8,
		UserID:         1,
	})
	require.NoError(t, err)

	entries, err := svc.ListMessages(ctx, 7)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "first", entries[0].Content)
	assert.Equal(t, "third", entries[2].Content)
}
