package integration

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pminda/souschef-backend/internal/database"
	"github.com/pminda/souschef-backend/internal/models"
	"github.com/pminda/souschef-backend/internal/service"
	"github.com/pminda/souschef-backend/internal/testhelpers"
)

func TestPostgresMigrationsAreIdempotent(t *testing.T) {
	db := testhelpers.SetupPostgresDB(t)

	// Running the SQL migrations twice must not fail: every statement is
	// written to be re-runnable.
	require.NoError(t, database.RunMigrations(db, "../../migrations"))
	require.NoError(t, database.RunMigrations(db, "../../migrations"))

	var applied int64
	require.NoError(t, db.Table("migrations").Count(&applied).Error)
	assert.EqualValues(t, 1, applied)
}

func TestPostgresGeneratedReplyPipeline(t *testing.T) {
	db := testhelpers.SetupPostgresDB(t)
	ctx := context.Background()

	chatSvc := service.NewChatService(db)
	recipeSvc := service.NewRecipeService(db)

	conversation, err := chatSvc.CreateConversation(ctx, 1)
	require.NoError(t, err)

	_, err = chatSvc.LogMessage(ctx, &models.ChatLog{
		Role:           models.RoleUser,
		Content:        "I want pad thai",
		ConversationID: conversation.ID,
		UserID:         1,
	})
	require.NoError(t, err)

	parsed := service.ParsedResponse{
		Cuisine:  "Thai",
		DishName: "Chicken Pad Thai",
		Message:  "A street-food classic.",
		Markdown: "# Chicken Pad Thai",
	}

	recipe, entry, err := recipeSvc.SaveGenerated(ctx, service.SaveGeneratedParams{
		UserID:         1,
		ConversationID: conversation.ID,
		Parsed:         parsed,
	})
	require.NoError(t, err)
	require.NotZero(t, recipe.ID)
	require.NotZero(t, entry.ID)

	entries, err := chatSvc.ListMessages(ctx, conversation.ID)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, models.RoleUser, entries[0].Role)
	assert.Equal(t, models.RoleSystem, entries[1].Role)

	t.Run("repeat ask updates the same recipe row", func(t *testing.T) {
		parsed.Markdown = "# Chicken Pad Thai v2"
		again, _, err := recipeSvc.SaveGenerated(ctx, service.SaveGeneratedParams{
			UserID:         1,
			ConversationID: conversation.ID,
			Parsed:         parsed,
		})
		require.NoError(t, err)
		assert.Equal(t, recipe.ID, again.ID)
		assert.Equal(t, "# Chicken Pad Thai v2", again.Markdown)

		var count int64
		require.NoError(t, db.Model(&models.Recipe{}).Count(&count).Error)
		assert.EqualValues(t, 1, count)
	})

	t.Run("unique index rejects a duplicate written directly", func(t *testing.T) {
		dup := models.Recipe{
			UserID:         1,
			ConversationID: conversation.ID,
			DishName:       "Chicken Pad Thai",
			Markdown:       "# dup",
			CuisineID:      recipe.CuisineID,
		}
		assert.Error(t, db.Create(&dup).Error)
	})
}

func TestPostgresCuisineNamesAreUnique(t *testing.T) {
	db := testhelpers.SetupPostgresDB(t)
	svc := service.NewRecipeService(db)
	ctx := context.Background()

	first, err := svc.ResolveCuisine(ctx, "Mexican")
	require.NoError(t, err)
	second, err := svc.ResolveCuisine(ctx, "Mexican")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	assert.Error(t, db.Create(&models.Cuisine{Name: "Mexican"}).Error)
}
