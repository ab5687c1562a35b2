package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/pminda/souschef-backend/internal/models"
)

// RecipeService persists the structured data extracted from generated
// replies: cuisines, recipes and the assistant turn that produced them.
type RecipeService struct {
	db *gorm.DB
}

// NewRecipeService creates a new RecipeService instance.
func NewRecipeService(db *gorm.DB) *RecipeService {
	return &RecipeService{db: db}
}

// ResolveCuisine returns the cuisine row with the given name, inserting it on
// first mention. The empty string is a legal name, so the lookup is written
// against the column rather than a struct condition (GORM drops zero-value
// struct fields).
func (s *RecipeService) ResolveCuisine(ctx context.Context, name string) (*models.Cuisine, error) {
	var cuisine models.Cuisine
	err := s.db.WithContext(ctx).Where("name = ?", name).First(&cuisine).Error
	if err == nil {
		return &cuisine, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	cuisine = models.Cuisine{Name: name}
	if err := s.db.WithContext(ctx).Create(&cuisine).Error; err != nil {
		return nil, err
	}
	return &cuisine, nil
}

// UpsertRecipe writes a recipe keyed by (user, dish name). An existing row is
// updated in place, keeping its identifier; otherwise a new row is inserted
// carrying the originating conversation.
func (s *RecipeService) UpsertRecipe(ctx context.Context, userID, conversationID uint, cuisine *models.Cuisine, dishName, markdown string) (*models.Recipe, error) {
	var recipe models.Recipe
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND dish_name = ?", userID, dishName).
		First(&recipe).Error
	switch {
	case err == nil:
		recipe.Markdown = markdown
		recipe.CuisineID = cuisine.ID
		if err := s.db.WithContext(ctx).Save(&recipe).Error; err != nil {
			return nil, err
		}
		return &recipe, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		recipe = models.Recipe{
			UserID:         userID,
			ConversationID: conversationID,
			DishName:       dishName,
			Markdown:       markdown,
			CuisineID:      cuisine.ID,
		}
		if err := s.db.WithContext(ctx).Create(&recipe).Error; err != nil {
			return nil, err
		}
		return &recipe, nil
	default:
		return nil, err
	}
}

// SaveGeneratedParams carries everything extracted from one assistant reply.
type SaveGeneratedParams struct {
	UserID         uint
	ConversationID uint
	Parsed         ParsedResponse
}

// SaveGenerated persists one parsed assistant reply: it resolves the cuisine,
// upserts the recipe and appends the assistant chat turn in a single
// transaction, so a failure partway through leaves no orphaned rows.
func (s *RecipeService) SaveGenerated(ctx context.Context, p SaveGeneratedParams) (*models.Recipe, *models.ChatLog, error) {
	var (
		recipe *models.Recipe
		entry  *models.ChatLog
	)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txSvc := &RecipeService{db: tx}

		cuisine, err := txSvc.ResolveCuisine(ctx, p.Parsed.Cuisine)
		if err != nil {
			return err
		}

		recipe, err = txSvc.UpsertRecipe(ctx, p.UserID, p.ConversationID, cuisine, p.Parsed.DishName, p.Parsed.Markdown)
		if err != nil {
			return err
		}

		entry = &models.ChatLog{
			Role:           models.RoleSystem,
			Content:        p.Parsed.Message,
			Markdown:       p.Parsed.Markdown,
			MessageType:    "text",
			ConversationID: p.ConversationID,
			UserID:         p.UserID,
		}
		return tx.Create(entry).Error
	})
	if err != nil {
		return nil, nil, err
	}

	return recipe, entry, nil
}

// GetRecipe retrieves a recipe by ID with its cuisine attached.
func (s *RecipeService) GetRecipe(ctx context.Context, id uint) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).Preload("Cuisine").First(&recipe, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

// ListRecipes lists recipes, optionally filtered to one user.
func (s *RecipeService) ListRecipes(ctx context.Context, userID *uint) ([]models.Recipe, error) {
	var recipes []models.Recipe
	query := s.db.WithContext(ctx).Preload("Cuisine")
	if userID != nil {
		query = query.Where("user_id = ?", *userID)
	}
	if err := query.Order("updated_at DESC").Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}
