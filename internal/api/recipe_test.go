package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pminda/souschef-backend/internal/models"
	"github.com/pminda/souschef-backend/internal/service"
	"github.com/pminda/souschef-backend/internal/testhelpers"
)

func setupRecipeRouter(t *testing.T) (*gin.Engine, *service.RecipeService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testhelpers.SetupSQLiteDB(t)
	svc := service.NewRecipeService(db)
	handler := NewRecipeHandler(svc, zap.NewNop())

	router := gin.New()
	handler.RegisterRoutes(router)
	return router, svc
}

func seedRecipe(t *testing.T, svc *service.RecipeService, userID uint, cuisineName, dishName string) *models.Recipe {
	t.Helper()
	ctx := context.Background()

	cuisine, err := svc.ResolveCuisine(ctx, cuisineName)
	require.NoError(t, err)
	recipe, err := svc.UpsertRecipe(ctx, userID, 1, cuisine, dishName, "# "+dishName)
	require.NoError(t, err)
	return recipe
}

func TestListRecipes(t *testing.T) {
	router, svc := setupRecipeRouter(t)
	seedRecipe(t, svc, 1, "Thai", "Chicken Pad Thai")
	seedRecipe(t, svc, 2, "Italian", "Carbonara")

	t.Run("all recipes", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/recipes", nil))
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Recipes []models.Recipe `json:"recipes"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Len(t, resp.Recipes, 2)
	})

	t.Run("filtered by user", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/recipes?user_id=2", nil))
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Recipes []models.Recipe `json:"recipes"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Len(t, resp.Recipes, 1)
		assert.Equal(t, "Carbonara", resp.Recipes[0].DishName)
		assert.Equal(t, "Italian", resp.Recipes[0].Cuisine.Name)
	})

	t.Run("invalid user filter", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/recipes?user_id=abc", nil))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestGetRecipe(t *testing.T) {
	router, svc := setupRecipeRouter(t)
	seeded := seedRecipe(t, svc, 1, "Thai", "Chicken Pad Thai")

	t.Run("found", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/recipes/1", nil))
		require.Equal(t, http.StatusOK, w.Code)

		var got models.Recipe
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Equal(t, seeded.ID, got.ID)
		assert.Equal(t, "Chicken Pad Thai", got.DishName)
		assert.Equal(t, "Thai", got.Cuisine.Name)
	})

	t.Run("not found", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/recipes/999", nil))
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "Recipe not found")
	})

	t.Run("invalid id", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/recipes/abc", nil))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
