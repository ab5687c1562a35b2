package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pminda/souschef-backend/config"
)

func testChefConfig(apiURL string) config.ChefConfig {
	return config.ChefConfig{
		APIKey:    "test-key",
		APIURL:    apiURL,
		Model:     "gpt-3.5-turbo",
		MaxTokens: 256,
		Timeout:   5 * time.Second,
	}
}

func TestNewChefService_RequiresAPIKey(t *testing.T) {
	_, err := NewChefService(config.ChefConfig{}, nil, zap.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "OPENAI_API_KEY")
}

func TestChefService_Generate(t *testing.T) {
	var gotBody chatRequest

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"Cuisine: Thai\nDish Name: Pad Thai\n\nEnjoy!"}}]}`))
	}))
	defer ts.Close()

	svc, err := NewChefService(testChefConfig(ts.URL), nil, zap.NewNop())
	require.NoError(t, err)

	reply, err := svc.Generate(context.Background(), "make me pad thai")
	require.NoError(t, err)
	assert.Contains(t, reply, "Dish Name: Pad Thai")

	assert.Equal(t, "gpt-3.5-turbo", gotBody.Model)
	assert.Equal(t, 256, gotBody.MaxTokens)
	require.Len(t, gotBody.Messages, 2)
	assert.Equal(t, "system", gotBody.Messages[0].Role)
	assert.Contains(t, gotBody.Messages[0].Content, "virtual kitchen assistant")
	assert.Equal(t, "user", gotBody.Messages[1].Role)
	assert.Equal(t, "make me pad thai", gotBody.Messages[1].Content)
}

func TestChefService_GenerateUpstreamError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"rate limited"}}`, http.StatusTooManyRequests)
	}))
	defer ts.Close()

	svc, err := NewChefService(testChefConfig(ts.URL), nil, zap.NewNop())
	require.NoError(t, err)

	_, err = svc.Generate(context.Background(), "anything")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 429")
}

func TestChefService_GenerateEmptyChoices(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer ts.Close()

	svc, err := NewChefService(testChefConfig(ts.URL), nil, zap.NewNop())
	require.NoError(t, err)

	_, err = svc.Generate(context.Background(), "anything")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no choices")
}
