package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/pminda/souschef-backend/config"
)

// systemPrompt sets the kitchen-assistant persona and pins the labels
// ParseChefResponse extracts. Changing a label string here silently breaks
// extraction, so keep the two in sync.
const systemPrompt = `You are a virtual kitchen assistant. Help the user by generating recipes, suggesting replacements for ingredients, or guiding them step-by-step.

Structure every reply exactly like this:

Cuisine: <the cuisine the dish belongs to>
Dish Name: <the name of the dish>

<a short friendly message about the dish>

Markdown File Output:
<the full recipe as a fenced markdown code block with ingredients and numbered steps>`

// ChefService calls an OpenAI-compatible chat-completion endpoint to produce
// assistant replies.
type ChefService struct {
	cfg    config.ChefConfig
	client *resty.Client
	redis  *redis.Client
	logger *zap.Logger
}

// NewChefService creates a ChefService. redisClient may be nil, in which case
// reply caching is disabled.
func NewChefService(cfg config.ChefConfig, redisClient *redis.Client, logger *zap.Logger) (*ChefService, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY must be set")
	}

	client := resty.New().
		SetBaseURL(cfg.APIURL).
		SetAuthToken(cfg.APIKey).
		SetTimeout(cfg.Timeout)

	return &ChefService{
		cfg:    cfg,
		client: client,
		redis:  redisClient,
		logger: logger,
	}, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model     string        `json:"model"`
	Messages  []chatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Generate sends the system instruction plus the user's prompt and returns
// the assistant's reply text. Identical prompts are served from the Redis
// cache when reply caching is enabled.
func (s *ChefService) Generate(ctx context.Context, prompt string) (string, error) {
	if cached, ok := s.cachedReply(ctx, prompt); ok {
		return cached, nil
	}

	reqBody := chatRequest{
		Model: s.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt},
		},
		MaxTokens: s.cfg.MaxTokens,
	}

	resp, err := s.client.R().
		SetContext(ctx).
		SetBody(reqBody).
		Post("/chat/completions")
	if err != nil {
		return "", fmt.Errorf("failed to send chat completion request: %w", err)
	}

	if resp.StatusCode() != http.StatusOK {
		s.logger.Error("chat completion request failed",
			zap.Int("status", resp.StatusCode()),
			zap.String("body", resp.String()))
		return "", fmt.Errorf("chat completion request failed with status %d", resp.StatusCode())
	}

	var result chatResponse
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return "", fmt.Errorf("failed to decode chat completion response: %w", err)
	}

	if len(result.Choices) == 0 {
		return "", fmt.Errorf("no choices in chat completion response")
	}

	reply := result.Choices[0].Message.Content
	s.storeReply(ctx, prompt, reply)
	return reply, nil
}

func (s *ChefService) cachedReply(ctx context.Context, prompt string) (string, bool) {
	if !s.cfg.CacheReply || s.redis == nil {
		return "", false
	}
	reply, err := s.redis.Get(ctx, replyCacheKey(prompt)).Result()
	if err != nil {
		return "", false
	}
	return reply, true
}

func (s *ChefService) storeReply(ctx context.Context, prompt, reply string) {
	if !s.cfg.CacheReply || s.redis == nil {
		return
	}
	if err := s.redis.Set(ctx, replyCacheKey(prompt), reply, s.cfg.CacheTTL).Err(); err != nil {
		s.logger.Warn("failed to cache chef reply", zap.Error(err))
	}
}

func replyCacheKey(prompt string) string {
	sum := sha256.Sum256([]byte(prompt))
	return "chef:reply:" + hex.EncodeToString(sum[:])
}
