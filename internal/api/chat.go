package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pminda/souschef-backend/internal/models"
	"github.com/pminda/souschef-backend/internal/service"
)

// ChatHandler owns the conversational endpoints: the ask-chef pipeline,
// conversation creation and chat history.
type ChatHandler struct {
	chatService   *service.ChatService
	recipeService *service.RecipeService
	generator     service.Generator
	defaultUserID uint
	logger        *zap.Logger
}

// NewChatHandler creates a new ChatHandler instance.
func NewChatHandler(chatService *service.ChatService, recipeService *service.RecipeService, generator service.Generator, defaultUserID uint, logger *zap.Logger) *ChatHandler {
	return &ChatHandler{
		chatService:   chatService,
		recipeService: recipeService,
		generator:     generator,
		defaultUserID: defaultUserID,
		logger:        logger,
	}
}

// RegisterRoutes registers the chat routes.
func (h *ChatHandler) RegisterRoutes(router gin.IRouter) {
	router.POST("/ask-chef", h.AskChef)
	router.POST("/create-conversation", h.CreateConversation)
	router.GET("/conversations/:id/chatlogs", h.ListChatLogs)
}

type askChefRequest struct {
	Role           string `json:"role"`
	Content        string `json:"content"`
	ConversationID uint   `json:"conversation_id"`
	UserID         uint   `json:"user_id"`
}

// AskChef runs one conversational turn: store the user's message, generate
// the assistant reply, parse it, persist the extracted recipe data and the
// assistant turn, and return both stored chat rows. The pipeline halts on the
// first failure and writes exactly one response.
func (h *ChatHandler) AskChef(c *gin.Context) {
	var req askChefRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Content) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Prompt is required!"})
		return
	}

	role := req.Role
	if role == "" {
		role = models.RoleUser
	}

	ctx := c.Request.Context()

	userEntry, err := h.chatService.LogMessage(ctx, &models.ChatLog{
		Role:           role,
		Content:        req.Content,
		ConversationID: req.ConversationID,
		UserID:         req.UserID,
	})
	if err != nil {
		h.logger.Error("failed to store user message", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store user message"})
		return
	}

	reply, err := h.generator.Generate(ctx, req.Content)
	if err != nil {
		h.logger.Error("chef generation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process the request."})
		return
	}

	parsed := service.ParseChefResponse(reply)

	_, chefEntry, err := h.recipeService.SaveGenerated(ctx, service.SaveGeneratedParams{
		UserID:         req.UserID,
		ConversationID: req.ConversationID,
		Parsed:         parsed,
	})
	if err != nil {
		h.logger.Error("failed to store chef reply", zap.Error(err),
			zap.String("dish", parsed.DishName))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store chef reply"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"userPrompt": userEntry,
		"gptChat":    chefEntry,
	})
}

// CreateConversation starts a new conversation for the default user.
func (h *ChatHandler) CreateConversation(c *gin.Context) {
	conversation, err := h.chatService.CreateConversation(c.Request.Context(), h.defaultUserID)
	if err != nil {
		h.logger.Error("failed to create conversation", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "Failed to create conversation",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Conversation created successfully",
		"data":    conversation,
	})
}

// ListChatLogs returns a conversation's turns in order.
func (h *ChatHandler) ListChatLogs(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid conversation id"})
		return
	}

	entries, err := h.chatService.ListMessages(c.Request.Context(), uint(id))
	if err != nil {
		h.logger.Error("failed to list chatlogs", zap.Error(err), zap.Uint64("conversation_id", id))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch chatlogs"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"chatlogs": entries})
}
