package server

import (
	"context"
	"errors"
	"net"
	"net/http"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pminda/souschef-backend/config"
	"github.com/pminda/souschef-backend/internal/api"
	"github.com/pminda/souschef-backend/internal/middleware"
	"github.com/pminda/souschef-backend/internal/service"
)

// Server wires the HTTP surface together and owns the listener lifecycle.
type Server struct {
	engine *gin.Engine
	http   *http.Server
	logger *zap.Logger
}

// New builds the gin engine, registers middleware and routes, and prepares
// the HTTP server. redisClient may be nil; the rate limiter is then skipped.
func New(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, generator service.Generator, logger *zap.Logger) *Server {
	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.NewString()
	})))
	engine.Use(middleware.CORS(nil))
	engine.Use(middleware.RequestLogger(logger))

	if cfg.RateLimit.Enabled && redisClient != nil {
		limiter := middleware.NewRateLimiter(redisClient, middleware.RateLimitConfig{
			Window: cfg.RateLimit.Window,
			Limit:  cfg.RateLimit.Requests,
		})
		engine.Use(limiter.Middleware())
	}

	chatService := service.NewChatService(db)
	recipeService := service.NewRecipeService(db)

	api.NewChatHandler(chatService, recipeService, generator, cfg.DefaultUserID, logger).RegisterRoutes(engine)
	api.NewRecipeHandler(recipeService, logger).RegisterRoutes(engine)
	api.NewHealthHandler(db).RegisterRoutes(engine)

	httpServer := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return &Server{
		engine: engine,
		http:   httpServer,
		logger: logger,
	}
}

// Start runs the HTTP server until Shutdown is called.
func (s *Server) Start() error {
	s.logger.Info("starting server", zap.String("addr", s.http.Addr))
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
