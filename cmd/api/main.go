package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/billyziiii/docker-fullstack/internal/cache"
	"github.com/billyziiii/docker-fullstack/internal/config"
	"github.com/billyziiii/docker-fullstack/internal/database"
	"github.com/billyziiii/docker-fullstack/internal/handlers"
	"github.com/billyziiii/docker-fullstack/internal/middleware"
	"github.com/billyziiii/docker-fullstack/internal/repository"
	"github.com/billyziiii/docker-fullstack/internal/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logrus.SetLevel(level)
	}
	if cfg.Env == "production" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := database.MigrateUp(cfg.DatabaseURL); err != nil {
		logrus.Fatalf("Failed to run migrations: %v", err)
	}

	db, err := database.NewConnection(ctx, cfg.DatabaseURL)
	if err != nil {
		logrus.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	cacheStore, err := newCache(ctx, cfg, db)
	if err != nil {
		logrus.Fatalf("Failed to set up cache: %v", err)
	}
	defer cacheStore.Close()

	go sweepLoop(ctx, cacheStore, cfg.CacheSweep)

	userRepo := repository.NewUserRepository(db)
	historyRepo := repository.NewHistoryRepository(db)
	settler := repository.NewWagerSettler(db)

	jwtService := services.NewJWTService(cfg)
	authService := services.NewAuthService(userRepo, cfg)
	userService := services.NewUserService(userRepo, cacheStore)
	broadcaster := services.NewBroadcaster()
	gameService := services.NewGameService(services.NewSlotEngine(), settler, historyRepo, userService, broadcaster)

	authHandler := handlers.NewAuthHandler(authService, jwtService, cfg.MinPasswordLen)
	userHandler := handlers.NewUserHandler(userService)
	gameHandler := handlers.NewGameHandler(gameService)
	healthHandler := handlers.NewHealthHandler(db)
	liveFeedHandler := handlers.NewLiveFeedHandler(broadcaster)

	router := gin.Default()
	router.Use(middleware.RequestID())

	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	router.GET("/api", handlers.Index)
	router.GET("/api/health", healthHandler.Check)
	router.POST("/api/auth/register", authHandler.Register)
	router.POST("/api/auth/login", authHandler.Login)

	protected := router.Group("/api")
	protected.Use(middleware.AuthMiddleware(jwtService))
	{
		protected.GET("/user/profile", userHandler.GetProfile)

		game := protected.Group("/game")
		{
			game.POST("/slot", gameHandler.PlaySlot)
			game.GET("/history", gameHandler.GetHistory)
			game.GET("/live", liveFeedHandler.Stream)
		}
	}

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logrus.WithField("port", cfg.Port).Info("Server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	logrus.Info("Shutting down...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("Server shutdown failed")
	}
}

// newCache selects the cache backend from config.
func newCache(ctx context.Context, cfg *config.Config, db *database.DB) (cache.Cache, error) {
	switch cfg.CacheBackend {
	case "redis":
		return cache.NewRedisCache(ctx, cfg.RedisURL, cfg.RedisPassword, cfg.RedisDB)
	case "postgres":
		return cache.NewPostgresCache(db), nil
	default:
		return cache.NewMemoryCache(), nil
	}
}

// sweepLoop reaps expired cache entries periodically. Correctness does not
// depend on it; expired entries are already filtered at read time.
func sweepLoop(ctx context.Context, c cache.Cache, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed, err := c.Sweep(ctx)
			if err != nil {
				logrus.WithError(err).Warn("Cache sweep failed")
			} else if removed > 0 {
				logrus.WithField("removed", removed).Debug("Cache sweep completed")
			}
		}
	}
}
