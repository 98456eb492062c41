package main

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"companion_collection/internal/api"
	"companion_collection/internal/repository"
	"companion_collection/internal/service"
	"companion_collection/pkg/auth"
	"companion_collection/pkg/cadence"
	"companion_collection/pkg/logger"
	"go.uber.org/zap"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	err = logger.Initialize(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	zapLogger := logger.Logger()

	repo, err := repository.New(cfg.Database)
	if err != nil {
		zapLogger.Fatal("Failed to initialize repository", zap.Error(err))
	}
	defer repo.Close()

	calendar, err := cadence.NewCalendar(cfg.Game.ResetHour)
	if err != nil {
		zapLogger.Fatal("Invalid reset hour", zap.Error(err))
	}

	clock := service.SystemClock{}
	rnd := service.DefaultRandomizer()
	telegramAuth := auth.NewTelegramAuth(cfg.Auth.BotToken, cfg.Auth.DebugMode)

	var avatars service.AvatarSource
	if cfg.Auth.BotToken != "" {
		avatars = auth.NewAvatars(cfg.Auth.BotToken)
	}

	svc := &service.Service{
		UserService:        service.NewUserService(repo, calendar, clock, avatars),
		CatalogService:     service.NewCatalogService(repo),
		AdoptionService:    service.NewAdoptionService(repo, calendar, clock, rnd, cfg.Game),
		BondService:        service.NewBondService(repo, calendar, clock, rnd, cfg.Game),
		FriendService:      service.NewFriendService(repo, clock),
		LeaderboardService: service.NewLeaderboardService(repo, cfg.Game),
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(logger.RequestLogger())

	config := cors.DefaultConfig()
	config.AllowAllOrigins = true
	config.AllowMethods = []string{
		http.MethodHead,
		http.MethodGet,
		http.MethodPost,
		http.MethodPut,
		http.MethodPatch,
		http.MethodDelete,
	}
	config.AllowHeaders = []string{"*"}
	config.MaxAge = 12 * time.Hour

	router.Use(cors.New(config))

	a := router.Group("/api/v1")
	api.NewRoutes(a, svc, telegramAuth)

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	zapLogger.Info("Starting server",
		zap.String("addr", addr),
		zap.Int("reset_hour", calendar.ResetHour()))
	if err := router.Run(addr); err != nil {
		zapLogger.Fatal("Failed to start server", zap.Error(err))
	}
}
