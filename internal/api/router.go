package api

import (
	"companion_collection/internal/middleware"
	"companion_collection/internal/service"
	"companion_collection/pkg/auth"

	"github.com/gin-gonic/gin"
)

// NewRoutes mounts every game endpoint under handler. All of them require
// Telegram auth, and all but registration require a registered user.
func NewRoutes(handler *gin.RouterGroup, s *service.Service, a *auth.TelegramAuth) {
	authz := middleware.NewAuthorization(s.UserService)

	NewUserRoutes(handler, s.UserService, a, authz)

	game := handler.Group("", a.TelegramAuthMiddleware(), authz.RegisteredOnly())
	NewCatalogRoutes(game, s.CatalogService)
	NewAdoptionRoutes(game, s.AdoptionService)
	NewBondRoutes(game, s.BondService)
	NewFriendRoutes(game, s.FriendService)
	NewLeaderboardRoutes(game, s.LeaderboardService)
}
