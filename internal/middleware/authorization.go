package middleware

import (
	"errors"
	"net/http"

	"companion_collection/internal/model"
	"companion_collection/internal/service"
	"companion_collection/pkg/auth"
	"companion_collection/pkg/logger"
	"go.uber.org/zap"

	"github.com/gin-gonic/gin"
)

const userKey = "user"

type Authorization struct {
	userService service.UserServiceI
}

func NewAuthorization(userService service.UserServiceI) *Authorization {
	return &Authorization{
		userService: userService,
	}
}

// RegisteredOnly rejects requests from Telegram users that have not
// registered yet and refreshes the stored auth date when it moved forward.
func (a *Authorization) RegisteredOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		log := logger.Logger()

		telegramUser, ok := auth.UserFromContext(c)
		if !ok {
			log.Error("telegram user data not found in context")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		user, err := a.userService.GetUserByID(c.Request.Context(), telegramUser.ID)
		if err != nil {
			if errors.Is(err, service.ErrUserNotFound) {
				log.Info("request from unregistered user", zap.Int64("user_id", telegramUser.ID))
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "user is not registered"})
				return
			}
			log.Error("failed to get user data", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			return
		}

		if user.AuthDate.Before(telegramUser.AuthDate) {
			err = a.userService.TouchAuthDate(c.Request.Context(), user.UserID, telegramUser.AuthDate)
			if err != nil {
				log.Warn("failed to update auth date", zap.Error(err), zap.Int64("user_id", user.UserID))
			} else {
				user.AuthDate = telegramUser.AuthDate
			}
		}

		c.Set(userKey, user)
		c.Next()
	}
}

// CurrentUser returns the user loaded by RegisteredOnly.
func CurrentUser(c *gin.Context) (*model.User, bool) {
	v, exists := c.Get(userKey)
	if !exists {
		return nil, false
	}
	user, ok := v.(*model.User)
	return user, ok
}
