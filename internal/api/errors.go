package api

import (
	"errors"
	"net/http"

	"companion_collection/internal/middleware"
	"companion_collection/internal/model"
	"companion_collection/internal/service"
	"companion_collection/pkg/logger"
	"go.uber.org/zap"

	"github.com/gin-gonic/gin"
)

func statusOf(err error) int {
	switch {
	case errors.Is(err, service.ErrInvalidArgument),
		errors.Is(err, service.ErrInvalidDisplayName),
		errors.Is(err, service.ErrSelfFriend):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrCompanionNotFound),
		errors.Is(err, service.ErrAdoptionNotFound),
		errors.Is(err, service.ErrNoAvatar):
		return http.StatusNotFound
	case errors.Is(err, service.ErrActionUnavailable),
		errors.Is(err, service.ErrAlreadyRegistered),
		errors.Is(err, service.ErrNotInOffer),
		errors.Is(err, service.ErrCollectionFull),
		errors.Is(err, service.ErrCollectionComplete),
		errors.Is(err, service.ErrNoPartner):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes the error body for err. Unexpected errors are logged
// and reported to the client as msg.
func respondError(c *gin.Context, err error, msg string) {
	status := statusOf(err)
	if status == http.StatusInternalServerError {
		logger.Logger().Error(msg, zap.Error(err), zap.String("path", c.FullPath()))
		c.JSON(status, gin.H{"error": msg})
		return
	}

	c.JSON(status, gin.H{"error": err.Error()})
}

func currentUser(c *gin.Context) (*model.User, bool) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		logger.Logger().Error("user not found in context")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return nil, false
	}
	return user, true
}
