package api

import (
	"net/http"
	"strconv"

	"companion_collection/internal/middleware"
	"companion_collection/internal/model"
	"companion_collection/internal/service"
	"companion_collection/pkg/auth"
	"companion_collection/pkg/logger"
	"go.uber.org/zap"

	"github.com/gin-gonic/gin"
)

type userRoutes struct {
	us service.UserServiceI
}

func NewUserRoutes(handler *gin.RouterGroup, us service.UserServiceI, a *auth.TelegramAuth, authz *middleware.Authorization) {
	r := &userRoutes{us: us}
	h := handler.Group("/users")
	h.Use(a.TelegramAuthMiddleware())
	h.POST("", r.RegisterUser)

	registered := h.Group("", authz.RegisteredOnly())
	{
		registered.GET("/me", r.GetMe)
		registered.PATCH("/me/display-name", r.Rename)
		registered.GET("/me/avatar", r.GetAvatar)
		registered.GET("/:user_id", r.GetUserByID)
	}
}

type RegisterUserRequest struct {
	DisplayName string `json:"display_name"`
}

func (r *userRoutes) RegisterUser(c *gin.Context) {
	log := logger.Logger()

	var req RegisterUserRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			log.Info("failed to bind request", zap.Error(err))
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
			return
		}
	}

	telegramUser, ok := auth.UserFromContext(c)
	if !ok {
		log.Error("telegram user data not found in context")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	displayName := req.DisplayName
	if displayName == "" {
		displayName = telegramUser.Name()
	}

	u := &model.User{
		UserID:      telegramUser.ID,
		Username:    telegramUser.Username,
		DisplayName: displayName,
		AuthDate:    telegramUser.AuthDate,
	}

	if err := r.us.RegisterUser(c.Request.Context(), u); err != nil {
		respondError(c, err, "failed to register user")
		return
	}

	log.Info("user registered", zap.Int64("user_id", u.UserID))
	c.JSON(http.StatusCreated, newUserResponse(u))
}

func (r *userRoutes) GetMe(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	profile, err := r.us.GetProfile(c.Request.Context(), user.UserID)
	if err != nil {
		respondError(c, err, "failed to get profile")
		return
	}

	c.JSON(http.StatusOK, profileResponse{
		User:           newUserResponse(profile.User),
		Partner:        newAdoptionResponse(profile.Partner),
		CollectionSize: profile.CollectionSize,
		TotalBond:      profile.TotalBond,
		CanRename:      profile.CanRename,
	})
}

type RenameRequest struct {
	DisplayName string `json:"display_name" binding:"required"`
}

func (r *userRoutes) Rename(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req RenameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	if err := r.us.Rename(c.Request.Context(), user.UserID, req.DisplayName); err != nil {
		respondError(c, err, "failed to rename user")
		return
	}

	r.GetMe(c)
}

func (r *userRoutes) GetAvatar(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	avatarFilePath, err := r.us.GetAvatar(c.Request.Context(), user.UserID)
	if err != nil {
		respondError(c, err, "failed to fetch avatar")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"avatar_file_path": avatarFilePath,
	})
}

func (r *userRoutes) GetUserByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("user_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user_id"})
		return
	}

	profile, err := r.us.GetProfile(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "failed to get user")
		return
	}

	c.JSON(http.StatusOK, publicProfileResponse{
		UserID:         profile.User.UserID,
		DisplayName:    profile.User.DisplayName,
		Partner:        newAdoptionResponse(profile.Partner),
		CollectionSize: profile.CollectionSize,
		TotalBond:      profile.TotalBond,
	})
}
