package api

import (
	"net/http"
	"strconv"

	"companion_collection/internal/service"

	"github.com/gin-gonic/gin"
)

type friendRoutes struct {
	fs service.FriendServiceI
}

func NewFriendRoutes(handler *gin.RouterGroup, fs service.FriendServiceI) {
	r := &friendRoutes{fs: fs}
	h := handler.Group("/friends")
	{
		h.GET("", r.ListFriends)
		h.POST("", r.AddFriend)
		h.DELETE("/:user_id", r.RemoveFriend)
	}
}

func (r *friendRoutes) ListFriends(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	friends, err := r.fs.ListFriends(c.Request.Context(), user.UserID)
	if err != nil {
		respondError(c, err, "failed to list friends")
		return
	}

	out := make([]friendResponse, len(friends))
	for i, f := range friends {
		out[i] = friendResponse{
			UserID:      f.UserID,
			DisplayName: f.DisplayName,
			TotalBond:   f.TotalBond,
		}
	}

	c.JSON(http.StatusOK, out)
}

type AddFriendRequest struct {
	UserID int64 `json:"user_id" binding:"required"`
}

func (r *friendRoutes) AddFriend(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req AddFriendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	if err := r.fs.AddFriend(c.Request.Context(), user.UserID, req.UserID); err != nil {
		respondError(c, err, "failed to add friend")
		return
	}

	c.Status(http.StatusNoContent)
}

func (r *friendRoutes) RemoveFriend(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	friendID, err := strconv.ParseInt(c.Param("user_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user_id"})
		return
	}

	if err := r.fs.RemoveFriend(c.Request.Context(), user.UserID, friendID); err != nil {
		respondError(c, err, "failed to remove friend")
		return
	}

	c.Status(http.StatusNoContent)
}
