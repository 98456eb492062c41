package api

import (
	"net/http"
	"strconv"

	"companion_collection/internal/service"

	"github.com/gin-gonic/gin"
)

type leaderboardRoutes struct {
	ls service.LeaderboardServiceI
}

func NewLeaderboardRoutes(handler *gin.RouterGroup, ls service.LeaderboardServiceI) {
	r := &leaderboardRoutes{ls: ls}
	h := handler.Group("/leaderboards")
	{
		h.GET("/bond", r.TotalBond)
		h.GET("/companions/:companion_id", r.CompanionBond)
		h.GET("/friends", r.Friends)
	}
}

type pageQuery struct {
	Page int `form:"page,default=1"`
	Size int `form:"size"`
}

func bindPage(c *gin.Context) (pageQuery, bool) {
	var q pageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid page or size"})
		return q, false
	}
	return q, true
}

func (r *leaderboardRoutes) TotalBond(c *gin.Context) {
	q, ok := bindPage(c)
	if !ok {
		return
	}

	page, err := r.ls.TotalBond(c.Request.Context(), q.Page, q.Size)
	if err != nil {
		respondError(c, err, "failed to get leaderboard")
		return
	}

	c.JSON(http.StatusOK, newLeaderboardResponse(page))
}

func (r *leaderboardRoutes) CompanionBond(c *gin.Context) {
	companionID, err := strconv.ParseInt(c.Param("companion_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid companion_id"})
		return
	}

	q, ok := bindPage(c)
	if !ok {
		return
	}

	page, err := r.ls.CompanionBond(c.Request.Context(), companionID, q.Page, q.Size)
	if err != nil {
		respondError(c, err, "failed to get leaderboard")
		return
	}

	c.JSON(http.StatusOK, newLeaderboardResponse(page))
}

func (r *leaderboardRoutes) Friends(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	q, ok := bindPage(c)
	if !ok {
		return
	}

	page, err := r.ls.Friends(c.Request.Context(), user.UserID, q.Page, q.Size)
	if err != nil {
		respondError(c, err, "failed to get leaderboard")
		return
	}

	c.JSON(http.StatusOK, newLeaderboardResponse(page))
}
