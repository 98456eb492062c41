package api

import (
	"net/http"

	"companion_collection/internal/service"
	"companion_collection/pkg/logger"
	"go.uber.org/zap"

	"github.com/gin-gonic/gin"
)

type adoptionRoutes struct {
	as service.AdoptionServiceI
}

func NewAdoptionRoutes(handler *gin.RouterGroup, as service.AdoptionServiceI) {
	r := &adoptionRoutes{as: as}
	h := handler.Group("/adoption")
	{
		h.GET("/offer", r.GetOffer)
		h.POST("/roll", r.Roll)
		h.POST("/adopt", r.Adopt)
	}
}

func (r *adoptionRoutes) GetOffer(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	offer, err := r.as.GetOffer(c.Request.Context(), user.UserID)
	if err != nil {
		respondError(c, err, "failed to get offer")
		return
	}

	c.JSON(http.StatusOK, newOfferResponse(offer))
}

func (r *adoptionRoutes) Roll(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	offer, err := r.as.Roll(c.Request.Context(), user.UserID)
	if err != nil {
		respondError(c, err, "failed to roll candidates")
		return
	}

	c.JSON(http.StatusOK, newOfferResponse(offer))
}

type AdoptRequest struct {
	CompanionID int64 `json:"companion_id" binding:"required"`
}

func (r *adoptionRoutes) Adopt(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req AdoptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	adoption, err := r.as.Adopt(c.Request.Context(), user.UserID, req.CompanionID)
	if err != nil {
		respondError(c, err, "failed to adopt companion")
		return
	}

	logger.Logger().Info("companion adopted",
		zap.Int64("user_id", user.UserID),
		zap.Int64("companion_id", req.CompanionID),
		zap.Stringer("adoption_id", adoption.AdoptionID))

	c.JSON(http.StatusCreated, newAdoptionResponse(adoption))
}
