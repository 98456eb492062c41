package api

import (
	"net/http"

	"companion_collection/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type bondRoutes struct {
	bs service.BondServiceI
}

func NewBondRoutes(handler *gin.RouterGroup, bs service.BondServiceI) {
	r := &bondRoutes{bs: bs}
	handler.GET("/collection", r.ListCollection)

	h := handler.Group("/partner")
	{
		h.GET("", r.GetPartner)
		h.PUT("", r.SetPartner)
		h.POST("/interact", r.Interact)
	}
}

func (r *bondRoutes) ListCollection(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	adoptions, err := r.bs.ListCollection(c.Request.Context(), user.UserID)
	if err != nil {
		respondError(c, err, "failed to list collection")
		return
	}

	out := make([]*adoptionResponse, len(adoptions))
	for i, a := range adoptions {
		out[i] = newAdoptionResponse(a)
	}

	c.JSON(http.StatusOK, out)
}

func (r *bondRoutes) GetPartner(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	status, err := r.bs.GetPartner(c.Request.Context(), user.UserID)
	if err != nil {
		respondError(c, err, "failed to get partner")
		return
	}

	c.JSON(http.StatusOK, partnerResponse{
		Partner:     newAdoptionResponse(status.Partner),
		CanInteract: status.CanInteract,
		NextReset:   status.NextReset,
	})
}

type SetPartnerRequest struct {
	AdoptionID string `json:"adoption_id" binding:"required"`
}

func (r *bondRoutes) SetPartner(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req SetPartnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	adoptionID, err := uuid.Parse(req.AdoptionID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid adoption_id"})
		return
	}

	adoption, err := r.bs.SetPartner(c.Request.Context(), user.UserID, adoptionID)
	if err != nil {
		respondError(c, err, "failed to set partner")
		return
	}

	c.JSON(http.StatusOK, newAdoptionResponse(adoption))
}

func (r *bondRoutes) Interact(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	interaction, err := r.bs.Interact(c.Request.Context(), user.UserID)
	if err != nil {
		respondError(c, err, "failed to interact with partner")
		return
	}

	c.JSON(http.StatusOK, interactionResponse{
		Partner:  newAdoptionResponse(interaction.Partner),
		Dialogue: interaction.Dialogue,
	})
}
