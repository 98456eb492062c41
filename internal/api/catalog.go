package api

import (
	"net/http"
	"strconv"

	"companion_collection/internal/service"

	"github.com/gin-gonic/gin"
)

type catalogRoutes struct {
	cs service.CatalogServiceI
}

func NewCatalogRoutes(handler *gin.RouterGroup, cs service.CatalogServiceI) {
	r := &catalogRoutes{cs: cs}
	h := handler.Group("/companions")
	{
		h.GET("", r.ListCompanions)
		h.GET("/:companion_id", r.GetCompanion)
	}
}

func (r *catalogRoutes) ListCompanions(c *gin.Context) {
	companions, err := r.cs.ListCompanions(c.Request.Context())
	if err != nil {
		respondError(c, err, "failed to list companions")
		return
	}

	out := make([]companionResponse, len(companions))
	for i, companion := range companions {
		out[i] = newCompanionResponse(companion)
	}

	c.JSON(http.StatusOK, out)
}

func (r *catalogRoutes) GetCompanion(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("companion_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid companion_id"})
		return
	}

	companion, err := r.cs.GetCompanion(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "failed to get companion")
		return
	}

	c.JSON(http.StatusOK, newCompanionResponse(companion))
}
