package handlers

import (
	"net/http"

	"solarsmart/internal/api/models"
	"solarsmart/internal/data"
	"solarsmart/internal/model"

	"github.com/gin-gonic/gin"
)

// LocationHandler serves the reference data the wizard's first steps need
type LocationHandler struct {
	ref *data.Provider
}

func NewLocationHandler(ref *data.Provider) *LocationHandler {
	return &LocationHandler{ref: ref}
}

// ListLocations handles GET /api/v1/locations
func (h *LocationHandler) ListLocations(c *gin.Context) {
	locs := h.ref.Locations()
	out := make([]models.LocationResponse, len(locs))
	for i, l := range locs {
		out[i] = models.NewLocationResponse(l)
	}
	c.JSON(http.StatusOK, models.LocationsResponse{Locations: out})
}

// GetLocation handles GET /api/v1/locations/:slug
func (h *LocationHandler) GetLocation(c *gin.Context) {
	loc, err := h.ref.LocationBySlug(c.Param("slug"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.NewLocationResponse(loc))
}

// ListOrientations handles GET /api/v1/orientations
func (h *LocationHandler) ListOrientations(c *gin.Context) {
	all := model.Orientations()
	out := make([]models.OrientationResponse, len(all))
	for i, o := range all {
		out[i] = orientationResponse(o)
	}
	c.JSON(http.StatusOK, models.OrientationsResponse{Orientations: out})
}
