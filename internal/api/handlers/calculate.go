package handlers

import (
	"context"
	"net/http"

	"solarsmart/internal/analysis"
	"solarsmart/internal/api/models"
	"solarsmart/internal/calculator"
	"solarsmart/internal/data"
	"solarsmart/internal/metrics"
	"solarsmart/internal/model"

	"github.com/gin-gonic/gin"
)

const defaultRankLimit = 10

// SettingsSource yields the settings in effect for a request.
type SettingsSource interface {
	Current(ctx context.Context) (model.Settings, error)
}

// CalculateHandler handles sizing requests
type CalculateHandler struct {
	ref      *data.Provider
	calc     *calculator.Calculator
	settings SettingsSource
	metrics  *metrics.Metrics
}

// NewCalculateHandler creates a new calculate handler
func NewCalculateHandler(ref *data.Provider, calc *calculator.Calculator, settings SettingsSource, m *metrics.Metrics) *CalculateHandler {
	return &CalculateHandler{ref: ref, calc: calc, settings: settings, metrics: m}
}

// Calculate handles POST /api/v1/calculate
func (h *CalculateHandler) Calculate(c *gin.Context) {
	var req models.CalculateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	in, err := req.ToInput()
	if err != nil {
		respondError(c, err)
		return
	}
	settings, err := h.settings.Current(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	b, err := h.calc.Breakdown(in, settings)
	h.metrics.ObserveCalculation(err)
	if err != nil {
		respondError(c, err)
		return
	}
	loc, err := h.ref.Location(in.LocationID)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := models.CalculateResponse{
		Location: models.NewLocationResponse(loc),
		Result:   *b.Result(),
		Settings: settings,
	}
	if c.Query("explain") == "true" {
		resp.Breakdown = b
	}
	c.JSON(http.StatusOK, resp)
}

// Compare handles POST /api/v1/calculate/compare
func (h *CalculateHandler) Compare(c *gin.Context) {
	var req models.CalculateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	in, err := req.ToInput()
	if err != nil {
		respondError(c, err)
		return
	}
	loc, err := h.ref.Location(in.LocationID)
	if err != nil {
		respondError(c, err)
		return
	}
	settings, err := h.settings.Current(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	results, err := analysis.CompareOrientations(h.calc, in, settings)
	if err != nil {
		respondError(c, err)
		return
	}
	out := make([]models.ComparisonResult, len(results))
	for i, r := range results {
		h.metrics.ObserveCalculation(r.Err)
		out[i] = models.ComparisonResult{
			Orientation: orientationResponse(r.Orientation),
			Result:      r.Result,
			Error:       itemError(r.Err),
		}
	}
	c.JSON(http.StatusOK, models.CompareResponse{Location: models.NewLocationResponse(loc), Comparison: out})
}

// Rank handles GET /api/v1/rank
func (h *CalculateHandler) Rank(c *gin.Context) {
	var req models.RankRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondBindError(c, err)
		return
	}
	o := model.OrientationSouth
	if req.Orientation != "" {
		parsed, err := model.ParseOrientation(req.Orientation)
		if err != nil {
			respondError(c, model.NewValidationError("orientation", "%v", err))
			return
		}
		o = parsed
	}
	settings, err := h.settings.Current(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	ranked, err := analysis.RankLocations(h.calc, h.ref.Locations(), req.RoofArea, req.BillAmount, o, settings)
	if err != nil {
		respondError(c, err)
		return
	}

	limit := req.Limit
	if limit <= 0 {
		limit = defaultRankLimit
	}
	if limit > len(ranked) {
		limit = len(ranked)
	}
	ranked = ranked[:limit]

	rankings := make([]models.Ranking, len(ranked))
	for i, r := range ranked {
		rankings[i] = models.Ranking{
			Rank:     i + 1,
			Location: models.NewLocationResponse(r.Location),
			Result:   r.Result,
			Error:    itemError(r.Err),
		}
	}
	c.JSON(http.StatusOK, models.RankResponse{Rankings: rankings})
}

func orientationResponse(o model.Orientation) models.OrientationResponse {
	return models.OrientationResponse{Code: o.String(), Label: o.Label(), Factor: o.Factor()}
}
