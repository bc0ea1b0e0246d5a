package handlers

import (
	"fmt"
	"net/http"
	"time"

	"solarsmart/internal/api/models"
	"solarsmart/internal/calculator"
	"solarsmart/internal/data"
	"solarsmart/internal/report"

	"github.com/gin-gonic/gin"
)

// ReportHandler renders customer proposals
type ReportHandler struct {
	ref      *data.Provider
	calc     *calculator.Calculator
	settings SettingsSource
	now      func() time.Time
}

func NewReportHandler(ref *data.Provider, calc *calculator.Calculator, settings SettingsSource) *ReportHandler {
	return &ReportHandler{ref: ref, calc: calc, settings: settings, now: time.Now}
}

// Proposal handles POST /api/v1/report
func (h *ReportHandler) Proposal(c *gin.Context) {
	var req models.ReportRequest
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
	b, err := h.calc.Breakdown(in, settings)
	if err != nil {
		respondError(c, err)
		return
	}

	now := h.now()
	pdf, err := report.RenderProposal(report.Proposal{
		CustomerName: req.CustomerName,
		Location:     loc,
		Input:        in,
		Settings:     settings,
		Result:       b.Result(),
		Breakdown:    b,
		GeneratedAt:  now,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	name := fmt.Sprintf("teklif-%s-%s.pdf", loc.Slug, now.Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	c.Data(http.StatusOK, "application/pdf", pdf)
}
