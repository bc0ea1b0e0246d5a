package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"solarsmart/internal/api/models"
	"solarsmart/internal/leads"
	"solarsmart/internal/model"
	"solarsmart/internal/report"

	"github.com/gin-gonic/gin"
)

// LeadHandler handles lead capture and the admin lead views
type LeadHandler struct {
	service *leads.Service
	now     func() time.Time
}

func NewLeadHandler(service *leads.Service) *LeadHandler {
	return &LeadHandler{service: service, now: time.Now}
}

// CreateLead handles POST /api/v1/leads
func (h *LeadHandler) CreateLead(c *gin.Context) {
	var req models.CreateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	in, err := req.Input.ToInput()
	if err != nil {
		respondError(c, err)
		return
	}

	lead, err := h.service.Create(c.Request.Context(), leads.Contact{
		FullName: req.FullName,
		Phone:    req.Phone,
		Email:    req.Email,
		District: req.District,
	}, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, lead)
}

// ListLeads handles GET /api/v1/admin/leads
func (h *LeadHandler) ListLeads(c *gin.Context) {
	filter, ok := h.bindFilter(c)
	if !ok {
		return
	}
	list, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	if list == nil {
		list = []model.Lead{}
	}
	c.JSON(http.StatusOK, models.LeadsResponse{Leads: list, Count: len(list)})
}

// GetLead handles GET /api/v1/admin/leads/:id
func (h *LeadHandler) GetLead(c *gin.Context) {
	lead, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, lead)
}

// UpdateStatus handles PATCH /api/v1/admin/leads/:id/status
func (h *LeadHandler) UpdateStatus(c *gin.Context) {
	var req models.UpdateLeadStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	status, err := model.ParseLeadStatus(req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	lead, err := h.service.UpdateStatus(c.Request.Context(), c.Param("id"), status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, lead)
}

// ExportCSV handles GET /api/v1/admin/leads/export
func (h *LeadHandler) ExportCSV(c *gin.Context) {
	filter, ok := h.bindFilter(c)
	if !ok {
		return
	}
	list, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := report.WriteLeadsCSV(&buf, list); err != nil {
		respondError(c, err)
		return
	}
	name := fmt.Sprintf("leads-%s.csv", h.now().Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

func (h *LeadHandler) bindFilter(c *gin.Context) (model.LeadFilter, bool) {
	var req models.ListLeadsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondBindError(c, err)
		return model.LeadFilter{}, false
	}
	filter := model.LeadFilter{Limit: req.Limit}
	if req.Status != "" {
		status, err := model.ParseLeadStatus(req.Status)
		if err != nil {
			respondError(c, err)
			return model.LeadFilter{}, false
		}
		filter.Status = status
	}
	return filter, true
}
