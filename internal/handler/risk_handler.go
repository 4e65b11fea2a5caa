package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/okulpanel/rehberlik-api/internal/service"
	appErrors "github.com/okulpanel/rehberlik-api/pkg/errors"
	"github.com/okulpanel/rehberlik-api/pkg/response"
)

// RiskHandler exposes risk tracking endpoints.
type RiskHandler struct {
	risks *service.RiskService
}

// NewRiskHandler constructs RiskHandler.
func NewRiskHandler(risks *service.RiskService) *RiskHandler {
	return &RiskHandler{risks: risks}
}

// List godoc
// @Summary List risk entries
// @Tags Risk
// @Produce json
// @Param student query string false "Search by student name"
// @Param level query string false "Filter by level (low, medium, high)"
// @Param status query string false "Filter by status (open, closed)"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /risks [get]
func (h *RiskHandler) List(c *gin.Context) {
	req := service.RiskListRequest{
		Student:   strings.TrimSpace(c.Query("student")),
		Level:     c.Query("level"),
		Status:    c.Query("status"),
		Page:      queryInt(c, "page", 1),
		PageSize:  queryInt(c, "limit", 20),
		SortOrder: c.Query("order"),
	}

	entries, pagination, err := h.risks.List(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, entries, pagination)
}

// Create godoc
// @Summary Open a risk entry
// @Tags Risk
// @Accept json
// @Produce json
// @Param payload body service.CreateRiskRequest true "Risk payload"
// @Success 201 {object} response.Envelope
// @Router /risks [post]
func (h *RiskHandler) Create(c *gin.Context) {
	var req service.CreateRiskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	entry, err := h.risks.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, entry)
}

// Update godoc
// @Summary Update a risk entry
// @Tags Risk
// @Accept json
// @Produce json
// @Param id path string true "Risk entry ID"
// @Param payload body service.UpdateRiskRequest true "Risk payload"
// @Success 200 {object} response.Envelope
// @Router /risks/{id} [put]
func (h *RiskHandler) Update(c *gin.Context) {
	var req service.UpdateRiskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	entry, err := h.risks.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, entry, nil)
}

// Delete godoc
// @Summary Delete a risk entry
// @Tags Risk
// @Param id path string true "Risk entry ID"
// @Success 204
// @Router /risks/{id} [delete]
func (h *RiskHandler) Delete(c *gin.Context) {
	if err := h.risks.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
