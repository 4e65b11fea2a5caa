package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/okulpanel/rehberlik-api/internal/service"
	appErrors "github.com/okulpanel/rehberlik-api/pkg/errors"
	"github.com/okulpanel/rehberlik-api/pkg/response"
)

// DisciplineHandler exposes discipline event endpoints.
type DisciplineHandler struct {
	discipline *service.DisciplineService
}

// NewDisciplineHandler constructs DisciplineHandler.
func NewDisciplineHandler(discipline *service.DisciplineService) *DisciplineHandler {
	return &DisciplineHandler{discipline: discipline}
}

// List godoc
// @Summary List discipline events
// @Tags Discipline
// @Produce json
// @Param student query string false "Search by student name"
// @Param category query string false "Filter by category"
// @Param from query string false "Event date from"
// @Param to query string false "Event date until"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /discipline [get]
func (h *DisciplineHandler) List(c *gin.Context) {
	req := service.DisciplineListRequest{
		Student:   strings.TrimSpace(c.Query("student")),
		Category:  c.Query("category"),
		DateFrom:  queryTime(c, "from"),
		DateTo:    queryTime(c, "to"),
		Page:      queryInt(c, "page", 1),
		PageSize:  queryInt(c, "limit", 20),
		SortOrder: c.Query("order"),
	}

	events, pagination, err := h.discipline.List(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, events, pagination)
}

// Create godoc
// @Summary Record a discipline event
// @Tags Discipline
// @Accept json
// @Produce json
// @Param payload body service.CreateDisciplineRequest true "Discipline payload"
// @Success 201 {object} response.Envelope
// @Router /discipline [post]
func (h *DisciplineHandler) Create(c *gin.Context) {
	var req service.CreateDisciplineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	event, err := h.discipline.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, event)
}

// Update godoc
// @Summary Update a discipline event
// @Tags Discipline
// @Accept json
// @Produce json
// @Param id path string true "Event ID"
// @Param payload body service.UpdateDisciplineRequest true "Discipline payload"
// @Success 200 {object} response.Envelope
// @Router /discipline/{id} [put]
func (h *DisciplineHandler) Update(c *gin.Context) {
	var req service.UpdateDisciplineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	event, err := h.discipline.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, event, nil)
}

// Delete godoc
// @Summary Delete a discipline event
// @Tags Discipline
// @Param id path string true "Event ID"
// @Success 204
// @Router /discipline/{id} [delete]
func (h *DisciplineHandler) Delete(c *gin.Context) {
	if err := h.discipline.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
