package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/okulpanel/rehberlik-api/internal/service"
	appErrors "github.com/okulpanel/rehberlik-api/pkg/errors"
	"github.com/okulpanel/rehberlik-api/pkg/response"
)

// ReminderHandler exposes follow-up reminder endpoints.
type ReminderHandler struct {
	reminders *service.ReminderService
}

// NewReminderHandler constructs ReminderHandler.
func NewReminderHandler(reminders *service.ReminderService) *ReminderHandler {
	return &ReminderHandler{reminders: reminders}
}

// List godoc
// @Summary List follow-up reminders
// @Tags Reminders
// @Produce json
// @Param student query string false "Search by student name"
// @Param done query bool false "Filter by completion state"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /reminders [get]
func (h *ReminderHandler) List(c *gin.Context) {
	req := service.ReminderListRequest{
		Student:   strings.TrimSpace(c.Query("student")),
		Done:      queryBool(c, "done"),
		Page:      queryInt(c, "page", 1),
		PageSize:  queryInt(c, "limit", 20),
		SortOrder: c.Query("order"),
	}

	reminders, pagination, err := h.reminders.List(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, reminders, pagination)
}

// Due godoc
// @Summary List overdue open reminders
// @Tags Reminders
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /reminders/due [get]
func (h *ReminderHandler) Due(c *gin.Context) {
	reminders, err := h.reminders.Due(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, reminders, nil)
}

// Create godoc
// @Summary Create a follow-up reminder
// @Tags Reminders
// @Accept json
// @Produce json
// @Param payload body service.CreateReminderRequest true "Reminder payload"
// @Success 201 {object} response.Envelope
// @Router /reminders [post]
func (h *ReminderHandler) Create(c *gin.Context) {
	var req service.CreateReminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	reminder, err := h.reminders.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, reminder)
}

// Update godoc
// @Summary Update a follow-up reminder
// @Tags Reminders
// @Accept json
// @Produce json
// @Param id path string true "Reminder ID"
// @Param payload body service.UpdateReminderRequest true "Reminder payload"
// @Success 200 {object} response.Envelope
// @Router /reminders/{id} [put]
func (h *ReminderHandler) Update(c *gin.Context) {
	var req service.UpdateReminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	reminder, err := h.reminders.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, reminder, nil)
}

// Delete godoc
// @Summary Delete a follow-up reminder
// @Tags Reminders
// @Param id path string true "Reminder ID"
// @Success 204
// @Router /reminders/{id} [delete]
func (h *ReminderHandler) Delete(c *gin.Context) {
	if err := h.reminders.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
