package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/okulpanel/rehberlik-api/internal/service"
	appErrors "github.com/okulpanel/rehberlik-api/pkg/errors"
	"github.com/okulpanel/rehberlik-api/pkg/response"
)

// ContactHandler exposes parent contact log endpoints.
type ContactHandler struct {
	contacts *service.ContactService
}

// NewContactHandler constructs ContactHandler.
func NewContactHandler(contacts *service.ContactService) *ContactHandler {
	return &ContactHandler{contacts: contacts}
}

// List godoc
// @Summary List parent contacts
// @Tags Contacts
// @Produce json
// @Param student query string false "Search by student name"
// @Param channel query string false "Filter by channel (phone, face_to_face, message)"
// @Param from query string false "Contact date from"
// @Param to query string false "Contact date until"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /contacts [get]
func (h *ContactHandler) List(c *gin.Context) {
	req := service.ContactListRequest{
		Student:   strings.TrimSpace(c.Query("student")),
		Channel:   c.Query("channel"),
		DateFrom:  queryTime(c, "from"),
		DateTo:    queryTime(c, "to"),
		Page:      queryInt(c, "page", 1),
		PageSize:  queryInt(c, "limit", 20),
		SortOrder: c.Query("order"),
	}

	contacts, pagination, err := h.contacts.List(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, contacts, pagination)
}

// Create godoc
// @Summary Record a parent contact
// @Tags Contacts
// @Accept json
// @Produce json
// @Param payload body service.CreateContactRequest true "Contact payload"
// @Success 201 {object} response.Envelope
// @Router /contacts [post]
func (h *ContactHandler) Create(c *gin.Context) {
	var req service.CreateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	contact, err := h.contacts.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, contact)
}

// Update godoc
// @Summary Update a parent contact
// @Tags Contacts
// @Accept json
// @Produce json
// @Param id path string true "Contact ID"
// @Param payload body service.UpdateContactRequest true "Contact payload"
// @Success 200 {object} response.Envelope
// @Router /contacts/{id} [put]
func (h *ContactHandler) Update(c *gin.Context) {
	var req service.UpdateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	contact, err := h.contacts.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, contact, nil)
}

// Delete godoc
// @Summary Delete a parent contact
// @Tags Contacts
// @Param id path string true "Contact ID"
// @Success 204
// @Router /contacts/{id} [delete]
func (h *ContactHandler) Delete(c *gin.Context) {
	if err := h.contacts.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
