package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/okulpanel/rehberlik-api/internal/service"
	appErrors "github.com/okulpanel/rehberlik-api/pkg/errors"
	"github.com/okulpanel/rehberlik-api/pkg/response"
)

// RosterHandler exposes roster management endpoints.
type RosterHandler struct {
	roster *service.RosterService
}

// NewRosterHandler constructs RosterHandler.
func NewRosterHandler(roster *service.RosterService) *RosterHandler {
	return &RosterHandler{roster: roster}
}

// Teachers godoc
// @Summary List roster teachers
// @Tags Roster
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /roster/teachers [get]
func (h *RosterHandler) Teachers(c *gin.Context) {
	teachers, err := h.roster.Teachers(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, teachers, nil)
}

// ClassMap godoc
// @Summary List class display to key mappings
// @Tags Roster
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /roster/class-map [get]
func (h *RosterHandler) ClassMap(c *gin.Context) {
	mappings, err := h.roster.ClassMap(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, mappings, nil)
}

// Import godoc
// @Summary Replace the roster with an imported snapshot
// @Tags Roster
// @Accept json
// @Produce json
// @Param payload body service.ImportRosterRequest true "Roster snapshot"
// @Success 200 {object} response.Envelope
// @Router /roster [put]
func (h *RosterHandler) Import(c *gin.Context) {
	var req service.ImportRosterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	imported, err := h.roster.Import(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"imported": imported}, nil)
}
