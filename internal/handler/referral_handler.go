package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/okulpanel/rehberlik-api/internal/service"
	"github.com/okulpanel/rehberlik-api/pkg/response"
)

// ReferralHandler exposes referral history endpoints.
type ReferralHandler struct {
	referrals *service.ReferralService
}

// NewReferralHandler constructs ReferralHandler.
func NewReferralHandler(referrals *service.ReferralService) *ReferralHandler {
	return &ReferralHandler{referrals: referrals}
}

// List godoc
// @Summary List referral history
// @Tags Referrals
// @Produce json
// @Param teacher query string false "Filter by teacher name"
// @Param classKey query string false "Filter by class key"
// @Param student query string false "Search by student name"
// @Param reason query string false "Filter by reason"
// @Param from query string false "Created from (RFC3339 or YYYY-MM-DD)"
// @Param to query string false "Created until"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /referrals [get]
func (h *ReferralHandler) List(c *gin.Context) {
	req := service.ReferralListRequest{
		TeacherName: strings.TrimSpace(c.Query("teacher")),
		ClassKey:    c.Query("classKey"),
		Student:     strings.TrimSpace(c.Query("student")),
		Reason:      c.Query("reason"),
		DateFrom:    queryTime(c, "from"),
		DateTo:      queryTime(c, "to"),
		Page:        queryInt(c, "page", 1),
		PageSize:    queryInt(c, "limit", 20),
		SortOrder:   c.Query("order"),
	}

	referrals, pagination, err := h.referrals.List(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, referrals, pagination)
}

// Stats godoc
// @Summary Referral statistics
// @Tags Referrals
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /referrals/stats [get]
func (h *ReferralHandler) Stats(c *gin.Context) {
	stats, err := h.referrals.Stats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, stats, nil)
}

// Delete godoc
// @Summary Delete a referral record
// @Tags Referrals
// @Param id path string true "Referral ID"
// @Success 204
// @Router /referrals/{id} [delete]
func (h *ReferralHandler) Delete(c *gin.Context) {
	if err := h.referrals.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
