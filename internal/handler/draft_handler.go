package handler

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/okulpanel/rehberlik-api/internal/dto"
	"github.com/okulpanel/rehberlik-api/internal/service"
	appErrors "github.com/okulpanel/rehberlik-api/pkg/errors"
	"github.com/okulpanel/rehberlik-api/pkg/response"
)

// DraftHandler exposes document drafting endpoints.
type DraftHandler struct {
	drafts *service.DraftService
}

// NewDraftHandler constructs DraftHandler.
func NewDraftHandler(drafts *service.DraftService) *DraftHandler {
	return &DraftHandler{drafts: drafts}
}

// Draft godoc
// @Summary Draft a guidance document
// @Tags Drafts
// @Accept json
// @Produce json
// @Param payload body dto.DraftRequest true "Draft request"
// @Success 200 {object} response.Envelope
// @Failure 503 {object} response.Envelope
// @Router /drafts [post]
func (h *DraftHandler) Draft(c *gin.Context) {
	var req dto.DraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	draft, err := h.drafts.Draft(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, draft, nil)
}

// DraftPDF godoc
// @Summary Draft a guidance document and render it as PDF
// @Tags Drafts
// @Accept json
// @Produce application/pdf
// @Param payload body dto.DraftRequest true "Draft request"
// @Success 200 {file} binary
// @Failure 503 {object} response.Envelope
// @Router /drafts/pdf [post]
func (h *DraftHandler) DraftPDF(c *gin.Context) {
	var req dto.DraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	pdf, err := h.drafts.DraftPDF(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	filename := fmt.Sprintf("%s-%s.pdf", strings.ReplaceAll(string(req.Kind), "_", "-"), time.Now().Format("20060102-150405"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", pdf)
}
