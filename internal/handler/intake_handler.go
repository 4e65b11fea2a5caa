package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/okulpanel/rehberlik-api/internal/dto"
	"github.com/okulpanel/rehberlik-api/internal/service"
	appErrors "github.com/okulpanel/rehberlik-api/pkg/errors"
	"github.com/okulpanel/rehberlik-api/pkg/response"
)

// IntakeHandler exposes the referral intake endpoint.
type IntakeHandler struct {
	intake  *service.IntakeService
	metrics *service.MetricsService
}

// NewIntakeHandler constructs IntakeHandler.
func NewIntakeHandler(intake *service.IntakeService, metrics *service.MetricsService) *IntakeHandler {
	return &IntakeHandler{intake: intake, metrics: metrics}
}

// Submit godoc
// @Summary Submit a batch of guidance referrals
// @Tags Referrals
// @Accept json
// @Produce json
// @Param payload body dto.ReferralBatchRequest true "Referral batch"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 502 {object} response.Envelope
// @Router /referrals [post]
func (h *IntakeHandler) Submit(c *gin.Context) {
	var req dto.ReferralBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	result, err := h.intake.Submit(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	if h.metrics != nil {
		h.metrics.ObserveBatch(len(req.Items))
		for _, outcome := range result.Outcomes {
			h.metrics.ObserveDispatch(outcome.Channel, outcome.Succeeded, outcome.Attempted-outcome.Succeeded)
		}
	}

	status := http.StatusOK
	if !result.Success {
		status = http.StatusBadGateway
	}
	response.JSON(c, status, result, nil)
}
