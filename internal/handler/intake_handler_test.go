package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okulpanel/rehberlik-api/internal/dto"
	"github.com/okulpanel/rehberlik-api/internal/models"
	"github.com/okulpanel/rehberlik-api/internal/service"
	"github.com/okulpanel/rehberlik-api/pkg/response"
)

type rosterLoaderStub struct {
	roster models.Roster
}

func (s *rosterLoaderStub) Load(ctx context.Context) (models.Roster, error) {
	return s.roster, nil
}

type dispatcherStub struct {
	outcome dto.DispatchOutcome
}

func (s *dispatcherStub) Dispatch(ctx context.Context, messages []string) dto.DispatchOutcome {
	if s.outcome.Channel == "" {
		return dto.DispatchOutcome{Channel: dto.ChannelMessaging, Attempted: len(messages), Succeeded: len(messages)}
	}
	return s.outcome
}

type sheetAppenderStub struct {
	err error
}

func (s *sheetAppenderStub) Append(ctx context.Context, items []dto.ReferralItem, refIDs []string) error {
	return s.err
}

type referralStoreStub struct{}

func (s *referralStoreStub) BulkInsert(ctx context.Context, referrals []models.Referral) error {
	return nil
}

func intakeTestRoster() models.Roster {
	return models.Roster{
		Teachers: []models.RosterTeacher{
			{Name: "Ayşe Yılmaz", NormalizedName: "ayse yilmaz", AllowedClassKey: "4-A"},
		},
		ClassMap: []models.ClassMapping{
			{Display: "4. Sınıf / A Şubesi", Key: "4-A"},
		},
	}
}

func newIntakeTestHandler(messaging service.MessagingDispatcher, sheets service.SheetAppender) *IntakeHandler {
	svc := service.NewIntakeService(
		&rosterLoaderStub{roster: intakeTestRoster()},
		service.NewRosterResolver(false),
		messaging,
		sheets,
		&referralStoreStub{},
		nil,
		nil,
	)
	return NewIntakeHandler(svc, nil)
}

func postJSON(t *testing.T, h gin.HandlerFunc, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/referrals", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	h(c)
	return w
}

func TestIntakeHandlerSubmitSuccess(t *testing.T) {
	handler := newIntakeTestHandler(&dispatcherStub{}, &sheetAppenderStub{})

	payload := dto.ReferralBatchRequest{Items: []dto.ReferralItem{{
		TeacherName:  "Ayşe Yılmaz",
		ClassDisplay: "4. Sınıf / A Şubesi",
		StudentName:  "Ali Can",
		Reason:       "Devamsızlık",
	}}}
	w := postJSON(t, handler.Submit, payload)

	require.Equal(t, http.StatusOK, w.Code)

	var envelope response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.NotNil(t, envelope.Data)
	data := envelope.Data.(map[string]interface{})
	assert.Equal(t, true, data["success"])
	assert.Equal(t, float64(1), data["sent_count"])
}

func TestIntakeHandlerSubmitInvalidJSON(t *testing.T) {
	handler := newIntakeTestHandler(&dispatcherStub{}, &sheetAppenderStub{})

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/referrals", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler.Submit(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestIntakeHandlerSubmitEmptyBatch(t *testing.T) {
	handler := newIntakeTestHandler(&dispatcherStub{}, &sheetAppenderStub{})

	w := postJSON(t, handler.Submit, dto.ReferralBatchRequest{})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestIntakeHandlerSubmitRosterMismatch(t *testing.T) {
	handler := newIntakeTestHandler(&dispatcherStub{}, &sheetAppenderStub{})

	payload := dto.ReferralBatchRequest{Items: []dto.ReferralItem{{
		TeacherName:  "Ayşe Yılmaz",
		ClassDisplay: "5-B",
		StudentName:  "Ali Can",
		Reason:       "Devamsızlık",
	}}}
	w := postJSON(t, handler.Submit, payload)

	require.Equal(t, http.StatusBadRequest, w.Code)

	var envelope response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.NotNil(t, envelope.Error)
	assert.Equal(t, "ROSTER_MISMATCH", envelope.Error.Code)
}

func TestIntakeHandlerSubmitAllChannelsDown(t *testing.T) {
	handler := newIntakeTestHandler(nil, nil)

	payload := dto.ReferralBatchRequest{Items: []dto.ReferralItem{{
		TeacherName:  "Ayşe Yılmaz",
		ClassDisplay: "4. Sınıf / A Şubesi",
		StudentName:  "Ali Can",
		Reason:       "Devamsızlık",
	}}}
	w := postJSON(t, handler.Submit, payload)

	require.Equal(t, http.StatusBadGateway, w.Code)

	var envelope response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	data := envelope.Data.(map[string]interface{})
	assert.Equal(t, false, data["success"])
}
