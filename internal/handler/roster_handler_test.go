package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okulpanel/rehberlik-api/internal/models"
	"github.com/okulpanel/rehberlik-api/internal/service"
	"github.com/okulpanel/rehberlik-api/pkg/response"
)

type rosterRepoStub struct {
	teachers []models.RosterTeacher
	mappings []models.ClassMapping
	replaced bool
}

func (s *rosterRepoStub) ListTeachers(ctx context.Context) ([]models.RosterTeacher, error) {
	return s.teachers, nil
}

func (s *rosterRepoStub) ClassMap(ctx context.Context) ([]models.ClassMapping, error) {
	return s.mappings, nil
}

func (s *rosterRepoStub) ReplaceAll(ctx context.Context, teachers []models.RosterTeacher, mappings []models.ClassMapping) error {
	s.teachers = teachers
	s.mappings = mappings
	s.replaced = true
	return nil
}

func TestRosterHandlerTeachers(t *testing.T) {
	gin.SetMode(gin.TestMode)
	repo := &rosterRepoStub{teachers: []models.RosterTeacher{
		{ID: "t1", Name: "Ayşe Yılmaz", AllowedClassKey: "4-A"},
	}}
	handler := NewRosterHandler(service.NewRosterService(repo, nil, time.Minute, nil, nil))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/roster/teachers", nil)
	c.Request = req

	handler.Teachers(c)
	require.Equal(t, http.StatusOK, w.Code)

	var envelope response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	teachers := envelope.Data.([]interface{})
	assert.Len(t, teachers, 1)
}

func TestRosterHandlerImport(t *testing.T) {
	gin.SetMode(gin.TestMode)
	repo := &rosterRepoStub{}
	handler := NewRosterHandler(service.NewRosterService(repo, nil, time.Minute, nil, nil))

	payload := service.ImportRosterRequest{
		Teachers: []service.RosterImportTeacher{{Name: "Ayşe Yılmaz", ClassKey: "4-A"}},
		ClassMap: []service.RosterImportMapping{{Display: "4. Sınıf / A Şubesi", Key: "4-A"}},
	}
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPut, "/roster", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler.Import(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, repo.replaced)
}

func TestRosterHandlerImportEmptyPayload(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewRosterHandler(service.NewRosterService(&rosterRepoStub{}, nil, time.Minute, nil, nil))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPut, "/roster", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler.Import(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
}
