package service

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okulpanel/rehberlik-api/internal/dto"
	"github.com/okulpanel/rehberlik-api/internal/provider"
)

type mockSheetClient struct {
	headerRow    []string
	readErr      error
	appendErr    error
	createErr    error
	created      []string
	appendedTo   []string
	appendedRows [][][]string
}

func (m *mockSheetClient) ReadRange(ctx context.Context, rangeA1 string) ([][]string, error) {
	if m.readErr != nil {
		return nil, m.readErr
	}
	if m.headerRow == nil {
		return nil, nil
	}
	return [][]string{m.headerRow}, nil
}

func (m *mockSheetClient) Append(ctx context.Context, rangeA1 string, rows [][]string) error {
	if m.appendErr != nil {
		return m.appendErr
	}
	m.appendedTo = append(m.appendedTo, rangeA1)
	m.appendedRows = append(m.appendedRows, rows)
	return nil
}

func (m *mockSheetClient) CreateSheet(ctx context.Context, title string) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.created = append(m.created, title)
	return nil
}

func fixedClock() func() time.Time {
	at := time.Date(2026, 3, 9, 14, 30, 0, 0, time.UTC)
	return func() time.Time { return at }
}

func sampleItems() []dto.ReferralItem {
	return []dto.ReferralItem{
		{TeacherName: "Ayşe Yılmaz", ClassDisplay: "4-A Şubesi", StudentName: "Ali Can", Reason: "Devamsızlık"},
		{TeacherName: "Ayşe Yılmaz", ClassDisplay: "4-A Şubesi", StudentName: "Ece Su", Reason: "Davranış", Note: "tekrarlayan"},
	}
}

func TestSheetAppendWritesHeaderOnEmptySheet(t *testing.T) {
	client := &mockSheetClient{}
	svc := NewSheetService(client, "Yönlendirmeler", nil)
	svc.now = fixedClock()

	err := svc.Append(context.Background(), sampleItems(), []string{"id-1", "id-2"})
	require.NoError(t, err)

	require.Len(t, client.appendedRows, 2)
	assert.Equal(t, "Yönlendirmeler!A1:G1", client.appendedTo[0])
	assert.Equal(t, sheetHeader, client.appendedRows[0][0])
	assert.Equal(t, "Yönlendirmeler!A:G", client.appendedTo[1])
}

func TestSheetAppendSkipsHeaderWhenPresent(t *testing.T) {
	client := &mockSheetClient{headerRow: append([]string(nil), sheetHeader...)}
	svc := NewSheetService(client, "Yönlendirmeler", nil)
	svc.now = fixedClock()

	err := svc.Append(context.Background(), sampleItems(), []string{"id-1", "id-2"})
	require.NoError(t, err)

	// Only the data append, no header rewrite.
	require.Len(t, client.appendedTo, 1)
	assert.Equal(t, "Yönlendirmeler!A:G", client.appendedTo[0])
}

func TestSheetAppendCreatesMissingSheet(t *testing.T) {
	client := &mockSheetClient{
		readErr: &provider.ProviderError{StatusCode: http.StatusBadRequest, Message: "Unable to parse range"},
	}
	svc := NewSheetService(client, "Yönlendirmeler", nil)
	svc.now = fixedClock()

	err := svc.Append(context.Background(), sampleItems(), []string{"id-1", "id-2"})
	require.NoError(t, err)

	assert.Equal(t, []string{"Yönlendirmeler"}, client.created)
	require.Len(t, client.appendedRows, 2)
	assert.Equal(t, sheetHeader, client.appendedRows[0][0])
}

func TestSheetAppendRowShape(t *testing.T) {
	client := &mockSheetClient{headerRow: append([]string(nil), sheetHeader...)}
	svc := NewSheetService(client, "Yönlendirmeler", nil)
	svc.now = fixedClock()

	err := svc.Append(context.Background(), sampleItems(), []string{"id-1", "id-2"})
	require.NoError(t, err)

	rows := client.appendedRows[0]
	require.Len(t, rows, 2)

	// Shared timestamp, class suffix stripped, note and id in the last cells.
	assert.Equal(t, []string{"09.03.2026 14:30", "Ayşe Yılmaz", "4-A", "Ali Can", "Devamsızlık", "", "id-1"}, rows[0])
	assert.Equal(t, []string{"09.03.2026 14:30", "Ayşe Yılmaz", "4-A", "Ece Su", "Davranış", "tekrarlayan", "id-2"}, rows[1])
	assert.Equal(t, rows[0][0], rows[1][0])
}

func TestSheetAppendPropagatesAppendFailure(t *testing.T) {
	client := &mockSheetClient{
		headerRow: append([]string(nil), sheetHeader...),
		appendErr: errors.New("quota exceeded"),
	}
	svc := NewSheetService(client, "Yönlendirmeler", nil)

	err := svc.Append(context.Background(), sampleItems(), []string{"id-1", "id-2"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quota exceeded")
}

func TestSheetAppendEmptyBatchNoop(t *testing.T) {
	client := &mockSheetClient{}
	svc := NewSheetService(client, "Yönlendirmeler", nil)

	err := svc.Append(context.Background(), nil, nil)
	require.NoError(t, err)
	assert.Empty(t, client.appendedTo)
}
