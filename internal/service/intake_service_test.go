package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okulpanel/rehberlik-api/internal/dto"
	"github.com/okulpanel/rehberlik-api/internal/models"
	appErrors "github.com/okulpanel/rehberlik-api/pkg/errors"
)

type mockRosterLoader struct {
	roster models.Roster
	err    error
	loads  int
}

func (m *mockRosterLoader) Load(ctx context.Context) (models.Roster, error) {
	m.loads++
	return m.roster, m.err
}

type mockDispatcher struct {
	outcome  dto.DispatchOutcome
	received []string
	calls    int
}

func (m *mockDispatcher) Dispatch(ctx context.Context, messages []string) dto.DispatchOutcome {
	m.calls++
	m.received = messages
	out := m.outcome
	if out.Channel == "" {
		out = dto.DispatchOutcome{Channel: dto.ChannelMessaging, Attempted: len(messages), Succeeded: len(messages)}
	}
	return out
}

type mockSheetAppender struct {
	err    error
	calls  int
	items  []dto.ReferralItem
	refIDs []string
}

func (m *mockSheetAppender) Append(ctx context.Context, items []dto.ReferralItem, refIDs []string) error {
	m.calls++
	m.items = items
	m.refIDs = refIDs
	return m.err
}

type mockReferralStore struct {
	err      error
	calls    int
	inserted []models.Referral
}

func (m *mockReferralStore) BulkInsert(ctx context.Context, referrals []models.Referral) error {
	m.calls++
	m.inserted = referrals
	return m.err
}

func batchOf(items ...dto.ReferralItem) dto.ReferralBatchRequest {
	return dto.ReferralBatchRequest{Items: items}
}

func validItem() dto.ReferralItem {
	return dto.ReferralItem{
		TeacherName:  "Ayşe Yılmaz",
		ClassDisplay: "4. Sınıf / A Şubesi",
		StudentName:  "Ali Can",
		Reason:       "Devamsızlık",
	}
}

func newTestIntake(roster *mockRosterLoader, messaging MessagingDispatcher, sheets SheetAppender, store *mockReferralStore) *IntakeService {
	return NewIntakeService(roster, NewRosterResolver(false), messaging, sheets, store, nil, nil)
}

func TestIntakeSubmitFullSuccess(t *testing.T) {
	loader := &mockRosterLoader{roster: testRoster()}
	messaging := &mockDispatcher{}
	sheets := &mockSheetAppender{}
	store := &mockReferralStore{}
	svc := newTestIntake(loader, messaging, sheets, store)

	result, err := svc.Submit(context.Background(), batchOf(validItem()))
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Equal(t, 1, result.SentCount)
	assert.Empty(t, result.Warnings)
	assert.Empty(t, result.Errors)
	assert.Equal(t, 1, messaging.calls)
	assert.Equal(t, 1, sheets.calls)
	assert.Equal(t, 1, store.calls)
}

func TestIntakeSubmitRendersTurkishNotice(t *testing.T) {
	loader := &mockRosterLoader{roster: testRoster()}
	messaging := &mockDispatcher{}
	svc := newTestIntake(loader, messaging, &mockSheetAppender{}, &mockReferralStore{})

	item := validItem()
	item.Note = "velisi arandı"
	_, err := svc.Submit(context.Background(), batchOf(item))
	require.NoError(t, err)

	require.Len(t, messaging.received, 1)
	msg := messaging.received[0]
	assert.Contains(t, msg, "Yeni Rehberlik Yönlendirmesi")
	assert.Contains(t, msg, "Ali Can")
	assert.Contains(t, msg, "4. Sınıf / A Şubesi")
	assert.Contains(t, msg, "Ayşe Yılmaz")
	assert.Contains(t, msg, "Devamsızlık")
	assert.Contains(t, msg, "velisi arandı")
}

func TestIntakeSubmitInvalidBatchHasNoSideEffects(t *testing.T) {
	loader := &mockRosterLoader{roster: testRoster()}
	messaging := &mockDispatcher{}
	sheets := &mockSheetAppender{}
	store := &mockReferralStore{}
	svc := newTestIntake(loader, messaging, sheets, store)

	_, err := svc.Submit(context.Background(), dto.ReferralBatchRequest{})
	require.Error(t, err)

	assert.Zero(t, messaging.calls)
	assert.Zero(t, sheets.calls)
	assert.Zero(t, store.calls)
}

func TestIntakeSubmitRosterMismatchHasNoSideEffects(t *testing.T) {
	loader := &mockRosterLoader{roster: testRoster()}
	messaging := &mockDispatcher{}
	sheets := &mockSheetAppender{}
	store := &mockReferralStore{}
	svc := newTestIntake(loader, messaging, sheets, store)

	item := validItem()
	item.ClassDisplay = "5. Sınıf / B Şubesi"
	_, err := svc.Submit(context.Background(), batchOf(item))
	require.Error(t, err)

	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrRosterMismatch.Code, appErr.Code)
	assert.Zero(t, messaging.calls)
	assert.Zero(t, sheets.calls)
	assert.Zero(t, store.calls)
}

func TestIntakeSubmitPersistsResolvedClassKey(t *testing.T) {
	loader := &mockRosterLoader{roster: testRoster()}
	store := &mockReferralStore{}
	svc := newTestIntake(loader, &mockDispatcher{}, &mockSheetAppender{}, store)

	_, err := svc.Submit(context.Background(), batchOf(validItem()))
	require.NoError(t, err)

	require.Len(t, store.inserted, 1)
	rec := store.inserted[0]
	assert.Equal(t, "4-A", rec.ClassKey)
	assert.Equal(t, "4. Sınıf / A Şubesi", rec.ClassDisplay)
	assert.NotEmpty(t, rec.ID)
	assert.Equal(t, models.ReferralSourceWeb, rec.Source)
}

func TestIntakeSubmitSheetFailureDegrades(t *testing.T) {
	loader := &mockRosterLoader{roster: testRoster()}
	sheets := &mockSheetAppender{err: errors.New("quota exceeded")}
	svc := newTestIntake(loader, &mockDispatcher{}, sheets, &mockReferralStore{})

	result, err := svc.Submit(context.Background(), batchOf(validItem()))
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Contains(t, result.Message, "degraded")
	require.NotEmpty(t, result.Warnings)
	assert.Contains(t, result.Warnings[0], "quota exceeded")
}

func TestIntakeSubmitAllChannelsFail(t *testing.T) {
	loader := &mockRosterLoader{roster: testRoster()}
	messaging := &mockDispatcher{outcome: dto.DispatchOutcome{
		Channel:   dto.ChannelMessaging,
		Attempted: 1,
		Failures:  []dto.DispatchFailure{{Index: 0, Reason: "telegram down"}},
	}}
	sheets := &mockSheetAppender{err: errors.New("sheets down")}
	svc := newTestIntake(loader, messaging, sheets, &mockReferralStore{})

	result, err := svc.Submit(context.Background(), batchOf(validItem()))
	require.NoError(t, err)

	assert.False(t, result.Success)
	assert.Len(t, result.Errors, 2)
}

func TestIntakeSubmitPersistenceFailureIsWarningOnly(t *testing.T) {
	loader := &mockRosterLoader{roster: testRoster()}
	store := &mockReferralStore{err: errors.New("db gone")}
	svc := newTestIntake(loader, &mockDispatcher{}, &mockSheetAppender{}, store)

	result, err := svc.Submit(context.Background(), batchOf(validItem()))
	require.NoError(t, err)

	assert.True(t, result.Success)
	require.NotEmpty(t, result.Warnings)
	assert.Contains(t, result.Warnings[0], "could not be persisted")
}

func TestIntakeSubmitUnconfiguredChannels(t *testing.T) {
	loader := &mockRosterLoader{roster: testRoster()}
	svc := NewIntakeService(loader, NewRosterResolver(false), nil, nil, &mockReferralStore{}, nil, nil)

	result, err := svc.Submit(context.Background(), batchOf(validItem()))
	require.NoError(t, err)

	assert.False(t, result.Success)
	require.Len(t, result.Errors, 2)
	assert.Contains(t, result.Errors[0], "not configured")
}

func TestIntakeSubmitEmptyRosterPermissive(t *testing.T) {
	loader := &mockRosterLoader{}
	messaging := &mockDispatcher{}
	svc := newTestIntake(loader, messaging, &mockSheetAppender{}, &mockReferralStore{})

	result, err := svc.Submit(context.Background(), batchOf(validItem()))
	require.NoError(t, err)
	assert.True(t, result.Success)
}

func TestMergeOutcomesQuadrants(t *testing.T) {
	ok := dto.DispatchOutcome{Channel: dto.ChannelMessaging, Attempted: 2, Succeeded: 2}
	sheetOK := dto.DispatchOutcome{Channel: dto.ChannelSpreadsheet, Attempted: 2, Succeeded: 2}
	failed := dto.DispatchOutcome{Channel: dto.ChannelMessaging, Attempted: 2,
		Failures: []dto.DispatchFailure{{Index: 0, Reason: "down"}, {Index: 1, Reason: "down"}}}
	sheetFailed := dto.DispatchOutcome{Channel: dto.ChannelSpreadsheet, Attempted: 2,
		Failures: []dto.DispatchFailure{{Index: -1, Reason: "down"}}}

	both := mergeOutcomes(2, ok, sheetOK, nil)
	assert.True(t, both.Success)
	assert.Empty(t, both.Warnings)

	msgOnly := mergeOutcomes(2, ok, sheetFailed, nil)
	assert.True(t, msgOnly.Success)
	assert.NotEmpty(t, msgOnly.Warnings)

	sheetOnly := mergeOutcomes(2, failed, sheetOK, nil)
	assert.True(t, sheetOnly.Success)
	assert.NotEmpty(t, sheetOnly.Warnings)

	neither := mergeOutcomes(2, failed, sheetFailed, nil)
	assert.False(t, neither.Success)
	assert.NotEmpty(t, neither.Errors)
}
