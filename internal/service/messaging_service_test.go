package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/okulpanel/rehberlik-api/internal/dto"
)

type mockMessenger struct {
	sent    []string
	failOn  map[int]error
	callIdx int
}

func (m *mockMessenger) SendMessage(ctx context.Context, text string) error {
	idx := m.callIdx
	m.callIdx++
	if err, ok := m.failOn[idx]; ok {
		return err
	}
	m.sent = append(m.sent, text)
	return nil
}

func newTestMessagingService(messenger Messenger, policy PacingPolicy) (*MessagingService, *[]time.Duration) {
	svc := NewMessagingService(messenger, policy, nil)
	sleeps := &[]time.Duration{}
	svc.sleep = func(ctx context.Context, d time.Duration) {
		*sleeps = append(*sleeps, d)
	}
	return svc, sleeps
}

func TestMessagingDispatchSendsInOrder(t *testing.T) {
	messenger := &mockMessenger{}
	svc, _ := newTestMessagingService(messenger, DefaultPacingPolicy)

	outcome := svc.Dispatch(context.Background(), []string{"a", "b", "c"})

	assert.Equal(t, dto.ChannelMessaging, outcome.Channel)
	assert.Equal(t, 3, outcome.Attempted)
	assert.Equal(t, 3, outcome.Succeeded)
	assert.Empty(t, outcome.Failures)
	assert.Equal(t, []string{"a", "b", "c"}, messenger.sent)
}

func TestMessagingDispatchPacesBetweenSendsOnly(t *testing.T) {
	messenger := &mockMessenger{}
	policy := PacingPolicy{Interval: 250 * time.Millisecond, MaxBatch: 30}
	svc, sleeps := newTestMessagingService(messenger, policy)

	svc.Dispatch(context.Background(), []string{"a", "b", "c", "d"})

	// N messages pause N-1 times, never before the first send.
	assert.Len(t, *sleeps, 3)
	for _, d := range *sleeps {
		assert.Equal(t, 250*time.Millisecond, d)
	}
}

func TestMessagingDispatchSingleMessageNoPause(t *testing.T) {
	messenger := &mockMessenger{}
	svc, sleeps := newTestMessagingService(messenger, DefaultPacingPolicy)

	svc.Dispatch(context.Background(), []string{"only"})

	assert.Empty(t, *sleeps)
}

func TestMessagingDispatchFailureDoesNotAbortBatch(t *testing.T) {
	messenger := &mockMessenger{failOn: map[int]error{1: errors.New("telegram: 429")}}
	svc, _ := newTestMessagingService(messenger, DefaultPacingPolicy)

	outcome := svc.Dispatch(context.Background(), []string{"a", "b", "c"})

	assert.Equal(t, 3, outcome.Attempted)
	assert.Equal(t, 2, outcome.Succeeded)
	assert.Equal(t, []string{"a", "c"}, messenger.sent)
	assert.Len(t, outcome.Failures, 1)
	assert.Equal(t, 1, outcome.Failures[0].Index)
	assert.Contains(t, outcome.Failures[0].Reason, "429")
}

func TestMessagingDispatchCapsBatch(t *testing.T) {
	messenger := &mockMessenger{}
	policy := PacingPolicy{Interval: time.Second, MaxBatch: 2}
	svc, _ := newTestMessagingService(messenger, policy)

	outcome := svc.Dispatch(context.Background(), []string{"a", "b", "c"})

	assert.Equal(t, 2, outcome.Succeeded)
	assert.Len(t, outcome.Failures, 1)
	assert.Equal(t, 2, outcome.Failures[0].Index)
	assert.Contains(t, outcome.Failures[0].Reason, "pacing limit")
}
