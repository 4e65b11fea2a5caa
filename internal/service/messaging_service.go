package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/okulpanel/rehberlik-api/internal/dto"
)

// Messenger sends one text message to the configured destination.
type Messenger interface {
	SendMessage(ctx context.Context, text string) error
}

// PacingPolicy throttles the sequential send loop. Interval is the wait
// between two consecutive sends; MaxBatch caps how many messages one batch
// may push to the provider (0 = unlimited).
type PacingPolicy struct {
	Interval time.Duration
	MaxBatch int
}

// DefaultPacingPolicy matches the provider's documented rate limit.
var DefaultPacingPolicy = PacingPolicy{Interval: time.Second, MaxBatch: 30}

// MessagingService sends rendered referral notices one at a time, in input
// order. Ordering and the provider's rate limit both require the loop to be
// sequential; this is the only component that deliberately blocks between
// I/O calls.
type MessagingService struct {
	messenger Messenger
	policy    PacingPolicy
	logger    *zap.Logger
	sleep     func(ctx context.Context, d time.Duration)
}

// NewMessagingService constructs the dispatcher.
func NewMessagingService(messenger Messenger, policy PacingPolicy, logger *zap.Logger) *MessagingService {
	if policy.Interval <= 0 {
		policy.Interval = DefaultPacingPolicy.Interval
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MessagingService{
		messenger: messenger,
		policy:    policy,
		logger:    logger,
		sleep:     sleepCtx,
	}
}

// Dispatch sends every message sequentially, pacing between sends but never
// before the first or after the last. A failed send is recorded for its
// index and the loop moves on; one message never aborts the batch.
func (s *MessagingService) Dispatch(ctx context.Context, messages []string) dto.DispatchOutcome {
	outcome := dto.DispatchOutcome{
		Channel:   dto.ChannelMessaging,
		Attempted: len(messages),
	}

	limit := len(messages)
	if s.policy.MaxBatch > 0 && limit > s.policy.MaxBatch {
		limit = s.policy.MaxBatch
	}

	for i, message := range messages {
		if i >= limit {
			outcome.Failures = append(outcome.Failures, dto.DispatchFailure{
				Index:  i,
				Reason: fmt.Sprintf("skipped: batch exceeds pacing limit of %d messages", s.policy.MaxBatch),
			})
			continue
		}
		if i > 0 {
			s.sleep(ctx, s.policy.Interval)
		}

		if err := s.messenger.SendMessage(ctx, message); err != nil {
			s.logger.Warn("messaging send failed", zap.Int("index", i), zap.Error(err))
			outcome.Failures = append(outcome.Failures, dto.DispatchFailure{Index: i, Reason: err.Error()})
			continue
		}
		outcome.Succeeded++
	}

	return outcome
}

func sleepCtx(ctx context.Context, d time.Duration) {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}
