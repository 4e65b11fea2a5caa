package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/okulpanel/rehberlik-api/internal/dto"
	"github.com/okulpanel/rehberlik-api/internal/models"
	appErrors "github.com/okulpanel/rehberlik-api/pkg/errors"
)

// MessagingDispatcher is the messaging channel as seen by the orchestrator.
type MessagingDispatcher interface {
	Dispatch(ctx context.Context, messages []string) dto.DispatchOutcome
}

// SheetAppender is the spreadsheet channel as seen by the orchestrator.
type SheetAppender interface {
	Append(ctx context.Context, items []dto.ReferralItem, refIDs []string) error
}

type referralStore interface {
	BulkInsert(ctx context.Context, referrals []models.Referral) error
}

type rosterLoader interface {
	Load(ctx context.Context) (models.Roster, error)
}

// IntakeService accepts referral batches, gates them on roster validation,
// then fans out to the two notification channels and persistence. The three
// downstream legs are independent: none may suppress or roll back another.
// Either dispatcher may be nil when its channel is not configured; that leg
// is then aggregated as unavailable.
type IntakeService struct {
	roster    rosterLoader
	resolver  *RosterResolver
	messaging MessagingDispatcher
	sheets    SheetAppender
	referrals referralStore
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewIntakeService constructs the orchestrator.
func NewIntakeService(
	roster rosterLoader,
	resolver *RosterResolver,
	messaging MessagingDispatcher,
	sheets SheetAppender,
	referrals referralStore,
	validate *validator.Validate,
	logger *zap.Logger,
) *IntakeService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &IntakeService{
		roster:    roster,
		resolver:  resolver,
		messaging: messaging,
		sheets:    sheets,
		referrals: referrals,
		validator: validate,
		logger:    logger,
		now:       time.Now,
	}
}

// Submit processes one batch. Validation failure is the only fatal path and
// happens before any side effect; every downstream failure is folded into
// the structured result.
func (s *IntakeService) Submit(ctx context.Context, req dto.ReferralBatchRequest) (*dto.IntakeResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid referral batch")
	}

	roster, err := s.roster.Load(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load roster")
	}

	for _, item := range req.Items {
		if err := s.resolver.Validate(item.TeacherName, item.ClassDisplay, roster); err != nil {
			return nil, err
		}
	}

	submittedAt := s.now()
	referrals := buildReferrals(req.Items, roster, submittedAt)
	refIDs := make([]string, len(referrals))
	for i := range referrals {
		refIDs[i] = referrals[i].ID
	}

	messages := make([]string, len(req.Items))
	for i, item := range req.Items {
		messages[i] = renderReferralMessage(item, submittedAt)
	}

	messagingOut := s.dispatchMessaging(ctx, messages)
	sheetOut := s.dispatchSheet(ctx, req.Items, refIDs)

	var persistErr error
	if persistErr = s.referrals.BulkInsert(ctx, referrals); persistErr != nil {
		s.logger.Error("referral persistence failed", zap.Error(persistErr))
	}

	result := mergeOutcomes(len(req.Items), messagingOut, sheetOut, persistErr)
	return result, nil
}

func (s *IntakeService) dispatchMessaging(ctx context.Context, messages []string) dto.DispatchOutcome {
	if s.messaging == nil {
		return unavailableOutcome(dto.ChannelMessaging, len(messages))
	}
	return s.messaging.Dispatch(ctx, messages)
}

func (s *IntakeService) dispatchSheet(ctx context.Context, items []dto.ReferralItem, refIDs []string) dto.DispatchOutcome {
	outcome := dto.DispatchOutcome{Channel: dto.ChannelSpreadsheet, Attempted: len(items)}
	if s.sheets == nil {
		return unavailableOutcome(dto.ChannelSpreadsheet, len(items))
	}
	if err := s.sheets.Append(ctx, items, refIDs); err != nil {
		s.logger.Warn("spreadsheet append failed", zap.Error(err))
		// Index -1 marks a failure covering the whole batch.
		outcome.Failures = append(outcome.Failures, dto.DispatchFailure{Index: -1, Reason: err.Error()})
		return outcome
	}
	outcome.Succeeded = len(items)
	return outcome
}

func unavailableOutcome(channel string, attempted int) dto.DispatchOutcome {
	return dto.DispatchOutcome{
		Channel:   channel,
		Attempted: attempted,
		Failures: []dto.DispatchFailure{
			{Index: -1, Reason: fmt.Sprintf("%s channel is not configured", channel)},
		},
	}
}

// buildReferrals maps batch items to persistable records. The class key is
// resolved through the roster mapping when one exists; otherwise the raw
// identifier is stored as-is.
func buildReferrals(items []dto.ReferralItem, roster models.Roster, at time.Time) []models.Referral {
	referrals := make([]models.Referral, len(items))
	for i, item := range items {
		var note *string
		if item.Note != "" {
			n := item.Note
			note = &n
		}
		referrals[i] = models.Referral{
			ID:           uuid.NewString(),
			TeacherName:  item.TeacherName,
			ClassKey:     roster.ClassKeyFor(item.ClassDisplay),
			ClassDisplay: item.ClassDisplay,
			StudentName:  item.StudentName,
			Reason:       item.Reason,
			Note:         note,
			Source:       models.ReferralSourceWeb,
			CreatedAt:    at.UTC(),
		}
	}
	return referrals
}

// renderReferralMessage formats the Telegram notice for one student. The
// dispatcher performs no templating of its own.
func renderReferralMessage(item dto.ReferralItem, at time.Time) string {
	msg := fmt.Sprintf(
		"📢 <b>Yeni Rehberlik Yönlendirmesi</b>\n👤 Öğrenci: %s\n🏫 Sınıf/Şube: %s\n🧑‍🏫 Öğretmen: %s\n📋 Neden: %s",
		item.StudentName, item.ClassDisplay, item.TeacherName, item.Reason,
	)
	if item.Note != "" {
		msg += fmt.Sprintf("\n📝 Not: %s", item.Note)
	}
	msg += fmt.Sprintf("\n🕒 %s", at.Format("02.01.2006 15:04"))
	return msg
}

// mergeOutcomes folds the three independent results into one response.
// Persistence failure only ever adds a warning; the success verdict is
// decided by the two notification channels alone.
func mergeOutcomes(batch int, messaging, spreadsheet dto.DispatchOutcome, persistErr error) *dto.IntakeResult {
	result := &dto.IntakeResult{
		SentCount: messaging.Succeeded,
		Outcomes:  []dto.DispatchOutcome{messaging, spreadsheet},
	}

	msgOK := messaging.FullSuccess()
	sheetOK := spreadsheet.FullSuccess()

	switch {
	case msgOK && sheetOK:
		result.Success = true
		result.Message = fmt.Sprintf("%d referral(s) submitted and delivered to all channels", batch)
	case msgOK || sheetOK || messaging.AnySuccess() || spreadsheet.AnySuccess():
		result.Success = true
		result.Message = fmt.Sprintf("%d referral(s) submitted with degraded delivery", batch)
		result.Warnings = append(result.Warnings, channelWarnings(messaging)...)
		result.Warnings = append(result.Warnings, channelWarnings(spreadsheet)...)
	default:
		result.Success = false
		result.Message = "referral notifications failed on every channel"
		result.Errors = append(result.Errors, failureReasons(messaging)...)
		result.Errors = append(result.Errors, failureReasons(spreadsheet)...)
	}

	if persistErr != nil {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("referral records could not be persisted: %v", persistErr))
	}

	return result
}

func channelWarnings(outcome dto.DispatchOutcome) []string {
	if outcome.FullSuccess() {
		return nil
	}
	warnings := make([]string, 0, len(outcome.Failures))
	for _, failure := range outcome.Failures {
		warnings = append(warnings, fmt.Sprintf("%s: %s", outcome.Channel, failure.Reason))
	}
	if len(warnings) == 0 {
		warnings = append(warnings, fmt.Sprintf("%s: delivery incomplete (%d/%d)", outcome.Channel, outcome.Succeeded, outcome.Attempted))
	}
	return warnings
}

func failureReasons(outcome dto.DispatchOutcome) []string {
	reasons := make([]string, 0, len(outcome.Failures))
	for _, failure := range outcome.Failures {
		reasons = append(reasons, fmt.Sprintf("%s: %s", outcome.Channel, failure.Reason))
	}
	return reasons
}
