package dto

// ReferralItem is one (teacher, class, student, reason, note) tuple of a
// batch submission. It is never persisted as-is.
type ReferralItem struct {
	TeacherName  string `json:"teacher_name" validate:"required"`
	ClassDisplay string `json:"class_display" validate:"required"`
	StudentName  string `json:"student_name" validate:"required"`
	Reason       string `json:"reason" validate:"required"`
	Note         string `json:"note"`
}

// ReferralBatchRequest is the intake payload.
type ReferralBatchRequest struct {
	Items []ReferralItem `json:"items" validate:"required,min=1,dive"`
}

// ChannelMessaging and ChannelSpreadsheet name the two notification targets.
const (
	ChannelMessaging   = "messaging"
	ChannelSpreadsheet = "spreadsheet"
)

// DispatchFailure records one failed send within a channel.
type DispatchFailure struct {
	Index  int    `json:"index"`
	Reason string `json:"reason"`
}

// DispatchOutcome is the per-channel result of one batch dispatch.
type DispatchOutcome struct {
	Channel   string            `json:"channel"`
	Attempted int               `json:"attempted"`
	Succeeded int               `json:"succeeded"`
	Failures  []DispatchFailure `json:"failures,omitempty"`
}

// FullSuccess reports whether every attempted send landed.
func (o DispatchOutcome) FullSuccess() bool {
	return o.Attempted > 0 && o.Succeeded == o.Attempted
}

// AnySuccess reports whether at least one send landed.
func (o DispatchOutcome) AnySuccess() bool {
	return o.Succeeded > 0
}

// IntakeResult is the aggregate the orchestrator always returns. Success
// and the warning/error lists are derived strictly from the three channel
// outcomes; no outcome suppresses another.
type IntakeResult struct {
	Success   bool              `json:"success"`
	Message   string            `json:"message"`
	SentCount int               `json:"sent_count"`
	Warnings  []string          `json:"warnings,omitempty"`
	Errors    []string          `json:"errors,omitempty"`
	Outcomes  []DispatchOutcome `json:"outcomes"`
}
