package models

import "time"

// ReferralSourceWeb marks referrals created through the web intake form.
const ReferralSourceWeb = "web"

// Referral is a persisted guidance-office referral record. One row is
// created per referred student when a batch is submitted; rows are only
// removed by explicit deletion from the history screen.
type Referral struct {
	ID           string    `db:"id" json:"id"`
	TeacherName  string    `db:"teacher_name" json:"teacher_name"`
	ClassKey     string    `db:"class_key" json:"class_key"`
	ClassDisplay string    `db:"class_display" json:"class_display"`
	StudentName  string    `db:"student_name" json:"student_name"`
	Reason       string    `db:"reason" json:"reason"`
	Note         *string   `db:"note" json:"note,omitempty"`
	Source       string    `db:"source" json:"source"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// ReferralFilter captures filtering options for the referral history list.
type ReferralFilter struct {
	TeacherName string
	ClassKey    string
	Student     string // matched as a case-insensitive pattern
	Reason      string
	DateFrom    *time.Time
	DateTo      *time.Time
	Page        int
	PageSize    int
	SortOrder   string // asc or desc by created_at
}

// ReferralReasonCount is one bucket of the referral statistics.
type ReferralReasonCount struct {
	Reason string `db:"reason" json:"reason"`
	Count  int    `db:"count" json:"count"`
}

// ReferralClassCount aggregates referrals per class display.
type ReferralClassCount struct {
	ClassDisplay string `db:"class_display" json:"class_display"`
	Count        int    `db:"count" json:"count"`
}

// ReferralStats is the aggregate view served by the statistics endpoint.
type ReferralStats struct {
	Total     int                   `json:"total"`
	ByReason  []ReferralReasonCount `json:"by_reason"`
	ByClass   []ReferralClassCount  `json:"by_class"`
	FirstSeen *time.Time            `json:"first_seen,omitempty"`
	LastSeen  *time.Time            `json:"last_seen,omitempty"`
}
