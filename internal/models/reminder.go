package models

import "time"

// FollowUpReminder schedules a check-back on a student.
type FollowUpReminder struct {
	ID          string    `db:"id" json:"id"`
	StudentName string    `db:"student_name" json:"student_name"`
	DueDate     time.Time `db:"due_date" json:"due_date"`
	Note        string    `db:"note" json:"note"`
	Done        bool      `db:"done" json:"done"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// ReminderFilter captures list filters for reminders.
type ReminderFilter struct {
	Student   string
	Done      *bool
	DueBefore *time.Time
	Page      int
	PageSize  int
	SortOrder string
}
