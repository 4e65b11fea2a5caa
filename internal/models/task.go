package models

import "time"

// TaskStatus is the workflow state of a counselor task.
type TaskStatus string

const (
	TaskOpen       TaskStatus = "open"
	TaskInProgress TaskStatus = "in_progress"
	TaskDone       TaskStatus = "done"
)

// CounselorTask is a personal to-do item for the guidance office.
type CounselorTask struct {
	ID        string     `db:"id" json:"id"`
	Title     string     `db:"title" json:"title"`
	Detail    *string    `db:"detail" json:"detail,omitempty"`
	Status    TaskStatus `db:"status" json:"status"`
	DueDate   *time.Time `db:"due_date" json:"due_date,omitempty"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt time.Time  `db:"updated_at" json:"updated_at"`
}

// TaskFilter captures list filters for counselor tasks.
type TaskFilter struct {
	Status    string
	Page      int
	PageSize  int
	SortOrder string
}
