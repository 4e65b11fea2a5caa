package models

import "time"

// DisciplineEvent records a discipline incident for a student.
type DisciplineEvent struct {
	ID          string    `db:"id" json:"id"`
	StudentName string    `db:"student_name" json:"student_name"`
	EventDate   time.Time `db:"event_date" json:"event_date"`
	Category    string    `db:"category" json:"category"`
	Description string    `db:"description" json:"description"`
	Sanction    *string   `db:"sanction" json:"sanction,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// DisciplineFilter captures list filters for discipline events.
type DisciplineFilter struct {
	Student   string
	Category  string
	DateFrom  *time.Time
	DateTo    *time.Time
	Page      int
	PageSize  int
	SortOrder string
}
