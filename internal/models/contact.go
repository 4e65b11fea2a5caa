package models

import "time"

// ContactChannel is how a parent contact took place.
type ContactChannel string

const (
	ContactPhone      ContactChannel = "phone"
	ContactFaceToFace ContactChannel = "face_to_face"
	ContactMessage    ContactChannel = "message"
)

// ParentContact logs one conversation with a student's parent or guardian.
type ParentContact struct {
	ID          string         `db:"id" json:"id"`
	StudentName string         `db:"student_name" json:"student_name"`
	ContactDate time.Time      `db:"contact_date" json:"contact_date"`
	Channel     ContactChannel `db:"channel" json:"channel"`
	Summary     string         `db:"summary" json:"summary"`
	CreatedAt   time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at" json:"updated_at"`
}

// ContactFilter captures list filters for parent contacts.
type ContactFilter struct {
	Student   string
	Channel   string
	DateFrom  *time.Time
	DateTo    *time.Time
	Page      int
	PageSize  int
	SortOrder string
}
