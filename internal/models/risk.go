package models

import "time"

// RiskStatus is the lifecycle state of a risk-tracking entry.
type RiskStatus string

const (
	RiskOpen   RiskStatus = "open"
	RiskClosed RiskStatus = "closed"
)

// RiskLevel grades a risk entry.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// RiskEntry tracks a student flagged for ongoing attention.
type RiskEntry struct {
	ID          string     `db:"id" json:"id"`
	StudentName string     `db:"student_name" json:"student_name"`
	Level       RiskLevel  `db:"level" json:"level"`
	Category    string     `db:"category" json:"category"`
	Note        string     `db:"note" json:"note"`
	Status      RiskStatus `db:"status" json:"status"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updated_at"`
}

// RiskFilter captures list filters for risk entries.
type RiskFilter struct {
	Student   string
	Level     string
	Status    string
	Page      int
	PageSize  int
	SortOrder string
}
