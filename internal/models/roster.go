package models

import "time"

// RosterTeacher maps one teacher to the single class they may refer
// students from. NormalizedName is precomputed at import time so request
// validation only does an equality check.
type RosterTeacher struct {
	ID              string    `db:"id" json:"id"`
	Name            string    `db:"name" json:"name"`
	NormalizedName  string    `db:"normalized_name" json:"-"`
	AllowedClassKey string    `db:"allowed_class_key" json:"allowed_class_key"`
	ImportedAt      time.Time `db:"imported_at" json:"imported_at"`
}

// ClassMapping translates a human-readable class display string
// ("1. Sınıf / A Şubesi") to its canonical key ("1-A").
type ClassMapping struct {
	Display string `db:"display" json:"display"`
	Key     string `db:"key" json:"key"`
}

// Roster is the snapshot the resolver validates against. Loaded from the
// store (or the Redis cache) once per request; never mutated in place.
type Roster struct {
	Teachers []RosterTeacher `json:"teachers"`
	ClassMap []ClassMapping  `json:"class_map"`
}

// Empty reports whether no roster has been imported yet.
func (r Roster) Empty() bool {
	return len(r.Teachers) == 0
}

// ClassKeyFor translates a display string to its canonical key, falling
// back to the raw value when no mapping exists.
func (r Roster) ClassKeyFor(display string) string {
	for _, m := range r.ClassMap {
		if m.Display == display {
			return m.Key
		}
	}
	return display
}
