package service

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/okulpanel/rehberlik-api/internal/models"
	appErrors "github.com/okulpanel/rehberlik-api/pkg/errors"
)

// diacriticFold strips combining marks after NFD decomposition, turning
// ş/ğ/ç/ö/ü into their ASCII bases.
var diacriticFold = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// dotlessI handles the Turkish İ/I/ı cases before generic lowering; ı does
// not decompose under NFD so the fold above never reaches it.
var dotlessI = strings.NewReplacer("İ", "i", "I", "i", "ı", "i")

// NormalizeName lowercases a teacher name Turkish-aware, folds diacritics
// and collapses internal whitespace, so roster matching is a plain equality
// check.
func NormalizeName(name string) string {
	s := dotlessI.Replace(strings.TrimSpace(name))
	s = strings.ToLower(s)
	if folded, _, err := transform.String(diacriticFold, s); err == nil {
		s = folded
	}
	return strings.Join(strings.Fields(s), " ")
}

// RosterResolver validates teacher/class pairings against the imported
// roster. Pure over its inputs; no side effects.
type RosterResolver struct {
	strict bool
}

// NewRosterResolver constructs a resolver. strict decides whether an empty
// roster rejects referrals or waves them through (the bootstrap fallback).
func NewRosterResolver(strict bool) *RosterResolver {
	return &RosterResolver{strict: strict}
}

// Validate checks that the named teacher may refer students from the given
// class. classIdentifier may be a canonical key or a display string; display
// strings are translated through the roster's mapping table first.
func (r *RosterResolver) Validate(teacherName, classIdentifier string, roster models.Roster) error {
	if roster.Empty() {
		if r.strict {
			return appErrors.Clone(appErrors.ErrValidation, "no class roster has been imported; referrals are rejected until one exists")
		}
		// Bootstrap fallback: validation is advisory until a roster exists.
		return nil
	}

	classKey := roster.ClassKeyFor(classIdentifier)
	normalized := NormalizeName(teacherName)

	for _, teacher := range roster.Teachers {
		rosterName := teacher.NormalizedName
		if rosterName == "" {
			rosterName = NormalizeName(teacher.Name)
		}
		if rosterName != normalized {
			continue
		}
		if teacher.AllowedClassKey == classKey {
			return nil
		}
		return appErrors.Clone(appErrors.ErrRosterMismatch,
			fmt.Sprintf("teacher %q is not authorized for class %q", teacherName, classIdentifier))
	}

	return appErrors.Clone(appErrors.ErrValidation,
		fmt.Sprintf("teacher %q is not on the imported roster", teacherName))
}
