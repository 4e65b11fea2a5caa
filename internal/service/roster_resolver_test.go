package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okulpanel/rehberlik-api/internal/models"
	appErrors "github.com/okulpanel/rehberlik-api/pkg/errors"
)

func TestNormalizeName(t *testing.T) {
	cases := map[string]string{
		"Ayşe Yılmaz":    "ayse yilmaz",
		"ayse yilmaz":    "ayse yilmaz",
		"  AYŞE  YILMAZ ": "ayse yilmaz",
		"İsmail Çelik":   "ismail celik",
		"Gül ÖZTÜRK":     "gul ozturk",
		"Şeyma Uğur":     "seyma ugur",
	}
	for input, want := range cases {
		assert.Equal(t, want, NormalizeName(input), "input %q", input)
	}
}

func testRoster() models.Roster {
	return models.Roster{
		Teachers: []models.RosterTeacher{
			{Name: "Ayşe Yılmaz", NormalizedName: "ayse yilmaz", AllowedClassKey: "4-A"},
			{Name: "Mehmet Demir", NormalizedName: "mehmet demir", AllowedClassKey: "5-B"},
		},
		ClassMap: []models.ClassMapping{
			{Display: "4. Sınıf / A Şubesi", Key: "4-A"},
			{Display: "5. Sınıf / B Şubesi", Key: "5-B"},
		},
	}
}

func TestResolverAcceptsMatchingPair(t *testing.T) {
	resolver := NewRosterResolver(false)

	err := resolver.Validate("Ayşe Yılmaz", "4. Sınıf / A Şubesi", testRoster())
	require.NoError(t, err)
}

func TestResolverAcceptsAsciiSpelling(t *testing.T) {
	resolver := NewRosterResolver(false)

	err := resolver.Validate("ayse yilmaz", "4-A", testRoster())
	require.NoError(t, err)
}

func TestResolverRejectsWrongClass(t *testing.T) {
	resolver := NewRosterResolver(false)

	err := resolver.Validate("Ayşe Yılmaz", "5. Sınıf / B Şubesi", testRoster())
	require.Error(t, err)

	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrRosterMismatch.Code, appErr.Code)
}

func TestResolverRejectsUnknownTeacher(t *testing.T) {
	resolver := NewRosterResolver(false)

	err := resolver.Validate("Zeynep Kaya", "4-A", testRoster())
	require.Error(t, err)

	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
}

func TestResolverEmptyRosterPermissive(t *testing.T) {
	resolver := NewRosterResolver(false)

	err := resolver.Validate("Anyone", "anything", models.Roster{})
	require.NoError(t, err)
}

func TestResolverEmptyRosterStrict(t *testing.T) {
	resolver := NewRosterResolver(true)

	err := resolver.Validate("Anyone", "anything", models.Roster{})
	require.Error(t, err)
}

func TestResolverUnmappedDisplayFallsBackToRaw(t *testing.T) {
	resolver := NewRosterResolver(false)
	roster := testRoster()

	// The raw identifier happens to equal the canonical key.
	err := resolver.Validate("Mehmet Demir", "5-B", roster)
	require.NoError(t, err)
}
