package model

import (
	"errors"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSource(t *testing.T) {
	tests := []struct {
		value string
		want  Source
		ok    bool
	}{
		{"", SourcePZZ, true}, // по умолчанию ПЗЗ
		{"   ", SourcePZZ, true},
		{"PZZ", SourcePZZ, true},
		{"OSM", SourceOSM, true},
		{"User", SourceUser, true},
		{" OSM ", SourceOSM, true},
		{"osm", "", false}, // регистр значим
		{"rosreestr", "", false},
	}
	for _, tt := range tests {
		src, err := ParseSource(tt.value)
		if tt.ok {
			require.NoError(t, err, "value %q", tt.value)
			assert.Equal(t, tt.want, src, "value %q", tt.value)
		} else {
			require.Error(t, err, "value %q", tt.value)
			assert.ErrorIs(t, err, ErrInvalidSource)
			assert.Contains(t, err.Error(), tt.value)
		}
	}
}

func TestCategories(t *testing.T) {
	cats := Categories()

	require.Len(t, cats, 10)
	// порядок фиксирован: он определяет tie-break при распределении остатка
	assert.Equal(t, CategoryResidential, cats[0])
	assert.Equal(t, CategoryUnclassified, cats[len(cats)-1])

	seen := make(map[Category]struct{}, len(cats))
	for _, c := range cats {
		_, dup := seen[c]
		assert.False(t, dup, "duplicate category %s", c)
		seen[c] = struct{}{}
	}
}

func TestUrbanizedCategories(t *testing.T) {
	urb := UrbanizedCategories()

	assert.ElementsMatch(t, []Category{
		CategoryResidential,
		CategoryIndustrial,
		CategoryCommercial,
		CategoryMixed,
	}, urb)

	all := make(map[Category]struct{})
	for _, c := range Categories() {
		all[c] = struct{}{}
	}
	for _, c := range urb {
		_, ok := all[c]
		assert.True(t, ok, "category %s is not canonical", c)
	}
}

func TestScopeInfo(t *testing.T) {
	s := Scope{
		ID:       42,
		Kind:     ScopeScenario,
		Geometry: orb.MultiPolygon{{orb.Ring{{0, 0}, {1, 0}, {1, 1}, {0, 0}}}},
	}

	// Info не тянет за собой геометрию
	assert.Equal(t, ScopeInfo{ID: 42, Kind: ScopeScenario}, s.Info())
}

func TestErrorMessages(t *testing.T) {
	degenerate := &DegenerateGeometryError{
		Scope:  ScopeInfo{ID: 5, Kind: ScopeProject},
		Reason: "zero area",
	}
	assert.Equal(t, "degenerate geometry for project 5: zero area", degenerate.Error())

	unresolved := &UnresolvedScopeError{Kind: ScopeTerritory, ID: 12}
	assert.Equal(t, "territory 12 not found", unresolved.Error())

	malformed := &MalformedZoneError{ZoneID: 3, Reason: "self-intersection"}
	assert.Equal(t, "malformed zone 3: self-intersection", malformed.Error())
}

func TestErrorsUnwrapThroughWrapping(t *testing.T) {
	cause := &UnresolvedScopeError{Kind: ScopeProject, ID: 7}
	wrapped := errors.Join(errors.New("fetch failed"), cause)

	var target *UnresolvedScopeError
	require.ErrorAs(t, wrapped, &target)
	assert.EqualValues(t, 7, target.ID)
}
