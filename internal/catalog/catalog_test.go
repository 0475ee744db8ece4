package catalog_test

import (
	"testing"

	"github.com/couchcryptid/bufkit-ingest-service/internal/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMnemonicsUniquePerSection(t *testing.T) {
	for _, section := range catalog.Sections() {
		seen := make(map[string]bool)
		for _, p := range section.Parameters() {
			assert.False(t, seen[p.Mnemonic], "duplicate mnemonic %q in section %s", p.Mnemonic, section)
			seen[p.Mnemonic] = true
			assert.NotEmpty(t, p.Description, "mnemonic %q has no description", p.Mnemonic)
		}
	}
}

func TestLookup(t *testing.T) {
	tests := []struct {
		mnemonic string
		section  catalog.Section
		unit     string
	}{
		{"CAPE", catalog.SoundingIndices, "J/kg"},
		{"TMPC", catalog.ProfileLevels, "C"},
		{"SKNT", catalog.ProfileLevels, "kt"},
		{"HLCY", catalog.SurfaceParameters, "m**2/s**2"},
		{"TD2M", catalog.SurfaceParameters, "C"},
	}
	for _, tc := range tests {
		p, section, ok := catalog.Lookup(tc.mnemonic)
		require.True(t, ok, "mnemonic %q not found", tc.mnemonic)
		assert.Equal(t, tc.section, section)
		assert.Equal(t, tc.unit, p.Unit)
	}
}

func TestLookupPrefersFileOrder(t *testing.T) {
	// PRES exists in both the profile and surface sections; file order puts
	// the profile first.
	p, section, ok := catalog.Lookup("PRES")
	require.True(t, ok)
	assert.Equal(t, catalog.ProfileLevels, section)
	assert.Equal(t, "Pressure", p.Description)
}

func TestLookupUnknown(t *testing.T) {
	_, _, ok := catalog.Lookup("NOPE")
	assert.False(t, ok)
}

func TestParametersReturnsCopy(t *testing.T) {
	a := catalog.ProfileLevels.Parameters()
	a[0].Description = "mutated"
	b := catalog.ProfileLevels.Parameters()
	assert.Equal(t, "Pressure", b[0].Description)
}
