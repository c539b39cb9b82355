package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateCatalog(t *testing.T) {
	require.NoError(t, ValidateCatalog())
}

func TestCatalogNamesAreUnique(t *testing.T) {
	seen := make(map[string]bool)
	for _, item := range Catalog() {
		key := canonicalName(item.Name)
		assert.False(t, seen[key], "duplicate catalog entry %q", item.Name)
		seen[key] = true
	}
}

// A cold, dry, windy reading must not satisfy any disease condition: every
// disease check is positive-bound, so scores degrade to zero instead of
// matching spuriously.
func TestNoDiseaseCheckMatchesColdDryReading(t *testing.T) {
	r := ClimateReading{
		Temperature:      5,
		RelativeHumidity: 20,
		WindSpeed:        30,
		DustLevel:        DustUnknown,
		Drainage:         DrainageUnknown,
	}

	for _, item := range Catalog() {
		if item.Category != CategoryDisease {
			continue
		}
		for _, c := range item.Checks {
			assert.False(t, c.Match(r), "%s: check %q matched", item.Name, c.Label)
		}
	}
}

// Meta ranges must exclude 0 so that an absent measurement (normalized to 0)
// can never land inside a favorable range.
func TestMetaRangesExcludeZeroDefault(t *testing.T) {
	for _, item := range Catalog() {
		for _, rng := range item.Ranges {
			assert.Positive(t, rng.Min, "%s: range %q admits zero", item.Name, rng.Label)
			assert.GreaterOrEqual(t, rng.Max, rng.Min, "%s: range %q inverted", item.Name, rng.Label)
		}
	}
}

func TestWeightFor(t *testing.T) {
	t.Run("listed diseases", func(t *testing.T) {
		assert.Equal(t, 1.1, WeightFor("Apple Scab"))
		assert.Equal(t, 1.2, WeightFor("Fire Blight"))
	})

	t.Run("dash variants resolve to the same weight", func(t *testing.T) {
		// The advisory table spells this name with a non-breaking hyphen;
		// the catalog uses an ASCII hyphen. Both must find the 1.06 weight.
		assert.Equal(t, 1.06, WeightFor("Bull's-eye Rot"))
		assert.Equal(t, 1.06, WeightFor("Bull's‑eye Rot"))
		assert.Equal(t, 1.06, WeightFor("Bull's–eye Rot"))
	})

	t.Run("case insensitive", func(t *testing.T) {
		assert.Equal(t, 1.1, WeightFor("APPLE SCAB"))
	})

	t.Run("unlisted names weigh 1.0", func(t *testing.T) {
		assert.Equal(t, 1.0, WeightFor("Sooty Blotch"))
		assert.Equal(t, 1.0, WeightFor("Codling Moth"))
		assert.Equal(t, 1.0, WeightFor("no such disease"))
	})

	t.Run("weights stay within the tie-break band", func(t *testing.T) {
		for _, item := range Catalog() {
			w := WeightFor(item.Name)
			assert.GreaterOrEqual(t, w, 1.0, item.Name)
			assert.LessOrEqual(t, w, 1.2, item.Name)
		}
	})
}

func TestCanonicalName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "Apple Scab", "apple scab"},
		{"non-breaking hyphen", "Bull's‑eye Rot", "bull's-eye rot"},
		{"en dash", "Bull's–eye Rot", "bull's-eye rot"},
		{"em dash", "Bull's—eye Rot", "bull's-eye rot"},
		{"curly apostrophe", "Bull’s-eye Rot", "bull's-eye rot"},
		{"padded", "  Fire Blight ", "fire blight"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, canonicalName(tt.in))
		})
	}
}
