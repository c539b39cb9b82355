package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fptr(v float64) *float64 { return &v }
func bptr(v bool) *bool       { return &v }

func TestRawReadingNormalize(t *testing.T) {
	t.Run("current field names", func(t *testing.T) {
		raw := RawReading{
			Temperature:      fptr(18),
			RelativeHumidity: fptr(90),
			Rainfall:         fptr(8),
			WetnessHours:     fptr(10),
			WindSpeed:        fptr(8),
			SoilMoisture:     fptr(55),
			CanopyHumidity:   fptr(75),
			DustLevel:        "medium",
			Drainage:         "poor",
			HasTempJump10C:   bptr(true),
			Mode:             "meta",
		}

		r := raw.Normalize()

		assert.Equal(t, 18.0, r.Temperature)
		assert.Equal(t, 90.0, r.RelativeHumidity)
		assert.Equal(t, 8.0, r.Rainfall)
		assert.Equal(t, 10.0, r.WetnessHours)
		assert.Equal(t, 8.0, r.WindSpeed)
		assert.Equal(t, 55.0, r.SoilMoisture)
		assert.Equal(t, 75.0, r.CanopyHumidity)
		assert.Equal(t, DustMedium, r.DustLevel)
		assert.Equal(t, DrainagePoor, r.Drainage)
		assert.True(t, r.HasTempJump10C)
		assert.False(t, r.HasStandingWater48h)
		assert.Equal(t, ModeMeta, r.Mode)
	})

	t.Run("legacy aliases", func(t *testing.T) {
		raw := RawReading{
			Temperature:    fptr(18),
			RH:             fptr(90),
			WeeklyRainfall: fptr(8),
			LeafWetness:    fptr(10),
		}

		r := raw.Normalize()

		assert.Equal(t, 90.0, r.RelativeHumidity)
		assert.Equal(t, 8.0, r.Rainfall)
		assert.Equal(t, 10.0, r.WetnessHours)
	})

	t.Run("current name wins over legacy alias", func(t *testing.T) {
		raw := RawReading{
			RelativeHumidity: fptr(80),
			RH:               fptr(40),
			Rainfall:         fptr(12),
			WeeklyRainfall:   fptr(3),
		}

		r := raw.Normalize()

		assert.Equal(t, 80.0, r.RelativeHumidity)
		assert.Equal(t, 12.0, r.Rainfall)
	})

	t.Run("empty bag defaults everything", func(t *testing.T) {
		r := RawReading{}.Normalize()

		assert.Equal(t, ClimateReading{
			DustLevel: DustUnknown,
			Drainage:  DrainageUnknown,
			Mode:      ModeStandard,
		}, r)
	})

	t.Run("omitted optionals equal explicit defaults", func(t *testing.T) {
		omitted := RawReading{Temperature: fptr(18)}.Normalize()
		explicit := RawReading{
			Temperature:             fptr(18),
			RelativeHumidity:        fptr(0),
			Rainfall:                fptr(0),
			WetnessHours:            fptr(0),
			WindSpeed:               fptr(0),
			SoilMoisture:            fptr(0),
			CanopyHumidity:          fptr(0),
			DustLevel:               "unknown",
			Drainage:                "unknown",
			HasStandingWater48h:     bptr(false),
			HasTempJump10C:          bptr(false),
			HadDroughtThenHeavyRain: bptr(false),
			Mode:                    "standard",
		}.Normalize()

		require.Equal(t, explicit, omitted)
		assert.Equal(t, AssessDiseases(explicit), AssessDiseases(omitted))
		assert.Equal(t, AssessPests(explicit), AssessPests(omitted))
		assert.Equal(t, AssessAggregate(explicit), AssessAggregate(omitted))
	})
}

func TestParseEnums(t *testing.T) {
	tests := []struct {
		name string
		in   string
		dust DustLevel
	}{
		{"high", "high", DustHigh},
		{"mixed case", "High", DustHigh},
		{"padded", "  low ", DustLow},
		{"medium", "medium", DustMedium},
		{"empty", "", DustUnknown},
		{"garbage", "severe", DustUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.dust, ParseDustLevel(tt.in))
		})
	}

	assert.Equal(t, DrainageGood, ParseDrainage("good"))
	assert.Equal(t, DrainagePoor, ParseDrainage("POOR"))
	assert.Equal(t, DrainageUnknown, ParseDrainage("swampy"))
}

func TestParseScoringMode(t *testing.T) {
	assert.Equal(t, ModeMeta, ParseScoringMode("meta"))
	assert.Equal(t, ModeMeta, ParseScoringMode("META"))
	assert.Equal(t, ModeStandard, ParseScoringMode("standard"))
	// Unrecognized modes fall back to standard rather than failing.
	assert.Equal(t, ModeStandard, ParseScoringMode("experimental"))
	assert.Equal(t, ModeStandard, ParseScoringMode(""))
}
