package domain

import "strings"

// DustLevel describes how much dust has settled on the foliage.
type DustLevel string

const (
	DustUnknown DustLevel = "unknown"
	DustLow     DustLevel = "low"
	DustMedium  DustLevel = "medium"
	DustHigh    DustLevel = "high"
)

// Drainage describes how well the orchard soil sheds water.
type Drainage string

const (
	DrainageUnknown Drainage = "unknown"
	DrainageGood    Drainage = "good"
	DrainagePoor    Drainage = "poor"
)

// ScoringMode selects which rule set the item scorer evaluates.
type ScoringMode string

const (
	ModeStandard ScoringMode = "standard"
	ModeMeta     ScoringMode = "meta"
)

// Factor identifies one numeric climate dimension of a reading. Used by
// meta-mode favorable ranges and by the aggregate analyzer's breakdown.
type Factor string

const (
	FactorTemperature    Factor = "temperature"
	FactorHumidity       Factor = "humidity"
	FactorRainfall       Factor = "rainfall"
	FactorWetness        Factor = "wetness"
	FactorWind           Factor = "wind"
	FactorSoilMoisture   Factor = "soilMoisture"
	FactorCanopyHumidity Factor = "canopyHumidity"
)

// ClimateReading is the canonical, fully-defaulted input to the risk engine.
// Every numeric field is a finite number; enums are never empty. Build one
// via RawReading.Normalize rather than by hand when the source data may be
// partial or use legacy field names.
type ClimateReading struct {
	Temperature             float64     `json:"temperature"` // °C
	RelativeHumidity        float64     `json:"relativeHumidity"`
	Rainfall                float64     `json:"rainfall"`     // mm over the evaluation window
	WetnessHours            float64     `json:"wetnessHours"` // leaf/fruit wetness, hours per day
	WindSpeed               float64     `json:"windSpeed"`    // km/h
	SoilMoisture            float64     `json:"soilMoisture"`
	CanopyHumidity          float64     `json:"canopyHumidity"`
	DustLevel               DustLevel   `json:"dustLevel"`
	Drainage                Drainage    `json:"drainage"`
	HasStandingWater48h     bool        `json:"hasStandingWater48h"`
	HasTempJump10C          bool        `json:"hasTempJump10C"`
	HadDroughtThenHeavyRain bool        `json:"hadDroughtThenHeavyRain"`
	Mode                    ScoringMode `json:"mode"`
}

// RawReading is the loosely-typed bag of measurements as delivered by form
// input or a weather provider. Legacy field names from the old field-station
// gateway ("rh", "weeklyRainfall", "leafWetness") are accepted alongside the
// current ones; pointer fields distinguish "absent" from "zero".
type RawReading struct {
	Temperature      *float64 `json:"temperature,omitempty"`
	RelativeHumidity *float64 `json:"relativeHumidity,omitempty"`
	RH               *float64 `json:"rh,omitempty"` // legacy alias for relativeHumidity
	Rainfall         *float64 `json:"rainfall,omitempty"`
	WeeklyRainfall   *float64 `json:"weeklyRainfall,omitempty"` // legacy alias for rainfall
	WetnessHours     *float64 `json:"wetnessHours,omitempty"`
	LeafWetness      *float64 `json:"leafWetness,omitempty"` // legacy alias for wetnessHours
	WindSpeed        *float64 `json:"windSpeed,omitempty"`
	SoilMoisture     *float64 `json:"soilMoisture,omitempty"`
	CanopyHumidity   *float64 `json:"canopyHumidity,omitempty"`

	DustLevel string `json:"dustLevel,omitempty"`
	Drainage  string `json:"drainage,omitempty"`

	HasStandingWater48h     *bool `json:"hasStandingWater48h,omitempty"`
	HasTempJump10C          *bool `json:"hasTempJump10C,omitempty"`
	HadDroughtThenHeavyRain *bool `json:"hadDroughtThenHeavyRain,omitempty"`

	Mode string `json:"mode,omitempty"`
}

// Normalize produces the canonical reading. It never fails: numeric fields
// resolve to the first non-nil value among their aliases and default to 0,
// enum fields default to unknown, booleans to false, and an unrecognized
// mode falls back to standard. A missing measurement therefore means
// "condition cannot match", not an error.
func (r RawReading) Normalize() ClimateReading {
	return ClimateReading{
		Temperature:             firstOrZero(r.Temperature),
		RelativeHumidity:        firstOrZero(r.RelativeHumidity, r.RH),
		Rainfall:                firstOrZero(r.Rainfall, r.WeeklyRainfall),
		WetnessHours:            firstOrZero(r.WetnessHours, r.LeafWetness),
		WindSpeed:               firstOrZero(r.WindSpeed),
		SoilMoisture:            firstOrZero(r.SoilMoisture),
		CanopyHumidity:          firstOrZero(r.CanopyHumidity),
		DustLevel:               ParseDustLevel(r.DustLevel),
		Drainage:                ParseDrainage(r.Drainage),
		HasStandingWater48h:     r.HasStandingWater48h != nil && *r.HasStandingWater48h,
		HasTempJump10C:          r.HasTempJump10C != nil && *r.HasTempJump10C,
		HadDroughtThenHeavyRain: r.HadDroughtThenHeavyRain != nil && *r.HadDroughtThenHeavyRain,
		Mode:                    ParseScoringMode(r.Mode),
	}
}

// ParseDustLevel maps a raw string to a DustLevel, defaulting to unknown.
func ParseDustLevel(s string) DustLevel {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low":
		return DustLow
	case "medium":
		return DustMedium
	case "high":
		return DustHigh
	default:
		return DustUnknown
	}
}

// ParseDrainage maps a raw string to a Drainage, defaulting to unknown.
func ParseDrainage(s string) Drainage {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "good":
		return DrainageGood
	case "poor":
		return DrainagePoor
	default:
		return DrainageUnknown
	}
}

// ParseScoringMode maps a raw string to a ScoringMode. Anything other than
// "meta" is treated as standard rather than rejected.
func ParseScoringMode(s string) ScoringMode {
	if strings.EqualFold(strings.TrimSpace(s), string(ModeMeta)) {
		return ModeMeta
	}
	return ModeStandard
}

// factorValue returns the reading's value for one numeric factor.
func (c ClimateReading) factorValue(f Factor) float64 {
	switch f {
	case FactorTemperature:
		return c.Temperature
	case FactorHumidity:
		return c.RelativeHumidity
	case FactorRainfall:
		return c.Rainfall
	case FactorWetness:
		return c.WetnessHours
	case FactorWind:
		return c.WindSpeed
	case FactorSoilMoisture:
		return c.SoilMoisture
	case FactorCanopyHumidity:
		return c.CanopyHumidity
	default:
		return 0
	}
}

// firstOrZero returns the first non-nil value, or 0 when every alias is absent.
func firstOrZero(vals ...*float64) float64 {
	for _, v := range vals {
		if v != nil {
			return *v
		}
	}
	return 0
}
