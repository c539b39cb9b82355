package domain

import (
	"fmt"
	"math"
	"strings"
)

// Category separates catalog entries into the two assessable groups.
type Category string

const (
	CategoryDisease Category = "disease"
	CategoryPest    Category = "pest"
)

// Condition is one labelled boolean check evaluated in standard mode.
// The label is what surfaces in RiskResult.MatchedFactors when it holds.
type Condition struct {
	Label string
	Match func(ClimateReading) bool
}

// FavorableRange is one meta-mode rule: the item gains points when the
// reading's value for Factor falls inside [Min, Max]. An open-ended range
// (Max = +Inf) means "Min or above".
type FavorableRange struct {
	Factor Factor
	Min    float64
	Max    float64
	Label  string
}

// RiskItem is one disease or pest definition. Entries are static
// configuration: defined once below, never mutated at runtime.
type RiskItem struct {
	Name     string
	Category Category

	// Checks drive standard mode, in declaration order.
	Checks []Condition

	// Ranges and FlagRules drive meta mode. FlagRules cover the
	// enum-valued conditions (dusty foliage, waterlogged soil) that have
	// no numeric range.
	Ranges    []FavorableRange
	FlagRules []Condition
}

func between(f Factor, min, max float64, label string) FavorableRange {
	return FavorableRange{Factor: f, Min: min, Max: max, Label: label}
}

func atLeast(f Factor, min float64, label string) FavorableRange {
	return FavorableRange{Factor: f, Min: min, Max: math.Inf(1), Label: label}
}

// catalog is the static risk table. Order matters: ties in weighted score
// keep declaration order, and matched factor labels surface in check order.
var catalog = []RiskItem{
	{
		Name:     "Apple Scab",
		Category: CategoryDisease,
		Checks: []Condition{
			{"temperature 15-24 °C", func(r ClimateReading) bool { return r.Temperature >= 15 && r.Temperature <= 24 }},
			{"relative humidity 85% or higher", func(r ClimateReading) bool { return r.RelativeHumidity >= 85 }},
			{"rainfall 5 mm or more", func(r ClimateReading) bool { return r.Rainfall >= 5 }},
			{"leaf wetness 9 h or longer", func(r ClimateReading) bool { return r.WetnessHours >= 9 }},
			{"light wind below 12 km/h", func(r ClimateReading) bool { return r.WindSpeed < 12 }},
			{"canopy humidity 70% or higher", func(r ClimateReading) bool { return r.CanopyHumidity >= 70 }},
		},
		Ranges: []FavorableRange{
			between(FactorTemperature, 15, 24, "temperature in scab infection range"),
			atLeast(FactorHumidity, 85, "saturated air"),
			atLeast(FactorRainfall, 5, "spore-dispersing rain"),
			atLeast(FactorWetness, 9, "extended leaf wetness"),
			between(FactorWind, 3, 12, "light spore-carrying wind"),
			atLeast(FactorCanopyHumidity, 70, "humid canopy"),
		},
	},
	{
		Name:     "Powdery Mildew",
		Category: CategoryDisease,
		Checks: []Condition{
			{"temperature 19-28 °C", func(r ClimateReading) bool { return r.Temperature >= 19 && r.Temperature <= 28 }},
			{"relative humidity 60-80%", func(r ClimateReading) bool { return r.RelativeHumidity >= 60 && r.RelativeHumidity <= 80 }},
			{"canopy humidity 65% or higher", func(r ClimateReading) bool { return r.CanopyHumidity >= 65 }},
			{"light breeze 5-15 km/h", func(r ClimateReading) bool { return r.WindSpeed >= 5 && r.WindSpeed <= 15 }},
		},
		Ranges: []FavorableRange{
			between(FactorTemperature, 19, 28, "warm mildew weather"),
			between(FactorHumidity, 60, 80, "moderately humid air"),
			atLeast(FactorCanopyHumidity, 65, "humid canopy"),
			between(FactorWind, 5, 15, "conidia-spreading breeze"),
		},
	},
	{
		Name:     "Fire Blight",
		Category: CategoryDisease,
		Checks: []Condition{
			{"temperature 24-32 °C", func(r ClimateReading) bool { return r.Temperature >= 24 && r.Temperature <= 32 }},
			{"relative humidity 70% or higher", func(r ClimateReading) bool { return r.RelativeHumidity >= 70 }},
			{"rainfall 2 mm or more", func(r ClimateReading) bool { return r.Rainfall >= 2 }},
			{"blossom wetness 6 h or longer", func(r ClimateReading) bool { return r.WetnessHours >= 6 }},
		},
		Ranges: []FavorableRange{
			between(FactorTemperature, 24, 32, "blight-favorable heat"),
			atLeast(FactorHumidity, 70, "humid air"),
			atLeast(FactorRainfall, 2, "bacteria-splashing rain"),
			atLeast(FactorWetness, 6, "wet blossoms"),
		},
	},
	{
		Name:     "Cedar Apple Rust",
		Category: CategoryDisease,
		Checks: []Condition{
			{"temperature 10-24 °C", func(r ClimateReading) bool { return r.Temperature >= 10 && r.Temperature <= 24 }},
			{"relative humidity 80% or higher", func(r ClimateReading) bool { return r.RelativeHumidity >= 80 }},
			{"rainfall 3 mm or more", func(r ClimateReading) bool { return r.Rainfall >= 3 }},
			{"leaf wetness 8 h or longer", func(r ClimateReading) bool { return r.WetnessHours >= 8 }},
		},
		Ranges: []FavorableRange{
			between(FactorTemperature, 10, 24, "cool rust weather"),
			atLeast(FactorHumidity, 80, "humid air"),
			atLeast(FactorRainfall, 3, "teliospore-activating rain"),
			atLeast(FactorWetness, 8, "extended leaf wetness"),
		},
	},
	{
		Name:     "Alternaria Leaf Blotch",
		Category: CategoryDisease,
		Checks: []Condition{
			{"temperature 25-30 °C", func(r ClimateReading) bool { return r.Temperature >= 25 && r.Temperature <= 30 }},
			{"relative humidity 85% or higher", func(r ClimateReading) bool { return r.RelativeHumidity >= 85 }},
			{"leaf wetness 5 h or longer", func(r ClimateReading) bool { return r.WetnessHours >= 5 }},
			{"sudden 10 °C temperature swing", func(r ClimateReading) bool { return r.HasTempJump10C }},
			{"drought followed by heavy rain", func(r ClimateReading) bool { return r.HadDroughtThenHeavyRain }},
		},
		// Meta mode awards the two stress-event flags through the
		// erratic-weather rule in the scorer, keyed on the name prefix.
		Ranges: []FavorableRange{
			between(FactorTemperature, 25, 30, "hot blotch weather"),
			atLeast(FactorHumidity, 85, "saturated air"),
			atLeast(FactorWetness, 5, "wet foliage"),
		},
	},
	{
		Name:     "Marssonina Blotch",
		Category: CategoryDisease,
		Checks: []Condition{
			{"temperature 20-27 °C", func(r ClimateReading) bool { return r.Temperature >= 20 && r.Temperature <= 27 }},
			{"relative humidity 80% or higher", func(r ClimateReading) bool { return r.RelativeHumidity >= 80 }},
			{"rainfall 10 mm or more", func(r ClimateReading) bool { return r.Rainfall >= 10 }},
			{"leaf wetness 8 h or longer", func(r ClimateReading) bool { return r.WetnessHours >= 8 }},
			{"canopy humidity 75% or higher", func(r ClimateReading) bool { return r.CanopyHumidity >= 75 }},
		},
		Ranges: []FavorableRange{
			between(FactorTemperature, 20, 27, "warm blotch weather"),
			atLeast(FactorHumidity, 80, "humid air"),
			atLeast(FactorRainfall, 10, "prolonged rain"),
			atLeast(FactorWetness, 8, "extended leaf wetness"),
			atLeast(FactorCanopyHumidity, 75, "dense humid canopy"),
		},
	},
	{
		Name:     "Black Rot",
		Category: CategoryDisease,
		Checks: []Condition{
			{"temperature 20-32 °C", func(r ClimateReading) bool { return r.Temperature >= 20 && r.Temperature <= 32 }},
			{"relative humidity 75% or higher", func(r ClimateReading) bool { return r.RelativeHumidity >= 75 }},
			{"fruit wetness 9 h or longer", func(r ClimateReading) bool { return r.WetnessHours >= 9 }},
			{"rainfall 3 mm or more", func(r ClimateReading) bool { return r.Rainfall >= 3 }},
		},
		Ranges: []FavorableRange{
			between(FactorTemperature, 20, 32, "warm rot weather"),
			atLeast(FactorHumidity, 75, "humid air"),
			atLeast(FactorWetness, 9, "wet fruit surfaces"),
			atLeast(FactorRainfall, 3, "infection-period rain"),
		},
	},
	{
		Name:     "Bull's-eye Rot",
		Category: CategoryDisease,
		Checks: []Condition{
			{"temperature 12-20 °C", func(r ClimateReading) bool { return r.Temperature >= 12 && r.Temperature <= 20 }},
			{"relative humidity 85% or higher", func(r ClimateReading) bool { return r.RelativeHumidity >= 85 }},
			{"rainfall 8 mm or more", func(r ClimateReading) bool { return r.Rainfall >= 8 }},
			{"fruit wetness 10 h or longer", func(r ClimateReading) bool { return r.WetnessHours >= 10 }},
		},
		Ranges: []FavorableRange{
			between(FactorTemperature, 12, 20, "cool wet autumn weather"),
			atLeast(FactorHumidity, 85, "saturated air"),
			atLeast(FactorRainfall, 8, "conidia-washing rain"),
			atLeast(FactorWetness, 10, "long fruit wetness"),
		},
	},
	{
		Name:     "Collar Rot",
		Category: CategoryDisease,
		Checks: []Condition{
			{"soil moisture 70% or higher", func(r ClimateReading) bool { return r.SoilMoisture >= 70 }},
			{"poor drainage", func(r ClimateReading) bool { return r.Drainage == DrainagePoor }},
			{"standing water for 48 h", func(r ClimateReading) bool { return r.HasStandingWater48h }},
			{"rainfall 15 mm or more", func(r ClimateReading) bool { return r.Rainfall >= 15 }},
			{"temperature 12-24 °C", func(r ClimateReading) bool { return r.Temperature >= 12 && r.Temperature <= 24 }},
		},
		Ranges: []FavorableRange{
			atLeast(FactorSoilMoisture, 70, "saturated soil"),
			atLeast(FactorRainfall, 15, "heavy rain"),
			between(FactorTemperature, 12, 24, "phytophthora-active temperatures"),
		},
		FlagRules: []Condition{
			{"waterlogged root zone", func(r ClimateReading) bool {
				return r.Drainage == DrainagePoor || r.HasStandingWater48h
			}},
		},
	},
	{
		Name:     "Sooty Blotch",
		Category: CategoryDisease,
		Checks: []Condition{
			{"relative humidity 90% or higher", func(r ClimateReading) bool { return r.RelativeHumidity >= 90 }},
			{"fruit wetness 12 h or longer", func(r ClimateReading) bool { return r.WetnessHours >= 12 }},
			{"temperature 16-27 °C", func(r ClimateReading) bool { return r.Temperature >= 16 && r.Temperature <= 27 }},
			{"rainfall 12 mm or more", func(r ClimateReading) bool { return r.Rainfall >= 12 }},
		},
		Ranges: []FavorableRange{
			atLeast(FactorHumidity, 90, "near-saturated air"),
			atLeast(FactorWetness, 12, "very long fruit wetness"),
			between(FactorTemperature, 16, 27, "mild humid weather"),
			atLeast(FactorRainfall, 12, "frequent rain"),
		},
	},

	{
		Name:     "Codling Moth",
		Category: CategoryPest,
		Checks: []Condition{
			{"temperature 21-30 °C", func(r ClimateReading) bool { return r.Temperature >= 21 && r.Temperature <= 30 }},
			{"moderate humidity 40-70%", func(r ClimateReading) bool { return r.RelativeHumidity >= 40 && r.RelativeHumidity <= 70 }},
			{"calm flight conditions below 10 km/h", func(r ClimateReading) bool { return r.WindSpeed < 10 }},
		},
		Ranges: []FavorableRange{
			between(FactorTemperature, 21, 30, "warm flight evenings"),
			between(FactorHumidity, 40, 70, "moderate humidity"),
			between(FactorWind, 1, 10, "calm air"),
		},
	},
	{
		Name:     "Woolly Apple Aphid",
		Category: CategoryPest,
		Checks: []Condition{
			{"temperature 18-26 °C", func(r ClimateReading) bool { return r.Temperature >= 18 && r.Temperature <= 26 }},
			{"canopy humidity 60% or higher", func(r ClimateReading) bool { return r.CanopyHumidity >= 60 }},
			{"soil moisture 40-70%", func(r ClimateReading) bool { return r.SoilMoisture >= 40 && r.SoilMoisture <= 70 }},
			{"rainfall 5 mm or more", func(r ClimateReading) bool { return r.Rainfall >= 5 }},
		},
		Ranges: []FavorableRange{
			between(FactorTemperature, 18, 26, "mild colony weather"),
			atLeast(FactorCanopyHumidity, 60, "humid canopy"),
			between(FactorSoilMoisture, 40, 70, "moist soil"),
			atLeast(FactorRainfall, 5, "growth-flushing rain"),
		},
	},
	{
		Name:     "European Red Mite",
		Category: CategoryPest,
		Checks: []Condition{
			{"temperature 23-35 °C", func(r ClimateReading) bool { return r.Temperature >= 23 && r.Temperature <= 35 }},
			{"dry air 25-55%", func(r ClimateReading) bool { return r.RelativeHumidity >= 25 && r.RelativeHumidity <= 55 }},
			{"dusty foliage", func(r ClimateReading) bool { return r.DustLevel == DustHigh }},
			{"dust-carrying wind 12 km/h or more", func(r ClimateReading) bool { return r.WindSpeed >= 12 }},
		},
		Ranges: []FavorableRange{
			between(FactorTemperature, 23, 35, "hot mite weather"),
			between(FactorHumidity, 25, 55, "dry air"),
			atLeast(FactorWind, 12, "dust-carrying wind"),
		},
		FlagRules: []Condition{
			{"dusty foliage", func(r ClimateReading) bool { return r.DustLevel == DustHigh }},
		},
	},
	{
		Name:     "Two-spotted Spider Mite",
		Category: CategoryPest,
		Checks: []Condition{
			{"temperature 27-38 °C", func(r ClimateReading) bool { return r.Temperature >= 27 && r.Temperature <= 38 }},
			{"very dry air 20-45%", func(r ClimateReading) bool { return r.RelativeHumidity >= 20 && r.RelativeHumidity <= 45 }},
			{"drought-stressed soil 10-35%", func(r ClimateReading) bool { return r.SoilMoisture >= 10 && r.SoilMoisture <= 35 }},
			{"dusty foliage", func(r ClimateReading) bool { return r.DustLevel == DustHigh }},
		},
		Ranges: []FavorableRange{
			between(FactorTemperature, 27, 38, "very hot weather"),
			between(FactorHumidity, 20, 45, "very dry air"),
			between(FactorSoilMoisture, 10, 35, "drought-stressed soil"),
		},
		FlagRules: []Condition{
			{"dusty foliage", func(r ClimateReading) bool { return r.DustLevel == DustHigh }},
		},
	},
	{
		Name:     "San Jose Scale",
		Category: CategoryPest,
		Checks: []Condition{
			{"temperature 20-33 °C", func(r ClimateReading) bool { return r.Temperature >= 20 && r.Temperature <= 33 }},
			{"humidity 30-60%", func(r ClimateReading) bool { return r.RelativeHumidity >= 30 && r.RelativeHumidity <= 60 }},
			{"canopy humidity 40-70%", func(r ClimateReading) bool { return r.CanopyHumidity >= 40 && r.CanopyHumidity <= 70 }},
		},
		Ranges: []FavorableRange{
			between(FactorTemperature, 20, 33, "warm crawler weather"),
			between(FactorHumidity, 30, 60, "moderately dry air"),
			between(FactorCanopyHumidity, 40, 70, "open canopy"),
		},
	},
	{
		Name:     "Apple Maggot",
		Category: CategoryPest,
		Checks: []Condition{
			{"temperature 18-29 °C", func(r ClimateReading) bool { return r.Temperature >= 18 && r.Temperature <= 29 }},
			{"soil moisture 50-85%", func(r ClimateReading) bool { return r.SoilMoisture >= 50 && r.SoilMoisture <= 85 }},
			{"rainfall 6 mm or more", func(r ClimateReading) bool { return r.Rainfall >= 6 }},
			{"humidity 60% or higher", func(r ClimateReading) bool { return r.RelativeHumidity >= 60 }},
		},
		Ranges: []FavorableRange{
			between(FactorTemperature, 18, 29, "warm emergence weather"),
			between(FactorSoilMoisture, 50, 85, "moist pupation soil"),
			atLeast(FactorRainfall, 6, "emergence-triggering rain"),
			atLeast(FactorHumidity, 60, "humid air"),
		},
	},
}

// diseaseWeights are the tie-break multipliers applied to disease raw scores.
// Keys are display names as they appear in upstream advisory tables, which
// mix Unicode dash characters; lookups go through canonicalName so the
// spelling variants all resolve. Unlisted names weigh 1.0.
var diseaseWeights = map[string]float64{
	"Apple Scab":             1.1,
	"Fire Blight":            1.2,
	"Powdery Mildew":         1.05,
	"Cedar Apple Rust":       1.08,
	"Alternaria Leaf Blotch": 1.15,
	"Marssonina Blotch":      1.12,
	"Black Rot":              1.07,
	"Bull's‑eye Rot":         1.06, // non-breaking hyphen, as in the source advisory table
	"Collar Rot":             1.09,
}

var weightIndex = buildWeightIndex(diseaseWeights)

func buildWeightIndex(src map[string]float64) map[string]float64 {
	idx := make(map[string]float64, len(src))
	for name, w := range src {
		idx[canonicalName(name)] = w
	}
	return idx
}

// WeightFor returns the tie-break multiplier for a catalog item name,
// defaulting to 1.0 for unlisted names.
func WeightFor(name string) float64 {
	if w, ok := weightIndex[canonicalName(name)]; ok {
		return w
	}
	return 1.0
}

// canonicalName lowercases a display name and folds the Unicode dash and
// apostrophe variants that appear inconsistently across advisory tables
// (en dash, em dash, non-breaking hyphen, minus sign, curly apostrophe)
// into their ASCII forms, so name-keyed lookups cannot silently miss.
func canonicalName(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch r {
		case '‐', '‑', '‒', '–', '—', '−':
			b.WriteRune('-')
		case '‘', '’':
			b.WriteRune('\'')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Catalog returns the static risk table in declaration order. Callers must
// treat the returned slice as read-only.
func Catalog() []RiskItem {
	return catalog
}

// ValidateCatalog checks the static tables for the mistakes that would
// silently skew scoring: duplicate names, empty labels, weight-table keys
// that match no catalog entry, and meta ranges that admit the zero default.
func ValidateCatalog() error {
	seen := make(map[string]bool, len(catalog))
	for _, item := range catalog {
		key := canonicalName(item.Name)
		if seen[key] {
			return fmt.Errorf("duplicate catalog entry %q", item.Name)
		}
		seen[key] = true

		if len(item.Checks) == 0 {
			return fmt.Errorf("catalog entry %q has no standard checks", item.Name)
		}
		for _, c := range item.Checks {
			if c.Label == "" || c.Match == nil {
				return fmt.Errorf("catalog entry %q has an incomplete check", item.Name)
			}
		}
		for _, rng := range item.Ranges {
			if rng.Label == "" {
				return fmt.Errorf("catalog entry %q has an unlabelled range", item.Name)
			}
			if rng.Min <= 0 && rng.Max >= 0 {
				// An absent measurement normalizes to 0 and must never
				// satisfy a favorable range.
				return fmt.Errorf("catalog entry %q range %q admits the zero default", item.Name, rng.Label)
			}
			if rng.Min > rng.Max {
				return fmt.Errorf("catalog entry %q range %q is inverted", item.Name, rng.Label)
			}
		}
		for _, c := range item.FlagRules {
			if c.Label == "" || c.Match == nil {
				return fmt.Errorf("catalog entry %q has an incomplete flag rule", item.Name)
			}
		}
	}

	for name := range diseaseWeights {
		if !seen[canonicalName(name)] {
			return fmt.Errorf("weight table entry %q matches no catalog item", name)
		}
	}
	return nil
}
