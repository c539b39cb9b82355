package domain

import (
	"sort"
	"strings"
)

// RiskLevel classifies a weighted item score.
type RiskLevel string

const (
	LevelLow    RiskLevel = "Low"
	LevelMedium RiskLevel = "Medium"
	LevelHigh   RiskLevel = "High"
)

// RiskResult is one catalog entry's evaluation against one reading.
type RiskResult struct {
	Name           string    `json:"name"`
	Category       Category  `json:"category"`
	Score          float64   `json:"score"`
	Level          RiskLevel `json:"level"`
	MatchedFactors []string  `json:"matchedFactors"`
}

const (
	// Each satisfied condition or favorable range contributes a fixed
	// 20-point increment; five matches saturate the scale. Coarse on
	// purpose: the output is meant to be read, not regressed on.
	pointsPerFactor = 20
	maxScore        = 100
)

// AssessDiseases evaluates every disease catalog entry against the reading
// and returns the results sorted descending by weighted score. Ties keep
// catalog declaration order.
func AssessDiseases(r ClimateReading) []RiskResult {
	return assessCategory(CategoryDisease, r)
}

// AssessPests evaluates every pest catalog entry against the reading.
// Pest scores are never tie-break weighted.
func AssessPests(r ClimateReading) []RiskResult {
	return assessCategory(CategoryPest, r)
}

func assessCategory(cat Category, r ClimateReading) []RiskResult {
	results := make([]RiskResult, 0, len(catalog))
	for _, item := range catalog {
		if item.Category != cat {
			continue
		}
		results = append(results, scoreItem(item, r))
	}

	// Stable: equal weighted scores preserve catalog declaration order.
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	return results
}

// scoreItem runs the mode-selected scorer, applies the disease tie-break
// weight, and classifies the result. The weight can push a score across a
// level boundary (60 raw with a 1.2 multiplier lands at 72, High); that is
// intended behavior.
func scoreItem(item RiskItem, r ClimateReading) RiskResult {
	var score float64
	var matched []string

	switch r.Mode {
	case ModeMeta:
		score, matched = scoreMeta(item, r)
	default:
		score, matched = scoreStandard(item, r)
	}

	if item.Category == CategoryDisease {
		score = min(score*WeightFor(item.Name), maxScore)
	}

	return RiskResult{
		Name:           item.Name,
		Category:       item.Category,
		Score:          score,
		Level:          levelFor(score),
		MatchedFactors: matched,
	}
}

// scoreStandard counts satisfied boolean checks, 20 points apiece.
func scoreStandard(item RiskItem, r ClimateReading) (float64, []string) {
	matched := make([]string, 0, len(item.Checks))
	for _, c := range item.Checks {
		if c.Match(r) {
			matched = append(matched, c.Label)
		}
	}
	return min(float64(pointsPerFactor*len(matched)), maxScore), matched
}

// scoreMeta awards 20 points per satisfied favorable range or flag rule,
// then clamps. The clamp is load-bearing: entries with six ranges can reach
// 120-140 before it.
func scoreMeta(item RiskItem, r ClimateReading) (float64, []string) {
	matched := make([]string, 0, len(item.Ranges)+len(item.FlagRules)+2)
	var score float64

	for _, rng := range item.Ranges {
		v := r.factorValue(rng.Factor)
		if v >= rng.Min && v <= rng.Max {
			score += pointsPerFactor
			matched = append(matched, rng.Label)
		}
	}
	for _, c := range item.FlagRules {
		if c.Match(r) {
			score += pointsPerFactor
			matched = append(matched, c.Label)
		}
	}

	// Alternaria blotch outbreaks track erratic-weather stress events, so
	// that one entry also scores the two event flags. This is a
	// special-cased rule, not a generic extension point.
	if hasErraticWeatherRules(item.Name) {
		if r.HasTempJump10C {
			score += pointsPerFactor
			matched = append(matched, "sudden 10 °C temperature swing")
		}
		if r.HadDroughtThenHeavyRain {
			score += pointsPerFactor
			matched = append(matched, "drought followed by heavy rain")
		}
	}

	return min(score, maxScore), matched
}

func hasErraticWeatherRules(name string) bool {
	return strings.HasPrefix(strings.ToLower(name), "alternaria")
}

// levelFor maps a weighted score to its risk level:
// 30 and below Low, 70 and below Medium, above 70 High.
func levelFor(score float64) RiskLevel {
	switch {
	case score <= 30:
		return LevelLow
	case score <= 70:
		return LevelMedium
	default:
		return LevelHigh
	}
}
