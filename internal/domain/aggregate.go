package domain

// AggregateLevel classifies the single overall risk score.
type AggregateLevel string

const (
	AggregateLow      AggregateLevel = "low"
	AggregateMedium   AggregateLevel = "medium"
	AggregateHigh     AggregateLevel = "high"
	AggregateCritical AggregateLevel = "critical"
)

// FactorFlag is the qualitative reading of one factor's contribution:
// high for a full-band hit, medium for the wider band, low for none.
type FactorFlag string

const (
	FlagLow    FactorFlag = "low"
	FlagMedium FactorFlag = "medium"
	FlagHigh   FactorFlag = "high"
)

// FactorScore pairs a factor's raw value with its qualitative flag.
type FactorScore struct {
	Value float64    `json:"value"`
	Flag  FactorFlag `json:"flag"`
}

// AggregateAssessment is the coarse single-score advisory for a reading,
// typically one averaged over an area of interest and date range.
type AggregateAssessment struct {
	RiskScore       int                    `json:"riskScore"`
	RiskLevel       AggregateLevel         `json:"riskLevel"`
	Factors         map[Factor]FactorScore `json:"factors"`
	Recommendations []string               `json:"recommendations"`
}

// Advisory messages, emitted in the fixed order below.
const (
	recHighHumidity = "High humidity in the canopy: prune and thin to improve air circulation."
	recLeafWetness  = "Extended leaf wetness: apply a protective fungicide before the next rain event."
	recPreventive   = "Overall infection risk is elevated: start a preventive fungicide program and scout the orchard daily."
	recLowRisk      = "Risk level is low: continue normal orchard management."
)

// AssessAggregate collapses one reading into a single risk score by summing
// independent factor contributions. Band maxima (25+25+25+15+10) total
// exactly 100, so the sum needs no clamp. Each factor's wider band is only
// consulted when the narrower one fails; both bands are inclusive.
func AssessAggregate(r ClimateReading) AggregateAssessment {
	temperature := bandPoints(r.Temperature >= 15 && r.Temperature <= 25, r.Temperature >= 12 && r.Temperature <= 28, 25, 15)
	humidity := bandPoints(r.RelativeHumidity >= 85, r.RelativeHumidity >= 70, 25, 15)
	wetness := bandPoints(r.WetnessHours >= 12, r.WetnessHours >= 8, 25, 15)
	soilMoisture := bandPoints(r.SoilMoisture >= 50 && r.SoilMoisture <= 80, r.SoilMoisture >= 40 && r.SoilMoisture <= 90, 15, 10)
	rainfall := bandPoints(r.Rainfall >= 20, r.Rainfall >= 10, 10, 5)

	score := temperature.points + humidity.points + wetness.points + soilMoisture.points + rainfall.points
	level := aggregateLevelFor(score)

	factors := map[Factor]FactorScore{
		FactorTemperature:  {Value: r.Temperature, Flag: temperature.flag},
		FactorHumidity:     {Value: r.RelativeHumidity, Flag: humidity.flag},
		FactorWetness:      {Value: r.WetnessHours, Flag: wetness.flag},
		FactorSoilMoisture: {Value: r.SoilMoisture, Flag: soilMoisture.flag},
		FactorRainfall:     {Value: r.Rainfall, Flag: rainfall.flag},
	}

	return AggregateAssessment{
		RiskScore:       score,
		RiskLevel:       level,
		Factors:         factors,
		Recommendations: recommendationsFor(factors, level),
	}
}

type bandResult struct {
	points int
	flag   FactorFlag
}

// bandPoints scores one factor's two inclusive bands: full points for the
// narrow band, partial for the wide one, zero otherwise.
func bandPoints(narrow, wide bool, full, partial int) bandResult {
	switch {
	case narrow:
		return bandResult{points: full, flag: FlagHigh}
	case wide:
		return bandResult{points: partial, flag: FlagMedium}
	default:
		return bandResult{points: 0, flag: FlagLow}
	}
}

func aggregateLevelFor(score int) AggregateLevel {
	switch {
	case score >= 80:
		return AggregateCritical
	case score >= 60:
		return AggregateHigh
	case score >= 40:
		return AggregateMedium
	default:
		return AggregateLow
	}
}

// recommendationsFor assembles the advisory list in fixed order. When no
// gate fires, the single low-risk message is emitted instead.
func recommendationsFor(factors map[Factor]FactorScore, level AggregateLevel) []string {
	recs := make([]string, 0, 3)
	if factors[FactorHumidity].Flag == FlagHigh {
		recs = append(recs, recHighHumidity)
	}
	if factors[FactorWetness].Flag == FlagHigh {
		recs = append(recs, recLeafWetness)
	}
	if level == AggregateCritical || level == AggregateHigh {
		recs = append(recs, recPreventive)
	}
	if len(recs) == 0 {
		recs = append(recs, recLowRisk)
	}
	return recs
}
