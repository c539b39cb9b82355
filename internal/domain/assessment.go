package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// Assessment bundles everything the engine produces for one reading: the
// ranked disease and pest lists plus the aggregate advisory, stamped with
// the evaluation time and a deterministic ID.
type Assessment struct {
	ID         string              `json:"id"`
	Reading    ClimateReading      `json:"reading"`
	Diseases   []RiskResult        `json:"diseases"`
	Pests      []RiskResult        `json:"pests"`
	Aggregate  AggregateAssessment `json:"aggregate"`
	AssessedAt time.Time           `json:"assessed_at"`
}

// NewAssessment runs both engine consumers over one canonical reading.
// AssessedAt comes from the package clock so tests and fixture generation
// can freeze it.
func NewAssessment(r ClimateReading) Assessment {
	return Assessment{
		ID:         generateID(r),
		Reading:    r,
		Diseases:   AssessDiseases(r),
		Pests:      AssessPests(r),
		Aggregate:  AssessAggregate(r),
		AssessedAt: clock.Now(),
	}
}

// generateID produces a deterministic ID from the canonical reading.
// Identical readings yield identical IDs, which makes downstream storage
// idempotent (ON CONFLICT DO NOTHING) and replays safe.
func generateID(r ClimateReading) string {
	input := fmt.Sprintf("%g|%g|%g|%g|%g|%g|%g|%s|%s|%t|%t|%t|%s",
		r.Temperature, r.RelativeHumidity, r.Rainfall, r.WetnessHours,
		r.WindSpeed, r.SoilMoisture, r.CanopyHumidity,
		r.DustLevel, r.Drainage,
		r.HasStandingWater48h, r.HasTempJump10C, r.HadDroughtThenHeavyRain,
		r.Mode,
	)
	hash := sha256.Sum256([]byte(input))
	return "risk-" + hex.EncodeToString(hash[:8])
}
