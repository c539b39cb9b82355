// Command genmock generates mock reading and assessment fixtures for test
// suites and demo environments. It runs the actual risk engine over a set of
// seasonal orchard scenarios under a fixed clock, so regenerated fixtures
// stay byte-stable.
//
// Usage:
//
//	go run ./cmd/genmock -readings-out data/mock/readings.json -assessments-out data/mock/assessments.json
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/orchardwatch/leaf-risk-service/internal/domain"
)

// scenario is one named orchard weather situation.
type scenario struct {
	Name    string            `json:"name"`
	Reading domain.RawReading `json:"reading"`
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	readingsOut := flag.String("readings-out", "", "output path for the readings fixture")
	assessmentsOut := flag.String("assessments-out", "", "output path for the assessments fixture")
	flag.Parse()

	if *readingsOut == "" || *assessmentsOut == "" {
		flag.Usage()
		return fmt.Errorf("missing required flags: -readings-out, -assessments-out")
	}

	// Fix the clock so AssessedAt is reproducible across regenerations.
	domain.SetClock(clockwork.NewFakeClockAt(
		time.Date(2026, time.April, 14, 6, 0, 0, 0, time.UTC),
	))
	defer domain.SetClock(nil)

	scenarios := buildScenarios()

	assessments := make([]domain.Assessment, 0, len(scenarios))
	for _, s := range scenarios {
		a := domain.NewAssessment(s.Reading.Normalize())
		assessments = append(assessments, a)
		log.Printf("%s: aggregate %d/100 (%s), top disease %s",
			s.Name, a.Aggregate.RiskScore, a.Aggregate.RiskLevel, a.Diseases[0].Name)
	}

	if err := writeJSON(*readingsOut, scenarios); err != nil {
		return fmt.Errorf("writing readings fixture: %w", err)
	}
	log.Printf("wrote readings fixture: %s", *readingsOut)

	if err := writeJSON(*assessmentsOut, assessments); err != nil {
		return fmt.Errorf("writing assessments fixture: %w", err)
	}
	log.Printf("wrote assessments fixture: %s", *assessmentsOut)

	return nil
}

func buildScenarios() []scenario {
	f := func(v float64) *float64 { return &v }
	b := func(v bool) *bool { return &v }

	return []scenario{
		{
			Name: "spring scab event",
			Reading: domain.RawReading{
				Temperature:      f(18),
				RelativeHumidity: f(90),
				Rainfall:         f(8),
				WetnessHours:     f(10),
				WindSpeed:        f(8),
				CanopyHumidity:   f(78),
			},
		},
		{
			Name: "cold dry dormant day",
			Reading: domain.RawReading{
				Temperature:      f(5),
				RelativeHumidity: f(20),
				WindSpeed:        f(30),
			},
		},
		{
			Name: "hot blight week",
			Reading: domain.RawReading{
				Temperature:      f(27),
				RelativeHumidity: f(82),
				Rainfall:         f(4),
				WetnessHours:     f(7),
				SoilMoisture:     f(55),
				CanopyHumidity:   f(72),
			},
		},
		{
			Name: "dusty summer drought",
			Reading: domain.RawReading{
				Temperature:      f(31),
				RH:               f(35),
				SoilMoisture:     f(25),
				WindSpeed:        f(14),
				DustLevel:        "high",
			},
		},
		{
			Name: "waterlogged orchard floor",
			Reading: domain.RawReading{
				Temperature:         f(16),
				RelativeHumidity:    f(88),
				Rainfall:            f(22),
				WetnessHours:        f(11),
				SoilMoisture:        f(85),
				Drainage:            "poor",
				HasStandingWater48h: b(true),
			},
		},
		{
			Name: "erratic weather stress, meta mode",
			Reading: domain.RawReading{
				Temperature:             f(27),
				RelativeHumidity:        f(87),
				WetnessHours:            f(6),
				HasTempJump10C:          b(true),
				HadDroughtThenHeavyRain: b(true),
				Mode:                    "meta",
			},
		},
		{
			Name: "legacy gateway payload",
			Reading: domain.RawReading{
				Temperature:    f(21),
				RH:             f(75),
				WeeklyRainfall: f(6),
				LeafWetness:    f(9),
			},
		},
	}
}

func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o600)
}
