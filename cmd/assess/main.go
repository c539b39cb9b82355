// Command assess scores a single climate reading from the command line. It
// reads a JSON reading bag (current or legacy field names) from a file or
// stdin, runs the full risk engine, and prints the ranked disease and pest
// tables plus the aggregate advisory.
//
// Usage:
//
//	go run ./cmd/assess -input reading.json
//	echo '{"temperature": 18, "rh": 90, "weeklyRainfall": 8, "leafWetness": 10}' | \
//	  go run ./cmd/assess -input - -top 5
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/orchardwatch/leaf-risk-service/internal/domain"
)

func main() {
	input := flag.String("input", "", "path to a JSON reading file, or - for stdin")
	mode := flag.String("mode", "", "scoring mode override: standard or meta")
	top := flag.Int("top", 0, "limit ranked lists to the top N entries (0 = all)")
	format := flag.String("format", "text", "output format: text or json")
	flag.Parse()

	if *input == "" {
		flag.Usage()
		os.Exit(1)
	}

	if err := run(*input, *mode, *top, *format); err != nil {
		fmt.Fprintf(os.Stderr, "assess: %v\n", err)
		os.Exit(1)
	}
}

func run(input, mode string, top int, format string) error {
	raw, err := readInput(input)
	if err != nil {
		return err
	}
	if mode != "" {
		raw.Mode = mode
	}

	assessment := domain.NewAssessment(raw.Normalize())
	if top > 0 {
		if top < len(assessment.Diseases) {
			assessment.Diseases = assessment.Diseases[:top]
		}
		if top < len(assessment.Pests) {
			assessment.Pests = assessment.Pests[:top]
		}
	}

	switch format {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(assessment)
	case "text":
		printAssessment(assessment)
		return nil
	default:
		return fmt.Errorf("unknown format %q (want text or json)", format)
	}
}

func readInput(input string) (domain.RawReading, error) {
	var data []byte
	var err error
	if input == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(input)
	}
	if err != nil {
		return domain.RawReading{}, fmt.Errorf("read input: %w", err)
	}

	var raw domain.RawReading
	if err := json.Unmarshal(data, &raw); err != nil {
		return domain.RawReading{}, fmt.Errorf("parse reading: %w", err)
	}
	return raw, nil
}

func printAssessment(a domain.Assessment) {
	fmt.Printf("Assessment %s (%s mode)\n\n", a.ID, a.Reading.Mode)

	printResults("Diseases", a.Diseases)
	printResults("Pests", a.Pests)

	fmt.Printf("Aggregate risk: %d/100 (%s)\n", a.Aggregate.RiskScore, a.Aggregate.RiskLevel)
	for _, rec := range a.Aggregate.Recommendations {
		fmt.Printf("  - %s\n", rec)
	}
}

func printResults(title string, results []domain.RiskResult) {
	fmt.Println(title + ":")
	w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "  NAME\tSCORE\tLEVEL\tMATCHED")
	for _, r := range results {
		fmt.Fprintf(w, "  %s\t%g\t%s\t%s\n", r.Name, r.Score, r.Level, strings.Join(r.MatchedFactors, "; "))
	}
	w.Flush()
	fmt.Println()
}
