// Package domain implements the climate-driven risk engine for apple
// orchards: a static catalog of disease and pest definitions, two item
// scorers, a tie-break weighted ranker, and an independent aggregate risk
// analyzer.
//
// # Input Conventions
//
// Readings arrive as loosely-typed bags ([RawReading]) from manual form
// entry or a weather provider. The old field-station gateway used different
// field names, still accepted as aliases:
//
//	rh             → relativeHumidity
//	weeklyRainfall → rainfall
//	leafWetness    → wetnessHours
//
// Normalization never fails. Missing numerics become 0, missing enums
// become "unknown", missing booleans become false, and an unrecognized
// scoring mode falls back to "standard". Absence is policy: a defaulted
// value can never satisfy a positive-bound condition, so an incomplete
// reading simply scores low rather than erroring.
//
// # Scoring
//
// Standard mode counts satisfied boolean conditions; meta mode counts
// satisfied favorable numeric ranges and enum/flag rules. Either way each
// match is worth a flat 20 points and the item score is clamped to 100.
// Five matches saturate the scale; the coarseness is deliberate so that an
// agronomist can reconstruct a score from the matched factor labels.
//
// Disease scores are then multiplied by a fixed per-name weight
// (1.05-1.2, unlisted names 1.0) and re-clamped. The weights break ties
// deterministically between diseases that match the same number of
// conditions; a weight may legitimately push a score across a level
// boundary (60 raw with the 1.2 Fire Blight weight classifies High).
//
// Risk levels: score of 30 and below is Low, 70 and below Medium,
// above 70 High.
//
// # Name Normalization
//
// Upstream advisory tables key weights and prevention tips by display name
// and mix Unicode dash characters freely ("Bull's-eye Rot" with an ASCII
// hyphen vs a non-breaking hyphen). All name-keyed lookups go through
// canonicalName, which folds dash and apostrophe variants to ASCII and
// lowercases, so no lookup can silently miss on punctuation.
//
// # Aggregate Analyzer
//
// [AssessAggregate] is a separate, coarser function for area-of-interest
// advisories. Five factors contribute independently scored bands
// (temperature 25/15, humidity 25/15, wetness 25/15, soil moisture 15/10,
// rainfall 10/5); the maxima sum to exactly 100 so the total needs no
// clamp. Classification: 80+ critical, 60+ high, 40+ medium, else low.
// Recommendations are fixed-order gated messages with a single low-risk
// fallback.
//
// # ID Generation
//
// Assessment IDs are deterministic SHA-256 hashes of the canonical reading.
// Identical readings produce identical IDs, enabling idempotent upserts
// downstream and replay safety. See [NewAssessment].
package domain
