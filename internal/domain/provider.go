package domain

import "context"

// ClimateProvider supplies a raw climate reading for a coordinate, e.g.
// from a field-station gateway or satellite-derived weather product. The
// returned bag may use legacy field names; callers normalize it.
type ClimateProvider interface {
	FetchReading(ctx context.Context, lat, lon float64) (RawReading, error)
}
