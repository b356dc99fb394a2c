package provider

import (
	"context"
	"log"

	"github.com/groundscan/gpr-backend-go/internal/models"
)

// Fallback wraps a primary provider and degrades to a secondary one when the
// primary fails. Transport failures never reach the caller as errors: the
// application stays interactive on sample data instead of presenting an
// empty state.
type Fallback struct {
	primary   DataProvider
	secondary DataProvider
}

// NewFallback creates a fallback provider. primary may be nil, in which case
// every call goes straight to secondary (synthetic-only mode).
func NewFallback(primary, secondary DataProvider) *Fallback {
	return &Fallback{primary: primary, secondary: secondary}
}

// AvailableDates lists dates from the primary, falling back on error
func (f *Fallback) AvailableDates(ctx context.Context) ([]string, error) {
	if f.primary != nil {
		dates, err := f.primary.AvailableDates(ctx)
		if err == nil {
			return dates, nil
		}
		log.Printf("dates fetch failed, using sample data: %v", err)
	}
	return f.secondary.AvailableDates(ctx)
}

// FetchSlice fetches from the primary, falling back on error
func (f *Fallback) FetchSlice(ctx context.Context, q models.SliceQuery) (*models.SliceDataset, error) {
	if f.primary != nil {
		ds, err := f.primary.FetchSlice(ctx, q)
		if err == nil {
			return ds, nil
		}
		log.Printf("slice fetch failed, using sample data: %v", err)
	}
	return f.secondary.FetchSlice(ctx, q)
}

// FetchBounds fetches from the primary, falling back on error
func (f *Fallback) FetchBounds(ctx context.Context, date string) (*models.GeoBounds, error) {
	if f.primary != nil {
		b, err := f.primary.FetchBounds(ctx, date)
		if err == nil {
			return b, nil
		}
		log.Printf("bounds fetch failed, using sample data: %v", err)
	}
	return f.secondary.FetchBounds(ctx, date)
}

// FetchTrack fetches from the primary, falling back on error
func (f *Fallback) FetchTrack(ctx context.Context, filter models.TrackFilter) (*models.GPSTrack, error) {
	if f.primary != nil {
		t, err := f.primary.FetchTrack(ctx, filter)
		if err == nil {
			return t, nil
		}
		log.Printf("track fetch failed, using sample data: %v", err)
	}
	return f.secondary.FetchTrack(ctx, filter)
}

// LocationAtTime fetches from the primary, falling back on error
func (f *Fallback) LocationAtTime(ctx context.Context, date, timeOfDay string) (*models.TrackPoint, error) {
	if f.primary != nil {
		p, err := f.primary.LocationAtTime(ctx, date, timeOfDay)
		if err == nil {
			return p, nil
		}
		log.Printf("location fetch failed, using sample data: %v", err)
	}
	return f.secondary.LocationAtTime(ctx, date, timeOfDay)
}

// HealthCheck reports primary reachability; false (not an error) when the
// primary is absent or down
func (f *Fallback) HealthCheck(ctx context.Context) (bool, error) {
	if f.primary == nil {
		return false, nil
	}
	ok, err := f.primary.HealthCheck(ctx)
	if err != nil {
		return false, nil
	}
	return ok, nil
}
