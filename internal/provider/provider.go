// Package provider defines the survey data contract and its remote and
// fallback implementations. The core never cares which implementation it is
// talking to: synthetic data has exactly the same shape as remote data.
package provider

import (
	"context"

	"github.com/groundscan/gpr-backend-go/internal/models"
)

// DataProvider supplies slice datasets, geographic bounds, and GPS tracks
// for survey dates
type DataProvider interface {
	AvailableDates(ctx context.Context) ([]string, error)
	FetchSlice(ctx context.Context, q models.SliceQuery) (*models.SliceDataset, error)
	FetchBounds(ctx context.Context, date string) (*models.GeoBounds, error)
	FetchTrack(ctx context.Context, f models.TrackFilter) (*models.GPSTrack, error)
	LocationAtTime(ctx context.Context, date, timeOfDay string) (*models.TrackPoint, error)
	HealthCheck(ctx context.Context) (bool, error)
}
