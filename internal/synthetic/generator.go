// Package synthetic generates offline survey data. Its output is
// shape-identical to what the remote service returns, so nothing downstream
// can tell sample data from real data except by the Synthetic flag.
package synthetic

import (
	"context"
	"fmt"
	"hash/fnv"
	"math"
	"math/rand"
	"time"

	"github.com/groundscan/gpr-backend-go/internal/geo"
	"github.com/groundscan/gpr-backend-go/internal/models"
)

// Default grid dimensions for generated slices
const (
	DefaultWidth  = 1200
	DefaultHeight = 200
)

// Provider serves deterministic synthetic survey data. Implements the same
// contract as the remote client: the same date always yields the same slice
// and track.
type Provider struct {
	Width  int
	Height int
}

// NewProvider creates a synthetic provider with default grid dimensions
func NewProvider() *Provider {
	return &Provider{Width: DefaultWidth, Height: DefaultHeight}
}

// seedFor derives a stable RNG seed from a date string
func seedFor(date string) int64 {
	h := fnv.New64a()
	h.Write([]byte(date))
	return int64(h.Sum64())
}

// AvailableDates returns a fixed set of sample survey dates
func (p *Provider) AvailableDates(ctx context.Context) ([]string, error) {
	return []string{"2026-05-01", "2026-05-14", "2026-06-02"}, nil
}

// HealthCheck always reports reachable
func (p *Provider) HealthCheck(ctx context.Context) (bool, error) {
	return true, nil
}

// FetchBounds returns the geographic bounds for a date
func (p *Provider) FetchBounds(ctx context.Context, date string) (*models.GeoBounds, error) {
	rng := rand.New(rand.NewSource(seedFor(date)))

	// A survey segment a few km long, somewhere around London, ON.
	startLat := 42.9 + rng.Float64()*0.2
	startLon := -81.3 + rng.Float64()*0.2
	bearing := rng.Float64() * 360
	endLat, endLon := geo.DestinationPoint(startLat, startLon, bearing, 3000+rng.Float64()*2000)

	return &models.GeoBounds{
		StartLat:   startLat,
		StartLon:   startLon,
		EndLat:     endLat,
		EndLon:     endLon,
		DepthRange: [2]float64{0, 5},
	}, nil
}

// FetchSlice generates a slice dataset for the query. When the query carries
// corner coordinates they are used as bounds; otherwise bounds are derived
// from the date.
func (p *Provider) FetchSlice(ctx context.Context, q models.SliceQuery) (*models.SliceDataset, error) {
	bounds := models.GeoBounds{
		StartLat:   q.StartLat,
		StartLon:   q.StartLon,
		EndLat:     q.EndLat,
		EndLon:     q.EndLon,
		DepthRange: [2]float64{0, 5},
	}
	if q.StartLat == 0 && q.StartLon == 0 && q.EndLat == 0 && q.EndLon == 0 {
		b, err := p.FetchBounds(ctx, q.Date)
		if err != nil {
			return nil, err
		}
		bounds = *b
	}

	zoom := q.ZoomLevel
	if zoom < 1 {
		zoom = 1
	}

	return &models.SliceDataset{
		Date:      q.Date,
		Width:     p.Width,
		Height:    p.Height,
		Grid:      p.generateGrid(seedFor(q.Date)),
		Bounds:    bounds,
		ZoomLevel: zoom,
		Synthetic: true,
	}, nil
}

// generateGrid builds a radargram-looking intensity grid: horizontal soil
// strata, background speckle, and a handful of buried-object reflection
// hyperbolas.
func (p *Provider) generateGrid(seed int64) [][]uint8 {
	rng := rand.New(rand.NewSource(seed))

	grid := make([][]uint8, p.Height)
	for y := range grid {
		row := make([]uint8, p.Width)
		// Strata: intensity decays with depth, banded.
		base := 160.0 * math.Exp(-float64(y)/float64(p.Height)*2.5)
		band := 25 * math.Sin(float64(y)/7.0)
		for x := range row {
			v := base + band + rng.Float64()*30
			row[x] = clampByte(v)
		}
		grid[y] = row
	}

	// Reflection hyperbolas from discrete buried objects.
	nObjects := 4 + rng.Intn(4)
	for i := 0; i < nObjects; i++ {
		cx := rng.Intn(p.Width)
		cy := 20 + rng.Intn(p.Height-40)
		spread := 15 + rng.Float64()*25
		for dx := -60; dx <= 60; dx++ {
			x := cx + dx
			if x < 0 || x >= p.Width {
				continue
			}
			y := cy + int(float64(dx*dx)/spread)
			for w := 0; w < 3; w++ {
				yy := y + w
				if yy >= 0 && yy < p.Height {
					grid[yy][x] = clampByte(float64(grid[yy][x]) + 90 - math.Abs(float64(dx)))
				}
			}
		}
	}

	return grid
}

func clampByte(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// FetchTrack generates a GPS track following the slice bounds for the date,
// with cumulative haversine distances and mild cross-track jitter
func (p *Provider) FetchTrack(ctx context.Context, f models.TrackFilter) (*models.GPSTrack, error) {
	bounds, err := p.FetchBounds(ctx, f.Date)
	if err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(seedFor(f.Date) + 1))

	const n = 200
	start, _ := time.Parse("2006-01-02", f.Date)
	if start.IsZero() {
		start = time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	}
	start = start.Add(9 * time.Hour) // survey runs start mid-morning

	// Walk the survey line from start to end along its initial bearing,
	// with mild cross-track jitter.
	heading := geo.Bearing(bounds.StartLat, bounds.StartLon, bounds.EndLat, bounds.EndLon)
	lineMeters := geo.HaversineDistance(bounds.StartLat, bounds.StartLon, bounds.EndLat, bounds.EndLon)

	track := &models.GPSTrack{Date: f.Date}
	var cumKm float64
	prevLat, prevLon := bounds.StartLat, bounds.StartLon

	for i := 0; i < n; i++ {
		t := float64(i) / float64(n-1)
		lat, lon := geo.DestinationPoint(bounds.StartLat, bounds.StartLon, heading, lineMeters*t)
		lat += (rng.Float64() - 0.5) * 0.00002
		lon += (rng.Float64() - 0.5) * 0.00002

		if i > 0 {
			cumKm += geo.HaversineDistance(prevLat, prevLon, lat, lon) / 1000
		}
		prevLat, prevLon = lat, lon

		track.Points = append(track.Points, models.TrackPoint{
			Index:         i,
			Lat:           lat,
			Lon:           lon,
			DistanceKm:    cumKm,
			DistanceMiles: cumKm / geo.KmPerMile,
			Timestamp:     start.Add(time.Duration(i) * 15 * time.Second).Format(time.RFC3339),
			Elevation:     240 + 5*math.Sin(t*4*math.Pi) + rng.Float64(),
			Speed:         4 + rng.Float64()*2,
		})
	}

	filterInPlace(track, f)
	return track, nil
}

// filterInPlace applies optional spatial filters to a generated track
func filterInPlace(track *models.GPSTrack, f models.TrackFilter) {
	if f.MinLat == nil && f.MaxLat == nil && f.MinLon == nil && f.MaxLon == nil {
		return
	}
	var kept []models.TrackPoint
	for _, p := range track.Points {
		if f.MinLat != nil && p.Lat < *f.MinLat {
			continue
		}
		if f.MaxLat != nil && p.Lat > *f.MaxLat {
			continue
		}
		if f.MinLon != nil && p.Lon < *f.MinLon {
			continue
		}
		if f.MaxLon != nil && p.Lon > *f.MaxLon {
			continue
		}
		kept = append(kept, p)
	}
	track.Points = kept
}

// LocationAtTime returns the track point nearest the given time of day
func (p *Provider) LocationAtTime(ctx context.Context, date, timeOfDay string) (*models.TrackPoint, error) {
	track, err := p.FetchTrack(ctx, models.TrackFilter{Date: date})
	if err != nil {
		return nil, err
	}
	if len(track.Points) == 0 {
		return nil, fmt.Errorf("no track points for %s", date)
	}

	want, err := time.Parse("15:04:05", timeOfDay)
	if err != nil {
		return nil, fmt.Errorf("failed to parse time %q: %w", timeOfDay, err)
	}

	best := 0
	bestDiff := math.Inf(1)
	for i, pt := range track.Points {
		ts, err := time.Parse(time.RFC3339, pt.Timestamp)
		if err != nil {
			continue
		}
		diff := math.Abs(float64(ts.Hour()*3600+ts.Minute()*60+ts.Second()) -
			float64(want.Hour()*3600+want.Minute()*60+want.Second()))
		if diff < bestDiff {
			bestDiff = diff
			best = i
		}
	}

	pt := track.Points[best]
	return &pt, nil
}
