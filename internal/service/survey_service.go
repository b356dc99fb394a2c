package service

import (
	"context"
	"fmt"

	"github.com/groundscan/gpr-backend-go/internal/geo"
	"github.com/groundscan/gpr-backend-go/internal/models"
	"github.com/groundscan/gpr-backend-go/internal/provider"
	"github.com/groundscan/gpr-backend-go/internal/session"
)

// SurveyService handles business logic for survey data: dates, loads, and
// coordinate lookups against the currently loaded survey
type SurveyService struct {
	provider provider.DataProvider
	loads    *session.Manager
}

// NewSurveyService creates a new survey service
func NewSurveyService(p provider.DataProvider, loads *session.Manager) *SurveyService {
	return &SurveyService{provider: p, loads: loads}
}

// AvailableDates lists survey dates
func (s *SurveyService) AvailableDates(ctx context.Context) ([]string, error) {
	dates, err := s.provider.AvailableDates(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get dates: %w", err)
	}
	return dates, nil
}

// Load runs a full survey load and returns the result with the status line
func (s *SurveyService) Load(ctx context.Context, q models.SliceQuery) (*session.LoadResult, string, error) {
	res, err := s.loads.Load(ctx, q)
	if err != nil {
		return nil, "", err
	}
	return res, s.loads.Status(), nil
}

// Bounds fetches the geographic bounds for a date
func (s *SurveyService) Bounds(ctx context.Context, date string) (*models.GeoBounds, error) {
	return s.provider.FetchBounds(ctx, date)
}

// Track fetches a GPS track
func (s *SurveyService) Track(ctx context.Context, f models.TrackFilter) (*models.GPSTrack, error) {
	return s.provider.FetchTrack(ctx, f)
}

// Location fetches the track point at a time of day
func (s *SurveyService) Location(ctx context.Context, date, timeOfDay string) (*models.TrackPoint, error) {
	return s.provider.LocationAtTime(ctx, date, timeOfDay)
}

// Health reports backend reachability
func (s *SurveyService) Health(ctx context.Context) bool {
	ok, _ := s.provider.HealthCheck(ctx)
	return ok
}

// Position maps a slice-pixel coordinate against the current load. Returns
// nil before any load completes; callers treat that as "not yet available".
func (s *SurveyService) Position(sliceX, sliceY float64) *geo.GeoPosition {
	cur := s.loads.Current()
	if cur == nil {
		return nil
	}
	return geo.SliceToGeo(sliceX, sliceY, cur.Dataset, cur.Track)
}

// Nearest finds the current track's point nearest to (lat, lon), nil when
// nothing is loaded or the click is too far from the line
func (s *SurveyService) Nearest(lat, lon float64) *geo.NearestResult {
	cur := s.loads.Current()
	if cur == nil {
		return nil
	}
	return geo.NearestTrackPoint(lat, lon, cur.Track)
}
