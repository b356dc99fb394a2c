package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/groundscan/gpr-backend-go/internal/models"
)

// Client talks to the remote survey data service over HTTP
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a client for the service at baseURL
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// get performs a GET request and decodes the JSON body into out
func (c *Client) get(ctx context.Context, path string, query url.Values, out interface{}) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach survey service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("survey service returned status %d for %s", resp.StatusCode, path)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response from %s: %w", path, err)
	}

	return nil
}

// AvailableDates fetches the list of survey dates
func (c *Client) AvailableDates(ctx context.Context) ([]string, error) {
	var dates []string
	if err := c.get(ctx, "/dates", nil, &dates); err != nil {
		return nil, err
	}
	return dates, nil
}

// FetchSlice fetches a slice dataset for the query
func (c *Client) FetchSlice(ctx context.Context, q models.SliceQuery) (*models.SliceDataset, error) {
	zoom := q.ZoomLevel
	if zoom < 1 {
		zoom = 1
	}
	query := url.Values{
		"date":      {q.Date},
		"startLat":  {strconv.FormatFloat(q.StartLat, 'f', -1, 64)},
		"startLon":  {strconv.FormatFloat(q.StartLon, 'f', -1, 64)},
		"endLat":    {strconv.FormatFloat(q.EndLat, 'f', -1, 64)},
		"endLon":    {strconv.FormatFloat(q.EndLon, 'f', -1, 64)},
		"zoomLevel": {strconv.Itoa(zoom)},
	}

	var ds models.SliceDataset
	if err := c.get(ctx, "/slice", query, &ds); err != nil {
		return nil, err
	}
	return &ds, nil
}

// FetchBounds fetches the geographic bounds for a date
func (c *Client) FetchBounds(ctx context.Context, date string) (*models.GeoBounds, error) {
	var b models.GeoBounds
	if err := c.get(ctx, "/bounds", url.Values{"date": {date}}, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

// FetchTrack fetches the GPS track for a date with optional spatial filters
func (c *Client) FetchTrack(ctx context.Context, f models.TrackFilter) (*models.GPSTrack, error) {
	query := url.Values{"date": {f.Date}}
	if f.MinLat != nil {
		query.Set("minLat", strconv.FormatFloat(*f.MinLat, 'f', -1, 64))
	}
	if f.MaxLat != nil {
		query.Set("maxLat", strconv.FormatFloat(*f.MaxLat, 'f', -1, 64))
	}
	if f.MinLon != nil {
		query.Set("minLon", strconv.FormatFloat(*f.MinLon, 'f', -1, 64))
	}
	if f.MaxLon != nil {
		query.Set("maxLon", strconv.FormatFloat(*f.MaxLon, 'f', -1, 64))
	}

	var t models.GPSTrack
	if err := c.get(ctx, "/track", query, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// LocationAtTime fetches the track point at a given time of day
func (c *Client) LocationAtTime(ctx context.Context, date, timeOfDay string) (*models.TrackPoint, error) {
	var p models.TrackPoint
	if err := c.get(ctx, "/location", url.Values{"date": {date}, "time": {timeOfDay}}, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// HealthCheck reports whether the remote service is reachable
func (c *Client) HealthCheck(ctx context.Context) (bool, error) {
	var status struct {
		Status string `json:"status"`
	}
	if err := c.get(ctx, "/health", nil, &status); err != nil {
		return false, err
	}
	return true, nil
}
