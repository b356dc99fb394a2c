package models

// TrackPoint represents one GPS sample along a survey path
type TrackPoint struct {
	Index         int     `json:"index"`
	Lat           float64 `json:"lat"`
	Lon           float64 `json:"lon"`
	DistanceKm    float64 `json:"distanceKm"`    // cumulative from track start
	DistanceMiles float64 `json:"distanceMiles"` // cumulative from track start
	Timestamp     string  `json:"timestamp"`     // ISO 8601
	Elevation     float64 `json:"elevationMeters"`
	Speed         float64 `json:"speedKmh"`
}

// GPSTrack is an ordered sequence of track points, monotonically
// non-decreasing in cumulative distance. Replaced wholesale on a new
// query, never mutated element-wise.
type GPSTrack struct {
	Date   string       `json:"date"`
	Points []TrackPoint `json:"points"`
}

// Len returns the number of points in the track
func (t *GPSTrack) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Points)
}

// TrackFilter represents optional spatial filters for a track query
type TrackFilter struct {
	Date   string   `form:"date" json:"date"`
	MinLat *float64 `form:"minLat" json:"minLat,omitempty"`
	MaxLat *float64 `form:"maxLat" json:"maxLat,omitempty"`
	MinLon *float64 `form:"minLon" json:"minLon,omitempty"`
	MaxLon *float64 `form:"maxLon" json:"maxLon,omitempty"`
}
