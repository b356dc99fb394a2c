package geo

import (
	"math"

	"github.com/groundscan/gpr-backend-go/internal/models"
)

// NearestThresholdDegrees is the maximum degree-space distance at which a
// clicked coordinate is considered "on" the track. Roughly 100m at
// mid-latitudes.
const NearestThresholdDegrees = 0.001

// GeoPosition is the result of mapping a slice-pixel coordinate to geography.
// TrackIndex and MileMarker are nil when no GPS track accompanies the slice.
type GeoPosition struct {
	Lat         float64  `json:"lat"`
	Lon         float64  `json:"lon"`
	DepthMeters float64  `json:"depthMeters"`
	MileMarker  *float64 `json:"mileMarker"`
	TrackIndex  *int     `json:"trackIndex"`
}

// NearestResult is the outcome of a nearest-track-point lookup
type NearestResult struct {
	Index    int               `json:"index"`
	Point    models.TrackPoint `json:"point"`
	Distance float64           `json:"distance"` // degree-space, not meters
}

// SliceToGeo converts a slice-pixel coordinate to a geographic position.
// Returns nil when no dataset is loaded. The lat/lon interpolation is a
// straight line between the slice endpoints, which ignores great-circle
// curvature; acceptable for the short segments a single survey covers.
//
// The fraction sliceX/width is the sole join key between slice space and
// track space: the same fraction indexes both the geographic interpolation
// and the GPS track. sliceX is not clamped here, so out-of-range inputs
// extrapolate beyond the bounds.
func SliceToGeo(sliceX, sliceY float64, dataset *models.SliceDataset, track *models.GPSTrack) *GeoPosition {
	if dataset == nil || dataset.Width == 0 || dataset.Height == 0 {
		return nil
	}

	t := sliceX / float64(dataset.Width)
	b := dataset.Bounds

	pos := &GeoPosition{
		Lat: b.StartLat + (b.EndLat-b.StartLat)*t,
		Lon: b.StartLon + (b.EndLon-b.StartLon)*t,
	}

	depthT := sliceY / float64(dataset.Height)
	pos.DepthMeters = b.DepthRange[0] + (b.DepthRange[1]-b.DepthRange[0])*depthT

	if n := track.Len(); n > 0 {
		idx := int(math.Floor(t * float64(n-1)))
		if idx < 0 {
			idx = 0
		}
		if idx > n-1 {
			idx = n - 1
		}
		mile := track.Points[idx].DistanceMiles
		pos.TrackIndex = &idx
		pos.MileMarker = &mile
	}

	return pos
}

// NearestTrackPoint finds the track point closest to (lat, lon) by
// Euclidean distance in degree space, returning nil when the closest point
// is farther than NearestThresholdDegrees. Degree-space distance is not
// geodesically uniform; it is only good enough to decide whether a map
// click landed roughly on the line, which is all callers use it for.
func NearestTrackPoint(lat, lon float64, track *models.GPSTrack) *NearestResult {
	if track.Len() == 0 {
		return nil
	}

	best := -1
	bestDist := math.Inf(1)
	for i, p := range track.Points {
		dLat := p.Lat - lat
		dLon := p.Lon - lon
		d := math.Sqrt(dLat*dLat + dLon*dLon)
		if d < bestDist {
			bestDist = d
			best = i
		}
	}

	if bestDist > NearestThresholdDegrees {
		return nil
	}

	return &NearestResult{
		Index:    best,
		Point:    track.Points[best],
		Distance: bestDist,
	}
}
