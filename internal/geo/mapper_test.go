package geo

import (
	"math"
	"testing"

	"github.com/groundscan/gpr-backend-go/internal/models"
)

func testDataset() *models.SliceDataset {
	return &models.SliceDataset{
		Width:  1200,
		Height: 200,
		Bounds: models.GeoBounds{
			StartLat:   42.9647,
			StartLon:   -81.2897,
			EndLat:     43.0556,
			EndLon:     -81.0823,
			DepthRange: [2]float64{0, 5},
		},
	}
}

func testTrack(n int) *models.GPSTrack {
	track := &models.GPSTrack{Date: "2026-05-01"}
	for i := 0; i < n; i++ {
		t := float64(i) / float64(n-1)
		km := 20.0 * t
		track.Points = append(track.Points, models.TrackPoint{
			Index:         i,
			Lat:           42.9647 + (43.0556-42.9647)*t,
			Lon:           -81.2897 + (-81.0823+81.2897)*t,
			DistanceKm:    km,
			DistanceMiles: km / KmPerMile,
		})
	}
	return track
}

func TestSliceToGeoMidpoint(t *testing.T) {
	pos := SliceToGeo(600, 0, testDataset(), nil)
	if pos == nil {
		t.Fatal("expected a position, got nil")
	}
	if math.Abs(pos.Lat-43.01015) > 1e-4 {
		t.Errorf("midpoint lat = %v, want ≈43.0102", pos.Lat)
	}
	if math.Abs(pos.Lon+81.186) > 1e-4 {
		t.Errorf("midpoint lon = %v, want ≈-81.1860", pos.Lon)
	}
	if pos.TrackIndex != nil || pos.MileMarker != nil {
		t.Errorf("expected nil track fields without a track, got %v/%v", pos.TrackIndex, pos.MileMarker)
	}
}

func TestSliceToGeoNilWithoutDataset(t *testing.T) {
	if pos := SliceToGeo(100, 50, nil, nil); pos != nil {
		t.Errorf("expected nil without dataset, got %+v", pos)
	}
}

func TestSliceToGeoLatWithinBounds(t *testing.T) {
	ds := testDataset()
	lo := math.Min(ds.Bounds.StartLat, ds.Bounds.EndLat)
	hi := math.Max(ds.Bounds.StartLat, ds.Bounds.EndLat)

	for x := 0; x < ds.Width; x += 37 {
		pos := SliceToGeo(float64(x), 0, ds, nil)
		if pos.Lat < lo || pos.Lat > hi {
			t.Errorf("x=%d: lat %v outside [%v, %v]", x, pos.Lat, lo, hi)
		}
	}
}

func TestSliceToGeoDepth(t *testing.T) {
	ds := testDataset()
	pos := SliceToGeo(0, 100, ds, nil)
	if math.Abs(pos.DepthMeters-2.5) > 1e-9 {
		t.Errorf("depth at y=100 = %v, want 2.5", pos.DepthMeters)
	}
	pos = SliceToGeo(0, 200, ds, nil)
	if math.Abs(pos.DepthMeters-5) > 1e-9 {
		t.Errorf("depth at y=height = %v, want 5", pos.DepthMeters)
	}
}

func TestSliceToGeoIsPure(t *testing.T) {
	ds := testDataset()
	track := testTrack(50)

	a := SliceToGeo(451, 73, ds, track)
	b := SliceToGeo(451, 73, ds, track)

	if a.Lat != b.Lat || a.Lon != b.Lon || a.DepthMeters != b.DepthMeters ||
		*a.TrackIndex != *b.TrackIndex || *a.MileMarker != *b.MileMarker {
		t.Errorf("repeated calls differ: %+v vs %+v", a, b)
	}
}

func TestTrackIndexAlwaysInRange(t *testing.T) {
	ds := testDataset()
	track := testTrack(17)

	for _, x := range []float64{0, 1, 599, 1199, 1200, 1500, -10} {
		pos := SliceToGeo(x, 0, ds, track)
		if pos.TrackIndex == nil {
			t.Fatalf("x=%v: expected track index", x)
		}
		if *pos.TrackIndex < 0 || *pos.TrackIndex > 16 {
			t.Errorf("x=%v: track index %d out of [0, 16]", x, *pos.TrackIndex)
		}
	}
}

func TestNearestTrackPointExactHit(t *testing.T) {
	track := testTrack(30)

	for _, k := range []int{0, 7, 29} {
		p := track.Points[k]
		res := NearestTrackPoint(p.Lat, p.Lon, track)
		if res == nil {
			t.Fatalf("k=%d: expected a hit", k)
		}
		if res.Index != k {
			t.Errorf("k=%d: got index %d", k, res.Index)
		}
		if res.Distance != 0 {
			t.Errorf("k=%d: got distance %v, want 0", k, res.Distance)
		}
	}
}

func TestNearestTrackPointRejectsFarClick(t *testing.T) {
	track := testTrack(30)
	// Well away from the survey line.
	if res := NearestTrackPoint(44.5, -80.0, track); res != nil {
		t.Errorf("expected nil for a far click, got %+v", res)
	}
}

func TestNearestTrackPointEmptyTrack(t *testing.T) {
	if res := NearestTrackPoint(43.0, -81.2, nil); res != nil {
		t.Errorf("expected nil for nil track, got %+v", res)
	}
	if res := NearestTrackPoint(43.0, -81.2, &models.GPSTrack{}); res != nil {
		t.Errorf("expected nil for empty track, got %+v", res)
	}
}

func TestHaversineDistanceKnownPair(t *testing.T) {
	// London, ON survey endpoints, about 19.6km apart.
	d := HaversineDistance(42.9647, -81.2897, 43.0556, -81.0823)
	if d < 19000 || d > 21000 {
		t.Errorf("distance = %v m, want roughly 19.6km", d)
	}
}

func TestBearingCardinalDirections(t *testing.T) {
	if b := Bearing(43.0, -81.2, 44.0, -81.2); math.Abs(b-0) > 0.5 {
		t.Errorf("due north bearing = %v, want ≈0", b)
	}
	if b := Bearing(43.0, -81.2, 43.0, -80.2); math.Abs(b-90) > 1 {
		t.Errorf("due east bearing = %v, want ≈90", b)
	}
}

func TestDestinationPointRoundTrip(t *testing.T) {
	lat, lon := DestinationPoint(43.0, -81.2, 90, 1000)
	back := HaversineDistance(43.0, -81.2, lat, lon)
	if math.Abs(back-1000) > 1 {
		t.Errorf("destination point 1000m east came back as %v m", back)
	}
}
