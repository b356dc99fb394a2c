package models

// GeoBounds defines the affine mapping from slice grid indices to geography.
// The slice runs from (StartLat, StartLon) at x=0 to (EndLat, EndLon) at
// x=width, and from DepthRange[0] meters at y=0 to DepthRange[1] at y=height.
type GeoBounds struct {
	StartLat   float64    `json:"startLat"`
	StartLon   float64    `json:"startLon"`
	EndLat     float64    `json:"endLat"`
	EndLon     float64    `json:"endLon"`
	DepthRange [2]float64 `json:"depthRangeMeters"` // [min, max] in meters
}

// SliceDataset is one radar slice: a rectangular intensity grid paired with
// its geographic bounds. Immutable once loaded; replaced wholesale on a new
// query, never mutated in place.
type SliceDataset struct {
	Date      string    `json:"date"`
	Width     int       `json:"width"`
	Height    int       `json:"height"`
	Grid      [][]uint8 `json:"grid"` // Height rows of Width samples, 0-255
	Bounds    GeoBounds `json:"bounds"`
	ZoomLevel int       `json:"zoomLevel"`
	Synthetic bool      `json:"synthetic,omitempty"` // true when generated offline
}

// SliceQuery carries the parameters of a slice data request
type SliceQuery struct {
	Date      string  `form:"date" json:"date"`
	StartLat  float64 `form:"startLat" json:"startLat"`
	StartLon  float64 `form:"startLon" json:"startLon"`
	EndLat    float64 `form:"endLat" json:"endLat"`
	EndLon    float64 `form:"endLon" json:"endLon"`
	ZoomLevel int     `form:"zoomLevel" json:"zoomLevel"`
}

// Viewport is the visible coordinate sub-range of a rendered slice.
// Transient render state, never persisted.
type Viewport struct {
	XRange [2]float64 `json:"xRange"`
	YRange [2]float64 `json:"yRange"`
}
