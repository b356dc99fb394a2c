package models

// POIType classifies a point of interest
type POIType string

// Valid POI types
const (
	POITypeCulvert POIType = "culvert"
	POITypePipe    POIType = "pipe"
	POITypeVoid    POIType = "void"
	POITypeAnomaly POIType = "anomaly"
	POITypeOther   POIType = "other"
)

// POITypes lists all valid POI types in a stable order
func POITypes() []POIType {
	return []POIType{POITypeCulvert, POITypePipe, POITypeVoid, POITypeAnomaly, POITypeOther}
}

// Valid reports whether t is one of the enumerated POI types
func (t POIType) Valid() bool {
	switch t {
	case POITypeCulvert, POITypePipe, POITypeVoid, POITypeAnomaly, POITypeOther:
		return true
	}
	return false
}

// POI is an annotated point of interest tied to both slice-pixel and
// geographic coordinates
type POI struct {
	ID         string  `json:"id" db:"id"`
	Type       POIType `json:"type" db:"type"`
	Label      string  `json:"label" db:"label"`
	SliceX     float64 `json:"sliceX" db:"slice_x"`
	SliceY     float64 `json:"sliceY" db:"slice_y"`
	Lat        float64 `json:"lat" db:"lat"`
	Lon        float64 `json:"lon" db:"lon"`
	MileMarker float64 `json:"mileMarker" db:"mile_marker"`
	Notes      string  `json:"notes" db:"notes"`
	CreatedAt  *string `json:"createdAt,omitempty" db:"created_at"`
	UpdatedAt  *string `json:"updatedAt,omitempty" db:"updated_at"`
}

// POIListResponse represents a list of POIs with count
type POIListResponse struct {
	Data  []POI `json:"data"`
	Count int   `json:"count"`
}
