// Package query validates user-supplied survey query parameters before any
// request is dispatched. A validation failure aborts the whole submission;
// there is no partial request.
package query

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Params is a raw, unparsed query as submitted by the user
type Params struct {
	Date     string
	StartLat string
	StartLon string
	EndLat   string
	EndLon   string
}

// Validated carries the parsed coordinates of a valid query
type Validated struct {
	Date     string
	StartLat float64
	StartLon float64
	EndLat   float64
	EndLon   float64
}

// Validate checks that the date is non-empty and that all four corner
// coordinates parse as finite numbers. Returns a user-facing error message
// on the first violation.
func Validate(p Params) (*Validated, error) {
	if strings.TrimSpace(p.Date) == "" {
		return nil, fmt.Errorf("date is required")
	}

	coords := []struct {
		name  string
		value string
	}{
		{"start latitude", p.StartLat},
		{"start longitude", p.StartLon},
		{"end latitude", p.EndLat},
		{"end longitude", p.EndLon},
	}

	parsed := make([]float64, len(coords))
	for i, c := range coords {
		v, err := strconv.ParseFloat(strings.TrimSpace(c.value), 64)
		if err != nil {
			return nil, fmt.Errorf("%s is not a valid number", c.name)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%s must be finite", c.name)
		}
		parsed[i] = v
	}

	return &Validated{
		Date:     strings.TrimSpace(p.Date),
		StartLat: parsed[0],
		StartLon: parsed[1],
		EndLat:   parsed[2],
		EndLon:   parsed[3],
	}, nil
}
