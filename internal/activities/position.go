package activities

import (
	"github.com/golang/geo/s2"
	"github.com/twpayne/go-polyline"
)

// EarthRadiusMeters is the mean earth radius used for great-circle distances.
const EarthRadiusMeters = 6371000.0

var (
	// DefaultCenter is used when no better map center is known (central London).
	DefaultCenter = LatLng{Lat: 51.50, Lng: -0.11}
	// DefaultRadiusMeters is the default position filter radius.
	DefaultRadiusMeters = 5000.0
)

type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// DistanceTo returns the great-circle distance to other, in meters.
func (p LatLng) DistanceTo(other LatLng) float64 {
	from := s2.LatLngFromDegrees(p.Lat, p.Lng)
	to := s2.LatLngFromDegrees(other.Lat, other.Lng)
	return from.Distance(to).Radians() * EarthRadiusMeters
}

func (p LatLng) IsValid() bool {
	return s2.LatLngFromDegrees(p.Lat, p.Lng).IsValid()
}

type PositionFilter struct {
	Center       LatLng  `json:"center"`
	RadiusMeters float64 `json:"radius"`
}

// Matches reports whether any point of the activity route lies strictly within the radius.
// Activities without a map, or with a polyline that does not decode, never match.
func (pf PositionFilter) Matches(a Activity) bool {
	if !a.HasMap() {
		return false
	}

	for _, point := range DecodePolyline(a.Map.SummaryPolyline) {
		if pf.Center.DistanceTo(point) < pf.RadiusMeters {
			return true
		}
	}
	return false
}

// DecodePolyline decodes an encoded route into its points. A malformed polyline yields no points.
func DecodePolyline(encoded string) []LatLng {
	coords, _, err := polyline.DecodeCoords([]byte(encoded))
	if err != nil {
		return nil
	}

	points := make([]LatLng, 0, len(coords))
	for _, c := range coords {
		if len(c) < 2 {
			continue
		}
		points = append(points, LatLng{Lat: c[0], Lng: c[1]})
	}
	return points
}
