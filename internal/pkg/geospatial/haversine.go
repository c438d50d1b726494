// Package geospatial provides the great-circle math the GPX core needs:
// pairwise distance, path length over ordered point sequences, loop
// detection, and the rounding rule used by the JSON projections.
package geospatial

import "math"

const earthRadiusM = 6371000.0

// minLoopPoints is the smallest sequence that can close on itself; anything
// shorter is never a loop, regardless of tolerance.
const minLoopPoints = 4

// Point is a geographic coordinate pair (WGS 84) in decimal degrees.
type Point struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Haversine calculates the great-circle distance in meters between two
// points, using a fixed mean Earth radius of 6 371 000 m.
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := toRad(lat2 - lat1)
	dLon := toRad(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusM * c
}

// Distance is Haversine over two Points.
func Distance(a, b Point) float64 {
	return Haversine(a.Lat, a.Lon, b.Lat, b.Lon)
}

// PathLength sums the consecutive pairwise distances of a point sequence in
// order. Sequences of zero or one point have length 0.
func PathLength(pts []Point) float64 {
	var total float64
	for i := 1; i < len(pts); i++ {
		total += Distance(pts[i-1], pts[i])
	}
	return total
}

// IsLoop reports whether a point sequence closes on itself: at least four
// points, with the first and last within delta meters of each other. A
// negative delta never matches.
func IsLoop(pts []Point, delta float64) bool {
	if delta < 0 || len(pts) < minLoopPoints {
		return false
	}
	return Distance(pts[0], pts[len(pts)-1]) <= delta
}

// RoundUp10 rounds a length in meters up to the next multiple of 10.
func RoundUp10(m float64) float64 {
	return math.Ceil(m/10) * 10
}

func toRad(deg float64) float64 {
	return deg * math.Pi / 180
}
