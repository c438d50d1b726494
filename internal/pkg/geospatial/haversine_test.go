package geospatial_test

import (
	"math"
	"testing"

	"github.com/mikelarr/gpxbide/internal/pkg/geospatial"
)

func TestHaversine_OneDegreeAtEquator(t *testing.T) {
	// One degree of longitude at the equator is about 111195 m.
	d := geospatial.Haversine(0, 0, 0, 1)
	if math.Abs(d-111195) > 1 {
		t.Errorf("expected ~111195 m, got %f", d)
	}
}

func TestHaversine_ZeroForSamePoint(t *testing.T) {
	if d := geospatial.Haversine(43.26, -2.93, 43.26, -2.93); d != 0 {
		t.Errorf("expected 0, got %f", d)
	}
}

func TestPathLength(t *testing.T) {
	if geospatial.PathLength(nil) != 0 {
		t.Error("empty path must have length 0")
	}
	one := []geospatial.Point{{Lat: 1, Lon: 1}}
	if geospatial.PathLength(one) != 0 {
		t.Error("single point path must have length 0")
	}

	pts := []geospatial.Point{{Lat: 0, Lon: 0}, {Lat: 0, Lon: 1}}
	l2 := geospatial.PathLength(pts)
	if math.Abs(l2-111195) > 1 {
		t.Errorf("expected ~111195 m, got %f", l2)
	}

	// Appending a point never decreases the length.
	pts = append(pts, geospatial.Point{Lat: 0, Lon: 1})
	if l3 := geospatial.PathLength(pts); l3 < l2 {
		t.Errorf("length decreased from %f to %f after append", l2, l3)
	}
	pts = append(pts, geospatial.Point{Lat: 1, Lon: 1})
	if l4 := geospatial.PathLength(pts); l4 <= l2 {
		t.Errorf("expected growth past %f, got %f", l2, l4)
	}
}

func TestIsLoop(t *testing.T) {
	closed3 := []geospatial.Point{{0, 0}, {1, 0}, {0, 0}}
	closed4 := []geospatial.Point{{0, 0}, {1, 0}, {1, 1}, {0, 0}}
	open4 := []geospatial.Point{{0, 0}, {1, 0}, {1, 1}, {5, 5}}

	tests := []struct {
		name  string
		pts   []geospatial.Point
		delta float64
		want  bool
	}{
		{"three points never loop", closed3, 1e9, false},
		{"closed four points, zero delta", closed4, 0, true},
		{"open four points", open4, 10, false},
		{"negative delta", closed4, -1, false},
		{"empty", nil, 10, false},
	}
	for _, tt := range tests {
		if got := geospatial.IsLoop(tt.pts, tt.delta); got != tt.want {
			t.Errorf("%s: IsLoop = %v, expected %v", tt.name, got, tt.want)
		}
	}
}

func TestRoundUp10(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{0, 0},
		{1, 10},
		{10, 10},
		{10.01, 20},
		{111194.9, 111200},
	}
	for _, tt := range tests {
		if got := geospatial.RoundUp10(tt.in); got != tt.want {
			t.Errorf("RoundUp10(%v) = %v, expected %v", tt.in, got, tt.want)
		}
	}
}
