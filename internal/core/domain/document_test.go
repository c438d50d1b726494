package domain_test

import (
	"strings"
	"testing"

	"github.com/mikelarr/gpxbide/internal/core/domain"
)

func sampleDocument() *domain.Document {
	doc := domain.NewDocument("http://www.topografix.com/GPX/1/1",
		domain.Version{Value: 1.1, Set: true}, "unit-test")

	doc.Waypoints.Append(domain.NewWaypoint("home", domain.DegreesOf(43.26), domain.DegreesOf(-2.93)))

	rte := domain.NewRoute("commute")
	rte.AddWaypoint(domain.NewWaypoint("start", domain.DegreesOf(0), domain.DegreesOf(0)))
	rte.AddWaypoint(domain.NewWaypoint("end", domain.DegreesOf(0), domain.DegreesOf(1)))
	doc.AddRoute(rte)

	trk := domain.NewTrack("ride")
	seg := domain.NewSegment()
	seg.Waypoints.Append(domain.NewWaypoint("tp1", domain.DegreesOf(1), domain.DegreesOf(1)))
	trk.Segments.Append(seg)
	doc.Tracks.Append(trk)

	return doc
}

func TestDocument_Counts(t *testing.T) {
	doc := sampleDocument()
	if doc.NumWaypoints() != 1 {
		t.Errorf("expected 1 waypoint, got %d", doc.NumWaypoints())
	}
	if doc.NumRoutes() != 1 {
		t.Errorf("expected 1 route, got %d", doc.NumRoutes())
	}
	if doc.NumTracks() != 1 {
		t.Errorf("expected 1 track, got %d", doc.NumTracks())
	}
	if doc.NumSegments() != 1 {
		t.Errorf("expected 1 segment, got %d", doc.NumSegments())
	}
}

func TestDocument_NumExtensions(t *testing.T) {
	doc := sampleDocument()
	// Named entities each count once: home, commute, start, end, ride, tp1.
	if got := doc.NumExtensions(); got != 6 {
		t.Fatalf("expected 6 counted fields, got %d", got)
	}

	w, _ := doc.FindWaypoint("home")
	w.Extensions.Append(domain.Extension{Name: "ele", Value: "12"})
	if got := doc.NumExtensions(); got != 7 {
		t.Errorf("expected 7 after adding an extension, got %d", got)
	}
}

func TestDocument_FindWaypointOrder(t *testing.T) {
	doc := domain.NewDocument("ns", domain.Version{Value: 1.1, Set: true}, "t")

	inRoute := domain.NewWaypoint("dup", domain.DegreesOf(1), domain.DegreesOf(1))
	rte := domain.NewRoute("r")
	rte.AddWaypoint(inRoute)
	doc.AddRoute(rte)

	inTrack := domain.NewWaypoint("dup", domain.DegreesOf(2), domain.DegreesOf(2))
	trk := domain.NewTrack("t")
	seg := domain.NewSegment()
	seg.Waypoints.Append(inTrack)
	trk.Segments.Append(seg)
	doc.Tracks.Append(trk)

	// Route waypoints are searched before track waypoints.
	got, ok := doc.FindWaypoint("dup")
	if !ok || got != inRoute {
		t.Fatal("expected the route waypoint to win")
	}

	// A top-level waypoint added later still wins: document waypoints come first.
	top := domain.NewWaypoint("dup", domain.DegreesOf(3), domain.DegreesOf(3))
	doc.Waypoints.Append(top)
	got, ok = doc.FindWaypoint("dup")
	if !ok || got != top {
		t.Error("expected the document waypoint to win")
	}

	if _, ok := doc.FindWaypoint("absent"); ok {
		t.Error("expected a miss for an unknown name")
	}
}

func TestDocument_FindRouteAndTrack(t *testing.T) {
	doc := sampleDocument()
	if r, ok := doc.FindRoute("commute"); !ok || r.Name != "commute" {
		t.Error("expected to find route commute")
	}
	if _, ok := doc.FindRoute("nope"); ok {
		t.Error("expected a route miss")
	}
	if tr, ok := doc.FindTrack("ride"); !ok || tr.Name != "ride" {
		t.Error("expected to find track ride")
	}
}

func TestAppendMutators_NilSafe(t *testing.T) {
	var doc *domain.Document
	doc.AddRoute(domain.NewRoute("r")) // must not panic

	var rte *domain.Route
	rte.AddWaypoint(domain.NewWaypoint("w", domain.Coord{}, domain.Coord{}))

	real := sampleDocument()
	real.AddRoute(nil)
	if real.NumRoutes() != 1 {
		t.Error("appending nil must be a no-op")
	}
}

func TestParseCoord(t *testing.T) {
	tests := []struct {
		in      string
		set     bool
		degrees float64
	}{
		{"45.5", true, 45.5},
		{" -2.93 ", true, -2.93},
		{"", false, 0},
		{"abc", false, 0},
		{"12,5", false, 0},
	}
	for _, tt := range tests {
		c := domain.ParseCoord(tt.in)
		if c.Set != tt.set {
			t.Errorf("ParseCoord(%q).Set = %v, expected %v", tt.in, c.Set, tt.set)
		}
		if c.Set && c.Degrees != tt.degrees {
			t.Errorf("ParseCoord(%q) = %v, expected %v", tt.in, c.Degrees, tt.degrees)
		}
	}
	if domain.ParseCoord("junk").Float() != -200.0 {
		t.Error("unset coord must render as the wire fallback")
	}
}

func TestDocument_String(t *testing.T) {
	doc := sampleDocument()
	s := doc.String()
	for _, want := range []string{"namespace: http://www.topografix.com/GPX/1/1", "version: 1.1", "creator: unit-test", "name: commute", "name: ride"} {
		if !strings.Contains(s, want) {
			t.Errorf("document dump missing %q", want)
		}
	}
}
