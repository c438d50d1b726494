package usecases

import (
	"math"

	"github.com/mikelarr/gpxbide/internal/core/domain"
	"github.com/mikelarr/gpxbide/internal/pkg/geospatial"
)

// QueryService answers geometry questions over a document: lengths, loops,
// and proximity searches. Results that alias document entities come back as
// non-owning views.
type QueryService struct{}

// NewQueryService creates a QueryService.
func NewQueryService() *QueryService {
	return &QueryService{}
}

// RouteLength returns a route's path length in meters.
func (q *QueryService) RouteLength(r *domain.Route) float64 {
	return geospatial.PathLength(r.Points())
}

// TrackLength returns a track's path length in meters, spanning all
// segments as one sequence.
func (q *QueryService) TrackLength(t *domain.Track) float64 {
	return geospatial.PathLength(t.Points())
}

// IsLoopRoute reports whether the route closes on itself within delta.
func (q *QueryService) IsLoopRoute(r *domain.Route, delta float64) bool {
	return geospatial.IsLoop(r.Points(), delta)
}

// IsLoopTrack reports whether the track closes on itself within delta.
func (q *QueryService) IsLoopTrack(t *domain.Track, delta float64) bool {
	return geospatial.IsLoop(t.Points(), delta)
}

// RoutesWithLength counts routes whose length is within delta of target.
// Negative target or delta counts nothing.
func (q *QueryService) RoutesWithLength(doc *domain.Document, target, delta float64) int {
	if doc == nil || target < 0 || delta < 0 {
		return 0
	}
	n := 0
	for it := doc.Routes.Iter(); ; {
		r, ok := it.Next()
		if !ok {
			break
		}
		if math.Abs(q.RouteLength(r)-target) <= delta {
			n++
		}
	}
	return n
}

// TracksWithLength counts tracks whose length is within delta of target.
// Negative target or delta counts nothing.
func (q *QueryService) TracksWithLength(doc *domain.Document, target, delta float64) int {
	if doc == nil || target < 0 || delta < 0 {
		return 0
	}
	n := 0
	for it := doc.Tracks.Iter(); ; {
		t, ok := it.Next()
		if !ok {
			break
		}
		if math.Abs(q.TrackLength(t)-target) <= delta {
			n++
		}
	}
	return n
}

// RoutesBetween returns a view of the routes whose first point is within
// delta of the source coordinate and whose last point is within delta of
// the destination coordinate, in insertion order. Routes without points
// never match. An empty view means no matches; that is not an error.
func (q *QueryService) RoutesBetween(doc *domain.Document, srcLat, srcLon, dstLat, dstLon, delta float64) *domain.View[*domain.Route] {
	view := domain.NewView(domain.RouteBehavior)
	if doc == nil {
		return view
	}
	src := geospatial.Point{Lat: srcLat, Lon: srcLon}
	dst := geospatial.Point{Lat: dstLat, Lon: dstLon}
	for it := doc.Routes.Iter(); ; {
		r, ok := it.Next()
		if !ok {
			break
		}
		if endpointsNear(r.Points(), src, dst, delta) {
			view.Add(r)
		}
	}
	return view
}

// TracksBetween is RoutesBetween over tracks; a track's first and last
// points span all of its segments.
func (q *QueryService) TracksBetween(doc *domain.Document, srcLat, srcLon, dstLat, dstLon, delta float64) *domain.View[*domain.Track] {
	view := domain.NewView(domain.TrackBehavior)
	if doc == nil {
		return view
	}
	src := geospatial.Point{Lat: srcLat, Lon: srcLon}
	dst := geospatial.Point{Lat: dstLat, Lon: dstLon}
	for it := doc.Tracks.Iter(); ; {
		t, ok := it.Next()
		if !ok {
			break
		}
		if endpointsNear(t.Points(), src, dst, delta) {
			view.Add(t)
		}
	}
	return view
}

func endpointsNear(pts []geospatial.Point, src, dst geospatial.Point, delta float64) bool {
	if len(pts) == 0 {
		return false
	}
	return geospatial.Distance(src, pts[0]) <= delta &&
		geospatial.Distance(dst, pts[len(pts)-1]) <= delta
}
