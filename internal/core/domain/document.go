// Package domain holds the GPX entity graph and the ordered containers it is
// built from. Entities are assembled by the build service, checked by the
// validation service, and rendered back out by the serialize service; nothing
// in here touches XML or files.
package domain

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mikelarr/gpxbide/internal/pkg/geospatial"
)

// Wire-compatible fallbacks for fields that were never set. They only
// surface when an unset field has to be rendered; in-memory code tests the
// Set flag, never these values.
const (
	unsetCoordDegrees = -200.0
	unsetVersionValue = -1.0
)

// Coord is an optional coordinate in decimal degrees. A Coord parsed from
// missing or malformed text is simply unset; whether that makes the waypoint
// invalid is the validator's call, not the parser's.
type Coord struct {
	Degrees float64
	Set     bool
}

// ParseCoord reads a decimal-degree attribute value. Empty or unparsable
// text yields an unset Coord.
func ParseCoord(s string) Coord {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return Coord{}
	}
	return Coord{Degrees: f, Set: true}
}

// DegreesOf returns a set Coord with the given value.
func DegreesOf(deg float64) Coord {
	return Coord{Degrees: deg, Set: true}
}

// Float returns the degrees, or the wire fallback when unset.
func (c Coord) Float() float64 {
	if !c.Set {
		return unsetCoordDegrees
	}
	return c.Degrees
}

// Version is the optional GPX format version of a document.
type Version struct {
	Value float64
	Set   bool
}

// ParseVersion reads a version attribute value. Empty or unparsable text
// yields an unset Version.
func ParseVersion(s string) Version {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return Version{}
	}
	return Version{Value: f, Set: true}
}

// Float returns the version number, or the wire fallback when unset.
func (v Version) Float() float64 {
	if !v.Set {
		return unsetVersionValue
	}
	return v.Value
}

// Extension is an arbitrary name/value pair carried through from the source
// document without interpretation.
type Extension struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Waypoint is a single named point. It appears directly on a document, on a
// route, or inside a track segment.
type Waypoint struct {
	Name       string
	Latitude   Coord
	Longitude  Coord
	Extensions *List[Extension]
}

// NewWaypoint creates a waypoint with an empty extension list. An empty name
// means "unnamed"; names are never nil-like.
func NewWaypoint(name string, lat, lon Coord) *Waypoint {
	return &Waypoint{
		Name:       name,
		Latitude:   lat,
		Longitude:  lon,
		Extensions: NewList(ExtensionBehavior),
	}
}

// Point returns the waypoint's coordinates for geometry calculations.
func (w *Waypoint) Point() geospatial.Point {
	return geospatial.Point{Lat: w.Latitude.Float(), Lon: w.Longitude.Float()}
}

func (w *Waypoint) String() string {
	return fmt.Sprintf("\tWaypoint:\n\tname: %s\n\tlat: %f lon: %f\n\n%s",
		w.Name, w.Latitude.Float(), w.Longitude.Float(), w.Extensions.String())
}

// Route is an ordered sequence of waypoints plus any extension data.
type Route struct {
	Name       string
	Waypoints  *List[*Waypoint]
	Extensions *List[Extension]
}

// NewRoute creates a route with empty waypoint and extension lists.
func NewRoute(name string) *Route {
	return &Route{
		Name:       name,
		Waypoints:  NewList(WaypointBehavior),
		Extensions: NewList(ExtensionBehavior),
	}
}

// AddWaypoint appends a waypoint to the route. No validation happens here.
func (r *Route) AddWaypoint(w *Waypoint) {
	if r == nil || w == nil {
		return
	}
	r.Waypoints.Append(w)
}

// Points returns the route's waypoint coordinates in order.
func (r *Route) Points() []geospatial.Point {
	if r == nil {
		return nil
	}
	pts := make([]geospatial.Point, 0, r.Waypoints.Len())
	for it := r.Waypoints.Iter(); ; {
		w, ok := it.Next()
		if !ok {
			break
		}
		pts = append(pts, w.Point())
	}
	return pts
}

func (r *Route) String() string {
	return fmt.Sprintf("\tRoute:\n\tname: %s\n\n%s%s",
		r.Name, r.Waypoints.String(), r.Extensions.String())
}

// Segment is one contiguous run of track points.
type Segment struct {
	Waypoints *List[*Waypoint]
}

// NewSegment creates a segment with an empty waypoint list.
func NewSegment() *Segment {
	return &Segment{Waypoints: NewList(WaypointBehavior)}
}

func (s *Segment) String() string {
	return fmt.Sprintf("\ttrackSegment:\n\n%s", s.Waypoints.String())
}

// Track is an ordered sequence of segments plus any extension data.
type Track struct {
	Name       string
	Segments   *List[*Segment]
	Extensions *List[Extension]
}

// NewTrack creates a track with empty segment and extension lists.
func NewTrack(name string) *Track {
	return &Track{
		Name:       name,
		Segments:   NewList(SegmentBehavior),
		Extensions: NewList(ExtensionBehavior),
	}
}

// Points returns the track's waypoint coordinates, in segment order then
// point order, as one flat sequence.
func (t *Track) Points() []geospatial.Point {
	if t == nil {
		return nil
	}
	var pts []geospatial.Point
	for it := t.Segments.Iter(); ; {
		seg, ok := it.Next()
		if !ok {
			break
		}
		for wit := seg.Waypoints.Iter(); ; {
			w, wok := wit.Next()
			if !wok {
				break
			}
			pts = append(pts, w.Point())
		}
	}
	return pts
}

func (t *Track) String() string {
	return fmt.Sprintf("\tTrack:\n\tname: %s\n\n%s%s",
		t.Name, t.Segments.String(), t.Extensions.String())
}

// Document is the root entity: a namespace, a creator, an optional format
// version, and the top-level waypoint, route, and track sequences. A
// document owns everything below it.
type Document struct {
	Namespace string
	Version   Version
	Creator   string
	Waypoints *List[*Waypoint]
	Routes    *List[*Route]
	Tracks    *List[*Track]
}

// NewDocument creates an empty document. Field requirements (non-empty
// creator, set version) are enforced by the builder and validator, not here.
func NewDocument(namespace string, version Version, creator string) *Document {
	return &Document{
		Namespace: namespace,
		Version:   version,
		Creator:   creator,
		Waypoints: NewList(WaypointBehavior),
		Routes:    NewList(RouteBehavior),
		Tracks:    NewList(TrackBehavior),
	}
}

// AddRoute appends a route to the document. No validation happens here.
func (d *Document) AddRoute(r *Route) {
	if d == nil || r == nil {
		return
	}
	d.Routes.Append(r)
}

// NumWaypoints returns the number of top-level waypoints.
func (d *Document) NumWaypoints() int {
	if d == nil {
		return 0
	}
	return d.Waypoints.Len()
}

// NumRoutes returns the number of routes.
func (d *Document) NumRoutes() int {
	if d == nil {
		return 0
	}
	return d.Routes.Len()
}

// NumTracks returns the number of tracks.
func (d *Document) NumTracks() int {
	if d == nil {
		return 0
	}
	return d.Tracks.Len()
}

// NumSegments returns the number of segments across all tracks.
func (d *Document) NumSegments() int {
	if d == nil {
		return 0
	}
	n := 0
	for it := d.Tracks.Iter(); ; {
		t, ok := it.Next()
		if !ok {
			break
		}
		n += t.Segments.Len()
	}
	return n
}

// NumExtensions counts every extension field in the document, plus one for
// every waypoint, route, and track that carries a non-empty name. The name
// child is stored inline on the entity but is still one piece of optional
// source data, so it counts.
func (d *Document) NumExtensions() int {
	if d == nil {
		return 0
	}
	n := 0
	for it := d.Waypoints.Iter(); ; {
		w, ok := it.Next()
		if !ok {
			break
		}
		n += waypointExtensions(w)
	}
	for it := d.Routes.Iter(); ; {
		r, ok := it.Next()
		if !ok {
			break
		}
		if r.Name != "" {
			n++
		}
		n += r.Extensions.Len()
		for wit := r.Waypoints.Iter(); ; {
			w, wok := wit.Next()
			if !wok {
				break
			}
			n += waypointExtensions(w)
		}
	}
	for it := d.Tracks.Iter(); ; {
		t, ok := it.Next()
		if !ok {
			break
		}
		if t.Name != "" {
			n++
		}
		n += t.Extensions.Len()
		for sit := t.Segments.Iter(); ; {
			seg, sok := sit.Next()
			if !sok {
				break
			}
			for wit := seg.Waypoints.Iter(); ; {
				w, wok := wit.Next()
				if !wok {
					break
				}
				n += waypointExtensions(w)
			}
		}
	}
	return n
}

func waypointExtensions(w *Waypoint) int {
	n := w.Extensions.Len()
	if w.Name != "" {
		n++
	}
	return n
}

// FindWaypoint returns the first waypoint with the given name. The search
// order is fixed: document waypoints, then each route's waypoints in route
// order, then each track's segments' waypoints in track then segment order.
// Duplicate names resolve to the earliest in that order.
func (d *Document) FindWaypoint(name string) (*Waypoint, bool) {
	if d == nil {
		return nil, false
	}
	if w, ok := d.Waypoints.Find(&Waypoint{Name: name}); ok {
		return w, true
	}
	for it := d.Routes.Iter(); ; {
		r, ok := it.Next()
		if !ok {
			break
		}
		if w, found := r.Waypoints.Find(&Waypoint{Name: name}); found {
			return w, true
		}
	}
	for it := d.Tracks.Iter(); ; {
		t, ok := it.Next()
		if !ok {
			break
		}
		for sit := t.Segments.Iter(); ; {
			seg, sok := sit.Next()
			if !sok {
				break
			}
			if w, found := seg.Waypoints.Find(&Waypoint{Name: name}); found {
				return w, true
			}
		}
	}
	return nil, false
}

// FindRoute returns the first route with the given name.
func (d *Document) FindRoute(name string) (*Route, bool) {
	if d == nil {
		return nil, false
	}
	return d.Routes.Find(&Route{Name: name})
}

// FindTrack returns the first track with the given name.
func (d *Document) FindTrack(name string) (*Track, bool) {
	if d == nil {
		return nil, false
	}
	return d.Tracks.Find(&Track{Name: name})
}

func (d *Document) String() string {
	if d == nil {
		return ""
	}
	return fmt.Sprintf("\ndoc:\nnamespace: %s\nversion: %.1f\ncreator: %s\n%s%s%s",
		d.Namespace, d.Version.Float(), d.Creator,
		d.Waypoints.String(), d.Routes.String(), d.Tracks.String())
}

// Per-entity list behaviors. Comparison is by name where entities have one;
// segments compare by their rendered contents, matching how lookups treat a
// segment as nothing but its points.
var (
	ExtensionBehavior = Behavior[Extension]{
		Stringify: func(e Extension) string {
			return fmt.Sprintf("\tgpxData name: %s gpxData value: %s\n\n", e.Name, e.Value)
		},
		Compare: func(a, b Extension) int { return strings.Compare(a.Name, b.Name) },
	}

	WaypointBehavior = Behavior[*Waypoint]{
		Stringify: func(w *Waypoint) string { return w.String() },
		Compare:   func(a, b *Waypoint) int { return strings.Compare(a.Name, b.Name) },
	}

	RouteBehavior = Behavior[*Route]{
		Stringify: func(r *Route) string { return r.String() },
		Compare:   func(a, b *Route) int { return strings.Compare(a.Name, b.Name) },
	}

	SegmentBehavior = Behavior[*Segment]{
		Stringify: func(s *Segment) string { return s.String() },
		Compare:   func(a, b *Segment) int { return strings.Compare(a.String(), b.String()) },
	}

	TrackBehavior = Behavior[*Track]{
		Stringify: func(t *Track) string { return t.String() },
		Compare:   func(a, b *Track) int { return strings.Compare(a.Name, b.Name) },
	}
)
