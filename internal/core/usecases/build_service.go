// Package usecases implements the GPX document pipeline: building the entity
// graph from a generic tree, validating it, serializing it back out, and the
// geometry-backed queries over it.
package usecases

import (
	"context"
	"errors"
	"log/slog"

	"github.com/mikelarr/gpxbide/internal/core/domain"
	"github.com/mikelarr/gpxbide/internal/core/ports"
	"github.com/mikelarr/gpxbide/internal/pkg/metrics"
	"github.com/mikelarr/gpxbide/internal/pkg/xmltree"
)

// GPX element and attribute names.
const (
	tagGPX      = "gpx"
	tagWpt      = "wpt"
	tagRte      = "rte"
	tagRtept    = "rtept"
	tagTrk      = "trk"
	tagTrkseg   = "trkseg"
	tagTrkpt    = "trkpt"
	tagName     = "name"
	attrVersion = "version"
	attrCreator = "creator"
	attrLat     = "lat"
	attrLon     = "lon"
)

var (
	// ErrNotGPX means the tree's root element is not a gpx document.
	ErrNotGPX = errors.New("root element is not gpx")
	// ErrMissingCreator means the gpx element has no creator attribute.
	// A missing version is tolerated (the validator rejects it later);
	// a missing creator aborts the build.
	ErrMissingCreator = errors.New("gpx element has no creator attribute")
)

// BuildService turns generic trees into typed documents.
type BuildService struct {
	codec ports.TreeCodec
}

// NewBuildService creates a BuildService. The codec may be nil if callers
// only ever build from already-parsed trees.
func NewBuildService(codec ports.TreeCodec) *BuildService {
	return &BuildService{codec: codec}
}

// FromBytes parses raw bytes through the tree codec and builds a document.
func (s *BuildService) FromBytes(ctx context.Context, data []byte) (*domain.Document, error) {
	if s.codec == nil {
		return nil, errors.New("build service has no tree codec")
	}
	root, err := s.codec.Parse(ctx, data)
	if err != nil {
		metrics.BuildFailures.WithLabelValues("parse").Inc()
		return nil, err
	}
	return s.Build(root)
}

// Build converts a generic tree into a document in a single pass over the
// tree in document order. Syntactic problems (wrong root, missing creator)
// fail the build atomically; value problems (bad coordinates, unset version)
// produce a complete document that the validator will reject. On failure no
// document is returned.
func (s *BuildService) Build(root *xmltree.Node) (*domain.Document, error) {
	doc, err := buildDocument(root)
	if err != nil {
		metrics.BuildFailures.WithLabelValues("malformed").Inc()
		return nil, err
	}
	metrics.DocumentsBuilt.Inc()
	slog.Debug("document built",
		"waypoints", doc.NumWaypoints(),
		"routes", doc.NumRoutes(),
		"tracks", doc.NumTracks())
	return doc, nil
}

// buildContext carries the "current open entity" state through the walk.
// Stray segments and points attach to the most recently appended container
// of the right kind; when there is none, an implicit unnamed one is
// synthesized and appended at the back.
type buildContext struct {
	doc     *domain.Document
	track   *domain.Track
	segment *domain.Segment
	route   *domain.Route
}

func buildDocument(root *xmltree.Node) (*domain.Document, error) {
	if root == nil || root.Tag != tagGPX {
		return nil, ErrNotGPX
	}
	creator, ok := root.Attr(attrCreator)
	if !ok || creator == "" {
		return nil, ErrMissingCreator
	}
	version, _ := root.Attr(attrVersion)

	ctx := &buildContext{
		doc: domain.NewDocument(root.Namespace, domain.ParseVersion(version), creator),
	}

	for _, child := range root.Children {
		ctx.element(child)
	}
	return ctx.doc, nil
}

// element dispatches one direct child of the gpx root. Unknown elements
// (metadata and friends) are skipped; the model does not represent them.
// Once the root attributes are in, there are no failure modes left: value
// problems become unset fields for the validator to reject.
func (c *buildContext) element(n *xmltree.Node) {
	switch n.Tag {
	case tagWpt:
		c.doc.Waypoints.Append(buildWaypoint(n))
	case tagRte:
		c.routeElement(n)
	case tagTrk:
		c.trackElement(n)
	case tagTrkseg:
		// A segment outside any trk element: accepted, attached to the
		// open track or to a synthesized unnamed one.
		c.segmentElement(c.openTrack(), n)
	case tagTrkpt:
		c.openSegment().Waypoints.Append(buildWaypoint(n))
	case tagRtept:
		c.openRoute().AddWaypoint(buildWaypoint(n))
	}
}

func (c *buildContext) routeElement(n *xmltree.Node) {
	route := domain.NewRoute(nameOf(n))
	for _, child := range n.Children {
		switch child.Tag {
		case tagName:
			// already consumed by the pre-scan
		case tagRtept:
			route.AddWaypoint(buildWaypoint(child))
		default:
			route.Extensions.Append(domain.Extension{Name: child.Tag, Value: child.Content()})
		}
	}
	c.doc.AddRoute(route)
	c.route = route
}

func (c *buildContext) trackElement(n *xmltree.Node) {
	track := domain.NewTrack(nameOf(n))
	c.doc.Tracks.Append(track)
	c.track = track
	c.segment = nil
	for _, child := range n.Children {
		switch child.Tag {
		case tagName:
			// already consumed by the pre-scan
		case tagTrkseg:
			c.segmentElement(track, child)
		default:
			track.Extensions.Append(domain.Extension{Name: child.Tag, Value: child.Content()})
		}
	}
}

func (c *buildContext) segmentElement(track *domain.Track, n *xmltree.Node) {
	seg := domain.NewSegment()
	track.Segments.Append(seg)
	c.segment = seg
	for _, child := range n.Children {
		if child.Tag == tagTrkpt {
			seg.Waypoints.Append(buildWaypoint(child))
		}
	}
}

// openTrack returns the most recently appended track, synthesizing an
// unnamed one when the document has none yet.
func (c *buildContext) openTrack() *domain.Track {
	if c.track == nil {
		c.track = domain.NewTrack("")
		c.doc.Tracks.Append(c.track)
	}
	return c.track
}

// openSegment returns the most recently appended segment of the open track,
// synthesizing track and segment as needed.
func (c *buildContext) openSegment() *domain.Segment {
	track := c.openTrack()
	if c.segment == nil {
		c.segment = domain.NewSegment()
		track.Segments.Append(c.segment)
	}
	return c.segment
}

// openRoute returns the most recently appended route, synthesizing an
// unnamed one when the document has none yet.
func (c *buildContext) openRoute() *domain.Route {
	if c.route == nil {
		c.route = domain.NewRoute("")
		c.doc.AddRoute(c.route)
	}
	return c.route
}

// buildWaypoint reads a point element (wpt, trkpt, or rtept). Missing or
// unparsable coordinates become unset, never an error here. Every child that
// is not the name field is captured as an extension; a child with element
// children of its own contributes its flattened descendant text.
func buildWaypoint(n *xmltree.Node) *domain.Waypoint {
	lat, _ := n.Attr(attrLat)
	lon, _ := n.Attr(attrLon)
	w := domain.NewWaypoint(nameOf(n), domain.ParseCoord(lat), domain.ParseCoord(lon))
	for _, child := range n.Children {
		if child.Tag == tagName {
			continue
		}
		w.Extensions.Append(domain.Extension{Name: child.Tag, Value: child.Content()})
	}
	return w
}

// nameOf pre-scans an element's direct children for its first name child's
// text. Entities without one are unnamed, represented as the empty string
// so string operations stay safe downstream.
func nameOf(n *xmltree.Node) string {
	if c := n.FirstChild(tagName); c != nil {
		return c.Text
	}
	return ""
}
