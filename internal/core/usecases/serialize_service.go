package usecases

import (
	"context"
	"fmt"

	"github.com/mikelarr/gpxbide/internal/core/domain"
	"github.com/mikelarr/gpxbide/internal/core/ports"
	"github.com/mikelarr/gpxbide/internal/pkg/metrics"
	"github.com/mikelarr/gpxbide/internal/pkg/xmltree"
)

// SerializeService renders documents back into generic trees and into the
// compact JSON projections.
type SerializeService struct {
	codec ports.TreeCodec
}

// NewSerializeService creates a SerializeService. The codec may be nil if
// callers only ever need trees, not bytes.
func NewSerializeService(codec ports.TreeCodec) *SerializeService {
	return &SerializeService{codec: codec}
}

// ToTree converts a document into a generic tree, element for element: the
// gpx root with version and creator attributes and the namespace, then every
// waypoint, route, and track in container order. Name children and
// extensions are emitted only when non-empty. This direction never fails on
// an in-memory model.
func (s *SerializeService) ToTree(doc *domain.Document) *xmltree.Node {
	tree := documentTree(doc)
	if tree != nil {
		metrics.TreesSerialized.Inc()
	}
	return tree
}

// ToBytes serializes a document all the way to XML bytes through the codec.
func (s *SerializeService) ToBytes(ctx context.Context, doc *domain.Document) ([]byte, error) {
	if s.codec == nil {
		return nil, fmt.Errorf("serialize service has no tree codec")
	}
	return s.codec.Serialize(ctx, s.ToTree(doc))
}

func documentTree(d *domain.Document) *xmltree.Node {
	if d == nil {
		return nil
	}
	root := xmltree.New(tagGPX)
	root.Namespace = d.Namespace
	root.SetAttr(attrVersion, fmt.Sprintf("%.1f", d.Version.Float()))
	root.SetAttr(attrCreator, d.Creator)

	for it := d.Waypoints.Iter(); ; {
		w, ok := it.Next()
		if !ok {
			break
		}
		root.AddChild(waypointTree(w, tagWpt))
	}
	for it := d.Routes.Iter(); ; {
		r, ok := it.Next()
		if !ok {
			break
		}
		root.AddChild(routeTree(r))
	}
	for it := d.Tracks.Iter(); ; {
		t, ok := it.Next()
		if !ok {
			break
		}
		root.AddChild(trackTree(t))
	}
	return root
}

func waypointTree(w *domain.Waypoint, tag string) *xmltree.Node {
	n := xmltree.New(tag)
	n.SetAttr(attrLat, fmt.Sprintf("%f", w.Latitude.Float()))
	n.SetAttr(attrLon, fmt.Sprintf("%f", w.Longitude.Float()))
	if w.Name != "" {
		n.AddText(tagName, w.Name)
	}
	appendExtensions(n, w.Extensions)
	return n
}

func routeTree(r *domain.Route) *xmltree.Node {
	n := xmltree.New(tagRte)
	if r.Name != "" {
		n.AddText(tagName, r.Name)
	}
	appendExtensions(n, r.Extensions)
	for it := r.Waypoints.Iter(); ; {
		w, ok := it.Next()
		if !ok {
			break
		}
		n.AddChild(waypointTree(w, tagRtept))
	}
	return n
}

func trackTree(t *domain.Track) *xmltree.Node {
	n := xmltree.New(tagTrk)
	if t.Name != "" {
		n.AddText(tagName, t.Name)
	}
	appendExtensions(n, t.Extensions)
	for it := t.Segments.Iter(); ; {
		seg, ok := it.Next()
		if !ok {
			break
		}
		segNode := n.AddChild(xmltree.New(tagTrkseg))
		for wit := seg.Waypoints.Iter(); ; {
			w, wok := wit.Next()
			if !wok {
				break
			}
			segNode.AddChild(waypointTree(w, tagTrkpt))
		}
	}
	return n
}

func appendExtensions(n *xmltree.Node, l *domain.List[domain.Extension]) {
	for it := l.Iter(); ; {
		e, ok := it.Next()
		if !ok {
			break
		}
		n.AddText(e.Name, e.Value)
	}
}
