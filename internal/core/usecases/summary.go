package usecases

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mikelarr/gpxbide/internal/core/domain"
	"github.com/mikelarr/gpxbide/internal/pkg/geospatial"
	"github.com/mikelarr/gpxbide/internal/pkg/metrics"
)

// summaryLoopDelta is the loop tolerance, in meters, the JSON projections
// use for the loop flag.
const summaryLoopDelta = 10

// defaultNamespace is assigned to documents assembled from JSON, which
// carries no namespace of its own.
const defaultNamespace = "http://www.topografix.com/GPX/1/1"

// The JSON projection is a fixed one-directional format: field order,
// "None" for unnamed entities, one decimal for lengths and versions, six
// decimals for coordinates, lengths rounded up to the next multiple of 10.
// encoding/json cannot pin numeric formatting that way, so the strings are
// composed directly; the inverse functions below do use encoding/json since
// they only read values.

// DocumentJSON renders the document summary object.
func (s *SerializeService) DocumentJSON(doc *domain.Document) string {
	if doc == nil {
		return "{}"
	}
	metrics.SummariesRendered.Inc()
	return fmt.Sprintf(`{"version":%.1f,"creator":"%s","numWaypoints":%d,"numRoutes":%d,"numTracks":%d}`,
		doc.Version.Float(), doc.Creator,
		doc.NumWaypoints(), doc.NumRoutes(), doc.NumTracks())
}

// RouteJSON renders one route: name (or "None"), point count, rounded
// length, loop flag.
func (s *SerializeService) RouteJSON(r *domain.Route) string {
	if r == nil {
		return "{}"
	}
	pts := r.Points()
	return fmt.Sprintf(`{"name":"%s","numPoints":%d,"len":%.1f,"loop":%t}`,
		nameOrNone(r.Name), len(pts),
		geospatial.RoundUp10(geospatial.PathLength(pts)),
		geospatial.IsLoop(pts, summaryLoopDelta))
}

// TrackJSON renders one track: name (or "None"), rounded length, loop flag.
func (s *SerializeService) TrackJSON(t *domain.Track) string {
	if t == nil {
		return "{}"
	}
	pts := t.Points()
	return fmt.Sprintf(`{"name":"%s","len":%.1f,"loop":%t}`,
		nameOrNone(t.Name),
		geospatial.RoundUp10(geospatial.PathLength(pts)),
		geospatial.IsLoop(pts, summaryLoopDelta))
}

// WaypointJSON renders one waypoint: name (or "None") and raw coordinates.
func (s *SerializeService) WaypointJSON(w *domain.Waypoint) string {
	if w == nil {
		return "{}"
	}
	return fmt.Sprintf(`{"name":"%s","latitude":%f,"longitude":%f}`,
		nameOrNone(w.Name), w.Latitude.Float(), w.Longitude.Float())
}

// RouteListJSON renders a route sequence as a JSON array in container order.
func (s *SerializeService) RouteListJSON(it *domain.Cursor[*domain.Route]) string {
	return listJSON(it, s.RouteJSON)
}

// TrackListJSON renders a track sequence as a JSON array in container order.
func (s *SerializeService) TrackListJSON(it *domain.Cursor[*domain.Track]) string {
	return listJSON(it, s.TrackJSON)
}

// WaypointListJSON renders a waypoint sequence as a JSON array.
func (s *SerializeService) WaypointListJSON(it *domain.Cursor[*domain.Waypoint]) string {
	return listJSON(it, s.WaypointJSON)
}

// RoutePointsReport renders every route of the document together with its
// points, keyed wpts1, wpts2, ... in route order.
func (s *SerializeService) RoutePointsReport(doc *domain.Document) string {
	if doc == nil || doc.NumRoutes() == 0 {
		return `{"routes":[],"points":{}}`
	}
	var sb strings.Builder
	sb.WriteString(`{"routes":`)
	sb.WriteString(s.RouteListJSON(doc.Routes.Iter()))
	sb.WriteString(`,"points":{`)
	i := 0
	for it := doc.Routes.Iter(); ; {
		r, ok := it.Next()
		if !ok {
			break
		}
		if i > 0 {
			sb.WriteString(",")
		}
		i++
		fmt.Fprintf(&sb, `"wpts%d":%s`, i, s.WaypointListJSON(r.Waypoints.Iter()))
	}
	sb.WriteString("}}")
	return sb.String()
}

// DocumentFromJSON assembles a minimal document from a summary-style JSON
// object carrying version and creator. The default GPX 1.1 namespace is
// assigned; JSON has nowhere to carry one.
func DocumentFromJSON(data []byte) (*domain.Document, error) {
	var in struct {
		Version float64 `json:"version"`
		Creator string  `json:"creator"`
	}
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, fmt.Errorf("document from json: %w", err)
	}
	return domain.NewDocument(defaultNamespace,
		domain.Version{Value: in.Version, Set: true}, in.Creator), nil
}

// WaypointFromJSON assembles an unnamed waypoint from {"lat":…,"lon":…}.
func WaypointFromJSON(data []byte) (*domain.Waypoint, error) {
	var in struct {
		Lat float64 `json:"lat"`
		Lon float64 `json:"lon"`
	}
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, fmt.Errorf("waypoint from json: %w", err)
	}
	return domain.NewWaypoint("", domain.DegreesOf(in.Lat), domain.DegreesOf(in.Lon)), nil
}

// RouteFromJSON assembles an empty route from {"name":…}.
func RouteFromJSON(data []byte) (*domain.Route, error) {
	var in struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, fmt.Errorf("route from json: %w", err)
	}
	return domain.NewRoute(in.Name), nil
}

func listJSON[T any](it *domain.Cursor[T], render func(T) string) string {
	var sb strings.Builder
	sb.WriteString("[")
	first := true
	for {
		v, ok := it.Next()
		if !ok {
			break
		}
		if !first {
			sb.WriteString(",")
		}
		first = false
		sb.WriteString(render(v))
	}
	sb.WriteString("]")
	return sb.String()
}

func nameOrNone(name string) string {
	if name == "" {
		return "None"
	}
	return name
}
