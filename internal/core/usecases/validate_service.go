package usecases

import (
	"context"
	"fmt"

	"github.com/mikelarr/gpxbide/internal/core/domain"
	"github.com/mikelarr/gpxbide/internal/core/ports"
	"github.com/mikelarr/gpxbide/internal/pkg/metrics"
)

// Coordinate bounds in decimal degrees.
const (
	minLatitude  = -90.0
	maxLatitude  = 90.0
	minLongitude = -180.0
	maxLongitude = 180.0
)

// ValidationService checks documents against the model invariants and,
// optionally, against an external schema engine.
type ValidationService struct {
	schema ports.SchemaValidator
}

// NewValidationService creates a ValidationService. The schema validator may
// be nil; ValidateDocument then skips the schema step.
func NewValidationService(schema ports.SchemaValidator) *ValidationService {
	return &ValidationService{schema: schema}
}

// ValidateModel walks the document depth-first and reports whether every
// invariant holds. The walk is read-only and short-circuits on the first
// violation. It works the same on freshly built documents and on documents
// assembled programmatically through the append mutators.
func (s *ValidationService) ValidateModel(doc *domain.Document) bool {
	ok := validDocument(doc)
	if ok {
		metrics.Validations.WithLabelValues("valid").Inc()
	} else {
		metrics.Validations.WithLabelValues("invalid").Inc()
	}
	return ok
}

// ValidateDocument serializes the model back to a tree, checks it against
// the given schema through the external engine, and then runs the model
// walk. Both must pass. With no schema engine configured the schema step is
// skipped.
func (s *ValidationService) ValidateDocument(ctx context.Context, doc *domain.Document, schema []byte) (bool, error) {
	if doc == nil {
		return false, nil
	}
	if s.schema != nil && len(schema) > 0 {
		ok, err := s.schema.Validate(ctx, documentTree(doc), schema)
		if err != nil {
			return false, fmt.Errorf("schema validation: %w", err)
		}
		if !ok {
			return false, nil
		}
	}
	return s.ValidateModel(doc), nil
}

func validDocument(d *domain.Document) bool {
	if d == nil || d.Namespace == "" || d.Creator == "" || !d.Version.Set {
		return false
	}
	for it := d.Waypoints.Iter(); ; {
		w, ok := it.Next()
		if !ok {
			break
		}
		if !validWaypoint(w) {
			return false
		}
	}
	for it := d.Routes.Iter(); ; {
		r, ok := it.Next()
		if !ok {
			break
		}
		if !validRoute(r) {
			return false
		}
	}
	for it := d.Tracks.Iter(); ; {
		t, ok := it.Next()
		if !ok {
			break
		}
		if !validTrack(t) {
			return false
		}
	}
	return true
}

func validWaypoint(w *domain.Waypoint) bool {
	if w == nil {
		return false
	}
	if !w.Latitude.Set || w.Latitude.Degrees < minLatitude || w.Latitude.Degrees > maxLatitude {
		return false
	}
	if !w.Longitude.Set || w.Longitude.Degrees < minLongitude || w.Longitude.Degrees > maxLongitude {
		return false
	}
	return validExtensions(w.Extensions)
}

func validRoute(r *domain.Route) bool {
	if r == nil {
		return false
	}
	if !validExtensions(r.Extensions) {
		return false
	}
	for it := r.Waypoints.Iter(); ; {
		w, ok := it.Next()
		if !ok {
			break
		}
		if !validWaypoint(w) {
			return false
		}
	}
	return true
}

func validTrack(t *domain.Track) bool {
	if t == nil {
		return false
	}
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
			if !validWaypoint(w) {
				return false
			}
		}
	}
	return validExtensions(t.Extensions)
}

func validExtensions(l *domain.List[domain.Extension]) bool {
	for it := l.Iter(); ; {
		e, ok := it.Next()
		if !ok {
			break
		}
		if e.Name == "" || e.Value == "" {
			return false
		}
	}
	return true
}
