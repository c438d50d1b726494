package usecases_test

import (
	"context"
	"errors"
	"testing"

	"github.com/mikelarr/gpxbide/internal/core/domain"
	"github.com/mikelarr/gpxbide/internal/core/usecases"
	"github.com/mikelarr/gpxbide/internal/pkg/xmltree"
)

type mockSchemaValidator struct {
	ok   bool
	err  error
	seen *xmltree.Node
}

func (m *mockSchemaValidator) Validate(ctx context.Context, root *xmltree.Node, schema []byte) (bool, error) {
	m.seen = root
	return m.ok, m.err
}

func validFixture() *domain.Document {
	doc := domain.NewDocument("http://www.topografix.com/GPX/1/1",
		domain.Version{Value: 1.1, Set: true}, "gpxbide-test")
	doc.Waypoints.Append(domain.NewWaypoint("A", domain.DegreesOf(45.0), domain.DegreesOf(-75.0)))

	r := domain.NewRoute("commute")
	r.AddWaypoint(domain.NewWaypoint("p1", domain.DegreesOf(0.0), domain.DegreesOf(0.0)))
	r.AddWaypoint(domain.NewWaypoint("p2", domain.DegreesOf(0.0), domain.DegreesOf(1.0)))
	r.Extensions.Append(domain.Extension{Name: "cmt", Value: "scenic"})
	doc.AddRoute(r)

	t := domain.NewTrack("ride")
	seg := domain.NewSegment()
	seg.Waypoints.Append(domain.NewWaypoint("", domain.DegreesOf(1.0), domain.DegreesOf(1.0)))
	t.Segments.Append(seg)
	doc.Tracks.Append(t)
	return doc
}

func TestValidateModel(t *testing.T) {
	svc := usecases.NewValidationService(nil)

	tests := []struct {
		name   string
		mutate func(d *domain.Document)
		want   bool
	}{
		{"valid fixture", func(d *domain.Document) {}, true},
		{"empty namespace", func(d *domain.Document) { d.Namespace = "" }, false},
		{"empty creator", func(d *domain.Document) { d.Creator = "" }, false},
		{"unset version", func(d *domain.Document) { d.Version = domain.Version{} }, false},
		{"unset latitude", func(d *domain.Document) {
			w, _ := d.Waypoints.Last()
			w.Latitude = domain.Coord{}
		}, false},
		{"latitude above range", func(d *domain.Document) {
			w, _ := d.Waypoints.Last()
			w.Latitude = domain.DegreesOf(90.5)
		}, false},
		{"longitude below range", func(d *domain.Document) {
			w, _ := d.Waypoints.Last()
			w.Longitude = domain.DegreesOf(-180.5)
		}, false},
		{"boundary coordinates valid", func(d *domain.Document) {
			w, _ := d.Waypoints.Last()
			w.Latitude = domain.DegreesOf(-90.0)
			w.Longitude = domain.DegreesOf(180.0)
		}, true},
		{"route point bad coordinate", func(d *domain.Document) {
			r, _ := d.FindRoute("commute")
			w, _ := r.Waypoints.Last()
			w.Longitude = domain.Coord{}
		}, false},
		{"track point bad coordinate", func(d *domain.Document) {
			tr, _ := d.FindTrack("ride")
			seg, _ := tr.Segments.Last()
			w, _ := seg.Waypoints.Last()
			w.Latitude = domain.Coord{}
		}, false},
		{"extension with empty value", func(d *domain.Document) {
			r, _ := d.FindRoute("commute")
			r.Extensions.Append(domain.Extension{Name: "cmt", Value: ""})
		}, false},
		{"extension with empty name", func(d *domain.Document) {
			tr, _ := d.FindTrack("ride")
			tr.Extensions.Append(domain.Extension{Name: "", Value: "x"})
		}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := validFixture()
			tt.mutate(doc)
			if got := svc.ValidateModel(doc); got != tt.want {
				t.Errorf("ValidateModel() = %t, expected %t", got, tt.want)
			}
		})
	}
}

func TestValidateModel_NilDocument(t *testing.T) {
	if usecases.NewValidationService(nil).ValidateModel(nil) {
		t.Error("nil document must be invalid")
	}
}

func TestValidateModel_DoesNotMutate(t *testing.T) {
	svc := usecases.NewValidationService(nil)
	doc := validFixture()
	before := doc.String()
	svc.ValidateModel(doc)
	svc.ValidateModel(doc)
	if doc.String() != before {
		t.Error("validation must be read-only")
	}
	if !svc.ValidateModel(doc) {
		t.Error("validation must be repeatable")
	}
}

func TestValidateDocument_SchemaEngine(t *testing.T) {
	doc := validFixture()
	schema := []byte("<xs:schema/>")

	t.Run("both pass", func(t *testing.T) {
		mock := &mockSchemaValidator{ok: true}
		ok, err := usecases.NewValidationService(mock).ValidateDocument(context.Background(), doc, schema)
		if err != nil || !ok {
			t.Fatalf("expected valid, got ok=%t err=%v", ok, err)
		}
		if mock.seen == nil || mock.seen.Tag != "gpx" {
			t.Error("schema engine must receive the serialized tree")
		}
	})

	t.Run("schema rejects", func(t *testing.T) {
		ok, err := usecases.NewValidationService(&mockSchemaValidator{ok: false}).
			ValidateDocument(context.Background(), doc, schema)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if ok {
			t.Error("schema rejection must fail the whole validation")
		}
	})

	t.Run("engine error propagates", func(t *testing.T) {
		engineErr := errors.New("schema not well formed")
		_, err := usecases.NewValidationService(&mockSchemaValidator{err: engineErr}).
			ValidateDocument(context.Background(), doc, schema)
		if !errors.Is(err, engineErr) {
			t.Errorf("expected wrapped engine error, got %v", err)
		}
	})

	t.Run("no engine skips the schema step", func(t *testing.T) {
		ok, err := usecases.NewValidationService(nil).ValidateDocument(context.Background(), doc, schema)
		if err != nil || !ok {
			t.Errorf("expected model-only validation to pass, got ok=%t err=%v", ok, err)
		}
	})

	t.Run("schema pass does not mask model violations", func(t *testing.T) {
		bad := validFixture()
		bad.Version = domain.Version{}
		ok, err := usecases.NewValidationService(&mockSchemaValidator{ok: true}).
			ValidateDocument(context.Background(), bad, schema)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if ok {
			t.Error("model walk must still run after the schema step")
		}
	})
}
