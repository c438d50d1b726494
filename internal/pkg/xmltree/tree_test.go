package xmltree_test

import (
	"testing"

	"github.com/mikelarr/gpxbide/internal/pkg/xmltree"
)

func TestAttrs(t *testing.T) {
	n := xmltree.New("wpt")
	n.SetAttr("lat", "1.0").SetAttr("lon", "2.0")

	if v, ok := n.Attr("lat"); !ok || v != "1.0" {
		t.Errorf("Attr(lat) = %q, %t", v, ok)
	}
	if _, ok := n.Attr("ele"); ok {
		t.Error("absent attribute reported present")
	}
	if len(n.Attrs) != 2 || n.Attrs[0].Name != "lat" || n.Attrs[1].Name != "lon" {
		t.Errorf("attribute order not preserved: %v", n.Attrs)
	}
}

func TestContent(t *testing.T) {
	leaf := xmltree.New("hr")
	leaf.Text = "120"
	if leaf.Content() != "120" {
		t.Errorf("leaf content = %q", leaf.Content())
	}

	ext := xmltree.New("extensions")
	ext.AddText("hr", "120")
	nested := ext.AddChild(xmltree.New("gpxtpx"))
	nested.AddText("cad", "85")
	if got := ext.Content(); got != "12085" {
		t.Errorf("content = %q, expected descendant text in document order", got)
	}

	if xmltree.New("empty").Content() != "" {
		t.Error("empty element must have empty content")
	}
}

func TestChildren(t *testing.T) {
	n := xmltree.New("rte")
	n.AddText("name", "commute")
	child := n.AddChild(xmltree.New("rtept"))
	n.AddText("name", "duplicate")

	if len(n.Children) != 3 {
		t.Fatalf("expected 3 children, got %d", len(n.Children))
	}
	if n.Children[1] != child {
		t.Error("AddChild must return the appended child")
	}
	if got := n.FirstChild("name"); got == nil || got.Text != "commute" {
		t.Error("FirstChild must return the earliest match")
	}
	if n.FirstChild("trkseg") != nil {
		t.Error("FirstChild of an absent tag must be nil")
	}
}
