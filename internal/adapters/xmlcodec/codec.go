// Package xmlcodec adapts the etree XML engine to the core's TreeCodec port.
package xmlcodec

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/beevik/etree"

	"github.com/mikelarr/gpxbide/internal/pkg/xmltree"
)

// ErrNoRoot is returned when a parsed document has no root element.
var ErrNoRoot = errors.New("xml document has no root element")

// Codec converts between raw XML bytes and the generic tree.
type Codec struct {
	indent int
}

// New creates a codec that writes two-space indented output.
func New() *Codec {
	return &Codec{indent: 2}
}

// Parse reads raw bytes into a generic tree, preserving element and
// attribute order. The root's default namespace declaration becomes the
// tree's namespace rather than a plain attribute.
func (c *Codec) Parse(ctx context.Context, data []byte) (*xmltree.Node, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("parse xml: %w", err)
	}
	root := doc.Root()
	if root == nil {
		return nil, ErrNoRoot
	}
	node := fromElement(root)
	for _, a := range root.Attr {
		if a.Space == "" && a.Key == "xmlns" {
			node.Namespace = a.Value
		}
	}
	return node, nil
}

// Serialize writes a generic tree back to indented XML bytes with an XML
// declaration, the inverse of Parse.
func (c *Codec) Serialize(ctx context.Context, root *xmltree.Node) ([]byte, error) {
	if root == nil {
		return nil, ErrNoRoot
	}
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	el := doc.CreateElement(root.Tag)
	if root.Namespace != "" {
		el.CreateAttr("xmlns", root.Namespace)
	}
	fillElement(el, root)
	doc.Indent(c.indent)
	out, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("serialize xml: %w", err)
	}
	return out, nil
}

func fromElement(el *etree.Element) *xmltree.Node {
	node := xmltree.New(el.Tag)
	for _, a := range el.Attr {
		if a.Space == "" && a.Key == "xmlns" {
			continue
		}
		name := a.Key
		if a.Space != "" {
			name = a.Space + ":" + a.Key
		}
		node.SetAttr(name, a.Value)
	}
	children := el.ChildElements()
	if len(children) == 0 {
		node.Text = strings.TrimSpace(el.Text())
		return node
	}
	for _, child := range children {
		node.AddChild(fromElement(child))
	}
	return node
}

func fillElement(el *etree.Element, node *xmltree.Node) {
	for _, a := range node.Attrs {
		el.CreateAttr(a.Name, a.Value)
	}
	if node.Text != "" {
		el.SetText(node.Text)
	}
	for _, child := range node.Children {
		fillElement(el.CreateElement(child.Tag), child)
	}
}
