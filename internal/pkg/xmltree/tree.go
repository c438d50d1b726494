// Package xmltree holds the generic labeled tree exchanged between the
// document core and the external XML engines. It is deliberately dumb: ordered
// elements with ordered attributes, optional text, and a namespace on the
// root. Everything GPX-specific lives above it.
package xmltree

import "strings"

// Attr is a single name/value attribute pair.
type Attr struct {
	Name  string
	Value string
}

// Node is one element of the tree. Children and attributes keep document
// order; Namespace is only meaningful on the root element.
type Node struct {
	Tag       string
	Namespace string
	Attrs     []Attr
	Children  []*Node
	Text      string
}

// New returns an element with the given tag.
func New(tag string) *Node {
	return &Node{Tag: tag}
}

// SetAttr appends an attribute, keeping the order attributes were set in.
func (n *Node) SetAttr(name, value string) *Node {
	n.Attrs = append(n.Attrs, Attr{Name: name, Value: value})
	return n
}

// Attr returns the value of the named attribute and whether it is present.
func (n *Node) Attr(name string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// AddChild appends a child element and returns it for chaining.
func (n *Node) AddChild(child *Node) *Node {
	n.Children = append(n.Children, child)
	return child
}

// AddText appends a child element carrying only text content.
func (n *Node) AddText(tag, text string) *Node {
	return n.AddChild(&Node{Tag: tag, Text: text})
}

// Content returns the element's own text followed by every descendant's
// text, in document order. For a leaf this is just its Text.
func (n *Node) Content() string {
	if len(n.Children) == 0 {
		return n.Text
	}
	var sb strings.Builder
	sb.WriteString(n.Text)
	for _, c := range n.Children {
		sb.WriteString(c.Content())
	}
	return sb.String()
}

// FirstChild returns the first direct child with the given tag, or nil.
func (n *Node) FirstChild(tag string) *Node {
	for _, c := range n.Children {
		if c.Tag == tag {
			return c
		}
	}
	return nil
}
