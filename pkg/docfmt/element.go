// Package docfmt parses the tree-structured declarative configuration
// document described in spec.md §6 ("Configuration document") — concretely
// XML, per the source repository — into a generic Element tree that the
// Expression Builder and Lookup Table Engine walk independently of any
// particular schema.
package docfmt

import (
	"encoding/xml"
	"io"
	"strings"
)

// Element is one node of a parsed configuration document: a tag name, its
// attributes, any direct text content, and its ordered child elements.
// Unlike a schema-bound struct, Element makes no assumption about which
// tags are legal where — that validation belongs to the builder that
// consumes it (spec.md §4.2's "recognise the tag set" contract).
type Element struct {
	XMLName xml.Name
	Attrs   []xml.Attr `xml:",any,attr"`
	Content string     `xml:",chardata"`
	Kids    []Element  `xml:",any"`
}

// Tag returns the element's local (namespace-stripped) tag name.
func (e *Element) Tag() string { return e.XMLName.Local }

// Attr returns the named attribute's value and whether it was present.
func (e *Element) Attr(name string) (string, bool) {
	for _, a := range e.Attrs {
		if a.Name.Local == name {
			return a.Value, true
		}
	}

	return "", false
}

// Text returns the element's direct character-data content, trimmed of
// surrounding whitespace.
func (e *Element) Text() string {
	return strings.TrimSpace(e.Content)
}

// Children returns the element's ordered child elements. Callers must not
// mutate the returned slice.
func (e *Element) Children() []Element { return e.Kids }

// ChildrenTagged returns the subset of Children whose Tag matches tag, in
// document order.
func (e *Element) ChildrenTagged(tag string) []*Element {
	var out []*Element

	for i := range e.Kids {
		if e.Kids[i].Tag() == tag {
			out = append(out, &e.Kids[i])
		}
	}

	return out
}

// Parse decodes a single root element from r.
func Parse(r io.Reader) (*Element, error) {
	var el Element

	if err := xml.NewDecoder(r).Decode(&el); err != nil {
		return nil, err
	}

	return &el, nil
}
