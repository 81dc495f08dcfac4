// Package dom provides a fault-tolerant handle into a rendered HTML document
// tree. Every query treats a missing element, a detached node, or a selector
// that matches nothing as "not found" — never as an error the caller must
// handle. The seller-orders markup this tool reads is unstable by nature, so
// absence is the normal case, not the exceptional one.
package dom

import (
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Node is one element in a rendered document tree.
//
// Implementations must degrade gracefully: a read against a detached or
// invalid node returns the zero value and false, never panics.
type Node interface {
	// TagName returns the lowercase tag name, or "" if the node is invalid.
	TagName() string
	// Attr returns the named attribute value.
	Attr(name string) (string, bool)
	// Text returns the node's text content, whitespace-trimmed.
	Text() string
	// Parent returns the immediate parent element.
	Parent() (Node, bool)
	// Find returns all descendants matching the selector, in document order.
	Find(selector string) []Node
	// FindFirst returns the first descendant matching the selector.
	FindFirst(selector string) (Node, bool)
	// PrevSibling returns the element immediately preceding this one in
	// sibling order.
	PrevSibling() (Node, bool)
	// Preceding returns the nearest node matching the selector that occurs
	// before this node in document order, anywhere in the document.
	Preceding(selector string) (Node, bool)
}

// Document is a parsed snapshot of a rendered page.
type Document struct {
	doc *goquery.Document
}

// Parse reads an HTML snapshot into a queryable Document.
func Parse(r io.Reader) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}
	return &Document{doc: doc}, nil
}

// ParseString parses an HTML snapshot held in memory.
func ParseString(markup string) (*Document, error) {
	return Parse(strings.NewReader(markup))
}

// Find returns all nodes in the document matching the selector, in document
// order. An invalid selector matches nothing.
func (d *Document) Find(selector string) []Node {
	if d == nil || d.doc == nil {
		return nil
	}
	return splitSelection(d.doc, d.doc.Find(selector))
}

// FindFirst returns the first node in the document matching the selector.
func (d *Document) FindFirst(selector string) (Node, bool) {
	nodes := d.Find(selector)
	if len(nodes) == 0 {
		return nil, false
	}
	return nodes[0], true
}

// element is the goquery-backed Node implementation. It pins a selection to
// exactly one underlying element and keeps the owning document for
// document-order queries.
type element struct {
	doc *goquery.Document
	sel *goquery.Selection
}

var _ Node = element{}

func (e element) valid() bool {
	return e.doc != nil && e.sel != nil && e.sel.Length() > 0
}

// TagName returns the lowercase tag name, or "" if the node is invalid.
func (e element) TagName() string {
	if !e.valid() {
		return ""
	}
	return strings.ToLower(goquery.NodeName(e.sel))
}

// Attr returns the named attribute value.
func (e element) Attr(name string) (string, bool) {
	if !e.valid() {
		return "", false
	}
	return e.sel.Attr(name)
}

// Text returns the node's text content, whitespace-trimmed.
func (e element) Text() string {
	if !e.valid() {
		return ""
	}
	return strings.TrimSpace(e.sel.Text())
}

// Parent returns the immediate parent element.
func (e element) Parent() (Node, bool) {
	if !e.valid() {
		return nil, false
	}
	parent := e.sel.Parent()
	if parent.Length() == 0 {
		return nil, false
	}
	return element{doc: e.doc, sel: parent}, true
}

// Find returns all descendants matching the selector, in document order.
func (e element) Find(selector string) []Node {
	if !e.valid() {
		return nil
	}
	return splitSelection(e.doc, e.sel.Find(selector))
}

// FindFirst returns the first descendant matching the selector.
func (e element) FindFirst(selector string) (Node, bool) {
	if !e.valid() {
		return nil, false
	}
	first := e.sel.Find(selector).First()
	if first.Length() == 0 {
		return nil, false
	}
	return element{doc: e.doc, sel: first}, true
}

// PrevSibling returns the element immediately preceding this one in sibling
// order.
func (e element) PrevSibling() (Node, bool) {
	if !e.valid() {
		return nil, false
	}
	prev := e.sel.Prev()
	if prev.Length() == 0 {
		return nil, false
	}
	return element{doc: e.doc, sel: prev}, true
}

// Preceding returns the nearest node matching the selector that occurs before
// this node in document order, anywhere in the document.
func (e element) Preceding(selector string) (Node, bool) {
	if !e.valid() {
		return nil, false
	}
	self := e.sel.Get(0)
	root := e.doc.Get(0)
	if self == nil || root == nil {
		return nil, false
	}

	// Matches come back in document order, so the last one before this node
	// is the nearest preceding match.
	var nearest *html.Node
	for _, n := range e.doc.Find(selector).Nodes {
		if n == self || !occursBefore(root, n, self) {
			continue
		}
		nearest = n
	}
	if nearest == nil {
		return nil, false
	}
	return element{doc: e.doc, sel: newSingleSelection(e.doc, nearest)}, true
}

// splitSelection fans a multi-node selection out into per-node handles.
func splitSelection(doc *goquery.Document, sel *goquery.Selection) []Node {
	if sel.Length() == 0 {
		return nil
	}
	nodes := make([]Node, 0, sel.Length())
	sel.Each(func(_ int, s *goquery.Selection) {
		nodes = append(nodes, element{doc: doc, sel: s})
	})
	return nodes
}

// newSingleSelection wraps one underlying html node in a fresh selection.
func newSingleSelection(doc *goquery.Document, n *html.Node) *goquery.Selection {
	return doc.FindNodes(n)
}

// occursBefore reports whether a occurs before b in a depth-first traversal
// of the tree rooted at root.
func occursBefore(root, a, b *html.Node) bool {
	found := false
	var walk func(n *html.Node) bool
	walk = func(n *html.Node) bool {
		if n == a {
			found = true
			return true
		}
		if n == b {
			return true
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if walk(c) {
				return true
			}
		}
		return false
	}
	walk(root)
	return found
}
