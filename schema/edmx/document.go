package edmx

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"iter"
	"strings"

	"github.com/syssam/odatagen"
)

// Node is one element of a parsed metadata document.
type Node struct {
	// Name is the local tag name, without namespace prefix.
	Name string
	// Space is the resolved namespace URI of the element.
	Space string
	// Attrs holds the element attributes in document order.
	Attrs []xml.Attr
	// Children holds the child elements in document order.
	Children []*Node

	parent *Node
}

// Attr returns the value of the first attribute with the given local name.
func (n *Node) Attr(name string) (string, bool) {
	if n == nil {
		return "", false
	}
	for _, a := range n.Attrs {
		if a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}

// Parent returns the enclosing element, or nil for the root.
func (n *Node) Parent() *Node {
	if n == nil {
		return nil
	}
	return n.parent
}

// Descendants iterates over all elements below n in depth-first document
// order. n itself is not included.
func (n *Node) Descendants() iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		if n != nil {
			n.walk(yield)
		}
	}
}

func (n *Node) walk(yield func(*Node) bool) bool {
	for _, c := range n.Children {
		if !yield(c) || !c.walk(yield) {
			return false
		}
	}
	return true
}

// Find returns the first descendant matching p, or nil.
func (n *Node) Find(p Predicate) *Node {
	for d := range n.Descendants() {
		if p(d) {
			return d
		}
	}
	return nil
}

// Filter returns all descendants matching p in document order.
func (n *Node) Filter(p Predicate) []*Node {
	var nodes []*Node
	for d := range n.Descendants() {
		if p(d) {
			nodes = append(nodes, d)
		}
	}
	return nodes
}

// String returns a short description of the node for log messages.
func (n *Node) String() string {
	if n == nil {
		return "<nil>"
	}
	if name, ok := n.Attr("Name"); ok {
		return fmt.Sprintf("%s[Name=%s]", n.Name, name)
	}
	return n.Name
}

// Document is a parsed metadata document. It owns all nodes and is never
// mutated after Parse returns.
type Document struct {
	root *Node
}

// Root returns the document element.
func (d *Document) Root() *Node {
	return d.root
}

// Descendants iterates over the document element and everything below it in
// depth-first document order.
func (d *Document) Descendants() iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		if d == nil || d.root == nil {
			return
		}
		if yield(d.root) {
			d.root.walk(yield)
		}
	}
}

// Find returns the first node of the document matching p, or nil.
func (d *Document) Find(p Predicate) *Node {
	for n := range d.Descendants() {
		if p(n) {
			return n
		}
	}
	return nil
}

// ParseError reports a document that is not well-formed XML.
type ParseError struct {
	// Offset is the input byte offset where decoding stopped.
	Offset int64
	// Line is the input line for syntax errors, 0 if unknown.
	Line    int
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	var b strings.Builder
	b.WriteString("odatagen: malformed metadata")
	if e.Line > 0 {
		fmt.Fprintf(&b, " at line %d", e.Line)
	} else {
		fmt.Fprintf(&b, " at offset %d", e.Offset)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches odatagen.ErrMalformedMetadata.
func (e *ParseError) Is(target error) bool {
	return target == odatagen.ErrMalformedMetadata
}

// ParseBytes parses a metadata document held in memory.
func ParseBytes(data []byte) (*Document, error) {
	return Parse(bytes.NewReader(data))
}

// Parse reads a whole XML document from r and builds its element tree.
// Character data, comments and processing instructions are dropped.
func Parse(r io.Reader) (*Document, error) {
	dec := xml.NewDecoder(r)
	var (
		root  *Node
		stack []*Node
	)
	fail := func(msg string, cause error) error {
		pe := &ParseError{Offset: dec.InputOffset(), Message: msg, Cause: cause}
		var se *xml.SyntaxError
		if errors.As(cause, &se) {
			pe.Line = se.Line
		}
		return pe
	}
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fail("", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			n := &Node{
				Name:  t.Name.Local,
				Space: t.Name.Space,
				Attrs: t.Copy().Attr,
			}
			if len(stack) == 0 {
				if root != nil {
					return nil, fail("multiple root elements", nil)
				}
				root = n
			} else {
				parent := stack[len(stack)-1]
				n.parent = parent
				parent.Children = append(parent.Children, n)
			}
			stack = append(stack, n)
		case xml.EndElement:
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if len(stack) == 0 && len(bytes.TrimSpace(t)) > 0 {
				return nil, fail("character data outside the root element", nil)
			}
		}
	}
	switch {
	case root == nil:
		return nil, fail("no root element", nil)
	case len(stack) > 0:
		return nil, fail("unclosed element "+stack[len(stack)-1].Name, nil)
	}
	return &Document{root: root}, nil
}
