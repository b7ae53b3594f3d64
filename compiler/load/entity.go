// Package load locates entity types in a parsed metadata document and
// exposes read-only views over their properties and keys.
package load

import (
	"github.com/syssam/odatagen"
	"github.com/syssam/odatagen/schema/edmx"
)

// Entity represents an EntityType node located in a metadata document.
type Entity struct {
	// Name holds the EntityType Name attribute.
	Name string
	// Node is the EntityType element.
	Node *edmx.Node

	keys map[string]struct{}
}

// Property is a read-only view of one Property element.
type Property struct {
	// Entity holds the name of the owning entity type.
	Entity string
	// Node is the Property element.
	Node *edmx.Node
	// Name and Type hold the attributes of the same name. Empty means the
	// attribute is absent.
	Name string
	Type string
	// Nullable holds the raw Nullable attribute.
	Nullable string
	// MaxLength holds the raw MaxLength attribute, HasMaxLength reports
	// whether it was present.
	MaxLength    string
	HasMaxLength bool
	// Key reports whether the property is referenced by the entity key.
	Key bool
}

// Find returns the first EntityType in document order named name.
// It returns an odatagen.NotFoundError if there is none.
func Find(doc *edmx.Document, name string) (*Entity, error) {
	for n := range doc.Descendants() {
		if edmx.IsEntityNamed(n, name) {
			return NewEntity(n), nil
		}
	}
	return nil, odatagen.NewNotFoundError("entity type", name)
}

// NewEntity creates an entity view over an EntityType node. The set of key
// property names is computed once here; PropertyRefs without Name do not
// contribute to it.
func NewEntity(n *edmx.Node) *Entity {
	name, _ := n.Attr("Name")
	e := &Entity{Name: name, Node: n, keys: make(map[string]struct{})}
	for _, ref := range e.KeyRefs() {
		if v, ok := ref.Attr("Name"); ok {
			e.keys[v] = struct{}{}
		}
	}
	return e
}

// IsKey reports whether the named property belongs to the entity key.
func (e *Entity) IsKey(name string) bool {
	_, ok := e.keys[name]
	return ok
}

// KeyRefs returns the PropertyRef elements of the entity in document order.
func (e *Entity) KeyRefs() []*edmx.Node {
	return e.Node.Filter(edmx.IsPropertyRef)
}

// Properties returns views of all descendants accepted by p, in document order.
func (e *Entity) Properties(p edmx.Predicate) []*Property {
	nodes := e.Node.Filter(p)
	props := make([]*Property, 0, len(nodes))
	for _, n := range nodes {
		props = append(props, e.property(n))
	}
	return props
}

func (e *Entity) property(n *edmx.Node) *Property {
	p := &Property{Entity: e.Name, Node: n}
	p.Name, _ = n.Attr("Name")
	p.Type, _ = n.Attr("Type")
	p.Nullable, _ = n.Attr("Nullable")
	p.MaxLength, p.HasMaxLength = n.Attr("MaxLength")
	p.Key = p.Name != "" && e.IsKey(p.Name)
	return p
}

// Usable reports whether the property has both Name and Type. Properties
// that are not usable contribute nothing to generated code.
func (p *Property) Usable() bool {
	return p.Name != "" && p.Type != ""
}

// Required reports whether the property is declared with Nullable="false".
func (p *Property) Required() bool {
	return p.Nullable == "false"
}
