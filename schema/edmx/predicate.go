package edmx

// Tag and attribute names of the CSDL elements the generator reads.
const (
	TagEntityType  = "EntityType"
	TagProperty    = "Property"
	TagKey         = "Key"
	TagPropertyRef = "PropertyRef"

	// TermAllowEdit is the annotation term that, with Bool="false", marks a
	// property as not editable.
	TermAllowEdit = "NAV.AllowEdit"
)

// Predicate is a boolean query over a schema node.
type Predicate func(*Node) bool

// HasTag reports whether n is an element with the given local name.
func HasTag(n *Node, name string) bool {
	return n != nil && n.Name == name
}

// IsEntityNamed reports whether n is an EntityType whose Name attribute equals name.
func IsEntityNamed(n *Node, name string) bool {
	if !HasTag(n, TagEntityType) {
		return false
	}
	v, ok := n.Attr("Name")
	return ok && v == name
}

// IsProperty reports whether n is a Property element.
func IsProperty(n *Node) bool {
	return HasTag(n, TagProperty)
}

// IsPropertyRef reports whether n is a PropertyRef element.
func IsPropertyRef(n *Node) bool {
	return HasTag(n, TagPropertyRef)
}

// DisallowsEdit reports whether n carries Term="NAV.AllowEdit" and
// Bool="false". Both attributes are required.
func DisallowsEdit(n *Node) bool {
	term, ok := n.Attr("Term")
	if !ok || term != TermAllowEdit {
		return false
	}
	b, ok := n.Attr("Bool")
	return ok && b == "false"
}

// IsEditableProperty reports whether n is a Property with no descendant,
// at any depth, that disallows edit.
func IsEditableProperty(n *Node) bool {
	return IsProperty(n) && n.Find(DisallowsEdit) == nil
}

// And returns a predicate matching nodes that satisfy all ps.
func And(ps ...Predicate) Predicate {
	return func(n *Node) bool {
		for _, p := range ps {
			if !p(n) {
				return false
			}
		}
		return true
	}
}

// Or returns a predicate matching nodes that satisfy any of ps.
func Or(ps ...Predicate) Predicate {
	return func(n *Node) bool {
		for _, p := range ps {
			if p(n) {
				return true
			}
		}
		return false
	}
}

// Not negates p.
func Not(p Predicate) Predicate {
	return func(n *Node) bool { return !p(n) }
}
