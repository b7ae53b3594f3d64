package gen

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/dave/jennifer/jen"
	"github.com/sirupsen/logrus"

	"github.com/syssam/odatagen/compiler/load"
	"github.com/syssam/odatagen/schema/edmx"
)

// Variant describes one generated shape of an entity.
type Variant struct {
	// Name is the variant name used in logs and comments.
	Name string
	// Suffix is appended to the entity type name to form the struct name.
	Suffix string
	// Filter selects the properties rendered into the variant.
	Filter edmx.Predicate
	// Validate attaches validation directives to the fields.
	Validate bool
}

// The three variants generated for each entity. Create and Update select
// the same fields.
var (
	Read   = Variant{Name: "read", Filter: edmx.IsProperty}
	Create = Variant{Name: "create", Suffix: "Create", Filter: edmx.IsEditableProperty, Validate: true}
	Update = Variant{Name: "update", Suffix: "Update", Filter: edmx.IsEditableProperty, Validate: true}
)

// Variants returns the variants in emission order.
func Variants() []Variant {
	return []Variant{Read, Create, Update}
}

// Struct is one emitted variant of an entity.
type Struct struct {
	// Entity is the OData entity type name.
	Entity string
	// Name is the Go type name.
	Name    string
	Variant Variant
	Fields  []*Field
}

// EmitVariant renders the properties of e accepted by v.Filter, in
// document order, into a struct. Properties without Name or Type are left out.
func (r *Renderer) EmitVariant(e *load.Entity, v Variant) *Struct {
	s := &Struct{
		Entity:  e.Name,
		Name:    Ident(e.Name) + v.Suffix,
		Variant: v,
	}
	used := make(map[string]bool)
	for _, p := range e.Properties(v.Filter) {
		f, ok := r.RenderField(p)
		if !ok {
			continue
		}
		if base := f.Ident; used[base] {
			for n := 2; used[f.Ident]; n++ {
				f.Ident = base + strconv.Itoa(n)
			}
			r.log.WithFields(logrus.Fields{"entity": e.Name, "property": p.Name}).
				Debugf("field name collides, renamed to %s", f.Ident)
		}
		used[f.Ident] = true
		s.Fields = append(s.Fields, f)
	}
	return s
}

// Code returns the type declaration of the struct with its doc comment.
func (s *Struct) Code() *jen.Statement {
	fields := make([]jen.Code, 0, len(s.Fields))
	for _, f := range s.Fields {
		fields = append(fields, f.Code(s.Variant.Validate))
	}
	return jen.Comment(fmt.Sprintf("%s is the %s shape of the %s entity type.", s.Name, s.Variant.Name, s.Entity)).
		Line().
		Type().Id(s.Name).Struct(fields...)
}

// Lines renders the struct as formatted Go source lines.
func (s *Struct) Lines() ([]string, error) {
	var buf bytes.Buffer
	if err := s.Code().Render(&buf); err != nil {
		return nil, err
	}
	return strings.Split(strings.TrimRight(buf.String(), "\n"), "\n"), nil
}
