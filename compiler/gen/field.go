package gen

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dave/jennifer/jen"
	"github.com/sirupsen/logrus"

	"github.com/syssam/odatagen/compiler/load"
	"github.com/syssam/odatagen/schema/edmx"
)

// Validation holds the validation directives derived for one property.
//
// Nullable="false" is read as "required". The polarity is kept exactly as
// the generated DTOs have always had it.
type Validation struct {
	Required  bool
	MaxLength int
}

// NewValidation derives the validation directives of a property from its
// Nullable and MaxLength attributes:
//
//	Nullable="false"  MaxLength  directive
//	yes               yes        required,max=N
//	no                yes        max=N
//	yes               no         required
//	no                no         (none)
//
// A MaxLength that is not a positive integer yields no length bound and an
// error describing the value.
func NewValidation(nullable, maxLength string, hasMaxLength bool) (Validation, error) {
	v := Validation{Required: nullable == "false"}
	if !hasMaxLength {
		return v, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(maxLength))
	if err != nil || n <= 0 {
		return v, fmt.Errorf("MaxLength %q is not a positive integer", maxLength)
	}
	v.MaxLength = n
	return v, nil
}

// IsZero reports whether no directive applies.
func (v Validation) IsZero() bool {
	return !v.Required && v.MaxLength == 0
}

// Tag returns the directives in go-playground/validator tag syntax.
func (v Validation) Tag() string {
	var parts []string
	if v.Required {
		parts = append(parts, "required")
	}
	if v.MaxLength > 0 {
		parts = append(parts, "max="+strconv.Itoa(v.MaxLength))
	}
	return strings.Join(parts, ",")
}

// Field is a property rendered as a Go struct field.
type Field struct {
	// Name is the OData property name, used as the JSON key.
	Name string
	// Ident is the Go field name.
	Ident string
	// EDMType is the original Type attribute.
	EDMType string
	// Type is the mapped Go type.
	Type GoType
	// Unmapped is set when EDMType has no mapping and Type is TypeUnknown.
	Unmapped bool
	// Key reports membership in the entity key.
	Key        bool
	Validation Validation
}

// Renderer turns properties into fields and structs. Warnings about a
// property are logged once, however many variants render it. A Renderer is
// not safe for concurrent use.
type Renderer struct {
	types  TypeMap
	log    logrus.FieldLogger
	warned map[*edmx.Node]bool
}

// NewRenderer creates a renderer using the given type table.
func NewRenderer(types TypeMap, log logrus.FieldLogger) *Renderer {
	if types == nil {
		types = NewTypeMap(nil)
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Renderer{types: types, log: log, warned: make(map[*edmx.Node]bool)}
}

// RenderField renders one property. It returns false if the property lacks
// Name or Type.
func (r *Renderer) RenderField(p *load.Property) (*Field, bool) {
	log := r.log.WithFields(logrus.Fields{"entity": p.Entity, "property": p.Name})
	if !p.Usable() {
		log.Debug("skipping property without Name or Type")
		return nil, false
	}
	f := &Field{
		Name:    p.Name,
		Ident:   Ident(p.Name),
		EDMType: p.Type,
		Key:     p.Key,
	}
	first := !r.warned[p.Node]
	r.warned[p.Node] = true
	mapLog := log
	if !first {
		mapLog = nil
	}
	f.Type = r.types.Map(p.Type, mapLog)
	f.Unmapped = f.Type == TypeUnknown && !r.mapsToAny(p.Type)
	v, err := NewValidation(p.Nullable, p.MaxLength, p.HasMaxLength)
	if err != nil {
		if first {
			log.WithError(err).Warn("ignoring length bound")
		} else {
			log.WithError(err).Debug("ignoring length bound")
		}
	}
	f.Validation = v
	return f, true
}

// mapsToAny reports whether edmType is explicitly configured as any.
func (r *Renderer) mapsToAny(edmType string) bool {
	_, ok := r.types.Lookup(edmType)
	return ok
}

// Code returns the struct field declaration. Validation directives are
// attached only when validate is set.
func (f *Field) Code(validate bool) jen.Code {
	tags := map[string]string{"json": f.Name}
	if validate && !f.Validation.IsZero() {
		tags["validate"] = f.Validation.Tag()
	}
	c := jen.Id(f.Ident).Add(f.Type.Code()).Tag(tags)
	var notes []string
	if f.Key {
		notes = append(notes, "key")
	}
	if f.Unmapped {
		notes = append(notes, "unmapped "+f.EDMType)
	}
	if len(notes) > 0 {
		c.Comment(strings.Join(notes, "; "))
	}
	return c
}
