package gen

import (
	"go/token"
	"maps"
	"strings"

	"github.com/dave/jennifer/jen"
	"github.com/sirupsen/logrus"
)

// GoType identifies a Go type in generated code.
type GoType struct {
	// PkgPath is the import path of the declaring package, empty for builtins.
	PkgPath string
	// Ident is the type name within its package.
	Ident string
}

// TypeUnknown is emitted for EDM types that have no mapping.
var TypeUnknown = GoType{Ident: "any"}

// String returns the type as written in Go source, e.g. "time.Time".
func (t GoType) String() string {
	if t.PkgPath == "" {
		return t.Ident
	}
	return pkgName(t.PkgPath) + "." + t.Ident
}

// Code returns the jennifer code for the type.
func (t GoType) Code() jen.Code {
	if t.PkgPath == "" {
		return jen.Id(t.Ident)
	}
	return jen.Qual(t.PkgPath, t.Ident)
}

// ParseGoType parses a type reference of the form "ident" or
// "import/path.Ident", e.g. "github.com/google/uuid.UUID".
func ParseGoType(s string) (GoType, error) {
	s = strings.TrimSpace(s)
	slash := strings.LastIndex(s, "/")
	dot := strings.LastIndex(s, ".")
	var t GoType
	if dot > slash {
		t = GoType{PkgPath: s[:dot], Ident: s[dot+1:]}
	} else {
		t = GoType{Ident: s}
	}
	if !token.IsIdentifier(t.Ident) || (t.PkgPath == "" && slash >= 0) || strings.HasSuffix(t.PkgPath, "/") {
		return GoType{}, NewConfigError("Types", s, "invalid Go type reference; use ident or import/path.Ident")
	}
	return t, nil
}

// builtinTypes is the fixed EDM to Go type table.
var builtinTypes = map[string]GoType{
	"Edm.String":  {Ident: "string"},
	"Edm.Boolean": {Ident: "bool"},
	"Edm.Date":    {PkgPath: "time", Ident: "Time"},
	"Edm.Int32":   {Ident: "uint32"},
}

// TypeMap converts EDM primitive type names to Go types.
type TypeMap map[string]GoType

// NewTypeMap returns the builtin table extended by extra. Entries in extra
// take precedence.
func NewTypeMap(extra map[string]GoType) TypeMap {
	m := make(TypeMap, len(builtinTypes)+len(extra))
	maps.Copy(m, builtinTypes)
	maps.Copy(m, extra)
	return m
}

// Lookup returns the Go type for edmType and whether a mapping exists.
func (m TypeMap) Lookup(edmType string) (GoType, bool) {
	t, ok := m[edmType]
	return t, ok
}

// Map returns the Go type for edmType. Unknown types are logged to log and
// mapped to TypeUnknown.
func (m TypeMap) Map(edmType string, log logrus.FieldLogger) GoType {
	if t, ok := m.Lookup(edmType); ok {
		return t
	}
	if log != nil {
		log.WithField("type", edmType).Warn("no Go type for EDM type, emitting any")
	}
	return TypeUnknown
}
