package gen

import (
	"fmt"

	"github.com/dave/jennifer/jen"

	"github.com/syssam/odatagen/compiler/load"
)

// ExtractKeys returns the Name attributes of all PropertyRef elements under
// e, in document order and with duplicates kept. A PropertyRef without Name
// fails the whole extraction with a SchemaError.
func ExtractKeys(e *load.Entity) ([]string, error) {
	refs := e.KeyRefs()
	keys := make([]string, 0, len(refs))
	for i, ref := range refs {
		name, ok := ref.Attr("Name")
		if !ok || name == "" {
			return nil, NewSchemaError(e.Name, "", fmt.Sprintf("PropertyRef #%d has no Name", i+1), nil)
		}
		keys = append(keys, name)
	}
	return keys, nil
}

// KeysName returns the name of the generated key list variable.
func KeysName(entity string) string {
	return Ident(entity) + "Keys"
}

// keysCode declares the key list of an entity.
func keysCode(entity string, keys []string) *jen.Statement {
	values := make([]jen.Code, 0, len(keys))
	for _, k := range keys {
		values = append(values, jen.Lit(k))
	}
	name := KeysName(entity)
	return jen.Comment(fmt.Sprintf("%s lists the key properties of %s in declaration order.", name, entity)).
		Line().
		Var().Id(name).Op("=").Index().String().Values(values...)
}
