// Package gen generates Go DTO files from OData entity types.
//
// For every requested entity three struct variants are emitted into one
// file, followed by the list of key property names:
//
//	Customer        every property, tagged with its JSON name
//	CustomerCreate  editable properties, with validation directives
//	CustomerUpdate  same fields as CustomerCreate
//	CustomerKeys    []string of key property names
//
// # Pipeline
//
//	edmx.Document (parsed once)
//	        ↓
//	load.Find → load.Entity
//	        ↓
//	Renderer.EmitVariant ×3 + ExtractKeys
//	        ↓
//	jen.File → imports.Process
//	        ↓
//	Storage.WriteFile (skipped when the artifact exists)
//
// # Usage
//
//	cfg, err := gen.NewConfig(
//		gen.WithTarget("entities"),
//		gen.WithTypes(map[string]string{"Edm.Guid": "github.com/google/uuid.UUID"}),
//	)
//	if err != nil {
//		return err
//	}
//	g, err := gen.NewGenerator(doc, cfg)
//	if err != nil {
//		return err
//	}
//	return g.GenerateAll("Customer", "Sales_Order")
//
// # Errors
//
// Failures are reported with SchemaError, ConfigError and GenerationError,
// which match the sentinels of the odatagen package through errors.Is.
// Unknown entities and already generated artifacts are not errors.
package gen
