package gen

import (
	"bytes"
	"regexp"

	"github.com/dave/jennifer/jen"
	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"
	"golang.org/x/tools/imports"

	"github.com/syssam/odatagen/compiler/load"
	"github.com/syssam/odatagen/schema/edmx"
)

// Import paths every artifact imports: date-time, deserialization and
// validation facilities.
const (
	timePkg      = "time"
	jsonPkg      = "encoding/json"
	validatorPkg = "github.com/go-playground/validator/v10"
)

// Artifact is the generated output for one entity.
type Artifact struct {
	// Entity is the OData entity type name.
	Entity string
	// File is the artifact name within the storage.
	File string
	// Structs holds the read, create and update variants in that order.
	Structs []*Struct
	// Keys holds the key property names. Nil when KeyErr is set.
	Keys []string
	// KeyErr is the key extraction failure, if any. The key list is then
	// omitted from Source.
	KeyErr error
	// Source is the formatted Go file.
	Source []byte
}

// Generator drives artifact generation for entities of one metadata document.
// Entities are generated sequentially; the document is never mutated.
type Generator struct {
	doc      *edmx.Document
	config   *Config
	log      logrus.FieldLogger
	renderer *Renderer
}

// NewGenerator creates a generator over doc.
//
// Example:
//
//	cfg, err := gen.NewConfig(gen.WithTarget("entities"))
//	if err != nil {
//		return err
//	}
//	g, err := gen.NewGenerator(doc, cfg)
//	if err != nil {
//		return err
//	}
//	return g.GenerateAll("Customer", "Item")
func NewGenerator(doc *edmx.Document, c *Config) (*Generator, error) {
	if doc == nil || doc.Root() == nil {
		return nil, NewConfigError("Document", nil, "metadata document is required")
	}
	if c == nil {
		return nil, NewConfigError("Config", nil, "config is required")
	}
	if err := c.defaults(); err != nil {
		return nil, err
	}
	return &Generator{
		doc:      doc,
		config:   c,
		log:      c.Logger,
		renderer: NewRenderer(NewTypeMap(c.Types), c.Logger),
	}, nil
}

// Generate produces and persists the artifact of the named entity.
//
// It returns nil and no error when the entity does not exist (a warning is
// logged) or when an artifact for it already exists; existing artifacts are
// never overwritten. Persistence failures are returned as GenerationError.
func (g *Generator) Generate(name string) (*Artifact, error) {
	log := g.log.WithField("entity", name)
	e, err := load.Find(g.doc, name)
	if err != nil {
		log.Warn("entity type not found in metadata")
		return nil, nil
	}
	file := FileName(e.Name)
	if file == "" {
		return nil, NewGenerationError(name, "render", "", "entity name has no alphanumeric characters", nil)
	}
	log = log.WithField("file", file)
	exists, err := g.config.Storage.Exists(file)
	if err != nil {
		return nil, NewGenerationError(name, "write", file, "check existing artifact", err)
	}
	if exists {
		if owner := g.artifactOwner(file); owner != "" && owner != e.Name {
			log.WithField("owner", owner).Warn("artifact file belongs to another entity type, skipping")
		} else {
			log.Debug("artifact already exists, skipping")
		}
		return nil, nil
	}
	a, err := g.Build(e)
	if err != nil {
		return nil, err
	}
	if err := g.config.Storage.WriteFile(a.File, a.Source); err != nil {
		return nil, NewGenerationError(name, "write", file, "persist artifact", err)
	}
	log.Debug("artifact written")
	return a, nil
}

// GenerateAll generates the named entities in order. A failing entity does
// not stop the batch; all failures are returned together.
func (g *Generator) GenerateAll(names ...string) error {
	var result *multierror.Error
	for _, name := range names {
		g.log.WithField("entity", name).Debug("generating")
		if _, err := g.Generate(name); err != nil {
			g.log.WithField("entity", name).WithError(err).Error("generation failed")
			result = multierror.Append(result, err)
		}
	}
	return result.ErrorOrNil()
}

// Build renders the artifact of e without persisting it.
func (g *Generator) Build(e *load.Entity) (*Artifact, error) {
	a := &Artifact{Entity: e.Name, File: FileName(e.Name)}
	for _, v := range Variants() {
		a.Structs = append(a.Structs, g.renderer.EmitVariant(e, v))
	}
	a.Keys, a.KeyErr = ExtractKeys(e)
	if a.KeyErr != nil {
		g.log.WithField("entity", e.Name).WithError(a.KeyErr).Error("omitting key list")
	}

	f := jen.NewFile(g.config.Package)
	f.HeaderComment(g.config.Header)
	f.ImportName(validatorPkg, "validator")
	for _, s := range a.Structs {
		f.Add(s.Code())
		f.Line()
	}
	if a.KeyErr == nil {
		f.Add(keysCode(e.Name, a.Keys))
		f.Line()
	}
	f.Var().Defs(
		jen.Id("_").Op("=").Qual(timePkg, "Time").Values(),
		jen.Id("_").Op("=").Qual(jsonPkg, "Unmarshal"),
		jen.Id("_").Op("=").Qual(validatorPkg, "New"),
	)

	var buf bytes.Buffer
	if err := f.Render(&buf); err != nil {
		return nil, NewGenerationError(e.Name, "render", a.File, "render artifact", err)
	}
	src, err := imports.Process(a.File, buf.Bytes(), &imports.Options{
		Comments:   true,
		TabIndent:  true,
		TabWidth:   8,
		FormatOnly: true,
	})
	if err != nil {
		return nil, NewGenerationError(e.Name, "format", a.File, "format artifact", err)
	}
	a.Source = src
	return a, nil
}

// ownerRE matches the doc comment of a generated read struct.
var ownerRE = regexp.MustCompile(`(?m)^// \S+ is the read shape of the (\S+) entity type\.$`)

// artifactOwner returns the entity type an existing generated artifact was
// produced for, or "" if that cannot be told.
func (g *Generator) artifactOwner(file string) string {
	rd, ok := g.config.Storage.(Reader)
	if !ok {
		return ""
	}
	data, err := rd.ReadFile(file)
	if err != nil {
		return ""
	}
	if m := ownerRE.FindSubmatch(data); m != nil {
		return string(m[1])
	}
	return ""
}

// Document returns the metadata document the generator reads.
func (g *Generator) Document() *edmx.Document {
	return g.doc
}

// Config returns the generator configuration.
func (g *Generator) Config() *Config {
	return g.config
}
