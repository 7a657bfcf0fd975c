package codegen

import (
	"fmt"

	"github.com/rs/zerolog"

	"salad-rustgen/internal/diagnostic"
	"salad-rustgen/internal/module"
	"salad-rustgen/internal/rust"
	"salad-rustgen/internal/schema"
)

// DocumentRootIdent names the enum of all document root types.
const DocumentRootIdent rust.Ident = "DocumentRoot"

// Generator compiles schemas into a Rust module tree.
type Generator struct {
	config  Config
	presets *presetTable
}

// NewGenerator creates a new Generator with the given configuration. Preset
// path strings are parsed here, so a malformed preset fails construction.
func NewGenerator(config Config) (*Generator, error) {
	presets, err := newPresetTable(config.Presets)
	if err != nil {
		return nil, err
	}

	return &Generator{config: config, presets: presets}, nil
}

// Config returns the generator configuration.
func (g *Generator) Config() Config {
	return g.config
}

// Result is the outcome of one compilation.
type Result struct {
	// Root is the crate root of the generated module tree.
	Root *module.Module
	// RootTypes are the paths of documentRoot schemas, in input order.
	RootTypes []rust.Path
	// Diagnostics holds warnings and infos collected during compilation.
	Diagnostics diagnostic.Diagnostics

	layout module.Options
}

// Files renders the module tree to source files.
func (r *Result) Files() ([]module.GeneratedFile, error) {
	return module.Files(r.Root, r.layout)
}

// compilation is the state of one Generate call.
type compilation struct {
	config  Config
	presets *presetTable
	logger  zerolog.Logger
	reg     *registry
	root    *module.Module
	diags   diagnostic.Diagnostics
	roots   []rust.Path

	// renamedModules holds the top-level modules already reported as renamed.
	renamedModules map[rust.Ident]bool
}

func (g *Generator) newCompilation() *compilation {
	return &compilation{
		config:         g.config,
		presets:        g.presets,
		logger:         g.config.Logger,
		reg:            newRegistry(),
		root:           module.NewRoot(),
		renamedModules: make(map[rust.Ident]bool),
	}
}

// Generate compiles schemas, given in ingestion order, into a module tree.
// Any error aborts the whole compilation.
func (g *Generator) Generate(schemas []schema.Named) (*Result, error) {
	c := g.newCompilation()

	c.reg.enqueue(c.filter(schemas))

	if err := c.drain(); err != nil {
		return nil, err
	}

	if err := c.emitDocumentRoot(); err != nil {
		return nil, err
	}

	c.logger.Info().
		Int("types", len(c.reg.resolved)).
		Int("roots", len(c.roots)).
		Int("warnings", len(c.diags.Warnings)).
		Msg("schemas compiled")

	return &Result{
		Root:        c.root,
		RootTypes:   c.roots,
		Diagnostics: c.diags,
		layout:      g.config.Layout(),
	}, nil
}

// filter drops schemas that are never lowered: abstract ones, external ones,
// and ones replaced by a preset.
func (c *compilation) filter(schemas []schema.Named) []schema.Named {
	kept := make([]schema.Named, 0, len(schemas))

	for _, s := range schemas {
		name := s.SchemaName()

		var reason string

		switch {
		case s.SchemaProps().Abstract:
			reason = "abstract"
		case c.isExternal(name):
			reason = "external"
		default:
			if _, ok := c.presets.lookup(name); ok {
				reason = "preset"
			}
		}

		if reason != "" {
			c.diags.AddInfo(diagnostic.CodeSkippedSchema, "skipped "+reason+" schema", name, "")
			c.logger.Debug().Str("schema", name).Str("reason", reason).Msg("skipping schema")

			continue
		}

		kept = append(kept, s)
	}

	return kept
}

// drain lowers queued schemas until the worklist is empty.
func (c *compilation) drain() error {
	for {
		s, ok := c.reg.pop()
		if !ok {
			return nil
		}

		name := s.SchemaName()

		if _, done := c.reg.lookup(name); done {
			c.warn(diagnostic.CodeDuplicateSchema, "schema already resolved, skipping", name, "")
			continue
		}

		item, err := c.lower(s)
		if err != nil {
			return fmt.Errorf("lowering %s: %w", name, err)
		}

		mod := c.root.AddSubmodule(c.moduleIdents(s.SchemaNamespace())...)

		path, err := mod.AddItem(item, name)
		if err != nil {
			return err
		}

		c.reg.resolve(name, path)

		if s.SchemaProps().DocumentRoot {
			c.roots = append(c.roots, path)
		}

		c.logger.Debug().Str("schema", name).Stringer("path", path).Msg("lowered schema")
	}
}

// emitDocumentRoot adds the DocumentRoot enum to the crate root.
func (c *compilation) emitDocumentRoot() error {
	enum := rust.Enum{
		Ident:    DocumentRootIdent,
		Attrs:    []rust.Attribute{c.documentRootAttr(), unionDerives},
		Vis:      rust.VisPublic,
		Variants: c.tupleVariants(c.roots, string(DocumentRootIdent)),
	}

	if _, err := c.root.AddItem(enum, string(DocumentRootIdent)); err != nil {
		return fmt.Errorf("emitting document root: %w", err)
	}

	return nil
}

func (c *compilation) warn(code, message, schemaName, field string) {
	c.diags.AddWarning(code, message, schemaName, field)

	event := c.logger.Warn().Str("code", code).Str("schema", schemaName)
	if field != "" {
		event = event.Str("field", field)
	}

	event.Msg(message)
}
