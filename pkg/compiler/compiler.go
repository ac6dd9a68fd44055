// Package compiler drives the compilation of definitions into artifacts.
//
// A compilation normalizes the definition, prints it, resolves its substitution slots and
// assembles the artifact. The first error aborts the compilation of that definition.
package compiler

import (
	"fmt"

	"github.com/jensneuse/abstractlogger"
	"github.com/vektah/gqlparser/v2/ast"

	"github.com/wundergraph/cqir/pkg/artifact"
	"github.com/wundergraph/cqir/pkg/document"
	"github.com/wundergraph/cqir/pkg/normalization"
	"github.com/wundergraph/cqir/pkg/printer"
	"github.com/wundergraph/cqir/pkg/resolver"
	"github.com/wundergraph/cqir/pkg/schema"
)

// DefinitionCompiler is implemented by *Compiler and *Cache
type DefinitionCompiler interface {
	Compile(definition *document.Definition, scope resolver.Scope, enableValidation bool) (*artifact.Artifact, error)
}

type Option func(c *Compiler)

func WithLogger(log abstractlogger.Logger) Option {
	return func(c *Compiler) {
		c.log = log
	}
}

// Compiler is safe for concurrent use
type Compiler struct {
	schema *schema.Schema
	config Config
	log    abstractlogger.Logger
}

func New(s *schema.Schema, config Config, options ...Option) *Compiler {
	c := &Compiler{
		schema: s,
		config: config.withDefaults(),
		log:    abstractlogger.NoopLogger,
	}
	for _, option := range options {
		option(c)
	}
	return c
}

// NewFromSchema loads the schema from sources, honoring config.SnakeCase
func NewFromSchema(config Config, sources []*ast.Source, options ...Option) (*Compiler, error) {
	s, err := schema.Load(config.SchemaConfig(), sources...)
	if err != nil {
		return nil, err
	}
	return New(s, config, options...), nil
}

func (c *Compiler) Schema() *schema.Schema {
	return c.schema
}

func (c *Compiler) Config() Config {
	return c.config
}

// Compile compiles one definition. scope answers which fragment modules and properties are bound.
func (c *Compiler) Compile(definition *document.Definition, scope resolver.Scope, enableValidation bool) (*artifact.Artifact, error) {
	normalized, err := normalization.Normalize(definition)
	if err != nil {
		return nil, c.failed(definition, err)
	}
	return c.compileNormalized(definition, normalized, scope, enableValidation)
}

func (c *Compiler) compileNormalized(definition *document.Definition, normalized *normalization.Result, scope resolver.Scope, enableValidation bool) (*artifact.Artifact, error) {
	c.log.Debug("compiler.Compile",
		abstractlogger.String("kind", definition.Kind.String()),
		abstractlogger.String("name", definition.Name),
		abstractlogger.Int("slots", len(normalized.Slots)),
	)

	substitutionParameters, err := printer.RelayVariables(definition)
	if err != nil {
		return nil, c.failed(definition, err)
	}

	p := printer.New(c.schema, printer.Options{
		InputArgumentName: c.config.InputArgumentName,
		EnableValidation:  enableValidation,
		Logger:            c.log,
	})
	root, err := p.Print(normalized.Definition)
	if err != nil {
		return nil, c.failed(definition, err)
	}

	initializers, err := resolver.Resolve(normalized.Slots, scope, substitutionParameters)
	if err != nil {
		return nil, c.failed(definition, err)
	}

	out, err := artifact.Assemble(definition, normalized, root, initializers)
	if err != nil {
		return nil, c.failed(definition, err)
	}
	return out, nil
}

func (c *Compiler) failed(definition *document.Definition, err error) error {
	c.log.Debug("compiler.Compile",
		abstractlogger.String("name", definition.Name),
		abstractlogger.Error(err),
	)
	return err
}

// CompileSource parses source and compiles each of its definitions in source order
func (c *Compiler) CompileSource(name, source string, scope resolver.Scope, enableValidation bool) ([]*artifact.Artifact, error) {
	return compileSource(c, name, source, scope, enableValidation)
}

func compileSource(compiler DefinitionCompiler, name, source string, scope resolver.Scope, enableValidation bool) ([]*artifact.Artifact, error) {
	definitions, err := document.Parse(name, source)
	if err != nil {
		return nil, fmt.Errorf("compiler.CompileSource: %s: %w", name, err)
	}
	artifacts := make([]*artifact.Artifact, 0, len(definitions))
	for _, definition := range definitions {
		out, err := compiler.Compile(definition, scope, enableValidation)
		if err != nil {
			return nil, err
		}
		artifacts = append(artifacts, out)
	}
	return artifacts, nil
}
