// Package unsafeparser is for testing purposes only when error handling is overhead and panics are ok
package unsafeparser

import (
	"github.com/wundergraph/cqir/pkg/document"
	"github.com/wundergraph/cqir/pkg/schema"
)

func ParseDefinition(source string) *document.Definition {
	definition, err := document.ParseDefinition(source)
	if err != nil {
		panic(err)
	}
	return definition
}

func ParseDefinitions(source string) []*document.Definition {
	definitions, err := document.Parse("test.graphql", source)
	if err != nil {
		panic(err)
	}
	return definitions
}

func LoadSchema(input string) *schema.Schema {
	return LoadSchemaWithConfig(input, schema.Config{})
}

func LoadSchemaWithConfig(input string, config schema.Config) *schema.Schema {
	s, err := schema.LoadString(config, input)
	if err != nil {
		panic(err)
	}
	return s
}
