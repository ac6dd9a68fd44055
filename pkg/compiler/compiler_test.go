package compiler

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vektah/gqlparser/v2/ast"

	"github.com/wundergraph/cqir/internal/pkg/testschema"
	"github.com/wundergraph/cqir/internal/pkg/unsafeparser"
	"github.com/wundergraph/cqir/internal/pkg/unsafeprinter"
	"github.com/wundergraph/cqir/pkg/artifact"
	"github.com/wundergraph/cqir/pkg/cqir"
	"github.com/wundergraph/cqir/pkg/normalization"
	"github.com/wundergraph/cqir/pkg/operationreport"
	"github.com/wundergraph/cqir/pkg/resolver"
)

func newCompiler() *Compiler {
	return New(unsafeparser.LoadSchema(testschema.Social), DefaultConfig())
}

func assertCode(t *testing.T, err error, code operationreport.Code) {
	t.Helper()
	require.Error(t, err)
	assert.True(t, errors.Is(err, operationreport.Sentinel(code)), err.Error())
}

func TestCompiler_Compile(t *testing.T) {
	compiler := newCompiler()
	scope := resolver.MapScope{"Profile": resolver.BindingImported}

	t.Run("query", func(t *testing.T) {
		out, err := compiler.Compile(unsafeparser.ParseDefinition(`query Q { me { ...Profile_user } }`), scope, true)
		require.NoError(t, err)
		assert.Equal(t, artifact.KindOperationDefinition, out.Kind)
		assert.Equal(t, "query", out.Operation)
		require.Len(t, out.Substitutions, 1)
		assert.Equal(t, "Profile_user", out.Substitutions[0].SlotName())
	})
	t.Run("validation is optional", func(t *testing.T) {
		definition := unsafeparser.ParseDefinition(`query Q { me { name } viewer { actor { __typename } } }`)

		_, err := compiler.Compile(definition, scope, true)
		assertCode(t, err, operationreport.CodeTooManyRootFields)

		out, err := compiler.Compile(definition, scope, false)
		require.NoError(t, err)
		query, ok := out.Node.(*cqir.Query)
		require.True(t, ok)
		assert.Equal(t, "me", query.FieldName)
	})
	t.Run("normalization error", func(t *testing.T) {
		_, err := compiler.Compile(unsafeparser.ParseDefinition(`query Q { me { ...Profile_user @include(if: true) } }`), scope, true)
		assertCode(t, err, operationreport.CodeUnsupportedSpreadDirective)
	})
	t.Run("unresolved fragment", func(t *testing.T) {
		_, err := compiler.Compile(unsafeparser.ParseDefinition(`query Q { me { ...Other_user } }`), scope, true)
		assertCode(t, err, operationreport.CodeUnresolvedFragmentReference)
	})
	t.Run("relay variables become substitutions", func(t *testing.T) {
		out, err := compiler.Compile(unsafeparser.ParseDefinition(`fragment Profile_viewer on User @relay(variables: ["size"]) {
			...Profile_user @arguments(size: $size)
		}`), scope, true)
		require.NoError(t, err)
		_, ok := out.Node.(*cqir.CreateFragment)
		assert.True(t, ok)
		data, err := cqir.Marshal(out.Substitutions[0])
		require.NoError(t, err)
		assert.Contains(t, string(data), `"size":{"$var":"size"}`)
	})
	t.Run("anonymous operation", func(t *testing.T) {
		_, err := compiler.Compile(unsafeparser.ParseDefinition(`{ me { name } }`), scope, true)
		assertCode(t, err, operationreport.CodeMissingName)
	})
}

func TestCompiler_CompileSource(t *testing.T) {
	compiler := newCompiler()

	artifacts, err := compiler.CompileSource("profile.graphql", `
		fragment Profile_user on User { name }
		query ProfileQuery { me { ...Profile_user } }
	`, resolver.MapScope{"Profile": resolver.BindingLocal}, true)
	require.NoError(t, err)
	require.Len(t, artifacts, 2)
	assert.Equal(t, "Profile_user", artifacts[0].Name)
	assert.Equal(t, "ProfileQuery", artifacts[1].Name)

	_, err = compiler.CompileSource("broken.graphql", `query {`, resolver.MapScope{}, true)
	assertCode(t, err, operationreport.CodeParseFailure)
	assert.Contains(t, err.Error(), "broken.graphql")
}

func TestNewFromSchema(t *testing.T) {
	config := DefaultConfig()
	config.SnakeCase = true
	compiler, err := NewFromSchema(config, []*ast.Source{{Name: "schema.graphql", Input: testschema.SnakeCase}})
	require.NoError(t, err)
	assert.Equal(t, "page_info", compiler.Schema().FieldNames().PageInfo)

	_, err = NewFromSchema(config, []*ast.Source{{Name: "schema.graphql", Input: `type Query { foo: Bar }`}})
	assert.Error(t, err)
}

func TestConfig(t *testing.T) {
	compiler := New(unsafeparser.LoadSchema(testschema.Social), Config{})
	assert.Equal(t, Config{InputArgumentName: "input", CacheSize: DefaultCacheSize}, compiler.Config())
	assert.Equal(t, compiler.Config(), DefaultConfig())
}

func TestCache(t *testing.T) {
	cache, err := NewCache(newCompiler())
	require.NoError(t, err)

	imported := resolver.MapScope{"Profile": resolver.BindingImported}
	local := resolver.MapScope{"Profile": resolver.BindingLocal}

	compact, spread := `query Q { me { ...Profile_user } }`, `query Q {
		me {
			...Profile_user
		}
	}`
	require.Equal(t, unsafeprinter.Canonical(compact), unsafeprinter.Canonical(spread))

	first, err := cache.Compile(unsafeparser.ParseDefinition(compact), imported, true)
	require.NoError(t, err)
	second, err := cache.Compile(unsafeparser.ParseDefinition(spread), imported, true)
	require.NoError(t, err)
	assert.Same(t, first, second)
	assert.Equal(t, int64(1), cache.Hits())
	assert.Equal(t, int64(1), cache.Misses())

	third, err := cache.Compile(unsafeparser.ParseDefinition(`query Q { me { ...Profile_user } }`), local, true)
	require.NoError(t, err)
	assert.NotSame(t, first, third)
	assert.True(t, third.Substitutions[0].(*resolver.FragmentLookup).CheckContainer)

	_, err = cache.Compile(unsafeparser.ParseDefinition(`query Q { me { ...Profile_user } }`), imported, false)
	require.NoError(t, err)
	assert.Equal(t, int64(3), cache.Misses())
	assert.Equal(t, 3, cache.Len())

	_, err = cache.Compile(unsafeparser.ParseDefinition(`query Q { me { ...Other_user } }`), imported, true)
	assertCode(t, err, operationreport.CodeUnresolvedFragmentReference)
	assert.Equal(t, 3, cache.Len())

	cache.Purge()
	assert.Equal(t, 0, cache.Len())
}

func TestCache_key(t *testing.T) {
	cache, err := NewCache(newCompiler())
	require.NoError(t, err)
	scope := resolver.MapScope{"Profile": resolver.BindingImported}

	key := func(input string, enableValidation bool) uint64 {
		definition := unsafeparser.ParseDefinition(input)
		normalized, err := normalization.Normalize(definition)
		require.NoError(t, err)
		out, err := cache.key(definition, normalized, scope, enableValidation)
		require.NoError(t, err)
		return out
	}

	first := key(`query Q { me { ...Profile_user } }`, true)
	assert.Equal(t, first, key("query Q {\n  me { ...Profile_user }\n}", true))
	assert.NotEqual(t, first, key(`query Q { me { ...Profile_user } }`, false))
	assert.NotEqual(t, first, key(`query Q { me { ...Profile_user name } }`, true))
}

func TestCompileFiles(t *testing.T) {
	scope := resolver.MapScope{"Profile": resolver.BindingImported}
	files := []File{
		{Name: "a.graphql", Source: `query A { me { ...Profile_user } } query Broken { me { ...Other_user } }`, Scope: scope},
		{Name: "b.graphql", Source: `query {`},
		{Name: "c.graphql", Source: `fragment Profile_user on User { name } query C { viewer { actor { __typename } } }`},
	}

	run := func(t *testing.T, compiler DefinitionCompiler, concurrency int) {
		result, err := CompileFiles(context.Background(), compiler, files, FilesOptions{EnableValidation: true, Concurrency: concurrency})
		require.NoError(t, err)

		assert.Equal(t, int64(3), result.Compiled)
		assert.Equal(t, int64(2), result.Failed)
		require.Len(t, result.Files, 3)
		assert.Equal(t, "a.graphql", result.Files[0].File)
		assert.Len(t, result.Files[0].Artifacts, 1)
		assert.Empty(t, result.Files[1].Artifacts)
		assert.Len(t, result.Files[2].Artifacts, 2)

		names := make([]string, 0, 3)
		for _, a := range result.Artifacts() {
			names = append(names, a.Name)
		}
		assert.Equal(t, []string{"A", "Profile_user", "C"}, names)

		require.Len(t, result.Failures, 2)
		assert.Equal(t, "a.graphql", result.Failures[0].File)
		assert.Equal(t, "Broken", result.Failures[0].Definition)
		assertCode(t, result.Failures[0].Err, operationreport.CodeUnresolvedFragmentReference)
		assert.Equal(t, "b.graphql", result.Failures[1].File)
		assert.Equal(t, "", result.Failures[1].Definition)
		assertCode(t, result.Failures[1].Err, operationreport.CodeParseFailure)

		assert.True(t, result.Report.HasErrors())
		assert.Len(t, result.Report.ExternalErrors, 2)
		assert.Len(t, result.Report.GQLErrors(), 2)
	}

	t.Run("compiler", func(t *testing.T) {
		run(t, newCompiler(), 0)
	})
	t.Run("cache with limit", func(t *testing.T) {
		cache, err := NewCache(newCompiler())
		require.NoError(t, err)
		run(t, cache, 1)
		run(t, cache, 2)
		assert.Equal(t, int64(3), cache.Hits())
	})
	t.Run("canceled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := CompileFiles(ctx, newCompiler(), files, FilesOptions{})
		assert.ErrorIs(t, err, context.Canceled)
	})
}
