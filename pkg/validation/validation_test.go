package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wundergraph/cqir/internal/pkg/testschema"
	"github.com/wundergraph/cqir/internal/pkg/unsafeparser"
	"github.com/wundergraph/cqir/pkg/document"
	"github.com/wundergraph/cqir/pkg/operationreport"
	"github.com/wundergraph/cqir/pkg/schema"
)

var social = unsafeparser.LoadSchema(testschema.Social)

func mustType(t *testing.T, name string) schema.Type {
	t.Helper()
	typ, ok := social.Type(name)
	require.True(t, ok, name)
	return typ
}

func mustFieldDefinition(t *testing.T, typeName, fieldName string) *schema.FieldDefinition {
	t.Helper()
	definition, ok := mustType(t, typeName).FieldDefinition(fieldName)
	require.True(t, ok, fieldName)
	return definition
}

// rootField parses input and returns its first root field
func rootField(t *testing.T, input string) *document.Field {
	t.Helper()
	definition := unsafeparser.ParseDefinition(input)
	fields := definition.SelectionSet.Fields()
	require.NotEmpty(t, fields)
	return fields[0]
}

func assertCode(t *testing.T, err error, code operationreport.Code) {
	t.Helper()
	require.Error(t, err)
	assert.True(t, errors.Is(err, operationreport.Sentinel(code)), err.Error())
}

func TestRootFieldCount(t *testing.T) {
	t.Run("single root field", func(t *testing.T) {
		assert.NoError(t, RootFieldCount(unsafeparser.ParseDefinition(`query Q { me { id } }`)))
	})
	t.Run("two root fields", func(t *testing.T) {
		err := RootFieldCount(unsafeparser.ParseDefinition(`query Q { me { id } viewer { actor { __typename } } }`))
		assertCode(t, err, operationreport.CodeTooManyRootFields)
		assert.Contains(t, err.Error(), "there are 2 fields supplied to the query named `Q`")
	})
	t.Run("fragments are not counted", func(t *testing.T) {
		assert.NoError(t, RootFieldCount(unsafeparser.ParseDefinition(`fragment F on User { id name }`)))
	})
}

func TestQueryRootFieldArity(t *testing.T) {
	assert.NoError(t, QueryRootFieldArity(rootField(t, `query Q { me { id } }`)))
	assert.NoError(t, QueryRootFieldArity(rootField(t, `query Q { user(id: "1") { id } }`)))
	err := QueryRootFieldArity(rootField(t, `query Q { twoArgs(a: 1, b: 2) { id } }`))
	assertCode(t, err, operationreport.CodeInvalidRootFieldArity)
	assert.Contains(t, err.Error(), "`twoArgs`")
}

func TestConnectionArguments(t *testing.T) {
	friends := func(t *testing.T, arguments string) *document.Field {
		return rootField(t, `fragment F on User { friends`+arguments+` { count } }`)
	}

	t.Run("literal first and last", func(t *testing.T) {
		err := ConnectionArguments(friends(t, `(first: 5, last: 10)`))
		assertCode(t, err, operationreport.CodeConflictingPaginationArguments)
		assert.Contains(t, err.Error(), "`friends(first: <count>, last: <count>)`")
	})
	t.Run("variable first and last", func(t *testing.T) {
		assert.NoError(t, ConnectionArguments(friends(t, `(first: $a, last: $b)`)))
	})
	t.Run("one variable is not enough", func(t *testing.T) {
		assertCode(t, ConnectionArguments(friends(t, `(first: $a, last: 10)`)), operationreport.CodeConflictingPaginationArguments)
	})
	t.Run("before with first", func(t *testing.T) {
		assertCode(t, ConnectionArguments(friends(t, `(first: 10, before: "c")`)), operationreport.CodeConflictingPaginationArguments)
		assert.NoError(t, ConnectionArguments(friends(t, `(first: $n, before: $c)`)))
	})
	t.Run("after with last", func(t *testing.T) {
		assertCode(t, ConnectionArguments(friends(t, `(last: 10, after: "c")`)), operationreport.CodeConflictingPaginationArguments)
		assert.NoError(t, ConnectionArguments(friends(t, `(last: $n, after: $c)`)))
	})
	t.Run("supported combinations", func(t *testing.T) {
		assert.NoError(t, ConnectionArguments(friends(t, `(first: 10, after: "c")`)))
		assert.NoError(t, ConnectionArguments(friends(t, `(last: 10, before: "c")`)))
		assert.NoError(t, ConnectionArguments(friends(t, ``)))
	})
}

func TestConnectionSubfields(t *testing.T) {
	connection := mustType(t, "UserConnection")
	names := social.FieldNames()

	run := func(input string, pattern bool) error {
		return ConnectionSubfields(rootField(t, input), connection, names, pattern)
	}

	t.Run("edges with first", func(t *testing.T) {
		assert.NoError(t, run(`fragment F on User { friends(first: 10) { edges { node { id } } pageInfo { hasNextPage } } }`, false))
	})
	t.Run("edges with find", func(t *testing.T) {
		assert.NoError(t, run(`fragment F on User { friends(find: "4") { edges { node { id } } } }`, false))
	})
	t.Run("edges without pagination argument", func(t *testing.T) {
		err := run(`fragment F on User { friends { edges { node { id } } } }`, false)
		assertCode(t, err, operationreport.CodeMissingPaginationArgument)
		assert.Contains(t, err.Error(), "`edges` field on a connection named `friends`")
	})
	t.Run("page info through an inline fragment", func(t *testing.T) {
		err := run(`fragment F on User { friends { ... on UserConnection { pageInfo { hasNextPage } } } }`, false)
		assertCode(t, err, operationreport.CodeMissingPaginationArgument)
	})
	t.Run("fragment spreads are not followed", func(t *testing.T) {
		assert.NoError(t, run(`fragment F on User { friends { ...Foo_connection } }`, false))
	})
	t.Run("patterns skip the argument check", func(t *testing.T) {
		assert.NoError(t, run(`fragment F on User { friends { edges { cursor } } }`, true))
	})
	t.Run("count without pagination argument", func(t *testing.T) {
		assert.NoError(t, run(`fragment F on User { friends { count } }`, false))
	})
	t.Run("list of nodes", func(t *testing.T) {
		err := run(`fragment F on User { friends(first: 10) { nodes { id } } }`, false)
		assertCode(t, err, operationreport.CodeUseEdgesNodeInstead)
		assert.Contains(t, err.Error(), "Use `friends{edges{node{...}}}` instead")
	})
	t.Run("list of nodes in an inline fragment", func(t *testing.T) {
		err := run(`fragment F on User { friends(first: 10) { ... on UserConnection { nodes { id } } } }`, false)
		assertCode(t, err, operationreport.CodeUseEdgesNodeInstead)
	})
}

func TestSubfields(t *testing.T) {
	field := rootField(t, `fragment F on User { friends { count ... on UserConnection { nodes { id } ... { edges { cursor } } } ...Foo } }`)
	var names []string
	for _, subfield := range Subfields(field.SelectionSet) {
		names = append(names, subfield.Name)
	}
	assert.Equal(t, []string{"count", "nodes", "edges"}, names)
}

func TestMutationField(t *testing.T) {
	t.Run("exactly one input argument", func(t *testing.T) {
		field := rootField(t, `mutation M { createUser(input: $input) { clientMutationId } }`)
		assert.NoError(t, MutationField(field, mustFieldDefinition(t, "Mutation", "createUser"), "input"))
	})
	t.Run("two declared arguments", func(t *testing.T) {
		field := rootField(t, `mutation M { renameUser(input: $input) { clientMutationId } }`)
		err := MutationField(field, mustFieldDefinition(t, "Mutation", "renameUser"), "input")
		assertCode(t, err, operationreport.CodeWrongMutationArgumentShape)
		assert.Contains(t, err.Error(), "takes 2 arguments")
	})
	t.Run("wrongly named argument", func(t *testing.T) {
		field := rootField(t, `mutation M { deleteUser(data: $input) { clientMutationId } }`)
		err := MutationField(field, mustFieldDefinition(t, "Mutation", "deleteUser"), "input")
		assertCode(t, err, operationreport.CodeWrongMutationArgumentShape)
		assert.Contains(t, err.Error(), "argument named `data`")
	})
	t.Run("configured input argument name", func(t *testing.T) {
		field := rootField(t, `mutation M { deleteUser(data: $input) { clientMutationId } }`)
		assert.NoError(t, MutationField(field, mustFieldDefinition(t, "Mutation", "deleteUser"), "data"))
	})
	t.Run("too many applied arguments", func(t *testing.T) {
		field := rootField(t, `mutation M { createUser(input: $input, other: 1) { clientMutationId } }`)
		err := MutationField(field, mustFieldDefinition(t, "Mutation", "createUser"), "input")
		assertCode(t, err, operationreport.CodeWrongMutationArgumentShape)
		assert.Contains(t, err.Error(), "there are 2 arguments supplied")
	})
	t.Run("subscription", func(t *testing.T) {
		field := rootField(t, `subscription S { userCreated(input: $input) { clientSubscriptionId } }`)
		assert.NoError(t, MutationField(field, mustFieldDefinition(t, "Subscription", "userCreated"), "input"))
	})
}

func TestNodeField(t *testing.T) {
	names := social.FieldNames()

	t.Run("on the query type", func(t *testing.T) {
		field := rootField(t, `query Q { node(id: "1") { id } }`)
		assert.NoError(t, NodeField(field, mustFieldDefinition(t, "Query", "node"), mustType(t, "Query"), names))
	})
	t.Run("on another type", func(t *testing.T) {
		field := rootField(t, `fragment F on Viewer { node(id: "1") { id } }`)
		err := NodeField(field, mustFieldDefinition(t, "Viewer", "node"), mustType(t, "Viewer"), names)
		assertCode(t, err, operationreport.CodeMisplacedNodeField)
		assert.Contains(t, err.Error(), "`node(id: ID!)` field on type `Viewer`")
	})
	t.Run("other fields", func(t *testing.T) {
		field := rootField(t, `fragment F on Viewer { actor { __typename } }`)
		assert.NoError(t, NodeField(field, mustFieldDefinition(t, "Viewer", "actor"), mustType(t, "Viewer"), names))
	})
}
