package document

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wundergraph/cqir/pkg/operationreport"
)

func TestParse(t *testing.T) {
	t.Run("keeps source order", func(t *testing.T) {
		definitions, err := Parse("app.graphql", `
			fragment Foo_user on User { id }
			query Q { viewer { ...Foo_user } }
			mutation M { like(input: $input) { clientMutationId } }
		`)
		require.NoError(t, err)
		require.Len(t, definitions, 3)
		assert.Equal(t, DefinitionKindFragment, definitions[0].Kind)
		assert.Equal(t, "User", definitions[0].TypeCondition)
		assert.Equal(t, DefinitionKindQuery, definitions[1].Kind)
		assert.Equal(t, DefinitionKindMutation, definitions[2].Kind)
		assert.Equal(t, "app.graphql", definitions[1].Position.Source)
		assert.Equal(t, 3, definitions[1].Position.Line)
	})
	t.Run("converts selections and values", func(t *testing.T) {
		definition, err := ParseDefinition(`query Q($count: Int = 10) {
			me: viewer @include(if: true) {
				friends(first: $count, orderBy: {field: NAME, desc: false}, ids: [1, 2.5, "x", null]) {
					... on UserConnection { count }
					...Foo_friends @relay(mask: false)
				}
			}
		}`)
		require.NoError(t, err)
		require.Len(t, definition.VariableDefinitions, 1)
		assert.Equal(t, "Int", definition.VariableDefinitions[0].Type)
		assert.Equal(t, &IntValue{Raw: "10", Position: definition.VariableDefinitions[0].DefaultValue.Pos()}, definition.VariableDefinitions[0].DefaultValue)

		viewer := definition.SelectionSet[0].(*Field)
		assert.Equal(t, "me", viewer.Alias)
		assert.Equal(t, "viewer", viewer.Name)
		assert.Equal(t, "me", viewer.ResponseKey())
		require.NotNil(t, viewer.Directives.ForName("include"))

		friends := viewer.SelectionSet[0].(*Field)
		assert.Equal(t, "", friends.Alias)
		assert.Equal(t, "friends", friends.ResponseKey())
		assert.True(t, friends.Arguments.ForName("first").IsVariable())
		assert.False(t, friends.Arguments.ForName("orderBy").IsVariable())

		orderBy := friends.Arguments.ForName("orderBy").Value.(*ObjectValue)
		assert.Equal(t, "NAME", orderBy.ForName("field").Value.(*EnumValue).Value)
		assert.False(t, orderBy.ForName("desc").Value.(*BooleanValue).Value)

		ids := friends.Arguments.ForName("ids").Value.(*ListValue)
		require.Len(t, ids.Values, 4)
		assert.IsType(t, &IntValue{}, ids.Values[0])
		assert.IsType(t, &FloatValue{}, ids.Values[1])
		assert.Equal(t, "x", ids.Values[2].(*StringValue).Value)
		assert.IsType(t, &NullValue{}, ids.Values[3])

		inline := friends.SelectionSet[0].(*InlineFragment)
		assert.Equal(t, "UserConnection", inline.TypeCondition)
		spread := friends.SelectionSet[1].(*FragmentSpread)
		assert.Equal(t, "Foo_friends", spread.Name)
		assert.Len(t, spread.Directives, 1)
		assert.Len(t, viewer.SelectionSet.Fields(), 1)
	})
	t.Run("parse failure is malformed input", func(t *testing.T) {
		_, err := Parse("", `query Q { viewer {`)
		require.Error(t, err)
		var externalError operationreport.ExternalError
		require.True(t, errors.As(err, &externalError))
		assert.Equal(t, operationreport.CodeParseFailure, externalError.Code)
		assert.Equal(t, operationreport.KindMalformedInput, externalError.Kind)
		assert.NotEmpty(t, externalError.Locations)
	})
	t.Run("single definition expected", func(t *testing.T) {
		_, err := ParseDefinition(`query A { a } query B { b }`)
		assert.True(t, errors.Is(err, operationreport.Sentinel(operationreport.CodeDefinitionCount)))
	})
}

func TestVariables(t *testing.T) {
	definition, err := ParseDefinition(`query Q { node(input: {a: $a, list: [$b, 1, {c: $c}]}) { id } }`)
	require.NoError(t, err)
	argument := definition.SelectionSet[0].(*Field).Arguments[0]
	assert.Equal(t, []string{"a", "b", "c"}, Variables(argument.Value))
}

func TestPrint(t *testing.T) {
	run := func(t *testing.T, input, expected string) {
		t.Helper()
		definition, err := ParseDefinition(input)
		require.NoError(t, err)
		out, err := PrintString(definition)
		require.NoError(t, err)
		assert.Equal(t, expected, out)
	}

	t.Run("query", func(t *testing.T) {
		run(t, `
			# comment
			query Q($id: ID!, $n: Int = 3) @live {
				node(id: $id) { id ... on User { name(format: """block""") } }
			}`,
			`query Q($id: ID!, $n: Int = 3) @live {node(id: $id) {id ... on User {name(format: "block")}}}`)
	})
	t.Run("fragment", func(t *testing.T) {
		run(t, `fragment Foo_user on User @relay(plural: true) { friends(first: 10, filter: {tags: ["a"], x: null}) { edges { node { ...Bar_user @arguments(size: $size) } } } }`,
			`fragment Foo_user on User @relay(plural: true) {friends(first: 10, filter: {tags: ["a"], x: null}) {edges {node {...Bar_user @arguments(size: $size)}}}}`)
	})
	t.Run("whitespace does not change output", func(t *testing.T) {
		a, err := ParseDefinition("query Q {\n  viewer {\n    id\n  }\n}")
		require.NoError(t, err)
		b, err := ParseDefinition("query Q { viewer { id } }")
		require.NoError(t, err)
		aText, _ := PrintString(a)
		bText, _ := PrintString(b)
		assert.Equal(t, aText, bText)
	})
}

func TestDefinitionKind(t *testing.T) {
	assert.True(t, DefinitionKindSubscription.IsOperation())
	assert.False(t, DefinitionKindFragment.IsOperation())
	assert.Equal(t, "mutation", DefinitionKindMutation.String())
	assert.Equal(t, "<unknown>", Position{}.String())
	assert.Equal(t, "a.graphql:1:2", Position{Line: 1, Column: 2, Source: "a.graphql"}.String())
}
