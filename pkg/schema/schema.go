// Package schema is the read-only type introspection surface the compiler consults.
//
// It wraps a gqlparser schema and answers the questions the runtime conventions ask:
// abstractness, list-ness, connection roles and object identification.
// A Schema never changes after construction and is safe for concurrent use.
package schema

import (
	"fmt"
	"strings"

	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"

	"github.com/wundergraph/cqir/pkg/document"
)

const (
	connectionSuffix = "Connection"
	edgeSuffix       = "Edge"
	pageInfoTypeName = "PageInfo"
)

// Config selects the naming convention of the well known runtime fields
type Config struct {
	SnakeCase bool
}

type Schema struct {
	definition *ast.Schema
	names      FieldNames
}

// Load parses and validates schema sources with gqlparser
func Load(config Config, sources ...*ast.Source) (*Schema, error) {
	definition, err := gqlparser.LoadSchema(sources...)
	if err != nil {
		return nil, fmt.Errorf("schema.Load: %w", err)
	}
	return New(definition, config), nil
}

// LoadString is Load for a single in-memory source
func LoadString(config Config, input string) (*Schema, error) {
	return Load(config, &ast.Source{Name: "schema.graphql", Input: input})
}

func New(definition *ast.Schema, config Config) *Schema {
	return &Schema{
		definition: definition,
		names:      NewFieldNames(config.SnakeCase),
	}
}

func (s *Schema) AST() *ast.Schema {
	return s.definition
}

func (s *Schema) FieldNames() FieldNames {
	return s.names
}

func (s *Schema) QueryType() (Type, bool) {
	return s.rootType(s.definition.Query)
}

func (s *Schema) MutationType() (Type, bool) {
	return s.rootType(s.definition.Mutation)
}

func (s *Schema) SubscriptionType() (Type, bool) {
	return s.rootType(s.definition.Subscription)
}

func (s *Schema) rootType(definition *ast.Definition) (Type, bool) {
	if definition == nil {
		return Type{}, false
	}
	return s.Type(definition.Name)
}

// Type looks up a named type without modifiers
func (s *Schema) Type(name string) (Type, bool) {
	return s.typeFor(ast.NamedType(name, nil))
}

func (s *Schema) typeFor(ref *ast.Type) (Type, bool) {
	definition, ok := s.definition.Types[ref.Name()]
	if !ok {
		return Type{}, false
	}
	return Type{schema: s, definition: definition, ref: ref}, true
}

// Type is a type reference including its list and non-null modifiers
type Type struct {
	schema     *Schema
	definition *ast.Definition
	ref        *ast.Type
}

// Name is the name of the named type, without modifiers
func (t Type) Name() string {
	return t.definition.Name
}

// NameWithModifiers renders the reference like `[User!]!`
func (t Type) NameWithModifiers() string {
	return t.ref.String()
}

func (t Type) IsList() bool {
	return t.ref.Elem != nil
}

func (t Type) IsAbstract() bool {
	return t.definition.IsAbstractType()
}

func (t Type) CanHaveSubselections() bool {
	return t.definition.IsCompositeType()
}

func (t Type) IsEnum() bool {
	return t.definition.Kind == ast.Enum
}

func (t Type) IsInputObject() bool {
	return t.definition.Kind == ast.InputObject
}

func (t Type) IsCustomScalar() bool {
	return t.definition.Kind == ast.Scalar && !t.definition.BuiltIn
}

func (t Type) IsQueryType() bool {
	query := t.schema.definition.Query
	return query != nil && query.Name == t.definition.Name
}

func (t Type) HasField(name string) bool {
	_, ok := t.FieldDefinition(name)
	return ok
}

// FieldDefinition looks up a field of the type. __typename exists on every composite type.
func (t Type) FieldDefinition(name string) (*FieldDefinition, bool) {
	if name == TypeNameField {
		if !t.definition.IsCompositeType() {
			return nil, false
		}
		fieldType, _ := t.schema.typeFor(ast.NonNullNamedType("String", nil))
		return &FieldDefinition{Name: name, Type: fieldType}, true
	}
	field := t.definition.Fields.ForName(name)
	if field == nil {
		return nil, false
	}
	fieldType, ok := t.schema.typeFor(field.Type)
	if !ok {
		return nil, false
	}
	out := &FieldDefinition{Name: field.Name, Type: fieldType}
	for _, argument := range field.Arguments {
		argumentType, ok := t.schema.typeFor(argument.Type)
		if !ok {
			continue
		}
		out.Arguments = append(out.Arguments, &ArgumentDefinition{Name: argument.Name, Type: argumentType})
	}
	return out, true
}

// IdentifyingFieldDefinition is the id field of types that always implement Node.
// Unions take it from the Node interface. It is absent if Node declares no id field.
func (t Type) IdentifyingFieldDefinition() (*FieldDefinition, bool) {
	if !t.AlwaysImplements(NodeInterface) {
		return nil, false
	}
	if field, ok := t.FieldDefinition(t.schema.names.ID); ok {
		return field, true
	}
	node, ok := t.schema.Type(NodeInterface)
	if !ok {
		return nil, false
	}
	return node.FieldDefinition(t.schema.names.ID)
}

// IsConnection matches `XConnection` types with list edges carrying a singular node and a page info
func (t Type) IsConnection() bool {
	if !strings.HasSuffix(t.Name(), connectionSuffix) {
		return false
	}
	if _, ok := t.ConnectionNodeType(); !ok {
		return false
	}
	pageInfo, ok := t.FieldDefinition(t.schema.names.PageInfo)
	return ok && pageInfo.Type.IsConnectionPageInfo()
}

// ConnectionNodeType is the type of edges.node
func (t Type) ConnectionNodeType() (Type, bool) {
	edges, ok := t.FieldDefinition(t.schema.names.Edges)
	if !ok || !edges.Type.IsList() {
		return Type{}, false
	}
	node, ok := edges.Type.FieldDefinition(t.schema.names.Node)
	if !ok || node.Type.IsList() {
		return Type{}, false
	}
	return node.Type, true
}

func (t Type) IsConnectionEdge() bool {
	return strings.HasSuffix(t.Name(), edgeSuffix) &&
		t.HasField(t.schema.names.Node) &&
		t.HasField(t.schema.names.Cursor)
}

func (t Type) IsConnectionPageInfo() bool {
	return t.Name() == pageInfoTypeName
}

// AlwaysImplements is true if the type is typeName, declares to implement it,
// or is abstract and every possible type implements it
func (t Type) AlwaysImplements(typeName string) bool {
	if t.Name() == typeName || implements(t.definition, typeName) {
		return true
	}
	if !t.IsAbstract() {
		return false
	}
	possibleTypes := t.schema.definition.GetPossibleTypes(t.definition)
	if len(possibleTypes) == 0 {
		return false
	}
	for _, possible := range possibleTypes {
		if !implements(possible, typeName) {
			return false
		}
	}
	return true
}

func implements(definition *ast.Definition, typeName string) bool {
	for _, name := range definition.Interfaces {
		if name == typeName {
			return true
		}
	}
	return false
}

// MayImplement also considers the possible types of abstract types
func (t Type) MayImplement(typeName string) bool {
	if t.AlwaysImplements(typeName) {
		return true
	}
	if !t.IsAbstract() {
		return false
	}
	for _, possible := range t.schema.definition.GetPossibleTypes(t.definition) {
		if implements(possible, typeName) {
			return true
		}
	}
	return false
}

// GenerateField creates a field selection the author did not write
func (t Type) GenerateField(name string) *document.Field {
	return &document.Field{Name: name}
}

// GenerateIDFragment creates `... on Node { id }`
func (t Type) GenerateIDFragment() *document.InlineFragment {
	return &document.InlineFragment{
		TypeCondition: NodeInterface,
		SelectionSet:  document.SelectionSet{t.GenerateField(t.schema.names.ID)},
	}
}

// FieldDefinition is a field of a type together with its declared arguments
type FieldDefinition struct {
	Name      string
	Type      Type
	Arguments []*ArgumentDefinition
}

func (f *FieldDefinition) DeclaredArgument(name string) (*ArgumentDefinition, bool) {
	for _, argument := range f.Arguments {
		if argument.Name == name {
			return argument, true
		}
	}
	return nil, false
}

func (f *FieldDefinition) HasDeclaredArgument(name string) bool {
	_, ok := f.DeclaredArgument(name)
	return ok
}

type ArgumentDefinition struct {
	Name string
	Type Type
}
