package operationreport

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vektah/gqlparser/v2/gqlerror"
)

// Kind groups error codes into the four failure families of the compiler
type Kind int

const (
	KindUnknown Kind = iota
	// KindStructuralViolation is a definition that breaks a structural rule of the runtime
	KindStructuralViolation
	// KindUnsupportedConstruct is a directive combination, selection or literal the compiler cannot express
	KindUnsupportedConstruct
	// KindScopeResolutionFailure is a fragment reference that is not bound where the definition lives
	KindScopeResolutionFailure
	// KindMalformedInput is input missing required parts or using the wrong literal kind
	KindMalformedInput
)

func (k Kind) String() string {
	switch k {
	case KindStructuralViolation:
		return "StructuralViolation"
	case KindUnsupportedConstruct:
		return "UnsupportedConstruct"
	case KindScopeResolutionFailure:
		return "ScopeResolutionFailure"
	case KindMalformedInput:
		return "MalformedInput"
	default:
		return "String() not implemented for Kind: " + strconv.Itoa(int(k))
	}
}

// Code identifies the violated rule
type Code string

const (
	CodeTooManyRootFields              Code = "TooManyRootFields"
	CodeInvalidRootFieldArity          Code = "InvalidRootFieldArity"
	CodeConflictingPaginationArguments Code = "ConflictingPaginationArguments"
	CodeMissingPaginationArgument      Code = "MissingPaginationArgument"
	CodeUseEdgesNodeInstead            Code = "UseEdgesNodeInstead"
	CodeWrongMutationArgumentShape     Code = "WrongMutationArgumentShape"
	CodeMisplacedNodeField             Code = "MisplacedNodeField"

	CodeDuplicateArgumentDefinitions Code = "DuplicateArgumentDefinitions"
	CodeUnsupportedSpreadDirective   Code = "UnsupportedSpreadDirective"
	CodeConflictingSpreadDirectives  Code = "ConflictingSpreadDirectives"
	CodeInvalidMaskArgument          Code = "InvalidMaskArgument"
	CodeVariableInRelayDirective     Code = "VariableInRelayDirective"
	CodeUnsupportedSelection         Code = "UnsupportedSelection"

	CodeUnresolvedFragmentReference Code = "UnresolvedFragmentReference"

	CodeParseFailure         Code = "ParseFailure"
	CodeDefinitionCount      Code = "DefinitionCount"
	CodeMissingName          Code = "MissingName"
	CodeMissingRootField     Code = "MissingRootField"
	CodeMissingRootType      Code = "MissingRootType"
	CodeUnknownType          Code = "UnknownType"
	CodeUnknownField         Code = "UnknownField"
	CodeUnknownArgument      Code = "UnknownArgument"
	CodeInvalidLiteral       Code = "InvalidLiteral"
	CodeInvalidRelayArgument Code = "InvalidRelayArgument"
	CodeInvalidFragmentName  Code = "InvalidFragmentName"
)

// Location is a 1-based line and column in the compiled source
type Location struct {
	Line   uint32 `json:"line"`
	Column uint32 `json:"column"`
}

// LocationFrom converts a line and column, returning the zero Location for unknown (<1) values
func LocationFrom(line, column int) Location {
	if line < 1 || column < 1 {
		return Location{}
	}
	return Location{Line: uint32(line), Column: uint32(column)}
}

// ExternalError is an error caused by the compiled definition, as opposed to a bug in the compiler
type ExternalError struct {
	Kind      Kind       `json:"-"`
	Code      Code       `json:"code"`
	Message   string     `json:"message"`
	Locations []Location `json:"locations,omitempty"`
}

func (e ExternalError) Error() string {
	if len(e.Locations) == 0 || e.Locations[0].Line == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s (%d:%d)", e.Message, e.Locations[0].Line, e.Locations[0].Column)
}

// Is matches another ExternalError with the same code so that errors.Is works against sentinel values
func (e ExternalError) Is(target error) bool {
	other, ok := target.(ExternalError)
	return ok && other.Code == e.Code
}

// GQLError converts e into the gqlparser error type used in GraphQL responses
func (e ExternalError) GQLError() *gqlerror.Error {
	out := &gqlerror.Error{
		Message: e.Message,
		Rule:    string(e.Code),
		Extensions: map[string]interface{}{
			"code": string(e.Code),
			"kind": e.Kind.String(),
		},
	}
	for _, location := range e.Locations {
		if location.Line == 0 {
			continue
		}
		out.Locations = append(out.Locations, gqlerror.Location{Line: int(location.Line), Column: int(location.Column)})
	}
	return out
}

func newError(kind Kind, code Code, location Location, format string, args ...interface{}) ExternalError {
	err := ExternalError{
		Kind:    kind,
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
	if location.Line != 0 {
		err.Locations = []Location{location}
	}
	return err
}

// Sentinel returns a value usable with errors.Is for the given code
func Sentinel(code Code) ExternalError {
	return ExternalError{Code: code}
}

func ErrParseFailure(message string, locations ...Location) ExternalError {
	return ExternalError{
		Kind:      KindMalformedInput,
		Code:      CodeParseFailure,
		Message:   message,
		Locations: locations,
	}
}

func ErrDefinitionCount(count int) ExternalError {
	return newError(KindMalformedInput, CodeDefinitionCount, Location{},
		"expected exactly one definition, got %d", count)
}

func ErrMissingName(kind string, location Location) ExternalError {
	return newError(KindMalformedInput, CodeMissingName, location,
		"%s definitions must contain names", kind)
}

func ErrMissingRootField(definitionName string, location Location) ExternalError {
	return newError(KindMalformedInput, CodeMissingRootField, location,
		"the definition named `%s` does not select any root field", definitionName)
}

func ErrMissingRootType(operation string, location Location) ExternalError {
	return newError(KindMalformedInput, CodeMissingRootType, location,
		"the schema does not define a %s type", operation)
}

func ErrUnknownType(typeName string, location Location) ExternalError {
	return newError(KindMalformedInput, CodeUnknownType, location,
		"the type `%s` does not exist in the schema", typeName)
}

func ErrUnknownField(fieldName, typeName string, location Location) ExternalError {
	return newError(KindMalformedInput, CodeUnknownField, location,
		"you supplied a field named `%s` on type `%s`, but no such field exists", fieldName, typeName)
}

func ErrUnknownArgument(argumentName, fieldName string, location Location) ExternalError {
	return newError(KindMalformedInput, CodeUnknownArgument, location,
		"you supplied an argument named `%s` on field `%s`, but no such argument exists", argumentName, fieldName)
}

func ErrInvalidLiteral(raw string, location Location) ExternalError {
	return newError(KindMalformedInput, CodeInvalidLiteral, location,
		"the literal `%s` cannot be represented", raw)
}

func ErrInvalidRelayArgument(argumentName, expected string, location Location) ExternalError {
	return newError(KindMalformedInput, CodeInvalidRelayArgument, location,
		"the `%s` argument of the `@relay` directive must be %s", argumentName, expected)
}

func ErrInvalidFragmentName(fragmentName string, location Location) ExternalError {
	return newError(KindMalformedInput, CodeInvalidFragmentName, location,
		"fragments should be named `ModuleName_fragmentName`, got `%s`", fragmentName)
}

func ErrTooManyRootFields(count int, operation, definitionName string, location Location) ExternalError {
	return newError(KindStructuralViolation, CodeTooManyRootFields, location,
		"there are %d fields supplied to the %s named `%s`, but %ss must have exactly one field",
		count, operation, definitionName, operation)
}

func ErrInvalidRootFieldArity(fieldName string, location Location) ExternalError {
	return newError(KindStructuralViolation, CodeInvalidRootFieldArity, location,
		"invalid root field `%s`; only root fields with zero or one argument are supported", fieldName)
}

func ErrConflictingPaginationArguments(fieldName string, combination []string, alternatives string, location Location) ExternalError {
	return newError(KindStructuralViolation, CodeConflictingPaginationArguments, location,
		"connection arguments `%s(%s)` are not supported unless both are variables. Use %s",
		fieldName, strings.Join(combination, ", "), alternatives)
}

func ErrMissingPaginationArgument(subfieldName, fieldName string, location Location) ExternalError {
	return newError(KindStructuralViolation, CodeMissingPaginationArgument, location,
		"you supplied the `%s` field on a connection named `%s`, but you did not supply an argument necessary to handle the connection. "+
			"Please specify a limit argument like `first`, or `last` or fetch a specific item with a `find` argument",
		subfieldName, fieldName)
}

func ErrUseEdgesNodeInstead(subfieldName, fieldName, edges, node string, location Location) ExternalError {
	return newError(KindStructuralViolation, CodeUseEdgesNodeInstead, location,
		"you supplied a field named `%s` on a connection named `%s`, but pagination is not supported on connections without using `%s`. Use `%s{%s{%s{...}}}` instead",
		subfieldName, fieldName, edges, fieldName, edges, node)
}

func ErrWrongMutationArgumentCount(fieldName string, count int, inputArgumentName string, location Location) ExternalError {
	return newError(KindStructuralViolation, CodeWrongMutationArgumentShape, location,
		"your schema defines a mutation field `%s` that takes %d arguments, but mutation fields must have exactly one argument named `%s`",
		fieldName, count, inputArgumentName)
}

func ErrWrongMutationArgumentName(fieldName, argumentName, inputArgumentName string, location Location) ExternalError {
	return newError(KindStructuralViolation, CodeWrongMutationArgumentShape, location,
		"your schema defines a mutation field `%s` that takes an argument named `%s`, but mutation fields must have exactly one argument named `%s`",
		fieldName, argumentName, inputArgumentName)
}

func ErrTooManyMutationArguments(count int, fieldName, inputArgumentName string, location Location) ExternalError {
	return newError(KindStructuralViolation, CodeWrongMutationArgumentShape, location,
		"there are %d arguments supplied to the mutation field named `%s`, but mutation fields must have exactly one `%s` argument",
		count, fieldName, inputArgumentName)
}

func ErrMisplacedNodeField(argumentName, argumentType, parentTypeName string, location Location) ExternalError {
	return newError(KindStructuralViolation, CodeMisplacedNodeField, location,
		"you defined a `node(%s: %s)` field on type `%s`, but the `node` field must be defined on the root type",
		argumentName, argumentType, parentTypeName)
}

func ErrDuplicateArgumentDefinitions(definitionName string, location Location) ExternalError {
	return newError(KindUnsupportedConstruct, CodeDuplicateArgumentDefinitions, location,
		"expected only one @argumentDefinitions directive on `%s`", definitionName)
}

func ErrUnsupportedSpreadDirective(directiveName, fragmentName string, location Location) ExternalError {
	return newError(KindUnsupportedConstruct, CodeUnsupportedSpreadDirective, location,
		"unsupported directive `%s` on fragment spread `...%s`", directiveName, fragmentName)
}

func ErrConflictingSpreadDirectives(fragmentName string, location Location) ExternalError {
	return newError(KindUnsupportedConstruct, CodeConflictingSpreadDirectives, location,
		"the fragment spread `...%s` accepts only one directive, either `@arguments` or `@relay(mask: ...)`", fragmentName)
}

func ErrInvalidMaskArgument(fragmentName, argumentName string, location Location) ExternalError {
	return newError(KindUnsupportedConstruct, CodeInvalidMaskArgument, location,
		"expected the `@relay` directive on `...%s` to only have a `mask` argument, but got `%s`", fragmentName, argumentName)
}

func ErrVariableInRelayDirective(variableName, argumentName string, location Location) ExternalError {
	return newError(KindUnsupportedConstruct, CodeVariableInRelayDirective, location,
		"you supplied `$%s` as the `%s` argument to the `@relay` directive, but `@relay` requires scalar argument values",
		variableName, argumentName)
}

func ErrUnsupportedSelection(description string, location Location) ExternalError {
	return newError(KindUnsupportedConstruct, CodeUnsupportedSelection, location,
		"unsupported selection: %s", description)
}

func ErrUnresolvedFragmentReference(moduleName, propertyName, fragmentName string, location Location) ExternalError {
	return newError(KindScopeResolutionFailure, CodeUnresolvedFragmentReference, location,
		"please make sure module `%s` is imported and not renamed or the fragment `%s` is defined and bound to local variable `%s`",
		moduleName, fragmentName, propertyName)
}
