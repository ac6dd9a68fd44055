// Package printer turns a normalized definition into its CQIR tree.
//
// The printer descends the selection tree once. On the way it injects the fields the runtime
// needs but the author did not write (identity, __typename, pagination support) and serializes
// arguments, directives and literal values. Printing is all or nothing, the first error aborts.
package printer

import (
	"fmt"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"github.com/jensneuse/abstractlogger"

	"github.com/wundergraph/cqir/pkg/cqir"
	"github.com/wundergraph/cqir/pkg/document"
	"github.com/wundergraph/cqir/pkg/operationreport"
	"github.com/wundergraph/cqir/pkg/schema"
)

const (
	DefaultInputArgumentName = "input"

	relayDirective     = "relay"
	generatedDirective = "generated"

	relayArgumentVariables = "variables"
	relayArgumentPattern   = "pattern"

	inferredRootCallName = "node"
)

type Options struct {
	// InputArgumentName is the single argument of mutation and subscription fields, defaults to "input"
	InputArgumentName string
	// EnableValidation turns on the structural rules that are not needed for printing itself
	EnableValidation bool
	// SubstitutionParameters are variable names bound by the enclosing code, they print as substitutions
	SubstitutionParameters []string
	Logger                 abstractlogger.Logger
}

// Printer is safe for concurrent use, all state of one Print call lives in a per call printState
type Printer struct {
	schema  *schema.Schema
	names   schema.FieldNames
	options Options
	log     abstractlogger.Logger
}

func New(s *schema.Schema, options Options) *Printer {
	if options.InputArgumentName == "" {
		options.InputArgumentName = DefaultInputArgumentName
	}
	log := options.Logger
	if log == nil {
		log = abstractlogger.NoopLogger
	}
	return &Printer{
		schema:  s,
		names:   s.FieldNames(),
		options: options,
		log:     log,
	}
}

func (p *Printer) Options() Options {
	return p.options
}

// Print prints definition, which should be the output of normalization.Normalize
func (p *Printer) Print(definition *document.Definition) (cqir.Root, error) {
	state := &printState{
		Printer:                p,
		definition:             definition,
		substitutionParameters: map[string]struct{}{},
		generated:              definition.Directives.ForName(generatedDirective) != nil,
	}
	for _, name := range p.options.SubstitutionParameters {
		state.substitutionParameters[name] = struct{}{}
	}

	p.log.Debug("printer.Print",
		abstractlogger.String("kind", definition.Kind.String()),
		abstractlogger.String("name", definition.Name),
	)

	var (
		root cqir.Root
		err  error
	)
	switch definition.Kind {
	case document.DefinitionKindQuery:
		root, err = state.printQuery()
	case document.DefinitionKindMutation:
		root, err = state.printMutation()
	case document.DefinitionKindSubscription:
		root, err = state.printSubscription()
	case document.DefinitionKindFragment:
		root, err = state.printFragmentDefinition()
	default:
		err = fmt.Errorf("printer.Print: unsupported definition kind %s", definition.Kind)
	}
	if err != nil {
		p.log.Debug("printer.Print",
			abstractlogger.String("name", definition.Name),
			abstractlogger.Error(err),
		)
		return nil, err
	}
	return root, nil
}

type printState struct {
	*Printer
	definition             *document.Definition
	substitutionParameters map[string]struct{}
	// generated definitions skip validation
	generated bool
	// pattern definitions may select edges on connections without a pagination argument
	pattern bool
	// fragmentCount numbers the printed fragments for their ids
	fragmentCount int
}

func (s *printState) validate() bool {
	return s.options.EnableValidation && !s.generated
}

// fragmentID is stable for the same definition name and position in the printed tree
func (s *printState) fragmentID() string {
	s.fragmentCount++
	return strconv.FormatUint(xxhash.Sum64String(s.definition.Name+":"+strconv.Itoa(s.fragmentCount)), 16)
}

func (s *printState) isSubstitutionParameter(name string) bool {
	_, ok := s.substitutionParameters[name]
	return ok
}

func location(position document.Position) operationreport.Location {
	return operationreport.LocationFrom(position.Line, position.Column)
}
