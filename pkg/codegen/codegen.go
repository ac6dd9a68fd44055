// Package codegen renders compiled artifacts into a Go source file.
//
// Every artifact becomes a constant holding its CQIR tree and a constructor returning a *cqir.Document.
package codegen

import (
	"fmt"
	"io"
	"strconv"

	"github.com/dave/jennifer/jen"
	"github.com/iancoleman/strcase"

	"github.com/wundergraph/cqir/pkg/artifact"
	"github.com/wundergraph/cqir/pkg/cqir"
	"github.com/wundergraph/cqir/pkg/resolver"
)

const (
	cqirPath = "github.com/wundergraph/cqir/pkg/cqir"
	jsonPath = "encoding/json"

	headerComment = "Code generated by cqir. DO NOT EDIT."
)

type Config struct {
	PackageName string
}

type CodeGen struct {
	artifacts []*artifact.Artifact
	config    Config
	file      *jen.File
}

func New(artifacts []*artifact.Artifact, config Config) *CodeGen {
	return &CodeGen{
		artifacts: artifacts,
		config:    config,
	}
}

func (c *CodeGen) Generate(w io.Writer) (int, error) {
	c.file = jen.NewFile(c.config.PackageName)
	c.file.HeaderComment(headerComment)

	constructors := make(map[string]string, len(c.artifacts))
	for _, a := range c.artifacts {
		name := ConstructorName(a.Name)
		if previous, ok := constructors[name]; ok {
			return 0, fmt.Errorf("codegen: definitions %s and %s both generate %s", previous, a.Name, name)
		}
		constructors[name] = a.Name
		if err := c.renderArtifact(name, a); err != nil {
			return 0, err
		}
	}

	return fmt.Fprintf(w, "%#v", c.file)
}

// ConstructorName is the exported identifier generated for a definition name
func ConstructorName(definitionName string) string {
	return strcase.ToCamel(definitionName)
}

func (c *CodeGen) renderArtifact(name string, a *artifact.Artifact) error {
	node, err := cqir.Marshal(a.Node)
	if err != nil {
		return err
	}
	argumentDefinitions, err := cqir.Marshal(a.ArgumentDefinitions)
	if err != nil {
		return err
	}
	if a.ArgumentDefinitions == nil {
		argumentDefinitions = []byte("[]")
	}

	nodeConst := strcase.ToLowerCamel(a.Name) + "Node"
	argumentsConst := strcase.ToLowerCamel(a.Name) + "ArgumentDefinitions"
	c.file.Const().Defs(
		jen.Id(nodeConst).Op("=").Lit(string(node)),
		jen.Id(argumentsConst).Op("=").Lit(string(argumentDefinitions)),
	)

	slots := make([]jen.Code, 0, len(a.Substitutions))
	initializers := make([]jen.Code, 0, len(a.Substitutions))
	variables := make(map[string]struct{}, len(a.Substitutions))
	for _, initializer := range a.Substitutions {
		values, err := initializerValues(initializer)
		if err != nil {
			return err
		}
		slot := slotVariable(initializer.SlotName(), variables)
		slots = append(slots, jen.Id(slot))
		initializers = append(initializers, jen.Id(slot).Op(":=").Op("&").Qual(cqirPath, "SlotInitializer").Values(values))
	}

	document := jen.Dict{
		jen.Id("Kind"):                jen.Lit(string(a.Kind)),
		jen.Id("Name"):                jen.Lit(a.Name),
		jen.Id("ArgumentDefinitions"): jen.Qual(jsonPath, "RawMessage").Call(jen.Id(argumentsConst)),
		jen.Id("Node"):                jen.Qual(jsonPath, "RawMessage").Call(jen.Id(nodeConst)),
	}
	if a.Operation != "" {
		document[jen.Id("Operation")] = jen.Lit(a.Operation)
	}
	if len(slots) != 0 {
		document[jen.Id("Substitutions")] = jen.Index().Op("*").Qual(cqirPath, "SlotInitializer").Values(slots...)
	}

	c.file.Comment(fmt.Sprintf("%s returns the compiled %s %s", name, describe(a), a.Name))
	c.file.Func().Id(name).Params().Op("*").Qual(cqirPath, "Document").BlockFunc(func(group *jen.Group) {
		for _, initializer := range initializers {
			group.Add(initializer)
		}
		group.Return(jen.Op("&").Qual(cqirPath, "Document").Values(document))
	})
	return nil
}

// slotVariable names the local variable of a slot, numbering slots whose names camel case alike
func slotVariable(slotName string, taken map[string]struct{}) string {
	base := strcase.ToLowerCamel(slotName) + "Slot"
	name := base
	for i := 2; ; i++ {
		if _, ok := taken[name]; !ok {
			break
		}
		name = base + strconv.Itoa(i)
	}
	taken[name] = struct{}{}
	return name
}

func describe(a *artifact.Artifact) string {
	if a.Operation != "" {
		return a.Operation
	}
	return "fragment"
}

func initializerValues(initializer resolver.Initializer) (jen.Dict, error) {
	switch i := initializer.(type) {
	case *resolver.FragmentLookup:
		values := jen.Dict{
			jen.Id("Slot"):     jen.Lit(i.Slot),
			jen.Id("Kind"):     jen.Lit("FragmentLookup"),
			jen.Id("Module"):   jen.Lit(i.Module),
			jen.Id("Property"): jen.Lit(i.Property),
		}
		if i.CheckContainer {
			values[jen.Id("CheckContainer")] = jen.True()
		}
		if i.Arguments != nil {
			arguments, err := cqir.Marshal(i.Arguments)
			if err != nil {
				return nil, err
			}
			values[jen.Id("Arguments")] = jen.Qual(jsonPath, "RawMessage").Call(jen.Lit(string(arguments)))
		}
		return values, nil
	case *resolver.FragmentContent:
		values := jen.Dict{
			jen.Id("Slot"):     jen.Lit(i.Slot),
			jen.Id("Kind"):     jen.Lit("FragmentContent"),
			jen.Id("Module"):   jen.Lit(i.Module),
			jen.Id("Property"): jen.Lit(i.Property),
		}
		if i.LocalProperty {
			values[jen.Id("LocalProperty")] = jen.True()
		}
		return values, nil
	default:
		return nil, fmt.Errorf("codegen: unknown initializer %T", initializer)
	}
}
