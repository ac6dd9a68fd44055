package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jensneuse/abstractlogger"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/vektah/gqlparser/v2/ast"

	"github.com/wundergraph/cqir/pkg/artifact"
	"github.com/wundergraph/cqir/pkg/codegen"
	"github.com/wundergraph/cqir/pkg/compiler"
	"github.com/wundergraph/cqir/pkg/cqir"
	"github.com/wundergraph/cqir/pkg/resolver"
)

const (
	formatJSON = "json"
	formatYAML = "yaml"
	formatGo   = "go"
)

type compileOptions struct {
	schemaFile  string
	format      string
	packageName string
	outFile     string
	scope       []string
	noValidate  bool
}

var compileFlags compileOptions

// compileCmd represents the compile command
var compileCmd = &cobra.Command{
	Use:   "compile [files]",
	Short: "compile compiles all definitions of the given files into artifacts",
	Long: `compile parses every file, compiles each definition against the schema and prints the artifacts.
Definitions that fail are reported on stderr and skipped, the command exits with an error if any failed.

Fragment spreads resolve against the bindings passed with --scope.
A binding is name=imported or name=local, a bare name is imported.`,
	Example: `cqir compile --schema schema.graphql --scope Profile=imported,user=local --format go --package generated profile.graphql`,
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		config, err := loadConfig()
		if err != nil {
			return err
		}
		log, err := logger()
		if err != nil {
			return err
		}

		var out io.Writer
		if compileFlags.outFile == "" {
			out = cmd.OutOrStdout()
		} else {
			o, err := os.Create(compileFlags.outFile)
			if err != nil {
				return err
			}
			defer o.Close()
			out = o
		}

		return runCompile(config, compileFlags, args, log, out, os.Stderr)
	},
}

func init() {
	rootCmd.AddCommand(compileCmd)

	compileCmd.Flags().StringVarP(&compileFlags.schemaFile, "schema", "s", "./schema.graphql", "schema is the schema file the definitions are compiled against")
	compileCmd.Flags().StringVarP(&compileFlags.format, "format", "f", formatJSON, "format of the output, one of json, yaml or go")
	compileCmd.Flags().StringVarP(&compileFlags.packageName, "package", "p", "generated", "package is the package of the generated code, only used with --format go")
	compileCmd.Flags().StringVarP(&compileFlags.outFile, "out", "o", "", "out redirects the output into a file (optional)")
	compileCmd.Flags().StringSliceVar(&compileFlags.scope, "scope", nil, "scope lists the bindings fragment spreads resolve against, e.g. Profile=imported,user=local")
	compileCmd.Flags().BoolVar(&compileFlags.noValidate, "no-validate", false, "no-validate skips the structural validation rules")
	compileCmd.Flags().Int("concurrency", 0, "concurrency limits the files compiled at once, 0 means unlimited")
	_ = viper.BindPFlag("concurrency", compileCmd.Flags().Lookup("concurrency"))
}

func runCompile(config compiler.Config, options compileOptions, files []string, log abstractlogger.Logger, out, errOut io.Writer) error {
	switch options.format {
	case formatJSON, formatYAML, formatGo:
	default:
		return fmt.Errorf("compile: unknown format %q, use one of json, yaml or go", options.format)
	}

	scope, err := parseScope(options.scope)
	if err != nil {
		return err
	}

	schemaData, err := os.ReadFile(options.schemaFile)
	if err != nil {
		return err
	}
	c, err := compiler.NewFromSchema(config, []*ast.Source{{Name: options.schemaFile, Input: string(schemaData)}}, compiler.WithLogger(log))
	if err != nil {
		return err
	}
	cache, err := compiler.NewCache(c)
	if err != nil {
		return err
	}

	inputs := make([]compiler.File, 0, len(files))
	for _, fileName := range files {
		data, err := os.ReadFile(fileName)
		if err != nil {
			return err
		}
		inputs = append(inputs, compiler.File{Name: fileName, Source: string(data), Scope: scope})
	}

	result, err := compiler.CompileFiles(context.Background(), cache, inputs, compiler.FilesOptions{
		EnableValidation: !options.noValidate,
		Concurrency:      config.Concurrency,
		Logger:           log,
	})
	if err != nil {
		return err
	}

	for _, failure := range result.Failures {
		if failure.Definition == "" {
			fmt.Fprintf(errOut, "%s: %s\n", failure.File, failure.Err)
			continue
		}
		fmt.Fprintf(errOut, "%s: %s: %s\n", failure.File, failure.Definition, failure.Err)
	}

	if err := writeArtifacts(out, options, result.Artifacts()); err != nil {
		return err
	}
	if result.Failed != 0 {
		return fmt.Errorf("compile: %d of %d definitions failed", result.Failed, result.Failed+result.Compiled)
	}
	return nil
}

func writeArtifacts(out io.Writer, options compileOptions, artifacts []*artifact.Artifact) error {
	switch options.format {
	case formatYAML:
		for _, a := range artifacts {
			data, err := a.YAML()
			if err != nil {
				return err
			}
			if _, err := fmt.Fprintf(out, "---\n%s", data); err != nil {
				return err
			}
		}
		return nil
	case formatGo:
		_, err := codegen.New(artifacts, codegen.Config{PackageName: options.packageName}).Generate(out)
		return err
	default:
		if artifacts == nil {
			artifacts = []*artifact.Artifact{}
		}
		data, err := cqir.MarshalIndent(artifacts)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(out, "%s\n", data)
		return err
	}
}

// parseScope reads name=kind bindings, kind is imported or local
func parseScope(bindings []string) (resolver.MapScope, error) {
	scope := make(resolver.MapScope, len(bindings))
	for _, binding := range bindings {
		name, kind := binding, resolver.BindingImported.String()
		if i := strings.IndexByte(binding, '='); i != -1 {
			name, kind = binding[:i], binding[i+1:]
		}
		if name == "" {
			return nil, fmt.Errorf("scope: empty name in binding %q", binding)
		}
		switch kind {
		case resolver.BindingImported.String():
			scope[name] = resolver.BindingImported
		case resolver.BindingLocal.String():
			scope[name] = resolver.BindingLocal
		default:
			return nil, fmt.Errorf("scope: unknown binding kind %q for %s, use imported or local", kind, name)
		}
	}
	return scope, nil
}
