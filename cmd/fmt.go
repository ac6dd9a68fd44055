package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/formatter"

	"github.com/wundergraph/cqir/pkg/document"
)

// fmtCmd represents the fmt command
var fmtCmd = &cobra.Command{
	Use:     "fmt [files]",
	Short:   "fmt prints the definitions of the given files in their canonical form",
	Long:    `fmt prints every definition the way the compiler sees it, this text is also what compilations are cached by.`,
	Example: "cqir fmt profile.graphql",
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return formatDefinitions(cmd.OutOrStdout(), args)
	},
}

// schemaCmd represents the schema command
var schemaCmd = &cobra.Command{
	Use:     "schema",
	Short:   "schema formats a graphql schema file to std out",
	Example: "cqir fmt schema starwars.schema.graphql > formatted.graphql",
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) != 1 {
			return fmt.Errorf("schema: must provide 1 arg (fileName)")
		}
		return formatSchema(cmd.OutOrStdout(), args[0])
	},
}

func init() {
	rootCmd.AddCommand(fmtCmd)
	fmtCmd.AddCommand(schemaCmd)
}

func formatDefinitions(out io.Writer, files []string) error {
	first := true
	for _, fileName := range files {
		data, err := os.ReadFile(fileName)
		if err != nil {
			return err
		}
		definitions, err := document.Parse(fileName, string(data))
		if err != nil {
			return fmt.Errorf("%s: %w", fileName, err)
		}
		for _, definition := range definitions {
			if !first {
				if _, err := io.WriteString(out, "\n"); err != nil {
					return err
				}
			}
			first = false
			if err := document.Print(definition, out); err != nil {
				return err
			}
			if _, err := io.WriteString(out, "\n"); err != nil {
				return err
			}
		}
	}
	return nil
}

func formatSchema(out io.Writer, fileName string) error {
	data, err := os.ReadFile(fileName)
	if err != nil {
		return err
	}
	schema, err := gqlparser.LoadSchema(&ast.Source{Name: fileName, Input: string(data)})
	if err != nil {
		return err
	}
	formatter.NewFormatter(out).FormatSchema(schema)
	return nil
}
