// Package unsafeprinter prints definitions in tests, panicking instead of returning errors.
package unsafeprinter

import (
	"github.com/wundergraph/cqir/internal/pkg/unsafeparser"
	"github.com/wundergraph/cqir/pkg/document"
)

func Print(definition *document.Definition) string {
	str, err := document.PrintString(definition)
	if err != nil {
		panic(err)
	}
	return str
}

// Canonical parses a single definition and prints it in canonical form
func Canonical(source string) string {
	return Print(unsafeparser.ParseDefinition(source))
}
