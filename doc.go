// Package main is the cqir command line tool.
//
// About CQIR
//
// A relay style GraphQL client does not send the documents its components are written in as they are.
// Each query, mutation, subscription and fragment is compiled ahead of time into a CQIR tree:
// a JSON representation of the definition that carries everything the client runtime needs to
// track records, page through connections and stitch fragments together.
// Fields the author did not write but the runtime needs, like id, __typename or pageInfo, are added on the way.
//
// About this tool
//
// The compiler works on one definition at a time in four steps:
// - normalization rewrites fragment spreads into substitution slots
// - the printer validates the definition and prints its CQIR tree
// - the resolver turns every slot into an initializer that looks the fragment up at run time
// - the assembler packages tree and initializers into an artifact
//
// Artifacts are written as JSON, YAML or Go source, see "cqir compile --help".
package main
