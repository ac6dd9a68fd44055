package compiler

import (
	"context"

	"github.com/jensneuse/abstractlogger"
	"go.uber.org/atomic"
	"golang.org/x/sync/errgroup"

	"github.com/wundergraph/cqir/pkg/artifact"
	"github.com/wundergraph/cqir/pkg/document"
	"github.com/wundergraph/cqir/pkg/operationreport"
	"github.com/wundergraph/cqir/pkg/resolver"
)

// File is one source holding any number of definitions
type File struct {
	Name   string
	Source string
	// Scope defaults to an empty scope
	Scope resolver.Scope
}

// Failure is a definition, or a whole file if Definition is empty, that did not compile
type Failure struct {
	File       string
	Definition string
	Err        error
}

type FileResult struct {
	File      string
	Artifacts []*artifact.Artifact
	Failures  []Failure
}

// FilesResult holds the compiled files in input order.
// Failing definitions are skipped and reported, the rest of their file still compiles.
type FilesResult struct {
	Files []FileResult
	// Failures of all files in input order
	Failures []Failure
	Report   operationreport.Report

	Compiled int64
	Failed   int64
}

type FilesOptions struct {
	EnableValidation bool
	// Concurrency limits the files compiled at once, zero means unlimited
	Concurrency int
	Logger      abstractlogger.Logger
}

// CompileFiles compiles files concurrently. It only returns an error when ctx is done.
func CompileFiles(ctx context.Context, compiler DefinitionCompiler, files []File, options FilesOptions) (*FilesResult, error) {
	log := options.Logger
	if log == nil {
		log = abstractlogger.NoopLogger
	}

	var (
		compiled = atomic.NewInt64(0)
		failed   = atomic.NewInt64(0)
		result   = &FilesResult{Files: make([]FileResult, len(files))}
	)

	// every goroutine only touches its own FileResult
	report := func(fileResult *FileResult, failure Failure) {
		failed.Inc()
		log.Debug("compiler.CompileFiles",
			abstractlogger.String("file", failure.File),
			abstractlogger.String("definition", failure.Definition),
			abstractlogger.Error(failure.Err),
		)
		fileResult.Failures = append(fileResult.Failures, failure)
	}

	group, groupCtx := errgroup.WithContext(ctx)
	if options.Concurrency > 0 {
		group.SetLimit(options.Concurrency)
	}
	for i := range files {
		i, file := i, files[i]
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			scope := file.Scope
			if scope == nil {
				scope = resolver.MapScope{}
			}
			fileResult := &result.Files[i]
			fileResult.File = file.Name

			definitions, err := document.Parse(file.Name, file.Source)
			if err != nil {
				report(fileResult, Failure{File: file.Name, Err: err})
				return nil
			}
			artifacts := make([]*artifact.Artifact, 0, len(definitions))
			for _, definition := range definitions {
				if err := groupCtx.Err(); err != nil {
					return err
				}
				out, err := compiler.Compile(definition, scope, options.EnableValidation)
				if err != nil {
					report(fileResult, Failure{File: file.Name, Definition: definition.Name, Err: err})
					continue
				}
				compiled.Inc()
				artifacts = append(artifacts, out)
			}
			fileResult.Artifacts = artifacts
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	for _, fileResult := range result.Files {
		for _, failure := range fileResult.Failures {
			result.Failures = append(result.Failures, failure)
			result.Report.AddError(failure.Err)
		}
	}
	result.Compiled = compiled.Load()
	result.Failed = failed.Load()
	log.Debug("compiler.CompileFiles",
		abstractlogger.Int("files", len(files)),
		abstractlogger.Int("compiled", int(result.Compiled)),
		abstractlogger.Int("failed", int(result.Failed)),
	)
	return result, nil
}

// Artifacts flattens the compiled artifacts of all files in input order
func (r *FilesResult) Artifacts() []*artifact.Artifact {
	var out []*artifact.Artifact
	for _, file := range r.Files {
		out = append(out, file.Artifacts...)
	}
	return out
}
