package main

import (
	"fmt"

	"cefgen/internal/analyze"
	"cefgen/internal/diagnostic"
	"cefgen/internal/manifest"
	"cefgen/internal/resolve"
	"cefgen/internal/schema"
)

// pipelineResult carries everything the commands need after analysis.
type pipelineResult struct {
	file     *manifest.File
	types    []*schema.TypeSchema
	resolved []*resolve.ResolvedType
	diags    *diagnostic.Diagnostics
}

// runPipeline loads the manifest and runs build, resolution, and (optionally)
// the capability check. Analysis problems end up in the result's
// diagnostics; only infrastructure failures return an error.
func runPipeline(path string, withCapabilities bool) (*pipelineResult, error) {
	logger.Debug().Str("manifest", path).Msg("loading manifest")

	f, err := manifest.LoadFile(path)
	if err != nil {
		return nil, err
	}

	diags := &diagnostic.Diagnostics{}

	types := manifest.Build(f, diags)
	logger.Debug().Int("types", len(types)).Msg("manifest built")

	resolved := resolve.NewResolver(diags).ResolveAll(types)

	if withCapabilities {
		analyze.NewChecker(types).Check(types, diags)
	}

	return &pipelineResult{
		file:     f,
		types:    types,
		resolved: resolved,
		diags:    diags,
	}, nil
}

// reportDiagnostics logs every warning and error.
func reportDiagnostics(d *diagnostic.Diagnostics) {
	for _, w := range d.Warnings {
		logger.Warn().Str("code", w.Code).Str("site", w.Site).Msg(w.Message)
	}

	for _, e := range d.Errors {
		logger.Error().Str("code", e.Code).Str("site", e.Site).Msg(e.Message)
	}
}

// failOnErrors converts accumulated error diagnostics into a command error.
func failOnErrors(d *diagnostic.Diagnostics) error {
	if d.HasErrors() {
		return fmt.Errorf("%d error(s) in manifest", len(d.Errors))
	}

	return nil
}
