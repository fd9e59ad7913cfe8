package main

import (
	"github.com/spf13/cobra"

	"cefgen/internal/gen"
)

var outputDir string

var genCmd = &cobra.Command{
	Use:   "gen",
	Short: "Generate Go code from the manifest",
	RunE:  runGen,
}

func init() {
	genCmd.Flags().StringVarP(&outputDir, "out", "o", "./events",
		"output directory for generated code")
}

func runGen(cmd *cobra.Command, args []string) error {
	res, err := runPipeline(manifestPath, true)
	if err != nil {
		return err
	}

	reportDiagnostics(res.diags)

	if err := failOnErrors(res.diags); err != nil {
		return err
	}

	g := gen.NewGenerator(gen.GeneratorConfig{
		PackageName: res.file.Package,
		OutputDir:   outputDir,
	})

	files, err := g.Generate(res.resolved)
	if err != nil {
		return err
	}

	if err := gen.WriteFiles(files, outputDir); err != nil {
		return err
	}

	for _, f := range files {
		logger.Info().Str("file", f.Filename).Msg("generated")
	}

	logger.Info().Int("types", len(files)).Str("dir", outputDir).Msg("generation complete")

	return nil
}
