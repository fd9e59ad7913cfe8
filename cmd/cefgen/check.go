package main

import (
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the manifest without generating code",
	RunE:  runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	res, err := runPipeline(manifestPath, true)
	if err != nil {
		return err
	}

	reportDiagnostics(res.diags)

	if err := failOnErrors(res.diags); err != nil {
		return err
	}

	logger.Info().Int("types", len(res.types)).Msg("manifest is valid")

	return nil
}
