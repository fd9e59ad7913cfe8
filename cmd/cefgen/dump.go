package main

import (
	"os"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"
)

var dumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Dump the resolved model for debugging",
	RunE:  runDump,
}

func runDump(cmd *cobra.Command, args []string) error {
	res, err := runPipeline(manifestPath, false)
	if err != nil {
		return err
	}

	reportDiagnostics(res.diags)

	spew.Fdump(os.Stdout, res.resolved)

	return nil
}
