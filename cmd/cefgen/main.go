// Package main provides the CLI entrypoint for cefgen.
//
// cefgen is a codegen tool that:
//   - Loads a YAML manifest declaring event types (records and tagged
//     unions) with CEF annotations
//   - Validates annotations and resolves exactly one value source per CEF
//     header, plus the type's extension contributions
//   - Verifies that annotated field types can provide the capabilities
//     their annotations demand
//   - Generates Go types with header accessors that render through the
//     cef runtime package
package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	manifestPath string
	verbose      bool

	logger zerolog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "cefgen",
	Short: "Generate CEF accessor code from a YAML manifest",
	Long: `cefgen turns declarative CEF annotations on event types into Go code:
struct and union declarations plus accessors for the seven CEF headers and
the extensions collector. Rendering happens at runtime through the cef
package.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := zerolog.InfoLevel
		if verbose {
			level = zerolog.DebugLevel
		}

		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
			Level(level).
			With().Timestamp().Logger()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&manifestPath, "manifest", "m", "cef.yaml",
		"path to the YAML manifest")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"enable debug logging")

	rootCmd.AddCommand(genCmd, checkCmd, dumpCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		logger.Error().Err(err).Msg("cefgen failed")
		os.Exit(1)
	}
}
