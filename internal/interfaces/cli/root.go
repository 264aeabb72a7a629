// Package cli implements the recctl command tree: offline recommendation
// runs and catalog authoring checks against a YAML catalog file, without a
// running server.
package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/CodingBot000/miracle3day-sub008/internal/infrastructure/monitoring/logging"
)

// Build-time variables injected via ldflags.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// RootOptions holds global CLI flags.
type RootOptions struct {
	LogLevel string
	Quiet    bool
}

// NewRootCommand creates the root cobra command with all global flags and
// subcommands.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:           "recctl",
		Short:         "recctl: offline tooling for the treatment recommendation engine",
		Long:          "recctl runs the treatment recommendation pipeline locally against a YAML\ncatalog file and validates catalog files before deployment.",
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildDate),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "warn", "log level (debug|info|warn|error)")
	cmd.PersistentFlags().BoolVarP(&opts.Quiet, "quiet", "q", false, "suppress all log output")

	cmd.AddCommand(newRecommendCommand(opts))
	cmd.AddCommand(newCatalogCommand(opts))

	return cmd
}

// Execute runs the root command.
func Execute() error {
	return NewRootCommand().Execute()
}

// newLogger builds the CLI logger, honoring --quiet and --log-level.
func (o *RootOptions) newLogger() (logging.Logger, error) {
	if o.Quiet {
		return logging.NewNopLogger(), nil
	}
	return logging.NewLogger(logging.LogConfig{
		Level:            o.LogLevel,
		Format:           "console",
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
	})
}

// printJSON writes v to stdout as indented JSON.
func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
